package entities

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/mazebeam/pkg/components"
	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/ecs"
	"github.com/gonewx/mazebeam/pkg/geom"
	"github.com/gonewx/mazebeam/pkg/physics"
	"github.com/gonewx/mazebeam/pkg/world"
)

// ClipsFromConfig 把清单中的片段定义转换为动画片段
func ClipsFromConfig(clips []config.ClipConfig) []components.AnimationClip {
	out := make([]components.AnimationClip, 0, len(clips))
	for _, c := range clips {
		out = append(out, components.AnimationClip{Name: c.Name, Duration: c.Duration, Loop: c.Loop})
	}
	return out
}

// NewCharacterEntity 创建玩家角色实体
//
// 刚体创建失败时角色仍会被创建，但 PhysicsBodyComponent.Body 为零值，
// 所有依赖刚体的操作都会跳过。
//
// 参数:
//   - em: 实体管理器
//   - pw: 物理世界
//   - cfg: 角色调参
//   - clips: 动作片段
//   - feet: 模型原点（脚底）的世界坐标
//
// 返回:
//   - ecs.EntityID: 角色实体ID
func NewCharacterEntity(em *ecs.EntityManager, pw physics.World, cfg config.CharacterConfig, clips []components.AnimationClip, feet mgl64.Vec3) ecs.EntityID {
	height, radius := cfg.Height(), cfg.Radius()
	center := feet.Add(mgl64.Vec3{0, height / 2, 0})

	body, err := pw.CreateCapsuleBody(center, height, radius, cfg.Mass, physics.Material{
		Friction:    cfg.Friction,
		Restitution: cfg.Restitution,
	})
	if err != nil {
		log.Printf("[CharacterFactory] Warning: failed to create character body: %v", err)
		body = physics.InvalidBody
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{
		Position: feet,
		Rotation: mgl64.QuatIdent(),
		Scale:    cfg.InitialScale,
	})
	ecs.AddComponent(em, id, &components.PhysicsBodyComponent{
		Body:           body,
		Height:         height,
		Radius:         radius,
		VerticalOffset: height / 2,
	})
	ecs.AddComponent(em, id, components.NewAnimationComponent(clips))
	ecs.AddComponent(em, id, &components.CharacterComponent{
		State:         components.ActorIdle,
		Speed:         cfg.Speed,
		RotationSpeed: cfg.RotationSpeed,
	})
	return id
}

// NewEnemyEntity 创建敌人实体，并把它登记为光束可命中的目标
//
// 参数:
//   - center: 胶囊中心的世界坐标
//   - name: 唯一名称（type_N）
//
// 返回:
//   - ecs.EntityID: 敌人实体ID
//   - error: 刚体创建失败时返回错误，此时不创建实体
func NewEnemyEntity(em *ecs.EntityManager, pw physics.World, registry *world.TargetRegistry, cfg config.EnemyConfig, archetype config.EnemyArchetype, name string, center mgl64.Vec3) (ecs.EntityID, error) {
	height, radius := cfg.Height(), cfg.Radius()
	body, err := pw.CreateCapsuleBody(center, height, radius, cfg.Mass, physics.Material{Friction: cfg.Friction})
	if err != nil {
		return 0, fmt.Errorf("failed to create enemy %s body: %w", name, err)
	}

	id := em.CreateEntity()
	feet := center.Sub(mgl64.Vec3{0, height / 2, 0})
	ecs.AddComponent(em, id, &components.TransformComponent{
		Position: feet,
		Rotation: mgl64.QuatIdent(),
		Scale:    cfg.Scale,
	})
	ecs.AddComponent(em, id, &components.PhysicsBodyComponent{
		Body:           body,
		Height:         height,
		Radius:         radius,
		VerticalOffset: height / 2,
	})
	ecs.AddComponent(em, id, components.NewAnimationComponent(ClipsFromConfig(archetype.Clips)))
	ecs.AddComponent(em, id, &components.EnemyComponent{
		Name:             name,
		Type:             archetype.Type,
		HP:               cfg.HP,
		IsAlive:          true,
		State:            components.EnemyPursue,
		Speed:            cfg.Speed,
		AttackRange:      cfg.AttackRange,
		DefaultAnimation: cfg.DefaultAnimation,
		Color:            ParseHexColor(archetype.Color, [3]uint8{200, 64, 64}),
	})

	targetID := registry.Add(world.Target{
		Name:   name,
		Kind:   world.TargetEnemy,
		Shape:  geom.NewCapsule(center, height, radius),
		Entity: id,
	})
	ecs.AddComponent(em, id, &components.TargetComponent{TargetID: targetID})
	return id, nil
}
