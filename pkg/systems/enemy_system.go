package systems

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/mazebeam/pkg/components"
	"github.com/gonewx/mazebeam/pkg/ecs"
	"github.com/gonewx/mazebeam/pkg/geom"
	"github.com/gonewx/mazebeam/pkg/physics"
	"github.com/gonewx/mazebeam/pkg/world"
)

// enemyPursueAnimation 追击时可选的动作名（原型没有该片段时不切换）
const enemyPursueAnimation = "run"

// EnemySystem 单个敌人的转向状态机与受伤处理
//
// 状态：
//   - pursue：与玩家距离大于攻击距离，朝玩家方向设置水平速度并保持刚体唤醒
//   - engage：进入攻击距离后水平速度归零，播放默认动作（不造成伤害）
//
// 两种状态下敌人每帧都立即转向玩家的水平位置。
type EnemySystem struct {
	entityManager *ecs.EntityManager
	physics       physics.World
	registry      *world.TargetRegistry
	animations    *AnimationSystem
	crossfade     float64
}

// NewEnemySystem 创建敌人系统
func NewEnemySystem(em *ecs.EntityManager, pw physics.World, registry *world.TargetRegistry, animations *AnimationSystem, crossfade float64) *EnemySystem {
	return &EnemySystem{
		entityManager: em,
		physics:       pw,
		registry:      registry,
		animations:    animations,
		crossfade:     crossfade,
	}
}

// Step 推进一个敌人的 AI
//
// 参数:
//   - id: 敌人实体ID
//   - playerPos: 玩家模型原点
func (s *EnemySystem) Step(id ecs.EntityID, playerPos mgl64.Vec3) {
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
	if !ok || !enemy.IsAlive {
		return
	}
	tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
	if !ok {
		return
	}

	toPlayer := playerPos.Sub(tr.Position)
	distance := toPlayer.Len()

	if yaw, ok := geom.YawToward(toPlayer); ok {
		tr.Rotation = yaw
	}

	pb, _ := ecs.GetComponent[*components.PhysicsBodyComponent](s.entityManager, id)
	hasBody := pb != nil && pb.Body.Valid()
	var velocity mgl64.Vec3
	if hasBody {
		velocity, _ = s.physics.LinearVelocity(pb.Body)
	}

	if distance > enemy.AttackRange {
		enemy.State = components.EnemyPursue
		dir := toPlayer.Mul(1 / distance)
		if hasBody {
			s.physics.SetLinearVelocity(pb.Body, mgl64.Vec3{dir.X() * enemy.Speed, velocity.Y(), dir.Z() * enemy.Speed})
			s.physics.Activate(pb.Body)
		}
		s.playIfAvailable(id, enemyPursueAnimation)
		return
	}

	enemy.State = components.EnemyEngage
	if hasBody {
		s.physics.SetLinearVelocity(pb.Body, mgl64.Vec3{0, velocity.Y(), 0})
	}
	s.playIfAvailable(id, enemy.DefaultAnimation)
}

// playIfAvailable 动作存在且不是当前动作时切换
func (s *EnemySystem) playIfAvailable(id ecs.EntityID, name string) {
	anim, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
	if !ok || anim.Current == name {
		return
	}
	if _, ok := anim.Actions[name]; !ok {
		return
	}
	s.animations.Play(id, name, s.crossfade)
}

// TakeDamage 对存活的敌人造成伤害
//
// hp <= 0 时立即死亡：标记不存活，从碰撞目标注册表移除，
// 卸下模型（变换与动画组件）并释放物理刚体。没有死亡动画。
//
// 返回:
//   - bool: 本次伤害是否导致死亡
func (s *EnemySystem) TakeDamage(id ecs.EntityID, amount int) bool {
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
	if !ok {
		log.Printf("[EnemySystem] Warning: entity %d is not an enemy, damage skipped", id)
		return false
	}
	if !enemy.IsAlive {
		return false
	}

	enemy.HP -= amount
	log.Printf("[EnemySystem] %s took %d damage, hp=%d", enemy.Name, amount, enemy.HP)
	if enemy.HP > 0 {
		return false
	}

	enemy.IsAlive = false
	s.detach(id)
	log.Printf("[EnemySystem] %s died", enemy.Name)
	return true
}

// detach 从场景和物理世界中移除死亡的敌人
func (s *EnemySystem) detach(id ecs.EntityID) {
	if target, ok := ecs.GetComponent[*components.TargetComponent](s.entityManager, id); ok {
		s.registry.Remove(target.TargetID)
		ecs.RemoveComponent[*components.TargetComponent](s.entityManager, id)
	}
	ecs.RemoveComponent[*components.TransformComponent](s.entityManager, id)
	ecs.RemoveComponent[*components.AnimationComponent](s.entityManager, id)

	if pb, ok := ecs.GetComponent[*components.PhysicsBodyComponent](s.entityManager, id); ok {
		if pb.Body.Valid() {
			if err := s.physics.RemoveBody(pb.Body); err != nil {
				log.Printf("[EnemySystem] Warning: failed to remove body of entity %d: %v", id, err)
			}
		}
		ecs.RemoveComponent[*components.PhysicsBodyComponent](s.entityManager, id)
	}
}
