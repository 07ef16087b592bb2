package systems

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/mazebeam/pkg/components"
	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/ecs"
	"github.com/gonewx/mazebeam/pkg/entities"
	"github.com/gonewx/mazebeam/pkg/physics"
	"github.com/gonewx/mazebeam/pkg/world"
)

// EnemyManager 敌人种群管理
//
// 负责在圆盘区域内随机生成敌人、每帧驱动存活敌人的 AI，
// 并把已死亡的敌人从名单中移除（场景和物理清理在死亡时已完成）。
type EnemyManager struct {
	entityManager *ecs.EntityManager
	physics       physics.World
	registry      *world.TargetRegistry
	system        *EnemySystem
	animations    *AnimationSystem

	cfg        config.EnemyConfig
	archetypes []config.EnemyArchetype
	rng        *rand.Rand

	roster  []ecs.EntityID
	names   map[string]ecs.EntityID
	spawned int
}

// NewEnemyManager 创建敌人管理器
//
// 参数:
//   - archetypes: 可用的敌人原型（已排除加载失败的原型）
//   - rng: 随机数源，生成位置和原型选择都使用它
func NewEnemyManager(em *ecs.EntityManager, pw physics.World, registry *world.TargetRegistry, system *EnemySystem, animations *AnimationSystem, cfg config.EnemyConfig, archetypes []config.EnemyArchetype, rng *rand.Rand) *EnemyManager {
	return &EnemyManager{
		entityManager: em,
		physics:       pw,
		registry:      registry,
		system:        system,
		animations:    animations,
		cfg:           cfg,
		archetypes:    archetypes,
		rng:           rng,
		names:         make(map[string]ecs.EntityID),
	}
}

// SpawnEnemies 在圆盘区域内随机生成敌人
//
// 每个敌人的位置：角度 ~ U[0, 2π)，半径 ~ U[0, radius]；
// 高度为 fixedY（非 nil 时），否则为 敌人高度/2 + SpawnLift（刚体中心）。
// 原型从可用原型中均匀随机选择。
//
// 参数:
//   - count: 数量
//   - center: 区域中心（只使用 X/Z）
//   - radius: 区域半径
//   - fixedY: 固定的刚体中心高度，可为 nil
//
// 返回:
//   - []ecs.EntityID: 成功生成的敌人
func (m *EnemyManager) SpawnEnemies(count int, center mgl64.Vec3, radius float64, fixedY *float64) []ecs.EntityID {
	if len(m.archetypes) == 0 {
		log.Printf("[EnemyManager] Warning: no enemy archetypes loaded, cannot spawn enemies")
		return nil
	}
	if count <= 0 {
		log.Printf("[EnemyManager] Warning: count is %d, no enemies spawned", count)
		return nil
	}

	y := m.cfg.Height()/2 + m.cfg.SpawnLift
	if fixedY != nil {
		y = *fixedY
	}

	spawned := make([]ecs.EntityID, 0, count)
	for i := 0; i < count; i++ {
		archetype := m.archetypes[m.rng.Intn(len(m.archetypes))]
		angle := m.rng.Float64() * 2 * math.Pi
		offset := m.rng.Float64() * radius
		pos := mgl64.Vec3{
			center.X() + offset*math.Cos(angle),
			y,
			center.Z() + offset*math.Sin(angle),
		}

		m.spawned++
		name := fmt.Sprintf("%s_%d", archetype.Type, m.spawned)
		id, err := entities.NewEnemyEntity(m.entityManager, m.physics, m.registry, m.cfg, archetype, name, pos)
		if err != nil {
			log.Printf("[EnemyManager] Warning: failed to spawn %s: %v", name, err)
			continue
		}
		m.animations.Play(id, m.cfg.DefaultAnimation, 0)

		m.roster = append(m.roster, id)
		m.names[name] = id
		spawned = append(spawned, id)
		log.Printf("[EnemyManager] Spawned %s at (%.1f, %.1f, %.1f)", name, pos.X(), pos.Y(), pos.Z())
	}
	return spawned
}

// Update 驱动所有存活敌人的 AI，然后移除已死亡的敌人
func (m *EnemyManager) Update(dt float64, playerPos mgl64.Vec3) {
	for _, id := range m.roster {
		m.system.Step(id, playerPos)
	}

	alive := m.roster[:0]
	for _, id := range m.roster {
		enemy, ok := ecs.GetComponent[*components.EnemyComponent](m.entityManager, id)
		if ok && enemy.IsAlive {
			alive = append(alive, id)
			continue
		}
		if ok {
			delete(m.names, enemy.Name)
			log.Printf("[EnemyManager] %s was not alive and has been removed from roster", enemy.Name)
		}
		m.entityManager.DestroyEntity(id)
	}
	clear(m.roster[len(alive):])
	m.roster = alive
}

// TakeDamage 对敌人造成伤害，返回是否死亡
func (m *EnemyManager) TakeDamage(id ecs.EntityID, amount int) bool {
	return m.system.TakeDamage(id, amount)
}

// Roster 返回当前名单的副本
func (m *EnemyManager) Roster() []ecs.EntityID {
	out := make([]ecs.EntityID, len(m.roster))
	copy(out, m.roster)
	return out
}

// Count 名单中的敌人数量
func (m *EnemyManager) Count() int {
	return len(m.roster)
}

// Get 按名称查找敌人
func (m *EnemyManager) Get(name string) (ecs.EntityID, bool) {
	id, ok := m.names[name]
	return id, ok
}
