package systems

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/mazebeam/pkg/components"
	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/ecs"
	"github.com/gonewx/mazebeam/pkg/physics"
	"github.com/gonewx/mazebeam/pkg/world"
)

// PhysicsSystem 推进物理世界并把刚体位置同步回角色模型
//
// 同步后满足 Transform.Position = 刚体中心 - (0, VerticalOffset, 0)。
// 角色朝向由控制器独占，不从刚体读取。
type PhysicsSystem struct {
	entityManager *ecs.EntityManager
	physics       physics.World
	registry      *world.TargetRegistry
	cfg           config.PhysicsConfig
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - em: 实体管理器
//   - pw: 物理世界
//   - registry: 碰撞目标注册表，同步时更新角色目标的位置
//   - cfg: 子步参数
func NewPhysicsSystem(em *ecs.EntityManager, pw physics.World, registry *world.TargetRegistry, cfg config.PhysicsConfig) *PhysicsSystem {
	return &PhysicsSystem{
		entityManager: em,
		physics:       pw,
		registry:      registry,
		cfg:           cfg,
	}
}

// Step 以固定子步推进物理世界
func (s *PhysicsSystem) Step(dt float64) {
	s.physics.StepSimulation(dt, s.cfg.MaxSubSteps, s.cfg.FixedSubStep)
}

// Sync 同步玩家和敌人的模型位置
func (s *PhysicsSystem) Sync() {
	for _, id := range ecs.GetEntitiesWith3[*components.TransformComponent, *components.PhysicsBodyComponent, *components.CharacterComponent](s.entityManager) {
		syncBody(s.entityManager, s.physics, s.registry, id, false)
	}
	for _, id := range ecs.GetEntitiesWith3[*components.TransformComponent, *components.PhysicsBodyComponent, *components.EnemyComponent](s.entityManager) {
		syncBody(s.entityManager, s.physics, s.registry, id, false)
	}
}

// syncBody 把刚体变换复制到实体，并移动其碰撞目标
//
// 参数:
//   - withRotation: 是否同时复制朝向（球体需要，角色不需要）
//
// 返回:
//   - bool: 刚体有效且同步成功
func syncBody(em *ecs.EntityManager, pw physics.World, registry *world.TargetRegistry, id ecs.EntityID, withRotation bool) bool {
	tr, ok := ecs.GetComponent[*components.TransformComponent](em, id)
	if !ok {
		return false
	}
	pb, ok := ecs.GetComponent[*components.PhysicsBodyComponent](em, id)
	if !ok || !pb.Body.Valid() {
		return false
	}
	center, rot, ok := pw.WorldTransform(pb.Body)
	if !ok {
		return false
	}

	tr.Position = center.Sub(mgl64.Vec3{0, pb.VerticalOffset, 0})
	if withRotation {
		tr.Rotation = rot
	}

	if target, ok := ecs.GetComponent[*components.TargetComponent](em, id); ok {
		registry.Move(target.TargetID, center)
	}
	if d, ok := ecs.GetComponent[*components.DestructibleComponent](em, id); ok {
		registry.Move(d.TargetID, center)
	}
	return true
}
