package systems

import (
	"log"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/mazebeam/pkg/components"
	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/ecs"
	"github.com/gonewx/mazebeam/pkg/entities"
	"github.com/gonewx/mazebeam/pkg/physics"
	"github.com/gonewx/mazebeam/pkg/world"
)

// SphereSystem 可破坏球体
//
// 球体从迷路的投放格上方落下，登记为光束可击碎的目标。
// 击碎时刚体、注册表条目和实体一起移除。
type SphereSystem struct {
	entityManager *ecs.EntityManager
	physics       physics.World
	registry      *world.TargetRegistry
	cfg           config.SphereConfig
	jitter        float64 // 投放点水平随机偏移上限
}

// NewSphereSystem 创建球体系统
func NewSphereSystem(em *ecs.EntityManager, pw physics.World, registry *world.TargetRegistry, cfg config.SphereConfig, jitter float64) *SphereSystem {
	return &SphereSystem{
		entityManager: em,
		physics:       pw,
		registry:      registry,
		cfg:           cfg,
		jitter:        jitter,
	}
}

// SpawnSpheres 在投放点上方生成球体
//
// 依次循环使用投放点，直到生成 cfg.Count 个球体。
// 半径 ~ U[MinRadius, MaxRadius]，高度 = DropHeight + U[0, 1.5*MaxRadius]，
// 每个颜色分量 ~ U[0.2, 1.0]。
//
// 参数:
//   - drops: 投放点（地面高度的格子中心）
//   - rng: 随机数源
//
// 返回:
//   - []ecs.EntityID: 成功生成的球体
func (s *SphereSystem) SpawnSpheres(drops []mgl64.Vec3, rng *rand.Rand) []ecs.EntityID {
	if len(drops) == 0 || s.cfg.Count <= 0 {
		log.Printf("[SphereSystem] No drop points or count is zero, no spheres spawned")
		return nil
	}

	mat := physics.Material{Friction: s.cfg.Friction, Restitution: s.cfg.Restitution}
	ids := make([]ecs.EntityID, 0, s.cfg.Count)
	for i := 0; i < s.cfg.Count; i++ {
		drop := drops[i%len(drops)]
		radius := s.cfg.MinRadius + rng.Float64()*(s.cfg.MaxRadius-s.cfg.MinRadius)
		center := mgl64.Vec3{
			drop.X() + (rng.Float64()*2-1)*s.jitter,
			drop.Y() + s.cfg.DropHeight + rng.Float64()*s.cfg.MaxRadius*1.5,
			drop.Z() + (rng.Float64()*2-1)*s.jitter,
		}
		var color [3]uint8
		for c := range color {
			color[c] = uint8((rng.Float64()*0.8 + 0.2) * 255)
		}

		id, err := entities.NewSphereEntity(s.entityManager, s.physics, s.registry, entities.SphereSpec{
			Center:   center,
			Radius:   radius,
			Mass:     s.cfg.Mass,
			Material: mat,
			Color:    color,
		})
		if err != nil {
			log.Printf("[SphereSystem] Warning: %v", err)
			continue
		}
		ids = append(ids, id)
	}
	log.Printf("[SphereSystem] Spawned %d spheres over %d drop points", len(ids), len(drops))
	return ids
}

// Destroy 击碎球体：释放刚体，移出注册表，销毁实体
//
// 返回:
//   - mgl64.Vec3: 球体最后的位置
//   - [3]uint8: 球体颜色
//   - bool: 实体不是球体或已被销毁时返回 false
func (s *SphereSystem) Destroy(id ecs.EntityID) (mgl64.Vec3, [3]uint8, bool) {
	if s.entityManager.IsMarkedForDestruction(id) {
		return mgl64.Vec3{}, [3]uint8{}, false
	}
	d, ok := ecs.GetComponent[*components.DestructibleComponent](s.entityManager, id)
	if !ok {
		log.Printf("[SphereSystem] Warning: entity %d is not a sphere", id)
		return mgl64.Vec3{}, [3]uint8{}, false
	}

	var pos mgl64.Vec3
	if tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id); ok {
		pos = tr.Position
	}
	s.registry.Remove(d.TargetID)
	if pb, ok := ecs.GetComponent[*components.PhysicsBodyComponent](s.entityManager, id); ok && pb.Body.Valid() {
		if err := s.physics.RemoveBody(pb.Body); err != nil {
			log.Printf("[SphereSystem] Warning: failed to remove body of sphere %d: %v", id, err)
		}
		pb.Body = physics.InvalidBody
	}
	s.entityManager.DestroyEntity(id)
	return pos, d.Color, true
}

// Sync 把球体刚体的位置和朝向同步到模型与碰撞目标
func (s *SphereSystem) Sync() {
	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.DestructibleComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestruction(id) {
			continue
		}
		syncBody(s.entityManager, s.physics, s.registry, id, true)
	}
}

// Count 尚未被击碎的球体数量
func (s *SphereSystem) Count() int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.DestructibleComponent](s.entityManager) {
		if !s.entityManager.IsMarkedForDestruction(id) {
			n++
		}
	}
	return n
}
