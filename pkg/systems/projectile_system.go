package systems

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/gonewx/mazebeam/pkg/components"
	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/ecs"
	"github.com/gonewx/mazebeam/pkg/entities"
	"github.com/gonewx/mazebeam/pkg/geom"
	"github.com/gonewx/mazebeam/pkg/utils"
	"github.com/gonewx/mazebeam/pkg/world"
)

// CollisionAction 光束命中目标后的处理结果
type CollisionAction int

const (
	// ActionIgnore 无效果，继续检查后面的相交
	ActionIgnore CollisionAction = iota
	// ActionStopAndAdjust 光束停在命中点（墙体）
	ActionStopAndAdjust
	// ActionDestroyTargetAndContinue 目标已由回调处理（破坏或伤害），光束继续飞行
	ActionDestroyTargetAndContinue
)

// String 返回动作名
func (a CollisionAction) String() string {
	switch a {
	case ActionStopAndAdjust:
		return "stop_and_adjust"
	case ActionDestroyTargetAndContinue:
		return "destroy_target_and_continue"
	}
	return "ignore"
}

// CollisionFunc 光束与目标相交时的回调
type CollisionFunc func(hit world.Intersection, beam *components.BeamComponent) CollisionAction

// minBeamHitDistance 命中距离下限，避免缩放为 0
const minBeamHitDistance = 0.01

// TransientCounts 各类瞬态实体数量
type TransientCounts struct {
	Beams     int
	Rings     int
	Particles int
	Debris    int
}

// ProjectileSystem 管理光束与光环
//
// 光束状态机 flying -> struck -> expired：
//   - flying：头部沿方向前进，从尾部向前做射线检测，按距离从近到远逐个交给回调
//   - struck：速度归零，停在命中点显示一小段时间
//   - expired：终态，实体被移除
//
// 光束从发射点生长，可见长度为 min(已飞行距离, VisualLength)，
// 射线从尾部出发、长度等于可见长度，因此距离发射点 L 的墙会在
// 头部越过 L 的那一帧被命中。
type ProjectileSystem struct {
	entityManager *ecs.EntityManager
	registry      *world.TargetRegistry
	effects       *EffectSystem
	clock         *utils.Clock
	beamCfg       config.BeamConfig
	ringCfg       config.RingConfig

	// OnStrike 光束撞墙时调用（音效钩子），可为 nil
	OnStrike func(hit world.Intersection)
}

// NewProjectileSystem 创建投射物系统
//
// 参数:
//   - em: 实体管理器
//   - registry: 碰撞目标注册表
//   - effects: 特效系统，撞墙时生成冲击粒子；可为 nil
//   - clock: 游戏时钟
//   - beamCfg, ringCfg: 光束与光环参数
func NewProjectileSystem(em *ecs.EntityManager, registry *world.TargetRegistry, effects *EffectSystem, clock *utils.Clock, beamCfg config.BeamConfig, ringCfg config.RingConfig) *ProjectileSystem {
	return &ProjectileSystem{
		entityManager: em,
		registry:      registry,
		effects:       effects,
		clock:         clock,
		beamCfg:       beamCfg,
		ringCfg:       ringCfg,
	}
}

// SpawnBeam 发射一道光束
//
// 参数:
//   - position: 发射者模型原点（脚底）
//   - forward: 发射方向（取水平分量，退化时使用模型默认朝向）
//   - height: 发射点离地高度
//   - forwardOffset: 发射点沿方向的前移距离
//
// 返回:
//   - ecs.EntityID: 光束实体ID
func (s *ProjectileSystem) SpawnBeam(position, forward mgl64.Vec3, height, forwardOffset float64) ecs.EntityID {
	dir := geom.SafeNormalize(geom.Flatten(forward), geom.LocalForward)
	origin := position.Add(dir.Mul(forwardOffset)).Add(geom.Up.Mul(height))
	now := s.clock.Now()

	id := entities.NewBeamEntity(s.entityManager, &components.BeamComponent{
		Origin:       origin,
		Position:     origin,
		Direction:    dir,
		Rotation:     geom.RotationBetween(geom.Up, dir),
		Speed:        s.beamCfg.Speed,
		State:        components.BeamFlying,
		CreatedAt:    now,
		Scale:        1,
		VisualLength: s.beamCfg.Length,
		Radius:       s.beamCfg.Radius,
		HitTargets:   make(map[uuid.UUID]struct{}),
	})
	log.Printf("[ProjectileSystem] Beam %d spawned at (%.1f, %.1f, %.1f)", id, origin.X(), origin.Y(), origin.Z())
	return id
}

// SpawnRing 在发射者前方生成装饰光环
//
// 参数:
//   - position: 发射者模型原点
//   - forward: 朝向
//   - forwardOffset: 前移距离
func (s *ProjectileSystem) SpawnRing(position, forward mgl64.Vec3, forwardOffset float64) ecs.EntityID {
	normal := geom.SafeNormalize(geom.Flatten(forward), geom.LocalForward)
	center := position.
		Add(normal.Mul(forwardOffset)).
		Add(geom.Up.Mul(s.ringCfg.Radius * s.ringCfg.UpRingRadii))

	return entities.NewRingEntity(s.entityManager, &components.RingComponent{
		Position: center,
		Rotation: geom.RotationBetween(geom.LocalForward, normal),
		Radius:   s.ringCfg.Radius,
		Normal:   normal,
	}, s.clock.Now(), s.ringCfg.Duration)
}

// Update 推进所有光束
//
// 参数:
//   - dt: 帧时长（秒）
//   - onCollision: 碰撞回调；为 nil 时墙和地面停止光束，其余忽略
func (s *ProjectileSystem) Update(dt float64, onCollision CollisionFunc) {
	if onCollision == nil {
		onCollision = defaultCollision
	}
	now := s.clock.Now()

	for _, id := range ecs.GetEntitiesWith1[*components.BeamComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestruction(id) {
			continue
		}
		beam, ok := ecs.GetComponent[*components.BeamComponent](s.entityManager, id)
		if !ok {
			continue
		}

		switch beam.State {
		case components.BeamFlying:
			if s.beamCfg.MaxLifetime > 0 && now-beam.CreatedAt > s.beamCfg.MaxLifetime {
				s.expire(id, beam)
				continue
			}
			s.advance(beam, dt, onCollision)

		case components.BeamStruck:
			if now-beam.HitAt >= s.beamCfg.DisplayAfterHit {
				s.expire(id, beam)
			}
		}
	}
}

// advance 前进并处理本帧的全部相交
func (s *ProjectileSystem) advance(beam *components.BeamComponent, dt float64, onCollision CollisionFunc) {
	beam.Position = beam.Position.Add(beam.Direction.Mul(beam.Speed * dt))

	reach := beam.Reach()
	if reach <= 0 {
		return
	}
	tail := beam.Tail()

	for _, hit := range s.registry.IntersectAll(tail, beam.Direction, 0, reach) {
		// 本帧之前的回调可能已经移除了该目标
		if _, alive := s.registry.Get(hit.Target.ID); !alive {
			continue
		}
		if beam.AlreadyHit(hit.Target.ID) {
			continue
		}

		switch onCollision(hit, beam) {
		case ActionStopAndAdjust:
			s.strike(beam, tail, hit)
			return
		case ActionDestroyTargetAndContinue:
			beam.MarkHit(hit.Target.ID)
		case ActionIgnore:
		}
	}
}

// strike flying -> struck
func (s *ProjectileSystem) strike(beam *components.BeamComponent, tail mgl64.Vec3, hit world.Intersection) {
	beam.Speed = 0
	beam.State = components.BeamStruck
	beam.HitAt = s.clock.Now()
	beam.Position = tail.Add(beam.Direction.Mul(hit.Distance))
	beam.Scale = math.Max(hit.Distance, minBeamHitDistance) / beam.VisualLength

	if s.effects != nil {
		s.effects.SpawnImpact(hit.Point, hit.Normal)
	}
	if s.OnStrike != nil {
		s.OnStrike(hit)
	}
}

// expire 进入 expired 并在同一帧标记删除，之后的帧不会再处理该光束
func (s *ProjectileSystem) expire(id ecs.EntityID, beam *components.BeamComponent) {
	beam.State = components.BeamExpired
	s.entityManager.DestroyEntity(id)
}

// ActiveCounts 按标签统计尚未被移除的瞬态实体
func (s *ProjectileSystem) ActiveCounts() TransientCounts {
	var c TransientCounts
	for _, id := range ecs.GetEntitiesWith1[*components.TransientComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestruction(id) {
			continue
		}
		tag, _ := ecs.GetComponent[*components.TransientComponent](s.entityManager, id)
		switch tag.Kind {
		case components.TransientBeam:
			c.Beams++
		case components.TransientRing:
			c.Rings++
		case components.TransientParticleBatch:
			c.Particles++
		case components.TransientDebrisBatch:
			c.Debris++
		}
	}
	return c
}

func defaultCollision(hit world.Intersection, _ *components.BeamComponent) CollisionAction {
	switch hit.Target.Kind {
	case world.TargetWall, world.TargetFloor:
		return ActionStopAndAdjust
	}
	return ActionIgnore
}
