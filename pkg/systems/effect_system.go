package systems

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/mazebeam/pkg/components"
	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/ecs"
	"github.com/gonewx/mazebeam/pkg/entities"
	"github.com/gonewx/mazebeam/pkg/geom"
	"github.com/gonewx/mazebeam/pkg/utils"
)

const (
	// 碎片水平速度倍率范围
	debrisHorizontalMin = 0.6
	debrisHorizontalMax = 1.0
	// 碎片角速度范围（弧度/秒，对称）
	debrisAngularSpread = 5.0
)

var (
	impactColor      = [3]uint8{255, 170, 60}
	defaultSparkTint = [3]uint8{255, 221, 136}
	defaultDebris    = [3]uint8{136, 136, 136}
)

// EffectSystem 管理冲击粒子、火花和碎片
//
// 每种特效是一个批次实体：
//   - 粒子批次：每个样本按自身速度积分，冲击粒子额外受合成重力；
//     所有样本超过寿命后（或创建后超过寿命+宽限）移除
//   - 碎片批次：不使用物理引擎，自行积分并在地面高度反弹，
//     达到最大反弹次数后冻结隐藏；全部失活或超时后移除
type EffectSystem struct {
	entityManager *ecs.EntityManager
	clock         *utils.Clock
	rng           *rand.Rand
	cfg           config.EffectsConfig
}

// NewEffectSystem 创建特效系统
//
// 参数:
//   - em: 实体管理器
//   - clock: 游戏时钟
//   - rng: 随机数源（可注入固定种子）
//   - cfg: 特效参数
func NewEffectSystem(em *ecs.EntityManager, clock *utils.Clock, rng *rand.Rand, cfg config.EffectsConfig) *EffectSystem {
	return &EffectSystem{
		entityManager: em,
		clock:         clock,
		rng:           rng,
		cfg:           cfg,
	}
}

// SpawnImpact 在命中点沿表面法线喷出冲击粒子
func (s *EffectSystem) SpawnImpact(point, normal mgl64.Vec3) ecs.EntityID {
	pc := s.cfg.Impact
	n := geom.SafeNormalize(normal, geom.Up)
	now := s.clock.Now()

	samples := make([]components.ParticleSample, pc.Count)
	for i := range samples {
		jitter := mgl64.Vec3{s.rng.Float64() - 0.5, s.rng.Float64() - 0.5, s.rng.Float64() - 0.5}
		dir := geom.SafeNormalize(n.Add(jitter.Mul(pc.Spread)), n)
		samples[i] = components.ParticleSample{
			Position:  point,
			Velocity:  dir.Mul(pc.Speed * s.between(pc.SpeedMin, pc.SpeedMax)),
			StartTime: now,
		}
	}

	return entities.NewParticleBatchEntity(s.entityManager, &components.ParticleBatchComponent{
		Kind:     components.ParticleImpact,
		Samples:  samples,
		Lifetime: pc.Lifetime,
		Gravity:  pc.Gravity,
		Grace:    s.cfg.Grace,
		Size:     pc.Size,
		Color:    impactColor,
	}, now)
}

// SpawnSpark 在目标位置向四周爆出火花（不受重力）
func (s *EffectSystem) SpawnSpark(point mgl64.Vec3, tint [3]uint8) ecs.EntityID {
	pc := s.cfg.Spark
	now := s.clock.Now()
	if tint == ([3]uint8{}) {
		tint = defaultSparkTint
	}

	samples := make([]components.ParticleSample, pc.Count)
	for i := range samples {
		dir := geom.SafeNormalize(mgl64.Vec3{s.rng.Float64() - 0.5, s.rng.Float64() - 0.5, s.rng.Float64() - 0.5}, geom.Up)
		samples[i] = components.ParticleSample{
			Position:  point,
			Velocity:  dir.Mul(pc.Speed * s.between(pc.SpeedMin, pc.SpeedMax)),
			StartTime: now,
		}
	}

	return entities.NewParticleBatchEntity(s.entityManager, &components.ParticleBatchComponent{
		Kind:     components.ParticleSpark,
		Samples:  samples,
		Lifetime: pc.Lifetime,
		Gravity:  pc.Gravity,
		Grace:    s.cfg.Grace,
		Size:     pc.Size,
		Color:    brighten(tint, 1.5),
	}, now)
}

// SpawnDebris 在目标位置炸出碎片
func (s *EffectSystem) SpawnDebris(point mgl64.Vec3, tint [3]uint8) ecs.EntityID {
	dc := s.cfg.Debris
	now := s.clock.Now()
	if tint == ([3]uint8{}) {
		tint = defaultDebris
	}

	fragments := make([]components.DebrisFragment, dc.Count)
	for i := range fragments {
		horizontal := geom.SafeNormalize(mgl64.Vec3{
			(s.rng.Float64() - 0.5) * dc.Spread,
			0,
			(s.rng.Float64() - 0.5) * dc.Spread,
		}, mgl64.Vec3{1, 0, 0})
		hs := dc.Speed * s.between(debrisHorizontalMin, debrisHorizontalMax)
		vy := s.between(dc.UpMin, dc.UpMax) * dc.Speed

		fragments[i] = components.DebrisFragment{
			Position: point,
			Velocity: mgl64.Vec3{horizontal.X() * hs, vy, horizontal.Z() * hs},
			AngularVelocity: mgl64.Vec3{
				(s.rng.Float64() - 0.5) * debrisAngularSpread,
				(s.rng.Float64() - 0.5) * debrisAngularSpread,
				(s.rng.Float64() - 0.5) * debrisAngularSpread,
			},
			Size:        dc.Size,
			Restitution: dc.Restitution,
			Lifetime:    dc.Lifetime,
			Active:      true,
			Visible:     true,
		}
	}

	return entities.NewDebrisBatchEntity(s.entityManager, &components.DebrisBatchComponent{
		Fragments:         fragments,
		Gravity:           dc.Gravity,
		MaxBounces:        dc.MaxBounces,
		GroundY:           dc.GroundY,
		Timeout:           dc.Lifetime + dc.TimeoutGrace,
		HorizontalDamping: dc.HorizontalDamping,
		AngularDamping:    dc.AngularDamping,
		Color:             tint,
	}, now)
}

// Update 推进所有粒子和碎片批次，移除到期的批次
func (s *EffectSystem) Update(dt float64) {
	now := s.clock.Now()

	for _, id := range ecs.GetEntitiesWith2[*components.TransientComponent, *components.ParticleBatchComponent](s.entityManager) {
		tag, _ := ecs.GetComponent[*components.TransientComponent](s.entityManager, id)
		batch, _ := ecs.GetComponent[*components.ParticleBatchComponent](s.entityManager, id)
		if s.updateParticles(batch, tag.CreatedAt, now, dt) {
			s.entityManager.DestroyEntity(id)
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.TransientComponent, *components.DebrisBatchComponent](s.entityManager) {
		batch, _ := ecs.GetComponent[*components.DebrisBatchComponent](s.entityManager, id)
		if s.updateDebris(batch, dt) {
			s.entityManager.DestroyEntity(id)
		}
	}
}

// updateParticles 返回批次是否应被移除
func (s *EffectSystem) updateParticles(batch *components.ParticleBatchComponent, createdAt, now, dt float64) bool {
	allExpired := true
	for i := range batch.Samples {
		p := &batch.Samples[i]
		if now-p.StartTime >= batch.Lifetime {
			continue
		}
		allExpired = false
		p.Position = p.Position.Add(p.Velocity.Mul(dt))
		if batch.Gravity != 0 {
			p.Velocity[1] -= batch.Gravity * dt
		}
	}
	return allExpired || now-createdAt > batch.Lifetime+batch.Grace
}

// updateDebris 返回批次是否应被移除
func (s *EffectSystem) updateDebris(batch *components.DebrisBatchComponent, dt float64) bool {
	batch.Age += dt
	active := 0
	for i := range batch.Fragments {
		f := &batch.Fragments[i]
		if !f.Active || !f.Visible {
			continue
		}
		f.Age += dt
		if f.Age >= f.Lifetime {
			f.Active = false
			f.Visible = false
			continue
		}
		active++

		f.Position = f.Position.Add(f.Velocity.Mul(dt))
		f.Velocity[1] -= batch.Gravity * dt
		f.Rotation = f.Rotation.Add(f.AngularVelocity.Mul(dt))

		bottom := f.Position.Y() - f.Size/2
		if bottom > batch.GroundY || f.Velocity.Y() >= 0 {
			continue
		}
		if f.Bounces < batch.MaxBounces {
			f.Position[1] = batch.GroundY + f.Size/2
			f.Velocity[1] *= -f.Restitution
			f.Velocity[0] *= batch.HorizontalDamping
			f.Velocity[2] *= batch.HorizontalDamping
			f.AngularVelocity = f.AngularVelocity.Mul(batch.AngularDamping)
			f.Bounces++
			continue
		}
		// 达到最大反弹次数：冻结并隐藏
		f.Velocity = mgl64.Vec3{}
		f.AngularVelocity = mgl64.Vec3{}
		f.Position[1] = batch.GroundY + f.Size/4
		f.Active = false
		f.Visible = false
	}
	return active == 0 || batch.Age > batch.Timeout
}

func (s *EffectSystem) between(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

func brighten(c [3]uint8, factor float64) [3]uint8 {
	var out [3]uint8
	for i, v := range c {
		out[i] = uint8(math.Min(255, float64(v)*factor))
	}
	return out
}
