package components

import "github.com/go-gl/mathgl/mgl64"

// ParticleKind 粒子批次类型
type ParticleKind int

const (
	// ParticleImpact 光束击中墙体的冲击粒子（受重力）
	ParticleImpact ParticleKind = iota
	// ParticleSpark 击碎目标时的火花（不受重力）
	ParticleSpark
)

// ParticleSample 单个粒子
type ParticleSample struct {
	Position  mgl64.Vec3
	Velocity  mgl64.Vec3
	StartTime float64
}

// ParticleBatchComponent 共享一个可视对象的一批粒子
// 所有粒子共享寿命，全部超过寿命后整个批次被移除
type ParticleBatchComponent struct {
	Kind     ParticleKind
	Samples  []ParticleSample
	Lifetime float64
	Gravity  float64 // 向下的合成重力加速度，Spark 为 0
	Grace    float64 // 批次超时宽限（秒）
	Size     float64
	Color    [3]uint8
}
