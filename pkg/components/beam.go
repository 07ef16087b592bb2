package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// BeamState 光束状态机
type BeamState int

const (
	// BeamFlying 飞行中：每帧前进并做射线检测
	BeamFlying BeamState = iota
	// BeamStruck 已击中墙体：停在原地显示一小段时间
	BeamStruck
	// BeamExpired 终态，等待移除
	BeamExpired
)

// String 返回状态名
func (s BeamState) String() string {
	switch s {
	case BeamFlying:
		return "flying"
	case BeamStruck:
		return "struck"
	case BeamExpired:
		return "expired"
	}
	return "unknown"
}

// BeamComponent 光束
//
// 光束从 Origin 生长：头部 Position 每帧沿 Direction 前进，
// 可见长度为 min(已飞行距离, VisualLength)，尾部在头部后方可见长度处。
type BeamComponent struct {
	Origin    mgl64.Vec3
	Position  mgl64.Vec3 // 光束头部
	Direction mgl64.Vec3 // 发射时确定的单位方向
	Rotation  mgl64.Quat // 模型朝向（本地 +Y 对齐 Direction）
	Speed     float64

	State     BeamState
	CreatedAt float64
	HitAt     float64

	// Scale 沿飞行轴的缩放（命中后 = 命中距离 / VisualLength）
	Scale        float64
	VisualLength float64
	Radius       float64

	// HitTargets 已被本光束破坏/伤害过的目标
	HitTargets map[uuid.UUID]struct{}
}

// Reach 返回当前可见长度
func (b *BeamComponent) Reach() float64 {
	travelled := b.Position.Sub(b.Origin).Len()
	return min(travelled, b.VisualLength)
}

// Tail 返回光束尾部（射线检测起点）
func (b *BeamComponent) Tail() mgl64.Vec3 {
	return b.Position.Sub(b.Direction.Mul(b.Reach()))
}

// AlreadyHit 目标是否已被本光束处理过
func (b *BeamComponent) AlreadyHit(id uuid.UUID) bool {
	_, ok := b.HitTargets[id]
	return ok
}

// MarkHit 记录目标
func (b *BeamComponent) MarkHit(id uuid.UUID) {
	if b.HitTargets == nil {
		b.HitTargets = make(map[uuid.UUID]struct{})
	}
	b.HitTargets[id] = struct{}{}
}
