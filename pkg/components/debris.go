package components

import "github.com/go-gl/mathgl/mgl64"

// DebrisFragment 单个碎片（不使用物理引擎）
type DebrisFragment struct {
	Position        mgl64.Vec3
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3 // 欧拉角速度（弧度/秒）
	Rotation        mgl64.Vec3 // 欧拉角
	Size            float64
	Bounces         int
	Restitution     float64
	Lifetime        float64
	Age             float64
	Active          bool
	Visible         bool
}

// DebrisBatchComponent 一组碎片
type DebrisBatchComponent struct {
	Fragments  []DebrisFragment
	Gravity    float64
	MaxBounces int
	GroundY    float64
	Timeout    float64 // 批次整体超时（秒），从创建开始计
	Age        float64

	HorizontalDamping float64
	AngularDamping    float64
	Color             [3]uint8
}
