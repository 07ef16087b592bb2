package components

import "github.com/go-gl/mathgl/mgl64"

// RingComponent 踢腿时出现的装饰光环，无碰撞
// 寿命由 LifetimeComponent 管理
type RingComponent struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Radius   float64
	Normal   mgl64.Vec3 // 光环孔洞朝向（水平前方）
}
