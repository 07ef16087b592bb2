// Package geom 提供三维射线求交与基础几何工具。
//
// 物理世界与碰撞目标注册表共用这些形状，保证光束射线检测、相机遮挡检测
// 和物理射线查询得到一致的命中点与法线。
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon 几何计算的数值容差
const Epsilon = 1e-9

var (
	// Up 世界坐标的竖直向上方向
	Up = mgl64.Vec3{0, 1, 0}
	// LocalForward 模型本地坐标系的前方（模型默认朝向 +Z）
	LocalForward = mgl64.Vec3{0, 0, 1}
)

// Hit 描述一次射线命中
type Hit struct {
	Distance float64    // 从射线起点到命中点的距离
	Point    mgl64.Vec3 // 命中点（世界坐标）
	Normal   mgl64.Vec3 // 命中表面的单位法线，朝向射线来的一侧
}

// Shape 是可被射线检测的形状
type Shape interface {
	// IntersectRay 返回 [near, far] 区间内最近的命中。dir 必须是单位向量。
	IntersectRay(origin, dir mgl64.Vec3, near, far float64) (Hit, bool)
	// Bounds 返回形状的轴对齐包围盒
	Bounds() AABB
}

// SafeNormalize 归一化向量，长度退化时返回 fallback
func SafeNormalize(v, fallback mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < Epsilon || math.IsNaN(l) || math.IsInf(l, 0) {
		return fallback
	}
	return v.Mul(1 / l)
}

// Flatten 去掉向量的竖直分量
func Flatten(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// HorizontalDistance 返回两点在水平面(XZ)上的距离
func HorizontalDistance(a, b mgl64.Vec3) float64 {
	dx := a.X() - b.X()
	dz := a.Z() - b.Z()
	return math.Sqrt(dx*dx + dz*dz)
}

// LerpVec3 线性插值
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// YawToward 返回使本地 +Z 轴指向 dir 水平投影的绕 Y 轴旋转
func YawToward(dir mgl64.Vec3) (mgl64.Quat, bool) {
	flat := Flatten(dir)
	if flat.Len() < Epsilon {
		return mgl64.QuatIdent(), false
	}
	angle := math.Atan2(flat.X(), flat.Z())
	return mgl64.QuatRotate(angle, Up), true
}

// RotationBetween 返回把单位向量 from 旋转到单位向量 to 的四元数
func RotationBetween(from, to mgl64.Vec3) mgl64.Quat {
	return mgl64.QuatBetweenVectors(from, to)
}

// clamp 把 v 限制在 [lo, hi]
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
