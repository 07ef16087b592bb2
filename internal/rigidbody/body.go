package rigidbody

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/mazebeam/pkg/geom"
	"github.com/gonewx/mazebeam/pkg/physics"
)

// body 刚体内部状态。形状参数、运动状态和刚体数据放在同一结构中，
// 释放时整体丢弃，不需要按形状区分清理路径。
type body struct {
	id       physics.BodyID
	kind     physics.ShapeKind
	position mgl64.Vec3
	rotation mgl64.Quat
	velocity mgl64.Vec3
	invMass  float64
	material physics.Material

	// 形状参数
	radius      float64         // 球体/胶囊半径
	halfSegment float64         // 胶囊中轴半长
	halfExtents mgl64.Vec3      // 盒体半尺寸
	triangles   []geom.Triangle // 静态网格

	// 静态形状的世界包围盒（静态刚体不移动，创建时计算一次）
	bounds geom.AABB

	sleeping     bool
	sleepTimer   float64
	neverSleep   bool
	lockRotation bool
	released     bool
}

func (b *body) isStatic() bool { return b.invMass == 0 }

// segment 返回动态形状的"核心线段"：球体是一个点，胶囊是竖直线段，
// 盒体按内切球近似。碰撞检测统一按"线段 + 半径"处理。
func (b *body) segment() (mgl64.Vec3, mgl64.Vec3, float64) {
	switch b.kind {
	case physics.ShapeCapsule:
		off := mgl64.Vec3{0, b.halfSegment, 0}
		return b.position.Sub(off), b.position.Add(off), b.radius
	case physics.ShapeBox:
		r := min(b.halfExtents.X(), b.halfExtents.Y(), b.halfExtents.Z())
		return b.position, b.position, r
	default:
		return b.position, b.position, b.radius
	}
}

// shape 返回用于射线检测的几何形状
func (b *body) shape() geom.Shape {
	switch b.kind {
	case physics.ShapeCapsule:
		return &geom.Capsule{Center: b.position, HalfSegment: b.halfSegment, Radius: b.radius}
	case physics.ShapeBox:
		return geom.NewAABB(b.position, b.halfExtents)
	case physics.ShapeSphere:
		return &geom.Sphere{Center: b.position, Radius: b.radius}
	case physics.ShapeMesh:
		return geom.NewMesh(b.triangles)
	}
	return nil
}

// release 丢弃形状、运动状态和刚体数据
func (b *body) release() {
	b.triangles = nil
	b.velocity = mgl64.Vec3{}
	b.invMass = 0
	b.released = true
}
