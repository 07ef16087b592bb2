// Package physics 定义物理世界适配器的契约。
//
// 游戏逻辑只通过 World 接口创建、步进、查询和销毁刚体，
// 具体实现位于 internal/rigidbody。
package physics

//go:generate go tool mockgen -destination=./mocks/world_mock.go -package=mocks . World

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyID 刚体句柄。零值表示没有刚体，所有依赖刚体的操作都应跳过。
type BodyID uint64

// InvalidBody 无效句柄
const InvalidBody BodyID = 0

// Valid 句柄是否非零
func (id BodyID) Valid() bool { return id != InvalidBody }

// ErrInvalidBody 句柄不存在或已被释放
var ErrInvalidBody = errors.New("physics: invalid body")

// ShapeKind 刚体形状类型
type ShapeKind int

const (
	ShapeCapsule ShapeKind = iota
	ShapeBox
	ShapeSphere
	ShapeMesh
)

// String 返回形状名称
func (k ShapeKind) String() string {
	switch k {
	case ShapeCapsule:
		return "capsule"
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	case ShapeMesh:
		return "mesh"
	}
	return "unknown"
}

// Material 表面材质
type Material struct {
	Friction    float64
	Restitution float64
}

// Hit 射线查询结果
type Hit struct {
	Body     BodyID
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// Filter 射线过滤器，返回 false 的刚体被忽略。nil 表示不过滤。
type Filter func(id BodyID) bool

// ExcludeBody 返回忽略指定刚体的过滤器
func ExcludeBody(skip BodyID) Filter {
	return func(id BodyID) bool { return id != skip }
}

// World 物理世界适配器。mass 为 0 的刚体是静态的。
type World interface {
	CreateCapsuleBody(position mgl64.Vec3, height, radius, mass float64, mat Material) (BodyID, error)
	CreateBoxBody(position, halfExtents mgl64.Vec3, mass float64, mat Material) (BodyID, error)
	CreateSphereBody(position mgl64.Vec3, radius, mass float64, mat Material) (BodyID, error)
	CreateStaticMeshBody(triangles [][3]mgl64.Vec3, mat Material) (BodyID, error)

	// StepSimulation 以固定子步长推进模拟，每次调用最多 maxSubSteps 个子步
	StepSimulation(delta float64, maxSubSteps int, fixedSubStep float64)

	SetLinearVelocity(id BodyID, v mgl64.Vec3)
	LinearVelocity(id BodyID) (mgl64.Vec3, bool)
	WorldTransform(id BodyID) (mgl64.Vec3, mgl64.Quat, bool)
	// Activate 唤醒休眠的刚体
	Activate(id BodyID)
	// RemoveBody 统一释放刚体的形状、运动状态和刚体本身，与形状类型无关
	RemoveBody(id BodyID) error

	// Raycast 返回 from->to 线段上最近的命中
	Raycast(from, to mgl64.Vec3, filter Filter) (Hit, bool)
	BodyCount() int
}
