package components

import "github.com/gonewx/mazebeam/pkg/physics"

// PhysicsBodyComponent 实体独占的物理刚体句柄
// Body 为零值时表示刚体创建失败，所有依赖刚体的操作都会跳过
type PhysicsBodyComponent struct {
	Body   physics.BodyID
	Height float64 // 胶囊总高度（已含缩放）
	Radius float64 // 胶囊半径（已含缩放）

	// VerticalOffset 刚体中心到模型原点的竖直距离（= Height/2）
	VerticalOffset float64
}
