package components

import "github.com/go-gl/mathgl/mgl64"

// TransformComponent 模型变换（世界坐标）
// Position 是模型原点（脚底），Rotation 由实体独占
type TransformComponent struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    float64
}

// Forward 返回模型当前朝向（本地 +Z 旋转到世界坐标）
func (t *TransformComponent) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
}
