package components

import "github.com/go-gl/mathgl/mgl64"

// CameraComponent 第三人称相机状态
type CameraComponent struct {
	// Target 平滑后的注视点
	Target mgl64.Vec3
	// Position 相机实际位置（独立于几何理想位置平滑）
	Position mgl64.Vec3
	// Ideal 本帧计算出的（遮挡修正后的）目标位置
	Ideal mgl64.Vec3
	// Occluded 本帧是否触发遮挡修正
	Occluded bool
}
