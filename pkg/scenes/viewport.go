package scenes

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/mazebeam/pkg/gameplay"
)

// viewSpan 屏幕高度对应的世界长度 = 相机距离 × viewSpan
const viewSpan = 2.2

// viewport 俯视投影
//
// 以相机注视点为屏幕中心，相机水平朝向指向屏幕上方，
// 相机距离越远，看到的范围越大。
type viewport struct {
	center  mgl64.Vec3
	forward mgl64.Vec3 // 水平单位向量
	right   mgl64.Vec3
	scale   float64 // 每个世界单位对应的像素
	width   float64
	height  float64
}

// newViewport 根据相机状态创建投影
//
// 参数:
//   - cam: 相机快照
//   - width, height: 屏幕尺寸（像素）
func newViewport(cam gameplay.CameraView, width, height int) viewport {
	fwd := mgl64.Vec3{cam.Forward.X(), 0, cam.Forward.Z()}
	if fwd.Len() < 1e-6 {
		fwd = mgl64.Vec3{0, 0, -1}
	}
	fwd = fwd.Normalize()

	dist := cam.Distance
	if dist <= 0 {
		dist = 1
	}
	return viewport{
		center:  cam.Target,
		forward: fwd,
		right:   mgl64.Vec3{-fwd.Z(), 0, fwd.X()},
		scale:   float64(height) / (dist * viewSpan),
		width:   float64(width),
		height:  float64(height),
	}
}

// project 世界坐标 -> 屏幕坐标（忽略高度）
func (v viewport) project(p mgl64.Vec3) (float32, float32) {
	d := p.Sub(v.center)
	x := d.Dot(v.right)*v.scale + v.width/2
	y := -d.Dot(v.forward)*v.scale + v.height/2
	return float32(x), float32(y)
}

// length 世界长度 -> 像素
func (v viewport) length(l float64) float32 {
	return float32(l * v.scale)
}

// direction 世界水平方向 -> 屏幕方向（单位向量）
func (v viewport) direction(dir mgl64.Vec3) (float32, float32) {
	x := dir.Dot(v.right)
	y := -dir.Dot(v.forward)
	n := math.Hypot(x, y)
	if n < 1e-9 {
		return 0, -1
	}
	return float32(x / n), float32(y / n)
}
