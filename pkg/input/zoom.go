package input

// ZoomState 相机期望距离（滚轮缩放）
//
// Distance 始终位于 [Min, Max]。
type ZoomState struct {
	Distance float64
	Default  float64
	Min      float64
	Max      float64
	Factor   float64 // 每格滚轮的相对变化量

	// UserZoomed 用户是否手动缩放过（角色移动时相机会逐渐复位）
	UserZoomed bool
}

// NewZoomState 以默认距离创建缩放状态
func NewZoomState(defaultDistance, minDistance, maxDistance, factor float64) *ZoomState {
	z := &ZoomState{
		Distance: defaultDistance,
		Default:  defaultDistance,
		Min:      minDistance,
		Max:      maxDistance,
		Factor:   factor,
	}
	z.Clamp()
	return z
}

// ApplyWheel 应用一次滚轮输入
//
// 参数:
//   - steps: 正值拉远，负值拉近，0 忽略；只取符号
func (z *ZoomState) ApplyWheel(steps float64) {
	if steps == 0 {
		return
	}
	sign := 1.0
	if steps < 0 {
		sign = -1.0
	}
	z.Distance += sign * z.Distance * z.Factor
	z.Clamp()
	z.UserZoomed = true
}

// Clamp 把距离限制在 [Min, Max]
func (z *ZoomState) Clamp() {
	if z.Distance < z.Min {
		z.Distance = z.Min
	}
	if z.Distance > z.Max {
		z.Distance = z.Max
	}
}
