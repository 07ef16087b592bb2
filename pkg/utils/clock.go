package utils

// Clock 游戏时钟（秒）
//
// 由游戏循环协调器持有，每帧推进一次；各系统读取同一个时钟，
// 保证创建时间、命中时间和寿命判断使用同一时间基准。
type Clock struct {
	now   float64
	frame uint64
}

// NewClock 创建从 0 开始的时钟
func NewClock() *Clock {
	return &Clock{}
}

// Advance 推进 dt 秒
func (c *Clock) Advance(dt float64) {
	if dt > 0 {
		c.now += dt
	}
	c.frame++
}

// Now 当前时间（秒）
func (c *Clock) Now() float64 {
	return c.now
}

// Frame 已推进的帧数
func (c *Clock) Frame() uint64 {
	return c.frame
}
