// Package input 定义与具体窗口库无关的输入契约。
//
// 桌面前端（ebiten）和终端前端（tcell）各自把物理按键映射到 Action，
// 游戏循环协调器只依赖 Source 接口。
package input

// Action 游戏动作
type Action int

const (
	ActionForward Action = iota
	ActionBackward
	ActionLeft
	ActionRight
	ActionKick  // 单次动作键（空格）
	ActionStart // 开始游戏（回车）
)

// String 返回动作名
func (a Action) String() string {
	switch a {
	case ActionForward:
		return "forward"
	case ActionBackward:
		return "backward"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionKick:
		return "kick"
	case ActionStart:
		return "start"
	}
	return "unknown"
}

// Source 每帧被采样一次的输入源
type Source interface {
	// Sample 锁存本帧的按键状态与边沿，并应用滚轮缩放
	Sample()
	// IsPressed 动作键当前是否按住
	IsPressed(a Action) bool
	// ConsumePressed 本帧是否刚按下；返回 true 后边沿被清除
	ConsumePressed(a Action) bool
	// Zoom 期望的相机距离
	Zoom() *ZoomState
}

// State 按键锁存状态，供各前端的 Source 实现复用
type State struct {
	held    map[Action]bool
	pressed map[Action]bool
}

// NewState 创建空状态
func NewState() *State {
	return &State{
		held:    make(map[Action]bool),
		pressed: make(map[Action]bool),
	}
}

// SetHeld 设置按住状态；从松开变为按住时记录一次按下边沿
func (s *State) SetHeld(a Action, down bool) {
	if down && !s.held[a] {
		s.pressed[a] = true
	}
	s.held[a] = down
}

// Press 直接记录一次按下边沿（不改变按住状态）
func (s *State) Press(a Action) {
	s.pressed[a] = true
}

// IsPressed 是否按住
func (s *State) IsPressed(a Action) bool {
	return s.held[a]
}

// ConsumePressed 消费按下边沿
func (s *State) ConsumePressed(a Action) bool {
	if !s.pressed[a] {
		return false
	}
	delete(s.pressed, a)
	return true
}
