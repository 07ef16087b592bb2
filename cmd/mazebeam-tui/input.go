package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/mazebeam/pkg/input"
)

// holdWindow 终端没有按键抬起事件：最近一次按键（含自动重复）在该时间内视为按住。
// 需要覆盖终端自动重复的首次延迟。
const holdWindow = 550 * time.Millisecond

// movementActions 需要按住语义的动作
var movementActions = []input.Action{
	input.ActionForward,
	input.ActionBackward,
	input.ActionLeft,
	input.ActionRight,
}

// termInput 把 tcell 按键事件转换为 input.Source
type termInput struct {
	state    *input.State
	zoom     *input.ZoomState
	lastSeen map[input.Action]time.Time
	now      func() time.Time
}

var _ input.Source = (*termInput)(nil)

func newTermInput(zoom *input.ZoomState) *termInput {
	return &termInput{
		state:    input.NewState(),
		zoom:     zoom,
		lastSeen: make(map[input.Action]time.Time),
		now:      time.Now,
	}
}

// keyAction 按键对应的动作
func keyAction(ev *tcell.EventKey) (input.Action, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.ActionForward, true
	case tcell.KeyDown:
		return input.ActionBackward, true
	case tcell.KeyLeft:
		return input.ActionLeft, true
	case tcell.KeyRight:
		return input.ActionRight, true
	case tcell.KeyEnter:
		return input.ActionStart, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return input.ActionForward, true
		case 's', 'S':
			return input.ActionBackward, true
		case 'a', 'A':
			return input.ActionLeft, true
		case 'd', 'D':
			return input.ActionRight, true
		case ' ':
			return input.ActionKick, true
		}
	}
	return 0, false
}

// HandleKey 记录一次按键事件
//
// 返回:
//   - bool: 按键是否被识别
func (ti *termInput) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyRune && ti.zoom != nil {
		switch ev.Rune() {
		case '+', '=':
			ti.zoom.ApplyWheel(-1)
			return true
		case '-', '_':
			ti.zoom.ApplyWheel(1)
			return true
		}
	}

	action, ok := keyAction(ev)
	if !ok {
		return false
	}
	switch action {
	case input.ActionKick, input.ActionStart:
		ti.state.Press(action)
	default:
		ti.lastSeen[action] = ti.now()
	}
	return true
}

// Sample 按最近按键时间锁存移动键
func (ti *termInput) Sample() {
	now := ti.now()
	for _, a := range movementActions {
		last, ok := ti.lastSeen[a]
		ti.state.SetHeld(a, ok && now.Sub(last) < holdWindow)
	}
}

// IsPressed 动作键是否按住
func (ti *termInput) IsPressed(a input.Action) bool {
	return ti.state.IsPressed(a)
}

// ConsumePressed 消费按下边沿
func (ti *termInput) ConsumePressed(a input.Action) bool {
	return ti.state.ConsumePressed(a)
}

// Zoom 相机缩放状态
func (ti *termInput) Zoom() *input.ZoomState {
	return ti.zoom
}
