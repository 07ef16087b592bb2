package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/mazebeam/pkg/input"
)

// KeySource 键盘与滚轮的原始状态
type KeySource interface {
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
	Wheel() (x, y float64)
}

// EbitenKeySource 读取 ebiten 的实时输入
type EbitenKeySource struct{}

// IsKeyPressed 按键是否按住
func (EbitenKeySource) IsKeyPressed(key ebiten.Key) bool { return ebiten.IsKeyPressed(key) }

// IsKeyJustPressed 按键是否在本帧按下
func (EbitenKeySource) IsKeyJustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }

// Wheel 本帧滚轮偏移
func (EbitenKeySource) Wheel() (float64, float64) { return ebiten.Wheel() }

// DefaultKeyBindings 默认键位：WASD 与方向键移动，空格踢腿，回车开始
func DefaultKeyBindings() map[input.Action][]ebiten.Key {
	return map[input.Action][]ebiten.Key{
		input.ActionForward:  {ebiten.KeyW, ebiten.KeyArrowUp},
		input.ActionBackward: {ebiten.KeyS, ebiten.KeyArrowDown},
		input.ActionLeft:     {ebiten.KeyA, ebiten.KeyArrowLeft},
		input.ActionRight:    {ebiten.KeyD, ebiten.KeyArrowRight},
		input.ActionKick:     {ebiten.KeySpace},
		input.ActionStart:    {ebiten.KeyEnter, ebiten.KeyNumpadEnter},
	}
}

// InputManager 桌面前端的输入采样器，实现 input.Source
//
// 每帧调用一次 Sample：锁存按住状态和按下边沿，并把滚轮应用到相机缩放。
// ebiten 的滚轮向上（y > 0）表示拉近。
type InputManager struct {
	keys     KeySource
	bindings map[input.Action][]ebiten.Key
	state    *input.State
	zoom     *input.ZoomState
}

var _ input.Source = (*InputManager)(nil)

// NewInputManager 创建输入管理器
//
// 参数:
//   - keys: 原始输入，nil 时使用 EbitenKeySource
//   - zoom: 相机缩放状态
func NewInputManager(keys KeySource, zoom *input.ZoomState) *InputManager {
	if keys == nil {
		keys = EbitenKeySource{}
	}
	return &InputManager{
		keys:     keys,
		bindings: DefaultKeyBindings(),
		state:    input.NewState(),
		zoom:     zoom,
	}
}

// Sample 采样本帧输入
func (im *InputManager) Sample() {
	for action, keys := range im.bindings {
		down := false
		for _, k := range keys {
			if im.keys.IsKeyPressed(k) {
				down = true
			}
			// 同一帧内按下又松开的短按也要记录
			if im.keys.IsKeyJustPressed(k) {
				im.state.Press(action)
			}
		}
		im.state.SetHeld(action, down)
	}

	if _, wy := im.keys.Wheel(); wy != 0 && im.zoom != nil {
		im.zoom.ApplyWheel(-wy)
	}
}

// IsPressed 动作键是否按住
func (im *InputManager) IsPressed(a input.Action) bool {
	return im.state.IsPressed(a)
}

// ConsumePressed 消费本帧的按下边沿
func (im *InputManager) ConsumePressed(a input.Action) bool {
	return im.state.ConsumePressed(a)
}

// Zoom 相机缩放状态
func (im *InputManager) Zoom() *input.ZoomState {
	return im.zoom
}
