package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个画面（开始画面、游戏画面、错误画面）
// 同一时间只有一个场景被更新和绘制
type Scene interface {
	// Update 推进场景逻辑，deltaTime 为帧时长（秒）
	Update(deltaTime float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：场景在窗口关闭时保存用户设置
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}
