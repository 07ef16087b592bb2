// Package app 提供游戏应用的核心包装器
//
// 该包把资源加载、设置、音频和场景的组装从 main 包提取出来，
// 桌面端通过 main.go 调用 NewApp()。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/embedded"
	"github.com/gonewx/mazebeam/pkg/game"
	"github.com/gonewx/mazebeam/pkg/scenes"
)

// saveAppName gdata 存储目录名
const saveAppName = "mazebeam"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// GameConfigPath 磁盘上的调参表，为空时使用嵌入的 data/game.yaml
	GameConfigPath string
	// MazePath 磁盘上的迷路布局，为空时使用资源清单中的迷路
	MazePath string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(48000)

	resourceManager := game.NewResourceManager(audioContext, newReader(cfg.GameConfigPath, cfg.MazePath))
	paths := game.DefaultAssetPaths()
	if cfg.GameConfigPath != "" {
		paths.GameConfig = cfg.GameConfigPath
	}
	paths.MazeOverride = cfg.MazePath
	if err := resourceManager.LoadAll(context.Background(), paths); err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}

	settings := game.NewSettingsManager(openSaveStore())
	ebiten.SetFullscreen(settings.GetSettings().Fullscreen)

	audioManager := game.NewAudioManager(resourceManager, settings)
	log.Printf("[App] AudioManager initialized")

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("[App] Random seed: %d", seed)

	sceneManager := game.NewSceneManager()
	gameScene, err := scenes.NewGameScene(scenes.GameSceneDeps{
		Bundle:   resourceManager.Bundle(),
		Audio:    audioManager,
		Settings: settings,
		Rand:     rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		return nil, err
	}
	sceneManager.SwitchTo(gameScene)

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		verbose:      cfg.Verbose,
	}, nil
}

// newReader 资源读取函数：命令行指定的文件从磁盘读取，其余从嵌入资源读取
func newReader(diskPaths ...string) config.ReadFunc {
	onDisk := make(map[string]bool)
	for _, p := range diskPaths {
		if p != "" {
			onDisk[p] = true
		}
	}
	return func(path string) ([]byte, error) {
		if onDisk[path] {
			return os.ReadFile(path)
		}
		return embedded.ReadFile(path)
	}
}

// openSaveStore 打开设置存储，失败时返回 nil（设置只保存在内存中）
func openSaveStore() *gdata.Manager {
	m, err := gdata.Open(gdata.Config{AppName: saveAppName})
	if err != nil {
		log.Printf("[App] Warning: settings storage unavailable: %v", err)
		return nil
	}
	return m
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 关闭窗口前保存设置
	if ebiten.IsWindowBeingClosed() {
		if !a.sceneManager.SaveOnExit() {
			log.Printf("[App] Warning: settings were not saved")
		}
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.settings.SetFullscreen(false)
		} else {
			ebiten.SetFullscreen(true)
			a.settings.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
// 用于在游戏关闭时保存设置
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
