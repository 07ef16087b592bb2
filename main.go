package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/mazebeam/pkg/app"
	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/embedded"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试日志")
	configPath = flag.String("config", "", "磁盘上的调参表（默认使用内置 data/game.yaml）")
	mazePath   = flag.String("maze", "", "磁盘上的迷路布局（默认使用资源清单中的迷路）")
	seed       = flag.Int64("seed", 0, "随机种子，0 表示使用当前时间")
)

func main() {
	flag.Parse()

	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:        *verbose,
		GameConfigPath: *configPath,
		MazePath:       *mazePath,
		Seed:           *seed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Maze Beam")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Fprintf(os.Stderr, "游戏异常退出: %v\n", err)
		os.Exit(1)
	}
}
