// mazebeam-tui 在终端中运行同一局迷路游戏
//
// 资源从磁盘读取（--root 指向包含 assets/ 和 data/ 的目录）。
// 用法:
//
//	go run ./cmd/mazebeam-tui --root . --seed 42
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/game"
	"github.com/gonewx/mazebeam/pkg/gameplay"
)

const (
	frameInterval = 16 * time.Millisecond
	// maxFrameDelta 单帧最长时间，终端卡顿时避免物理一次步进过长
	maxFrameDelta = 0.1
)

var (
	root    = flag.String("root", ".", "包含 assets/ 与 data/ 的目录")
	cfgPath = flag.String("config", "", "调参表（相对 --root），默认 data/game.yaml")
	maze    = flag.String("maze", "", "迷路布局（相对 --root），默认使用资源清单中的迷路")
	seed    = flag.Int64("seed", 0, "随机种子，0 表示使用当前时间")
	mute    = flag.Bool("mute", false, "关闭音效")
	logPath = flag.String("log", "", "日志文件，为空时不记录日志")
)

// tuiGame 终端游戏循环
type tuiGame struct {
	screen tcell.Screen
	coord  *gameplay.Coordinator
	input  *termInput
	sound  *tones
	render renderer
}

func main() {
	flag.Parse()

	// 终端被 tcell 接管，日志只能写文件
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	bundle, err := loadBundle(*root, *cfgPath, *maze)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load assets: %v\n", err)
		os.Exit(1)
	}

	g, err := newTUIGame(bundle, *seed, *mute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer g.cleanup()

	g.run()
}

// loadBundle 从磁盘加载配置
func loadBundle(root, gamePath, mazePath string) (*config.Bundle, error) {
	read := func(path string) ([]byte, error) {
		return os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
	}
	paths := game.DefaultAssetPaths()
	if gamePath != "" {
		paths.GameConfig = gamePath
	}
	paths.MazeOverride = mazePath

	// 没有 ebiten 音频上下文，只加载配置数据
	rm := game.NewResourceManager(nil, read)
	if err := rm.LoadAll(context.Background(), paths); err != nil {
		return nil, err
	}
	return rm.Bundle(), nil
}

func newTUIGame(bundle *config.Bundle, seed int64, mute bool) (*tuiGame, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("[TUI] Random seed: %d", seed)

	g := &tuiGame{
		input:  newTermInput(gameplay.NewZoomState(bundle.Game, 0)),
		sound:  newTones(mute),
		render: renderer{layout: bundle.Maze},
	}

	coord, err := gameplay.NewCoordinator(gameplay.Deps{
		Config:   bundle.Game,
		Maze:     bundle.Maze,
		Manifest: bundle.Manifest,
		Input:    g.input,
		Rand:     rand.New(rand.NewSource(seed)),
		Hooks: gameplay.Hooks{
			OnBeamFired: g.sound.Beam,
			OnImpact:    g.sound.Impact,
		},
	})
	if err != nil {
		g.sound.Close()
		return nil, err
	}
	g.coord = coord

	screen, err := tcell.NewScreen()
	if err != nil {
		g.sound.Close()
		return nil, err
	}
	if err := screen.Init(); err != nil {
		g.sound.Close()
		return nil, err
	}
	g.screen = screen
	return g, nil
}

func (g *tuiGame) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleEvent(ev) {
				return
			}

		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), maxFrameDelta)
			last = now

			g.coord.Frame(dt)
			g.screen.Clear()
			g.render.draw(g.screen, g.coord.Snapshot())
			g.screen.Show()
		}
	}
}

// handleEvent 处理终端事件，返回 false 表示退出
func (g *tuiGame) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		g.input.HandleKey(ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *tuiGame) cleanup() {
	g.sound.Close()
	g.screen.Fini()
}
