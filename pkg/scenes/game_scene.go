package scenes

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/game"
	"github.com/gonewx/mazebeam/pkg/gameplay"
)

// impactFlashDuration 撞击后屏幕边框闪烁的时长（秒）
const impactFlashDuration = 0.15

// GameSceneDeps 创建游戏场景需要的依赖
type GameSceneDeps struct {
	Bundle   *config.Bundle        // 必需
	Audio    *game.AudioManager    // 可为 nil（无声）
	Settings *game.SettingsManager // 可为 nil（使用默认设置）
	Keys     game.KeySource        // nil 时读取 ebiten 实时输入
	Rand     *rand.Rand
}

// GameScene 迷路游戏场景
//
// 逻辑全部交给 gameplay.Coordinator，场景只负责：
//   - 每帧推进一局游戏并取得快照
//   - 俯视绘制迷路、角色、光束与特效，以及小地图和 HUD
//   - 开始后播放背景音乐，发射光束时播放音效
type GameScene struct {
	coord    *gameplay.Coordinator
	input    *game.InputManager
	audio    *game.AudioManager
	settings *game.SettingsManager
	cfg      *config.GameConfig

	snapshot     gameplay.Snapshot
	hasSnapshot  bool
	musicStarted bool
	impactFlash  float64
	impacts      int
}

var _ game.Saveable = (*GameScene)(nil)

// NewGameScene 创建游戏场景
//
// 参数:
//   - deps: 场景依赖，Bundle 中的调参表、迷路和资源清单必须已加载
//
// 返回:
//   - *GameScene: 场景实例
//   - error: 迷路构建或物理世界创建失败
func NewGameScene(deps GameSceneDeps) (*GameScene, error) {
	if deps.Bundle == nil {
		return nil, fmt.Errorf("failed to create game scene: no asset bundle")
	}

	s := &GameScene{
		audio:    deps.Audio,
		settings: deps.Settings,
		cfg:      deps.Bundle.Game,
	}
	if s.cfg == nil {
		s.cfg = config.DefaultGameConfig()
	}

	factor := 0.0
	if deps.Settings != nil {
		factor = deps.Settings.GetSettings().ZoomWheelFactor
	}
	s.input = game.NewInputManager(deps.Keys, gameplay.NewZoomState(s.cfg, factor))

	coord, err := gameplay.NewCoordinator(gameplay.Deps{
		Config:   s.cfg,
		Maze:     deps.Bundle.Maze,
		Manifest: deps.Bundle.Manifest,
		Input:    s.input,
		Rand:     deps.Rand,
		Hooks: gameplay.Hooks{
			OnBeamFired: s.onBeamFired,
			OnImpact:    s.onImpact,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game scene: %w", err)
	}
	s.coord = coord

	log.Printf("[GameScene] Created: maze %q, %d walls", deps.Bundle.Maze.Name, len(coord.Maze().Walls))
	return s, nil
}

// Update 推进一帧
func (s *GameScene) Update(deltaTime float64) {
	s.coord.Frame(deltaTime)

	if s.coord.Started() && !s.musicStarted {
		s.musicStarted = true
		if s.audio != nil {
			s.audio.PlayMusic(s.cfg.Audio.BGM, s.cfg.Audio.BGMVolume)
		}
	}

	if s.impactFlash > 0 {
		s.impactFlash -= deltaTime
	}

	s.snapshot = s.coord.Snapshot()
	s.hasSnapshot = true
}

// Draw 绘制当前快照
func (s *GameScene) Draw(screen *ebiten.Image) {
	if !s.hasSnapshot {
		s.snapshot = s.coord.Snapshot()
		s.hasSnapshot = true
	}

	b := screen.Bounds()
	view := newViewport(s.snapshot.Camera, b.Dx(), b.Dy())

	screen.Fill(colorBackground)
	s.drawMaze(screen, view)
	s.drawSpheres(screen, view)
	s.drawEffects(screen, view)
	s.drawActors(screen, view)
	s.drawBeams(screen, view)
	s.drawHUD(screen)
}

// SaveOnExit 退出时保存设置
func (s *GameScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[GameScene] Warning: failed to save settings: %v", err)
		return false
	}
	return true
}

// Coordinator 场景驱动的游戏协调器
func (s *GameScene) Coordinator() *gameplay.Coordinator {
	return s.coord
}

func (s *GameScene) onBeamFired() {
	if s.audio != nil {
		s.audio.PlaySound(s.cfg.Audio.BeamSound, s.cfg.Audio.BeamVolume)
	}
}

func (s *GameScene) onImpact() {
	s.impacts++
	s.impactFlash = impactFlashDuration
}
