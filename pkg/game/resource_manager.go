package game

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/mazebeam/pkg/config"
)

// ErrAssetMissing 必需资源（调参表、资源清单、迷路布局）缺失或无法解析
var ErrAssetMissing = errors.New("game: required asset missing")

// audioLoadLimit 并发读取音频文件的上限
const audioLoadLimit = 4

// AssetPaths 启动时加载的文件路径
type AssetPaths struct {
	GameConfig   string // 调参表，如 data/game.yaml
	Manifest     string // 资源清单，如 assets/config/resources.yaml
	MazeOverride string // 可选，覆盖清单中的迷路路径
}

// DefaultAssetPaths 默认路径
func DefaultAssetPaths() AssetPaths {
	return AssetPaths{
		GameConfig: config.GameConfigPath,
		Manifest:   config.ResourceConfigPath,
	}
}

// ResourceManager 资源管理器
//
// 在游戏循环开始前一次性加载全部资源：调参表、资源清单、迷路布局和音频数据。
// 加载在多个 goroutine 中并发进行，LoadAll 返回后只在主循环中访问，不需要加锁。
//
// 音频缺失或解码失败只降级（记录日志，对应的声音不会播放）；
// 调参表、资源清单或迷路布局缺失是致命错误，返回 ErrAssetMissing。
type ResourceManager struct {
	audioContext *audio.Context // 可为 nil（无声模式）
	read         config.ReadFunc

	bundle      *config.Bundle
	config      *ResourceConfig
	resourceMap map[string]string // 资源ID -> 文件路径
	audioData   map[string][]byte // 资源ID -> 未解码的文件内容
	audioCache  map[string]*audio.Player
}

// NewResourceManager 创建资源管理器
//
// 参数:
//   - audioContext: 全局音频上下文（48000Hz），为 nil 时不加载音频
//   - read: 文件读取函数（嵌入文件系统或磁盘）
func NewResourceManager(audioContext *audio.Context, read config.ReadFunc) *ResourceManager {
	return &ResourceManager{
		audioContext: audioContext,
		read:         read,
		resourceMap:  make(map[string]string),
		audioData:    make(map[string][]byte),
		audioCache:   make(map[string]*audio.Player),
	}
}

// LoadAll 并发加载启动所需的全部资源
//
// 返回:
//   - error: 必需资源缺失时返回包装了 ErrAssetMissing 的错误
func (rm *ResourceManager) LoadAll(ctx context.Context, paths AssetPaths) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		bundle, err := config.LoadBundle(ctx, rm.read, paths.GameConfig, paths.Manifest, paths.MazeOverride)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrAssetMissing, err)
		}
		rm.bundle = bundle
		return nil
	})

	g.Go(func() error {
		if err := rm.LoadResourceConfig(paths.Manifest); err != nil {
			return fmt.Errorf("%w: %w", ErrAssetMissing, err)
		}
		rm.loadAudioData(ctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Printf("[ResourceManager] Loaded maze %q, %d enemy archetypes, %d/%d audio files",
		rm.bundle.Maze.Name, len(rm.bundle.Manifest.Enemies), len(rm.audioData), len(rm.resourceMap))
	return nil
}

// LoadResourceConfig 解析资源清单并建立 资源ID -> 路径 的映射
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := rm.read(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	var cfg ResourceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse resource config %s: %w", configPath, err)
	}
	rm.config = &cfg
	rm.buildResourceMap()
	return nil
}

func (rm *ResourceManager) buildResourceMap() {
	rm.resourceMap = make(map[string]string)
	if rm.config == nil {
		return
	}
	for _, group := range rm.config.Groups {
		for _, sound := range group.Sounds {
			rm.resourceMap[sound.ID] = soundPath(rm.config.BasePath, sound)
		}
	}
}

// loadAudioData 并发读取所有音频文件，失败的条目只记录日志
func (rm *ResourceManager) loadAudioData(ctx context.Context) {
	if rm.audioContext == nil {
		log.Printf("[ResourceManager] No audio context, audio disabled")
		return
	}

	ids := make([]string, 0, len(rm.resourceMap))
	for id := range rm.resourceMap {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	results := make([][]byte, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(audioLoadLimit)
	for i, id := range ids {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			path := rm.resourceMap[id]
			data, err := rm.read(path)
			if err != nil {
				log.Printf("[ResourceManager] Warning: audio %s unavailable (%s): %v", id, path, err)
				return nil
			}
			results[i] = data
			return nil
		})
	}
	_ = g.Wait()

	for i, id := range ids {
		if results[i] != nil {
			rm.audioData[id] = results[i]
		}
	}
}

// Bundle 已加载的配置数据，LoadAll 成功前为 nil
func (rm *ResourceManager) Bundle() *config.Bundle {
	return rm.bundle
}

// HasAudio 音频资源是否可用
func (rm *ResourceManager) HasAudio(id string) bool {
	_, ok := rm.audioData[id]
	return ok && rm.audioContext != nil
}

// SoundPath 按资源ID查找文件路径
func (rm *ResourceManager) SoundPath(id string) (string, bool) {
	p, ok := rm.resourceMap[id]
	return p, ok
}

// LoadAudio 创建循环播放的音乐播放器（带缓存）
//
// 参数:
//   - id: 资源ID，如 "MUSIC_MAZE"
func (rm *ResourceManager) LoadAudio(id string) (*audio.Player, error) {
	return rm.loadPlayer(id, true)
}

// LoadSoundEffect 创建单次播放的音效播放器（带缓存）
//
// 参数:
//   - id: 资源ID，如 "SOUND_BEAM"
func (rm *ResourceManager) LoadSoundEffect(id string) (*audio.Player, error) {
	return rm.loadPlayer(id, false)
}

// GetAudioPlayer 返回已创建的播放器，没有时返回 nil
func (rm *ResourceManager) GetAudioPlayer(id string) *audio.Player {
	return rm.audioCache[id]
}

func (rm *ResourceManager) loadPlayer(id string, loop bool) (*audio.Player, error) {
	if player, ok := rm.audioCache[id]; ok {
		return player, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("audio %s: no audio context", id)
	}
	data, ok := rm.audioData[id]
	if !ok {
		return nil, fmt.Errorf("audio %s: not loaded", id)
	}

	stream, length, err := decodeAudio(rm.resourceMap[id], data)
	if err != nil {
		return nil, err
	}
	var src io.Reader = stream
	if loop {
		src = audio.NewInfiniteLoop(stream, length)
	}

	player, err := rm.audioContext.NewPlayer(src)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", id, err)
	}
	rm.audioCache[id] = player
	return player, nil
}

// decodeAudio 按扩展名解码 mp3 或 ogg
func decodeAudio(path string, data []byte) (io.ReadSeeker, int64, error) {
	reader := bytes.NewReader(data)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		s, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		return s, s.Length(), nil
	case ".ogg":
		s, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		return s, s.Length(), nil
	default:
		return nil, 0, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg)", ext)
	}
}
