package game

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Ebitengine 只允许创建一个音频上下文，所有测试共享
var testAudioContext *audio.Context

func TestMain(m *testing.M) {
	testAudioContext = audio.NewContext(48000)
	os.Exit(m.Run())
}

const testResources = `
version: "1.0"
base_path: assets
groups:
  audio:
    sounds:
      - id: MUSIC_MAZE
        path: audio/maze_bgm.ogg
      - id: SOUND_BEAM
        path: audio/beam
models:
  maze: data/maze.yaml
  player:
    clips:
      - {name: idle, duration: 2.0, loop: true}
      - {name: kick, duration: 1.2, loop: false}
  enemies:
    - type: enemy_01
      clips:
        - {name: default, duration: 1.5, loop: true}
`

const testMazeYAML = `
name: tiny
cellSize: 100
wallHeight: 150
rows:
  - "###"
  - "#P#"
  - "###"
`

func newTestFS() fstest.MapFS {
	return fstest.MapFS{
		"data/game.yaml":               {Data: []byte("character:\n  speed: 150\n")},
		"data/maze.yaml":               {Data: []byte(testMazeYAML)},
		"assets/config/resources.yaml": {Data: []byte(testResources)},
		// 内容不是合法的 ogg，只能在创建播放器时失败
		"assets/audio/beam.ogg": {Data: []byte("not audio")},
	}
}

func readerFor(fsys fs.FS) func(string) ([]byte, error) {
	return func(path string) ([]byte, error) { return fs.ReadFile(fsys, path) }
}

func TestResourceManager_LoadAll(t *testing.T) {
	rm := NewResourceManager(testAudioContext, readerFor(newTestFS()))
	if err := rm.LoadAll(context.Background(), DefaultAssetPaths()); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	b := rm.Bundle()
	if b == nil || b.Game == nil || b.Maze == nil || b.Manifest == nil {
		t.Fatalf("Expected complete bundle, got %+v", b)
	}
	if b.Game.Character.Speed != 150 {
		t.Errorf("Expected tuned speed 150, got %f", b.Game.Character.Speed)
	}
	if b.Maze.Name != "tiny" {
		t.Errorf("Expected maze tiny, got %q", b.Maze.Name)
	}

	tests := []struct {
		id       string
		wantPath string
		wantData bool
	}{
		{"MUSIC_MAZE", "assets/audio/maze_bgm.ogg", false},
		{"SOUND_BEAM", "assets/audio/beam.ogg", true},
	}
	for _, tt := range tests {
		path, ok := rm.SoundPath(tt.id)
		if !ok || path != tt.wantPath {
			t.Errorf("%s: expected path %q, got %q", tt.id, tt.wantPath, path)
		}
		if rm.HasAudio(tt.id) != tt.wantData {
			t.Errorf("%s: expected HasAudio=%v", tt.id, tt.wantData)
		}
	}
}

func TestResourceManager_MissingRequiredAsset(t *testing.T) {
	tests := []struct {
		name    string
		missing string
	}{
		{"game config", "data/game.yaml"},
		{"manifest", "assets/config/resources.yaml"},
		{"maze", "data/maze.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := newTestFS()
			delete(fsys, tt.missing)
			rm := NewResourceManager(testAudioContext, readerFor(fsys))

			err := rm.LoadAll(context.Background(), DefaultAssetPaths())
			if !errors.Is(err, ErrAssetMissing) {
				t.Errorf("Expected ErrAssetMissing, got %v", err)
			}
		})
	}
}

func TestResourceManager_MazeOverride(t *testing.T) {
	fsys := newTestFS()
	fsys["data/other.yaml"] = &fstest.MapFile{Data: []byte("name: other\ncellSize: 50\nwallHeight: 80\nrows:\n  - \"P.\"\n")}
	rm := NewResourceManager(nil, readerFor(fsys))

	paths := DefaultAssetPaths()
	paths.MazeOverride = "data/other.yaml"
	if err := rm.LoadAll(context.Background(), paths); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if rm.Bundle().Maze.Name != "other" {
		t.Errorf("Expected override maze, got %q", rm.Bundle().Maze.Name)
	}
	if rm.HasAudio("SOUND_BEAM") {
		t.Error("Expected audio disabled without an audio context")
	}
}

func TestResourceManager_PlayerErrors(t *testing.T) {
	rm := NewResourceManager(testAudioContext, readerFor(newTestFS()))
	if err := rm.LoadAll(context.Background(), DefaultAssetPaths()); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if _, err := rm.LoadAudio("MUSIC_MAZE"); err == nil {
		t.Error("Expected error for audio that was never read")
	}
	if _, err := rm.LoadSoundEffect("SOUND_BEAM"); err == nil {
		t.Error("Expected decode error for invalid ogg data")
	}
	if rm.GetAudioPlayer("SOUND_BEAM") != nil {
		t.Error("Expected no cached player after failure")
	}
}

func TestDecodeAudio_UnsupportedFormat(t *testing.T) {
	if _, _, err := decodeAudio("x.wav", []byte{0}); err == nil {
		t.Error("Expected unsupported format error")
	}
}
