package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

// initTestFS 使用内存文件系统初始化
func initTestFS(t *testing.T) {
	t.Helper()
	assets := fstest.MapFS{
		"assets/config/resources.yaml": {Data: []byte("version: \"1.0\"\n")},
		"assets/audio/beam.ogg":        {Data: []byte("ogg")},
	}
	data := fstest.MapFS{
		"data/game.yaml": {Data: []byte("character:\n  speed: 120\n")},
		"data/maze.yaml": {Data: []byte("name: debug\n")},
	}
	Init(assets, data)
	t.Cleanup(func() {
		assetsFS, dataFS, initialized = nil, nil, false
	})
}

func TestNotInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	if _, err := ReadFile("data/game.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
	if _, err := Open("assets/audio/beam.ogg"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
	if Exists("data/game.yaml") {
		t.Error("Expected nothing to exist before Init()")
	}
}

func TestReadFile(t *testing.T) {
	initTestFS(t)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"data file", "data/game.yaml", "character:\n  speed: 120\n", false},
		{"dot prefix", "./data/maze.yaml", "name: debug\n", false},
		{"backslashes", `assets\config\resources.yaml`, "version: \"1.0\"\n", false},
		{"missing file", "data/missing.yaml", "", true},
		{"unknown prefix", "other/file.txt", "", true},
		{"data from assets fs", "assets/game.yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && string(got) != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDirectoryHelpers(t *testing.T) {
	initTestFS(t)

	if !Exists("assets/audio/beam.ogg") {
		t.Error("Expected beam.ogg to exist")
	}
	if Exists("assets/audio/missing.ogg") {
		t.Error("Expected missing.ogg not to exist")
	}

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Expected 2 yaml files, got %v", matches)
	}

	entries, err := ReadDir("assets/audio")
	if err != nil || len(entries) != 1 || entries[0].Name() != "beam.ogg" {
		t.Errorf("Unexpected ReadDir result: %v, %v", entries, err)
	}

	sub, err := Sub("assets/config")
	if err != nil {
		t.Fatalf("Sub failed: %v", err)
	}
	if _, err := sub.Open("resources.yaml"); err != nil {
		t.Errorf("Expected resources.yaml in sub fs: %v", err)
	}

	info, err := Stat("data/maze.yaml")
	if err != nil || info.Size() != int64(len("name: debug\n")) {
		t.Errorf("Unexpected Stat result: %v, %v", info, err)
	}
}
