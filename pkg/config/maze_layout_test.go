package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testMaze = `
name: test
cellSize: 100
wallHeight: 150
rows:
  - "#####"
  - "#P.E#"
  - "#./O#"
  - "#####"
`

func TestParseMazeLayout(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{"valid", testMaze, false},
		{"no player", "cellSize: 10\nwallHeight: 10\nrows: [\"###\", \"#.#\"]\n", true},
		{"two players", "cellSize: 10\nwallHeight: 10\nrows: [\"PP\"]\n", true},
		{"ragged rows", "cellSize: 10\nwallHeight: 10\nrows: [\"P..\", \"..\"]\n", true},
		{"unknown symbol", "cellSize: 10\nwallHeight: 10\nrows: [\"P?\"]\n", true},
		{"zero cell size", "cellSize: 0\nwallHeight: 10\nrows: [\"P\"]\n", true},
		{"empty rows", "cellSize: 10\nwallHeight: 10\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMazeLayout([]byte(tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestMazeLayout_Geometry(t *testing.T) {
	m, err := ParseMazeLayout([]byte(testMaze))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if m.Width() != 5 || m.Depth() != 4 {
		t.Fatalf("Expected 5x4, got %dx%d", m.Width(), m.Depth())
	}

	// 5 列 × 100：第 0 列中心 x = (0 - 2.5 + 0.5) × 100 = -200
	// 4 行 × 100：第 0 行中心 z = (0 - 2 + 0.5) × 100 = -150
	c := m.CellCenter(Cell{Row: 0, Col: 0})
	if c.X() != -200 || c.Z() != -150 || c.Y() != 0 {
		t.Errorf("Expected (-200,0,-150), got %v", c)
	}

	start := m.PlayerStart()
	if start.X() != -100 || start.Z() != -50 {
		t.Errorf("Expected player start (-100,0,-50), got %v", start)
	}

	walls := m.Find(CellWall)
	if len(walls) != 14 {
		t.Errorf("Expected 14 wall cells, got %d", len(walls))
	}
	if slopes := m.Find(CellSlope); len(slopes) != 1 || slopes[0] != (Cell{Row: 2, Col: 2}) {
		t.Errorf("Expected slope at (2,2), got %v", slopes)
	}

	hx, hz := m.HalfExtents()
	if hx != 250 || hz != 200 {
		t.Errorf("Expected half extents (250,200), got (%f,%f)", hx, hz)
	}
}

func TestLoadMazeLayout_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	if err := os.WriteFile(path, []byte(testMaze), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	m, err := LoadMazeLayout(path)
	if err != nil {
		t.Fatalf("LoadMazeLayout failed: %v", err)
	}
	if m.Name != "test" {
		t.Errorf("Expected name 'test', got %q", m.Name)
	}
}
