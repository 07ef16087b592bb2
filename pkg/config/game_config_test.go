package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultGameConfig_Valid(t *testing.T) {
	cfg := DefaultGameConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid, got %v", err)
	}

	// 角色胶囊：30 × 1.8 = 54，30 × 0.4 = 12
	if math.Abs(cfg.Character.Height()-54) > 1e-9 {
		t.Errorf("Expected character height 54, got %f", cfg.Character.Height())
	}
	if math.Abs(cfg.Character.Radius()-12) > 1e-9 {
		t.Errorf("Expected character radius 12, got %f", cfg.Character.Radius())
	}
	want := math.Sqrt(100*100 + 50*50)
	if math.Abs(cfg.Camera.DefaultDistance()-want) > 1e-9 {
		t.Errorf("Expected default camera distance %f, got %f", want, cfg.Camera.DefaultDistance())
	}
}

func TestParseGameConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *GameConfig)
	}{
		{
			name: "partial override keeps defaults",
			yamlContent: `
character:
  speed: 320
beam:
  damage: 55
`,
			validate: func(t *testing.T, cfg *GameConfig) {
				if cfg.Character.Speed != 320 {
					t.Errorf("Expected speed 320, got %f", cfg.Character.Speed)
				}
				if cfg.Beam.Damage != 55 {
					t.Errorf("Expected damage 55, got %d", cfg.Beam.Damage)
				}
				// 未覆盖的字段保留默认值
				if cfg.Character.InitialScale != 30 {
					t.Errorf("Expected default scale 30, got %f", cfg.Character.InitialScale)
				}
				if cfg.Effects.Impact.Count != 150 {
					t.Errorf("Expected default impact count 150, got %d", cfg.Effects.Impact.Count)
				}
			},
		},
		{
			name:        "zero speed rejected",
			yamlContent: "character:\n  speed: 0\n",
			wantErr:     true,
			errContains: "character.speed",
		},
		{
			name:        "follow speed out of range",
			yamlContent: "camera:\n  followSpeed: 1.5\n",
			wantErr:     true,
			errContains: "camera.followSpeed",
		},
		{
			name:        "inverted sphere radius range",
			yamlContent: "spheres:\n  minRadius: 50\n  maxRadius: 10\n",
			wantErr:     true,
			errContains: "spheres radius",
		},
		{
			name:        "malformed yaml",
			yamlContent: "character: [",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseGameConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Expected error containing %q, got %v", tt.errContains, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestValidate_WrapsSentinel(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.Enemy.HP = 0
	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadGameConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.yaml")
	if err := os.WriteFile(path, []byte("enemy:\n  spawnCount: 5\n"), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	cfg, err := LoadGameConfig(path)
	if err != nil {
		t.Fatalf("LoadGameConfig failed: %v", err)
	}
	if cfg.Enemy.SpawnCount != 5 {
		t.Errorf("Expected spawnCount 5, got %d", cfg.Enemy.SpawnCount)
	}

	if _, err := LoadGameConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
