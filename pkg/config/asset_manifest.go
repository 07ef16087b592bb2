package config

import (
	"fmt"
	"log"
)

// ClipKick 玩家的单次动作片段，播放结束后才能重新移动，不能循环
const ClipKick = "kick"

// ClipConfig 动画片段定义
type ClipConfig struct {
	Name     string  `yaml:"name"`
	Duration float64 `yaml:"duration"`
	Loop     bool    `yaml:"loop"`
}

// ActorAssets 角色的动作片段
type ActorAssets struct {
	Clips []ClipConfig `yaml:"clips"`
}

// EnemyArchetype 敌人原型
type EnemyArchetype struct {
	Type  string       `yaml:"type"`
	Color string       `yaml:"color"` // 渲染颜色，十六进制 "#rrggbb"
	Clips []ClipConfig `yaml:"clips"`
}

// AssetManifest 资源清单中的模型部分
//
// 位于 assets/config/resources.yaml 的 models 节点：
//
//	models:
//	  maze: data/maze.yaml
//	  player:
//	    clips:
//	      - {name: idle, duration: 2.0, loop: true}
//	  enemies:
//	    - type: enemy_01
//	      clips: [...]
type AssetManifest struct {
	Maze    string           `yaml:"maze"`
	Player  ActorAssets      `yaml:"player"`
	Enemies []EnemyArchetype `yaml:"enemies"`
}

// Clip 按名称查找片段
func (a ActorAssets) Clip(name string) (ClipConfig, bool) {
	for _, c := range a.Clips {
		if c.Name == name {
			return c, true
		}
	}
	return ClipConfig{}, false
}

// Validate 校验必需项：迷路路径必须存在，玩家片段时长必须为正，
// 单次动作片段不能循环
func (m *AssetManifest) Validate() error {
	if m.Maze == "" {
		return fmt.Errorf("%w: models.maze is required", ErrInvalidConfig)
	}
	for _, c := range m.Player.Clips {
		if c.Name == "" || c.Duration <= 0 {
			return fmt.Errorf("%w: player clip %q has invalid duration %.2f", ErrInvalidConfig, c.Name, c.Duration)
		}
		if c.Name == ClipKick && c.Loop {
			return fmt.Errorf("%w: player clip %q must not loop", ErrInvalidConfig, c.Name)
		}
	}
	return nil
}

// UsableArchetypes 过滤出可用的敌人原型
//
// 缺少类型名、缺少默认动作片段或片段时长非法的原型被排除并记录日志，
// 不影响其他原型。
func (m *AssetManifest) UsableArchetypes(defaultAnimation string) []EnemyArchetype {
	usable := make([]EnemyArchetype, 0, len(m.Enemies))
	for _, a := range m.Enemies {
		if a.Type == "" {
			log.Printf("[AssetManifest] Warning: enemy archetype without type skipped")
			continue
		}
		ok := false
		valid := true
		for _, c := range a.Clips {
			if c.Duration <= 0 {
				valid = false
			}
			if c.Name == defaultAnimation {
				ok = true
			}
		}
		if !ok || !valid {
			log.Printf("[AssetManifest] Warning: enemy archetype %q excluded (missing %q clip or invalid clip)", a.Type, defaultAnimation)
			continue
		}
		usable = append(usable, a)
	}
	return usable
}
