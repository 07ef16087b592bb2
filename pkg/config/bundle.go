package config

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// ReadFunc 读取文件内容（嵌入文件系统或磁盘）
type ReadFunc func(path string) ([]byte, error)

// Bundle 启动时需要的全部配置数据
type Bundle struct {
	Game     *GameConfig
	Maze     *MazeLayout
	Manifest *AssetManifest
}

// manifestFile 只解析资源清单中的 models 节点
type manifestFile struct {
	Models AssetManifest `yaml:"models"`
}

// LoadBundle 并发加载调参表、资源清单和迷路布局
//
// 迷路路径取自资源清单；mazeOverride 非空时优先使用。
// 任何一项失败都返回错误，属于致命的启动错误。
//
// 参数:
//   - ctx: 取消上下文
//   - read: 文件读取函数
//   - gamePath: 调参表路径
//   - manifestPath: 资源清单路径
//   - mazeOverride: 可选的迷路布局路径
func LoadBundle(ctx context.Context, read ReadFunc, gamePath, manifestPath, mazeOverride string) (*Bundle, error) {
	b := &Bundle{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := read(gamePath)
		if err != nil {
			return fmt.Errorf("failed to read game config %s: %w", gamePath, err)
		}
		cfg, err := ParseGameConfig(data)
		if err != nil {
			return err
		}
		b.Game = cfg
		return nil
	})
	g.Go(func() error {
		data, err := read(manifestPath)
		if err != nil {
			return fmt.Errorf("failed to read asset manifest %s: %w", manifestPath, err)
		}
		var mf manifestFile
		if err := yaml.Unmarshal(data, &mf); err != nil {
			return fmt.Errorf("failed to parse asset manifest: %w", err)
		}
		if mazeOverride != "" {
			mf.Models.Maze = mazeOverride
		}
		if err := mf.Models.Validate(); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		// 迷路路径来自清单，读取放在同一个任务里
		data, err = read(mf.Models.Maze)
		if err != nil {
			return fmt.Errorf("failed to read maze layout %s: %w", mf.Models.Maze, err)
		}
		layout, err := ParseMazeLayout(data)
		if err != nil {
			return err
		}
		b.Manifest = &mf.Models
		b.Maze = layout
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return b, nil
}
