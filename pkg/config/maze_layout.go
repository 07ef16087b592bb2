package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// 迷路网格字符
const (
	CellFloor       = '.'
	CellWall        = '#'
	CellSlope       = '/' // 斜坡墙（三角网格）
	CellPlayer      = 'P'
	CellEnemyCenter = 'E'
	CellSphereDrop  = 'O'
)

// MazeLayout 迷路布局
//
// 配置文件位置: data/maze.yaml
// 网格第 0 行位于 -Z 方向，第 0 列位于 -X 方向，迷路中心对齐世界原点。
type MazeLayout struct {
	Name       string   `yaml:"name"`
	CellSize   float64  `yaml:"cellSize"`
	WallHeight float64  `yaml:"wallHeight"`
	Rows       []string `yaml:"rows"`
}

// Cell 网格坐标
type Cell struct {
	Row, Col int
}

// LoadMazeLayout 从文件加载迷路布局
func LoadMazeLayout(path string) (*MazeLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read maze layout: %w", err)
	}
	return ParseMazeLayout(data)
}

// ParseMazeLayout 解析并校验迷路布局
func ParseMazeLayout(data []byte) (*MazeLayout, error) {
	var layout MazeLayout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse maze layout: %w", err)
	}
	for i, row := range layout.Rows {
		layout.Rows[i] = strings.TrimSpace(row)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &layout, nil
}

// Validate 校验布局：非空、矩形、恰好一个玩家起点、字符合法
func (m *MazeLayout) Validate() error {
	if m.CellSize <= 0 || m.WallHeight <= 0 {
		return fmt.Errorf("%w: maze cellSize and wallHeight must be > 0", ErrInvalidConfig)
	}
	if len(m.Rows) == 0 {
		return fmt.Errorf("%w: maze has no rows", ErrInvalidConfig)
	}
	width := len(m.Rows[0])
	players := 0
	for r, row := range m.Rows {
		if len(row) != width {
			return fmt.Errorf("%w: maze row %d has width %d, expected %d", ErrInvalidConfig, r, len(row), width)
		}
		for c, ch := range row {
			switch ch {
			case CellFloor, CellWall, CellSlope, CellEnemyCenter, CellSphereDrop:
			case CellPlayer:
				players++
			default:
				return fmt.Errorf("%w: maze cell (%d,%d) has unknown symbol %q", ErrInvalidConfig, r, c, ch)
			}
		}
	}
	if players != 1 {
		return fmt.Errorf("%w: maze must have exactly one player start, found %d", ErrInvalidConfig, players)
	}
	return nil
}

// Width 列数
func (m *MazeLayout) Width() int { return len(m.Rows[0]) }

// Depth 行数
func (m *MazeLayout) Depth() int { return len(m.Rows) }

// CellCenter 返回格子中心的世界坐标（地面 y=0）
func (m *MazeLayout) CellCenter(c Cell) mgl64.Vec3 {
	x := (float64(c.Col) - float64(m.Width())/2 + 0.5) * m.CellSize
	z := (float64(c.Row) - float64(m.Depth())/2 + 0.5) * m.CellSize
	return mgl64.Vec3{x, 0, z}
}

// Find 返回所有指定字符的格子（按行优先顺序）
func (m *MazeLayout) Find(symbol rune) []Cell {
	var cells []Cell
	for r, row := range m.Rows {
		for c, ch := range row {
			if ch == symbol {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// PlayerStart 玩家起点
func (m *MazeLayout) PlayerStart() mgl64.Vec3 {
	cells := m.Find(CellPlayer)
	if len(cells) == 0 {
		return mgl64.Vec3{}
	}
	return m.CellCenter(cells[0])
}

// HalfExtents 整个迷路在水平面上的半尺寸
func (m *MazeLayout) HalfExtents() (float64, float64) {
	return float64(m.Width()) * m.CellSize / 2, float64(m.Depth()) * m.CellSize / 2
}
