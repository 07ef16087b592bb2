package world

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/geom"
	"github.com/gonewx/mazebeam/pkg/physics"
)

// floorThickness 地面盒体厚度，顶面位于 y=0
const floorThickness = 20.0

// ErrNoMaze 没有可用的迷路布局
var ErrNoMaze = errors.New("world: maze layout missing")

// Wall 迷路中的一面墙（供渲染和小地图使用）
type Wall struct {
	Name   string
	Cell   config.Cell
	Bounds geom.AABB
	Slope  bool
	Body   physics.BodyID
	Target uuid.UUID
}

// Maze 构建完成的迷路
type Maze struct {
	Layout    *config.MazeLayout
	Walls     []Wall
	FloorBody physics.BodyID
}

// BuildMaze 根据布局创建地面、墙体和斜坡墙，同时注册物理刚体与碰撞目标
//
// 墙体命名为 Wall_<行>_<列>，斜坡墙为 Wall_Slope_<行>_<列>。
// 迷路是必需资源，任何失败都会返回错误，调用方应视为致命错误。
//
// 参数:
//   - layout: 迷路布局
//   - registry: 碰撞目标注册表
//   - pw: 物理世界
//   - mat: 墙体材质
func BuildMaze(layout *config.MazeLayout, registry *TargetRegistry, pw physics.World, mat physics.Material) (*Maze, error) {
	if layout == nil {
		return nil, ErrNoMaze
	}
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build maze: %w", err)
	}

	maze := &Maze{Layout: layout}

	hx, hz := layout.HalfExtents()
	floorHalf := mgl64.Vec3{hx, floorThickness / 2, hz}
	floorCenter := mgl64.Vec3{0, -floorThickness / 2, 0}
	floorBody, err := pw.CreateBoxBody(floorCenter, floorHalf, 0, mat)
	if err != nil {
		return nil, fmt.Errorf("failed to create maze floor: %w", err)
	}
	maze.FloorBody = floorBody
	registry.Add(Target{
		Name:  "Floor",
		Kind:  TargetFloor,
		Shape: geom.NewAABB(floorCenter, floorHalf),
	})

	half := layout.CellSize / 2
	for _, cell := range layout.Find(config.CellWall) {
		center := layout.CellCenter(cell).Add(mgl64.Vec3{0, layout.WallHeight / 2, 0})
		halfExtents := mgl64.Vec3{half, layout.WallHeight / 2, half}
		body, err := pw.CreateBoxBody(center, halfExtents, 0, mat)
		if err != nil {
			return nil, fmt.Errorf("failed to create wall (%d,%d): %w", cell.Row, cell.Col, err)
		}
		name := fmt.Sprintf("Wall_%d_%d", cell.Row, cell.Col)
		box := geom.NewAABB(center, halfExtents)
		id := registry.Add(Target{Name: name, Kind: TargetWall, Shape: box, Occludes: true})
		maze.Walls = append(maze.Walls, Wall{Name: name, Cell: cell, Bounds: box, Body: body, Target: id})
	}

	for _, cell := range layout.Find(config.CellSlope) {
		tris := slopeTriangles(layout.CellCenter(cell), half, layout.WallHeight)
		raw := make([][3]mgl64.Vec3, len(tris))
		for i, t := range tris {
			raw[i] = [3]mgl64.Vec3{t.A, t.B, t.C}
		}
		body, err := pw.CreateStaticMeshBody(raw, mat)
		if err != nil {
			return nil, fmt.Errorf("failed to create slope wall (%d,%d): %w", cell.Row, cell.Col, err)
		}
		name := fmt.Sprintf("Wall_Slope_%d_%d", cell.Row, cell.Col)
		mesh := geom.NewMesh(tris)
		id := registry.Add(Target{Name: name, Kind: TargetWall, Shape: mesh, Occludes: true})
		maze.Walls = append(maze.Walls, Wall{Name: name, Cell: cell, Bounds: mesh.Bounds(), Slope: true, Body: body, Target: id})
	}

	return maze, nil
}

// slopeTriangles 生成占满一个格子的楔形斜坡：
// 斜面从 -X 侧地面升到 +X 侧墙顶，+X 侧为竖直背面
func slopeTriangles(center mgl64.Vec3, half, height float64) []geom.Triangle {
	x0, x1 := center.X()-half, center.X()+half
	z0, z1 := center.Z()-half, center.Z()+half

	lowNear := mgl64.Vec3{x0, 0, z0}
	lowFar := mgl64.Vec3{x0, 0, z1}
	topNear := mgl64.Vec3{x1, height, z0}
	topFar := mgl64.Vec3{x1, height, z1}
	baseNear := mgl64.Vec3{x1, 0, z0}
	baseFar := mgl64.Vec3{x1, 0, z1}

	return []geom.Triangle{
		// 斜面
		{A: lowNear, B: topNear, C: topFar},
		{A: lowNear, B: topFar, C: lowFar},
		// 背面
		{A: baseNear, B: baseFar, C: topFar},
		{A: baseNear, B: topFar, C: topNear},
		// 两个侧面
		{A: lowNear, B: baseNear, C: topNear},
		{A: lowFar, B: topFar, C: baseFar},
	}
}
