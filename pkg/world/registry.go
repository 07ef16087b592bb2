// Package world 管理光束和相机可以命中的碰撞目标，以及迷路几何的构建。
package world

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/gonewx/mazebeam/pkg/ecs"
	"github.com/gonewx/mazebeam/pkg/geom"
)

// TargetKind 碰撞目标类型
type TargetKind int

const (
	TargetWall TargetKind = iota
	TargetFloor
	TargetDestructible
	TargetEnemy
)

// String 返回类型名
func (k TargetKind) String() string {
	switch k {
	case TargetWall:
		return "wall"
	case TargetFloor:
		return "floor"
	case TargetDestructible:
		return "destructible"
	case TargetEnemy:
		return "enemy"
	}
	return "unknown"
}

// Target 注册表中的一个碰撞目标
type Target struct {
	ID     uuid.UUID
	Name   string
	Kind   TargetKind
	Shape  geom.Shape
	Entity ecs.EntityID // 对应实体，静态几何为 0

	// Occludes 是否遮挡相机
	Occludes bool
}

// Intersection 射线与目标的一次相交
type Intersection struct {
	Target   *Target
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// TargetRegistry 碰撞目标注册表
//
// 由游戏循环协调器持有并显式传递给需要它的系统。
// 遍历按注册顺序进行，距离相同的命中保持注册顺序。
type TargetRegistry struct {
	targets map[uuid.UUID]*Target
	order   []uuid.UUID
}

// NewTargetRegistry 创建空注册表
func NewTargetRegistry() *TargetRegistry {
	return &TargetRegistry{
		targets: make(map[uuid.UUID]*Target),
	}
}

// Add 注册目标，ID 为空时自动生成
//
// 返回:
//   - uuid.UUID: 目标ID
func (r *TargetRegistry) Add(t Target) uuid.UUID {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if _, exists := r.targets[t.ID]; !exists {
		r.order = append(r.order, t.ID)
	}
	target := t
	r.targets[t.ID] = &target
	return t.ID
}

// Remove 注销目标，目标不存在时返回 false
func (r *TargetRegistry) Remove(id uuid.UUID) bool {
	if _, exists := r.targets[id]; !exists {
		return false
	}
	delete(r.targets, id)
	r.order = slices.DeleteFunc(r.order, func(o uuid.UUID) bool { return o == id })
	return true
}

// Get 按ID查找目标
func (r *TargetRegistry) Get(id uuid.UUID) (*Target, bool) {
	t, ok := r.targets[id]
	return t, ok
}

// Len 目标数量
func (r *TargetRegistry) Len() int {
	return len(r.targets)
}

// Each 按注册顺序遍历目标
func (r *TargetRegistry) Each(fn func(*Target)) {
	for _, id := range r.order {
		fn(r.targets[id])
	}
}

// Move 把可移动目标（球体、胶囊、盒子）的中心移到 center
// 静态网格和值类型包围盒不可移动，返回 false
func (r *TargetRegistry) Move(id uuid.UUID, center mgl64.Vec3) bool {
	t, ok := r.targets[id]
	if !ok {
		return false
	}
	switch s := t.Shape.(type) {
	case *geom.Sphere:
		s.Center = center
	case *geom.Capsule:
		s.Center = center
	case *geom.Box:
		s.Center = center
	default:
		return false
	}
	return true
}

// IntersectAll 返回射线在 [near, far] 内与所有目标的相交，按距离从近到远排序
//
// 参数:
//   - origin: 射线起点
//   - dir: 射线方向（会被归一化，退化时返回空）
//   - near, far: 距离区间
func (r *TargetRegistry) IntersectAll(origin, dir mgl64.Vec3, near, far float64) []Intersection {
	if dir.Len() < geom.Epsilon || far < near {
		return nil
	}
	dir = dir.Normalize()

	var hits []Intersection
	for _, id := range r.order {
		t := r.targets[id]
		if t.Shape == nil {
			continue
		}
		h, ok := t.Shape.IntersectRay(origin, dir, near, far)
		if !ok {
			continue
		}
		hits = append(hits, Intersection{
			Target:   t,
			Point:    h.Point,
			Normal:   h.Normal,
			Distance: h.Distance,
		})
	}
	slices.SortStableFunc(hits, func(a, b Intersection) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	return hits
}

// FirstOccluder 返回射线上最近的遮挡相机的目标
func (r *TargetRegistry) FirstOccluder(origin, dir mgl64.Vec3, near, far float64) (Intersection, bool) {
	for _, hit := range r.IntersectAll(origin, dir, near, far) {
		if hit.Target.Occludes {
			return hit, true
		}
	}
	return Intersection{}, false
}
