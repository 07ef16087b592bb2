// Package rigidbody 是物理世界适配器的内置实现。
//
// 只覆盖游戏需要的刚体行为：重力、固定子步积分、胶囊/球体/盒体与静态几何的
// 穿透修正、动态刚体之间的推挤，以及射线查询。刚体不做角动量积分。
package rigidbody

import (
	"errors"
	"fmt"
	"log"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/mazebeam/pkg/geom"
	"github.com/gonewx/mazebeam/pkg/physics"
)

const (
	// 低于该速度持续 sleepDelay 秒的刚体进入休眠
	sleepSpeed = 2.0
	sleepDelay = 2.0
	// 法向冲击速度低于该值时不反弹，避免静止接触抖动
	bounceThreshold = 20.0
)

// Config 物理世界参数
type Config struct {
	Gravity mgl64.Vec3
}

// World 实现 physics.World
type World struct {
	gravity     mgl64.Vec3
	bodies      map[physics.BodyID]*body
	order       []physics.BodyID // 创建顺序，保证逐步结果确定
	nextID      physics.BodyID
	accumulator float64
}

var _ physics.World = (*World)(nil)

// NewWorld 创建物理世界
//
// 参数:
//   - cfg: 世界参数，重力分量必须是有限值
//
// 返回:
//   - *World: 物理世界
//   - error: 参数非法时返回错误（初始化失败属于致命错误）
func NewWorld(cfg Config) (*World, error) {
	for i := 0; i < 3; i++ {
		if math.IsNaN(cfg.Gravity[i]) || math.IsInf(cfg.Gravity[i], 0) {
			return nil, fmt.Errorf("failed to create physics world: invalid gravity %v", cfg.Gravity)
		}
	}
	return &World{
		gravity: cfg.Gravity,
		bodies:  make(map[physics.BodyID]*body),
		nextID:  1,
	}, nil
}

func (w *World) add(b *body) physics.BodyID {
	b.id = w.nextID
	w.nextID++
	if b.rotation == (mgl64.Quat{}) {
		b.rotation = mgl64.QuatIdent()
	}
	if b.isStatic() {
		b.bounds = b.shape().Bounds()
	}
	w.bodies[b.id] = b
	w.order = append(w.order, b.id)
	return b.id
}

func invMass(mass float64) float64 {
	if mass <= 0 {
		return 0
	}
	return 1 / mass
}

// CreateCapsuleBody 创建竖直胶囊刚体（旋转锁定，不休眠），position 为胶囊中心
func (w *World) CreateCapsuleBody(position mgl64.Vec3, height, radius, mass float64, mat physics.Material) (physics.BodyID, error) {
	if height <= 0 || radius <= 0 {
		return physics.InvalidBody, fmt.Errorf("failed to create capsule body: height=%.2f radius=%.2f", height, radius)
	}
	return w.add(&body{
		kind:         physics.ShapeCapsule,
		position:     position,
		invMass:      invMass(mass),
		material:     mat,
		radius:       radius,
		halfSegment:  math.Max(0, height/2-radius),
		neverSleep:   true,
		lockRotation: true,
	}), nil
}

// CreateBoxBody 创建轴对齐盒体
func (w *World) CreateBoxBody(position, halfExtents mgl64.Vec3, mass float64, mat physics.Material) (physics.BodyID, error) {
	if halfExtents.X() <= 0 || halfExtents.Y() <= 0 || halfExtents.Z() <= 0 {
		return physics.InvalidBody, fmt.Errorf("failed to create box body: half extents %v", halfExtents)
	}
	return w.add(&body{
		kind:        physics.ShapeBox,
		position:    position,
		invMass:     invMass(mass),
		material:    mat,
		halfExtents: halfExtents,
	}), nil
}

// CreateSphereBody 创建球体刚体
func (w *World) CreateSphereBody(position mgl64.Vec3, radius, mass float64, mat physics.Material) (physics.BodyID, error) {
	if radius <= 0 {
		return physics.InvalidBody, fmt.Errorf("failed to create sphere body: radius=%.2f", radius)
	}
	return w.add(&body{
		kind:     physics.ShapeSphere,
		position: position,
		invMass:  invMass(mass),
		material: mat,
		radius:   radius,
	}), nil
}

// CreateStaticMeshBody 创建静态三角网格刚体
func (w *World) CreateStaticMeshBody(triangles [][3]mgl64.Vec3, mat physics.Material) (physics.BodyID, error) {
	if len(triangles) == 0 {
		return physics.InvalidBody, errors.New("failed to create mesh body: no triangles")
	}
	tris := make([]geom.Triangle, len(triangles))
	for i, t := range triangles {
		tris[i] = geom.Triangle{A: t[0], B: t[1], C: t[2]}
	}
	return w.add(&body{
		kind:      physics.ShapeMesh,
		material:  mat,
		triangles: tris,
	}), nil
}

// RemoveBody 释放刚体
func (w *World) RemoveBody(id physics.BodyID) error {
	b, ok := w.bodies[id]
	if !ok {
		return fmt.Errorf("failed to remove body %d: %w", id, physics.ErrInvalidBody)
	}
	b.release()
	delete(w.bodies, id)
	if i := slices.Index(w.order, id); i >= 0 {
		w.order = slices.Delete(w.order, i, i+1)
	}
	return nil
}

// BodyCount 返回当前刚体数量
func (w *World) BodyCount() int {
	return len(w.bodies)
}

// SetLinearVelocity 设置线速度（不会唤醒休眠刚体，需显式 Activate）
func (w *World) SetLinearVelocity(id physics.BodyID, v mgl64.Vec3) {
	b, ok := w.bodies[id]
	if !ok || b.isStatic() {
		return
	}
	b.velocity = v
}

// LinearVelocity 返回线速度
func (w *World) LinearVelocity(id physics.BodyID) (mgl64.Vec3, bool) {
	b, ok := w.bodies[id]
	if !ok {
		return mgl64.Vec3{}, false
	}
	return b.velocity, true
}

// WorldTransform 返回刚体中心位置和朝向
func (w *World) WorldTransform(id physics.BodyID) (mgl64.Vec3, mgl64.Quat, bool) {
	b, ok := w.bodies[id]
	if !ok {
		return mgl64.Vec3{}, mgl64.QuatIdent(), false
	}
	return b.position, b.rotation, true
}

// Activate 唤醒刚体
func (w *World) Activate(id physics.BodyID) {
	if b, ok := w.bodies[id]; ok {
		b.sleeping = false
		b.sleepTimer = 0
	}
}

// IsSleeping 返回刚体是否休眠
func (w *World) IsSleeping(id physics.BodyID) bool {
	b, ok := w.bodies[id]
	return ok && b.sleeping
}

// StepSimulation 推进模拟。
// maxSubSteps <= 0 时直接以 delta 积分一步；否则累积时间并以 fixedSubStep 为步长
// 最多推进 maxSubSteps 步，超出部分的时间被丢弃。
func (w *World) StepSimulation(delta float64, maxSubSteps int, fixedSubStep float64) {
	if delta <= 0 {
		return
	}
	if maxSubSteps <= 0 || fixedSubStep <= 0 {
		w.substep(delta)
		return
	}

	w.accumulator += delta
	steps := int(w.accumulator / fixedSubStep)
	w.accumulator -= float64(steps) * fixedSubStep
	if steps > maxSubSteps {
		log.Printf("[Physics] Warning: dropping %d substeps (delta=%.4f)", steps-maxSubSteps, delta)
		steps = maxSubSteps
	}
	for i := 0; i < steps; i++ {
		w.substep(fixedSubStep)
	}
}

func (w *World) substep(h float64) {
	dynamic := make([]*body, 0, len(w.order))
	static := make([]*body, 0, len(w.order))
	for _, id := range w.order {
		b := w.bodies[id]
		if b.isStatic() {
			static = append(static, b)
		} else {
			dynamic = append(dynamic, b)
		}
	}

	for _, b := range dynamic {
		if b.sleeping {
			continue
		}
		b.velocity = b.velocity.Add(w.gravity.Mul(h))
		b.position = b.position.Add(b.velocity.Mul(h))
	}

	for _, b := range dynamic {
		if b.sleeping {
			continue
		}
		for _, s := range static {
			resolveStatic(b, s)
		}
	}

	for i := 0; i < len(dynamic); i++ {
		for j := i + 1; j < len(dynamic); j++ {
			a, c := dynamic[i], dynamic[j]
			if a.sleeping && c.sleeping {
				continue
			}
			resolveDynamic(a, c)
		}
	}

	for _, b := range dynamic {
		if b.neverSleep || b.sleeping {
			continue
		}
		if b.velocity.Len() < sleepSpeed {
			b.sleepTimer += h
			if b.sleepTimer >= sleepDelay {
				b.sleeping = true
				b.velocity = mgl64.Vec3{}
			}
		} else {
			b.sleepTimer = 0
		}
	}
}

// Raycast 线段射线查询，返回最近命中
func (w *World) Raycast(from, to mgl64.Vec3, filter physics.Filter) (physics.Hit, bool) {
	d := to.Sub(from)
	length := d.Len()
	if length < geom.Epsilon {
		return physics.Hit{}, false
	}
	dir := d.Mul(1 / length)

	best := physics.Hit{Distance: math.Inf(1)}
	found := false
	for _, id := range w.order {
		if filter != nil && !filter(id) {
			continue
		}
		b := w.bodies[id]
		shape := b.shape()
		if shape == nil {
			continue
		}
		h, ok := shape.IntersectRay(from, dir, 0, length)
		if ok && h.Distance < best.Distance {
			best = physics.Hit{Body: id, Point: h.Point, Normal: h.Normal, Distance: h.Distance}
			found = true
		}
	}
	return best, found
}
