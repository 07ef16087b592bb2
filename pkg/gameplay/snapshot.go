package gameplay

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/mazebeam/pkg/components"
	"github.com/gonewx/mazebeam/pkg/ecs"
	"github.com/gonewx/mazebeam/pkg/systems"
)

// ActorView 角色（玩家或敌人）的只读视图
type ActorView struct {
	Name     string
	Position mgl64.Vec3 // 模型原点（脚底）
	Forward  mgl64.Vec3
	Radius   float64
	Height   float64
	Action   string
	HP       int
	Engaged  bool
	Color    [3]uint8
}

// BeamView 光束线段
type BeamView struct {
	Tail   mgl64.Vec3
	Head   mgl64.Vec3
	Radius float64
	Struck bool
}

// RingView 光环
type RingView struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	Radius   float64
}

// PointView 粒子或碎片
type PointView struct {
	Position mgl64.Vec3
	Size     float64
	Color    [3]uint8
}

// SphereView 可破坏球体
type SphereView struct {
	Position mgl64.Vec3
	Radius   float64
	Color    [3]uint8
}

// CameraView 相机状态
type CameraView struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Forward  mgl64.Vec3
	Distance float64
}

// Snapshot 一帧结束后渲染需要的全部内容
//
// 墙体是静态的，通过 Coordinator.Maze 读取，不在快照里复制。
type Snapshot struct {
	Started bool
	Time    float64
	Frame   uint64

	Player    ActorView
	Enemies   []ActorView
	Beams     []BeamView
	Rings     []RingView
	Particles []PointView
	Debris    []PointView
	Spheres   []SphereView
	Camera    CameraView
	Counts    systems.TransientCounts
}

// Snapshot 收集当前帧的只读视图
func (c *Coordinator) Snapshot() Snapshot {
	em := c.entityManager
	s := Snapshot{
		Started: c.started,
		Time:    c.clock.Now(),
		Frame:   c.clock.Frame(),
		Counts:  c.projectiles.ActiveCounts(),
		Camera: CameraView{
			Position: c.camera.Position(),
			Target:   c.camera.Target(),
			Forward:  c.camera.Forward(),
			Distance: c.camera.Distance(),
		},
	}

	s.Player = c.actorView(c.player)
	s.Player.Name = "player"
	if char, ok := ecs.GetComponent[*components.CharacterComponent](em, c.player); ok && char.State == components.ActorSingleShot {
		s.Player.Action = char.Action
	}

	for _, id := range c.enemies.Roster() {
		enemy, ok := ecs.GetComponent[*components.EnemyComponent](em, id)
		if !ok || !enemy.IsAlive {
			continue
		}
		view := c.actorView(id)
		view.Name = enemy.Name
		view.HP = enemy.HP
		view.Engaged = enemy.State == components.EnemyEngage
		view.Color = enemy.Color
		s.Enemies = append(s.Enemies, view)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.BeamComponent](em) {
		if em.IsMarkedForDestruction(id) {
			continue
		}
		beam, _ := ecs.GetComponent[*components.BeamComponent](em, id)
		tail := beam.Tail()
		if beam.State == components.BeamStruck {
			tail = beam.Position.Sub(beam.Direction.Mul(beam.Scale * beam.VisualLength))
		}
		s.Beams = append(s.Beams, BeamView{
			Tail:   tail,
			Head:   beam.Position,
			Radius: beam.Radius,
			Struck: beam.State == components.BeamStruck,
		})
	}

	for _, id := range ecs.GetEntitiesWith1[*components.RingComponent](em) {
		if em.IsMarkedForDestruction(id) {
			continue
		}
		ring, _ := ecs.GetComponent[*components.RingComponent](em, id)
		s.Rings = append(s.Rings, RingView{Position: ring.Position, Normal: ring.Normal, Radius: ring.Radius})
	}

	now := c.clock.Now()
	for _, id := range ecs.GetEntitiesWith1[*components.ParticleBatchComponent](em) {
		if em.IsMarkedForDestruction(id) {
			continue
		}
		batch, _ := ecs.GetComponent[*components.ParticleBatchComponent](em, id)
		for _, p := range batch.Samples {
			if now-p.StartTime >= batch.Lifetime {
				continue
			}
			s.Particles = append(s.Particles, PointView{Position: p.Position, Size: batch.Size, Color: batch.Color})
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.DebrisBatchComponent](em) {
		if em.IsMarkedForDestruction(id) {
			continue
		}
		batch, _ := ecs.GetComponent[*components.DebrisBatchComponent](em, id)
		for _, f := range batch.Fragments {
			if !f.Visible {
				continue
			}
			s.Debris = append(s.Debris, PointView{Position: f.Position, Size: f.Size, Color: batch.Color})
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.DestructibleComponent](em) {
		if em.IsMarkedForDestruction(id) {
			continue
		}
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		d, _ := ecs.GetComponent[*components.DestructibleComponent](em, id)
		s.Spheres = append(s.Spheres, SphereView{Position: tr.Position, Radius: d.Radius, Color: d.Color})
	}
	return s
}

func (c *Coordinator) actorView(id ecs.EntityID) ActorView {
	em := c.entityManager
	var v ActorView
	if tr, ok := ecs.GetComponent[*components.TransformComponent](em, id); ok {
		v.Position = tr.Position
		v.Forward = tr.Forward()
	}
	if pb, ok := ecs.GetComponent[*components.PhysicsBodyComponent](em, id); ok {
		v.Radius = pb.Radius
		v.Height = pb.Height
	}
	if anim, ok := ecs.GetComponent[*components.AnimationComponent](em, id); ok {
		v.Action = anim.Current
	}
	return v
}
