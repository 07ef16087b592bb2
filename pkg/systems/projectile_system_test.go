package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/gonewx/mazebeam/pkg/components"
	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/ecs"
	"github.com/gonewx/mazebeam/pkg/geom"
	"github.com/gonewx/mazebeam/pkg/world"
)

// addWallAt 在 +Z 方向距离 d 处放一面墙（面向 -Z）
func addWallAt(r *world.TargetRegistry, d float64) uuid.UUID {
	return r.Add(world.Target{
		Name:     "Wall_test",
		Kind:     world.TargetWall,
		Shape:    geom.NewAABB(mgl64.Vec3{0, 27, d + 10}, mgl64.Vec3{100, 100, 10}),
		Occludes: true,
	})
}

func TestProjectileSystem_WallHitFrameCount(t *testing.T) {
	tests := []struct {
		name       string
		speed      float64
		dt         float64
		wantFrames int
	}{
		{"s*d=6", 384, 1.0 / 64, 9},
		{"s*d=10.9375", 700, 1.0 / 64, 5},
		{"s*d=15.625", 1000, 1.0 / 64, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEngineFixture(func(cfg *config.GameConfig) {
				cfg.Beam.Speed = tt.speed
				cfg.Beam.MaxLifetime = 0
			})
			addWallAt(f.registry, 50)
			id := f.projectiles.SpawnBeam(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, 27, 0)
			beam, _ := ecs.GetComponent[*components.BeamComponent](f.em, id)

			stops := 0
			onCollision := func(hit world.Intersection, b *components.BeamComponent) CollisionAction {
				if hit.Target.Kind == world.TargetWall {
					stops++
					return ActionStopAndAdjust
				}
				return ActionIgnore
			}

			frames := 0
			for beam.State == components.BeamFlying && frames < 100 {
				f.step(tt.dt, onCollision)
				frames++
			}
			if frames != tt.wantFrames {
				t.Errorf("Expected stop after %d frames, got %d", tt.wantFrames, frames)
			}
			if stops != 1 {
				t.Errorf("Expected exactly one stop_and_adjust, got %d", stops)
			}
			wantScale := 50 / f.cfg.Beam.Length
			if math.Abs(beam.Scale-wantScale) > 1e-9 {
				t.Errorf("Expected scale %f, got %f", wantScale, beam.Scale)
			}
			if beam.Speed != 0 {
				t.Errorf("Expected speed 0 after hit, got %f", beam.Speed)
			}
		})
	}
}

func TestProjectileSystem_StruckBeamHoldsAndExpires(t *testing.T) {
	const dt = 1.0 / 64
	f := newEngineFixture(func(cfg *config.GameConfig) {
		cfg.Beam.Speed = 1000
		cfg.Beam.MaxLifetime = 0
	})
	addWallAt(f.registry, 50)
	id := f.projectiles.SpawnBeam(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, 27, 0)
	beam, _ := ecs.GetComponent[*components.BeamComponent](f.em, id)

	for beam.State == components.BeamFlying {
		f.step(dt, nil)
	}
	hitPos := beam.Position
	if math.Abs(hitPos.Z()-50) > 1e-9 {
		t.Errorf("Expected beam clamped to the wall at z=50, got %v", hitPos)
	}
	if f.projectiles.ActiveCounts().Particles != 1 {
		t.Error("Expected an impact particle batch on hit")
	}

	frames := 0
	for !f.em.IsMarkedForDestruction(id) && frames < 100 {
		f.step(dt, nil)
		frames++
		if beam.Position != hitPos {
			t.Fatalf("frame %d: struck beam moved to %v", frames, beam.Position)
		}
	}
	if beam.State != components.BeamExpired {
		t.Errorf("Expected expired state when marked for removal, got %v", beam.State)
	}
	// 0.15 / (1/64) = 9.6 -> 第 10 帧移除
	if frames != 10 {
		t.Errorf("Expected removal 10 frames after hit, got %d", frames)
	}
	if elapsed := f.clock.Now() - beam.HitAt; elapsed < f.cfg.Beam.DisplayAfterHit || elapsed > f.cfg.Beam.DisplayAfterHit+dt {
		t.Errorf("Expected removal within one frame of %f, got %f", f.cfg.Beam.DisplayAfterHit, elapsed)
	}
}

func TestProjectileSystem_TargetDamagedAtMostOncePerBeam(t *testing.T) {
	f := newEngineFixture(func(cfg *config.GameConfig) {
		cfg.Beam.Speed = 600
		cfg.Beam.MaxLifetime = 0
	})
	// 目标不会被回调移除，光束会在多帧内持续与它相交
	sphere := f.registry.Add(world.Target{
		Name:  "sphere",
		Kind:  world.TargetDestructible,
		Shape: &geom.Sphere{Center: mgl64.Vec3{0, 27, 40}, Radius: 10},
	})
	addWallAt(f.registry, 300)

	id := f.projectiles.SpawnBeam(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, 27, 0)
	beam, _ := ecs.GetComponent[*components.BeamComponent](f.em, id)

	hits := map[uuid.UUID]int{}
	onCollision := func(hit world.Intersection, b *components.BeamComponent) CollisionAction {
		switch hit.Target.Kind {
		case world.TargetWall:
			return ActionStopAndAdjust
		case world.TargetDestructible:
			hits[hit.Target.ID]++
			return ActionDestroyTargetAndContinue
		}
		return ActionIgnore
	}

	for i := 0; i < 60 && beam.State == components.BeamFlying; i++ {
		f.step(1.0/60, onCollision)
	}
	if hits[sphere] != 1 {
		t.Errorf("Expected sphere handled once, got %d", hits[sphere])
	}
	if !beam.AlreadyHit(sphere) {
		t.Error("Expected sphere in the beam hit set")
	}
	if beam.State != components.BeamStruck {
		t.Errorf("Expected beam to continue and strike the wall, got %s", beam.State)
	}

	// 另一道光束可以再次命中同一目标
	second := f.projectiles.SpawnBeam(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, 27, 0)
	b2, _ := ecs.GetComponent[*components.BeamComponent](f.em, second)
	for i := 0; i < 60 && b2.State == components.BeamFlying; i++ {
		f.step(1.0/60, onCollision)
	}
	if hits[sphere] != 2 {
		t.Errorf("Expected second beam to hit the sphere once more, got total %d", hits[sphere])
	}
}

func TestProjectileSystem_IgnoreContinuesToNextIntersection(t *testing.T) {
	f := newEngineFixture(func(cfg *config.GameConfig) { cfg.Beam.Speed = 6000 })
	f.registry.Add(world.Target{Name: "ghost", Kind: world.TargetEnemy, Shape: &geom.Sphere{Center: mgl64.Vec3{0, 27, 20}, Radius: 5}})
	addWallAt(f.registry, 60)

	id := f.projectiles.SpawnBeam(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, 27, 0)
	beam, _ := ecs.GetComponent[*components.BeamComponent](f.em, id)

	var order []string
	f.step(1.0/60, func(hit world.Intersection, b *components.BeamComponent) CollisionAction {
		order = append(order, hit.Target.Name)
		if hit.Target.Kind == world.TargetWall {
			return ActionStopAndAdjust
		}
		return ActionIgnore
	})

	if len(order) != 2 || order[0] != "ghost" || order[1] != "Wall_test" {
		t.Errorf("Expected nearest-first [ghost Wall_test], got %v", order)
	}
	if beam.State != components.BeamStruck {
		t.Errorf("Expected struck beam, got %s", beam.State)
	}
}

func TestProjectileSystem_MaxLifetime(t *testing.T) {
	tests := []struct {
		name        string
		maxLifetime float64
		wantExpired bool
	}{
		{"limited", 1.0, true},
		{"unlimited", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEngineFixture(func(cfg *config.GameConfig) {
				cfg.Beam.MaxLifetime = tt.maxLifetime
				cfg.Beam.Speed = 10
			})
			id := f.projectiles.SpawnBeam(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 27, 0)
			for i := 0; i < 80; i++ {
				f.step(1.0/60, nil)
			}
			if got := f.em.IsMarkedForDestruction(id); got != tt.wantExpired {
				t.Errorf("Expected expired=%v, got %v", tt.wantExpired, got)
			}
			beam, _ := ecs.GetComponent[*components.BeamComponent](f.em, id)
			if got := beam.State == components.BeamExpired; got != tt.wantExpired {
				t.Errorf("Expected expired state=%v, got %v", tt.wantExpired, beam.State)
			}
		})
	}
}

func TestProjectileSystem_SpawnRingInFront(t *testing.T) {
	f := newEngineFixture(nil)
	id := f.projectiles.SpawnRing(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, 36)
	ring, ok := ecs.GetComponent[*components.RingComponent](f.em, id)
	if !ok {
		t.Fatal("Expected ring component")
	}
	wantY := f.cfg.Ring.Radius * f.cfg.Ring.UpRingRadii
	if math.Abs(ring.Position.X()-36) > 1e-9 || math.Abs(ring.Position.Y()-wantY) > 1e-9 {
		t.Errorf("Expected ring at (36,%f,0), got %v", wantY, ring.Position)
	}
	if c := f.projectiles.ActiveCounts(); c.Rings != 1 || c.Beams != 0 {
		t.Errorf("Expected 1 ring, got %+v", c)
	}
}

func TestProjectileSystem_DegenerateForwardFallsBack(t *testing.T) {
	f := newEngineFixture(nil)
	id := f.projectiles.SpawnBeam(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, 27, 10)
	beam, _ := ecs.GetComponent[*components.BeamComponent](f.em, id)
	if beam.Direction != geom.LocalForward {
		t.Errorf("Expected fallback direction %v, got %v", geom.LocalForward, beam.Direction)
	}
	for i := 0; i < 3; i++ {
		if math.IsNaN(beam.Origin[i]) {
			t.Fatalf("Expected finite origin, got %v", beam.Origin)
		}
	}
}
