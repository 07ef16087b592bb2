package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/mazebeam/internal/rigidbody"
	"github.com/gonewx/mazebeam/pkg/components"
	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/ecs"
	"github.com/gonewx/mazebeam/pkg/entities"
	"github.com/gonewx/mazebeam/pkg/geom"
	"github.com/gonewx/mazebeam/pkg/physics"
	"github.com/gonewx/mazebeam/pkg/world"
)

// newFloorWorld 带一块大地面（顶面 y=0）的物理世界
func newFloorWorld(t *testing.T, cfg *config.GameConfig) *rigidbody.World {
	t.Helper()
	pw, err := rigidbody.NewWorld(rigidbody.Config{Gravity: mgl64.Vec3{0, cfg.Physics.Gravity, 0}})
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	if _, err := pw.CreateBoxBody(mgl64.Vec3{0, -10, 0}, mgl64.Vec3{2000, 10, 2000}, 0, physics.Material{Friction: 0.7}); err != nil {
		t.Fatalf("floor: %v", err)
	}
	return pw
}

func TestPhysicsSystem_SyncKeepsVerticalOffset(t *testing.T) {
	cfg := config.DefaultGameConfig()
	pw := newFloorWorld(t, cfg)
	em := ecs.NewEntityManager()
	registry := world.NewTargetRegistry()
	system := NewPhysicsSystem(em, pw, registry, cfg.Physics)

	player := entities.NewCharacterEntity(em, pw, cfg.Character, nil, mgl64.Vec3{0, 100, 0})
	enemy, err := entities.NewEnemyEntity(em, pw, registry, cfg.Enemy, testArchetype, "enemy_01_1", mgl64.Vec3{200, 100, 0})
	if err != nil {
		t.Fatalf("NewEnemyEntity failed: %v", err)
	}

	for i := 0; i < 120; i++ {
		system.Step(1.0 / 60)
		system.Sync()
	}

	for _, id := range []ecs.EntityID{player, enemy} {
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		pb, _ := ecs.GetComponent[*components.PhysicsBodyComponent](em, id)
		center, _, _ := pw.WorldTransform(pb.Body)
		if want := center.Sub(mgl64.Vec3{0, pb.Height / 2, 0}); tr.Position != want {
			t.Errorf("entity %d: expected feet %v, got %v", id, want, tr.Position)
		}
		if math.Abs(tr.Position.Y()) > 1 {
			t.Errorf("entity %d: expected to stand on the floor, feet y=%f", id, tr.Position.Y())
		}
	}

	target, _ := ecs.GetComponent[*components.TargetComponent](em, enemy)
	entry, ok := registry.Get(target.TargetID)
	if !ok {
		t.Fatal("Expected enemy target registered")
	}
	pb, _ := ecs.GetComponent[*components.PhysicsBodyComponent](em, enemy)
	center, _, _ := pw.WorldTransform(pb.Body)
	if got := entry.Shape.(*geom.Capsule).Center; got != center {
		t.Errorf("Expected enemy target at body center %v, got %v", center, got)
	}
}

func TestSphereSystem_SpawnSyncDestroy(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Spheres.Count = 5
	pw := newFloorWorld(t, cfg)
	em := ecs.NewEntityManager()
	registry := world.NewTargetRegistry()
	spheres := NewSphereSystem(em, pw, registry, cfg.Spheres, 20)

	drops := []mgl64.Vec3{{0, 0, 0}, {500, 0, 500}}
	ids := spheres.SpawnSpheres(drops, rand.New(rand.NewSource(11)))
	if len(ids) != 5 || spheres.Count() != 5 || registry.Len() != 5 {
		t.Fatalf("Expected 5 spheres registered, got ids=%d count=%d targets=%d", len(ids), spheres.Count(), registry.Len())
	}

	for i, id := range ids {
		d, _ := ecs.GetComponent[*components.DestructibleComponent](em, id)
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		if d.Radius < cfg.Spheres.MinRadius || d.Radius > cfg.Spheres.MaxRadius {
			t.Errorf("sphere %d: radius %f out of range", i, d.Radius)
		}
		drop := drops[i%len(drops)]
		if geom.HorizontalDistance(tr.Position, drop) > 20*math.Sqrt2+1e-9 {
			t.Errorf("sphere %d: expected near drop %v, got %v", i, drop, tr.Position)
		}
		if tr.Position.Y() < cfg.Spheres.DropHeight {
			t.Errorf("sphere %d: expected above drop height, got y=%f", i, tr.Position.Y())
		}
		for _, c := range d.Color {
			if c < 51 {
				t.Errorf("sphere %d: expected bright color, got %v", i, d.Color)
			}
		}
	}

	for i := 0; i < 240; i++ {
		pw.StepSimulation(1.0/60, 2, 1.0/60)
	}
	spheres.Sync()

	first := ids[0]
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, first)
	d, _ := ecs.GetComponent[*components.DestructibleComponent](em, first)
	entry, _ := registry.Get(d.TargetID)
	if entry.Shape.(*geom.Sphere).Center != tr.Position {
		t.Errorf("Expected target moved to %v, got %v", tr.Position, entry.Shape.(*geom.Sphere).Center)
	}
	if tr.Position.Y() > cfg.Spheres.DropHeight {
		t.Errorf("Expected sphere to have fallen, y=%f", tr.Position.Y())
	}

	bodies := pw.BodyCount()
	pos, color, ok := spheres.Destroy(first)
	if !ok || pos != tr.Position || color != d.Color {
		t.Fatalf("Expected destroy to report position and color, got %v %v %v", pos, color, ok)
	}
	if pw.BodyCount() != bodies-1 || registry.Len() != 4 || spheres.Count() != 4 {
		t.Errorf("Expected sphere fully removed, bodies=%d targets=%d count=%d", pw.BodyCount(), registry.Len(), spheres.Count())
	}
	if _, _, ok := spheres.Destroy(first); ok {
		t.Error("Expected second destroy to fail")
	}
}
