package gameplay

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/gonewx/mazebeam/pkg/components"
	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/ecs"
	"github.com/gonewx/mazebeam/pkg/input"
	"github.com/gonewx/mazebeam/pkg/systems"
	"github.com/gonewx/mazebeam/pkg/world"
)

const testFrame = 1.0 / 60

// scriptedInput 由测试直接写入按键状态的输入源
type scriptedInput struct {
	*input.State
	zoom    *input.ZoomState
	samples int
}

func (s *scriptedInput) Sample()                { s.samples++ }
func (s *scriptedInput) Zoom() *input.ZoomState { return s.zoom }

const testMaze = `
name: test_room
cellSize: 100
wallHeight: 150
rows:
  - "#######"
  - "#..O..#"
  - "#.....#"
  - "#..P..#"
  - "#.....#"
  - "#..E..#"
  - "#######"
`

var testManifest = &config.AssetManifest{
	Maze: "test",
	Player: config.ActorAssets{Clips: []config.ClipConfig{
		{Name: "idle", Duration: 2, Loop: true},
		{Name: "run", Duration: 0.8, Loop: true},
		{Name: "kick", Duration: 1.2},
	}},
	Enemies: []config.EnemyArchetype{{
		Type:  "enemy_01",
		Color: "#c04040",
		Clips: []config.ClipConfig{{Name: "default", Duration: 1.5, Loop: true}},
	}},
}

type coordinatorFixture struct {
	c       *Coordinator
	input   *scriptedInput
	fired   int
	impacts int
}

func newCoordinatorFixture(t *testing.T, mutate func(*config.GameConfig)) *coordinatorFixture {
	t.Helper()
	layout, err := config.ParseMazeLayout([]byte(testMaze))
	if err != nil {
		t.Fatalf("failed to parse maze: %v", err)
	}
	cfg := config.DefaultGameConfig()
	cfg.Enemy.SpawnCount = 1
	cfg.Enemy.SpawnRadius = 0
	cfg.Spheres.Count = 4
	if mutate != nil {
		mutate(cfg)
	}

	f := &coordinatorFixture{}
	f.input = &scriptedInput{State: input.NewState(), zoom: NewZoomState(cfg, 0)}
	f.c, err = NewCoordinator(Deps{
		Config:   cfg,
		Maze:     layout,
		Manifest: testManifest,
		Input:    f.input,
		Rand:     rand.New(rand.NewSource(5)),
		Hooks: Hooks{
			OnBeamFired: func() { f.fired++ },
			OnImpact:    func() { f.impacts++ },
		},
	})
	if err != nil {
		t.Fatalf("NewCoordinator failed: %v", err)
	}
	return f
}

func (f *coordinatorFixture) run(frames int) {
	for i := 0; i < frames; i++ {
		f.c.Frame(testFrame)
	}
}

func (f *coordinatorFixture) start() {
	f.input.Press(input.ActionStart)
	f.c.Frame(testFrame)
}

func TestNewCoordinator_RequiredDeps(t *testing.T) {
	layout, _ := config.ParseMazeLayout([]byte(testMaze))
	src := &scriptedInput{State: input.NewState()}

	tests := []struct {
		name string
		deps Deps
		want error
	}{
		{"missing maze", Deps{Input: src}, world.ErrNoMaze},
		{"missing input", Deps{Maze: layout}, ErrNoInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCoordinator(tt.deps)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected error %v, got %v", tt.want, err)
			}
			if c != nil {
				t.Error("Expected nil coordinator on fatal error")
			}
		})
	}
}

func TestNewCoordinator_PopulatesWorld(t *testing.T) {
	f := newCoordinatorFixture(t, nil)
	snap := f.c.Snapshot()

	if len(snap.Enemies) != 1 {
		t.Fatalf("Expected 1 enemy, got %d", len(snap.Enemies))
	}
	enemy := snap.Enemies[0]
	if math.Abs(enemy.Position.Z()-200) > 1e-9 || math.Abs(enemy.Position.X()) > 1e-9 {
		t.Errorf("Expected enemy spawned at the E cell, got %v", enemy.Position)
	}
	if enemy.Color != [3]uint8{0xc0, 0x40, 0x40} {
		t.Errorf("Expected archetype colour, got %v", enemy.Color)
	}
	if len(snap.Spheres) != 4 {
		t.Errorf("Expected 4 spheres, got %d", len(snap.Spheres))
	}
	if snap.Player.Position.Len() > 1e-9 {
		t.Errorf("Expected player at the P cell (origin), got %v", snap.Player.Position)
	}
	if snap.Player.Action != systems.ActionIdle {
		t.Errorf("Expected player idle, got %q", snap.Player.Action)
	}
	if math.Abs(snap.Camera.Distance-f.c.Config().Camera.DefaultDistance()) > 1e-9 {
		t.Errorf("Expected camera at default distance, got %f", snap.Camera.Distance)
	}
	if len(f.c.Maze().Walls) == 0 {
		t.Error("Expected maze walls")
	}
}

func TestCoordinator_StartGate(t *testing.T) {
	f := newCoordinatorFixture(t, nil)

	f.run(10)
	if f.c.Started() || f.c.Snapshot().Time != 0 {
		t.Fatalf("Expected waiting at start screen with clock stopped")
	}
	if f.input.samples != 10 {
		t.Errorf("Expected input sampled every frame, got %d", f.input.samples)
	}

	// 开始画面上的踢腿键被丢弃
	f.input.Press(input.ActionKick)
	f.start()
	if !f.c.Started() {
		t.Fatal("Expected game started after start key")
	}
	f.run(1)
	if snap := f.c.Snapshot(); snap.Player.Action == systems.ActionKick {
		t.Error("Expected kick pressed before start to be discarded")
	}
	if f.c.Snapshot().Time <= 0 {
		t.Error("Expected clock running after start")
	}
}

func TestCoordinator_MovesAlongCameraForward(t *testing.T) {
	f := newCoordinatorFixture(t, nil)
	f.start()

	f.input.SetHeld(input.ActionForward, true)
	f.run(15)
	snap := f.c.Snapshot()

	// 默认相机位于角色 +Z 方向，前进即 -Z
	if snap.Player.Position.Z() > -10 {
		t.Errorf("Expected player to move toward -Z, got %v", snap.Player.Position)
	}
	if math.Abs(snap.Player.Position.X()) > 1 {
		t.Errorf("Expected no sideways drift, got %v", snap.Player.Position)
	}
	if snap.Player.Forward.Z() > -0.5 {
		t.Errorf("Expected player turning toward -Z, got forward %v", snap.Player.Forward)
	}

	f.input.SetHeld(input.ActionForward, false)
	f.run(30)
	if action := f.c.Snapshot().Player.Action; action != systems.ActionIdle {
		t.Errorf("Expected idle after release, got %q", action)
	}
}

func TestCoordinator_KickBeamDamagesEnemyOnce(t *testing.T) {
	f := newCoordinatorFixture(t, nil)
	f.start()

	f.input.Press(input.ActionKick)
	f.run(1)
	if f.c.Snapshot().Counts.Rings != 1 {
		t.Fatalf("Expected kick ring, got %+v", f.c.Snapshot().Counts)
	}

	f.run(60)

	if f.fired != 1 {
		t.Fatalf("Expected exactly one beam fired, got %d", f.fired)
	}
	snap := f.c.Snapshot()
	if len(snap.Enemies) != 1 {
		t.Fatalf("Expected enemy alive, got %d", len(snap.Enemies))
	}
	want := f.c.Config().Enemy.HP - f.c.Config().Beam.Damage
	if snap.Enemies[0].HP != want {
		t.Errorf("Expected enemy hp %d after one beam, got %d", want, snap.Enemies[0].HP)
	}
	if f.impacts == 0 {
		t.Error("Expected beam to strike the far wall")
	}
}

func TestCoordinator_BeamCollisionActions(t *testing.T) {
	f := newCoordinatorFixture(t, nil)
	f.start()
	c := f.c

	var sphereTarget, wallTarget, enemyTarget *world.Target
	c.registry.Each(func(t *world.Target) {
		switch t.Kind {
		case world.TargetDestructible:
			if sphereTarget == nil {
				sphereTarget = t
			}
		case world.TargetWall:
			if wallTarget == nil {
				wallTarget = t
			}
		case world.TargetEnemy:
			enemyTarget = t
		}
	})
	if sphereTarget == nil || wallTarget == nil || enemyTarget == nil {
		t.Fatal("Expected sphere, wall and enemy targets registered")
	}
	beam := &components.BeamComponent{}

	if got := c.onBeamCollision(world.Intersection{Target: wallTarget}, beam); got != systems.ActionStopAndAdjust {
		t.Errorf("wall: expected %s, got %s", systems.ActionStopAndAdjust, got)
	}

	spheres := c.spheres.Count()
	if got := c.onBeamCollision(world.Intersection{Target: sphereTarget}, beam); got != systems.ActionDestroyTargetAndContinue {
		t.Fatalf("sphere: expected %s, got %s", systems.ActionDestroyTargetAndContinue, got)
	}
	if c.spheres.Count() != spheres-1 {
		t.Errorf("Expected sphere destroyed, count %d -> %d", spheres, c.spheres.Count())
	}
	if counts := c.projectiles.ActiveCounts(); counts.Particles != 1 || counts.Debris != 1 {
		t.Errorf("Expected one spark batch and one debris batch, got %+v", counts)
	}
	if f.impacts != 1 {
		t.Errorf("Expected impact hook, got %d", f.impacts)
	}
	if got := c.onBeamCollision(world.Intersection{Target: sphereTarget}, beam); got != systems.ActionIgnore {
		t.Errorf("destroyed sphere: expected %s, got %s", systems.ActionIgnore, got)
	}

	if got := c.onBeamCollision(world.Intersection{Target: enemyTarget}, beam); got != systems.ActionDestroyTargetAndContinue {
		t.Errorf("enemy: expected %s, got %s", systems.ActionDestroyTargetAndContinue, got)
	}
	enemy, _ := ecs.GetComponent[*components.EnemyComponent](c.entityManager, enemyTarget.Entity)
	if enemy.HP != c.cfg.Enemy.HP-c.cfg.Beam.Damage {
		t.Errorf("Expected enemy damaged once, hp=%d", enemy.HP)
	}
}

func TestCoordinator_NoArchetypesStillPlays(t *testing.T) {
	layout, _ := config.ParseMazeLayout([]byte(testMaze))
	src := &scriptedInput{State: input.NewState()}
	c, err := NewCoordinator(Deps{Maze: layout, Input: src})
	if err != nil {
		t.Fatalf("NewCoordinator failed: %v", err)
	}
	c.Start()
	src.Press(input.ActionKick)
	for i := 0; i < 30; i++ {
		c.Frame(testFrame)
	}
	snap := c.Snapshot()
	if len(snap.Enemies) != 0 {
		t.Errorf("Expected no enemies without archetypes, got %d", len(snap.Enemies))
	}
	if snap.Counts.Rings != 0 {
		t.Errorf("Expected kick ignored without a kick clip, got %+v", snap.Counts)
	}
	if c.Zoom() == nil {
		t.Error("Expected a zoom state created from config")
	}
}
