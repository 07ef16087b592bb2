package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/mock/gomock"

	"github.com/gonewx/mazebeam/internal/rigidbody"
	"github.com/gonewx/mazebeam/pkg/components"
	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/ecs"
	"github.com/gonewx/mazebeam/pkg/entities"
	"github.com/gonewx/mazebeam/pkg/physics"
	"github.com/gonewx/mazebeam/pkg/physics/mocks"
)

var playerClips = []components.AnimationClip{
	{Name: ActionIdle, Duration: 2.0, Loop: true},
	{Name: ActionRun, Duration: 0.8, Loop: true},
	{Name: ActionKick, Duration: 1.2},
}

type characterFixture struct {
	*engineFixture
	anims  *AnimationSystem
	system *CharacterSystem
	player ecs.EntityID
}

func newCharacterFixture(t *testing.T, pw physics.World, clips []components.AnimationClip) *characterFixture {
	t.Helper()
	f := &characterFixture{engineFixture: newEngineFixture(nil)}
	f.anims = NewAnimationSystem(f.em)
	f.system = NewCharacterSystem(f.em, pw, f.anims, f.projectiles, f.clock, f.cfg)
	f.player = entities.NewCharacterEntity(f.em, pw, f.cfg.Character, clips, mgl64.Vec3{})
	f.system.Attach(f.player)
	return f
}

// newMockedCharacter 刚体句柄固定为 1，LinearVelocity 返回 velocity
func newMockedCharacter(t *testing.T, velocity mgl64.Vec3) (*characterFixture, *mocks.MockWorld) {
	ctrl := gomock.NewController(t)
	pw := mocks.NewMockWorld(ctrl)
	pw.EXPECT().
		CreateCapsuleBody(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(physics.BodyID(1), nil)
	pw.EXPECT().LinearVelocity(physics.BodyID(1)).Return(velocity, true).AnyTimes()
	return newCharacterFixture(t, pw, playerClips), pw
}

func (f *characterFixture) character() *components.CharacterComponent {
	c, _ := ecs.GetComponent[*components.CharacterComponent](f.em, f.player)
	return c
}

func TestCharacterSystem_MoveAlongCameraBasis(t *testing.T) {
	tests := []struct {
		name   string
		intent MovementIntent
		camera mgl64.Vec3
		want   mgl64.Vec3
	}{
		{"forward", MovementIntent{Forward: true}, mgl64.Vec3{0, -0.5, -1}, mgl64.Vec3{0, -5, -200}},
		{"right", MovementIntent{Right: true}, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{200, -5, 0}},
		{"left rotated camera", MovementIntent{Left: true}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, -5, -200}},
		{"diagonal normalized", MovementIntent{Forward: true, Right: true}, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{200 / math.Sqrt2, -5, -200 / math.Sqrt2}},
		{"opposite keys cancel", MovementIntent{Forward: true, Backward: true}, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, -5, 0}},
		{"degenerate camera", MovementIntent{Forward: true}, mgl64.Vec3{0, -1, 0}, mgl64.Vec3{0, -5, -200}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, pw := newMockedCharacter(t, mgl64.Vec3{0, -5, 0})
			var got mgl64.Vec3
			pw.EXPECT().SetLinearVelocity(physics.BodyID(1), gomock.Any()).Do(func(_ physics.BodyID, v mgl64.Vec3) {
				got = v
			})

			f.system.Update(1.0/60, tt.intent, tt.camera)

			if !vecNear(got, tt.want, 1e-9) {
				t.Errorf("Expected velocity %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCharacterSystem_SingleShotSuppressesMovement(t *testing.T) {
	f, pw := newMockedCharacter(t, mgl64.Vec3{0, -3, 0})
	if !f.system.StartAction(ActionKick) {
		t.Fatal("Expected kick to start")
	}

	pw.EXPECT().SetLinearVelocity(physics.BodyID(1), mgl64.Vec3{0, -3, 0}).Times(1)
	tr, _ := ecs.GetComponent[*components.TransformComponent](f.em, f.player)
	rot := tr.Rotation

	f.system.Update(1.0/60, MovementIntent{Right: true}, mgl64.Vec3{0, 0, -1})

	if tr.Rotation != rot {
		t.Error("Expected rotation unchanged during single-shot action")
	}
	if f.character().State != components.ActorSingleShot {
		t.Errorf("Expected to stay in single-shot, got %s", f.character().State)
	}
}

func TestCharacterSystem_StartActionGate(t *testing.T) {
	f, _ := newMockedCharacter(t, mgl64.Vec3{})
	anim, _ := ecs.GetComponent[*components.AnimationComponent](f.em, f.player)

	if !f.system.StartAction(ActionKick) {
		t.Fatal("Expected first kick to start")
	}
	char := f.character()
	if char.CanPlayAction() {
		t.Error("Expected gate closed after start")
	}
	if f.projectiles.ActiveCounts().Rings != 1 {
		t.Errorf("Expected one ring, got %d", f.projectiles.ActiveCounts().Rings)
	}

	f.anims.Update(0.3)
	kickTime := anim.Actions[ActionKick].Time
	startedAt := char.ActionStartedAt

	if f.system.StartAction(ActionKick) {
		t.Error("Expected second kick to fail while gate is closed")
	}
	if char.Action != ActionKick || char.ActionStartedAt != startedAt {
		t.Errorf("Expected state unchanged, got action=%q startedAt=%f", char.Action, char.ActionStartedAt)
	}
	if anim.Actions[ActionKick].Time != kickTime {
		t.Error("Expected kick animation not restarted")
	}
	if f.projectiles.ActiveCounts().Rings != 1 {
		t.Errorf("Expected no duplicate ring, got %d", f.projectiles.ActiveCounts().Rings)
	}
}

func TestCharacterSystem_FinishedEventReopensGate(t *testing.T) {
	f, _ := newMockedCharacter(t, mgl64.Vec3{})
	f.system.StartAction(ActionKick)

	// 其他动作名的事件不影响门控
	f.system.HandleAnimationFinished(components.AnimationFinishedEvent{Entity: f.player, Action: ActionRun})
	if f.character().CanPlayAction() {
		t.Fatal("Expected gate to stay closed for mismatched action name")
	}

	f.anims.Update(1.3)

	char := f.character()
	if !char.CanPlayAction() {
		t.Fatal("Expected gate reopened after kick finished")
	}
	if char.State != components.ActorIdle || char.Kick != components.KickNone {
		t.Errorf("Expected idle with no kick phase, got %s/%d", char.State, char.Kick)
	}
	if !f.anims.IsRunning(f.player, ActionIdle) {
		t.Error("Expected idle playing after kick")
	}
	if !f.system.StartAction(ActionKick) {
		t.Error("Expected a new kick to start")
	}
}

func TestCharacterSystem_KickFiresBeamOnce(t *testing.T) {
	f, pw := newMockedCharacter(t, mgl64.Vec3{})
	pw.EXPECT().SetLinearVelocity(gomock.Any(), gomock.Any()).AnyTimes()

	fired := 0
	f.system.OnBeamFired = func(ecs.EntityID) { fired++ }
	f.system.StartAction(ActionKick)

	const dt = 0.1
	for i := 0; i < 6; i++ {
		f.clock.Advance(dt)
		f.system.Update(dt, MovementIntent{}, mgl64.Vec3{0, 0, -1})
	}
	if fired != 0 || f.projectiles.ActiveCounts().Beams != 0 {
		t.Fatalf("Expected no beam before the kick delay, got %d", fired)
	}

	for i := 0; i < 4; i++ {
		f.clock.Advance(dt)
		f.system.Update(dt, MovementIntent{}, mgl64.Vec3{0, 0, -1})
	}
	if fired != 1 || f.projectiles.ActiveCounts().Beams != 1 {
		t.Errorf("Expected exactly one beam, got fired=%d beams=%d", fired, f.projectiles.ActiveCounts().Beams)
	}
	if f.character().Kick != components.KickFired {
		t.Errorf("Expected kick phase fired, got %d", f.character().Kick)
	}

	ids := ecs.GetEntitiesWith1[*components.BeamComponent](f.em)
	beam, _ := ecs.GetComponent[*components.BeamComponent](f.em, ids[0])
	wantOrigin := mgl64.Vec3{0, f.cfg.Character.Height() * 0.5, f.cfg.Character.Radius() * 3.1}
	if !vecNear(beam.Origin, wantOrigin, 1e-9) {
		t.Errorf("Expected beam origin %v, got %v", wantOrigin, beam.Origin)
	}
}

func TestCharacterSystem_RunIdleByActualSpeed(t *testing.T) {
	tests := []struct {
		name     string
		velocity mgl64.Vec3
		want     components.ActorState
		anim     string
	}{
		{"fast", mgl64.Vec3{150, 0, 0}, components.ActorRun, ActionRun},
		{"below threshold", mgl64.Vec3{1.5, -80, 0}, components.ActorIdle, ActionIdle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, pw := newMockedCharacter(t, tt.velocity)
			pw.EXPECT().SetLinearVelocity(gomock.Any(), gomock.Any()).AnyTimes()
			anim, _ := ecs.GetComponent[*components.AnimationComponent](f.em, f.player)

			f.system.Update(1.0/60, MovementIntent{}, mgl64.Vec3{0, 0, -1})

			if f.character().State != tt.want {
				t.Errorf("Expected state %s, got %s", tt.want, f.character().State)
			}
			if anim.Current != tt.anim {
				t.Errorf("Expected animation %q, got %q", tt.anim, anim.Current)
			}
		})
	}
}

func TestCharacterSystem_TurnsTowardMoveDirection(t *testing.T) {
	f, pw := newMockedCharacter(t, mgl64.Vec3{})
	pw.EXPECT().SetLinearVelocity(gomock.Any(), gomock.Any()).AnyTimes()
	tr, _ := ecs.GetComponent[*components.TransformComponent](f.em, f.player)

	f.system.Update(1.0/60, MovementIntent{Right: true}, mgl64.Vec3{0, 0, -1})
	first := tr.Forward()
	if first.X() <= 0 || first.X() > 0.9 {
		t.Errorf("Expected partial turn toward +X after one frame, got %v", first)
	}

	for i := 0; i < 120; i++ {
		f.system.Update(1.0/60, MovementIntent{Right: true}, mgl64.Vec3{0, 0, -1})
	}
	if fwd := tr.Forward(); fwd.X() < 0.999 {
		t.Errorf("Expected to face +X, got %v", fwd)
	}
}

func TestCharacterSystem_MissingClipIsNonFatal(t *testing.T) {
	f, pw := newMockedCharacterWithClips(t, playerClips[:1])
	pw.EXPECT().SetLinearVelocity(gomock.Any(), gomock.Any()).AnyTimes()

	if f.system.StartAction(ActionKick) {
		t.Error("Expected StartAction to fail without a kick clip")
	}
	if !f.character().CanPlayAction() {
		t.Error("Expected gate to stay open")
	}
	f.system.Update(1.0/60, MovementIntent{}, mgl64.Vec3{0, 0, -1})
	if f.character().State != components.ActorRun {
		t.Errorf("Expected run state even without a run clip, got %s", f.character().State)
	}
}

func newMockedCharacterWithClips(t *testing.T, clips []components.AnimationClip) (*characterFixture, *mocks.MockWorld) {
	ctrl := gomock.NewController(t)
	pw := mocks.NewMockWorld(ctrl)
	pw.EXPECT().
		CreateCapsuleBody(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(physics.BodyID(1), nil)
	pw.EXPECT().LinearVelocity(physics.BodyID(1)).Return(mgl64.Vec3{100, 0, 0}, true).AnyTimes()
	return newCharacterFixture(t, pw, clips), pw
}

func TestCharacterSystem_NoBodyNoPhysicsCalls(t *testing.T) {
	ctrl := gomock.NewController(t)
	pw := mocks.NewMockWorld(ctrl)
	pw.EXPECT().
		CreateCapsuleBody(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(physics.InvalidBody, physics.ErrInvalidBody)
	// 之后不允许任何物理调用
	f := newCharacterFixture(t, pw, playerClips)

	f.system.Update(1.0/60, MovementIntent{Forward: true}, mgl64.Vec3{0, 0, -1})
	if f.system.IsGrounded() {
		t.Error("Expected not grounded without a body")
	}
	if !f.system.StartAction(ActionKick) {
		t.Error("Expected kick to start without a body")
	}
}

func TestCharacterSystem_IsGrounded(t *testing.T) {
	cfg := config.DefaultGameConfig()
	pw, err := rigidbody.NewWorld(rigidbody.Config{Gravity: mgl64.Vec3{0, cfg.Physics.Gravity, 0}})
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	if _, err := pw.CreateBoxBody(mgl64.Vec3{0, -10, 0}, mgl64.Vec3{1000, 10, 1000}, 0, physics.Material{Friction: 0.7}); err != nil {
		t.Fatalf("floor: %v", err)
	}

	f := &characterFixture{engineFixture: newEngineFixture(nil)}
	f.anims = NewAnimationSystem(f.em)
	f.system = NewCharacterSystem(f.em, pw, f.anims, f.projectiles, f.clock, f.cfg)
	f.player = entities.NewCharacterEntity(f.em, pw, f.cfg.Character, playerClips, mgl64.Vec3{0, 300, 0})
	f.system.Attach(f.player)

	if f.system.IsGrounded() {
		t.Error("Expected airborne at spawn height")
	}
	for i := 0; i < 180; i++ {
		pw.StepSimulation(1.0/60, 2, 1.0/60)
	}
	if !f.system.IsGrounded() {
		t.Error("Expected grounded after falling onto the floor")
	}
}
