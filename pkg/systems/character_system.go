package systems

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/mazebeam/pkg/components"
	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/ecs"
	"github.com/gonewx/mazebeam/pkg/geom"
	"github.com/gonewx/mazebeam/pkg/physics"
	"github.com/gonewx/mazebeam/pkg/utils"
)

// 角色动作名
const (
	ActionIdle = "idle"
	ActionRun  = "run"
	ActionKick = config.ClipKick
)

// groundProbe 着地检测射线超出胶囊底部的长度
const groundProbe = 2.0

// cameraDefaultForward 相机方向退化时使用的水平前方
var cameraDefaultForward = mgl64.Vec3{0, 0, -1}

// MovementIntent 本帧的方向键输入
type MovementIntent struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

// Any 是否有任一方向键按下
func (m MovementIntent) Any() bool {
	return m.Forward || m.Backward || m.Left || m.Right
}

// CharacterSystem 玩家角色控制器
//
// 每帧根据方向键和相机水平朝向计算移动方向，写入刚体水平速度（竖直速度原样保留），
// 朝移动方向平滑转身，并驱动 idle/run/单次动作 状态机。
// 单次动作（踢腿）期间忽略移动输入，门控由动画结束事件重新打开。
type CharacterSystem struct {
	entityManager *ecs.EntityManager
	physics       physics.World
	animations    *AnimationSystem
	projectiles   *ProjectileSystem
	clock         *utils.Clock

	cfg     config.CharacterConfig
	beamCfg config.BeamConfig
	ringCfg config.RingConfig

	player ecs.EntityID

	// OnBeamFired 踢腿发射光束时调用（音效钩子），可为 nil
	OnBeamFired func(beam ecs.EntityID)
}

// NewCharacterSystem 创建角色系统
//
// 参数:
//   - em: 实体管理器
//   - pw: 物理世界
//   - animations: 动画系统
//   - projectiles: 投射物系统，用于光环和踢腿光束
//   - clock: 游戏时钟
//   - cfg: 完整调参配置（读取角色、光束、光环三部分）
func NewCharacterSystem(em *ecs.EntityManager, pw physics.World, animations *AnimationSystem, projectiles *ProjectileSystem, clock *utils.Clock, cfg *config.GameConfig) *CharacterSystem {
	return &CharacterSystem{
		entityManager: em,
		physics:       pw,
		animations:    animations,
		projectiles:   projectiles,
		clock:         clock,
		cfg:           cfg.Character,
		beamCfg:       cfg.Beam,
		ringCfg:       cfg.Ring,
	}
}

// Attach 绑定玩家实体，注册动画结束事件处理函数并播放待机动作
func (s *CharacterSystem) Attach(id ecs.EntityID) {
	s.player = id
	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id); ok {
		anim.OnFinished = s.HandleAnimationFinished
	}
	s.animations.Play(id, ActionIdle, 0)
}

// Player 返回绑定的玩家实体
func (s *CharacterSystem) Player() ecs.EntityID {
	return s.player
}

// Update 应用本帧的移动意图
//
// 参数:
//   - dt: 帧时长（秒）
//   - intent: 方向键状态
//   - cameraForward: 相机朝向，只使用其水平分量
func (s *CharacterSystem) Update(dt float64, intent MovementIntent, cameraForward mgl64.Vec3) {
	char, ok := ecs.GetComponent[*components.CharacterComponent](s.entityManager, s.player)
	if !ok {
		return
	}
	tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.player)
	if !ok {
		return
	}
	pb, _ := ecs.GetComponent[*components.PhysicsBodyComponent](s.entityManager, s.player)

	move := s.moveVector(intent, cameraForward)
	if char.State == components.ActorSingleShot {
		move = mgl64.Vec3{}
	}
	char.Moving = move.Len() > geom.Epsilon

	// 上一次物理步进后的实际速度决定 idle/run
	var actual mgl64.Vec3
	if pb != nil && pb.Body.Valid() {
		if v, ok := s.physics.LinearVelocity(pb.Body); ok {
			actual = v
		}
		s.physics.SetLinearVelocity(pb.Body, mgl64.Vec3{
			move.X() * char.Speed,
			actual.Y(),
			move.Z() * char.Speed,
		})
	}

	if char.Moving {
		if target, ok := geom.YawToward(move); ok {
			t := utils.Clamp01(char.RotationSpeed * dt * s.cfg.TurnGain)
			tr.Rotation = mgl64.QuatSlerp(tr.Rotation, target, t).Normalize()
		}
	}

	s.updateKick(char, tr)
	s.updateAnimationState(char, math.Hypot(actual.X(), actual.Z()))
}

// moveVector 把方向键解析到相机水平基上，非零时归一化
func (s *CharacterSystem) moveVector(intent MovementIntent, cameraForward mgl64.Vec3) mgl64.Vec3 {
	forward := geom.SafeNormalize(geom.Flatten(cameraForward), cameraDefaultForward)
	right := forward.Cross(geom.Up)

	var move mgl64.Vec3
	if intent.Forward {
		move = move.Add(forward)
	}
	if intent.Backward {
		move = move.Sub(forward)
	}
	if intent.Right {
		move = move.Add(right)
	}
	if intent.Left {
		move = move.Sub(right)
	}
	return geom.SafeNormalize(move, mgl64.Vec3{})
}

// updateKick 踢腿开始 KickBeamDelay 秒后发射一次光束
func (s *CharacterSystem) updateKick(char *components.CharacterComponent, tr *components.TransformComponent) {
	if char.State != components.ActorSingleShot || char.Action != ActionKick || char.Kick != components.KickCharging {
		return
	}
	if s.clock.Now()-char.ActionStartedAt < s.cfg.KickBeamDelay {
		return
	}

	beam := s.projectiles.SpawnBeam(
		tr.Position,
		tr.Forward(),
		s.cfg.Height()*s.beamCfg.SpawnHeightRatio,
		s.cfg.Radius()*s.beamCfg.SpawnForwardRadii,
	)
	char.Kick = components.KickFired
	if s.OnBeamFired != nil {
		s.OnBeamFired(beam)
	}
}

// updateAnimationState 单次动作期间保持不变，否则按实际水平速度切换 idle/run
func (s *CharacterSystem) updateAnimationState(char *components.CharacterComponent, horizontalSpeed float64) {
	if char.State == components.ActorSingleShot {
		return
	}
	next := components.ActorIdle
	if horizontalSpeed > char.Speed*s.cfg.RunThreshold {
		next = components.ActorRun
	}
	s.transition(char, next)
}

// transition 切换循环状态；相同状态不做任何事。
// 动作缺失时 Play 记录日志并跳过，状态照常切换，避免每帧重复尝试。
func (s *CharacterSystem) transition(char *components.CharacterComponent, next components.ActorState) {
	if char.State == next {
		return
	}
	name := ActionIdle
	if next == components.ActorRun {
		name = ActionRun
	}
	s.animations.Play(s.player, name, s.cfg.CrossfadeDuration)
	char.State = next
}

// StartAction 尝试开始单次动作
//
// 参数:
//   - name: 动作名（如 "kick"）
//
// 返回:
//   - bool: 门控关闭或动作不存在时返回 false，状态不变
func (s *CharacterSystem) StartAction(name string) bool {
	char, ok := ecs.GetComponent[*components.CharacterComponent](s.entityManager, s.player)
	if !ok {
		return false
	}
	if !char.CanPlayAction() {
		return false
	}
	if !s.animations.Play(s.player, name, s.cfg.CrossfadeDuration) {
		log.Printf("[CharacterSystem] Warning: action %q unavailable, not started", name)
		return false
	}

	char.State = components.ActorSingleShot
	char.Action = name
	char.ActionStartedAt = s.clock.Now()

	if name == ActionKick {
		char.Kick = components.KickCharging
		if tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.player); ok {
			s.projectiles.SpawnRing(tr.Position, tr.Forward(), s.cfg.Radius()*s.ringCfg.ForwardRadii)
		}
	}
	return true
}

// HandleAnimationFinished 单次动作播完后重新打开门控
// 只响应与当前单次动作同名的事件
func (s *CharacterSystem) HandleAnimationFinished(ev components.AnimationFinishedEvent) {
	if ev.Entity != s.player {
		return
	}
	char, ok := ecs.GetComponent[*components.CharacterComponent](s.entityManager, s.player)
	if !ok || char.State != components.ActorSingleShot || ev.Action != char.Action {
		return
	}

	char.Action = ""
	char.Kick = components.KickNone

	next := components.ActorIdle
	if char.Moving {
		next = components.ActorRun
	}
	name := ActionIdle
	if next == components.ActorRun {
		name = ActionRun
	}
	s.animations.Play(s.player, name, s.cfg.CrossfadeDuration)
	char.State = next
}

// IsGrounded 从胶囊中心向下做射线检测，忽略自身刚体
func (s *CharacterSystem) IsGrounded() bool {
	pb, ok := ecs.GetComponent[*components.PhysicsBodyComponent](s.entityManager, s.player)
	if !ok || !pb.Body.Valid() {
		return false
	}
	center, _, ok := s.physics.WorldTransform(pb.Body)
	if !ok {
		return false
	}
	to := center.Sub(mgl64.Vec3{0, pb.Height/2 + groundProbe, 0})
	_, hit := s.physics.Raycast(center, to, physics.ExcludeBody(pb.Body))
	return hit
}

// Position 返回玩家模型原点
func (s *CharacterSystem) Position() mgl64.Vec3 {
	if tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.player); ok {
		return tr.Position
	}
	return mgl64.Vec3{}
}

// IsMoving 本帧是否有有效的移动输入
func (s *CharacterSystem) IsMoving() bool {
	if char, ok := ecs.GetComponent[*components.CharacterComponent](s.entityManager, s.player); ok {
		return char.Moving
	}
	return false
}
