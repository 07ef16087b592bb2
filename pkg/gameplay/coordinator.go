// Package gameplay 组装并驱动一局游戏：迷路、玩家、敌人、球体、光束与相机。
//
// Coordinator 不做任何渲染，前端（ebiten 或终端）每帧调用 Frame，
// 再通过 Snapshot 读取需要绘制的内容。
package gameplay

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/mazebeam/internal/rigidbody"
	"github.com/gonewx/mazebeam/pkg/components"
	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/ecs"
	"github.com/gonewx/mazebeam/pkg/entities"
	"github.com/gonewx/mazebeam/pkg/input"
	"github.com/gonewx/mazebeam/pkg/physics"
	"github.com/gonewx/mazebeam/pkg/systems"
	"github.com/gonewx/mazebeam/pkg/utils"
	"github.com/gonewx/mazebeam/pkg/world"
)

// ErrNoInput 没有提供输入源
var ErrNoInput = errors.New("gameplay: input source is required")

// Hooks 音效等外部钩子，字段均可为 nil
type Hooks struct {
	// OnBeamFired 踢腿发射光束时调用
	OnBeamFired func()
	// OnImpact 光束撞墙或击碎球体时调用
	OnImpact func()
}

// Deps 创建一局游戏需要的依赖
type Deps struct {
	Config   *config.GameConfig    // nil 时使用默认配置
	Maze     *config.MazeLayout    // 必需
	Manifest *config.AssetManifest // nil 时玩家没有动作片段，也不生成敌人
	Input    input.Source          // 必需
	Rand     *rand.Rand            // nil 时使用固定种子
	Hooks    Hooks
}

// Coordinator 游戏循环协调器
//
// 持有实体管理器、碰撞目标注册表和物理世界，并按固定顺序推进各系统：
// 输入 -> 单次动作 -> 角色意图 -> 物理步进与同步 -> 动画 -> 光束与特效 ->
// 敌人 AI -> 相机 -> 计时实体与删除清理。
type Coordinator struct {
	entityManager *ecs.EntityManager
	clock         *utils.Clock
	registry      *world.TargetRegistry
	physicsWorld  *rigidbody.World
	maze          *world.Maze
	input         input.Source
	cfg           *config.GameConfig
	hooks         Hooks

	animations  *systems.AnimationSystem
	character   *systems.CharacterSystem
	physics     *systems.PhysicsSystem
	spheres     *systems.SphereSystem
	effects     *systems.EffectSystem
	projectiles *systems.ProjectileSystem
	enemies     *systems.EnemyManager
	camera      *systems.CameraSystem
	lifetime    *systems.LifetimeSystem

	player  ecs.EntityID
	started bool
}

// NewZoomState 按配置创建相机缩放状态
//
// 参数:
//   - cfg: 游戏配置
//   - factor: 每格滚轮的相对变化量，<= 0 时使用配置值
func NewZoomState(cfg *config.GameConfig, factor float64) *input.ZoomState {
	if factor <= 0 {
		factor = cfg.Camera.ZoomSpeedFactor
	}
	minZoom := cfg.Character.Radius() * cfg.Camera.MinZoomRadii
	return input.NewZoomState(cfg.Camera.DefaultDistance(), minZoom, cfg.Camera.MaxZoom, factor)
}

// NewCoordinator 创建一局游戏
//
// 物理世界初始化失败或迷路构建失败属于致命错误，直接返回。
// 敌人原型或动作片段缺失只降级（记录日志）。
//
// 返回:
//   - *Coordinator: 协调器，处于等待开始状态
//   - error: 致命错误
func NewCoordinator(deps Deps) (*Coordinator, error) {
	if deps.Input == nil {
		return nil, ErrNoInput
	}
	if deps.Maze == nil {
		return nil, world.ErrNoMaze
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	manifest := deps.Manifest
	if manifest == nil {
		log.Printf("[Coordinator] Warning: no asset manifest, actors have no animation clips")
		manifest = &config.AssetManifest{}
	}

	pw, err := rigidbody.NewWorld(rigidbody.Config{Gravity: mgl64.Vec3{0, cfg.Physics.Gravity, 0}})
	if err != nil {
		return nil, fmt.Errorf("failed to init physics world: %w", err)
	}

	c := &Coordinator{
		entityManager: ecs.NewEntityManager(),
		clock:         utils.NewClock(),
		registry:      world.NewTargetRegistry(),
		physicsWorld:  pw,
		input:         deps.Input,
		cfg:           cfg,
		hooks:         deps.Hooks,
	}

	wallMat := physics.Material{Friction: cfg.Physics.WallFriction, Restitution: cfg.Physics.WallRestitution}
	c.maze, err = world.BuildMaze(deps.Maze, c.registry, pw, wallMat)
	if err != nil {
		return nil, err
	}

	em := c.entityManager
	c.animations = systems.NewAnimationSystem(em)
	c.effects = systems.NewEffectSystem(em, c.clock, rng, cfg.Effects)
	c.projectiles = systems.NewProjectileSystem(em, c.registry, c.effects, c.clock, cfg.Beam, cfg.Ring)
	c.projectiles.OnStrike = func(world.Intersection) { c.fireImpact() }
	c.character = systems.NewCharacterSystem(em, pw, c.animations, c.projectiles, c.clock, cfg)
	c.character.OnBeamFired = func(ecs.EntityID) {
		if c.hooks.OnBeamFired != nil {
			c.hooks.OnBeamFired()
		}
	}
	c.physics = systems.NewPhysicsSystem(em, pw, c.registry, cfg.Physics)
	c.lifetime = systems.NewLifetimeSystem(em)

	c.player = entities.NewCharacterEntity(em, pw, cfg.Character, entities.ClipsFromConfig(manifest.Player.Clips), deps.Maze.PlayerStart())
	c.character.Attach(c.player)

	enemySystem := systems.NewEnemySystem(em, pw, c.registry, c.animations, cfg.Character.CrossfadeDuration)
	c.enemies = systems.NewEnemyManager(em, pw, c.registry, enemySystem, c.animations, cfg.Enemy,
		manifest.UsableArchetypes(cfg.Enemy.DefaultAnimation), rng)
	c.enemies.SpawnEnemies(cfg.Enemy.SpawnCount, enemyCenter(deps.Maze, cfg.Enemy), cfg.Enemy.SpawnRadius, nil)

	c.spheres = systems.NewSphereSystem(em, pw, c.registry, cfg.Spheres, deps.Maze.CellSize/4)
	drops := make([]mgl64.Vec3, 0)
	for _, cell := range deps.Maze.Find(config.CellSphereDrop) {
		drops = append(drops, deps.Maze.CellCenter(cell))
	}
	c.spheres.SpawnSpheres(drops, rng)

	zoom := c.input.Zoom()
	if zoom == nil {
		zoom = NewZoomState(cfg, 0)
	}
	c.camera = systems.NewCameraSystem(em, c.registry, zoom, cfg.Camera)
	c.camera.Reset(c.character.Position())

	log.Printf("[Coordinator] Game ready: maze=%s walls=%d enemies=%d spheres=%d",
		deps.Maze.Name, len(c.maze.Walls), c.enemies.Count(), c.spheres.Count())
	return c, nil
}

// enemyCenter 敌人出生区域中心：迷路中的 E 格，没有时使用配置值
func enemyCenter(layout *config.MazeLayout, cfg config.EnemyConfig) mgl64.Vec3 {
	if cells := layout.Find(config.CellEnemyCenter); len(cells) > 0 {
		return layout.CellCenter(cells[0])
	}
	return mgl64.Vec3{cfg.SpawnCenter[0], cfg.SpawnCenter[1], cfg.SpawnCenter[2]}
}

// Start 离开开始画面，进入游戏
func (c *Coordinator) Start() {
	if c.started {
		return
	}
	c.started = true
	log.Printf("[Coordinator] Game started")
}

// Started 是否已经开始
func (c *Coordinator) Started() bool {
	return c.started
}

// Frame 推进一帧
//
// 开始之前只采样输入并等待开始键，游戏时钟不前进。
//
// 参数:
//   - dt: 帧时长（秒）
func (c *Coordinator) Frame(dt float64) {
	c.input.Sample()

	if !c.started {
		// 开始画面上按下的动作键不留到游戏里
		c.input.ConsumePressed(input.ActionKick)
		if c.input.ConsumePressed(input.ActionStart) {
			c.Start()
		}
		return
	}
	c.input.ConsumePressed(input.ActionStart)

	c.clock.Advance(dt)

	if c.input.ConsumePressed(input.ActionKick) {
		c.character.StartAction(systems.ActionKick)
	}

	intent := systems.MovementIntent{
		Forward:  c.input.IsPressed(input.ActionForward),
		Backward: c.input.IsPressed(input.ActionBackward),
		Left:     c.input.IsPressed(input.ActionLeft),
		Right:    c.input.IsPressed(input.ActionRight),
	}
	c.character.Update(dt, intent, c.camera.Forward())

	c.physics.Step(dt)
	c.physics.Sync()
	c.spheres.Sync()

	c.animations.Update(dt)

	c.projectiles.Update(dt, c.onBeamCollision)
	c.effects.Update(dt)

	playerPos := c.character.Position()
	c.enemies.Update(dt, playerPos)

	c.camera.Update(dt, playerPos, c.character.IsMoving())

	c.lifetime.Update(dt)
	c.entityManager.RemoveMarkedEntities()
}

// onBeamCollision 光束与目标相交时的处理
//
//   - 墙和地面：光束停下
//   - 球体：击碎并生成火花和碎片，光束继续
//   - 敌人：造成一次伤害，光束继续
//
// 同一道光束对同一目标只处理一次（命中集合由投射物系统维护）。
func (c *Coordinator) onBeamCollision(hit world.Intersection, beam *components.BeamComponent) systems.CollisionAction {
	target := hit.Target
	switch target.Kind {
	case world.TargetWall, world.TargetFloor:
		return systems.ActionStopAndAdjust

	case world.TargetDestructible:
		pos, color, ok := c.spheres.Destroy(target.Entity)
		if !ok {
			return systems.ActionIgnore
		}
		c.effects.SpawnSpark(pos, color)
		c.effects.SpawnDebris(pos, color)
		c.fireImpact()
		return systems.ActionDestroyTargetAndContinue

	case world.TargetEnemy:
		c.enemies.TakeDamage(target.Entity, c.cfg.Beam.Damage)
		return systems.ActionDestroyTargetAndContinue
	}
	return systems.ActionIgnore
}

func (c *Coordinator) fireImpact() {
	if c.hooks.OnImpact != nil {
		c.hooks.OnImpact()
	}
}

// Maze 构建完成的迷路
func (c *Coordinator) Maze() *world.Maze {
	return c.maze
}

// Config 当前使用的游戏配置
func (c *Coordinator) Config() *config.GameConfig {
	return c.cfg
}

// Zoom 相机缩放状态
func (c *Coordinator) Zoom() *input.ZoomState {
	return c.camera.Zoom()
}
