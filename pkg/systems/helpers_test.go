package systems

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/ecs"
	"github.com/gonewx/mazebeam/pkg/utils"
	"github.com/gonewx/mazebeam/pkg/world"
)

// engineFixture 投射物/特效测试用的最小环境
type engineFixture struct {
	em          *ecs.EntityManager
	clock       *utils.Clock
	registry    *world.TargetRegistry
	effects     *EffectSystem
	projectiles *ProjectileSystem
	cfg         *config.GameConfig
}

func newEngineFixture(mutate func(cfg *config.GameConfig)) *engineFixture {
	cfg := config.DefaultGameConfig()
	if mutate != nil {
		mutate(cfg)
	}
	f := &engineFixture{
		em:       ecs.NewEntityManager(),
		clock:    utils.NewClock(),
		registry: world.NewTargetRegistry(),
		cfg:      cfg,
	}
	f.effects = NewEffectSystem(f.em, f.clock, rand.New(rand.NewSource(1)), cfg.Effects)
	f.projectiles = NewProjectileSystem(f.em, f.registry, f.effects, f.clock, cfg.Beam, cfg.Ring)
	return f
}

// step 按游戏循环的顺序推进一帧：先推进时钟，再更新系统
func (f *engineFixture) step(dt float64, onCollision CollisionFunc) {
	f.clock.Advance(dt)
	f.projectiles.Update(dt, onCollision)
	f.effects.Update(dt)
}

// vecNear 按距离比较两个向量，分量为 0 时也使用同一绝对容差
func vecNear(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}
