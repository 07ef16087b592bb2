package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/mazebeam/pkg/components"
	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/ecs"
	"github.com/gonewx/mazebeam/pkg/geom"
	"github.com/gonewx/mazebeam/pkg/input"
	"github.com/gonewx/mazebeam/pkg/utils"
	"github.com/gonewx/mazebeam/pkg/world"
)

// CameraSystem 第三人称跟随相机
//
// 每帧：
//  1. 用户手动缩放过且角色在移动时，期望距离逐渐回到默认距离
//  2. 注视点以固定比例追随 角色位置 + 竖直偏移
//  3. 沿 注视点->相机 的方向按期望距离得到候选位置
//  4. 从理想注视点向候选位置做遮挡射线，命中时把距离收到命中点内侧
//  5. 相机实际位置以固定比例插值到最终目标
type CameraSystem struct {
	entityManager *ecs.EntityManager
	registry      *world.TargetRegistry
	zoom          *input.ZoomState
	cfg           config.CameraConfig
	cameraEntity  ecs.EntityID
}

// NewCameraSystem 创建相机系统，并创建相机实体
//
// 参数:
//   - em: 实体管理器
//   - registry: 碰撞目标注册表（遮挡检测）
//   - zoom: 滚轮缩放状态，由输入管理器写入
//   - cfg: 相机参数
func NewCameraSystem(em *ecs.EntityManager, registry *world.TargetRegistry, zoom *input.ZoomState, cfg config.CameraConfig) *CameraSystem {
	cs := &CameraSystem{
		entityManager: em,
		registry:      registry,
		zoom:          zoom,
		cfg:           cfg,
	}
	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{})
	return cs
}

// Reset 把相机直接放到角色的默认观察位置（不做插值）
func (cs *CameraSystem) Reset(actorPos mgl64.Vec3) {
	cam := cs.camera()
	if cam == nil {
		return
	}
	cam.Target = actorPos.Add(mgl64.Vec3{0, cs.cfg.TargetOffsetY, 0})
	cam.Position = cam.Target.Add(cs.defaultDirection().Mul(cs.zoom.Default))
	cam.Ideal = cam.Position
	cam.Occluded = false
}

// Update 推进一帧
//
// 参数:
//   - dt: 帧时长（插值按帧进行，不使用 dt）
//   - actorPos: 角色模型原点
//   - actorMoving: 角色本帧是否在移动
func (cs *CameraSystem) Update(dt float64, actorPos mgl64.Vec3, actorMoving bool) {
	cam := cs.camera()
	if cam == nil {
		return
	}

	cs.resetZoom(actorMoving)
	distance := cs.zoom.Distance

	ideal := actorPos.Add(mgl64.Vec3{0, cs.cfg.TargetOffsetY, 0})
	cam.Target = geom.LerpVec3(cam.Target, ideal, cs.cfg.FollowSpeed)

	dir := geom.SafeNormalize(cam.Position.Sub(cam.Target), cs.defaultDirection())
	candidate := cam.Target.Add(dir.Mul(distance))

	final := candidate
	cam.Occluded = false

	toCandidate := candidate.Sub(ideal)
	rayLen := toCandidate.Len()
	if rayLen > geom.Epsilon {
		rayDir := toCandidate.Mul(1 / rayLen)
		near := cs.zoom.Min * cs.cfg.NearFactor
		if hit, ok := cs.registry.FirstOccluder(ideal, rayDir, near, rayLen); ok {
			corrected := math.Max(near, hit.Distance-cs.cfg.CollisionOffset)
			final = ideal.Add(rayDir.Mul(corrected))
			cam.Occluded = true
		}
	}

	cam.Ideal = final
	cam.Position = geom.LerpVec3(cam.Position, final, cs.cfg.CorrectionLerp)
}

// resetZoom 手动缩放后角色开始移动时，期望距离插值回默认距离
func (cs *CameraSystem) resetZoom(actorMoving bool) {
	z := cs.zoom
	if !z.UserZoomed || !actorMoving {
		return
	}
	z.Distance = utils.Lerp(z.Distance, z.Default, cs.cfg.ZoomResetLerp)
	if math.Abs(z.Distance-z.Default) < cs.cfg.ZoomSnapEpsilon {
		z.Distance = z.Default
		z.UserZoomed = false
	}
	z.Clamp()
}

func (cs *CameraSystem) defaultDirection() mgl64.Vec3 {
	o := cs.cfg.DefaultOffset
	return geom.SafeNormalize(mgl64.Vec3{o[0], o[1], o[2]}, geom.Up)
}

func (cs *CameraSystem) camera() *components.CameraComponent {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return nil
	}
	return cam
}

// Position 相机实际位置
func (cs *CameraSystem) Position() mgl64.Vec3 {
	if cam := cs.camera(); cam != nil {
		return cam.Position
	}
	return mgl64.Vec3{}
}

// Target 平滑后的注视点
func (cs *CameraSystem) Target() mgl64.Vec3 {
	if cam := cs.camera(); cam != nil {
		return cam.Target
	}
	return mgl64.Vec3{}
}

// Forward 相机水平朝向（角色移动基准），退化时为 (0,0,-1)
func (cs *CameraSystem) Forward() mgl64.Vec3 {
	cam := cs.camera()
	if cam == nil {
		return cameraDefaultForward
	}
	return geom.SafeNormalize(geom.Flatten(cam.Target.Sub(cam.Position)), cameraDefaultForward)
}

// Distance 相机到注视点的实际距离
func (cs *CameraSystem) Distance() float64 {
	if cam := cs.camera(); cam != nil {
		return cam.Position.Sub(cam.Target).Len()
	}
	return 0
}

// Zoom 返回缩放状态
func (cs *CameraSystem) Zoom() *input.ZoomState {
	return cs.zoom
}
