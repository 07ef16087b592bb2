package entities

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/mazebeam/pkg/components"
	"github.com/gonewx/mazebeam/pkg/ecs"
	"github.com/gonewx/mazebeam/pkg/geom"
	"github.com/gonewx/mazebeam/pkg/physics"
	"github.com/gonewx/mazebeam/pkg/world"
)

// SphereSpec 可破坏球体参数
type SphereSpec struct {
	Center   mgl64.Vec3
	Radius   float64
	Mass     float64
	Material physics.Material
	Color    [3]uint8
}

// NewSphereEntity 创建可破坏球体：刚体、碰撞目标和实体一起创建
//
// 返回:
//   - ecs.EntityID: 球体实体ID
//   - error: 刚体创建失败时返回错误
func NewSphereEntity(em *ecs.EntityManager, pw physics.World, registry *world.TargetRegistry, spec SphereSpec) (ecs.EntityID, error) {
	body, err := pw.CreateSphereBody(spec.Center, spec.Radius, spec.Mass, spec.Material)
	if err != nil {
		return 0, fmt.Errorf("failed to create sphere body: %w", err)
	}

	id := em.CreateEntity()
	targetID := registry.Add(world.Target{
		Name:   fmt.Sprintf("Sphere_%d", id),
		Kind:   world.TargetDestructible,
		Shape:  &geom.Sphere{Center: spec.Center, Radius: spec.Radius},
		Entity: id,
	})

	ecs.AddComponent(em, id, &components.TransformComponent{
		Position: spec.Center,
		Rotation: mgl64.QuatIdent(),
		Scale:    1,
	})
	ecs.AddComponent(em, id, &components.PhysicsBodyComponent{
		Body:   body,
		Height: spec.Radius * 2,
		Radius: spec.Radius,
	})
	ecs.AddComponent(em, id, &components.DestructibleComponent{
		TargetID: targetID,
		Radius:   spec.Radius,
		Color:    spec.Color,
	})
	return id, nil
}
