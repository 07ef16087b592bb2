package entities

import (
	"github.com/gonewx/mazebeam/pkg/components"
	"github.com/gonewx/mazebeam/pkg/ecs"
)

// NewBeamEntity 创建光束实体
func NewBeamEntity(em *ecs.EntityManager, beam *components.BeamComponent) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransientComponent{Kind: components.TransientBeam, CreatedAt: beam.CreatedAt})
	ecs.AddComponent(em, id, beam)
	return id
}

// NewRingEntity 创建光环实体，寿命由 LifetimeComponent 管理
func NewRingEntity(em *ecs.EntityManager, ring *components.RingComponent, now, duration float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransientComponent{Kind: components.TransientRing, CreatedAt: now})
	ecs.AddComponent(em, id, ring)
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: duration})
	return id
}

// NewParticleBatchEntity 创建粒子批次实体
func NewParticleBatchEntity(em *ecs.EntityManager, batch *components.ParticleBatchComponent, now float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransientComponent{Kind: components.TransientParticleBatch, CreatedAt: now})
	ecs.AddComponent(em, id, batch)
	return id
}

// NewDebrisBatchEntity 创建碎片批次实体
func NewDebrisBatchEntity(em *ecs.EntityManager, batch *components.DebrisBatchComponent, now float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransientComponent{Kind: components.TransientDebrisBatch, CreatedAt: now})
	ecs.AddComponent(em, id, batch)
	return id
}
