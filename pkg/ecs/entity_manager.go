package ecs

import (
	"reflect"
	"slices"
)

// EntityID 是实体的唯一标识符，0 保留为无效 ID
type EntityID uint64

// entityRecord 单个实体的组件表与删除标记
type entityRecord struct {
	components map[reflect.Type]any
	doomed     bool
}

// EntityManager 管理所有实体和组件
//
// 删除是延迟的：DestroyEntity 只做标记，组件在 RemoveMarkedEntities 时才释放，
// 因此同一帧内其他系统仍可读取被标记实体的组件。
type EntityManager struct {
	nextID   EntityID
	entities map[EntityID]*entityRecord
	doomed   []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:   1,
		entities: make(map[EntityID]*entityRecord),
	}
}

// record 查找实体记录，不存在时返回 nil
func (em *EntityManager) record(id EntityID) *entityRecord {
	return em.entities[id]
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := em.nextID
	em.nextID++
	em.entities[id] = &entityRecord{components: make(map[reflect.Type]any)}
	return id
}

// DestroyEntity 标记实体待删除(不立即删除)
// 同一帧内重复标记同一实体只记录一次
func (em *EntityManager) DestroyEntity(id EntityID) {
	rec := em.record(id)
	if rec == nil || rec.doomed {
		return
	}
	rec.doomed = true
	em.doomed = append(em.doomed, id)
}

// IsMarkedForDestruction 检查实体是否已被标记删除
func (em *EntityManager) IsMarkedForDestruction(id EntityID) bool {
	rec := em.record(id)
	return rec != nil && rec.doomed
}

// Exists 检查实体是否存在（已标记但尚未清理的实体仍视为存在）
func (em *EntityManager) Exists(id EntityID) bool {
	return em.record(id) != nil
}

// EntityCount 返回当前实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.entities)
}

// AddComponent 为实体添加组件，组件以其动态类型为键
func (em *EntityManager) AddComponent(id EntityID, component any) {
	em.put(id, reflect.TypeOf(component), component)
}

func (em *EntityManager) put(id EntityID, key reflect.Type, component any) {
	if rec := em.record(id); rec != nil {
		rec.components[key] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if rec := em.record(id); rec != nil {
		delete(rec.components, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	rec := em.record(id)
	if rec == nil {
		return nil, false
	}
	comp, found := rec.components[componentType]
	return comp, found
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, found := em.GetComponent(id, componentType)
	return found
}

// RemoveMarkedEntities 清理所有标记删除的实体
//
// 返回:
//   - int: 本次实际清理的实体数量
func (em *EntityManager) RemoveMarkedEntities() int {
	removed := 0
	for _, id := range em.doomed {
		if _, exists := em.entities[id]; exists {
			delete(em.entities, id)
			removed++
		}
	}
	em.doomed = em.doomed[:0]
	return removed
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
//
// 结果按 ID 升序，逐帧处理顺序稳定。
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	var result []EntityID
	for id, rec := range em.entities {
		if hasAll(rec, componentTypes) {
			result = append(result, id)
		}
	}
	slices.Sort(result)
	return result
}

func hasAll(rec *entityRecord, types []reflect.Type) bool {
	for _, ct := range types {
		if _, found := rec.components[ct]; !found {
			return false
		}
	}
	return true
}
