package components

import "github.com/google/uuid"

// DestructibleComponent 可被光束击碎的目标（球体）
type DestructibleComponent struct {
	TargetID uuid.UUID // 碰撞目标注册表中的ID
	Radius   float64
	Color    [3]uint8
}

// TargetComponent 实体在碰撞目标注册表中的登记（敌人等可被光束命中的角色）
type TargetComponent struct {
	TargetID uuid.UUID
}
