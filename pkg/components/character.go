package components

// ActorState 角色动作状态机
type ActorState int

const (
	// ActorIdle 待机（循环）
	ActorIdle ActorState = iota
	// ActorRun 奔跑（循环）
	ActorRun
	// ActorSingleShot 单次动作进行中（如踢腿），期间门控关闭
	ActorSingleShot
)

// String 返回状态名
func (s ActorState) String() string {
	switch s {
	case ActorIdle:
		return "idle"
	case ActorRun:
		return "run"
	case ActorSingleShot:
		return "single-shot"
	}
	return "unknown"
}

// KickPhase 踢腿动作中光束的发射阶段
type KickPhase int

const (
	KickNone     KickPhase = iota // 不在踢腿中
	KickCharging                  // 踢腿开始，等待发射延迟
	KickFired                     // 本次踢腿已发射光束
)

// CharacterComponent 玩家角色状态
type CharacterComponent struct {
	State           ActorState
	Action          string  // 正在进行的单次动作名（仅 ActorSingleShot 时有效）
	ActionStartedAt float64 // 单次动作开始时间（游戏时钟，秒）
	Kick            KickPhase

	Speed         float64 // 最大移动速度
	RotationSpeed float64 // 转身速度（弧度/秒）
	Moving        bool    // 本帧是否有移动输入
}

// CanPlayAction 单次动作门控是否打开
func (c *CharacterComponent) CanPlayAction() bool {
	return c.State != ActorSingleShot
}
