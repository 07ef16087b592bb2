package components

// EnemyState 敌人转向状态机
type EnemyState int

const (
	// EnemyPursue 追击：朝玩家移动
	EnemyPursue EnemyState = iota
	// EnemyEngage 接敌：进入攻击距离后停下（不造成伤害）
	EnemyEngage
)

// String 返回状态名
func (s EnemyState) String() string {
	if s == EnemyEngage {
		return "engage"
	}
	return "pursue"
}

// EnemyComponent 敌人状态
type EnemyComponent struct {
	Name    string // 唯一名称，格式 type_N
	Type    string // 原型名
	HP      int
	IsAlive bool
	State   EnemyState

	Speed            float64
	AttackRange      float64
	DefaultAnimation string
	Color            [3]uint8
}
