package components

// TransientKind 投射物/特效引擎管理的瞬态实体类型标签
type TransientKind int

const (
	TransientBeam TransientKind = iota
	TransientRing
	TransientParticleBatch
	TransientDebrisBatch
)

// String 返回类型名
func (k TransientKind) String() string {
	switch k {
	case TransientBeam:
		return "beam"
	case TransientRing:
		return "ring"
	case TransientParticleBatch:
		return "particles"
	case TransientDebrisBatch:
		return "debris"
	}
	return "unknown"
}

// TransientComponent 瞬态实体标签，渲染与统计按标签分派
type TransientComponent struct {
	Kind      TransientKind
	CreatedAt float64 // 创建时间（游戏时钟，秒）
}
