package components

import "github.com/gonewx/mazebeam/pkg/ecs"

// AnimationClip 动画片段定义（由资源清单提供）
type AnimationClip struct {
	Name     string  // 动作名（如 "idle", "run", "kick"）
	Duration float64 // 时长（秒）
	Loop     bool    // 是否循环
}

// AnimationAction 单个可播放动作的运行时状态
type AnimationAction struct {
	Clip     AnimationClip
	Time     float64 // 当前播放时间（秒）
	Weight   float64 // 混合权重 0~1
	FadeRate float64 // 每秒权重变化量，正值淡入，负值淡出
	Running  bool    // 是否在推进时间
	Finished bool    // 非循环动作是否已播完（播完后停在最后一帧）
}

// AnimationFinishedEvent 非循环动作播放结束事件
// 事件直接携带动作名，由所属实体的处理函数消费
type AnimationFinishedEvent struct {
	Entity ecs.EntityID
	Action string
}

// AnimationComponent 实体的动作集合
type AnimationComponent struct {
	Actions map[string]*AnimationAction
	Current string // 当前动作名，空字符串表示尚未播放任何动作

	// OnFinished 每个实体自己的结束事件处理函数
	OnFinished func(AnimationFinishedEvent)
}

// NewAnimationComponent 由片段列表构建动作集合
func NewAnimationComponent(clips []AnimationClip) *AnimationComponent {
	actions := make(map[string]*AnimationAction, len(clips))
	for _, clip := range clips {
		actions[clip.Name] = &AnimationAction{Clip: clip}
	}
	return &AnimationComponent{Actions: actions}
}
