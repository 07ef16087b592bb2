package systems

import (
	"log"
	"math"
	"slices"

	"github.com/gonewx/mazebeam/pkg/components"
	"github.com/gonewx/mazebeam/pkg/ecs"
)

// AnimationSystem 推进所有实体的动作时间与混合权重
//
// 非循环动作播完后，向所属实体的 OnFinished 处理函数发送携带动作名的结束事件。
// 事件在所有实体更新完之后统一派发，处理函数可以安全地调用 Play。
type AnimationSystem struct {
	entityManager *ecs.EntityManager
	pending       []components.AnimationFinishedEvent
}

// NewAnimationSystem 创建动画系统
func NewAnimationSystem(em *ecs.EntityManager) *AnimationSystem {
	return &AnimationSystem{
		entityManager: em,
	}
}

// Play 切换到指定动作
//
// 新动作从头开始并在 crossfade 秒内淡入，之前的动作同时淡出；
// crossfade <= 0 或之前的动作已经停止时，之前的动作立即归零。
//
// 参数:
//   - id: 实体ID
//   - name: 动作名
//   - crossfade: 混合时长（秒）
//
// 返回:
//   - bool: 实体没有该动作时返回 false（记录日志，不做任何切换）
func (s *AnimationSystem) Play(id ecs.EntityID, name string, crossfade float64) bool {
	anim, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
	if !ok {
		log.Printf("[AnimationSystem] Warning: entity %d has no animation component", id)
		return false
	}
	next, ok := anim.Actions[name]
	if !ok {
		log.Printf("[AnimationSystem] Warning: entity %d has no action %q, switch skipped", id, name)
		return false
	}

	if prev, ok := anim.Actions[anim.Current]; ok && anim.Current != name {
		if crossfade > 0 && prev.Running {
			prev.FadeRate = -1 / crossfade
		} else {
			prev.Weight = 0
			prev.FadeRate = 0
			prev.Running = false
		}
	}

	next.Time = 0
	next.Running = true
	next.Finished = false
	if crossfade > 0 && anim.Current != "" && anim.Current != name {
		next.Weight = 0
		next.FadeRate = 1 / crossfade
	} else {
		next.Weight = 1
		next.FadeRate = 0
	}
	anim.Current = name
	return true
}

// IsRunning 动作是否正在播放
func (s *AnimationSystem) IsRunning(id ecs.EntityID, name string) bool {
	anim, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
	if !ok {
		return false
	}
	action, ok := anim.Actions[name]
	return ok && action.Running
}

// Update 推进动作时间与权重，并派发结束事件
func (s *AnimationSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.AnimationComponent](s.entityManager)

	for _, id := range entities {
		anim, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
		if !ok {
			continue
		}

		names := make([]string, 0, len(anim.Actions))
		for name := range anim.Actions {
			names = append(names, name)
		}
		slices.Sort(names)

		for _, name := range names {
			action := anim.Actions[name]
			if !action.Running {
				continue
			}

			if action.FadeRate != 0 {
				action.Weight = math.Max(0, math.Min(1, action.Weight+action.FadeRate*deltaTime))
				if action.FadeRate < 0 && action.Weight == 0 {
					// 淡出完成
					action.Running = false
					action.FadeRate = 0
					continue
				}
				if action.FadeRate > 0 && action.Weight == 1 {
					action.FadeRate = 0
				}
			}

			action.Time += deltaTime
			if action.Clip.Duration <= 0 {
				continue
			}
			if action.Clip.Loop {
				action.Time = math.Mod(action.Time, action.Clip.Duration)
				continue
			}
			if action.Time >= action.Clip.Duration {
				// 非循环动作停在最后一帧
				action.Time = action.Clip.Duration
				action.Running = false
				action.Finished = true
				if anim.OnFinished != nil {
					s.pending = append(s.pending, components.AnimationFinishedEvent{Entity: id, Action: name})
				}
			}
		}
	}

	s.dispatch()
}

func (s *AnimationSystem) dispatch() {
	events := s.pending
	s.pending = nil
	for _, ev := range events {
		anim, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, ev.Entity)
		if !ok || anim.OnFinished == nil {
			continue
		}
		anim.OnFinished(ev)
	}
}
