package systems

import (
	"github.com/decker502/stickcatch/pkg/components"
	"github.com/decker502/stickcatch/pkg/ecs"
)

// TimerSystem 推进所有 TimerComponent，到期时调用回调
// 物理暂停不影响计时器，需要停止的计时器必须显式取消
type TimerSystem struct {
	entityManager *ecs.EntityManager
}

// NewTimerSystem 创建计时器系统
func NewTimerSystem(em *ecs.EntityManager) *TimerSystem {
	return &TimerSystem{
		entityManager: em,
	}
}

// Update 推进计时器
// 一帧内跨过多个周期时会连续触发；回调中取消计时器会立即停止后续触发
func (s *TimerSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager)

	for _, id := range entities {
		timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if !ok {
			continue
		}

		if !timer.Cancelled && timer.Interval > 0 {
			timer.Elapsed += deltaTime
			for timer.Elapsed >= timer.Interval && !timer.Cancelled {
				timer.Elapsed -= timer.Interval
				if !timer.Repeat {
					timer.Cancelled = true
				}
				if timer.Callback != nil {
					timer.Callback()
				}
			}
		}

		// 已取消（或一次性已触发）的计时器实体直接回收
		if timer.Cancelled {
			s.entityManager.DestroyEntity(id)
		}
	}
}
