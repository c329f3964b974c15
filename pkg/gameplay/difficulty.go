package gameplay

import "github.com/decker502/stickcatch/pkg/config"

// Difficulty 下落速度曲线
// 速度 = 基础速度 + 增量 * (得分 / 里程碑)，只在得分恰好为里程碑倍数时变化
type Difficulty struct {
	base      float64
	increment float64
	milestone int
}

// NewDifficulty 根据规则集参数创建难度曲线
func NewDifficulty(vc config.VariantConfig) Difficulty {
	return Difficulty{
		base:      vc.BaseFallSpeed,
		increment: vc.SpeedIncrement,
		milestone: vc.Milestone,
	}
}

// BaseSpeed 初始下落速度
func (d Difficulty) BaseSpeed() float64 {
	return d.base
}

// IsMilestone 该得分是否触发加速
func (d Difficulty) IsMilestone(score int) bool {
	return d.milestone > 0 && d.increment > 0 && score > 0 && score%d.milestone == 0
}

// Next 得分变为 score 后的速度；第二个返回值表示是否变化
func (d Difficulty) Next(score int, current float64) (float64, bool) {
	if !d.IsMilestone(score) {
		return current, false
	}
	return current + d.increment, true
}

