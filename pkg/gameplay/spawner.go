package gameplay

import (
	"math"
	"math/rand"

	"github.com/decker502/stickcatch/pkg/config"
)

// Spawner 决定下一个下落物的种类与X坐标
// 随机源由外部注入，固定种子即可复现一局
type Spawner struct {
	rng        *rand.Rand
	kinds      []config.ObjectKindConfig
	cumulative []int // 累计权重
	total      int
	minX       int
	maxX       int
}

// NewSpawner 创建生成器
//
// 参数：
//   - rng: 随机源
//   - kinds: 规则集中的下落物种类（权重已校验为正）
//   - width: 场地宽度
//   - margin: 左右边距
func NewSpawner(rng *rand.Rand, kinds []config.ObjectKindConfig, width, margin float64) *Spawner {
	s := &Spawner{
		rng:        rng,
		kinds:      kinds,
		cumulative: make([]int, len(kinds)),
		minX:       int(math.Ceil(margin)),
		maxX:       int(math.Floor(width - margin)),
	}
	for i, k := range kinds {
		s.total += k.Weight
		s.cumulative[i] = s.total
	}
	if s.maxX < s.minX {
		s.maxX = s.minX
	}
	return s
}

// PickKind 按权重抽取种类
func (s *Spawner) PickKind() config.ObjectKindConfig {
	r := s.rng.Intn(s.total)
	for i, c := range s.cumulative {
		if r < c {
			return s.kinds[i]
		}
	}
	return s.kinds[len(s.kinds)-1]
}

// PickX 在 [margin, width-margin] 内均匀抽取整数X坐标
func (s *Spawner) PickX() float64 {
	return float64(s.minX + s.rng.Intn(s.maxX-s.minX+1))
}

// XRange 返回可生成的X范围（闭区间）
func (s *Spawner) XRange() (float64, float64) {
	return float64(s.minX), float64(s.maxX)
}
