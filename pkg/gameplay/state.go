// Package gameplay 实现接物玩法的核心逻辑
//
// Controller 持有一局游戏的全部状态（GameState、下落物池、生成计时器），
// 通过 engine 包的接口与宿主交互，不使用任何全局变量。
// 宿主负责在每帧调用 OnTick，计时器与重叠回调分别调用 OnSpawnTimer 与 OnOverlap。
package gameplay

// Phase 一局游戏所处的阶段
type Phase int

const (
	// PhasePlaying 进行中
	PhasePlaying Phase = iota
	// PhaseGameOver 已结束，等待重玩
	PhaseGameOver
)

// String 返回阶段名
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "Playing"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// GameState 一局游戏的可变状态
//
// 不变量：
//   - Score >= 0
//   - FallSpeed 只在得分里程碑增加，只在重玩时重置
//   - Phase 每局只从 Playing 变为 GameOver 一次
type GameState struct {
	Score     int
	FallSpeed float64
	Phase     Phase
}

// NewGameState 返回一局新游戏的初始状态
func NewGameState(baseFallSpeed float64) GameState {
	return GameState{
		Score:     0,
		FallSpeed: baseFallSpeed,
		Phase:     PhasePlaying,
	}
}

// IsOver 是否已结束
func (s GameState) IsOver() bool {
	return s.Phase == PhaseGameOver
}
