package gameplay

import (
	"github.com/decker502/stickcatch/pkg/engine"
	"github.com/decker502/stickcatch/pkg/types"
)

// FallingObject 下落物池中的一项
type FallingObject struct {
	Body   engine.BodyID
	Kind   types.ObjectKind
	Hazard bool
}

// Outcome 规则对事件的裁决
type Outcome int

const (
	// OutcomeScore 移除物体并加 1 分
	OutcomeScore Outcome = iota + 1
	// OutcomeRemove 静默移除物体
	OutcomeRemove
	// OutcomeGameOver 结束本局
	OutcomeGameOver
)

// Ruleset 规则集：决定接住与落地的结果
// 两个规则集彼此独立，简单版从不读取 Hazard 标记
type Ruleset interface {
	Variant() types.Variant
	// ResolveCatch 篮子接住物体
	ResolveCatch(obj FallingObject) Outcome
	// ResolveGroundExit 物体越过场地底边
	ResolveGroundExit(obj FallingObject) Outcome
}

// NewRuleset 按规则集类型创建规则
func NewRuleset(v types.Variant) Ruleset {
	if v == types.VariantEnhanced {
		return enhancedRules{}
	}
	return simpleRules{}
}

// simpleRules 简单版：接住任何物体都得分，任何物体落地都结束
type simpleRules struct{}

func (simpleRules) Variant() types.Variant { return types.VariantSimple }

func (simpleRules) ResolveCatch(FallingObject) Outcome { return OutcomeScore }

func (simpleRules) ResolveGroundExit(FallingObject) Outcome { return OutcomeGameOver }

// enhancedRules 增强版：危险物接住或落地都结束，安全物落地静默移除
type enhancedRules struct{}

func (enhancedRules) Variant() types.Variant { return types.VariantEnhanced }

func (enhancedRules) ResolveCatch(obj FallingObject) Outcome {
	if obj.Hazard {
		return OutcomeGameOver
	}
	return OutcomeScore
}

func (enhancedRules) ResolveGroundExit(obj FallingObject) Outcome {
	if obj.Hazard {
		return OutcomeGameOver
	}
	return OutcomeRemove
}
