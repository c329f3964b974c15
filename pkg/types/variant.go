package types

import "fmt"

// Variant 选择游戏规则集
type Variant int

const (
	// VariantSimple 简单版：两种树枝，任何物体落地都结束游戏，速度固定
	VariantSimple Variant = iota
	// VariantEnhanced 增强版：加入危险物，每 10 分加速
	VariantEnhanced
)

// String 返回规则集的配置名
func (v Variant) String() string {
	switch v {
	case VariantSimple:
		return "simple"
	case VariantEnhanced:
		return "enhanced"
	default:
		return "unknown"
	}
}

// ParseVariant 解析命令行或配置中的规则集名称
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "simple", "a", "A":
		return VariantSimple, nil
	case "enhanced", "b", "B":
		return VariantEnhanced, nil
	}
	return VariantSimple, fmt.Errorf("unknown variant %q (want simple or enhanced)", s)
}
