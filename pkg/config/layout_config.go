package config

import "math"

// 窗口布局常量
// 逻辑分辨率等于场地尺寸，窗口按比例缩小显示（1080 高度在多数桌面显示器上放不下）
const (
	// WindowScale 桌面窗口相对逻辑分辨率的缩放
	WindowScale = 0.5

	// WindowTitle 窗口标题
	WindowTitle = "Stick Catch"
)

// LayoutSize 返回 Ebitengine Layout 使用的整数逻辑尺寸（向上取整，607.5 -> 608）
func LayoutSize(pf PlayfieldConfig) (int, int) {
	return int(math.Ceil(pf.Width)), int(math.Ceil(pf.Height))
}

// WindowSize 返回桌面窗口的初始尺寸
func WindowSize(pf PlayfieldConfig) (int, int) {
	w, h := LayoutSize(pf)
	return int(float64(w) * WindowScale), int(float64(h) * WindowScale)
}
