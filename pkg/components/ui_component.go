package components

// UIState 按钮的交互状态，由 UISystem 写入、渲染器读取
type UIState int

const (
	UINormal  UIState = iota // 默认
	UIHovered                // 指针悬停，绘制时提亮
	UIClicked                // 本帧被点击
)
