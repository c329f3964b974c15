package components

// ButtonComponent 按钮组件（ECS 架构）
// 包含按钮的外观、文字、状态与回调；可点击区域由 ClickableComponent 描述
//
// 设计原则：
//   - 纯数据组件，不包含任何方法
//   - 文字自动居中显示
type ButtonComponent struct {
	// Text 按钮上显示的文字
	Text string
	// FontSize 文字大小（像素）
	FontSize float64
	// TextColor 文字颜色（RGBA）
	TextColor [4]uint8
	// BackgroundColor 背景颜色（RGBA）
	BackgroundColor [4]uint8
	// PaddingX, PaddingY 文字与边框的间距
	PaddingX float64
	PaddingY float64

	// State 当前交互状态（Normal/Hover/Clicked/Disabled）
	State UIState
	// Visible 是否显示；隐藏的按钮不响应点击
	Visible bool

	// OnClick 点击回调函数
	OnClick func()
}
