package components

// TextAlign 文本对齐方式
type TextAlign int

const (
	// AlignLeft 以位置为左上角
	AlignLeft TextAlign = iota
	// AlignCenter 以位置为中心
	AlignCenter
	// AlignRight 以位置为右上角
	AlignRight
)

// LabelComponent 可变文本标签（分数、结束提示等）
type LabelComponent struct {
	Text     string
	FontSize float64
	Color    [4]uint8 // R, G, B, A
	Align    TextAlign
	Visible  bool
}
