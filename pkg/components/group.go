package components

// GroupComponent 物理分组标记
// 重叠检测按"实体 vs 分组"注册，如 basket vs "falling"
type GroupComponent struct {
	Name string
}
