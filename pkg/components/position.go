package components

// PositionComponent 存储实体在游戏世界中的位置（像素）
// 对于带碰撞盒的实体，位置是碰撞盒中心
type PositionComponent struct {
	X float64
	Y float64
}
