package components

// GameFreezeComponent 游戏冻结组件
//
// 挂在沙箱的世界实体上，标记物理模拟暂停（游戏结束期间）
//
// 系统行为：
// - PhysicsSystem: 检测到 IsFrozen 时，停止速度积分与重叠检测
// - TimerSystem: 不受影响，计时器需要显式取消
//
// 系统通过查询此组件决定是否更新，避免全局标志位
type GameFreezeComponent struct {
	IsFrozen bool
}
