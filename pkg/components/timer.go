package components

// TimerComponent 通用计时器组件
// 用于处理需要时间延迟的行为（如下落物的定时生成）
type TimerComponent struct {
	Name      string  // 计时器名称，如 "spawn"
	Interval  float64 // 触发间隔（秒）
	Elapsed   float64 // 自上次触发以来已过时间（秒）
	Repeat    bool    // 是否循环触发
	Cancelled bool    // 已取消的计时器不再触发
	Callback  func()  // 触发回调
}
