package components

// VelocityComponent 存储实体的速度（像素/秒）
// 由 PhysicsSystem 每帧积分到 PositionComponent
type VelocityComponent struct {
	VX float64
	VY float64
}
