package systems

import (
	"log"

	"github.com/decker502/stickcatch/pkg/components"
	"github.com/decker502/stickcatch/pkg/ecs"
)

// OverlapFunc 重叠回调：body 是注册的实体，other 是分组中与之重叠的实体
type OverlapFunc func(body, other ecs.EntityID)

// overlapBinding 一条"实体 vs 分组"的重叠检测注册
type overlapBinding struct {
	body     ecs.EntityID
	group    string
	callback OverlapFunc
}

// PhysicsSystem 处理游戏物理逻辑
// 负责速度积分与重叠检测（篮子与下落物）
type PhysicsSystem struct {
	em          *ecs.EntityManager
	worldEntity ecs.EntityID // 挂载 GameFreezeComponent 的世界实体
	overlaps    []overlapBinding
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - em: 实体管理器，用于查询和操作实体组件
//   - worldEntity: 世界实体，其 GameFreezeComponent 控制暂停
//
// 返回:
//   - *PhysicsSystem: 物理系统实例
func NewPhysicsSystem(em *ecs.EntityManager, worldEntity ecs.EntityID) *PhysicsSystem {
	return &PhysicsSystem{
		em:          em,
		worldEntity: worldEntity,
	}
}

// AddOverlap 注册重叠检测，每帧积分后检查 body 与 group 内所有实体
func (ps *PhysicsSystem) AddOverlap(body ecs.EntityID, group string, callback OverlapFunc) {
	ps.overlaps = append(ps.overlaps, overlapBinding{body: body, group: group, callback: callback})
	log.Printf("[PhysicsSystem] Overlap registered: entity %d vs group %q", body, group)
}

// IsFrozen 物理是否暂停
func (ps *PhysicsSystem) IsFrozen() bool {
	freeze, ok := ecs.GetComponent[*components.GameFreezeComponent](ps.em, ps.worldEntity)
	return ok && freeze.IsFrozen
}

// SetFrozen 暂停或恢复物理
func (ps *PhysicsSystem) SetFrozen(frozen bool) {
	freeze, ok := ecs.GetComponent[*components.GameFreezeComponent](ps.em, ps.worldEntity)
	if !ok {
		return
	}
	freeze.IsFrozen = frozen
}

// Update 更新物理系统
// 暂停时既不移动也不检测重叠
//
// 参数:
//   - deltaTime: 自上一帧以来经过的时间（秒）
func (ps *PhysicsSystem) Update(deltaTime float64) {
	if ps.IsFrozen() {
		return
	}

	ps.integrate(deltaTime)
	ps.detectOverlaps()
}

// integrate 速度积分：position += velocity * dt
func (ps *PhysicsSystem) integrate(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.PositionComponent, *components.VelocityComponent](ps.em)

	for _, id := range entities {
		pos, ok := ecs.GetComponent[*components.PositionComponent](ps.em, id)
		if !ok {
			continue
		}
		vel, ok := ecs.GetComponent[*components.VelocityComponent](ps.em, id)
		if !ok {
			continue
		}

		pos.X += vel.VX * deltaTime
		pos.Y += vel.VY * deltaTime
	}
}

// detectOverlaps 执行所有注册的重叠检测
// 回调可能删除实体或暂停物理，因此每次调用前都重新检查
func (ps *PhysicsSystem) detectOverlaps() {
	for _, binding := range ps.overlaps {
		if !ps.em.IsAlive(binding.body) {
			continue
		}

		members := ecs.GetEntitiesWith3[*components.GroupComponent, *components.PositionComponent, *components.CollisionComponent](ps.em)
		for _, other := range members {
			if ps.IsFrozen() {
				return
			}
			if other == binding.body || !ps.em.IsAlive(other) || !ps.em.IsAlive(binding.body) {
				continue
			}

			group, ok := ecs.GetComponent[*components.GroupComponent](ps.em, other)
			if !ok || group.Name != binding.group {
				continue
			}

			if ps.Overlaps(binding.body, other) {
				binding.callback(binding.body, other)
			}
		}
	}
}

// Overlaps 检查两个实体的碰撞盒是否重叠
func (ps *PhysicsSystem) Overlaps(a, b ecs.EntityID) bool {
	posA, ok := ecs.GetComponent[*components.PositionComponent](ps.em, a)
	if !ok {
		return false
	}
	colA, ok := ecs.GetComponent[*components.CollisionComponent](ps.em, a)
	if !ok {
		return false
	}
	posB, ok := ecs.GetComponent[*components.PositionComponent](ps.em, b)
	if !ok {
		return false
	}
	colB, ok := ecs.GetComponent[*components.CollisionComponent](ps.em, b)
	if !ok {
		return false
	}
	return checkAABBCollision(posA, colA, posB, colB)
}

// checkAABBCollision 检查两个碰撞盒（AABB，轴对齐边界框）是否重叠
// 碰撞盒中心 = 实体位置 + 偏移量
func checkAABBCollision(
	pos1 *components.PositionComponent, col1 *components.CollisionComponent,
	pos2 *components.PositionComponent, col2 *components.CollisionComponent) bool {

	cx1, cy1 := pos1.X+col1.OffsetX, pos1.Y+col1.OffsetY
	cx2, cy2 := pos2.X+col2.OffsetX, pos2.Y+col2.OffsetY

	left1, right1 := cx1-col1.Width/2, cx1+col1.Width/2
	top1, bottom1 := cy1-col1.Height/2, cy1+col1.Height/2

	left2, right2 := cx2-col2.Width/2, cx2+col2.Width/2
	top2, bottom2 := cy2-col2.Height/2, cy2+col2.Height/2

	// 任一轴上没有重叠，则没有碰撞
	return right1 >= left2 &&
		left1 <= right2 &&
		bottom1 >= top2 &&
		top1 <= bottom2
}
