package systems

import (
	"testing"

	"github.com/decker502/stickcatch/pkg/components"
	"github.com/decker502/stickcatch/pkg/ecs"
)

// newTestPhysics 创建带世界实体的物理系统
func newTestPhysics(t *testing.T) (*ecs.EntityManager, *PhysicsSystem) {
	t.Helper()
	em := ecs.NewEntityManager()
	world := em.CreateEntity()
	ecs.AddComponent(em, world, &components.GameFreezeComponent{})
	return em, NewPhysicsSystem(em, world)
}

// addBody 创建带位置、碰撞盒的实体，group 非空时加入分组
func addBody(em *ecs.EntityManager, x, y, w, h float64, group string) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.CollisionComponent{Width: w, Height: h})
	if group != "" {
		ecs.AddComponent(em, id, &components.GroupComponent{Name: group})
	}
	return id
}

// TestCheckAABBCollision 测试AABB碰撞检测
func TestCheckAABBCollision(t *testing.T) {
	tests := []struct {
		name  string
		pos1  *components.PositionComponent
		col1  *components.CollisionComponent
		pos2  *components.PositionComponent
		col2  *components.CollisionComponent
		want  bool
		descr string
	}{
		{
			name:  "完全重叠",
			pos1:  &components.PositionComponent{X: 100, Y: 100},
			col1:  &components.CollisionComponent{Width: 50, Height: 50},
			pos2:  &components.PositionComponent{X: 100, Y: 100},
			col2:  &components.CollisionComponent{Width: 50, Height: 50},
			want:  true,
			descr: "两个碰撞盒完全重叠应该检测到碰撞",
		},
		{
			name:  "部分重叠 - 右边",
			pos1:  &components.PositionComponent{X: 100, Y: 100},
			col1:  &components.CollisionComponent{Width: 50, Height: 50},
			pos2:  &components.PositionComponent{X: 120, Y: 100},
			col2:  &components.CollisionComponent{Width: 50, Height: 50},
			want:  true,
			descr: "碰撞盒部分重叠（右边）应该检测到碰撞",
		},
		{
			name:  "边界刚好接触",
			pos1:  &components.PositionComponent{X: 100, Y: 100},
			col1:  &components.CollisionComponent{Width: 50, Height: 50},
			pos2:  &components.PositionComponent{X: 125, Y: 100},
			col2:  &components.CollisionComponent{Width: 50, Height: 50},
			want:  true,
			descr: "边界刚好接触应该检测到碰撞（AABB允许边界接触）",
		},
		{
			name:  "偏移后重叠",
			pos1:  &components.PositionComponent{X: 100, Y: 100},
			col1:  &components.CollisionComponent{Width: 20, Height: 20, OffsetX: 30},
			pos2:  &components.PositionComponent{X: 140, Y: 100},
			col2:  &components.CollisionComponent{Width: 20, Height: 20},
			want:  true,
			descr: "碰撞盒中心 = 位置 + 偏移",
		},
		{
			name:  "水平分离",
			pos1:  &components.PositionComponent{X: 100, Y: 100},
			col1:  &components.CollisionComponent{Width: 50, Height: 50},
			pos2:  &components.PositionComponent{X: 200, Y: 100},
			col2:  &components.CollisionComponent{Width: 50, Height: 50},
			want:  false,
			descr: "水平方向分离不应检测到碰撞",
		},
		{
			name:  "垂直分离",
			pos1:  &components.PositionComponent{X: 100, Y: 100},
			col1:  &components.CollisionComponent{Width: 110, Height: 10},
			pos2:  &components.PositionComponent{X: 100, Y: 40},
			col2:  &components.CollisionComponent{Width: 24, Height: 110},
			want:  false,
			descr: "下落物在篮子上方时不应检测到碰撞",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkAABBCollision(tt.pos1, tt.col1, tt.pos2, tt.col2)
			if got != tt.want {
				t.Errorf("%s: checkAABBCollision() = %v, want %v", tt.descr, got, tt.want)
			}
		})
	}
}

// TestPhysicsIntegrate 速度按秒积分到位置
func TestPhysicsIntegrate(t *testing.T) {
	em, ps := newTestPhysics(t)

	id := addBody(em, 100, 0, 10, 10, "falling")
	ecs.AddComponent(em, id, &components.VelocityComponent{VX: 30, VY: 200})

	ps.Update(0.5)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if pos.X != 115 || pos.Y != 100 {
		t.Errorf("position = (%v, %v), want (115, 100)", pos.X, pos.Y)
	}
}

// TestPhysicsFrozen 暂停时既不移动也不检测重叠
func TestPhysicsFrozen(t *testing.T) {
	em, ps := newTestPhysics(t)

	basket := addBody(em, 100, 100, 50, 10, "")
	obj := addBody(em, 100, 100, 10, 10, "falling")
	ecs.AddComponent(em, obj, &components.VelocityComponent{VY: 200})

	calls := 0
	ps.AddOverlap(basket, "falling", func(body, other ecs.EntityID) { calls++ })

	ps.SetFrozen(true)
	if !ps.IsFrozen() {
		t.Fatal("IsFrozen should be true")
	}
	ps.Update(1)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, obj)
	if pos.Y != 100 {
		t.Errorf("frozen body moved to y=%v", pos.Y)
	}
	if calls != 0 {
		t.Errorf("overlap callback called %d times while frozen", calls)
	}

	ps.SetFrozen(false)
	ps.Update(0)
	if calls != 1 {
		t.Errorf("overlap callback called %d times after resume, want 1", calls)
	}
}

// TestPhysicsOverlapGroups 只检测注册分组中的实体
func TestPhysicsOverlapGroups(t *testing.T) {
	em, ps := newTestPhysics(t)

	basket := addBody(em, 100, 100, 50, 10, "")
	inGroup := addBody(em, 100, 100, 10, 10, "falling")
	addBody(em, 100, 100, 10, 10, "other")
	addBody(em, 400, 100, 10, 10, "falling")

	var got []ecs.EntityID
	ps.AddOverlap(basket, "falling", func(body, other ecs.EntityID) {
		if body != basket {
			t.Errorf("body = %d, want %d", body, basket)
		}
		got = append(got, other)
	})

	ps.Update(0)
	if len(got) != 1 || got[0] != inGroup {
		t.Errorf("overlaps = %v, want [%d]", got, inGroup)
	}
}

// TestPhysicsOverlapCallbackMutations 回调删除实体或暂停物理后立即生效
func TestPhysicsOverlapCallbackMutations(t *testing.T) {
	t.Run("destroy skips later checks", func(t *testing.T) {
		em, ps := newTestPhysics(t)
		basket := addBody(em, 100, 100, 50, 10, "")
		a := addBody(em, 100, 100, 10, 10, "falling")
		b := addBody(em, 100, 100, 10, 10, "falling")

		calls := 0
		ps.AddOverlap(basket, "falling", func(body, other ecs.EntityID) {
			calls++
			em.DestroyEntity(a)
			em.DestroyEntity(b)
		})

		ps.Update(0)
		if calls != 1 {
			t.Errorf("callback called %d times, want 1", calls)
		}
	})

	t.Run("freeze stops detection", func(t *testing.T) {
		em, ps := newTestPhysics(t)
		basket := addBody(em, 100, 100, 50, 10, "")
		addBody(em, 100, 100, 10, 10, "falling")
		addBody(em, 100, 100, 10, 10, "falling")

		calls := 0
		ps.AddOverlap(basket, "falling", func(body, other ecs.EntityID) {
			calls++
			ps.SetFrozen(true)
		})

		ps.Update(0)
		if calls != 1 {
			t.Errorf("callback called %d times, want 1", calls)
		}
	})
}
