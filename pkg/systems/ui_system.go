package systems

import (
	"github.com/decker502/stickcatch/pkg/components"
	"github.com/decker502/stickcatch/pkg/ecs"
)

// UISystem 处理按钮的悬停与点击
// 坐标为场地逻辑坐标，宿主负责把窗口/终端坐标换算过来
type UISystem struct {
	entityManager *ecs.EntityManager
}

// NewUISystem 创建 UI 系统
func NewUISystem(em *ecs.EntityManager) *UISystem {
	return &UISystem{
		entityManager: em,
	}
}

// Hover 根据指针位置更新按钮状态
func (s *UISystem) Hover(x, y float64) {
	for _, id := range s.buttons() {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
		if !button.Visible {
			button.State = components.UINormal
			continue
		}
		if s.hit(id, x, y, x, y) {
			button.State = components.UIHovered
		} else {
			button.State = components.UINormal
		}
	}
}

// Click 在 (x, y) 处点击，触发最上层（最后创建的）可见按钮的回调
// 返回是否有按钮响应
func (s *UISystem) Click(x, y float64) bool {
	return s.ClickArea(x, y, x, y)
}

// ClickArea 点击一块矩形区域 [x0, x1] x [y0, y1]，与按钮区域相交即命中
// 终端一个单元格对应场地里的一块区域，而不是一个点
func (s *UISystem) ClickArea(x0, y0, x1, y1 float64) bool {
	buttons := s.buttons()
	for i := len(buttons) - 1; i >= 0; i-- {
		id := buttons[i]
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
		if !button.Visible || !s.hit(id, x0, y0, x1, y1) {
			continue
		}

		button.State = components.UIClicked
		if button.OnClick != nil {
			button.OnClick()
		}
		return true
	}
	return false
}

// buttons 查询所有带可点击区域的按钮
func (s *UISystem) buttons() []ecs.EntityID {
	return ecs.GetEntitiesWith3[*components.ButtonComponent, *components.ClickableComponent, *components.PositionComponent](s.entityManager)
}

// hit 检查矩形是否与按钮的可点击区域相交（区域以位置为中心），边界算命中
func (s *UISystem) hit(id ecs.EntityID, x0, y0, x1, y1 float64) bool {
	clickable, ok := ecs.GetComponent[*components.ClickableComponent](s.entityManager, id)
	if !ok || !clickable.IsEnabled {
		return false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return false
	}

	return x1 >= pos.X-clickable.Width/2 && x0 <= pos.X+clickable.Width/2 &&
		y1 >= pos.Y-clickable.Height/2 && y0 <= pos.Y+clickable.Height/2
}
