package systems

import (
	"testing"

	"github.com/decker502/stickcatch/pkg/components"
	"github.com/decker502/stickcatch/pkg/ecs"
)

// addButton 创建以 (x, y) 为中心、w x h 的按钮
func addButton(em *ecs.EntityManager, x, y, w, h float64, visible bool, onClick func()) (ecs.EntityID, *components.ButtonComponent) {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.ClickableComponent{Width: w, Height: h, IsEnabled: true})
	button := &components.ButtonComponent{Text: "Play Again", Visible: visible, OnClick: onClick}
	ecs.AddComponent(em, id, button)
	return id, button
}

func TestUIClick(t *testing.T) {
	tests := []struct {
		name      string
		visible   bool
		x, y      float64
		wantHit   bool
		wantState components.UIState
	}{
		{"center", true, 300, 640, true, components.UIClicked},
		{"edge", true, 350, 660, true, components.UIClicked},
		{"outside", true, 351, 640, false, components.UINormal},
		{"hidden", false, 300, 640, false, components.UINormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			s := NewUISystem(em)

			clicks := 0
			_, button := addButton(em, 300, 640, 100, 40, tt.visible, func() { clicks++ })

			if got := s.Click(tt.x, tt.y); got != tt.wantHit {
				t.Errorf("Click = %v, want %v", got, tt.wantHit)
			}
			wantClicks := 0
			if tt.wantHit {
				wantClicks = 1
			}
			if clicks != wantClicks {
				t.Errorf("OnClick called %d times, want %d", clicks, wantClicks)
			}
			if button.State != tt.wantState {
				t.Errorf("State = %v, want %v", button.State, tt.wantState)
			}
		})
	}
}

// TestUIClickArea 区域与按钮相交即命中，区域中心不必落在按钮内
func TestUIClickArea(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		wantHit        bool
	}{
		{"cell taller than button", 290, 540, 300, 648, true},
		{"touching bottom edge", 290, 660, 300, 760, true},
		{"above button", 290, 500, 300, 619, false},
		{"right of button", 351, 600, 400, 700, false},
		{"covers button", 0, 0, 600, 1080, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			s := NewUISystem(em)

			clicks := 0
			addButton(em, 300, 640, 100, 40, true, func() { clicks++ })

			if got := s.ClickArea(tt.x0, tt.y0, tt.x1, tt.y1); got != tt.wantHit {
				t.Errorf("ClickArea = %v, want %v", got, tt.wantHit)
			}
			if tt.wantHit && clicks != 1 {
				t.Errorf("OnClick called %d times, want 1", clicks)
			}
		})
	}
}

// TestUIClickTopmost 重叠的按钮只触发最后创建的那个
func TestUIClickTopmost(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewUISystem(em)

	var order []string
	addButton(em, 100, 100, 50, 50, true, func() { order = append(order, "bottom") })
	addButton(em, 100, 100, 50, 50, true, func() { order = append(order, "top") })

	s.Click(100, 100)
	if len(order) != 1 || order[0] != "top" {
		t.Errorf("clicked = %v, want [top]", order)
	}
}

func TestUIDisabledClickable(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewUISystem(em)

	clicks := 0
	id, _ := addButton(em, 100, 100, 50, 50, true, func() { clicks++ })
	clickable, _ := ecs.GetComponent[*components.ClickableComponent](em, id)
	clickable.IsEnabled = false

	if s.Click(100, 100) || clicks != 0 {
		t.Error("disabled button should not respond")
	}
}

func TestUIHover(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewUISystem(em)

	_, visible := addButton(em, 100, 100, 50, 50, true, nil)
	_, hidden := addButton(em, 100, 100, 50, 50, false, nil)
	hidden.State = components.UIHovered

	s.Hover(110, 90)
	if visible.State != components.UIHovered {
		t.Errorf("visible state = %v, want hovered", visible.State)
	}
	if hidden.State != components.UINormal {
		t.Errorf("hidden state = %v, want normal", hidden.State)
	}

	s.Hover(500, 500)
	if visible.State != components.UINormal {
		t.Errorf("state after leaving = %v, want normal", visible.State)
	}

	// 没有回调的按钮点击也算命中
	if !s.Click(100, 100) {
		t.Error("click on visible button without callback should hit")
	}
}
