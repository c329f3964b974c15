package engine

import (
	"log"
	"time"

	"github.com/decker502/stickcatch/pkg/components"
	"github.com/decker502/stickcatch/pkg/ecs"
	"github.com/decker502/stickcatch/pkg/systems"
)

// 按钮尺寸估算系数（沙箱不依赖字体，宿主绘制时使用同样的尺寸）
const (
	glyphWidthRatio  = 0.6
	lineHeightRatio  = 1.2
	defaultLayerBody = 10
)

// Sandbox 基于 EntityManager 的引擎契约实现
//
// 每帧由宿主调用 Step(dt)，顺序固定：
//
//	计时器 -> 物理（积分 + 重叠回调） -> 更新回调 -> 清理已删除实体
type Sandbox struct {
	em          *ecs.EntityManager
	worldEntity ecs.EntityID

	physicsSystem *systems.PhysicsSystem
	timerSystem   *systems.TimerSystem
	uiSystem      *systems.UISystem

	updateHandlers []func()
}

// 编译期检查
var (
	_ Physics = (*Sandbox)(nil)
	_ Clock   = (*Sandbox)(nil)
	_ Display = (*Sandbox)(nil)
)

// NewSandbox 创建空的沙箱
func NewSandbox() *Sandbox {
	em := ecs.NewEntityManager()

	world := em.CreateEntity()
	ecs.AddComponent(em, world, &components.GameFreezeComponent{IsFrozen: false})

	return &Sandbox{
		em:            em,
		worldEntity:   world,
		physicsSystem: systems.NewPhysicsSystem(em, world),
		timerSystem:   systems.NewTimerSystem(em),
		uiSystem:      systems.NewUISystem(em),
	}
}

// EntityManager 返回底层实体管理器（供渲染器查询组件）
func (s *Sandbox) EntityManager() *ecs.EntityManager {
	return s.em
}

// OnUpdate 注册每帧更新回调（相当于场景的 update 钩子）
func (s *Sandbox) OnUpdate(fn func()) {
	s.updateHandlers = append(s.updateHandlers, fn)
}

// Step 推进一帧
func (s *Sandbox) Step(deltaTime float64) {
	s.timerSystem.Update(deltaTime)
	s.physicsSystem.Update(deltaTime)
	for _, fn := range s.updateHandlers {
		fn()
	}
	s.em.RemoveMarkedEntities()
}

// Click 在场地坐标 (x, y) 处点击
func (s *Sandbox) Click(x, y float64) bool {
	return s.uiSystem.Click(x, y)
}

// ClickArea 点击场地中的一块矩形区域
func (s *Sandbox) ClickArea(x0, y0, x1, y1 float64) bool {
	return s.uiSystem.ClickArea(x0, y0, x1, y1)
}

// Hover 更新指针悬停状态
func (s *Sandbox) Hover(x, y float64) {
	s.uiSystem.Hover(x, y)
}

// ===== Physics =====

// Spawn 创建物体
func (s *Sandbox) Spawn(spec BodySpec) BodyID {
	id := s.em.CreateEntity()

	scale := spec.Scale
	if scale == 0 {
		scale = 1
	}
	layer := spec.Layer
	if layer == 0 {
		layer = defaultLayerBody
	}

	ecs.AddComponent(s.em, id, &components.PositionComponent{X: spec.X, Y: spec.Y})
	ecs.AddComponent(s.em, id, &components.VelocityComponent{VX: spec.VX, VY: spec.VY})
	ecs.AddComponent(s.em, id, &components.CollisionComponent{
		Width:   spec.Width,
		Height:  spec.Height,
		OffsetX: spec.OffsetX,
		OffsetY: spec.OffsetY,
	})
	ecs.AddComponent(s.em, id, &components.SpriteComponent{
		ImageID: spec.ImageID,
		Scale:   scale,
		Visible: spec.Visible,
		Layer:   layer,
	})
	if spec.Group != "" {
		ecs.AddComponent(s.em, id, &components.GroupComponent{Name: spec.Group})
	}

	return BodyID(id)
}

// Destroy 删除物体，对已删除的物体无效果
func (s *Sandbox) Destroy(id BodyID) {
	s.em.DestroyEntity(ecs.EntityID(id))
}

// Alive 物体存在且未被删除
func (s *Sandbox) Alive(id BodyID) bool {
	return s.em.IsAlive(ecs.EntityID(id))
}

// Position 返回物体位置
func (s *Sandbox) Position(id BodyID) (float64, float64, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.em, ecs.EntityID(id))
	if !ok {
		return 0, 0, false
	}
	return pos.X, pos.Y, true
}

// SetPosition 直接设置物体位置（不经过速度积分）
func (s *Sandbox) SetPosition(id BodyID, x, y float64) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.em, ecs.EntityID(id))
	if !ok {
		return
	}
	pos.X, pos.Y = x, y
}

// Velocity 返回物体速度
func (s *Sandbox) Velocity(id BodyID) (float64, float64, bool) {
	vel, ok := ecs.GetComponent[*components.VelocityComponent](s.em, ecs.EntityID(id))
	if !ok {
		return 0, 0, false
	}
	return vel.VX, vel.VY, true
}

// SetVelocity 设置物体速度
func (s *Sandbox) SetVelocity(id BodyID, vx, vy float64) {
	vel, ok := ecs.GetComponent[*components.VelocityComponent](s.em, ecs.EntityID(id))
	if !ok {
		return
	}
	vel.VX, vel.VY = vx, vy
}

// Bodies 返回分组内所有存活物体，按创建顺序排列
func (s *Sandbox) Bodies(group string) []BodyID {
	entities := ecs.GetEntitiesWith2[*components.GroupComponent, *components.PositionComponent](s.em)

	result := make([]BodyID, 0, len(entities))
	for _, id := range entities {
		g, ok := ecs.GetComponent[*components.GroupComponent](s.em, id)
		if ok && g.Name == group {
			result = append(result, BodyID(id))
		}
	}
	return result
}

// OnOverlap 注册重叠回调
func (s *Sandbox) OnOverlap(body BodyID, group string, fn OverlapFunc) {
	s.physicsSystem.AddOverlap(ecs.EntityID(body), group, func(a, b ecs.EntityID) {
		fn(BodyID(a), BodyID(b))
	})
}

// Pause 暂停物理模拟
func (s *Sandbox) Pause() {
	s.physicsSystem.SetFrozen(true)
	log.Printf("[Sandbox] Physics paused")
}

// Resume 恢复物理模拟
func (s *Sandbox) Resume() {
	s.physicsSystem.SetFrozen(false)
	log.Printf("[Sandbox] Physics resumed")
}

// Paused 物理是否暂停
func (s *Sandbox) Paused() bool {
	return s.physicsSystem.IsFrozen()
}

// ===== Clock =====

// timerHandle 计时器句柄
type timerHandle struct {
	em *ecs.EntityManager
	id ecs.EntityID
}

// Every 注册循环计时器，每 delay 触发一次 fn
func (s *Sandbox) Every(delay time.Duration, fn func()) Timer {
	id := s.em.CreateEntity()
	ecs.AddComponent(s.em, id, &components.TimerComponent{
		Name:     "repeat",
		Interval: delay.Seconds(),
		Repeat:   true,
		Callback: fn,
	})
	return &timerHandle{em: s.em, id: id}
}

// Cancel 取消计时器，重复取消是安全的
func (t *timerHandle) Cancel() {
	timer, ok := ecs.GetComponent[*components.TimerComponent](t.em, t.id)
	if !ok {
		return
	}
	timer.Cancelled = true
	t.em.DestroyEntity(t.id)
}

// Active 计时器是否仍会触发
func (t *timerHandle) Active() bool {
	timer, ok := ecs.GetComponent[*components.TimerComponent](t.em, t.id)
	return ok && !timer.Cancelled
}

// ===== Display =====

// labelHandle 文本标签句柄
type labelHandle struct {
	em *ecs.EntityManager
	id ecs.EntityID
}

// NewLabel 创建文本标签
func (s *Sandbox) NewLabel(spec LabelSpec) Label {
	id := s.em.CreateEntity()
	ecs.AddComponent(s.em, id, &components.PositionComponent{X: spec.X, Y: spec.Y})
	ecs.AddComponent(s.em, id, &components.LabelComponent{
		Text:     spec.Text,
		FontSize: spec.FontSize,
		Color:    spec.Color,
		Align:    spec.Align,
		Visible:  spec.Visible,
	})
	return &labelHandle{em: s.em, id: id}
}

func (l *labelHandle) component() *components.LabelComponent {
	label, ok := ecs.GetComponent[*components.LabelComponent](l.em, l.id)
	if !ok {
		return nil
	}
	return label
}

func (l *labelHandle) SetText(text string) {
	if label := l.component(); label != nil {
		label.Text = text
	}
}

func (l *labelHandle) Text() string {
	if label := l.component(); label != nil {
		return label.Text
	}
	return ""
}

func (l *labelHandle) SetVisible(visible bool) {
	if label := l.component(); label != nil {
		label.Visible = visible
	}
}

func (l *labelHandle) Visible() bool {
	label := l.component()
	return label != nil && label.Visible
}

// buttonHandle 按钮句柄
type buttonHandle struct {
	em *ecs.EntityManager
	id ecs.EntityID
}

// NewButton 创建按钮，尺寸由文字长度、字号与内边距估算
func (s *Sandbox) NewButton(spec ButtonSpec) Button {
	id := s.em.CreateEntity()

	width, height := ButtonSize(spec.Text, spec.FontSize, spec.PaddingX, spec.PaddingY)

	ecs.AddComponent(s.em, id, &components.PositionComponent{X: spec.X, Y: spec.Y})
	ecs.AddComponent(s.em, id, &components.ClickableComponent{
		Width:     width,
		Height:    height,
		IsEnabled: true,
	})
	ecs.AddComponent(s.em, id, &components.ButtonComponent{
		Text:            spec.Text,
		FontSize:        spec.FontSize,
		TextColor:       spec.TextColor,
		BackgroundColor: spec.Background,
		PaddingX:        spec.PaddingX,
		PaddingY:        spec.PaddingY,
		State:           components.UINormal,
		Visible:         spec.Visible,
	})
	return &buttonHandle{em: s.em, id: id}
}

// ButtonSize 估算按钮尺寸
func ButtonSize(text string, fontSize, paddingX, paddingY float64) (float64, float64) {
	width := float64(len([]rune(text)))*fontSize*glyphWidthRatio + paddingX*2
	height := fontSize*lineHeightRatio + paddingY*2
	return width, height
}

func (b *buttonHandle) component() *components.ButtonComponent {
	button, ok := ecs.GetComponent[*components.ButtonComponent](b.em, b.id)
	if !ok {
		return nil
	}
	return button
}

func (b *buttonHandle) Show() {
	if button := b.component(); button != nil {
		button.Visible = true
	}
}

func (b *buttonHandle) Hide() {
	if button := b.component(); button != nil {
		button.Visible = false
		button.State = components.UINormal
	}
}

func (b *buttonHandle) Visible() bool {
	button := b.component()
	return button != nil && button.Visible
}

func (b *buttonHandle) OnClick(fn func()) {
	if button := b.component(); button != nil {
		button.OnClick = fn
	}
}
