// Package engine 定义玩法控制器所依赖的宿主引擎契约，并提供基于 ECS 的内存实现（Sandbox）
//
// 控制器只依赖这里的接口：
//   - Physics: 带速度的物体、重叠回调、暂停/恢复
//   - Keyboard: 左右方向键状态
//   - Clock: 可取消的循环计时器
//   - Display: 可变文本标签与可点击按钮
//
// Ebitengine 与终端前端都驱动同一个 Sandbox，只各自提供键盘与绘制。
package engine

import (
	"time"

	"github.com/decker502/stickcatch/pkg/components"
)

// BodyID 物体句柄
type BodyID uint64

// OverlapFunc 重叠回调，body 为注册的物体，other 为分组中与之重叠的物体
type OverlapFunc func(body, other BodyID)

// BodySpec 创建物体的参数
// 位置是碰撞盒中心；Scale 只影响绘制
type BodySpec struct {
	X, Y             float64
	Width, Height    float64
	OffsetX, OffsetY float64
	VX, VY           float64
	Group            string
	ImageID          string
	Scale            float64
	Visible          bool
	Layer            int
}

// Physics 物理沙箱
type Physics interface {
	Spawn(spec BodySpec) BodyID
	Destroy(id BodyID)
	Alive(id BodyID) bool
	Position(id BodyID) (x, y float64, ok bool)
	SetPosition(id BodyID, x, y float64)
	Velocity(id BodyID) (vx, vy float64, ok bool)
	SetVelocity(id BodyID, vx, vy float64)
	Bodies(group string) []BodyID
	OnOverlap(body BodyID, group string, fn OverlapFunc)
	Pause()
	Resume()
	Paused() bool
}

// Keyboard 同步、非阻塞的按键状态查询
type Keyboard interface {
	LeftPressed() bool
	RightPressed() bool
}

// Timer 可取消的计时器句柄
type Timer interface {
	Cancel()
	Active() bool
}

// Clock 计时器工厂
type Clock interface {
	Every(delay time.Duration, fn func()) Timer
}

// Align 文本对齐
type Align = components.TextAlign

const (
	AlignLeft   = components.AlignLeft
	AlignCenter = components.AlignCenter
	AlignRight  = components.AlignRight
)

// LabelSpec 创建文本标签的参数
type LabelSpec struct {
	X, Y     float64
	Text     string
	FontSize float64
	Color    [4]uint8
	Align    Align
	Visible  bool
}

// Label 可变文本标签
type Label interface {
	SetText(text string)
	Text() string
	SetVisible(visible bool)
	Visible() bool
}

// ButtonSpec 创建按钮的参数，(X, Y) 是按钮中心
type ButtonSpec struct {
	X, Y       float64
	Text       string
	FontSize   float64
	TextColor  [4]uint8
	Background [4]uint8
	PaddingX   float64
	PaddingY   float64
	Visible    bool
}

// Button 可点击的屏幕按钮
type Button interface {
	Show()
	Hide()
	Visible() bool
	OnClick(fn func())
}

// Display 文本与按钮工厂
type Display interface {
	NewLabel(spec LabelSpec) Label
	NewButton(spec ButtonSpec) Button
}
