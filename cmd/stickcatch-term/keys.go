package main

import (
	"time"

	"github.com/decker502/stickcatch/pkg/engine"
)

// holdWindow 一次按键被视为“按住”的时长
// 终端只上报按下事件，按住不放时依赖键盘自动重复，窗口需覆盖重复间隔
const holdWindow = 150 * time.Millisecond

// heldKeys 把终端的按键事件换算成按键状态
type heldKeys struct {
	now        func() time.Time
	leftUntil  time.Time
	rightUntil time.Time
}

var _ engine.Keyboard = (*heldKeys)(nil)

func newHeldKeys(now func() time.Time) *heldKeys {
	if now == nil {
		now = time.Now
	}
	return &heldKeys{now: now}
}

// pressLeft 记录一次左键，并松开右键
func (k *heldKeys) pressLeft() {
	k.leftUntil = k.now().Add(holdWindow)
	k.rightUntil = time.Time{}
}

// pressRight 记录一次右键，并松开左键
func (k *heldKeys) pressRight() {
	k.rightUntil = k.now().Add(holdWindow)
	k.leftUntil = time.Time{}
}

// release 松开所有方向
func (k *heldKeys) release() {
	k.leftUntil = time.Time{}
	k.rightUntil = time.Time{}
}

func (k *heldKeys) LeftPressed() bool {
	return k.now().Before(k.leftUntil)
}

func (k *heldKeys) RightPressed() bool {
	return k.now().Before(k.rightUntil)
}
