package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/stickcatch/pkg/config"
	"github.com/decker502/stickcatch/pkg/engine"
	"github.com/decker502/stickcatch/pkg/gameplay"
	"github.com/decker502/stickcatch/pkg/types"
	"github.com/gdamore/tcell/v2"
)

// frameInterval 主循环节拍
const frameInterval = 16 * time.Millisecond

// termHost 在终端里运行一局接物游戏
type termHost struct {
	screen tcell.Screen
	cfg    *config.GameplayConfig
	glyphs *glyphTable

	sandbox    *engine.Sandbox
	controller *gameplay.Controller
	keys       *heldKeys

	best     int // 本次运行的最高分
	lastTick time.Time
}

func newTermHost(screen tcell.Screen, cfg *config.GameplayConfig, resources *config.ResourceConfig, variant types.Variant, seed int64) (*termHost, error) {
	h := &termHost{
		screen:  screen,
		cfg:     cfg,
		glyphs:  newGlyphTable(resources),
		sandbox: engine.NewSandbox(),
		keys:    newHeldKeys(time.Now),
	}

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	controller, err := gameplay.NewController(h.sandbox, h.keys, h.sandbox, h.sandbox, gameplay.Options{
		Variant:    variant,
		Config:     cfg,
		Rand:       rng,
		OnGameOver: h.onGameOver,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}
	h.controller = controller
	h.sandbox.OnUpdate(controller.OnTick)
	return h, nil
}

func (h *termHost) onGameOver(variant types.Variant, score int) {
	if score > h.best {
		h.best = score
	}
	log.Printf("[Term] %s game over, score %d, best %d", variant, score, h.best)
}

// run 事件 goroutine 喂入 channel，主循环在事件与节拍之间 select
func (h *termHost) run() {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go h.pollEvents(events, done)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	h.lastTick = time.Now()
	h.draw()
	for {
		select {
		case ev := <-events:
			if !h.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			h.tick(now)
			h.draw()
		}
	}
}

// pollEvents 把终端事件转发到 events，done 关闭后退出
func (h *termHost) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			// Fini 之后 PollEvent 返回 nil
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// tick 按真实经过时间推进沙箱，单帧最多推进 0.1 秒
func (h *termHost) tick(now time.Time) {
	dt := now.Sub(h.lastTick).Seconds()
	h.lastTick = now
	if dt > 0.1 {
		dt = 0.1
	}
	if dt <= 0 {
		return
	}
	h.sandbox.Step(dt)
}

// handleEvent 返回 false 表示退出
func (h *termHost) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			h.click(x, y)
		}
	case *tcell.EventResize:
		h.screen.Sync()
		h.draw()
	}
	return true
}

// handleKey 处理一次按键，返回 false 表示退出
func (h *termHost) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		h.keys.pressLeft()
	case tcell.KeyRight:
		h.keys.pressRight()
	case tcell.KeyEnter:
		h.restart()
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return false
		case 'a', 'A', 'h':
			h.keys.pressLeft()
		case 'd', 'D', 'l':
			h.keys.pressRight()
		case ' ':
			h.keys.release()
		case 'r', 'R':
			h.restart()
		}
	}
	return true
}

// restart 仅在结束画面生效，与点击重玩按钮一致
func (h *termHost) restart() {
	if h.controller.State().IsOver() {
		h.keys.release()
		h.controller.Restart()
	}
}

// click 把单元格换算为场地区域交给沙箱
// 行数少时一格比按钮还高，按格中心判断会点不中画在这一格里的按钮
func (h *termHost) click(cx, cy int) {
	w, ht := h.screen.Size()
	v := newViewport(h.cfg.Playfield, w, ht)
	if !v.inside(cx, cy) {
		return
	}
	x0, y0, x1, y1 := v.cellBounds(cx, cy)
	if h.sandbox.ClickArea(x0, y0, x1, y1) {
		h.keys.release()
	}
}
