package main

import (
	"strings"
	"testing"
	"time"

	"github.com/decker502/stickcatch/pkg/config"
	"github.com/decker502/stickcatch/pkg/types"
	"github.com/gdamore/tcell/v2"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time           { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestHeldKeys(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	k := newHeldKeys(clock.now)

	if k.LeftPressed() || k.RightPressed() {
		t.Fatal("no key should be held initially")
	}

	k.pressLeft()
	if !k.LeftPressed() || k.RightPressed() {
		t.Errorf("after pressLeft: left=%v right=%v", k.LeftPressed(), k.RightPressed())
	}

	clock.advance(holdWindow / 2)
	if !k.LeftPressed() {
		t.Error("left should still be held inside the window")
	}

	k.pressRight()
	if k.LeftPressed() || !k.RightPressed() {
		t.Errorf("pressRight should release left: left=%v right=%v", k.LeftPressed(), k.RightPressed())
	}

	clock.advance(holdWindow)
	if k.RightPressed() {
		t.Error("right should expire after the hold window")
	}

	k.pressLeft()
	k.release()
	if k.LeftPressed() {
		t.Error("release should clear left")
	}
}

func TestViewport(t *testing.T) {
	pf := config.PlayfieldConfig{Width: 607.5, Height: 1080}
	v := newViewport(pf, 61, 28)

	if v.cols != 61 || v.rows != 27 {
		t.Fatalf("viewport = %dx%d, want 61x27", v.cols, v.rows)
	}

	tests := []struct {
		name   string
		x, y   float64
		cx, cy int
	}{
		{"origin", 0, 0, 0, 0},
		{"center", 303.75, 540, 30, 13},
		{"bottom right edge", 607.5, 1080, 61, 27},
		{"above top", -1, -1, -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx, cy := v.toCell(tt.x, tt.y)
			if cx != tt.cx || cy != tt.cy {
				t.Errorf("toCell(%v, %v) = (%d, %d), want (%d, %d)", tt.x, tt.y, cx, cy, tt.cx, tt.cy)
			}
		})
	}

	for cy := 0; cy < v.rows; cy++ {
		for cx := 0; cx < v.cols; cx++ {
			x0, y0, x1, y1 := v.cellBounds(cx, cy)
			x, y := (x0+x1)/2, (y0+y1)/2
			if gx, gy := v.toCell(x, y); gx != cx || gy != cy {
				t.Fatalf("cell (%d, %d) -> (%v, %v) -> (%d, %d)", cx, cy, x, y, gx, gy)
			}
		}
	}

	if v.inside(61, 0) || v.inside(0, 27) || !v.inside(60, 26) {
		t.Error("inside bounds are wrong")
	}
}

func TestViewportCellRect(t *testing.T) {
	v := newViewport(config.PlayfieldConfig{Width: 600, Height: 1000}, 60, 11)

	// 小于一格的物体至少占一格
	x0, y0, x1, y1 := v.cellRect(305, 505, 2, 2)
	if x1-x0 != 1 || y1-y0 != 1 {
		t.Errorf("tiny rect = [%d,%d)x[%d,%d), want one cell", x0, x1, y0, y1)
	}

	x0, y0, x1, y1 = v.cellRect(300, 500, 100, 200)
	if x0 != 25 || x1 != 35 || y0 != 4 || y1 != 6 {
		t.Errorf("rect = [%d,%d)x[%d,%d), want [25,35)x[4,6)", x0, x1, y0, y1)
	}
}

func TestViewportCellBounds(t *testing.T) {
	v := newViewport(config.PlayfieldConfig{Width: 600, Height: 1000}, 60, 11)

	x0, y0, x1, y1 := v.cellBounds(30, 5)
	if x0 != 300 || x1 != 310 || y0 != 500 || y1 != 600 {
		t.Errorf("bounds = [%v,%v]x[%v,%v], want [300,310]x[500,600]", x0, x1, y0, y1)
	}
}

func TestViewportTinyScreen(t *testing.T) {
	v := newViewport(config.PlayfieldConfig{Width: 600, Height: 1000}, 0, 1)
	if v.cols != 1 || v.rows != 1 {
		t.Errorf("viewport = %dx%d, want 1x1", v.cols, v.rows)
	}
}

func newTestHost(t *testing.T) (*termHost, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(61, 28)

	resources, err := config.ParseResourceConfig([]byte(`
version: "1.0"
base_path: assets
groups:
  catch:
    images:
      - {id: background, width: 608, height: 1080, glyph: " "}
      - {id: noah, width: 110, height: 180, glyph: "@", color: [200, 120, 60, 255]}
      - {id: stick1, width: 24, height: 110, glyph: "|"}
`))
	if err != nil {
		t.Fatalf("ParseResourceConfig: %v", err)
	}

	h, err := newTermHost(screen, config.DefaultGameplayConfig(), resources, types.VariantSimple, 1)
	if err != nil {
		t.Fatalf("newTermHost: %v", err)
	}
	return h, screen
}

func row(screen tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func runUntilOver(t *testing.T, h *termHost) {
	t.Helper()
	for i := 0; i < 3600 && !h.controller.State().IsOver(); i++ {
		h.sandbox.Step(1.0 / 60)
	}
	if !h.controller.State().IsOver() {
		t.Fatal("game did not end within 3600 frames")
	}
}

func TestHandleKey(t *testing.T) {
	h, _ := newTestHost(t)
	clock := &fakeClock{t: time.Unix(1000, 0)}
	h.keys.now = clock.now

	tests := []struct {
		name     string
		key      tcell.Key
		r        rune
		want     bool
		wantLeft bool
	}{
		{"arrow left", tcell.KeyLeft, 0, true, true},
		{"rune a", tcell.KeyRune, 'a', true, true},
		{"arrow right", tcell.KeyRight, 0, true, false},
		{"q quits", tcell.KeyRune, 'q', false, false},
		{"escape quits", tcell.KeyEscape, 0, false, false},
		{"ctrl-c quits", tcell.KeyCtrlC, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h.keys.release()
			if got := h.handleKey(tt.key, tt.r); got != tt.want {
				t.Errorf("handleKey = %v, want %v", got, tt.want)
			}
			if h.keys.LeftPressed() != tt.wantLeft {
				t.Errorf("LeftPressed = %v, want %v", h.keys.LeftPressed(), tt.wantLeft)
			}
		})
	}
}

func TestRestartKey(t *testing.T) {
	h, _ := newTestHost(t)

	// 进行中按 r 不重开
	h.handleKey(tcell.KeyRune, 'r')
	if h.controller.State().IsOver() {
		t.Fatal("game should be playing")
	}

	runUntilOver(t, h)
	final := h.controller.Score()
	if h.best != final {
		t.Errorf("best = %d, want final score %d", h.best, final)
	}

	h.handleKey(tcell.KeyRune, 'r')
	if h.controller.State().IsOver() {
		t.Error("r should restart after game over")
	}
	if h.controller.Score() != 0 {
		t.Errorf("score after restart = %d, want 0", h.controller.Score())
	}
	if len(h.controller.LiveObjects()) != 0 {
		t.Errorf("live objects after restart = %d, want 0", len(h.controller.LiveObjects()))
	}
}

func TestDraw(t *testing.T) {
	h, screen := newTestHost(t)
	h.draw()

	status := row(screen, 27, 61)
	if !strings.Contains(status, "simple | Score: 0 | Best: 0") {
		t.Errorf("status line = %q", status)
	}

	// 角色在底部中央
	px, py := newViewport(h.cfg.Playfield, 61, 28).toCell(303.75, 930)
	if r, _, _, _ := screen.GetContent(px, py); r != '@' {
		t.Errorf("cell at player = %q, want '@'", r)
	}

	// 进行中不显示结束文字
	for y := 0; y < 27; y++ {
		if strings.Contains(row(screen, y, 61), "Game Over") {
			t.Fatalf("game over text drawn while playing (row %d)", y)
		}
	}

	runUntilOver(t, h)
	h.draw()

	found := map[string]bool{}
	for y := 0; y < 27; y++ {
		line := row(screen, y, 61)
		for _, want := range []string{"Game Over", "Final Score:", "[ Play Again ]"} {
			if strings.Contains(line, want) {
				found[want] = true
			}
		}
	}
	for _, want := range []string{"Game Over", "Final Score:", "[ Play Again ]"} {
		if !found[want] {
			t.Errorf("%q not drawn after game over", want)
		}
	}
}

// TestClickButtonOnShortScreen 行数很少时一格比按钮还高，点在按钮所在行仍应命中
func TestClickButtonOnShortScreen(t *testing.T) {
	tests := []struct {
		name string
		rows int
	}{
		{"11 rows", 11},
		{"16 rows", 16},
		{"28 rows", 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, screen := newTestHost(t)
			screen.SetSize(61, tt.rows)

			runUntilOver(t, h)
			h.draw()

			cx, cy := -1, -1
			for y := 0; y < tt.rows-1 && cy < 0; y++ {
				if i := strings.Index(row(screen, y, 61), "Play Again"); i >= 0 {
					cx, cy = i, y
				}
			}
			if cy < 0 {
				t.Fatal("restart button not drawn")
			}

			h.click(cx, cy)
			if h.controller.State().IsOver() {
				t.Errorf("click at (%d, %d) did not restart", cx, cy)
			}
		})
	}
}

// TestPollEventsStopsWhenDone 主循环退出后转发 goroutine 不应卡在发送上
func TestPollEventsStopsWhenDone(t *testing.T) {
	h, screen := newTestHost(t)

	events := make(chan tcell.Event) // 无人接收
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		h.pollEvents(events, done)
		close(finished)
	}()

	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}
	close(done)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("pollEvents still blocked after done was closed")
	}
}
