package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/decker502/stickcatch/pkg/components"
	"github.com/decker502/stickcatch/pkg/config"
	"github.com/decker502/stickcatch/pkg/ecs"
	"github.com/gdamore/tcell/v2"
)

// 未登记图片使用的字符
const fallbackGlyph = '#'

var (
	backgroundStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(58, 96, 64))
	statusStyle     = tcell.StyleDefault.Reverse(true)
)

// glyph 一种图片在终端中的表现
type glyph struct {
	r     rune
	style tcell.Style
	w, h  float64 // 登记尺寸（场地像素）
}

// glyphTable 资源ID -> 字符与颜色
type glyphTable struct {
	byID map[string]glyph
}

func newGlyphTable(resources *config.ResourceConfig) *glyphTable {
	t := &glyphTable{byID: make(map[string]glyph)}
	if resources == nil {
		return t
	}
	for _, group := range resources.Groups {
		for _, img := range group.Images {
			r := fallbackGlyph
			if runes := []rune(img.Glyph); len(runes) > 0 {
				r = runes[0]
			}
			color := tcell.NewRGBColor(int32(img.Color[0]), int32(img.Color[1]), int32(img.Color[2]))
			t.byID[img.ID] = glyph{
				r:     r,
				style: backgroundStyle.Foreground(color),
				w:     float64(img.Width),
				h:     float64(img.Height),
			}
		}
	}
	return t
}

func (t *glyphTable) lookup(id string) glyph {
	if g, ok := t.byID[id]; ok {
		return g
	}
	return glyph{r: fallbackGlyph, style: backgroundStyle.Foreground(tcell.ColorWhite)}
}

// size 登记尺寸，未登记时 ok 为 false
func (t *glyphTable) size(id string) ([2]float64, bool) {
	g, ok := t.byID[id]
	if !ok {
		return [2]float64{}, false
	}
	return [2]float64{g.w, g.h}, true
}

// draw 重绘整个屏幕
//
// 顺序：背景 -> 精灵（按 Layer） -> 标签 -> 按钮 -> 状态栏
func (h *termHost) draw() {
	w, ht := h.screen.Size()
	v := newViewport(h.cfg.Playfield, w, ht)

	h.screen.Clear()
	h.fill(v, h.glyphs.lookup(h.cfg.Background))
	h.drawSprites(v)
	h.drawLabels(v)
	h.drawButtons(v)
	h.drawStatus(v, ht-1)
	h.screen.Show()
}

// fill 用背景字符铺满游戏区域
func (h *termHost) fill(v viewport, bg glyph) {
	for y := 0; y < v.rows; y++ {
		for x := 0; x < v.cols; x++ {
			h.screen.SetContent(x, y, bg.r, nil, bg.style)
		}
	}
}

func (h *termHost) drawSprites(v viewport) {
	em := h.sandbox.EntityManager()
	entities := ecs.GetEntitiesWith2[*components.SpriteComponent, *components.PositionComponent](em)

	type item struct {
		sprite *components.SpriteComponent
		pos    *components.PositionComponent
	}
	items := make([]item, 0, len(entities))
	for _, id := range entities {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if !sprite.Visible || sprite.ImageID == "" {
			continue
		}
		items = append(items, item{sprite: sprite, pos: pos})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].sprite.Layer < items[j].sprite.Layer
	})

	for _, it := range items {
		g := h.glyphs.lookup(it.sprite.ImageID)
		sw, sh := h.spriteSize(it.sprite)
		x0, y0, x1, y1 := v.cellRect(it.pos.X, it.pos.Y, sw, sh)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				if v.inside(x, y) {
					h.screen.SetContent(x, y, g.r, nil, g.style)
				}
			}
		}
	}
}

// spriteSize 图片登记尺寸乘以渲染缩放
func (h *termHost) spriteSize(sprite *components.SpriteComponent) (float64, float64) {
	w, ht := 1.0, 1.0
	if res, ok := h.glyphs.size(sprite.ImageID); ok {
		w, ht = res[0], res[1]
	}
	scale := sprite.Scale
	if scale <= 0 {
		scale = 1
	}
	return w * scale, ht * scale
}

func (h *termHost) drawLabels(v viewport) {
	em := h.sandbox.EntityManager()
	for _, id := range ecs.GetEntitiesWith2[*components.LabelComponent, *components.PositionComponent](em) {
		label, _ := ecs.GetComponent[*components.LabelComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if !label.Visible || label.Text == "" {
			continue
		}
		style := backgroundStyle.Foreground(rgb(label.Color)).Bold(true)
		h.drawText(v, label.Text, label.Align, pos.X, pos.Y, style)
	}
}

func (h *termHost) drawButtons(v viewport) {
	em := h.sandbox.EntityManager()
	for _, id := range ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](em) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if !button.Visible {
			continue
		}
		style := tcell.StyleDefault.
			Foreground(rgb(button.TextColor)).
			Background(rgb(button.BackgroundColor))
		if button.State == components.UIHovered {
			style = style.Reverse(true)
		}
		h.drawText(v, "[ "+button.Text+" ]", components.AlignCenter, pos.X, pos.Y, style)
	}
}

// drawText 多行文本，居中对齐时以位置为文本块中心
func (h *termHost) drawText(v viewport, text string, align components.TextAlign, x, y float64, style tcell.Style) {
	lines := strings.Split(text, "\n")
	cx, cy := v.toCell(x, y)
	if align == components.AlignCenter {
		cy -= len(lines) / 2
	}
	for i, line := range lines {
		runes := []rune(line)
		start := cx
		switch align {
		case components.AlignCenter:
			start = cx - len(runes)/2
		case components.AlignRight:
			start = cx - len(runes)
		}
		for j, r := range runes {
			if v.inside(start+j, cy+i) {
				h.screen.SetContent(start+j, cy+i, r, nil, style)
			}
		}
	}
}

// drawStatus 最后一行：规则集、得分、最高分与按键提示
func (h *termHost) drawStatus(v viewport, row int) {
	if row < 0 {
		return
	}
	text := fmt.Sprintf(" %s | Score: %d | Best: %d | ←/→ move  r restart  q quit",
		h.controller.Variant(), h.controller.Score(), h.best)
	runes := []rune(text)
	for x := 0; x < v.cols; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		h.screen.SetContent(x, row, r, nil, statusStyle)
	}
}

func rgb(c [4]uint8) tcell.Color {
	return tcell.NewRGBColor(int32(c[0]), int32(c[1]), int32(c[2]))
}
