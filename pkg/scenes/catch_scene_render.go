package scenes

import (
	"image/color"
	"log"
	"sort"

	"github.com/decker502/stickcatch/pkg/components"
	"github.com/decker502/stickcatch/pkg/ecs"
	"github.com/decker502/stickcatch/pkg/engine"
	"github.com/decker502/stickcatch/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 文字阴影偏移
const (
	shadowOffsetX = 2.0
	shadowOffsetY = 2.0
	lineSpacing   = 1.2
	fontID        = "default"
)

// catchRenderer 按组件绘制沙箱中的实体
//
// 绘制顺序：精灵（按 Layer，同层按创建顺序） -> 文本标签 -> 按钮
type catchRenderer struct {
	em        *ecs.EntityManager
	resources *game.ResourceManager
	missing   map[string]bool // 已报告过缺失的图片ID
}

func newCatchRenderer(em *ecs.EntityManager, rm *game.ResourceManager) *catchRenderer {
	return &catchRenderer{
		em:        em,
		resources: rm,
		missing:   make(map[string]bool),
	}
}

// Draw 绘制所有可见元素
func (r *catchRenderer) Draw(screen *ebiten.Image) {
	r.drawSprites(screen)
	r.drawLabels(screen)
	r.drawButtons(screen)
}

// drawSprites 以位置为中心绘制图片，应用渲染缩放
func (r *catchRenderer) drawSprites(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.SpriteComponent, *components.PositionComponent](r.em)

	type drawItem struct {
		sprite *components.SpriteComponent
		pos    *components.PositionComponent
	}
	items := make([]drawItem, 0, len(entities))
	for _, id := range entities {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](r.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](r.em, id)
		if !sprite.Visible || sprite.ImageID == "" {
			continue
		}
		items = append(items, drawItem{sprite: sprite, pos: pos})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].sprite.Layer < items[j].sprite.Layer
	})

	for _, item := range items {
		img := r.image(item.sprite.ImageID)
		if img == nil {
			continue
		}
		w, h := img.Bounds().Dx(), img.Bounds().Dy()

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
		op.GeoM.Scale(item.sprite.Scale, item.sprite.Scale)
		op.GeoM.Translate(item.pos.X, item.pos.Y)
		screen.DrawImage(img, op)
	}
}

// drawLabels 绘制文本标签（带阴影）
func (r *catchRenderer) drawLabels(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.LabelComponent, *components.PositionComponent](r.em)
	for _, id := range entities {
		label, _ := ecs.GetComponent[*components.LabelComponent](r.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](r.em, id)
		if !label.Visible || label.Text == "" {
			continue
		}
		r.drawText(screen, label.Text, label.FontSize, label.Color, label.Align, pos.X, pos.Y)
	}
}

// drawButtons 绘制纯色背景按钮，悬停时提亮
func (r *catchRenderer) drawButtons(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith3[*components.ButtonComponent, *components.ClickableComponent, *components.PositionComponent](r.em)
	for _, id := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](r.em, id)
		clickable, _ := ecs.GetComponent[*components.ClickableComponent](r.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](r.em, id)
		if !button.Visible {
			continue
		}

		bg := toRGBA(button.BackgroundColor)
		if button.State == components.UIHovered {
			bg = lighten(bg, 48)
		}
		vector.DrawFilledRect(screen,
			float32(pos.X-clickable.Width/2), float32(pos.Y-clickable.Height/2),
			float32(clickable.Width), float32(clickable.Height),
			bg, false)

		r.drawText(screen, button.Text, button.FontSize, button.TextColor, engine.AlignCenter, pos.X, pos.Y)
	}
}

// drawText 先画半透明黑色阴影，再画正文
func (r *catchRenderer) drawText(screen *ebiten.Image, s string, size float64, clr [4]uint8, align components.TextAlign, x, y float64) {
	face, err := r.resources.LoadFontByID(fontID, size)
	if err != nil {
		r.reportMissing("font:"+fontID, err)
		return
	}

	shadowOp := textOptions(align, size, x+shadowOffsetX, y+shadowOffsetY)
	shadowOp.ColorScale.ScaleWithColor(color.RGBA{0, 0, 0, 180})
	text.Draw(screen, s, face, shadowOp)

	op := textOptions(align, size, x, y)
	op.ColorScale.ScaleWithColor(toRGBA(clr))
	text.Draw(screen, s, face, op)
}

// textOptions 把对齐方式换算成 text/v2 的布局参数
func textOptions(align components.TextAlign, size, x, y float64) *text.DrawOptions {
	op := &text.DrawOptions{}
	op.LineSpacing = size * lineSpacing
	switch align {
	case components.AlignCenter:
		op.LayoutOptions.PrimaryAlign = text.AlignCenter
		op.LayoutOptions.SecondaryAlign = text.AlignCenter
	case components.AlignRight:
		op.LayoutOptions.PrimaryAlign = text.AlignEnd
	default:
		op.LayoutOptions.PrimaryAlign = text.AlignStart
	}
	op.GeoM.Translate(x, y)
	return op
}

// image 按ID取图片，第一次缺失时记录日志
func (r *catchRenderer) image(id string) *ebiten.Image {
	if img := r.resources.GetImageByID(id); img != nil {
		return img
	}
	img, err := r.resources.LoadImageByID(id)
	if err != nil {
		r.reportMissing(id, err)
		return nil
	}
	return img
}

func (r *catchRenderer) reportMissing(id string, err error) {
	if r.missing[id] {
		return
	}
	r.missing[id] = true
	log.Printf("[Renderer] %s unavailable: %v", id, err)
}

func toRGBA(c [4]uint8) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// lighten 每个通道加 d，不超过 255
func lighten(c color.RGBA, d uint8) color.RGBA {
	add := func(v uint8) uint8 {
		if int(v)+int(d) > 255 {
			return 255
		}
		return v + d
	}
	return color.RGBA{R: add(c.R), G: add(c.G), B: add(c.B), A: c.A}
}
