package scenes

import (
	"github.com/decker502/stickcatch/pkg/engine"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyboardInput 实现 engine.Keyboard
// 方向键与 A/D 控制左右；触屏时按住场地左半边或右半边也可移动
type keyboardInput struct {
	playfieldWidth float64
	touchIDs       []ebiten.TouchID
}

var _ engine.Keyboard = (*keyboardInput)(nil)

func newKeyboardInput(playfieldWidth float64) *keyboardInput {
	return &keyboardInput{playfieldWidth: playfieldWidth}
}

// LeftPressed 左移键是否按下
func (k *keyboardInput) LeftPressed() bool {
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		return true
	}
	left, _ := k.touchSides()
	return left
}

// RightPressed 右移键是否按下
func (k *keyboardInput) RightPressed() bool {
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		return true
	}
	_, right := k.touchSides()
	return right
}

// touchSides 当前按住的触点分别落在场地哪一侧
func (k *keyboardInput) touchSides() (left, right bool) {
	k.touchIDs = ebiten.AppendTouchIDs(k.touchIDs[:0])
	for _, id := range k.touchIDs {
		x, _ := ebiten.TouchPosition(id)
		if float64(x) < k.playfieldWidth/2 {
			left = true
		} else {
			right = true
		}
	}
	return left, right
}

// pointerInput 收集本帧的点击（鼠标左键与新触点），坐标为逻辑屏幕坐标
type pointerInput struct {
	touchIDs []ebiten.TouchID
}

// hover 当前鼠标位置
func (p *pointerInput) hover() (float64, float64) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

// clicks 返回本帧刚按下的所有点击位置
func (p *pointerInput) clicks() [][2]float64 {
	var result [][2]float64

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		result = append(result, [2]float64{float64(x), float64(y)})
	}

	p.touchIDs = inpututil.AppendJustPressedTouchIDs(p.touchIDs[:0])
	for _, id := range p.touchIDs {
		x, y := ebiten.TouchPosition(id)
		result = append(result, [2]float64{float64(x), float64(y)})
	}
	return result
}

// restartPressed Enter 或空格
func restartPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace)
}

// switchVariantPressed Tab 切换规则集
func switchVariantPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyTab)
}
