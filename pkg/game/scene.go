package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene hosted by the SceneManager.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update advances the scene by deltaTime seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：窗口关闭时由 App 调用，用于持久化设置与最高分
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}
