package game

import (
	"log"

	"github.com/decker502/stickcatch/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 按规则集创建接物场景，避免 game 包依赖 scenes 包
type SceneFactory func(variant types.Variant) Scene

// SceneManager manages which scene is active.
// Only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager creates a SceneManager with no active scene.
// Use SwitchTo or LoadVariant to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// LoadVariant 用工厂创建指定规则集的新场景并切换过去
// 返回是否切换成功
func (sm *SceneManager) LoadVariant(variant types.Variant) bool {
	log.Printf("[SceneManager] Loading variant: %s", variant)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: SceneFactory not set")
		return false
	}

	newScene := sm.sceneFactory(variant)
	if newScene == nil {
		log.Printf("[SceneManager] Error: failed to create scene for %s", variant)
		return false
	}

	// 旧场景有未保存的数据时先保存
	if saveable, ok := sm.currentScene.(Saveable); ok {
		saveable.SaveOnExit()
	}

	sm.SwitchTo(newScene)
	log.Printf("[SceneManager] Switched to variant: %s", variant)
	return true
}

// Update updates the currently active scene, if any.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene, if any.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
