// Package app 提供游戏应用的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来，桌面端（main.go）与网页端（main_wasm.go）共用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/stickcatch/pkg/config"
	"github.com/decker502/stickcatch/pkg/game"
	"github.com/decker502/stickcatch/pkg/scenes"
	"github.com/decker502/stickcatch/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "stickcatch"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Variant 规则集名（simple/enhanced），为空则使用上次的选择
	Variant string
	// Seed 非零时固定随机种子
	Seed int64
	// Fullscreen 以全屏启动（同时写入设置）
	Fullscreen bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	layoutW      int
	layoutH      int
	windowW      int
	windowH      int
	verbose      bool

	pendingWindowSizeReset   bool // 退出全屏后延迟恢复窗口大小
	windowSizeResetCountdown int
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameplayConfig, err := config.LoadGameplayConfig(config.GameplayConfigPath)
	if err != nil {
		return nil, fmt.Errorf("玩法配置加载失败: %w", err)
	}

	resourceManager := game.NewResourceManager()
	if err := resourceManager.LoadResourceConfig(config.ResourceConfigPath); err != nil {
		return nil, fmt.Errorf("资源配置加载失败: %w", err)
	}
	if err := resourceManager.LoadResourceGroup("catch"); err != nil {
		return nil, fmt.Errorf("资源加载失败: %w", err)
	}

	// 存储不可用时降级为仅内存
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Storage unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}
	settings, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置初始化失败: %w", err)
	}
	highScores := game.NewHighScoreManager(gdataManager)

	variant := settings.Variant()
	if cfg.Variant != "" {
		variant, err = types.ParseVariant(cfg.Variant)
		if err != nil {
			return nil, err
		}
		settings.SetVariant(variant)
	}
	if cfg.Fullscreen {
		settings.SetFullscreen(true)
	}

	sceneManager := game.NewSceneManager()
	deps := scenes.SceneDeps{
		Resources:  resourceManager,
		Scenes:     sceneManager,
		Settings:   settings,
		HighScores: highScores,
		Config:     gameplayConfig,
		Seed:       cfg.Seed,
	}
	sceneManager.SetSceneFactory(func(v types.Variant) game.Scene {
		scene, err := scenes.NewCatchScene(deps, v)
		if err != nil {
			log.Printf("[App] Failed to create scene: %v", err)
			return nil
		}
		return scene
	})

	first, err := scenes.NewCatchScene(deps, variant)
	if err != nil {
		return nil, err
	}
	sceneManager.SwitchTo(first)

	layoutW, layoutH := config.LayoutSize(gameplayConfig.Playfield)
	windowW, windowH := config.WindowSize(gameplayConfig.Playfield)
	log.Printf("[App] Starting variant %s, layout %dx%d", variant, layoutW, layoutH)

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		layoutW:      layoutW,
		layoutH:      layoutH,
		windowW:      windowW,
		windowH:      windowH,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.SaveOnExit()
		return ebiten.Termination
	}

	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.windowW, a.windowH)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 窗口管理器需要几帧处理退出全屏
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.settings.SetFullscreen(false)
		} else {
			ebiten.SetFullscreen(true)
			a.settings.SetFullscreen(true)
		}
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸（等于场地尺寸）
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.layoutW, a.layoutH
}

// WindowSize 桌面窗口初始尺寸
func (a *App) WindowSize() (int, int) {
	return a.windowW, a.windowH
}

// Fullscreen 设置中是否要求全屏启动
func (a *App) Fullscreen() bool {
	return a.settings.GetSettings().Fullscreen
}

// SaveOnExit 让当前场景保存，并保存设置
func (a *App) SaveOnExit() {
	if saveable, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
		saveable.SaveOnExit()
	}
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Failed to save settings: %v", err)
	}
}

// Score 当前场景的得分，没有接物场景时返回 0
func (a *App) Score() int {
	if scene, ok := a.sceneManager.GetCurrentScene().(*scenes.CatchScene); ok {
		return scene.Score()
	}
	return 0
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
