package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"github.com/decker502/stickcatch/pkg/config"
	"github.com/decker502/stickcatch/pkg/engine"
	"github.com/decker502/stickcatch/pkg/game"
	"github.com/decker502/stickcatch/pkg/gameplay"
	"github.com/decker502/stickcatch/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// 背景图缺失时的底色
var fallbackBackground = color.RGBA{R: 58, G: 96, B: 64, A: 255}

// SceneDeps 场景共享的依赖
type SceneDeps struct {
	Resources  *game.ResourceManager
	Scenes     *game.SceneManager
	Settings   *game.SettingsManager
	HighScores *game.HighScoreManager
	Config     *config.GameplayConfig
	// Seed 非零时固定随机种子（用于复现一局）
	Seed int64
}

// CatchScene 接物玩法场景
//
// 每帧：读取点击 -> 处理重玩/切换规则集按键 -> Sandbox.Step（计时器、物理、控制器 OnTick）
type CatchScene struct {
	deps    SceneDeps
	variant types.Variant

	sandbox    *engine.Sandbox
	controller *gameplay.Controller
	keyboard   *keyboardInput
	pointer    *pointerInput
	renderer   *catchRenderer

	bestLabel engine.Label
	hintLabel engine.Label
}

var (
	_ Scene         = (*CatchScene)(nil)
	_ game.Saveable = (*CatchScene)(nil)
)

// NewCatchScene 创建指定规则集的场景并开始第一局
func NewCatchScene(deps SceneDeps, variant types.Variant) (*CatchScene, error) {
	if deps.Config == nil {
		deps.Config = config.DefaultGameplayConfig()
	}
	if deps.Resources == nil {
		deps.Resources = game.NewResourceManager()
	}

	s := &CatchScene{
		deps:     deps,
		variant:  variant,
		sandbox:  engine.NewSandbox(),
		keyboard: newKeyboardInput(deps.Config.Playfield.Width),
		pointer:  &pointerInput{},
	}

	var rng *rand.Rand
	if deps.Seed != 0 {
		rng = rand.New(rand.NewSource(deps.Seed))
	}

	controller, err := gameplay.NewController(s.sandbox, s.keyboard, s.sandbox, s.sandbox, gameplay.Options{
		Variant:    variant,
		Config:     deps.Config,
		Rand:       rng,
		OnGameOver: s.onGameOver,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}
	s.controller = controller
	s.sandbox.OnUpdate(controller.OnTick)

	s.createOverlay()
	s.renderer = newCatchRenderer(s.sandbox.EntityManager(), deps.Resources)

	log.Printf("[CatchScene] Started variant %s", variant)
	return s, nil
}

// createOverlay 结束画面上的最高分与按键提示
func (s *CatchScene) createOverlay() {
	pf := s.deps.Config.Playfield
	hud := s.deps.Config.HUD

	s.bestLabel = s.sandbox.NewLabel(engine.LabelSpec{
		X:        pf.Width / 2,
		Y:        pf.Height/2 + hud.ButtonOffsetY + 90,
		FontSize: hud.ButtonFontSize,
		Color:    hud.TextColor,
		Align:    engine.AlignCenter,
	})

	s.hintLabel = s.sandbox.NewLabel(engine.LabelSpec{
		X:        pf.Width / 2,
		Y:        pf.Height/2 + hud.ButtonOffsetY + 150,
		Text:     fmt.Sprintf("Tab: switch to %s", otherVariant(s.variant)),
		FontSize: hud.ButtonFontSize * 0.75,
		Color:    hud.TextColor,
		Align:    engine.AlignCenter,
	})
}

// onGameOver 记录最终得分并显示最高分
func (s *CatchScene) onGameOver(variant types.Variant, score int) {
	best := score
	newBest := false
	if s.deps.HighScores != nil {
		newBest = s.deps.HighScores.Record(variant, score)
		best = s.deps.HighScores.Best(variant)
	}

	if newBest {
		s.bestLabel.SetText(fmt.Sprintf("New Best: %d", best))
	} else {
		s.bestLabel.SetText(fmt.Sprintf("Best: %d", best))
	}
}

// Update 推进一帧
func (s *CatchScene) Update(deltaTime float64) {
	hx, hy := s.pointer.hover()
	s.sandbox.Hover(hx, hy)
	for _, c := range s.pointer.clicks() {
		s.sandbox.Click(c[0], c[1])
	}

	if s.controller.State().IsOver() {
		if restartPressed() {
			s.controller.Restart()
		} else if switchVariantPressed() {
			s.switchVariant()
			return
		}
	}

	s.sandbox.Step(deltaTime)

	over := s.controller.State().IsOver()
	s.bestLabel.SetVisible(over)
	s.hintLabel.SetVisible(over && s.deps.Scenes != nil)
}

// switchVariant 切换到另一套规则并记住选择
func (s *CatchScene) switchVariant() {
	if s.deps.Scenes == nil {
		return
	}
	next := otherVariant(s.variant)
	// LoadVariant 会先让本场景保存，选择需要在之后记录
	if !s.deps.Scenes.LoadVariant(next) || s.deps.Settings == nil {
		return
	}
	s.deps.Settings.SetVariant(next)
	// 浏览器与移动端没有关闭窗口事件，切换时立即写入
	if err := s.deps.Settings.Save(); err != nil {
		log.Printf("[CatchScene] Failed to save variant choice: %v", err)
	}
}

// Draw 绘制背景与所有实体
func (s *CatchScene) Draw(screen *ebiten.Image) {
	if bg := s.background(); bg != nil {
		screen.DrawImage(bg, &ebiten.DrawImageOptions{})
	} else {
		screen.Fill(fallbackBackground)
	}
	s.renderer.Draw(screen)
}

func (s *CatchScene) background() *ebiten.Image {
	id := s.deps.Config.Background
	if id == "" {
		return nil
	}
	return s.renderer.image(id)
}

// SaveOnExit 保存当前规则集选择
func (s *CatchScene) SaveOnExit() bool {
	if s.deps.Settings == nil {
		return true
	}
	s.deps.Settings.SetVariant(s.variant)
	if err := s.deps.Settings.Save(); err != nil {
		log.Printf("[CatchScene] Failed to save settings: %v", err)
		return false
	}
	return true
}

// Score 当前得分（供网页导出）
func (s *CatchScene) Score() int {
	return s.controller.Score()
}

// Variant 当前规则集
func (s *CatchScene) Variant() types.Variant {
	return s.variant
}

// Controller 返回玩法控制器
func (s *CatchScene) Controller() *gameplay.Controller {
	return s.controller
}

func otherVariant(v types.Variant) types.Variant {
	if v == types.VariantEnhanced {
		return types.VariantSimple
	}
	return types.VariantEnhanced
}
