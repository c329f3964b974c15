package gameplay

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/stickcatch/pkg/config"
	"github.com/decker502/stickcatch/pkg/engine"
	"github.com/decker502/stickcatch/pkg/types"
)

// FallingGroup 下落物所在的物理分组
const FallingGroup = "falling"

// 绘制层级
const (
	layerFalling = 10
	layerPlayer  = 20
)

// Callbacks 宿主驱动的回调
type Callbacks interface {
	OnTick()
	OnSpawnTimer()
	OnOverlap(body, other engine.BodyID)
}

var _ Callbacks = (*Controller)(nil)

// Options 控制器选项
type Options struct {
	Variant types.Variant
	Config  *config.GameplayConfig // 为 nil 时使用 DefaultGameplayConfig
	Rand    *rand.Rand             // 为 nil 时以当前时间为种子
	// OnGameOver 本局结束时调用一次（如记录最高分）
	OnGameOver func(variant types.Variant, finalScore int)
}

// Controller 玩法控制器
// 单线程使用：所有方法都应在宿主的更新线程上调用
type Controller struct {
	physics  engine.Physics
	keyboard engine.Keyboard
	clock    engine.Clock

	cfg        *config.GameplayConfig
	rules      Ruleset
	difficulty Difficulty
	spawner    *Spawner
	onGameOver func(variant types.Variant, finalScore int)

	state      GameState
	objects    map[engine.BodyID]*FallingObject
	spawnTimer engine.Timer

	player engine.BodyID
	basket engine.BodyID

	scoreLabel    engine.Label
	gameOverLabel engine.Label
	restartButton engine.Button
}

// NewController 创建控制器并开始第一局
func NewController(physics engine.Physics, keyboard engine.Keyboard, clock engine.Clock, display engine.Display, opts Options) (*Controller, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultGameplayConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gameplay config: %w", err)
	}
	vc, err := cfg.Variant(opts.Variant)
	if err != nil {
		return nil, fmt.Errorf("failed to select rules: %w", err)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	c := &Controller{
		physics:    physics,
		keyboard:   keyboard,
		clock:      clock,
		cfg:        cfg,
		rules:      NewRuleset(opts.Variant),
		difficulty: NewDifficulty(vc),
		spawner:    NewSpawner(rng, vc.Objects, cfg.Playfield.Width, cfg.Spawn.Margin),
		onGameOver: opts.OnGameOver,
		objects:    make(map[engine.BodyID]*FallingObject),
	}

	c.createActors()
	c.createHUD(display)
	c.physics.OnOverlap(c.basket, FallingGroup, c.OnOverlap)

	c.start()
	log.Printf("[Controller] Created: variant=%s baseSpeed=%.0f kinds=%d", opts.Variant, vc.BaseFallSpeed, len(vc.Objects))
	return c, nil
}

// createActors 创建角色与篮子
func (c *Controller) createActors() {
	px, py := c.playerHome()

	c.player = c.physics.Spawn(engine.BodySpec{
		X:       px,
		Y:       py,
		Width:   c.cfg.Player.Width,
		Height:  c.cfg.Player.Height,
		ImageID: c.cfg.Player.ImageID,
		Visible: true,
		Layer:   layerPlayer,
	})

	bx, by := c.basketPosition(px, py)
	c.basket = c.physics.Spawn(engine.BodySpec{
		X:       bx,
		Y:       by,
		Width:   c.cfg.Basket.Width,
		Height:  c.cfg.Basket.Height,
		Visible: false,
	})
}

// createHUD 创建分数标签、结束提示与重玩按钮
func (c *Controller) createHUD(display engine.Display) {
	hud := c.cfg.HUD
	pf := c.cfg.Playfield

	c.scoreLabel = display.NewLabel(engine.LabelSpec{
		X:        hud.ScoreX,
		Y:        hud.ScoreY,
		Text:     scoreText(0),
		FontSize: hud.ScoreFontSize,
		Color:    hud.TextColor,
		Align:    engine.AlignLeft,
		Visible:  true,
	})

	c.gameOverLabel = display.NewLabel(engine.LabelSpec{
		X:        pf.Width / 2,
		Y:        pf.Height / 2,
		FontSize: hud.GameOverSize,
		Color:    hud.TextColor,
		Align:    engine.AlignCenter,
		Visible:  false,
	})

	c.restartButton = display.NewButton(engine.ButtonSpec{
		X:          pf.Width / 2,
		Y:          pf.Height/2 + hud.ButtonOffsetY,
		Text:       "Play Again",
		FontSize:   hud.ButtonFontSize,
		TextColor:  [4]uint8{0xFF, 0xFF, 0xFF, 0xFF},
		Background: [4]uint8{0x00, 0x00, 0x00, 0xFF},
		PaddingX:   20,
		PaddingY:   10,
		Visible:    false,
	})
	c.restartButton.OnClick(c.Restart)
}

// start 初始化一局：重置状态、归位角色、恢复物理、注册唯一的生成计时器
func (c *Controller) start() {
	c.state = NewGameState(c.difficulty.BaseSpeed())
	c.scoreLabel.SetText(scoreText(0))

	px, py := c.playerHome()
	c.physics.SetPosition(c.player, px, py)
	bx, by := c.basketPosition(px, py)
	c.physics.SetPosition(c.basket, bx, by)

	c.physics.Resume()

	if c.spawnTimer != nil {
		c.spawnTimer.Cancel()
	}
	interval := time.Duration(c.cfg.Spawn.IntervalMs) * time.Millisecond
	c.spawnTimer = c.clock.Every(interval, c.OnSpawnTimer)
}

// Restart 清空下落物、隐藏结束界面并开始新的一局
func (c *Controller) Restart() {
	for id := range c.objects {
		c.physics.Destroy(id)
	}
	c.objects = make(map[engine.BodyID]*FallingObject)

	c.gameOverLabel.SetVisible(false)
	c.restartButton.Hide()

	c.start()
	log.Printf("[Controller] Restarted")
}

// OnTick 每帧更新：移动角色、同步篮子、检查落地
func (c *Controller) OnTick() {
	if !c.state.IsOver() {
		c.movePlayer()
	}
	c.checkGroundExits()
}

// movePlayer 按键移动角色（左键优先），并限制在场地内
func (c *Controller) movePlayer() {
	x, y, ok := c.physics.Position(c.player)
	if !ok {
		return
	}

	if c.keyboard.LeftPressed() {
		x -= c.cfg.Player.Step
	} else if c.keyboard.RightPressed() {
		x += c.cfg.Player.Step
	}
	x = clamp(x, 0, c.cfg.Playfield.Width)

	c.physics.SetPosition(c.player, x, y)
	bx, by := c.basketPosition(x, y)
	c.physics.SetPosition(c.basket, bx, by)
}

// checkGroundExits 处理越过底边的下落物
// 遍历快照时跳过本帧已被移除的物体；结束后立即停止
func (c *Controller) checkGroundExits() {
	for _, id := range c.physics.Bodies(FallingGroup) {
		if c.state.IsOver() {
			return
		}
		obj, ok := c.objects[id]
		if !ok || !c.physics.Alive(id) {
			continue
		}
		_, y, ok := c.physics.Position(id)
		if !ok || y <= c.cfg.Playfield.Height {
			continue
		}

		switch c.rules.ResolveGroundExit(*obj) {
		case OutcomeGameOver:
			c.gameOver(fmt.Sprintf("%s reached the ground", obj.Kind))
		case OutcomeRemove:
			c.removeObject(id)
		}
	}
}

// OnSpawnTimer 生成一个下落物
func (c *Controller) OnSpawnTimer() {
	if c.state.IsOver() {
		return
	}
	c.spawn(c.spawner.PickKind(), c.spawner.PickX())
}

// spawn 在 (x, 0) 处创建指定种类的下落物，速度为当前下落速度
func (c *Controller) spawn(kind config.ObjectKindConfig, x float64) engine.BodyID {
	id := c.physics.Spawn(engine.BodySpec{
		X:       x,
		Y:       0,
		Width:   kind.Width,
		Height:  kind.Height,
		VY:      c.state.FallSpeed,
		Group:   FallingGroup,
		ImageID: kind.Image(),
		Scale:   kind.Scale,
		Visible: true,
		Layer:   layerFalling,
	})

	c.objects[id] = &FallingObject{
		Body:   id,
		Kind:   kind.ObjectKind(),
		Hazard: kind.Hazard,
	}
	return id
}

// OnOverlap 篮子与下落物重叠
func (c *Controller) OnOverlap(body, other engine.BodyID) {
	if c.state.IsOver() {
		return
	}
	obj, ok := c.objects[other]
	if !ok || !c.physics.Alive(other) {
		return
	}

	switch c.rules.ResolveCatch(*obj) {
	case OutcomeScore:
		c.removeObject(other)
		c.addPoint()
	case OutcomeRemove:
		c.removeObject(other)
	case OutcomeGameOver:
		c.gameOver(fmt.Sprintf("caught %s", obj.Kind))
	}
}

// addPoint 加 1 分；到达里程碑时加速，并把新速度应用到所有存活的下落物
func (c *Controller) addPoint() {
	c.state.Score++
	c.scoreLabel.SetText(scoreText(c.state.Score))

	speed, changed := c.difficulty.Next(c.state.Score, c.state.FallSpeed)
	if !changed {
		return
	}

	c.state.FallSpeed = speed
	for id := range c.objects {
		vx, _, ok := c.physics.Velocity(id)
		if !ok {
			continue
		}
		c.physics.SetVelocity(id, vx, speed)
	}
	log.Printf("[Controller] Score %d: fall speed -> %.0f", c.state.Score, speed)
}

// removeObject 从物理世界与对象池中移除
func (c *Controller) removeObject(id engine.BodyID) {
	c.physics.Destroy(id)
	delete(c.objects, id)
}

// gameOver 结束本局，每局只执行一次
func (c *Controller) gameOver(reason string) {
	if c.state.IsOver() {
		return
	}
	c.state.Phase = PhaseGameOver

	c.physics.Pause()
	if c.spawnTimer != nil {
		c.spawnTimer.Cancel()
		c.spawnTimer = nil
	}

	c.gameOverLabel.SetText(fmt.Sprintf("Game Over\nFinal Score: %d", c.state.Score))
	c.gameOverLabel.SetVisible(true)

	// 剩余物体原地定格
	for id := range c.objects {
		c.physics.SetVelocity(id, 0, 0)
	}

	c.restartButton.Show()

	log.Printf("[Controller] Game over (%s), final score %d", reason, c.state.Score)
	if c.onGameOver != nil {
		c.onGameOver(c.rules.Variant(), c.state.Score)
	}
}

// playerHome 角色初始位置
func (c *Controller) playerHome() (float64, float64) {
	pf := c.cfg.Playfield
	return pf.Width / 2, pf.Height - c.cfg.Player.BottomOffset
}

// basketPosition 篮子位置由角色位置加固定偏移得出
func (c *Controller) basketPosition(px, py float64) (float64, float64) {
	return px + c.cfg.Basket.OffsetX, py + c.cfg.Basket.OffsetY
}

// State 返回当前状态的副本
func (c *Controller) State() GameState {
	return c.state
}

// Variant 返回当前规则集
func (c *Controller) Variant() types.Variant {
	return c.rules.Variant()
}

// Score 当前得分
func (c *Controller) Score() int {
	return c.state.Score
}

// SpawnTimerActive 生成计时器是否仍在运行
func (c *Controller) SpawnTimerActive() bool {
	return c.spawnTimer != nil && c.spawnTimer.Active()
}

// Player 角色物体
func (c *Controller) Player() engine.BodyID {
	return c.player
}

// Basket 篮子物体
func (c *Controller) Basket() engine.BodyID {
	return c.basket
}

// LiveObjects 返回池中存活的下落物（按创建顺序）
func (c *Controller) LiveObjects() []FallingObject {
	result := make([]FallingObject, 0, len(c.objects))
	for _, id := range c.physics.Bodies(FallingGroup) {
		if obj, ok := c.objects[id]; ok {
			result = append(result, *obj)
		}
	}
	return result
}

// ScoreLabel 分数标签
func (c *Controller) ScoreLabel() engine.Label {
	return c.scoreLabel
}

// GameOverLabel 结束提示
func (c *Controller) GameOverLabel() engine.Label {
	return c.gameOverLabel
}

// RestartButton 重玩按钮
func (c *Controller) RestartButton() engine.Button {
	return c.restartButton
}

// scoreText 分数标签文本
func scoreText(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

// clamp 将 v 限制在 [lo, hi]
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
