package config

import (
	"fmt"

	"github.com/decker502/stickcatch/pkg/embedded"
	"github.com/decker502/stickcatch/pkg/types"
	"gopkg.in/yaml.v3"
)

// GameplayConfigPath 内置玩法配置路径
const GameplayConfigPath = "data/gameplay.yaml"

// GameplayConfig 玩法配置（data/gameplay.yaml）
type GameplayConfig struct {
	Playfield  PlayfieldConfig          `yaml:"playfield"`  // 场地尺寸
	Background string                   `yaml:"background"` // 背景图片ID
	Player     PlayerConfig             `yaml:"player"`     // 角色
	Basket     BasketConfig             `yaml:"basket"`     // 篮子（不可见碰撞体）
	Spawn      SpawnConfig              `yaml:"spawn"`      // 生成参数
	HUD        HUDConfig                `yaml:"hud"`        // 分数与结束界面
	Variants   map[string]VariantConfig `yaml:"variants"`   // 规则集名称 -> 规则
}

// PlayfieldConfig 场地尺寸（逻辑像素）
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig 角色参数
type PlayerConfig struct {
	ImageID      string  `yaml:"imageId"`
	BottomOffset float64 `yaml:"bottomOffset"` // 角色中心距场地底边的距离
	Step         float64 `yaml:"step"`         // 每 tick 水平移动距离
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
}

// BasketConfig 篮子参数
// OffsetX 是手调的经验值（默认 -18），可在配置中修改
type BasketConfig struct {
	OffsetX float64 `yaml:"offsetX"` // 相对角色中心的X偏移
	OffsetY float64 `yaml:"offsetY"` // 相对角色中心的Y偏移
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
}

// SpawnConfig 生成参数
type SpawnConfig struct {
	IntervalMs int     `yaml:"intervalMs"` // 生成计时器周期（毫秒）
	Margin     float64 `yaml:"margin"`     // 生成X距左右边缘的最小距离
}

// HUDConfig 分数标签与结束界面布局
type HUDConfig struct {
	ScoreX         float64  `yaml:"scoreX"`
	ScoreY         float64  `yaml:"scoreY"`
	ScoreFontSize  float64  `yaml:"scoreFontSize"`
	GameOverSize   float64  `yaml:"gameOverFontSize"`
	ButtonFontSize float64  `yaml:"buttonFontSize"`
	ButtonOffsetY  float64  `yaml:"buttonOffsetY"` // 重玩按钮相对场地中心的Y偏移
	TextColor      [4]uint8 `yaml:"textColor"`
}

// VariantConfig 单个规则集的参数
type VariantConfig struct {
	BaseFallSpeed  float64            `yaml:"baseFallSpeed"`  // 初始下落速度（像素/秒）
	SpeedIncrement float64            `yaml:"speedIncrement"` // 每个里程碑的加速量，0 表示不加速
	Milestone      int                `yaml:"milestone"`      // 每多少分加速一次，0 表示不加速
	Objects        []ObjectKindConfig `yaml:"objects"`        // 下落物种类与权重
}

// ObjectKindConfig 下落物种类参数
type ObjectKindConfig struct {
	Kind    string  `yaml:"kind"`    // 种类名，见 types.ObjectKind
	Weight  int     `yaml:"weight"`  // 抽取权重
	Hazard  bool    `yaml:"hazard"`  // 是否为危险物（仅增强版规则使用）
	Scale   float64 `yaml:"scale"`   // 渲染缩放（纯外观）
	ImageID string  `yaml:"imageId"` // 图片ID，为空时使用种类名
	Width   float64 `yaml:"width"`   // 碰撞盒宽度
	Height  float64 `yaml:"height"`  // 碰撞盒高度
}

// ObjectKind 返回解析后的种类
func (o ObjectKindConfig) ObjectKind() types.ObjectKind {
	return types.ObjectKindFromString(o.Kind)
}

// Image 返回图片ID
func (o ObjectKindConfig) Image() string {
	if o.ImageID != "" {
		return o.ImageID
	}
	return o.Kind
}

// DefaultGameplayConfig 返回内置默认配置
// 与 data/gameplay.yaml 保持一致，用于测试和配置文件缺失时的降级
func DefaultGameplayConfig() *GameplayConfig {
	return &GameplayConfig{
		Playfield:  PlayfieldConfig{Width: 607.5, Height: 1080},
		Background: "background",
		Player: PlayerConfig{
			ImageID:      "noah",
			BottomOffset: 150,
			Step:         5,
			Width:        110,
			Height:       180,
		},
		Basket: BasketConfig{
			OffsetX: -18,
			OffsetY: 13,
			Width:   110,
			Height:  10,
		},
		Spawn: SpawnConfig{IntervalMs: 1000, Margin: 50},
		HUD: HUDConfig{
			ScoreX:         412.5,
			ScoreY:         20,
			ScoreFontSize:  40,
			GameOverSize:   64,
			ButtonFontSize: 32,
			ButtonOffsetY:  100,
			TextColor:      [4]uint8{0xF3, 0xF2, 0xE0, 0xFF},
		},
		Variants: map[string]VariantConfig{
			types.VariantSimple.String(): {
				BaseFallSpeed: 200,
				Objects: []ObjectKindConfig{
					{Kind: "stick1", Weight: 1, Scale: 1, Width: 24, Height: 110},
					{Kind: "stick2", Weight: 1, Scale: 1.5, Width: 24, Height: 110},
				},
			},
			types.VariantEnhanced.String(): {
				BaseFallSpeed:  100,
				SpeedIncrement: 50,
				Milestone:      10,
				Objects: []ObjectKindConfig{
					{Kind: "stick1", Weight: 4, Scale: 1, Width: 24, Height: 110},
					{Kind: "stick2", Weight: 4, Scale: 1.5, Width: 24, Height: 110},
					{Kind: "rock", Weight: 1, Hazard: true, Scale: 1, Width: 56, Height: 56},
					{Kind: "pinecone", Weight: 1, Hazard: true, Scale: 1, Width: 44, Height: 64},
					{Kind: "beehive", Weight: 1, Hazard: true, Scale: 1, Width: 60, Height: 72},
				},
			},
		},
	}
}

// ParseGameplayConfig 解析并校验 YAML 玩法配置
func ParseGameplayConfig(data []byte) (*GameplayConfig, error) {
	var cfg GameplayConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse gameplay YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gameplay config: %w", err)
	}

	return &cfg, nil
}

// LoadGameplayConfig 从嵌入资源（或磁盘）加载玩法配置
func LoadGameplayConfig(path string) (*GameplayConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gameplay config file: %w", err)
	}
	return ParseGameplayConfig(data)
}

// Variant 返回指定规则集的参数
func (c *GameplayConfig) Variant(v types.Variant) (VariantConfig, error) {
	vc, ok := c.Variants[v.String()]
	if !ok {
		return VariantConfig{}, fmt.Errorf("variant %q not configured", v.String())
	}
	return vc, nil
}

// SpawnInterval 返回生成周期（秒）
func (c *GameplayConfig) SpawnInterval() float64 {
	return float64(c.Spawn.IntervalMs) / 1000.0
}

// Validate 验证配置的有效性
func (c *GameplayConfig) Validate() error {
	if c.Playfield.Width <= 0 || c.Playfield.Height <= 0 {
		return fmt.Errorf("playfield size must be positive, got %.1fx%.1f", c.Playfield.Width, c.Playfield.Height)
	}
	if c.Player.Step <= 0 {
		return fmt.Errorf("player step must be positive, got %.1f", c.Player.Step)
	}
	if c.Basket.Width <= 0 || c.Basket.Height <= 0 {
		return fmt.Errorf("basket size must be positive, got %.1fx%.1f", c.Basket.Width, c.Basket.Height)
	}
	if c.Spawn.IntervalMs <= 0 {
		return fmt.Errorf("spawn intervalMs must be positive, got %d", c.Spawn.IntervalMs)
	}
	if c.Spawn.Margin < 0 || c.Spawn.Margin*2 > c.Playfield.Width {
		return fmt.Errorf("spawn margin %.1f does not fit playfield width %.1f", c.Spawn.Margin, c.Playfield.Width)
	}
	if len(c.Variants) == 0 {
		return fmt.Errorf("variants cannot be empty")
	}

	for name, vc := range c.Variants {
		v, err := types.ParseVariant(name)
		if err != nil {
			return err
		}
		// 查找只按规范名进行，别名（A/B）作键会在运行时找不到
		if name != v.String() {
			return fmt.Errorf("variant key %q must be written as %q", name, v.String())
		}
		if err := vc.validate(); err != nil {
			return fmt.Errorf("variant %s: %w", name, err)
		}
	}
	return nil
}

// validate 验证单个规则集
func (vc VariantConfig) validate() error {
	if vc.BaseFallSpeed <= 0 {
		return fmt.Errorf("baseFallSpeed must be positive, got %.1f", vc.BaseFallSpeed)
	}
	if vc.SpeedIncrement < 0 {
		return fmt.Errorf("speedIncrement cannot be negative, got %.1f", vc.SpeedIncrement)
	}
	if vc.Milestone < 0 {
		return fmt.Errorf("milestone cannot be negative, got %d", vc.Milestone)
	}
	if len(vc.Objects) == 0 {
		return fmt.Errorf("objects cannot be empty")
	}

	seen := make(map[string]bool, len(vc.Objects))
	for _, obj := range vc.Objects {
		if obj.ObjectKind() == types.KindUnknown {
			return fmt.Errorf("unknown object kind %q", obj.Kind)
		}
		if seen[obj.Kind] {
			return fmt.Errorf("duplicate object kind %q", obj.Kind)
		}
		seen[obj.Kind] = true
		if obj.Weight <= 0 {
			return fmt.Errorf("weight for %s must be positive, got %d", obj.Kind, obj.Weight)
		}
		if obj.Width <= 0 || obj.Height <= 0 {
			return fmt.Errorf("hitbox for %s must be positive, got %.1fx%.1f", obj.Kind, obj.Width, obj.Height)
		}
		if obj.Scale < 0 {
			return fmt.Errorf("scale for %s cannot be negative, got %.2f", obj.Kind, obj.Scale)
		}
	}
	return nil
}
