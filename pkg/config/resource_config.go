package config

import (
	"fmt"
	"path/filepath"

	"github.com/decker502/stickcatch/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// ResourceConfigPath 资源清单路径
const ResourceConfigPath = "assets/config/resources.yaml"

// ResourceConfig represents the resource manifest loaded from YAML.
// It defines the structure of assets/config/resources.yaml.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  group_name:
//	    images: [...]
//	    fonts: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`
	BasePath string                   `yaml:"base_path"`
	Groups   map[string]ResourceGroup `yaml:"groups"`
}

// ResourceGroup is a collection of resources loaded together.
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"`
	Fonts  []FontResource  `yaml:"fonts"`
}

// ImageResource 单个图片资源
//
// Path 为空或文件不存在时，使用 Width x Height 的纯色占位图（Color）。
// Glyph 是终端前端绘制该图片时使用的字符。
//
// Example:
//
//	- id: rock
//	  width: 56
//	  height: 56
//	  color: [128, 128, 128, 255]
//	  glyph: "o"
type ImageResource struct {
	ID     string   `yaml:"id"`
	Path   string   `yaml:"path,omitempty"`
	Width  int      `yaml:"width"`
	Height int      `yaml:"height"`
	Color  [4]uint8 `yaml:"color"`
	Glyph  string   `yaml:"glyph,omitempty"`
}

// FontResource 字体资源，Path 为空时使用内置的 Go Regular 字体
type FontResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path,omitempty"`
}

// ParseResourceConfig 解析并校验资源清单
func ParseResourceConfig(data []byte) (*ResourceConfig, error) {
	var cfg ResourceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse resource config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resource config: %w", err)
	}
	return &cfg, nil
}

// LoadResourceConfig 从嵌入资源（或磁盘）加载资源清单
func LoadResourceConfig(path string) (*ResourceConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource config %s: %w", path, err)
	}
	return ParseResourceConfig(data)
}

// Validate 检查资源ID唯一、占位尺寸为正
func (c *ResourceConfig) Validate() error {
	seen := make(map[string]bool)
	for name, group := range c.Groups {
		for _, img := range group.Images {
			if img.ID == "" {
				return fmt.Errorf("group %s: image id cannot be empty", name)
			}
			if seen[img.ID] {
				return fmt.Errorf("group %s: duplicate resource id %q", name, img.ID)
			}
			seen[img.ID] = true
			if img.Width <= 0 || img.Height <= 0 {
				return fmt.Errorf("image %s: size must be positive, got %dx%d", img.ID, img.Width, img.Height)
			}
		}
		for _, font := range group.Fonts {
			if font.ID == "" {
				return fmt.Errorf("group %s: font id cannot be empty", name)
			}
			if seen[font.ID] {
				return fmt.Errorf("group %s: duplicate resource id %q", name, font.ID)
			}
			seen[font.ID] = true
		}
	}
	return nil
}

// Image 按ID查找图片资源（跨所有分组）
func (c *ResourceConfig) Image(id string) (ImageResource, bool) {
	for _, group := range c.Groups {
		for _, img := range group.Images {
			if img.ID == id {
				return img, true
			}
		}
	}
	return ImageResource{}, false
}

// Font 按ID查找字体资源
func (c *ResourceConfig) Font(id string) (FontResource, bool) {
	for _, group := range c.Groups {
		for _, font := range group.Fonts {
			if font.ID == id {
				return font, true
			}
		}
	}
	return FontResource{}, false
}

// ImagePath 返回图片的完整路径，没有配置路径时返回空串
// 没有扩展名时默认 .png
func (c *ResourceConfig) ImagePath(img ImageResource) string {
	if img.Path == "" {
		return ""
	}
	fullPath := BuildFullPath(c.BasePath, img.Path)
	if filepath.Ext(fullPath) == "" {
		fullPath += ".png"
	}
	return fullPath
}

// BuildFullPath joins the base path and a resource's relative path.
func BuildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}
