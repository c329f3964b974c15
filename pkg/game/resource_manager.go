package game

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log"

	"github.com/decker502/stickcatch/pkg/config"
	"github.com/decker502/stickcatch/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// ResourceManager is responsible for centralized management of game resources.
// It loads and caches images and font faces so each is created only once.
//
// Images are addressed by the ids used in gameplay.yaml (e.g. "noah", "rock").
// An image without a file, or whose file cannot be read, is replaced by a
// solid placeholder of the configured size and color, so the game always runs
// without art assets.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. All loading happens on the game
// goroutine before and during Update.
type ResourceManager struct {
	imageCache    map[string]*ebiten.Image         // path -> image
	idCache       map[string]*ebiten.Image         // resource id -> image (file or placeholder)
	fontSources   map[string]*text.GoTextFaceSource // font path -> source
	fontFaceCache map[string]*text.GoTextFace       // "path:size" -> face

	config *config.ResourceConfig
}

// NewResourceManager creates a ResourceManager with empty caches.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		imageCache:    make(map[string]*ebiten.Image),
		idCache:       make(map[string]*ebiten.Image),
		fontSources:   make(map[string]*text.GoTextFaceSource),
		fontFaceCache: make(map[string]*text.GoTextFace),
	}
}

// LoadImage loads an image file through the embedded filesystem and caches it.
// If the image has already been loaded, it returns the cached version.
//
// Parameters:
//   - path: resource path starting with "assets/" (e.g., "assets/images/rock.png")
//
// Returns:
//   - the loaded ebiten.Image
//   - an error if the file cannot be read or decoded
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// GetImage returns a previously loaded image, or nil.
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// LoadResourceConfig 加载资源清单
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	cfg, err := config.LoadResourceConfig(configPath)
	if err != nil {
		return err
	}
	rm.SetResourceConfig(cfg)
	return nil
}

// SetResourceConfig 直接设置资源清单（清空按ID缓存）
func (rm *ResourceManager) SetResourceConfig(cfg *config.ResourceConfig) {
	rm.config = cfg
	rm.idCache = make(map[string]*ebiten.Image)
}

// ResourceConfig 返回当前资源清单
func (rm *ResourceManager) ResourceConfig() *config.ResourceConfig {
	return rm.config
}

// LoadImageByID 按资源ID加载图片
// 文件缺失或解码失败时退回占位图，只有ID未登记时返回错误
func (rm *ResourceManager) LoadImageByID(resourceID string) (*ebiten.Image, error) {
	if rm.config == nil {
		return nil, fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}
	if img, ok := rm.idCache[resourceID]; ok {
		return img, nil
	}

	res, ok := rm.config.Image(resourceID)
	if !ok {
		return nil, fmt.Errorf("resource ID not found: %s", resourceID)
	}

	var img *ebiten.Image
	if path := rm.config.ImagePath(res); path != "" {
		loaded, err := rm.LoadImage(path)
		if err != nil {
			log.Printf("[ResourceManager] %s: %v (using placeholder)", resourceID, err)
		} else {
			img = loaded
		}
	}
	if img == nil {
		img = newPlaceholder(res)
	}

	rm.idCache[resourceID] = img
	return img, nil
}

// GetImageByID 返回已加载的图片，未加载时返回 nil
func (rm *ResourceManager) GetImageByID(resourceID string) *ebiten.Image {
	return rm.idCache[resourceID]
}

// LoadResourceGroup loads every image in a group defined by the manifest.
// Fonts are loaded on demand since they need a size.
func (rm *ResourceManager) LoadResourceGroup(groupName string) error {
	if rm.config == nil {
		return fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}

	group, exists := rm.config.Groups[groupName]
	if !exists {
		return fmt.Errorf("resource group not found: %s", groupName)
	}

	for _, img := range group.Images {
		if _, err := rm.LoadImageByID(img.ID); err != nil {
			return fmt.Errorf("failed to load image %s in group %s: %w", img.ID, groupName, err)
		}
	}

	log.Printf("[ResourceManager] Loaded group %s: %d images", groupName, len(group.Images))
	return nil
}

// LoadFont returns a text face of the given size, caching both the face
// and its source. An empty path selects the built-in Go Regular font.
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, err := rm.fontSource(path)
	if err != nil {
		return nil, err
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// LoadFontByID 按清单中的字体ID加载
func (rm *ResourceManager) LoadFontByID(fontID string, size float64) (*text.GoTextFace, error) {
	if rm.config == nil {
		return nil, fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}
	res, ok := rm.config.Font(fontID)
	if !ok {
		return nil, fmt.Errorf("font ID not found: %s", fontID)
	}
	path := ""
	if res.Path != "" {
		path = config.BuildFullPath(rm.config.BasePath, res.Path)
	}
	return rm.LoadFont(path, size)
}

// GetFont returns a previously loaded face, or nil.
func (rm *ResourceManager) GetFont(path string, size float64) *text.GoTextFace {
	return rm.fontFaceCache[fmt.Sprintf("%s:%.1f", path, size)]
}

// fontSource 读取并缓存字体源
func (rm *ResourceManager) fontSource(path string) (*text.GoTextFaceSource, error) {
	if source, ok := rm.fontSources[path]; ok {
		return source, nil
	}

	fontData := goregular.TTF
	if path != "" {
		data, err := embedded.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
		}
		fontData = data
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %q: %w", path, err)
	}
	rm.fontSources[path] = source
	return source, nil
}

// newPlaceholder 创建纯色占位图
func newPlaceholder(res config.ImageResource) *ebiten.Image {
	img := ebiten.NewImage(res.Width, res.Height)
	img.Fill(color.RGBA{R: res.Color[0], G: res.Color[1], B: res.Color[2], A: res.Color[3]})
	return img
}
