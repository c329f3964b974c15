package components

// SpriteComponent 描述实体的视觉表现
//
// 只保存图片资源ID，不持有图片本身：
// 物理沙箱与终端前端都不依赖 Ebitengine，图片由渲染系统按ID向 ResourceManager 查询。
type SpriteComponent struct {
	ImageID string  // 图片资源ID，如 "stick1"
	Scale   float64 // 渲染缩放，仅影响外观，不影响碰撞盒
	Visible bool    // 是否绘制（篮子是不可见的碰撞体）
	Layer   int     // 绘制层级，数值小的先画
}
