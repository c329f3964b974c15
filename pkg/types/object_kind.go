// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// ObjectKind 定义下落物的种类
type ObjectKind int

const (
	// KindUnknown 未知种类
	KindUnknown ObjectKind = iota

	// 安全物（接住得分）
	KindStickSmall // 细树枝 stick1
	KindStickLarge // 粗树枝 stick2（渲染放大 1.5 倍）

	// 危险物（增强版规则：接住或落地即结束）
	KindRock     // 石块
	KindPinecone // 松果
	KindBeehive  // 蜂巢
)

// objectKindStringMap 种类到配置字符串的映射
var objectKindStringMap = map[ObjectKind]string{
	KindStickSmall: "stick1",
	KindStickLarge: "stick2",
	KindRock:       "rock",
	KindPinecone:   "pinecone",
	KindBeehive:    "beehive",
}

// stringToObjectKindMap 配置字符串到种类的反向映射
var stringToObjectKindMap map[string]ObjectKind

func init() {
	stringToObjectKindMap = make(map[string]ObjectKind, len(objectKindStringMap))
	for kind, s := range objectKindStringMap {
		stringToObjectKindMap[s] = kind
	}
}

// String 返回种类的配置字符串表示（同时也是默认的图片资源ID）
func (k ObjectKind) String() string {
	if s, ok := objectKindStringMap[k]; ok {
		return s
	}
	return "unknown"
}

// ObjectKindFromString 将配置字符串转换为 ObjectKind
func ObjectKindFromString(s string) ObjectKind {
	if kind, ok := stringToObjectKindMap[s]; ok {
		return kind
	}
	return KindUnknown
}

// AllObjectKinds 返回所有已知种类（不含 KindUnknown），顺序固定
func AllObjectKinds() []ObjectKind {
	return []ObjectKind{KindStickSmall, KindStickLarge, KindRock, KindPinecone, KindBeehive}
}
