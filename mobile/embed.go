//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// go:embed 只能嵌入本目录下的文件，构建前先把资源复制进来：
//
//	mkdir -p mobile/assets mobile/data
//	cp -r assets/config mobile/assets/
//	cp data/gameplay.yaml mobile/data/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed assets/config data/gameplay.yaml
var resourcesFS embed.FS
