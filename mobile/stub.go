//go:build !mobile

// 普通构建（桌面、网页、终端）不需要移动端入口，这里只保留包的导出符号，
// 让 `go build ./...` 不必带 -tags mobile。
package mobile

// Dummy 与 mobile.go 中的同名函数对应
func Dummy() {}
