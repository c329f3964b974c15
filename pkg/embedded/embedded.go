// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量声明在项目根目录（embed.go），启动时通过 Init 注入。
//
// 未初始化时回退到工作目录下的真实文件，
// 终端前端和测试因此可以直接读取仓库中的 data/ 与 assets/。
package embedded

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	resourceFS  fs.FS
	initialized bool
)

// Init 注入资源文件系统（embed.FS 或任意 fs.FS）
// 必须在任何资源加载之前调用
func Init(fsys fs.FS) {
	resourceFS = fsys
	initialized = fsys != nil
}

// Reset 清除注入的文件系统，恢复磁盘回退模式
func Reset() {
	resourceFS = nil
	initialized = false
}

// IsInitialized 返回 embedded 包是否已注入文件系统
func IsInitialized() bool {
	return initialized
}

// normalize 统一路径格式：正斜杠、去掉 "./" 前缀，并校验前缀
func normalize(path string) (string, error) {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, "assets/") && !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'assets/' or 'data/')", path)
	}
	return path, nil
}

// ReadFile 读取资源文件内容
// 路径必须以 "assets/" 或 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}

	if !initialized {
		return os.ReadFile(filepath.FromSlash(path))
	}
	return fs.ReadFile(resourceFS, path)
}

// Exists 检查资源文件是否存在
func Exists(path string) bool {
	path, err := normalize(path)
	if err != nil {
		return false
	}

	if !initialized {
		_, err := os.Stat(filepath.FromSlash(path))
		return err == nil
	}
	_, err = fs.Stat(resourceFS, path)
	return err == nil
}
