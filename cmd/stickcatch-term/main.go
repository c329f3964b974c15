// stickcatch-term 在终端中运行接物游戏
//
// 与桌面版共用玩法控制器与物理沙箱，只替换了绘制与输入：
// 精灵画成资源清单中登记的字符，方向键/A/D 移动，r 或回车重玩，q 退出。
//
// 用法:
//
//	go run ./cmd/stickcatch-term -variant enhanced
//	go run ./cmd/stickcatch-term -root /path/to/repo -log term.log
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/stickcatch/pkg/config"
	"github.com/decker502/stickcatch/pkg/embedded"
	"github.com/decker502/stickcatch/pkg/types"
	"github.com/gdamore/tcell/v2"
)

func main() {
	variantFlag := flag.String("variant", "simple", "规则集: simple 或 enhanced")
	seed := flag.Int64("seed", 0, "随机种子（0 表示按时间）")
	root := flag.String("root", ".", "包含 data/ 与 assets/ 的目录")
	logPath := flag.String("log", "", "日志文件（默认丢弃，终端被游戏画面占用）")
	flag.Parse()

	if err := run(*variantFlag, *seed, *root, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "stickcatch-term: %v\n", err)
		os.Exit(1)
	}
}

func run(variantName string, seed int64, root, logPath string) error {
	if logPath == "" {
		log.SetOutput(io.Discard)
	} else {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	variant, err := types.ParseVariant(variantName)
	if err != nil {
		return err
	}

	embedded.Init(os.DirFS(root))
	cfg, err := config.LoadGameplayConfig(config.GameplayConfigPath)
	if err != nil {
		return fmt.Errorf("玩法配置加载失败: %w", err)
	}
	// 资源清单只提供字符与颜色，缺失时全部用默认字符
	resources, err := config.LoadResourceConfig(config.ResourceConfigPath)
	if err != nil {
		log.Printf("[Term] Resource config unavailable: %v", err)
		resources = nil
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	host, err := newTermHost(screen, cfg, resources, variant, seed)
	if err != nil {
		return err
	}
	host.run()
	return nil
}
