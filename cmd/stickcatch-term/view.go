package main

import (
	"math"

	"github.com/decker502/stickcatch/pkg/config"
)

// viewport 场地坐标与终端单元格之间的换算
// 最后一行留给状态栏
type viewport struct {
	pf         config.PlayfieldConfig
	cols, rows int
}

func newViewport(pf config.PlayfieldConfig, screenW, screenH int) viewport {
	rows := screenH - 1
	if rows < 1 {
		rows = 1
	}
	cols := screenW
	if cols < 1 {
		cols = 1
	}
	return viewport{pf: pf, cols: cols, rows: rows}
}

// toCell 场地坐标 -> 单元格，结果可能越界，由调用方裁剪
func (v viewport) toCell(x, y float64) (int, int) {
	cx := int(math.Floor(x / v.pf.Width * float64(v.cols)))
	cy := int(math.Floor(y / v.pf.Height * float64(v.rows)))
	return cx, cy
}

// cellBounds 单元格覆盖的场地区域
func (v viewport) cellBounds(cx, cy int) (x0, y0, x1, y1 float64) {
	cw := v.pf.Width / float64(v.cols)
	ch := v.pf.Height / float64(v.rows)
	return float64(cx) * cw, float64(cy) * ch, float64(cx+1) * cw, float64(cy+1) * ch
}

// cellRect 以 (x, y) 为中心、w x h 大小的区域覆盖的单元格范围（至少一格）
func (v viewport) cellRect(x, y, w, h float64) (x0, y0, x1, y1 int) {
	x0, y0 = v.toCell(x-w/2, y-h/2)
	x1, y1 = v.toCell(x+w/2, y+h/2)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

// inside 单元格是否在游戏区域内
func (v viewport) inside(cx, cy int) bool {
	return cx >= 0 && cx < v.cols && cy >= 0 && cy < v.rows
}
