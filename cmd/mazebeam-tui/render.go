package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/gameplay"
	"github.com/gonewx/mazebeam/pkg/systems"
)

// canvas 可绘制字符的屏幕（tcell.Screen 满足该接口）
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// 每个格子占用的终端字符数，字符高约为宽的两倍
const (
	colsPerCell = 4
	rowsPerCell = 2
)

var (
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSlope  = tcell.StyleDefault.Foreground(tcell.ColorSlateGray)
	styleFloor  = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleKick   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleBeam   = tcell.StyleDefault.Foreground(tcell.ColorLime)
	styleStruck = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleRing   = tcell.StyleDefault.Foreground(tcell.ColorPaleGreen)
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	stylePrompt = tcell.StyleDefault.Foreground(tcell.ColorYellow).Reverse(true)
)

// renderer 以玩家为中心、北（-Z）朝上绘制快照
type renderer struct {
	layout *config.MazeLayout
}

// toScreen 世界坐标 -> 终端坐标
func (r renderer) toScreen(p, center mgl64.Vec3, w, h int) (int, int) {
	unitX := r.layout.CellSize / colsPerCell
	unitZ := r.layout.CellSize / rowsPerCell
	x := int(math.Floor((p.X()-center.X())/unitX)) + w/2
	y := int(math.Floor((p.Z()-center.Z())/unitZ)) + h/2
	return x, y
}

// facingGlyph 朝向对应的箭头字符
func facingGlyph(fwd mgl64.Vec3) rune {
	if math.Abs(fwd.X()) > math.Abs(fwd.Z()) {
		if fwd.X() > 0 {
			return '>'
		}
		return '<'
	}
	if fwd.Z() > 0 {
		return 'v'
	}
	return '^'
}

func colorStyle(c [3]uint8) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c[0]), int32(c[1]), int32(c[2])))
}

func put(cv canvas, x, y int, ch rune, style tcell.Style) {
	w, h := cv.Size()
	if x < 0 || y < 1 || x >= w || y >= h-1 {
		return
	}
	cv.SetContent(x, y, ch, nil, style)
}

func putString(cv canvas, x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		cv.SetContent(x+i, y, ch, nil, style)
	}
}

// draw 绘制一帧，第一行与最后一行留给状态文字
func (r renderer) draw(cv canvas, s gameplay.Snapshot) {
	w, h := cv.Size()
	center := s.Player.Position

	// 迷路：每个屏幕字符取其所在格子的符号
	hx, hz := r.layout.HalfExtents()
	for y := 1; y < h-1; y++ {
		for x := 0; x < w; x++ {
			wx := center.X() + (float64(x-w/2)+0.5)*r.layout.CellSize/colsPerCell
			wz := center.Z() + (float64(y-h/2)+0.5)*r.layout.CellSize/rowsPerCell
			col := int(math.Floor((wx + hx) / r.layout.CellSize))
			row := int(math.Floor((wz + hz) / r.layout.CellSize))
			if row < 0 || col < 0 || row >= r.layout.Depth() || col >= r.layout.Width() {
				continue
			}
			switch r.layout.Rows[row][col] {
			case config.CellWall:
				put(cv, x, y, '█', styleWall)
			case config.CellSlope:
				put(cv, x, y, '▓', styleSlope)
			default:
				put(cv, x, y, '·', styleFloor)
			}
		}
	}

	for _, sp := range s.Spheres {
		x, y := r.toScreen(sp.Position, center, w, h)
		put(cv, x, y, 'o', colorStyle(sp.Color))
	}
	for _, d := range s.Debris {
		x, y := r.toScreen(d.Position, center, w, h)
		put(cv, x, y, ',', colorStyle(d.Color))
	}
	for _, p := range s.Particles {
		x, y := r.toScreen(p.Position, center, w, h)
		put(cv, x, y, '.', colorStyle(p.Color))
	}
	for _, e := range s.Enemies {
		x, y := r.toScreen(e.Position, center, w, h)
		ch := 'e'
		if e.Engaged {
			ch = 'E'
		}
		put(cv, x, y, ch, colorStyle(e.Color))
	}
	for _, b := range s.Beams {
		style := styleBeam
		if b.Struck {
			style = styleStruck
		}
		x0, y0 := r.toScreen(b.Tail, center, w, h)
		x1, y1 := r.toScreen(b.Head, center, w, h)
		drawLine(cv, x0, y0, x1, y1, '*', style)
	}
	for _, ring := range s.Rings {
		x, y := r.toScreen(ring.Position, center, w, h)
		put(cv, x, y, 'O', styleRing)
	}

	style := stylePlayer
	if s.Player.Action == systems.ActionKick {
		style = styleKick
	}
	x, y := r.toScreen(s.Player.Position, center, w, h)
	put(cv, x, y, facingGlyph(s.Player.Forward), style)

	putString(cv, 0, 0, statusLine(s), styleHUD)
	if !s.Started {
		prompt := " ENTER: start   WASD/arrows: move   SPACE: kick   +/-: zoom   ESC: quit "
		putString(cv, max(0, (w-len(prompt))/2), h-1, prompt, stylePrompt)
	} else {
		putString(cv, 0, h-1, fmt.Sprintf("beams %d  rings %d  particles %d  debris %d",
			s.Counts.Beams, s.Counts.Rings, s.Counts.Particles, s.Counts.Debris), styleHUD)
	}
}

// statusLine 顶部状态文字
func statusLine(s gameplay.Snapshot) string {
	return fmt.Sprintf("t=%.1fs  enemies %d  spheres %d  zoom %.0f  %s",
		s.Time, len(s.Enemies), len(s.Spheres), s.Camera.Distance, s.Player.Action)
}

// drawLine Bresenham 直线
func drawLine(cv canvas, x0, y0, x1, y1 int, ch rune, style tcell.Style) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		put(cv, x0, y0, ch, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
