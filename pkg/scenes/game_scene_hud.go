package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/mazebeam/pkg/config"
	"github.com/gonewx/mazebeam/pkg/gameplay"
	"github.com/gonewx/mazebeam/pkg/utils"
)

const (
	startPrompt   = "Press ENTER to start"
	controlsHint  = "WASD/Arrows: move   SPACE: kick   Wheel: zoom"
	hudLineHeight = 16
)

var (
	colorMinimapBack  = color.RGBA{R: 0, G: 0, B: 0, A: 160}
	colorMinimapWall  = color.RGBA{R: 150, G: 150, B: 165, A: 255}
	colorMinimapSlope = color.RGBA{R: 110, G: 120, B: 150, A: 255}
	colorFlash        = color.RGBA{R: 255, G: 240, B: 200, A: 255}
)

// hudLines 左上角的状态文字
func hudLines(s gameplay.Snapshot) []string {
	return []string{
		fmt.Sprintf("Time %.1fs  Enemies %d  Spheres %d", s.Time, len(s.Enemies), len(s.Spheres)),
		fmt.Sprintf("Beams %d  Rings %d  Particles %d  Debris %d",
			s.Counts.Beams, s.Counts.Rings, s.Counts.Particles, s.Counts.Debris),
		fmt.Sprintf("Zoom %.0f  Action %s", s.Camera.Distance, s.Player.Action),
	}
}

func (s *GameScene) drawHUD(screen *ebiten.Image) {
	b := screen.Bounds()

	for i, line := range hudLines(s.snapshot) {
		ebitenutil.DebugPrintAt(screen, line, 10, 10+i*hudLineHeight)
	}

	mm := newMinimap(s.coord.Maze().Layout, b.Dx()-config.MinimapSize-config.MinimapMargin, config.MinimapMargin, config.MinimapSize)
	mm.draw(screen, s.snapshot)

	if s.impactFlash > 0 {
		flash := colorFlash
		flash.A = uint8(255 * utils.FadeOut(impactFlashDuration-s.impactFlash, impactFlashDuration))
		vector.StrokeRect(screen, 1, 1, float32(b.Dx()-2), float32(b.Dy()-2), 3, flash, false)
	}

	if !s.snapshot.Started {
		cx, cy := b.Dx()/2, b.Dy()/2
		// DebugPrint 字符宽 6 像素
		ebitenutil.DebugPrintAt(screen, startPrompt, cx-len(startPrompt)*3, cy-hudLineHeight)
		ebitenutil.DebugPrintAt(screen, controlsHint, cx-len(controlsHint)*3, cy+hudLineHeight)
	}
}

// minimap 右上角的小地图，北（-Z）朝上，不随相机旋转
type minimap struct {
	layout *config.MazeLayout
	x, y   float32
	cellPx float32
}

// newMinimap 创建小地图
//
// 参数:
//   - layout: 迷路布局
//   - x, y: 左上角屏幕坐标
//   - size: 较长边的像素长度
func newMinimap(layout *config.MazeLayout, x, y int, size float32) minimap {
	cells := max(layout.Width(), layout.Depth())
	return minimap{
		layout: layout,
		x:      float32(x),
		y:      float32(y),
		cellPx: size / float32(cells),
	}
}

// project 世界坐标 -> 小地图屏幕坐标
func (m minimap) project(p mgl64.Vec3) (float32, float32) {
	hx, hz := m.layout.HalfExtents()
	u := (p.X() + hx) / m.layout.CellSize
	v := (p.Z() + hz) / m.layout.CellSize
	return m.x + float32(u)*m.cellPx, m.y + float32(v)*m.cellPx
}

// arrow 位置 p、朝向 fwd 的三角形箭头顶点
func (m minimap) arrow(p, fwd mgl64.Vec3, length float32) [][2]float32 {
	cx, cy := m.project(p)
	fx, fz := fwd.X(), fwd.Z()
	n := math.Hypot(fx, fz)
	if n < 1e-9 {
		fx, fz, n = 0, -1, 1
	}
	dx, dy := float32(fx/n), float32(fz/n)
	px, py := -dy, dx
	return [][2]float32{
		{cx + dx*length, cy + dy*length},
		{cx - dx*length*0.5 + px*length*0.6, cy - dy*length*0.5 + py*length*0.6},
		{cx - dx*length*0.5 - px*length*0.6, cy - dy*length*0.5 - py*length*0.6},
	}
}

func (m minimap) draw(screen *ebiten.Image, s gameplay.Snapshot) {
	w := float32(m.layout.Width()) * m.cellPx
	h := float32(m.layout.Depth()) * m.cellPx
	vector.DrawFilledRect(screen, m.x, m.y, w, h, colorMinimapBack, false)

	for r, row := range m.layout.Rows {
		for c, ch := range row {
			var clr color.RGBA
			switch ch {
			case config.CellWall:
				clr = colorMinimapWall
			case config.CellSlope:
				clr = colorMinimapSlope
			default:
				continue
			}
			vector.DrawFilledRect(screen, m.x+float32(c)*m.cellPx, m.y+float32(r)*m.cellPx, m.cellPx, m.cellPx, clr, false)
		}
	}

	for _, sp := range s.Spheres {
		x, y := m.project(sp.Position)
		vector.DrawFilledCircle(screen, x, y, 1.5, rgb(sp.Color), false)
	}
	for _, e := range s.Enemies {
		x, y := m.project(e.Position)
		vector.DrawFilledCircle(screen, x, y, 2.5, rgb(e.Color), false)
	}
	fillPolygon(screen, m.arrow(s.Player.Position, s.Player.Forward, max(m.cellPx, 6)), colorPlayer)
}
