package scenes

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/mazebeam/pkg/gameplay"
	"github.com/gonewx/mazebeam/pkg/systems"
	"github.com/gonewx/mazebeam/pkg/utils"
)

var (
	colorBackground = color.RGBA{R: 18, G: 20, B: 28, A: 255}
	colorFloor      = color.RGBA{R: 44, G: 48, B: 58, A: 255}
	colorWall       = color.RGBA{R: 120, G: 124, B: 140, A: 255}
	colorSlope      = color.RGBA{R: 92, G: 104, B: 128, A: 255}
	colorPlayer     = color.RGBA{R: 80, G: 200, B: 255, A: 255}
	colorKick       = color.RGBA{R: 255, G: 220, B: 80, A: 255}
	colorEngaged    = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	colorBeam       = color.RGBA{R: 120, G: 255, B: 160, A: 255}
	colorBeamStruck = color.RGBA{R: 255, G: 170, B: 60, A: 255}
	colorRing       = color.RGBA{R: 200, G: 255, B: 220, A: 200}
	colorHPBack     = color.RGBA{R: 40, G: 0, B: 0, A: 200}
	colorHP         = color.RGBA{R: 80, G: 220, B: 80, A: 255}
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// maxEnemyHP 血条满格对应的生命值
const maxEnemyHP = 100

// fillPolygon 填充凸多边形
func fillPolygon(dst *ebiten.Image, pts [][2]float32, clr color.RGBA) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(pts[0][0], pts[0][1])
	for _, p := range pts[1:] {
		path.LineTo(p[0], p[1])
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r := float32(clr.R) / 255
	g := float32(clr.G) / 255
	b := float32(clr.B) / 255
	a := float32(clr.A) / 255
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r * a
		vs[i].ColorG = g * a
		vs[i].ColorB = b * a
		vs[i].ColorA = a
	}
	dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// projectBox 把水平面上的矩形（lo/hi 的 X、Z）投影为四个屏幕点
func projectBox(view viewport, lo, hi mgl64.Vec3) [][2]float32 {
	corners := []mgl64.Vec3{
		{lo.X(), 0, lo.Z()},
		{hi.X(), 0, lo.Z()},
		{hi.X(), 0, hi.Z()},
		{lo.X(), 0, hi.Z()},
	}
	pts := make([][2]float32, len(corners))
	for i, c := range corners {
		x, y := view.project(c)
		pts[i] = [2]float32{x, y}
	}
	return pts
}

func (s *GameScene) drawMaze(screen *ebiten.Image, view viewport) {
	maze := s.coord.Maze()
	hx, hz := maze.Layout.HalfExtents()
	fillPolygon(screen, projectBox(view, mgl64.Vec3{-hx, 0, -hz}, mgl64.Vec3{hx, 0, hz}), colorFloor)

	for _, w := range maze.Walls {
		clr := colorWall
		if w.Slope {
			clr = colorSlope
		}
		fillPolygon(screen, projectBox(view, w.Bounds.Min, w.Bounds.Max), clr)
	}
}

func (s *GameScene) drawSpheres(screen *ebiten.Image, view viewport) {
	for _, sp := range s.snapshot.Spheres {
		x, y := view.project(sp.Position)
		vector.DrawFilledCircle(screen, x, y, max(view.length(sp.Radius), 2), rgb(sp.Color), true)
	}
}

func (s *GameScene) drawEffects(screen *ebiten.Image, view viewport) {
	for _, d := range s.snapshot.Debris {
		x, y := view.project(d.Position)
		size := max(view.length(d.Size), 2)
		vector.DrawFilledRect(screen, x-size/2, y-size/2, size, size, rgb(d.Color), false)
	}
	for _, p := range s.snapshot.Particles {
		x, y := view.project(p.Position)
		vector.DrawFilledCircle(screen, x, y, max(view.length(p.Size), 1), rgb(p.Color), true)
	}
}

func (s *GameScene) drawActors(screen *ebiten.Image, view viewport) {
	for _, e := range s.snapshot.Enemies {
		clr := rgb(e.Color)
		x, y, r := s.drawActor(screen, view, e, clr)
		if e.Engaged {
			vector.StrokeCircle(screen, x, y, r+3, 2, colorEngaged, true)
		}
		drawHPBar(screen, x, y-r-8, r*2, float32(e.HP)/maxEnemyHP)
	}

	clr := colorPlayer
	if s.snapshot.Player.Action == systems.ActionKick {
		clr = colorKick
	}
	s.drawActor(screen, view, s.snapshot.Player, clr)
}

// drawActor 圆形身体加朝向线，返回屏幕中心与半径
func (s *GameScene) drawActor(screen *ebiten.Image, view viewport, a gameplay.ActorView, clr color.RGBA) (float32, float32, float32) {
	x, y := view.project(a.Position)
	r := max(view.length(a.Radius), 4)
	vector.DrawFilledCircle(screen, x, y, r, clr, true)

	dx, dy := view.direction(a.Forward)
	vector.StrokeLine(screen, x, y, x+dx*r*1.6, y+dy*r*1.6, 2, color.White, true)
	return x, y, r
}

func (s *GameScene) drawBeams(screen *ebiten.Image, view viewport) {
	for _, b := range s.snapshot.Beams {
		x0, y0 := view.project(b.Tail)
		x1, y1 := view.project(b.Head)
		clr := colorBeam
		if b.Struck {
			clr = colorBeamStruck
		}
		width := max(view.length(b.Radius*2), 2)
		vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
	}
	for _, ring := range s.snapshot.Rings {
		x, y := view.project(ring.Position)
		// 光环竖直面向发射方向，俯视时压缩成一条线段
		r := view.length(ring.Radius)
		dx, dy := view.direction(ring.Normal)
		px, py := -dy, dx
		vector.StrokeLine(screen, x-px*r, y-py*r, x+px*r, y+py*r, 3, colorRing, true)
	}
}

func drawHPBar(screen *ebiten.Image, x, y, width, fraction float32) {
	fraction = float32(utils.Clamp01(float64(fraction)))
	vector.DrawFilledRect(screen, x-width/2, y, width, 4, colorHPBack, false)
	vector.DrawFilledRect(screen, x-width/2, y, width*fraction, 4, colorHP, false)
}

func rgb(c [3]uint8) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}
