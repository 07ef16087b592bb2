package rigidbody

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/mazebeam/pkg/geom"
	"github.com/gonewx/mazebeam/pkg/physics"
)

// resolveStatic 修正动态刚体与静态刚体的穿透，并做速度响应
func resolveStatic(b, s *body) {
	lo, hi, r := b.segment()

	// 包围盒粗检
	reach := mgl64.Vec3{r, r, r}
	bb := geom.AABB{Min: lo.Sub(reach), Max: hi.Add(reach)}
	if !overlaps(bb, s.bounds) {
		return
	}

	switch s.kind {
	case physics.ShapeBox:
		box := geom.NewAABB(s.position, s.halfExtents)
		p := closestOnSegmentToBox(lo, hi, box)
		q := box.ClosestPoint(p)
		n, depth, ok := separation(p, q, r, box)
		if ok {
			applyContact(b, n, depth, s.material)
		}
	case physics.ShapeSphere:
		p := closestOnSegment(lo, hi, s.position)
		d := p.Sub(s.position)
		dist := d.Len()
		if dist < r+s.radius {
			n := geom.SafeNormalize(d, geom.Up)
			applyContact(b, n, r+s.radius-dist, s.material)
		}
	case physics.ShapeMesh:
		// 胶囊按下端、中点、上端三个采样球近似
		samples := []mgl64.Vec3{lo, lo.Add(hi).Mul(0.5), hi}
		if lo == hi {
			samples = samples[:1]
		}
		for _, p := range samples {
			for _, tri := range s.triangles {
				q := tri.ClosestPoint(p)
				d := p.Sub(q)
				dist := d.Len()
				if dist >= r {
					continue
				}
				n := geom.SafeNormalize(d, tri.Normal())
				applyContact(b, n, r-dist, s.material)
				p = p.Add(n.Mul(r - dist))
			}
		}
	}
}

// resolveDynamic 推开两个重叠的动态刚体
func resolveDynamic(a, c *body) {
	alo, ahi, ar := a.segment()
	clo, chi, cr := c.segment()

	pa, pc := closestBetweenVertical(alo, ahi, clo, chi)
	d := pa.Sub(pc)
	dist := d.Len()
	if dist >= ar+cr {
		return
	}
	n := geom.SafeNormalize(d, mgl64.Vec3{1, 0, 0})
	depth := ar + cr - dist

	wa, wc := a.invMass, c.invMass
	if a.sleeping {
		wa = 0
	}
	if c.sleeping {
		wc = 0
	}
	total := wa + wc
	if total == 0 {
		return
	}
	a.position = a.position.Add(n.Mul(depth * wa / total))
	c.position = c.position.Sub(n.Mul(depth * wc / total))

	rel := a.velocity.Sub(c.velocity).Dot(n)
	if rel >= 0 {
		return
	}
	e := a.material.Restitution * c.material.Restitution
	if -rel < bounceThreshold {
		e = 0
	}
	j := -(1 + e) * rel / total
	a.velocity = a.velocity.Add(n.Mul(j * wa))
	c.velocity = c.velocity.Sub(n.Mul(j * wc))

	// 被高速撞击的休眠刚体醒来
	if -rel > sleepSpeed {
		a.sleeping, c.sleeping = false, false
		a.sleepTimer, c.sleepTimer = 0, 0
	}
}

// applyContact 沿法线推出穿透并做带摩擦的速度响应
func applyContact(b *body, n mgl64.Vec3, depth float64, other physics.Material) {
	b.position = b.position.Add(n.Mul(depth))

	vn := b.velocity.Dot(n)
	if vn >= 0 {
		return
	}
	e := b.material.Restitution * other.Restitution
	if -vn < bounceThreshold {
		e = 0
	}
	normalImpulse := -(1 + e) * vn
	b.velocity = b.velocity.Add(n.Mul(normalImpulse))

	// 库仑摩擦：切向速度的削减量不超过 μ·法向冲量
	vt := b.velocity.Sub(n.Mul(b.velocity.Dot(n)))
	vtLen := vt.Len()
	if vtLen < geom.Epsilon {
		return
	}
	mu := math.Sqrt(b.material.Friction * other.Friction)
	drop := math.Min(vtLen, mu*normalImpulse)
	b.velocity = b.velocity.Sub(vt.Mul(drop / vtLen))
}

// separation 计算点到盒体的分离法线和穿透深度
func separation(p, q mgl64.Vec3, r float64, box geom.AABB) (mgl64.Vec3, float64, bool) {
	d := p.Sub(q)
	dist := d.Len()
	if dist > geom.Epsilon {
		if dist >= r {
			return mgl64.Vec3{}, 0, false
		}
		return d.Mul(1 / dist), r - dist, true
	}

	// 中心已在盒内：沿最浅的面推出
	best := math.Inf(1)
	var n mgl64.Vec3
	for i := 0; i < 3; i++ {
		if pen := p[i] - box.Min[i]; pen < best {
			best = pen
			n = mgl64.Vec3{}
			n[i] = -1
		}
		if pen := box.Max[i] - p[i]; pen < best {
			best = pen
			n = mgl64.Vec3{}
			n[i] = 1
		}
	}
	return n, best + r, true
}

func overlaps(a, b geom.AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Max[i] < b.Min[i] || a.Min[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// closestOnSegment 返回线段 [lo, hi] 上距离 p 最近的点
func closestOnSegment(lo, hi, p mgl64.Vec3) mgl64.Vec3 {
	d := hi.Sub(lo)
	l2 := d.Dot(d)
	if l2 < geom.Epsilon {
		return lo
	}
	t := p.Sub(lo).Dot(d) / l2
	t = math.Max(0, math.Min(1, t))
	return lo.Add(d.Mul(t))
}

// closestOnSegmentToBox 竖直线段上距盒体最近的点
func closestOnSegmentToBox(lo, hi mgl64.Vec3, box geom.AABB) mgl64.Vec3 {
	if lo == hi {
		return lo
	}
	y0 := math.Max(lo.Y(), box.Min.Y())
	y1 := math.Min(hi.Y(), box.Max.Y())
	var y float64
	switch {
	case y0 <= y1:
		y = (y0 + y1) / 2
	case hi.Y() < box.Min.Y():
		y = hi.Y()
	default:
		y = lo.Y()
	}
	return mgl64.Vec3{lo.X(), y, lo.Z()}
}

// closestBetweenVertical 两条竖直线段之间的最近点对
func closestBetweenVertical(alo, ahi, clo, chi mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	y0 := math.Max(alo.Y(), clo.Y())
	y1 := math.Min(ahi.Y(), chi.Y())
	var ya, yc float64
	switch {
	case y0 <= y1:
		ya = (y0 + y1) / 2
		yc = ya
	case ahi.Y() < clo.Y():
		ya, yc = ahi.Y(), clo.Y()
	default:
		ya, yc = alo.Y(), chi.Y()
	}
	return mgl64.Vec3{alo.X(), ya, alo.Z()}, mgl64.Vec3{clo.X(), yc, clo.Z()}
}
