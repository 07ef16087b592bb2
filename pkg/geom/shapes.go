package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB 轴对齐包围盒，也用作静态墙体的碰撞形状
type AABB struct {
	Min, Max mgl64.Vec3
}

// NewAABB 由中心点和半尺寸构造包围盒
func NewAABB(center, halfExtents mgl64.Vec3) AABB {
	return AABB{Min: center.Sub(halfExtents), Max: center.Add(halfExtents)}
}

// Center 返回包围盒中心
func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// HalfExtents 返回包围盒半尺寸
func (b AABB) HalfExtents() mgl64.Vec3 {
	return b.Max.Sub(b.Min).Mul(0.5)
}

// Bounds 实现 Shape
func (b AABB) Bounds() AABB { return b }

// Contains 判断点是否在包围盒内（含边界）
func (b AABB) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Union 合并两个包围盒
func (b AABB) Union(o AABB) AABB {
	var out AABB
	for i := 0; i < 3; i++ {
		out.Min[i] = math.Min(b.Min[i], o.Min[i])
		out.Max[i] = math.Max(b.Max[i], o.Max[i])
	}
	return out
}

// ClosestPoint 返回包围盒上距离 p 最近的点
func (b AABB) ClosestPoint(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		clamp(p.X(), b.Min.X(), b.Max.X()),
		clamp(p.Y(), b.Min.Y(), b.Max.Y()),
		clamp(p.Z(), b.Min.Z(), b.Max.Z()),
	}
}

// IntersectRay 使用 slab 算法求交
func (b AABB) IntersectRay(origin, dir mgl64.Vec3, near, far float64) (Hit, bool) {
	tMin, tMax := math.Inf(-1), math.Inf(1)
	enterAxis, enterSign := -1, 0.0

	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < Epsilon {
			if origin[i] < b.Min[i] || origin[i] > b.Max[i] {
				return Hit{}, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (b.Min[i] - origin[i]) * inv
		t2 := (b.Max[i] - origin[i]) * inv
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}
		if t1 > tMin {
			tMin = t1
			enterAxis = i
			enterSign = sign
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return Hit{}, false
		}
	}

	// 起点在盒内时不报告命中（射线从内部射出）
	if enterAxis < 0 || tMin < near || tMin > far {
		return Hit{}, false
	}

	var normal mgl64.Vec3
	normal[enterAxis] = enterSign
	return Hit{
		Distance: tMin,
		Point:    origin.Add(dir.Mul(tMin)),
		Normal:   normal,
	}, true
}

// Sphere 球体形状
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Bounds 实现 Shape
func (s *Sphere) Bounds() AABB {
	r := mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	return AABB{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

// IntersectRay 实现 Shape
func (s *Sphere) IntersectRay(origin, dir mgl64.Vec3, near, far float64) (Hit, bool) {
	t, ok := raySphere(origin, dir, s.Center, s.Radius, near, far)
	if !ok {
		return Hit{}, false
	}
	p := origin.Add(dir.Mul(t))
	return Hit{Distance: t, Point: p, Normal: SafeNormalize(p.Sub(s.Center), dir.Mul(-1))}, true
}

func raySphere(origin, dir, center mgl64.Vec3, radius, near, far float64) (float64, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < near {
		t = -b + sq
	}
	if t < near || t > far {
		return 0, false
	}
	return t, true
}

// Capsule 竖直胶囊体，Center 为胶囊中心，HalfSegment 为中间圆柱段的半长
type Capsule struct {
	Center      mgl64.Vec3
	HalfSegment float64
	Radius      float64
}

// NewCapsule 按总高度与半径构造竖直胶囊
func NewCapsule(center mgl64.Vec3, height, radius float64) *Capsule {
	return &Capsule{
		Center:      center,
		HalfSegment: math.Max(0, height/2-radius),
		Radius:      radius,
	}
}

// Bounds 实现 Shape
func (c *Capsule) Bounds() AABB {
	h := mgl64.Vec3{c.Radius, c.HalfSegment + c.Radius, c.Radius}
	return AABB{Min: c.Center.Sub(h), Max: c.Center.Add(h)}
}

// Segment 返回胶囊中轴线段的两个端点（下、上）
func (c *Capsule) Segment() (mgl64.Vec3, mgl64.Vec3) {
	off := mgl64.Vec3{0, c.HalfSegment, 0}
	return c.Center.Sub(off), c.Center.Add(off)
}

// IntersectRay 实现 Shape：圆柱侧面与两端半球分别求交，取最近
func (c *Capsule) IntersectRay(origin, dir mgl64.Vec3, near, far float64) (Hit, bool) {
	best := Hit{Distance: math.Inf(1)}
	found := false
	bottom, top := c.Segment()

	// 圆柱侧面（XZ 平面内求解）
	ox, oz := origin.X()-c.Center.X(), origin.Z()-c.Center.Z()
	dx, dz := dir.X(), dir.Z()
	a := dx*dx + dz*dz
	if a > Epsilon {
		b := ox*dx + oz*dz
		cc := ox*ox + oz*oz - c.Radius*c.Radius
		disc := b*b - a*cc
		if disc >= 0 {
			sq := math.Sqrt(disc)
			for _, t := range []float64{(-b - sq) / a, (-b + sq) / a} {
				if t < near || t > far {
					continue
				}
				p := origin.Add(dir.Mul(t))
				if p.Y() < bottom.Y() || p.Y() > top.Y() {
					continue
				}
				if t < best.Distance {
					n := SafeNormalize(mgl64.Vec3{p.X() - c.Center.X(), 0, p.Z() - c.Center.Z()}, dir.Mul(-1))
					best = Hit{Distance: t, Point: p, Normal: n}
					found = true
				}
				break
			}
		}
	}

	for _, end := range []mgl64.Vec3{bottom, top} {
		if t, ok := raySphere(origin, dir, end, c.Radius, near, far); ok && t < best.Distance {
			p := origin.Add(dir.Mul(t))
			best = Hit{Distance: t, Point: p, Normal: SafeNormalize(p.Sub(end), dir.Mul(-1))}
			found = true
		}
	}
	return best, found
}

// Triangle 三角形
type Triangle struct {
	A, B, C mgl64.Vec3
}

// Normal 返回三角形的单位法线（右手 A->B->C）
func (t Triangle) Normal() mgl64.Vec3 {
	return SafeNormalize(t.B.Sub(t.A).Cross(t.C.Sub(t.A)), Up)
}

// Bounds 实现 Shape
func (t Triangle) Bounds() AABB {
	b := AABB{Min: t.A, Max: t.A}
	for _, p := range []mgl64.Vec3{t.B, t.C} {
		b = b.Union(AABB{Min: p, Max: p})
	}
	return b
}

// IntersectRay 使用 Möller–Trumbore 算法双面求交
func (t Triangle) IntersectRay(origin, dir mgl64.Vec3, near, far float64) (Hit, bool) {
	e1 := t.B.Sub(t.A)
	e2 := t.C.Sub(t.A)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < Epsilon {
		return Hit{}, false
	}
	inv := 1 / det
	s := origin.Sub(t.A)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return Hit{}, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return Hit{}, false
	}
	dist := e2.Dot(q) * inv
	if dist < near || dist > far {
		return Hit{}, false
	}
	n := t.Normal()
	if n.Dot(dir) > 0 {
		n = n.Mul(-1)
	}
	return Hit{Distance: dist, Point: origin.Add(dir.Mul(dist)), Normal: n}, true
}

// ClosestPoint 返回三角形上距离 p 最近的点
func (t Triangle) ClosestPoint(p mgl64.Vec3) mgl64.Vec3 {
	ab := t.B.Sub(t.A)
	ac := t.C.Sub(t.A)
	ap := p.Sub(t.A)
	d1, d2 := ab.Dot(ap), ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return t.A
	}
	bp := p.Sub(t.B)
	d3, d4 := ab.Dot(bp), ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return t.B
	}
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		return t.A.Add(ab.Mul(d1 / (d1 - d3)))
	}
	cp := p.Sub(t.C)
	d5, d6 := ab.Dot(cp), ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return t.C
	}
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		return t.A.Add(ac.Mul(d2 / (d2 - d6)))
	}
	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		return t.B.Add(t.C.Sub(t.B).Mul((d4 - d3) / ((d4 - d3) + (d5 - d6))))
	}
	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return t.A.Add(ab.Mul(v)).Add(ac.Mul(w))
}

// Mesh 三角网格（用于斜坡墙体）
type Mesh struct {
	Triangles []Triangle
	bounds    AABB
}

// NewMesh 构造网格并预计算包围盒
func NewMesh(tris []Triangle) *Mesh {
	m := &Mesh{Triangles: tris}
	for i, t := range tris {
		if i == 0 {
			m.bounds = t.Bounds()
			continue
		}
		m.bounds = m.bounds.Union(t.Bounds())
	}
	return m
}

// Bounds 实现 Shape
func (m *Mesh) Bounds() AABB { return m.bounds }

// IntersectRay 实现 Shape
func (m *Mesh) IntersectRay(origin, dir mgl64.Vec3, near, far float64) (Hit, bool) {
	if _, ok := m.bounds.IntersectRay(origin, dir, near, far); !ok && !m.bounds.Contains(origin) {
		return Hit{}, false
	}
	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, t := range m.Triangles {
		if h, ok := t.IntersectRay(origin, dir, near, far); ok && h.Distance < best.Distance {
			best = h
			found = true
		}
	}
	return best, found
}

// Box 是可变位置的轴对齐盒子（动态盒体或需要更新位置的目标）
type Box struct {
	Center      mgl64.Vec3
	HalfExtents mgl64.Vec3
}

// AABB 返回当前包围盒
func (b *Box) AABB() AABB { return NewAABB(b.Center, b.HalfExtents) }

// Bounds 实现 Shape
func (b *Box) Bounds() AABB { return b.AABB() }

// IntersectRay 实现 Shape
func (b *Box) IntersectRay(origin, dir mgl64.Vec3, near, far float64) (Hit, bool) {
	return b.AABB().IntersectRay(origin, dir, near, far)
}
