package render

import (
	"git.fiblab.net/general/common/v2/geometry"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/samber/lo"
)

func toOrb(p geometry.Point) orb.Point {
	return orb.Point{p.X, p.Y}
}

func toOrbs(ps []geometry.Point) []orb.Point {
	return lo.Map(ps, func(p geometry.Point, _ int) orb.Point { return toOrb(p) })
}

// ringOf 由顶点构造闭合的环
func ringOf(ps []geometry.Point) orb.Ring {
	ring := orb.Ring(toOrbs(ps))
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}

// thickPolyline 将折线按宽度展开为每段一个矩形
// 说明：长度为0的段被跳过
func thickPolyline(ps []orb.Point, width float64) []orb.Polygon {
	half := width / 2
	polys := make([]orb.Polygon, 0, len(ps))
	for i := 1; i < len(ps); i++ {
		a, b := ps[i-1], ps[i]
		length := planar.Distance(a, b)
		if length == 0 {
			continue
		}
		nx, ny := -(b[1]-a[1])/length*half, (b[0]-a[0])/length*half
		polys = append(polys, orb.Polygon{orb.Ring{
			{a[0] + nx, a[1] + ny},
			{b[0] + nx, b[1] + ny},
			{b[0] - nx, b[1] - ny},
			{a[0] - nx, a[1] - ny},
			{a[0] + nx, a[1] + ny},
		}})
	}
	return polys
}

func boundOf(polys []orb.Polygon, extra ...orb.Point) orb.Bound {
	mp := orb.MultiPoint(extra)
	for _, p := range polys {
		for _, r := range p {
			mp = append(mp, r...)
		}
	}
	return mp.Bound()
}

func circleBound(c orb.Point, r float64) orb.Bound {
	return orb.Bound{Min: orb.Point{c[0] - r, c[1] - r}, Max: orb.Point{c[0] + r, c[1] + r}}
}
