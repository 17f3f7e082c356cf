package aoi

import (
	"fmt"
	"slices"

	"git.fiblab.net/general/common/v2/geometry"
	geov2 "git.fiblab.net/sim/protos/v2/go/city/geo/v2"
	mapv2 "git.fiblab.net/sim/protos/v2/go/city/map/v2"
	"github.com/samber/lo"
)

const pointAoiHalfSize = 5.0 // 点状AOI绘制为正方形的半边长(m)

// Base AOI的基础数据
type Base struct {
	ID       int32
	Boundary []geometry.Point // 边界点，首尾可以重复
}

func BaseFromPb(pb *mapv2.Aoi) Base {
	return Base{
		ID: pb.Id,
		Boundary: lo.Map(pb.Positions, func(p *geov2.XYPosition, _ int) geometry.Point {
			return geometry.NewPointFromPb(p)
		}),
	}
}

// Aoi 建筑物（Area of Interest）
type Aoi struct {
	id       int32
	centroid geometry.Point
	boundary []geometry.Point // 首尾不重复
}

// newAoi 创建AOI
// 说明：点状AOI没有面积，以其位置为中心生成一个正方形边界
func newAoi(base Base) *Aoi {
	boundary := base.Boundary
	if n := len(boundary); n > 1 && boundary[0] == boundary[n-1] {
		boundary = boundary[:n-1]
	}
	a := &Aoi{id: base.ID}
	switch len(boundary) {
	case 0:
		log.Panicf("aoi %d has no position", base.ID)
	case 1, 2:
		c := boundary[0]
		a.boundary = []geometry.Point{
			{X: c.X - pointAoiHalfSize, Y: c.Y - pointAoiHalfSize},
			{X: c.X + pointAoiHalfSize, Y: c.Y - pointAoiHalfSize},
			{X: c.X + pointAoiHalfSize, Y: c.Y + pointAoiHalfSize},
			{X: c.X - pointAoiHalfSize, Y: c.Y + pointAoiHalfSize},
		}
	default:
		a.boundary = boundary
	}
	a.centroid = geometry.GetPolygonCentroid2D(append(slices.Clone(a.boundary), a.boundary[0]))
	return a
}

func (a *Aoi) String() string {
	return fmt.Sprintf("Aoi(%d)", a.id)
}

func (a *Aoi) ID() int32 {
	return a.id
}

// Boundary 边界点，首尾不重复
func (a *Aoi) Boundary() []geometry.Point {
	return a.boundary
}

func (a *Aoi) Centroid() geometry.Point {
	return a.centroid
}
