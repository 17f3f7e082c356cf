package render

import (
	"github.com/paulmach/orb"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
)

const (
	defaultLaneWidth = 3.0
	crosswalkWidth   = 2.0
	extraShapeWidth  = 1.0
	turnIconLength   = 3.0
	turnIconWidth    = 0.5
	lightIconRadius  = 1.5
)

func newLane(l entity.ILane) *Renderable {
	r := newRenderable(entity.LaneID(l.ID()))
	width := l.Width()
	if width <= 0 {
		width = defaultLaneWidth
	}
	r.lane = l
	r.polygons = thickPolyline(toOrbs(l.CenterLine()), width)
	r.center = toOrb(l.CenterLine()[0])
	r.bound = boundOf(r.polygons, r.center)
	return r
}

func newIntersection(j entity.IJunction) *Renderable {
	r := newRenderable(entity.IntersectionID(j.ID()))
	r.junction = j
	r.polygons = []orb.Polygon{{ringOf(j.Polygon())}}
	r.center = toOrb(j.Center())
	r.bound = boundOf(r.polygons, r.center)
	return r
}

func newBuilding(a entity.IAoi) *Renderable {
	r := newRenderable(entity.BuildingID(a.ID()))
	r.polygons = []orb.Polygon{{ringOf(a.Boundary())}}
	r.center = toOrb(a.Centroid())
	r.bound = boundOf(r.polygons, r.center)
	return r
}

func newShape(s entity.IShape) *Renderable {
	r := newRenderable(s.ID())
	r.shape = s
	if s.Closed() {
		r.polygons = []orb.Polygon{{ringOf(s.Points())}}
	} else {
		r.polygons = thickPolyline(toOrbs(s.Points()), extraShapeWidth)
	}
	r.bound = boundOf(r.polygons, toOrbs(s.Points())...)
	r.center = r.bound.Center()
	return r
}

func laneColor(r *Renderable, p Palette) Color {
	switch r.lane.Type() {
	case entity.LaneTypeParking:
		return p.GetDef("parking lane", RGB(180, 180, 180))
	case entity.LaneTypeSidewalk:
		return p.GetDef("sidewalk", RGB(204, 204, 204))
	case entity.LaneTypeBiking:
		return p.GetDef("bike lane", RGB(15, 125, 75))
	case entity.LaneTypeBus:
		return p.GetDef("bus lane", RGB(190, 74, 76))
	default:
		return p.GetDef("driving lane", Black)
	}
}

func intersectionColor(r *Renderable, p Palette) Color {
	return p.GetDef("intersection", RGB(100, 100, 100))
}

func buildingColor(r *Renderable, p Palette) Color {
	return p.GetDef("building", RGB(196, 193, 188))
}

func areaColor(r *Renderable, p Palette) Color {
	return p.GetDef("area", RGB(200, 230, 201).Alpha(0.8))
}

func extraShapeColor(r *Renderable, p Palette) Color {
	return p.GetDef("extra shape", RGB(255, 128, 0).Alpha(0.8))
}

// drawLane 车道面与末端的转向图标
func drawLane(r *Renderable, b *Batch, c Color, opts DrawOptions) {
	r.fillPolygons(b, c)
	r.drawOutline(b, opts)
	if _, hidden := opts.HideTurnIcons[r.lane.ID()]; hidden {
		return
	}
	iconColor := opts.palette().GetDef("turn icon", RGB(255, 255, 255).Alpha(0.8))
	for _, t := range r.lane.Turns() {
		s := min(turnIconLength, t.Length())
		b.Line(r.id.String(), []orb.Point{toOrb(t.GetPositionByS(0)), toOrb(t.GetPositionByS(s))}, turnIconWidth, iconColor)
	}
}

// drawIntersection 路口面、人行横道与信号灯图标
func drawIntersection(r *Renderable, b *Batch, c Color, opts DrawOptions) {
	r.fillPolygons(b, c)
	r.drawOutline(b, opts)
	p := opts.palette()
	for _, cw := range r.junction.Crosswalks() {
		if _, hidden := opts.HideCrosswalks[cw.ID()]; hidden {
			continue
		}
		cwColor, ok := opts.ColorCrosswalks[cw.ID()]
		if !ok {
			cwColor = p.GetDef("crosswalk", White)
		}
		b.Line(cw.ID().String(), toOrbs(cw.CenterLine()), crosswalkWidth, cwColor)
	}
	if !r.junction.HasTrafficLight() {
		return
	}
	if opts.SuppressIntersectionIcon != nil && *opts.SuppressIntersectionIcon == r.id {
		return
	}
	b.Circle(r.id.String(), r.center, lightIconRadius, p.GetDef("traffic light icon", RGB(255, 200, 0)))
}

func drawBuilding(r *Renderable, b *Batch, c Color, opts DrawOptions) {
	r.fillPolygons(b, c)
	r.drawOutline(b, opts)
}

func drawShape(r *Renderable, b *Batch, c Color, opts DrawOptions) {
	if r.shape.Closed() {
		r.fillPolygons(b, c)
	} else {
		b.Line(r.id.String(), toOrbs(r.shape.Points()), extraShapeWidth, c)
	}
	r.drawOutline(b, opts)
}
