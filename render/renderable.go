package render

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
)

// 绘制层次，数值小的先绘制
const (
	layerArea = iota
	layerLane
	layerIntersection
	layerBuilding
	layerExtraShape
	layerCar
	layerPedestrian
)

// DrawOptions 一次绘制的参数
type DrawOptions struct {
	Palette   Palette
	CamZoom   float64
	DebugMode bool

	SuppressIntersectionIcon *entity.ID
	ColorCrosswalks          map[entity.TurnID]Color
	HideCrosswalks           map[entity.TurnID]struct{}
	HideTurnIcons            map[int32]struct{}
}

func (o DrawOptions) palette() Palette {
	if o.Palette == nil {
		return DefaultPalette{}
	}
	return o.Palette
}

// capabilities 每类对象的能力表
type capabilities struct {
	layer        int
	static       bool
	contains     func(r *Renderable, pt orb.Point) bool
	defaultColor func(r *Renderable, p Palette) Color
	draw         func(r *Renderable, b *Batch, c Color, opts DrawOptions)
}

var capTable = map[entity.Kind]*capabilities{
	entity.KindArea:         {layer: layerArea, static: true, contains: containsPolygons, defaultColor: areaColor, draw: drawShape},
	entity.KindLane:         {layer: layerLane, static: true, contains: containsPolygons, defaultColor: laneColor, draw: drawLane},
	entity.KindIntersection: {layer: layerIntersection, static: true, contains: containsPolygons, defaultColor: intersectionColor, draw: drawIntersection},
	entity.KindBuilding:     {layer: layerBuilding, static: true, contains: containsPolygons, defaultColor: buildingColor, draw: drawBuilding},
	entity.KindExtraShape:   {layer: layerExtraShape, static: true, contains: containsPolygons, defaultColor: extraShapeColor, draw: drawShape},
	entity.KindCar:          {layer: layerCar, contains: containsCar, defaultColor: carColor, draw: drawCar},
	entity.KindPedestrian:   {layer: layerPedestrian, contains: containsCircle, defaultColor: pedColor, draw: drawPed},
}

// Renderable 屏幕上可绘制、可选中的对象
// 功能：静态地图对象与动态智能体的统一表示，按Kind从能力表中取得包含测试、默认颜色与绘制方法
type Renderable struct {
	id    entity.ID
	caps  *capabilities
	bound orb.Bound

	polygons []orb.Polygon // 用于包含测试与填充
	center   orb.Point     // 代表点
	radius   float64       // 行人，或车身退化的车辆

	lane     entity.ILane
	junction entity.IJunction
	shape    entity.IShape
	car      *entity.DrawCarInput
	ped      *entity.DrawPedestrianInput
}

func newRenderable(id entity.ID) *Renderable {
	caps, ok := capTable[id.Kind]
	if !ok {
		log.Panicf("no render capabilities for %v", id.Kind)
	}
	return &Renderable{id: id, caps: caps}
}

func (r *Renderable) ID() entity.ID {
	return r.id
}

// Static 是否为静态地图对象
func (r *Renderable) Static() bool {
	return r.caps.static
}

func (r *Renderable) Layer() int {
	return r.caps.layer
}

func (r *Renderable) Bound() orb.Bound {
	return r.bound
}

// Center 对象的代表点，用于相机定位与选中时的距离比较
func (r *Renderable) Center() orb.Point {
	return r.center
}

// ContainsPt 地图坐标pt是否落在对象内
func (r *Renderable) ContainsPt(pt orb.Point) bool {
	if !r.bound.Contains(pt) {
		return false
	}
	return r.caps.contains(r, pt)
}

// DefaultColor 未被选中或插件着色时的颜色
func (r *Renderable) DefaultColor(p Palette) Color {
	return r.caps.defaultColor(r, p)
}

// Draw 输出绘制指令，color为nil时使用默认颜色
func (r *Renderable) Draw(b *Batch, color *Color, opts DrawOptions) {
	c := lo.FromPtrOr(color, r.DefaultColor(opts.palette()))
	r.caps.draw(r, b, c, opts)
	if opts.DebugMode {
		b.Text(r.center, r.id.String(), opts.palette().GetDef("debug text", Black))
	}
}

func containsPolygons(r *Renderable, pt orb.Point) bool {
	for _, p := range r.polygons {
		if planar.PolygonContains(p, pt) {
			return true
		}
	}
	return false
}

func containsCar(r *Renderable, pt orb.Point) bool {
	if len(r.polygons) == 0 {
		return containsCircle(r, pt)
	}
	return containsPolygons(r, pt)
}

func containsCircle(r *Renderable, pt orb.Point) bool {
	return planar.Distance(r.center, pt) <= r.radius
}

func (r *Renderable) fillPolygons(b *Batch, c Color) {
	id := r.id.String()
	for _, p := range r.polygons {
		b.Polygon(id, p[0], c)
	}
}

// 调试模式下绘制轮廓
func (r *Renderable) drawOutline(b *Batch, opts DrawOptions) {
	if !opts.DebugMode {
		return
	}
	c := opts.palette().GetDef("debug outline", Red)
	for _, p := range r.polygons {
		b.Line(r.id.String(), p[0], 0.2, c)
	}
}
