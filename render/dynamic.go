package render

import (
	"github.com/paulmach/orb"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
)

const (
	carWidth        = 2.0
	busWidth        = 2.5
	bikeWidth       = 0.8
	pedRadius       = 0.75
	traceWidth      = 0.5
	turnSignalSize  = 0.5
	preparingRadius = 1.0
)

// NewCar 由车辆绘制信息构造可绘制对象
func NewCar(d entity.DrawCarInput) *Renderable {
	r := newRenderable(entity.CarID(d.ID))
	r.car = &d
	width := carWidth
	switch d.VehicleType {
	case entity.VehicleTypeBus:
		width = busWidth
	case entity.VehicleTypeBike:
		width = bikeWidth
	}
	body := toOrbs(d.Body)
	r.polygons = thickPolyline(body, width)
	if len(body) > 0 {
		r.center = body[len(body)-1]
	}
	r.bound = boundOf(r.polygons, body...)
	if len(r.polygons) == 0 {
		// 车身退化为一点时按圆处理
		r.radius = width / 2
		r.bound = circleBound(r.center, r.radius)
	}
	return r
}

// NewPedestrian 由行人绘制信息构造可绘制对象
func NewPedestrian(d entity.DrawPedestrianInput) *Renderable {
	r := newRenderable(entity.PedestrianID(d.ID))
	r.ped = &d
	r.center = toOrb(d.Pos)
	r.radius = pedRadius
	r.bound = circleBound(r.center, r.radius)
	return r
}

func carColor(r *Renderable, p Palette) Color {
	switch r.car.Status {
	case entity.CarStatusStuck:
		return p.GetDef("stuck car", RGB(222, 0, 0))
	case entity.CarStatusParked:
		return p.GetDef("parked car", RGB(180, 233, 76))
	case entity.CarStatusDebug:
		return p.GetDef("debug car", RGB(0, 0, 255).Alpha(0.8))
	}
	switch r.car.VehicleType {
	case entity.VehicleTypeBus:
		return p.GetDef("bus", RGB(50, 133, 117))
	case entity.VehicleTypeBike:
		return p.GetDef("bike", RGB(15, 125, 75))
	default:
		return p.GetDef("moving car", RGB(0, 200, 255))
	}
}

func pedColor(r *Renderable, p Palette) Color {
	if r.ped.PreparingBike {
		return p.GetDef("pedestrian preparing bike", RGB(255, 0, 144))
	}
	return p.GetDef("pedestrian", RGB(49, 84, 255))
}

// drawCar 车身，刹车轨迹与等待转向的提示
func drawCar(r *Renderable, b *Batch, c Color, opts DrawOptions) {
	p := opts.palette()
	if len(r.car.StoppingTrace) > 1 {
		b.Line(r.id.String(), toOrbs(r.car.StoppingTrace), traceWidth, p.GetDef("car stopping trace", Red.Alpha(0.5)))
	}
	if len(r.polygons) == 0 {
		b.Circle(r.id.String(), r.center, r.radius, c)
	}
	r.fillPolygons(b, c)
	r.drawOutline(b, opts)
	if r.car.WaitingForTurn != nil {
		b.Circle(r.id.String(), r.center, turnSignalSize, p.GetDef("car turn signal", RGB(255, 200, 0)))
	}
}

func drawPed(r *Renderable, b *Batch, c Color, opts DrawOptions) {
	b.Circle(r.id.String(), r.center, r.radius, c)
	if r.ped.PreparingBike {
		b.Line(r.id.String(), []orb.Point{
			{r.center[0] - preparingRadius, r.center[1]},
			{r.center[0] + preparingRadius, r.center[1]},
		}, traceWidth, c)
	}
	if r.ped.WaitingForTurn != nil {
		b.Circle(r.id.String(), r.center, turnSignalSize/2, opts.palette().GetDef("pedestrian turn signal", White))
	}
}

// CarInput 车辆对象的绘制信息，非车辆对象返回nil
func (r *Renderable) CarInput() *entity.DrawCarInput {
	return r.car
}

// PedInput 行人对象的绘制信息，非行人对象返回nil
func (r *Renderable) PedInput() *entity.DrawPedestrianInput {
	return r.ped
}
