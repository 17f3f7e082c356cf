package render

import (
	"github.com/paulmach/orb"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
)

// GetObjectsOnscreen 视野内的对象
// 功能：statics为视野内的静态对象，按绘制顺序从下到上；
// dynamics为视野内的智能体，每次根据模拟的当前状态重新构造，车辆在前、行人在后，各自保持子系统的遍历顺序
// 说明：hidden中的静态对象不返回
func GetObjectsOnscreen(
	screen orb.Bound,
	dm *DrawMap,
	sim entity.IGetDrawAgents,
	m entity.IMap,
	hidden map[entity.ID]struct{},
) (statics []*Renderable, dynamics []*Renderable) {
	statics = dm.Query(screen, hidden)
	dynamics = make([]*Renderable, 0)
	for _, d := range sim.GetAllDrawCars(m) {
		if r := NewCar(d); r.bound.Intersects(screen) {
			dynamics = append(dynamics, r)
		}
	}
	for _, d := range sim.GetAllDrawPeds(m) {
		if r := NewPedestrian(d); r.bound.Intersects(screen) {
			dynamics = append(dynamics, r)
		}
	}
	return statics, dynamics
}

// CanonicalPoint 对象的代表点，用于相机定位；对象不存在时返回false
func CanonicalPoint(id entity.ID, dm *DrawMap, sim entity.IGetDrawAgents, m entity.IMap) (orb.Point, bool) {
	switch id.Kind {
	case entity.KindCar:
		if d, ok := sim.GetDrawCar(id.Num, m); ok {
			return NewCar(d).center, true
		}
		return orb.Point{}, false
	case entity.KindPedestrian:
		if d, ok := sim.GetDrawPed(id.Num, m); ok {
			return toOrb(d.Pos), true
		}
		return orb.Point{}, false
	default:
		if r, ok := dm.Get(id); ok {
			return r.center, true
		}
		return orb.Point{}, false
	}
}
