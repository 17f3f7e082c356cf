package citymap

import (
	"git.fiblab.net/general/common/v2/geometry"
	mapv2 "git.fiblab.net/sim/protos/v2/go/city/map/v2"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity/aoi"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity/junction"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity/lane"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity/overlay"
)

// Map 静态地图
// 功能：聚合车道、路口、建筑与叠加图形的管理器，创建后只读
type Map struct {
	name            string
	laneManager     *lane.LaneManager
	junctionManager *junction.JunctionManager
	aoiManager      *aoi.AoiManager
	overlayManager  *overlay.OverlayManager
}

// Build 由基础数据构建地图
// 说明：车道必须先于路口初始化，路口初始化时会回填车道的所在路口与出口转向
func Build(name string, lanes []lane.Base, junctions []junction.Base, aois []aoi.Base, shapes []overlay.Base) *Map {
	m := &Map{
		name:            name,
		laneManager:     lane.NewManager(),
		junctionManager: junction.NewManager(),
		aoiManager:      aoi.NewManager(),
		overlayManager:  overlay.NewManager(),
	}
	m.laneManager.Init(lanes)
	m.junctionManager.Init(junctions, m.laneManager)
	m.aoiManager.Init(aois)
	m.overlayManager.Init(shapes)
	log.Infof("map %s: %d lanes, %d junctions, %d buildings, %d overlay shapes",
		name, m.laneManager.Len(), len(junctions), len(aois), len(shapes))
	return m
}

// FromPb 由城市地图protobuf构建地图，overrides为按车道ID指定的车道类型
func FromPb(name string, pb *mapv2.Map, overrides map[int32]entity.LaneType, shapes []overlay.Base) *Map {
	return Build(
		name,
		lo.Map(pb.Lanes, func(l *mapv2.Lane, _ int) lane.Base { return lane.BaseFromPb(l, overrides) }),
		lo.Map(pb.Junctions, func(j *mapv2.Junction, _ int) junction.Base { return junction.BaseFromPb(j) }),
		lo.Map(pb.Aois, func(a *mapv2.Aoi, _ int) aoi.Base { return aoi.BaseFromPb(a) }),
		shapes,
	)
}

func (m *Map) Name() string {
	return m.name
}

func (m *Map) LaneManager() entity.ILaneManager {
	return m.laneManager
}

func (m *Map) JunctionManager() entity.IJunctionManager {
	return m.junctionManager
}

func (m *Map) AoiManager() entity.IAoiManager {
	return m.aoiManager
}

func (m *Map) OverlayManager() entity.IOverlayManager {
	return m.overlayManager
}

// LaneType 车道类型，车道不存在则panic
func (m *Map) LaneType(id int32) entity.LaneType {
	return m.laneManager.Get(id).Type()
}

// Traversable 获取车道或转向的几何，不存在则panic
func (m *Map) Traversable(on entity.Traversable) entity.ITraversable {
	if on.IsTurn {
		return m.junctionManager.Turn(on.Turn)
	}
	return m.laneManager.Get(on.Lane)
}

// Bound 地图范围（左下角，右上角），空地图返回两个零点
func (m *Map) Bound() (geometry.Point, geometry.Point) {
	points := make([]geometry.Point, 0)
	for _, l := range m.laneManager.Lanes() {
		points = append(points, l.CenterLine()...)
	}
	for _, a := range m.aoiManager.Aois() {
		points = append(points, a.Boundary()...)
	}
	if len(points) == 0 {
		return geometry.Point{}, geometry.Point{}
	}
	lower, upper := points[0], points[0]
	for _, p := range points[1:] {
		lower.X, lower.Y = min(lower.X, p.X), min(lower.Y, p.Y)
		upper.X, upper.Y = max(upper.X, p.X), max(upper.Y, p.Y)
	}
	return lower, upper
}
