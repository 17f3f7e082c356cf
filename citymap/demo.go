package citymap

import (
	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity/aoi"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity/junction"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity/lane"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity/overlay"
)

// 演示地图中的对象ID
const (
	DemoDrivingA  int32 = 1
	DemoParkingA  int32 = 2
	DemoSidewalkA int32 = 3
	DemoDrivingB  int32 = 4
	DemoBusB      int32 = 5
	DemoSidewalkB int32 = 6
	DemoTurnLane  int32 = 10
	DemoCrosswalk int32 = 11
	DemoJunction  int32 = 0
)

func segment(x0, y0, x1, y1 float64) []geometry.Point {
	return []geometry.Point{{X: x0, Y: y0}, {X: x1, Y: y1}}
}

func rect(x0, y0, x1, y1 float64) []geometry.Point {
	return []geometry.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

// NewDemo 内置的演示地图
// 两段东西向道路A(x:0~100)、B(x:110~210)经路口0相接，
// A：行车道1、停车道2、人行道3；B：行车道4、公交道5、人行道6；
// 路口内：转向1->10->4、人行横道3->11->6；另有两栋建筑、一块公园与一条公交线路
func NewDemo() *Map {
	lanes := []lane.Base{
		{ID: DemoDrivingA, Type: entity.LaneTypeDriving, Width: 3, Line: segment(0, -2, 100, -2), Successors: []int32{DemoTurnLane}},
		{ID: DemoParkingA, Type: entity.LaneTypeParking, Width: 2.5, Line: segment(0, -5, 100, -5)},
		{ID: DemoSidewalkA, Type: entity.LaneTypeSidewalk, Width: 2, Line: segment(0, -8, 100, -8), Successors: []int32{DemoCrosswalk}},
		{ID: DemoDrivingB, Type: entity.LaneTypeDriving, Width: 3, Line: segment(110, -2, 210, -2), Predecessors: []int32{DemoTurnLane}},
		{ID: DemoBusB, Type: entity.LaneTypeBus, Width: 3, Line: segment(110, -5, 210, -5)},
		{ID: DemoSidewalkB, Type: entity.LaneTypeSidewalk, Width: 2, Line: segment(110, -8, 210, -8), Predecessors: []int32{DemoCrosswalk}},
		{
			ID: DemoTurnLane, Type: entity.LaneTypeDriving, Width: 3, Line: segment(100, -2, 110, -2),
			Predecessors: []int32{DemoDrivingA}, Successors: []int32{DemoDrivingB},
		},
		{
			ID: DemoCrosswalk, Type: entity.LaneTypeSidewalk, Width: 2, Line: segment(100, -8, 110, -8),
			Predecessors: []int32{DemoSidewalkA}, Successors: []int32{DemoSidewalkB},
		},
	}
	junctions := []junction.Base{
		{ID: DemoJunction, LaneIDs: []int32{DemoTurnLane, DemoCrosswalk}, HasTrafficLight: true},
	}
	aois := []aoi.Base{
		{ID: 0, Boundary: rect(20, -20, 60, -12)},
		{ID: 1, Boundary: rect(130, -25, 170, -12)},
	}
	shapes := []overlay.Base{
		{Kind: entity.KindArea, Name: "park", Points: rect(20, 5, 80, 30), Closed: true},
		{Kind: entity.KindExtraShape, Name: "bus route", Points: segment(110, -5, 210, -5)},
	}
	return Build("demo", lanes, junctions, aois, shapes)
}
