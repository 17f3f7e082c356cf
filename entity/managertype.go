package entity

import (
	"git.fiblab.net/general/common/v2/geometry"
)

// 地图层依赖倒置

// 车道与转向共有的几何接口
type ITraversable interface {
	Length() float64                                      // 获取长度
	CenterLine() []geometry.Point                         // 获取中心线
	GetPositionByS(s float64) geometry.Point              // 将s坐标转换为xy坐标
	GetDirectionByS(s float64) geometry.PolylineDirection // 根据s坐标计算切向角度
}

// entity/lane/lane.go的依赖倒置
type ILane interface {
	ITraversable

	String() string

	ID() int32                                // 获取Lane ID
	Type() LaneType                           // 获取Lane类型
	Width() float64                           // 获取Lane宽度
	ParentJunction() int32                    // 所在路口ID，不在路口中为-1
	InJunction() bool                         // 是否为路口内车道
	ProjectToLane(pos geometry.Point) float64 // 将xy坐标投影到车道上，返回s坐标
	Predecessors() []int32                    // 前驱车道ID
	Successors() []int32                      // 后继车道ID
	Turns() []ITurn                           // 车道末端可执行的转向
	AddTurnWhenInit(t ITurn)                  // 初始化时登记出口转向
	SetParentJunctionWhenInit(id int32)       // 初始化时设置所在路口
}

// 路口内转向的接口
type ITurn interface {
	ITraversable

	ID() TurnID        // 获取转向ID
	LaneID() int32     // 转向对应的路口内车道ID
	IsCrosswalk() bool // 是否为人行横道
}

// entity/junction/junction.go的依赖倒置
type IJunction interface {
	ID() int32                 // 获取Junction ID
	Polygon() []geometry.Point // 路口多边形（逆时针，首尾不重复）
	Center() geometry.Point    // 路口中心
	Turns() []ITurn            // 路口内所有转向（不含人行横道）
	Crosswalks() []ITurn       // 路口内所有人行横道
	HasTrafficLight() bool     // 是否有信号灯
}

// entity/aoi/aoi.go的依赖倒置
type IAoi interface {
	ID() int32                  // 获取Aoi ID
	Boundary() []geometry.Point // 边界点列表
	Centroid() geometry.Point   // 中心点坐标
}

// entity/overlay/shape.go的依赖倒置
type IShape interface {
	ID() ID                   // KindArea或KindExtraShape
	Name() string             // 名称
	Points() []geometry.Point // 折线或多边形顶点
	Closed() bool             // 是否为闭合多边形
}

// Manager依赖倒置

// entity/lane/manager.go的依赖倒置
type ILaneManager interface {
	// 输入Lane ID，查找Lane，如果不存在则panic
	Get(id int32) ILane
	// 输入Lane ID，查找Lane，如果不存在则返回error
	GetOrError(id int32) (ILane, error)
	// 所有不在路口内的车道，按ID升序
	Lanes() []ILane
}

// entity/junction/manager.go的依赖倒置
type IJunctionManager interface {
	// 输入Junction ID，查找Junction，如果不存在则panic
	Get(id int32) IJunction
	// 输入Junction ID，查找Junction，如果不存在则返回error
	GetOrError(id int32) (IJunction, error)
	// 所有路口，按ID升序
	Junctions() []IJunction

	// 输入TurnID，查找Turn，如果不存在则panic
	Turn(id TurnID) ITurn
	// 输入TurnID，查找Turn，如果不存在则返回error
	TurnOrError(id TurnID) (ITurn, error)
}

// entity/aoi/manager.go的依赖倒置
type IAoiManager interface {
	// 输入Aoi ID，查找Aoi，如果不存在则panic
	Get(id int32) IAoi
	// 输入Aoi ID，查找Aoi，如果不存在则返回error
	GetOrError(id int32) (IAoi, error)
	// 所有Aoi，按ID升序
	Aois() []IAoi
}

// entity/overlay/manager.go的依赖倒置
type IOverlayManager interface {
	// 输入ID，查找Shape，如果不存在则返回error
	GetOrError(id ID) (IShape, error)
	// 所有Shape，面状区域在前
	Shapes() []IShape
}

// IMap 地图层对外提供的查询接口
type IMap interface {
	Name() string
	LaneManager() ILaneManager
	JunctionManager() IJunctionManager
	AoiManager() IAoiManager
	OverlayManager() IOverlayManager

	// 根据车道ID查询车道类型，车道不存在则panic
	LaneType(id int32) LaneType
	// 获取车道或转向的几何
	Traversable(on Traversable) ITraversable
}
