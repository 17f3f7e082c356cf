package entity

import (
	"fmt"

	"git.fiblab.net/general/common/v2/geometry"
)

// 可选中对象的类别
type Kind int32

const (
	KindLane Kind = iota
	KindIntersection
	KindBuilding
	KindCar
	KindPedestrian
	KindExtraShape
	KindArea
)

func (k Kind) String() string {
	switch k {
	case KindLane:
		return "Lane"
	case KindIntersection:
		return "Intersection"
	case KindBuilding:
		return "Building"
	case KindCar:
		return "Car"
	case KindPedestrian:
		return "Pedestrian"
	case KindExtraShape:
		return "ExtraShape"
	case KindArea:
		return "Area"
	default:
		return fmt.Sprintf("Kind(%d)", int32(k))
	}
}

// ID 可选中对象的统一标识
// 功能：静态地图对象与动态智能体共用一套寻址方式，按(Kind, Num)比较相等
// 说明：ID可直接作为map的key使用
type ID struct {
	Kind Kind
	Num  int32
}

func (id ID) String() string {
	return fmt.Sprintf("%v %d", id.Kind, id.Num)
}

// Less 按(Kind, Num)排序，用于需要确定顺序的场合
func (id ID) Less(other ID) bool {
	if id.Kind != other.Kind {
		return id.Kind < other.Kind
	}
	return id.Num < other.Num
}

func LaneID(id int32) ID         { return ID{Kind: KindLane, Num: id} }
func IntersectionID(id int32) ID { return ID{Kind: KindIntersection, Num: id} }
func BuildingID(id int32) ID     { return ID{Kind: KindBuilding, Num: id} }
func CarID(id int32) ID          { return ID{Kind: KindCar, Num: id} }
func PedestrianID(id int32) ID   { return ID{Kind: KindPedestrian, Num: id} }
func ExtraShapeID(id int32) ID   { return ID{Kind: KindExtraShape, Num: id} }
func AreaID(id int32) ID         { return ID{Kind: KindArea, Num: id} }

// TurnID 路口内的转向：所在路口 + 来源车道 + 去向车道
type TurnID struct {
	Parent int32 // 路口ID
	Src    int32 // 来源车道ID
	Dst    int32 // 去向车道ID
}

func (t TurnID) String() string {
	return fmt.Sprintf("Turn(%d, %d->%d)", t.Parent, t.Src, t.Dst)
}

// Traversable 智能体可占据的路段：车道或转向二选一
type Traversable struct {
	Lane   int32
	Turn   TurnID
	IsTurn bool
}

func OnLane(id int32) Traversable {
	return Traversable{Lane: id}
}

func OnTurn(t TurnID) Traversable {
	return Traversable{Turn: t, IsTurn: true}
}

func (t Traversable) String() string {
	if t.IsTurn {
		return t.Turn.String()
	}
	return fmt.Sprintf("Lane(%d)", t.Lane)
}

// 车道类型
type LaneType int32

const (
	LaneTypeDriving LaneType = iota
	LaneTypeParking
	LaneTypeSidewalk
	LaneTypeBiking
	LaneTypeBus
)

var laneTypeNames = map[LaneType]string{
	LaneTypeDriving:  "driving",
	LaneTypeParking:  "parking",
	LaneTypeSidewalk: "sidewalk",
	LaneTypeBiking:   "biking",
	LaneTypeBus:      "bus",
}

func (t LaneType) String() string {
	if name, ok := laneTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("LaneType(%d)", int32(t))
}

// ParseLaneType 将配置文件中的车道类型名解析为LaneType
func ParseLaneType(name string) (LaneType, error) {
	for t, n := range laneTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown lane type %q", name)
}

// 车辆绘制状态
type CarStatus int32

const (
	CarStatusMoving CarStatus = iota
	CarStatusStuck
	CarStatusParked
	CarStatusDebug
)

func (s CarStatus) String() string {
	switch s {
	case CarStatusMoving:
		return "Moving"
	case CarStatusStuck:
		return "Stuck"
	case CarStatusParked:
		return "Parked"
	case CarStatusDebug:
		return "Debug"
	default:
		return fmt.Sprintf("CarStatus(%d)", int32(s))
	}
}

// 车辆类型
type VehicleType int32

const (
	VehicleTypeCar VehicleType = iota
	VehicleTypeBus
	VehicleTypeBike
)

func (t VehicleType) String() string {
	switch t {
	case VehicleTypeCar:
		return "Car"
	case VehicleTypeBus:
		return "Bus"
	case VehicleTypeBike:
		return "Bike"
	default:
		return fmt.Sprintf("VehicleType(%d)", int32(t))
	}
}

// 折线
type PolyLine = []geometry.Point

// Trace 车辆减速停车将经过的路径
type Trace []geometry.Point

// 绘制层与模拟层之间的中间结构，避免两者互相依赖

// DrawCarInput 绘制一辆车所需的全部信息
type DrawCarInput struct {
	ID             int32
	WaitingForTurn *TurnID   // 等待执行的转向
	StoppingTrace  Trace     // 刹车时的停车轨迹，不刹车时为nil
	Status         CarStatus // 状态
	VehicleType    VehicleType
	On             Traversable
	Body           PolyLine // 车身折线，从车尾开始
}

// DrawPedestrianInput 绘制一个行人所需的全部信息
type DrawPedestrianInput struct {
	ID             int32
	Pos            geometry.Point
	WaitingForTurn *TurnID
	PreparingBike  bool // 即将改为骑行
	On             Traversable
}
