package lane

import (
	"fmt"
	"sort"

	"git.fiblab.net/general/common/v2/geometry"
	geov2 "git.fiblab.net/sim/protos/v2/go/city/geo/v2"
	mapv2 "git.fiblab.net/sim/protos/v2/go/city/map/v2"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
)

// Base 车道的基础数据
// 功能：与protobuf解耦的车道描述，既可由地图文件转换得到，也可在测试中手工构造
type Base struct {
	ID           int32
	Type         entity.LaneType
	Width        float64
	Line         []geometry.Point // 中心线，至少2个点
	Predecessors []int32
	Successors   []int32
}

// BaseFromPb 将protobuf车道转换为Base
// 功能：WALKING映射为人行道，DRIVING映射为机动车道，overrides中的配置优先
// 说明：未知车道类型视为地图数据错误，直接panic
func BaseFromPb(pb *mapv2.Lane, overrides map[int32]entity.LaneType) Base {
	b := Base{
		ID:    pb.Id,
		Width: pb.Width,
		Line: lo.Map(pb.CenterLine.GetNodes(), func(node *geov2.XYPosition, _ int) geometry.Point {
			return geometry.NewPointFromPb(node)
		}),
		Predecessors: lo.Map(pb.Predecessors, func(c *mapv2.LaneConnection, _ int) int32 { return c.Id }),
		Successors:   lo.Map(pb.Successors, func(c *mapv2.LaneConnection, _ int) int32 { return c.Id }),
	}
	if t, ok := overrides[pb.Id]; ok {
		b.Type = t
		return b
	}
	switch pb.Type {
	case mapv2.LaneType_LANE_TYPE_DRIVING:
		b.Type = entity.LaneTypeDriving
	case mapv2.LaneType_LANE_TYPE_WALKING:
		b.Type = entity.LaneTypeSidewalk
	default:
		log.Panicf("bad type %v for lane %d", pb.Type, pb.Id)
	}
	return b
}

// Lane 车道实体
// 功能：提供车道几何查询（s坐标与xy坐标互转、切向）与拓扑信息
type Lane struct {
	id             int32
	typ            entity.LaneType
	width          float64
	predecessors   []int32
	successors     []int32
	parentJunction int32 // 所在路口，-1表示不在路口内
	turns          []entity.ITurn

	line           []geometry.Point             // 中心线
	lineLengths    []float64                    // 中心线折线点对应的长度列表
	lineDirections []geometry.PolylineDirection // 中心线每一段的方向
	length         float64                      // 以中心线长度为车道长度
}

func newLane(base Base) *Lane {
	if len(base.Line) < 2 {
		log.Panicf("lane %d: center line needs at least 2 points, got %d", base.ID, len(base.Line))
	}
	l := &Lane{
		id:             base.ID,
		typ:            base.Type,
		width:          base.Width,
		predecessors:   base.Predecessors,
		successors:     base.Successors,
		parentJunction: -1,
		turns:          make([]entity.ITurn, 0),
		line:           base.Line,
	}
	l.lineLengths = geometry.GetPolylineLengths2D(l.line)
	l.length = l.lineLengths[len(l.lineLengths)-1]
	l.lineDirections = geometry.GetPolylineDirections(l.line)
	return l
}

func (l *Lane) String() string {
	return fmt.Sprintf("Lane(%d, %v)", l.id, l.typ)
}

func (l *Lane) ID() int32 {
	return l.id
}

func (l *Lane) Type() entity.LaneType {
	return l.typ
}

func (l *Lane) Width() float64 {
	return l.width
}

func (l *Lane) Length() float64 {
	return l.length
}

func (l *Lane) CenterLine() []geometry.Point {
	return l.line
}

func (l *Lane) Predecessors() []int32 {
	return l.predecessors
}

func (l *Lane) Successors() []int32 {
	return l.successors
}

func (l *Lane) ParentJunction() int32 {
	return l.parentJunction
}

func (l *Lane) InJunction() bool {
	return l.parentJunction >= 0
}

// Turns 车道末端可执行的转向（不含人行横道）
func (l *Lane) Turns() []entity.ITurn {
	return l.turns
}

// AddTurnWhenInit 由路口管理器在初始化时调用
func (l *Lane) AddTurnWhenInit(t entity.ITurn) {
	l.turns = append(l.turns, t)
}

// SetParentJunctionWhenInit 由路口管理器在初始化时调用
func (l *Lane) SetParentJunctionWhenInit(id int32) {
	l.parentJunction = id
}

// GetDirectionByS 根据s坐标计算切向
func (l *Lane) GetDirectionByS(s float64) (direction geometry.PolylineDirection) {
	s = l.clampS(s)
	if i := sort.SearchFloat64s(l.lineLengths, s); i == 0 {
		direction = l.lineDirections[0]
	} else {
		direction = l.lineDirections[i-1]
	}
	return
}

// GetPositionByS 将s坐标转换为xy坐标
func (l *Lane) GetPositionByS(s float64) (pos geometry.Point) {
	s = l.clampS(s)
	if i := sort.SearchFloat64s(l.lineLengths, s); i == 0 {
		pos = l.line[0]
	} else {
		sHigh, sLow := l.lineLengths[i], l.lineLengths[i-1]
		k := (s - sLow) / (sHigh - sLow)
		if k < 0 || k > 1 {
			log.Panicf("lane: GetPositionByS(), bad k %v. sHigh=%f, sLow=%f, s=%f", k, sHigh, sLow, s)
		}
		pos = geometry.Blend(l.line[i-1], l.line[i], k)
	}
	return
}

// ProjectToLane 将xy坐标投影到车道中心线上，返回s坐标
func (l *Lane) ProjectToLane(pos geometry.Point) float64 {
	s := geometry.GetClosestPolylineSToPoint2D(l.line, l.lineLengths, pos)
	return lo.Clamp(s, 0, l.length)
}

func (l *Lane) clampS(s float64) float64 {
	if s < l.lineLengths[0] || s > l.length {
		log.Debugf("lane %d: s %v out of range{%v,%v}", l.id, s, l.lineLengths[0], l.length)
		s = lo.Clamp(s, l.lineLengths[0], l.length)
	}
	return s
}
