package junction

import (
	"fmt"
	"slices"
	"sort"

	"git.fiblab.net/general/common/v2/geometry"
	mapv2 "git.fiblab.net/sim/protos/v2/go/city/map/v2"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
)

// Base 路口的基础数据
type Base struct {
	ID              int32
	LaneIDs         []int32 // 路口内车道
	HasTrafficLight bool
}

// BaseFromPb 将protobuf路口转换为Base，存在固定信号灯程序时显示信号灯图标
func BaseFromPb(pb *mapv2.Junction) Base {
	return Base{
		ID:              pb.Id,
		LaneIDs:         pb.LaneIds,
		HasTrafficLight: pb.FixedProgram != nil && len(pb.FixedProgram.Phases) > 0,
	}
}

// Junction 路口
// 功能：持有路口内的转向与人行横道，提供绘制与选中所需的多边形
type Junction struct {
	id              int32
	hasTrafficLight bool
	turns           []entity.ITurn // 按TurnID排序
	crosswalks      []entity.ITurn // 按TurnID排序
	polygon         []geometry.Point
	center          geometry.Point
}

// newJunction 创建路口并登记其中的转向
// 说明：路口内车道必须有前驱与后继，否则无法确定转向ID，此类车道被忽略
func newJunction(base Base, laneManager entity.ILaneManager) *Junction {
	j := &Junction{
		id:              base.ID,
		hasTrafficLight: base.HasTrafficLight,
		turns:           make([]entity.ITurn, 0),
		crosswalks:      make([]entity.ITurn, 0),
	}
	seen := make(map[entity.TurnID]int32)
	endpoints := make([]geometry.Point, 0, 2*len(base.LaneIDs))
	for _, laneID := range base.LaneIDs {
		lane := laneManager.Get(laneID)
		lane.SetParentJunctionWhenInit(j.id)
		line := lane.CenterLine()
		endpoints = append(endpoints, line[0], line[len(line)-1])

		src, dst, ok := turnEnds(lane)
		if !ok {
			log.Warnf("junction %d: lane %d has no predecessor or successor, skip", j.id, laneID)
			continue
		}
		id := entity.TurnID{Parent: j.id, Src: src, Dst: dst}
		if other, ok := seen[id]; ok {
			log.Warnf("junction %d: lane %d duplicates %v of lane %d, skip", j.id, laneID, id, other)
			continue
		}
		seen[id] = laneID
		t := &Turn{id: id, lane: lane}
		if t.IsCrosswalk() {
			j.crosswalks = append(j.crosswalks, t)
		} else {
			j.turns = append(j.turns, t)
			laneManager.Get(src).AddTurnWhenInit(t)
		}
	}
	sortTurns(j.turns)
	sortTurns(j.crosswalks)
	j.polygon = convexHull(endpoints)
	if len(j.polygon) < 3 {
		j.polygon = squareAround(meanPoint(endpoints), minJunctionHalfSize)
	}
	j.center = geometry.GetPolygonCentroid2D(append(slices.Clone(j.polygon), j.polygon[0]))
	return j
}

// turnEnds 转向的来源与去向车道，多个前驱/后继时取ID最小者
func turnEnds(lane entity.ILane) (src, dst int32, ok bool) {
	pre, suc := lane.Predecessors(), lane.Successors()
	if len(pre) == 0 || len(suc) == 0 {
		return 0, 0, false
	}
	src, dst = pre[0], suc[0]
	for _, id := range pre {
		src = min(src, id)
	}
	for _, id := range suc {
		dst = min(dst, id)
	}
	return src, dst, true
}

func sortTurns(turns []entity.ITurn) {
	sort.Slice(turns, func(i, k int) bool {
		a, b := turns[i].ID(), turns[k].ID()
		if a.Src != b.Src {
			return a.Src < b.Src
		}
		return a.Dst < b.Dst
	})
}

func (j *Junction) String() string {
	return fmt.Sprintf("Junction(%d)", j.id)
}

func (j *Junction) ID() int32 {
	return j.id
}

func (j *Junction) Polygon() []geometry.Point {
	return j.polygon
}

func (j *Junction) Center() geometry.Point {
	return j.center
}

func (j *Junction) Turns() []entity.ITurn {
	return j.turns
}

func (j *Junction) Crosswalks() []entity.ITurn {
	return j.crosswalks
}

func (j *Junction) HasTrafficLight() bool {
	return j.hasTrafficLight
}
