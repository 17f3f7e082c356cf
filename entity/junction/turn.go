package junction

import (
	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
)

// Turn 路口内的转向，几何取自对应的路口内车道
type Turn struct {
	id   entity.TurnID
	lane entity.ILane
}

func (t *Turn) String() string {
	return t.id.String()
}

func (t *Turn) ID() entity.TurnID {
	return t.id
}

func (t *Turn) LaneID() int32 {
	return t.lane.ID()
}

// IsCrosswalk 路口内的人行道即人行横道
func (t *Turn) IsCrosswalk() bool {
	return t.lane.Type() == entity.LaneTypeSidewalk
}

func (t *Turn) Length() float64 {
	return t.lane.Length()
}

func (t *Turn) CenterLine() []geometry.Point {
	return t.lane.CenterLine()
}

func (t *Turn) GetPositionByS(s float64) geometry.Point {
	return t.lane.GetPositionByS(s)
}

func (t *Turn) GetDirectionByS(s float64) geometry.PolylineDirection {
	return t.lane.GetDirectionByS(s)
}
