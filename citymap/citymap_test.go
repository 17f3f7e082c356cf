package citymap

import (
	"testing"

	geov2 "git.fiblab.net/sim/protos/v2/go/city/geo/v2"
	mapv2 "git.fiblab.net/sim/protos/v2/go/city/map/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
)

func TestDemo(t *testing.T) {
	m := NewDemo()
	assert.Equal(t, "demo", m.Name())
	assert.Equal(t, entity.LaneTypeParking, m.LaneType(DemoParkingA))
	assert.Equal(t, entity.LaneTypeBus, m.LaneType(DemoBusB))
	assert.Len(t, m.LaneManager().Lanes(), 6)
	assert.Len(t, m.AoiManager().Aois(), 2)
	assert.Len(t, m.OverlayManager().Shapes(), 2)

	turnID := entity.TurnID{Parent: DemoJunction, Src: DemoDrivingA, Dst: DemoDrivingB}
	tr := m.Traversable(entity.OnTurn(turnID))
	assert.InDelta(t, 10, tr.Length(), 1e-9)
	assert.InDelta(t, 100, m.Traversable(entity.OnLane(DemoDrivingA)).Length(), 1e-9)

	lower, upper := m.Bound()
	assert.Equal(t, 0.0, lower.X)
	assert.Equal(t, -25.0, lower.Y)
	assert.Equal(t, 210.0, upper.X)
	assert.Equal(t, -2.0, upper.Y)

	assert.Panics(t, func() { m.LaneType(99) })
}

func TestFromPb(t *testing.T) {
	line := func(x0, x1 float64) *geov2.Polyline {
		return &geov2.Polyline{Nodes: []*geov2.XYPosition{{X: x0}, {X: x1}}}
	}
	pb := &mapv2.Map{
		Lanes: []*mapv2.Lane{
			{Id: 1, Type: mapv2.LaneType_LANE_TYPE_DRIVING, CenterLine: line(0, 10), Successors: []*mapv2.LaneConnection{{Id: 3}}},
			{Id: 2, Type: mapv2.LaneType_LANE_TYPE_DRIVING, CenterLine: line(20, 30), Predecessors: []*mapv2.LaneConnection{{Id: 3}}},
			{
				Id: 3, Type: mapv2.LaneType_LANE_TYPE_DRIVING, CenterLine: line(10, 20),
				Predecessors: []*mapv2.LaneConnection{{Id: 1}}, Successors: []*mapv2.LaneConnection{{Id: 2}},
			},
		},
		Junctions: []*mapv2.Junction{{Id: 300, LaneIds: []int32{3}}},
		Aois:      []*mapv2.Aoi{{Id: 5, Positions: []*geov2.XYPosition{{X: 5, Y: 5}}}},
	}
	m := FromPb("pb", pb, map[int32]entity.LaneType{2: entity.LaneTypeParking}, nil)
	assert.Equal(t, entity.LaneTypeParking, m.LaneType(2))
	require.Len(t, m.JunctionManager().Junctions(), 1)
	assert.False(t, m.JunctionManager().Get(300).HasTrafficLight())
	assert.Len(t, m.LaneManager().Get(1).Turns(), 1)
	assert.Empty(t, m.OverlayManager().Shapes())
}
