package lane

import (
	"math"
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	geov2 "git.fiblab.net/sim/protos/v2/go/city/geo/v2"
	mapv2 "git.fiblab.net/sim/protos/v2/go/city/map/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
)

func straight(id int32, typ entity.LaneType, y float64, succ ...int32) Base {
	return Base{
		ID:         id,
		Type:       typ,
		Width:      3,
		Line:       []geometry.Point{{X: 0, Y: y}, {X: 50, Y: y}, {X: 100, Y: y}},
		Successors: succ,
	}
}

func TestLaneGeometry(t *testing.T) {
	l := newLane(Base{
		ID:   1,
		Line: []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
	})
	assert.InDelta(t, 20, l.Length(), 1e-9)

	p := l.GetPositionByS(15)
	assert.InDelta(t, 10, p.X, 1e-9)
	assert.InDelta(t, 5, p.Y, 1e-9)

	// 越界的s被截断到端点
	p = l.GetPositionByS(-3)
	assert.InDelta(t, 0, p.X, 1e-9)
	p = l.GetPositionByS(30)
	assert.InDelta(t, 10, p.Y, 1e-9)

	assert.InDelta(t, 0, l.GetDirectionByS(5).Direction, 1e-9)
	assert.InDelta(t, math.Pi/2, l.GetDirectionByS(15).Direction, 1e-9)

	assert.InDelta(t, 4, l.ProjectToLane(geometry.Point{X: 4, Y: -2}), 1e-9)
	assert.InDelta(t, 20, l.ProjectToLane(geometry.Point{X: 10, Y: 50}), 1e-9)
}

func TestLaneTooShortPanics(t *testing.T) {
	assert.Panics(t, func() {
		newLane(Base{ID: 1, Line: []geometry.Point{{X: 0, Y: 0}}})
	})
}

func TestBaseFromPb(t *testing.T) {
	pb := &mapv2.Lane{
		Id:    7,
		Type:  mapv2.LaneType_LANE_TYPE_WALKING,
		Width: 2,
		CenterLine: &geov2.Polyline{Nodes: []*geov2.XYPosition{
			{X: 0, Y: 0}, {X: 3, Y: 4},
		}},
		Successors: []*mapv2.LaneConnection{{Id: 8}},
	}
	b := BaseFromPb(pb, nil)
	assert.Equal(t, entity.LaneTypeSidewalk, b.Type)
	assert.Equal(t, []int32{8}, b.Successors)
	require.Len(t, b.Line, 2)
	assert.Equal(t, 4.0, b.Line[1].Y)

	b = BaseFromPb(pb, map[int32]entity.LaneType{7: entity.LaneTypeParking})
	assert.Equal(t, entity.LaneTypeParking, b.Type)

	pb.Type = mapv2.LaneType_LANE_TYPE_DRIVING
	assert.Equal(t, entity.LaneTypeDriving, BaseFromPb(pb, nil).Type)

	pb.Type = mapv2.LaneType_LANE_TYPE_UNSPECIFIED
	assert.Panics(t, func() { BaseFromPb(pb, nil) })
}

func TestManager(t *testing.T) {
	m := NewManager()
	m.Init([]Base{
		straight(3, entity.LaneTypeSidewalk, -8),
		straight(1, entity.LaneTypeDriving, -2, 2),
		straight(2, entity.LaneTypeParking, -5),
	})
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, entity.LaneTypeParking, m.Get(2).Type())
	_, err := m.GetOrError(9)
	assert.Error(t, err)
	assert.Panics(t, func() { m.Get(9) })

	m.Get(2).SetParentJunctionWhenInit(100)
	ids := make([]int32, 0)
	for _, l := range m.Lanes() {
		ids = append(ids, l.ID())
	}
	assert.Equal(t, []int32{1, 3}, ids)
	assert.True(t, m.Get(2).InJunction())
	assert.Equal(t, int32(-1), m.Get(1).ParentJunction())
}

func TestManagerRejectsBadTopology(t *testing.T) {
	assert.Panics(t, func() {
		NewManager().Init([]Base{straight(1, entity.LaneTypeDriving, 0, 5)})
	})
	assert.Panics(t, func() {
		NewManager().Init([]Base{
			straight(1, entity.LaneTypeDriving, 0),
			straight(1, entity.LaneTypeDriving, 3),
		})
	})
}
