package render

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/citymap"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity/driving"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity/parking"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity/walking"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/sim"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/utils/config"
)

var demoTurn = entity.TurnID{Parent: citymap.DemoJunction, Src: citymap.DemoDrivingA, Dst: citymap.DemoDrivingB}
var demoCrosswalk = entity.TurnID{Parent: citymap.DemoJunction, Src: citymap.DemoSidewalkA, Dst: citymap.DemoSidewalkB}

func whole() orb.Bound {
	return orb.Bound{Min: orb.Point{-1000, -1000}, Max: orb.Point{1000, 1000}}
}

func newTestWorld(t *testing.T) (*citymap.Map, *DrawMap, *sim.Sim) {
	m := citymap.NewDemo()
	s := sim.New(sim.Flags{Step: config.ControlStep{Interval: 1}})
	require.NoError(t, s.Driving().Add(
		&driving.Car{ID: 1, Status: entity.CarStatusMoving, Len: 4.5, Speed: 10},
		entity.OnLane(citymap.DemoDrivingA), 40, m,
	))
	require.NoError(t, s.Parking().Park(&parking.ParkedCar{ID: 2, Len: 4.5, Lane: citymap.DemoParkingA, Spot: 1}, m))
	require.NoError(t, s.Walking().Add(&walking.Pedestrian{ID: 1, Speed: 1}, entity.OnLane(citymap.DemoSidewalkB), 30, m))
	return m, NewDrawMap(m), s
}

func ids(rs []*Renderable) []entity.ID {
	return lo.Map(rs, func(r *Renderable, _ int) entity.ID { return r.ID() })
}

func TestDrawMapOrder(t *testing.T) {
	_, dm, _ := newTestWorld(t)
	assert.Equal(t, 6+1+2+2, dm.Len())

	got := ids(dm.Query(whole(), nil))
	assert.Equal(t, []entity.ID{
		entity.AreaID(0),
		entity.LaneID(1), entity.LaneID(2), entity.LaneID(3), entity.LaneID(4), entity.LaneID(5), entity.LaneID(6),
		entity.IntersectionID(0),
		entity.BuildingID(0), entity.BuildingID(1),
		entity.ExtraShapeID(0),
	}, got)

	for _, r := range dm.Query(whole(), nil) {
		assert.True(t, r.Static())
	}
}

func TestDrawMapQueryCulls(t *testing.T) {
	_, dm, _ := newTestWorld(t)
	view := orb.Bound{Min: orb.Point{25, -18}, Max: orb.Point{30, -15}}
	assert.Equal(t, []entity.ID{entity.BuildingID(0)}, ids(dm.Query(view, nil)))

	hidden := map[entity.ID]struct{}{entity.BuildingID(0): {}}
	assert.Empty(t, dm.Query(view, hidden))

	far := orb.Bound{Min: orb.Point{5000, 5000}, Max: orb.Point{5100, 5100}}
	assert.Empty(t, dm.Query(far, nil))
}

func TestGetObjectsOnscreen(t *testing.T) {
	m, dm, s := newTestWorld(t)
	statics, dynamics := GetObjectsOnscreen(whole(), dm, s, m, nil)
	assert.Len(t, statics, dm.Len())
	assert.Equal(t, []entity.ID{entity.CarID(1), entity.CarID(2), entity.PedestrianID(1)}, ids(dynamics))
	for _, r := range dynamics {
		assert.False(t, r.Static())
	}

	// 只看A路西段，行人在B路上不可见
	view := orb.Bound{Min: orb.Point{0, -10}, Max: orb.Point{50, 0}}
	_, dynamics = GetObjectsOnscreen(view, dm, s, m, nil)
	assert.Equal(t, []entity.ID{entity.CarID(1), entity.CarID(2)}, ids(dynamics))
}

func TestGetObjectsOnscreenIdempotent(t *testing.T) {
	m, dm, s := newTestWorld(t)
	view := orb.Bound{Min: orb.Point{0, -30}, Max: orb.Point{150, 10}}
	s1, d1 := GetObjectsOnscreen(view, dm, s, m, nil)
	s2, d2 := GetObjectsOnscreen(view, dm, s, m, nil)
	assert.Equal(t, s1, s2)
	assert.ElementsMatch(t, ids(d1), ids(d2))
	assert.Equal(t, d1, d2)
}

func TestContainsPt(t *testing.T) {
	m, dm, s := newTestWorld(t)
	lane, ok := dm.Get(entity.LaneID(citymap.DemoDrivingA))
	require.True(t, ok)
	assert.True(t, lane.ContainsPt(orb.Point{50, -2.5}))
	assert.False(t, lane.ContainsPt(orb.Point{50, -4}))

	b, _ := dm.Get(entity.BuildingID(0))
	assert.True(t, b.ContainsPt(orb.Point{40, -15}))
	assert.False(t, b.ContainsPt(orb.Point{10, -15}))

	route, _ := dm.Get(entity.ExtraShapeID(0))
	assert.True(t, route.ContainsPt(orb.Point{150, -5.3}))
	assert.False(t, route.ContainsPt(orb.Point{150, -6}))

	_, dynamics := GetObjectsOnscreen(whole(), dm, s, m, nil)
	car := dynamics[0]
	assert.True(t, car.ContainsPt(orb.Point{38, -2}))
	assert.False(t, car.ContainsPt(orb.Point{41, -2}))
	ped := dynamics[2]
	assert.True(t, ped.ContainsPt(orb.Point{140.5, -8}))
	assert.False(t, ped.ContainsPt(orb.Point{142, -8}))
}

func commandsFor(b *Batch, id string) []Command {
	return lo.Filter(b.Commands, func(c Command, _ int) bool { return c.ID == id })
}

func TestDrawIntersectionHints(t *testing.T) {
	_, dm, _ := newTestWorld(t)
	r, _ := dm.Get(entity.IntersectionID(citymap.DemoJunction))

	var b Batch
	r.Draw(&b, nil, DrawOptions{})
	require.Len(t, commandsFor(&b, demoCrosswalk.String()), 1)
	assert.Equal(t, White, commandsFor(&b, demoCrosswalk.String())[0].Color)
	circles := lo.Filter(b.Commands, func(c Command, _ int) bool { return c.Op == OpCircle })
	assert.Len(t, circles, 1)

	b = Batch{}
	r.Draw(&b, nil, DrawOptions{ColorCrosswalks: map[entity.TurnID]Color{demoCrosswalk: Green}})
	assert.Equal(t, Green, commandsFor(&b, demoCrosswalk.String())[0].Color)

	b = Batch{}
	id := entity.IntersectionID(citymap.DemoJunction)
	r.Draw(&b, nil, DrawOptions{
		HideCrosswalks:           map[entity.TurnID]struct{}{demoCrosswalk: {}},
		SuppressIntersectionIcon: &id,
	})
	assert.Empty(t, commandsFor(&b, demoCrosswalk.String()))
	assert.Empty(t, lo.Filter(b.Commands, func(c Command, _ int) bool { return c.Op == OpCircle }))
}

func TestDrawLaneTurnIcons(t *testing.T) {
	_, dm, _ := newTestWorld(t)
	r, _ := dm.Get(entity.LaneID(citymap.DemoDrivingA))
	lines := func(b *Batch) int {
		return len(lo.Filter(b.Commands, func(c Command, _ int) bool { return c.Op == OpLine }))
	}

	var b Batch
	r.Draw(&b, nil, DrawOptions{})
	assert.Equal(t, 1, lines(&b))

	b = Batch{}
	r.Draw(&b, nil, DrawOptions{HideTurnIcons: map[int32]struct{}{citymap.DemoDrivingA: {}}})
	assert.Equal(t, 0, lines(&b))

	b = Batch{}
	selected := Blue
	r.Draw(&b, &selected, DrawOptions{DebugMode: true})
	assert.Equal(t, Blue, b.Commands[0].Color)
	assert.Equal(t, OpText, b.Commands[len(b.Commands)-1].Op)
}

func TestDrawCar(t *testing.T) {
	r := NewCar(entity.DrawCarInput{
		ID:             3,
		Status:         entity.CarStatusStuck,
		WaitingForTurn: &demoTurn,
		StoppingTrace:  entity.Trace{{X: 0}, {X: 5}},
		Body:           entity.PolyLine{{X: 0}, {X: 4}},
	})
	var b Batch
	r.Draw(&b, nil, DrawOptions{})
	require.Len(t, b.Commands, 3)
	assert.Equal(t, OpLine, b.Commands[0].Op)
	assert.Equal(t, RGB(222, 0, 0), b.Commands[1].Color)
	assert.Equal(t, OpCircle, b.Commands[2].Op)

	data, err := json.Marshal(b.Commands[1])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"op":"polygon"`)
	assert.Contains(t, string(data), `"id":"Car 3"`)
}

func TestDegenerateCarBody(t *testing.T) {
	r := NewCar(entity.DrawCarInput{
		ID:     4,
		Status: entity.CarStatusMoving,
		Body:   entity.PolyLine{{X: 10, Y: 5}, {X: 10, Y: 5}},
	})
	assert.True(t, r.ContainsPt(orb.Point{10, 5}))
	assert.True(t, r.ContainsPt(orb.Point{10.5, 5}))
	assert.False(t, r.ContainsPt(orb.Point{12, 5}))

	var b Batch
	r.Draw(&b, nil, DrawOptions{})
	require.Len(t, b.Commands, 1)
	assert.Equal(t, OpCircle, b.Commands[0].Op)
}

func TestCanonicalPoint(t *testing.T) {
	m, dm, s := newTestWorld(t)
	p, ok := CanonicalPoint(entity.BuildingID(0), dm, s, m)
	require.True(t, ok)
	assert.InDelta(t, 40, p[0], 1e-9)
	assert.InDelta(t, -16, p[1], 1e-9)

	p, ok = CanonicalPoint(entity.LaneID(citymap.DemoDrivingB), dm, s, m)
	require.True(t, ok)
	assert.Equal(t, orb.Point{110, -2}, p)

	p, ok = CanonicalPoint(entity.CarID(1), dm, s, m)
	require.True(t, ok)
	assert.InDelta(t, 40, p[0], 1e-9)
	assert.InDelta(t, -2, p[1], 1e-9)

	_, ok = CanonicalPoint(entity.PedestrianID(1), dm, s, m)
	assert.True(t, ok)
	_, ok = CanonicalPoint(entity.BuildingID(9), dm, s, m)
	assert.False(t, ok)
	_, ok = CanonicalPoint(entity.CarID(9), dm, s, m)
	assert.False(t, ok)
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "#ff0000ff", Red.String())
	assert.Equal(t, "#00000080", Black.Alpha(0.5).String())
}
