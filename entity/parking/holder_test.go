package parking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/citymap"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
)

func TestParkUnpark(t *testing.T) {
	m := citymap.NewDemo()
	h := NewHolder()
	lane := citymap.DemoParkingA
	require.NoError(t, h.Park(&ParkedCar{ID: 1, Len: 4.5, Lane: lane, Spot: 3}, m))
	require.NoError(t, h.Park(&ParkedCar{ID: 2, Len: 4.5, Lane: lane, Spot: 0}, m))

	cars := h.GetDrawCars(lane, m)
	require.Len(t, cars, 2)
	assert.Equal(t, int32(2), cars[0].ID)
	assert.Equal(t, entity.CarStatusParked, cars[1].Status)
	assert.Equal(t, entity.OnLane(lane), cars[1].On)
	assert.InDelta(t, 24.5, cars[1].Body[0].X, 1e-9)
	assert.InDelta(t, 29, cars[1].Body[len(cars[1].Body)-1].X, 1e-9)

	spot, ok := h.FreeSpot(m.LaneManager().Get(lane))
	require.True(t, ok)
	assert.Equal(t, int32(1), spot)

	car, ok := h.Unpark(1)
	require.True(t, ok)
	assert.Equal(t, int32(3), car.Spot)
	_, ok = h.GetDrawCar(1, m)
	assert.False(t, ok)
	assert.Len(t, h.GetAllDrawCars(m), 1)
	_, ok = h.Unpark(1)
	assert.False(t, ok)
	// 车位释放后可以再次停入
	assert.NoError(t, h.Park(&ParkedCar{ID: 3, Len: 4.5, Lane: lane, Spot: 3}, m))
}

func TestParkErrors(t *testing.T) {
	m := citymap.NewDemo()
	h := NewHolder()
	require.NoError(t, h.Park(&ParkedCar{ID: 1, Len: 4.5, Lane: citymap.DemoParkingA, Spot: 0}, m))

	assert.ErrorContains(t, h.Park(&ParkedCar{ID: 1, Len: 4.5, Lane: citymap.DemoParkingA, Spot: 1}, m), "already parked")
	assert.ErrorContains(t, h.Park(&ParkedCar{ID: 2, Len: 4.5, Lane: citymap.DemoParkingA, Spot: 0}, m), "taken")
	assert.ErrorContains(t, h.Park(&ParkedCar{ID: 2, Len: 4.5, Lane: citymap.DemoDrivingA, Spot: 0}, m), "not a parking lane")
	assert.ErrorContains(t, h.Park(&ParkedCar{ID: 2, Len: 4.5, Lane: citymap.DemoParkingA, Spot: 12}, m), "no spot")
	assert.ErrorContains(t, h.Park(&ParkedCar{ID: 2, Len: 12, Lane: citymap.DemoParkingA, Spot: 1}, m), "does not fit")
	assert.Error(t, h.Park(&ParkedCar{ID: 2, Len: 4.5, Lane: 99, Spot: 1}, m))
}

func TestUnknownLaneIsEmpty(t *testing.T) {
	m := citymap.NewDemo()
	h := NewHolder()
	assert.Empty(t, h.GetDrawCars(citymap.DemoParkingA, m))
	assert.Empty(t, h.GetAllDrawCars(m))
	assert.Equal(t, int32(12), NumSpots(m.LaneManager().Get(citymap.DemoParkingA)))
}
