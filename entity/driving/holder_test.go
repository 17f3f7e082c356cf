package driving

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/citymap"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
)

var demoTurn = entity.TurnID{Parent: citymap.DemoJunction, Src: citymap.DemoDrivingA, Dst: citymap.DemoDrivingB}

func newCar(id int32, speed float64) *Car {
	return &Car{ID: id, VehicleType: entity.VehicleTypeCar, Status: entity.CarStatusMoving, Len: 4.5, Speed: speed}
}

func TestAddRemove(t *testing.T) {
	m := citymap.NewDemo()
	h := NewHolder()
	on := entity.OnLane(citymap.DemoDrivingA)
	require.NoError(t, h.Add(newCar(1, 10), on, 30, m))
	require.NoError(t, h.Add(newCar(2, 10), on, 10, m))
	assert.Error(t, h.Add(newCar(1, 10), on, 50, m))
	assert.Error(t, h.Add(&Car{ID: 3, Status: entity.CarStatusParked}, on, 50, m))

	cars := h.GetDrawCars(on, 0, m)
	require.Len(t, cars, 2)
	assert.Equal(t, int32(2), cars[0].ID)
	assert.Equal(t, int32(1), cars[1].ID)

	d, ok := h.GetDrawCar(1, 0, m)
	require.True(t, ok)
	assert.Equal(t, entity.CarStatusMoving, d.Status)
	require.Len(t, d.Body, 2)
	assert.InDelta(t, 25.5, d.Body[0].X, 1e-9)
	assert.InDelta(t, 30, d.Body[1].X, 1e-9)
	assert.Nil(t, d.StoppingTrace)
	assert.Nil(t, d.WaitingForTurn)

	_, ok = h.Remove(1)
	assert.True(t, ok)
	_, ok = h.Remove(1)
	assert.False(t, ok)
	_, ok = h.GetDrawCar(1, 0, m)
	assert.False(t, ok)
	assert.Len(t, h.GetAllDrawCars(0, m), 1)
	assert.Empty(t, h.GetDrawCars(entity.OnLane(citymap.DemoDrivingB), 0, m))
}

func TestStepFollowsTurn(t *testing.T) {
	m := citymap.NewDemo()
	h := NewHolder()
	require.NoError(t, h.Add(newCar(1, 10), entity.OnLane(citymap.DemoDrivingA), 95, m))

	d, _ := h.GetDrawCar(1, 0, m)
	require.NotNil(t, d.WaitingForTurn)
	assert.Equal(t, demoTurn, *d.WaitingForTurn)

	h.Step(1, m)
	car, _ := h.Get(1)
	assert.Equal(t, entity.OnTurn(demoTurn), car.On())
	assert.InDelta(t, 5, car.S(), 1e-9)
	assert.Empty(t, h.GetDrawCars(entity.OnLane(citymap.DemoDrivingA), 0, m))
	assert.Len(t, h.GetDrawCars(entity.OnTurn(demoTurn), 0, m), 1)

	h.Step(1, m)
	assert.Equal(t, entity.OnLane(citymap.DemoDrivingB), car.On())
	assert.InDelta(t, 5, car.S(), 1e-9)
}

func TestStepGetsStuck(t *testing.T) {
	m := citymap.NewDemo()
	h := NewHolder()
	require.NoError(t, h.Add(newCar(1, 10), entity.OnLane(citymap.DemoDrivingB), 90, m))

	d, _ := h.GetDrawCar(1, 0, m)
	require.NotNil(t, d.StoppingTrace)
	assert.InDelta(t, 210, d.StoppingTrace[len(d.StoppingTrace)-1].X, 1e-9)

	h.Step(2, m)
	car, _ := h.Get(1)
	assert.Equal(t, entity.CarStatusStuck, car.Status)
	assert.InDelta(t, 100, car.S(), 1e-9)
	d, _ = h.GetDrawCar(1, 0, m)
	assert.Equal(t, entity.CarStatusStuck, d.Status)
	assert.Nil(t, d.StoppingTrace)
}

func TestStepKeepsListsSorted(t *testing.T) {
	m := citymap.NewDemo()
	h := NewHolder()
	on := entity.OnLane(citymap.DemoDrivingA)
	require.NoError(t, h.Add(newCar(1, 1), on, 20, m))
	require.NoError(t, h.Add(newCar(2, 20), on, 10, m))
	debug := newCar(3, 50)
	debug.Status = entity.CarStatusDebug
	require.NoError(t, h.Add(debug, on, 15, m))

	h.Step(1, m)
	ids := make([]int32, 0)
	for _, d := range h.GetDrawCars(on, 0, m) {
		ids = append(ids, d.ID)
	}
	// 2号车超过1号车；调试车辆不动
	assert.Equal(t, []int32{3, 1, 2}, ids)
}

func TestGetAllDrawCarsStableOrder(t *testing.T) {
	m := citymap.NewDemo()
	h := NewHolder()
	for i := int32(0); i < 5; i++ {
		require.NoError(t, h.Add(newCar(i, 0), entity.OnLane(citymap.DemoDrivingA), float64(10+i), m))
	}
	first := h.GetAllDrawCars(0, m)
	h.Step(1, m)
	second := h.GetAllDrawCars(0, m)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestAddRejectsInvalidCars(t *testing.T) {
	m := citymap.NewDemo()
	h := NewHolder()
	assert.ErrorContains(t, h.Add(newCar(1, 10), entity.OnLane(citymap.DemoSidewalkA), 20, m), "sidewalk")
	assert.ErrorContains(t, h.Add(newCar(2, 10), entity.OnLane(citymap.DemoParkingA), 20, m), "parking")
	zero := newCar(3, 10)
	zero.Len = 0
	assert.ErrorContains(t, h.Add(zero, entity.OnLane(citymap.DemoDrivingA), 20, m), "length")
	assert.Zero(t, h.Len())
	assert.Empty(t, h.GetAllDrawCars(0, m))

	require.NoError(t, h.Add(newCar(4, 10), entity.OnTurn(demoTurn), 5, m))
}
