package parking

import (
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/utils/container"
)

const (
	SpotLength = 8.0 // 停车位长度(m)
	spotMargin = 0.5 // 车位前后留空(m)
)

type carNode = container.ListNode[*ParkedCar, struct{}]
type carList = container.List[*ParkedCar, struct{}]

// ParkedCar 停放的车辆
type ParkedCar struct {
	container.IncrementalItemBase

	ID          int32
	VehicleType entity.VehicleType
	Len         float64
	Lane        int32
	Spot        int32

	node *carNode
}

func (c *ParkedCar) String() string {
	return fmt.Sprintf("ParkedCar(%d, lane %d spot %d)", c.ID, c.Lane, c.Spot)
}

func (c *ParkedCar) V() float64 {
	return 0
}

func (c *ParkedCar) Length() float64 {
	return c.Len
}

// Holder 停车子系统
// 功能：独占所有停放车辆，停车道按固定长度划分车位
type Holder struct {
	cars  map[int32]*ParkedCar
	order *container.IncrementalArray[*ParkedCar]
	lanes map[int32]*carList
	spots map[int32]map[int32]int32 // lane -> spot -> car
}

func NewHolder() *Holder {
	return &Holder{
		cars:  make(map[int32]*ParkedCar),
		order: container.NewIncrementalArray[*ParkedCar](),
		lanes: make(map[int32]*carList),
		spots: make(map[int32]map[int32]int32),
	}
}

// NumSpots 停车道上的车位数
func NumSpots(lane entity.ILane) int32 {
	return int32(math.Floor(lane.Length() / SpotLength))
}

// Park 将车辆停入指定车道的指定车位
func (h *Holder) Park(car *ParkedCar, m entity.IMap) error {
	if _, ok := h.cars[car.ID]; ok {
		return fmt.Errorf("car %d already parked", car.ID)
	}
	lane, err := m.LaneManager().GetOrError(car.Lane)
	if err != nil {
		return err
	}
	if lane.Type() != entity.LaneTypeParking {
		return fmt.Errorf("lane %d is %v, not a parking lane", car.Lane, lane.Type())
	}
	if car.Spot < 0 || car.Spot >= NumSpots(lane) {
		return fmt.Errorf("lane %d has no spot %d", car.Lane, car.Spot)
	}
	if other, ok := h.spots[car.Lane][car.Spot]; ok {
		return fmt.Errorf("lane %d spot %d is taken by car %d", car.Lane, car.Spot, other)
	}
	if car.Len > SpotLength-2*spotMargin {
		return fmt.Errorf("car %d (%.1fm) does not fit in a spot", car.ID, car.Len)
	}
	if _, ok := h.lanes[car.Lane]; !ok {
		h.lanes[car.Lane] = &carList{ID: fmt.Sprintf("lane %d parked cars", car.Lane)}
		h.spots[car.Lane] = make(map[int32]int32)
	}
	car.node = &carNode{S: float64(car.Spot) * SpotLength, Value: car}
	h.lanes[car.Lane].Insert(car.node)
	h.spots[car.Lane][car.Spot] = car.ID
	h.cars[car.ID] = car
	h.order.Add(car)
	h.order.Prepare()
	log.Debugf("%v parked", car)
	return nil
}

// Unpark 将车辆移出停车位并返回，不存在时返回false
func (h *Holder) Unpark(id int32) (*ParkedCar, bool) {
	car, ok := h.cars[id]
	if !ok {
		return nil, false
	}
	h.lanes[car.Lane].Remove(car.node)
	car.node = nil
	delete(h.spots[car.Lane], car.Spot)
	delete(h.cars, id)
	h.order.Remove(car)
	h.order.Prepare()
	log.Debugf("%v unparked", car)
	return car, true
}

// FreeSpot 车道上编号最小的空车位
func (h *Holder) FreeSpot(lane entity.ILane) (int32, bool) {
	for spot := int32(0); spot < NumSpots(lane); spot++ {
		if _, ok := h.spots[lane.ID()][spot]; !ok {
			return spot, true
		}
	}
	return 0, false
}

func (h *Holder) Get(id int32) (*ParkedCar, bool) {
	car, ok := h.cars[id]
	return car, ok
}

func (h *Holder) Len() int {
	return len(h.cars)
}

func (h *Holder) toDraw(car *ParkedCar, m entity.IMap) entity.DrawCarInput {
	back := car.node.S + spotMargin
	return entity.DrawCarInput{
		ID:          car.ID,
		Status:      entity.CarStatusParked,
		VehicleType: car.VehicleType,
		On:          entity.OnLane(car.Lane),
		Body:        entity.SliceTraversable(m.LaneManager().Get(car.Lane), back, back+car.Len),
	}
}

func (h *Holder) GetDrawCar(id int32, m entity.IMap) (entity.DrawCarInput, bool) {
	car, ok := h.cars[id]
	if !ok {
		return entity.DrawCarInput{}, false
	}
	return h.toDraw(car, m), true
}

// GetDrawCars 车道上所有停放车辆，按车位顺序
func (h *Holder) GetDrawCars(lane int32, m entity.IMap) []entity.DrawCarInput {
	l, ok := h.lanes[lane]
	if !ok {
		return []entity.DrawCarInput{}
	}
	return lo.Map(l.Values(), func(car *ParkedCar, _ int) entity.DrawCarInput {
		return h.toDraw(car, m)
	})
}

func (h *Holder) GetAllDrawCars(m entity.IMap) []entity.DrawCarInput {
	return lo.Map(h.order.Data(), func(car *ParkedCar, _ int) entity.DrawCarInput {
		return h.toDraw(car, m)
	})
}
