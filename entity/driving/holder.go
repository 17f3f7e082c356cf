package driving

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/utils/container"
)

const (
	brakingDistance = 15.0 // 车头距路段终点小于该距离时开始减速(m)
)

// Holder 行驶子系统
// 功能：独占所有行驶中车辆的状态，按路段维护按s排序的车辆链表，
// 全局遍历顺序由增量数组保证在两次修改之间稳定
type Holder struct {
	cars  map[int32]*Car
	order *container.IncrementalArray[*Car]
	lists map[entity.Traversable]*carList
}

func NewHolder() *Holder {
	return &Holder{
		cars:  make(map[int32]*Car),
		order: container.NewIncrementalArray[*Car](),
		lists: make(map[entity.Traversable]*carList),
	}
}

// Add 在路段on的位置s（车头）加入车辆，车辆不能位于人行道或停车道上
func (h *Holder) Add(car *Car, on entity.Traversable, s float64, m entity.IMap) error {
	if _, ok := h.cars[car.ID]; ok {
		return fmt.Errorf("car %d already driving", car.ID)
	}
	if car.Status == entity.CarStatusParked {
		return fmt.Errorf("car %d: parked cars belong to the parking holder", car.ID)
	}
	if car.Len <= 0 {
		return fmt.Errorf("car %d: invalid length %v", car.ID, car.Len)
	}
	if !on.IsTurn {
		if t := m.LaneType(on.Lane); t == entity.LaneTypeSidewalk || t == entity.LaneTypeParking {
			return fmt.Errorf("car %d: lane %d is a %v lane", car.ID, on.Lane, t)
		}
	}
	car.on = on
	car.node = &carNode{S: s, Value: car}
	h.list(on).Insert(car.node)
	h.cars[car.ID] = car
	h.order.Add(car)
	h.order.Prepare()
	return nil
}

// Remove 移除车辆并返回，不存在时返回false
func (h *Holder) Remove(id int32) (*Car, bool) {
	car, ok := h.cars[id]
	if !ok {
		return nil, false
	}
	h.list(car.on).Remove(car.node)
	delete(h.cars, id)
	h.order.Remove(car)
	h.order.Prepare()
	return car, true
}

// Get 按ID获取车辆
func (h *Holder) Get(id int32) (*Car, bool) {
	car, ok := h.cars[id]
	return car, ok
}

func (h *Holder) Len() int {
	return len(h.cars)
}

func (h *Holder) list(on entity.Traversable) *carList {
	l, ok := h.lists[on]
	if !ok {
		l = &carList{ID: fmt.Sprintf("%v cars", on)}
		h.lists[on] = l
	}
	return l
}

// Step 推进dt秒
// 功能：Moving车辆按速度前进，到达路段末端后沿唯一的后继继续行驶，
// 没有唯一后继时停在末端并变为Stuck
func (h *Holder) Step(dt float64, m entity.IMap) {
	for _, car := range h.order.Data() {
		if car.Status != entity.CarStatusMoving {
			continue
		}
		s := car.node.S + car.Speed*dt
		tr := m.Traversable(car.on)
		for s > tr.Length() {
			next, ok := nextTraversable(car.on, m)
			if !ok {
				s = tr.Length()
				car.Status = entity.CarStatusStuck
				car.Speed = 0
				log.Debugf("%v stuck at the end", car)
				break
			}
			s -= tr.Length()
			h.list(car.on).Remove(car.node)
			car.on = next
			car.node.S = s
			h.list(next).Insert(car.node)
			tr = m.Traversable(next)
		}
		car.node.S = s
	}
	for _, l := range h.lists {
		l.Merge(l.PopUnsorted())
	}
}

// nextTraversable 车道末端唯一的转向或唯一的路段后继；转向末端为其去向车道
func nextTraversable(on entity.Traversable, m entity.IMap) (entity.Traversable, bool) {
	if on.IsTurn {
		return entity.OnLane(on.Turn.Dst), true
	}
	lane := m.LaneManager().Get(on.Lane)
	if turns := lane.Turns(); len(turns) == 1 {
		return entity.OnTurn(turns[0].ID()), true
	} else if len(turns) > 1 {
		return entity.Traversable{}, false
	}
	if succ := lane.Successors(); len(succ) == 1 && !m.LaneManager().Get(succ[0]).InJunction() {
		return entity.OnLane(succ[0]), true
	}
	return entity.Traversable{}, false
}

func (h *Holder) toDraw(car *Car, m entity.IMap) entity.DrawCarInput {
	tr := m.Traversable(car.on)
	front := car.node.S
	d := entity.DrawCarInput{
		ID:          car.ID,
		Status:      car.Status,
		VehicleType: car.VehicleType,
		On:          car.on,
		Body:        entity.SliceTraversable(tr, front-car.Len, front),
	}
	if car.Status != entity.CarStatusMoving || tr.Length()-front > brakingDistance {
		return d
	}
	if next, ok := nextTraversable(car.on, m); ok {
		if next.IsTurn {
			d.WaitingForTurn = lo.ToPtr(next.Turn)
		}
	} else {
		d.StoppingTrace = entity.Trace(entity.SliceTraversable(tr, front, tr.Length()))
	}
	return d
}

// GetDrawCar 获取车辆的绘制信息，车辆不在本子系统中时返回false
func (h *Holder) GetDrawCar(id int32, _ time.Duration, m entity.IMap) (entity.DrawCarInput, bool) {
	car, ok := h.cars[id]
	if !ok {
		return entity.DrawCarInput{}, false
	}
	return h.toDraw(car, m), true
}

// GetDrawCars 路段上所有车辆的绘制信息，按s从小到大
func (h *Holder) GetDrawCars(on entity.Traversable, _ time.Duration, m entity.IMap) []entity.DrawCarInput {
	l, ok := h.lists[on]
	if !ok {
		return []entity.DrawCarInput{}
	}
	return lo.Map(l.Values(), func(car *Car, _ int) entity.DrawCarInput {
		return h.toDraw(car, m)
	})
}

// GetAllDrawCars 所有车辆的绘制信息，顺序在两次修改之间保持不变
func (h *Holder) GetAllDrawCars(_ time.Duration, m entity.IMap) []entity.DrawCarInput {
	return lo.Map(h.order.Data(), func(car *Car, _ int) entity.DrawCarInput {
		return h.toDraw(car, m)
	})
}
