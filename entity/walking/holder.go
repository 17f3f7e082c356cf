package walking

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/utils/container"
)

const (
	pedLength    = 0.5 // 行人占用长度(m)
	waitDistance = 2.0 // 距人行横道小于该距离时视为等待过街(m)
)

type pedNode = container.ListNode[*Pedestrian, struct{}]
type pedList = container.List[*Pedestrian, struct{}]

// Pedestrian 步行中的行人
type Pedestrian struct {
	container.IncrementalItemBase

	ID        int32
	Speed     float64 // m/s
	BikeAtEnd bool    // 到达终点后改为骑行

	on            entity.Traversable
	preparingBike bool
	node          *pedNode
}

func (p *Pedestrian) String() string {
	return fmt.Sprintf("Pedestrian(%d, %v)", p.ID, p.on)
}

func (p *Pedestrian) V() float64 {
	return p.Speed
}

func (p *Pedestrian) Length() float64 {
	return pedLength
}

func (p *Pedestrian) On() entity.Traversable {
	return p.on
}

func (p *Pedestrian) S() float64 {
	return p.node.S
}

// Holder 步行子系统，独占所有行人的状态
type Holder struct {
	peds  map[int32]*Pedestrian
	order *container.IncrementalArray[*Pedestrian]
	lists map[entity.Traversable]*pedList
}

func NewHolder() *Holder {
	return &Holder{
		peds:  make(map[int32]*Pedestrian),
		order: container.NewIncrementalArray[*Pedestrian](),
		lists: make(map[entity.Traversable]*pedList),
	}
}

// Add 在人行道或人行横道上加入行人
func (h *Holder) Add(p *Pedestrian, on entity.Traversable, s float64, m entity.IMap) error {
	if _, ok := h.peds[p.ID]; ok {
		return fmt.Errorf("pedestrian %d already walking", p.ID)
	}
	if !on.IsTurn && m.LaneType(on.Lane) != entity.LaneTypeSidewalk {
		return fmt.Errorf("pedestrian %d: lane %d is not a sidewalk", p.ID, on.Lane)
	}
	p.on = on
	p.preparingBike = false
	p.node = &pedNode{S: s, Value: p}
	h.list(on).Insert(p.node)
	h.peds[p.ID] = p
	h.order.Add(p)
	h.order.Prepare()
	return nil
}

// Remove 移除行人并返回，不存在时返回false
func (h *Holder) Remove(id int32) (*Pedestrian, bool) {
	p, ok := h.peds[id]
	if !ok {
		return nil, false
	}
	h.list(p.on).Remove(p.node)
	delete(h.peds, id)
	h.order.Remove(p)
	h.order.Prepare()
	return p, true
}

func (h *Holder) Get(id int32) (*Pedestrian, bool) {
	p, ok := h.peds[id]
	return p, ok
}

func (h *Holder) Len() int {
	return len(h.peds)
}

func (h *Holder) list(on entity.Traversable) *pedList {
	l, ok := h.lists[on]
	if !ok {
		l = &pedList{ID: fmt.Sprintf("%v pedestrians", on)}
		h.lists[on] = l
	}
	return l
}

// Step 推进dt秒
// 功能：行人沿人行道前进，经人行横道进入对面的人行道；
// 走到尽头后停下，设置了BikeAtEnd的行人进入准备骑行状态
func (h *Holder) Step(dt float64, m entity.IMap) {
	for _, p := range h.order.Data() {
		if p.Speed <= 0 {
			continue
		}
		s := p.node.S + p.Speed*dt
		tr := m.Traversable(p.on)
		for s > tr.Length() {
			next, ok := nextTraversable(p.on, m)
			if !ok {
				s = tr.Length()
				p.Speed = 0
				p.preparingBike = p.BikeAtEnd
				log.Debugf("%v reached the end", p)
				break
			}
			s -= tr.Length()
			h.list(p.on).Remove(p.node)
			p.on = next
			p.node.S = s
			h.list(next).Insert(p.node)
			tr = m.Traversable(next)
		}
		p.node.S = s
	}
	for _, l := range h.lists {
		l.Merge(l.PopUnsorted())
	}
}

// nextTraversable 人行道末端连接的人行横道，或人行横道的去向
func nextTraversable(on entity.Traversable, m entity.IMap) (entity.Traversable, bool) {
	if on.IsTurn {
		return entity.OnLane(on.Turn.Dst), true
	}
	for _, succ := range m.LaneManager().Get(on.Lane).Successors() {
		lane := m.LaneManager().Get(succ)
		if !lane.InJunction() {
			if lane.Type() == entity.LaneTypeSidewalk {
				return entity.OnLane(succ), true
			}
			continue
		}
		j := m.JunctionManager().Get(lane.ParentJunction())
		if cw, ok := lo.Find(j.Crosswalks(), func(t entity.ITurn) bool { return t.LaneID() == succ }); ok {
			return entity.OnTurn(cw.ID()), true
		}
	}
	return entity.Traversable{}, false
}

func (h *Holder) toDraw(p *Pedestrian, m entity.IMap) entity.DrawPedestrianInput {
	tr := m.Traversable(p.on)
	d := entity.DrawPedestrianInput{
		ID:            p.ID,
		Pos:           tr.GetPositionByS(p.node.S),
		PreparingBike: p.preparingBike,
		On:            p.on,
	}
	if !p.on.IsTurn && p.Speed > 0 && tr.Length()-p.node.S <= waitDistance {
		if next, ok := nextTraversable(p.on, m); ok && next.IsTurn {
			d.WaitingForTurn = lo.ToPtr(next.Turn)
		}
	}
	return d
}

func (h *Holder) GetDrawPed(id int32, m entity.IMap, _ time.Duration) (entity.DrawPedestrianInput, bool) {
	p, ok := h.peds[id]
	if !ok {
		return entity.DrawPedestrianInput{}, false
	}
	return h.toDraw(p, m), true
}

// GetDrawPeds 路段上所有行人，按s从小到大
func (h *Holder) GetDrawPeds(on entity.Traversable, m entity.IMap, _ time.Duration) []entity.DrawPedestrianInput {
	l, ok := h.lists[on]
	if !ok {
		return []entity.DrawPedestrianInput{}
	}
	return lo.Map(l.Values(), func(p *Pedestrian, _ int) entity.DrawPedestrianInput {
		return h.toDraw(p, m)
	})
}

func (h *Holder) GetAllDrawPeds(_ time.Duration, m entity.IMap) []entity.DrawPedestrianInput {
	return lo.Map(h.order.Data(), func(p *Pedestrian, _ int) entity.DrawPedestrianInput {
		return h.toDraw(p, m)
	})
}
