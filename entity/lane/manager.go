package lane

import (
	"fmt"
	"sort"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
)

// LaneManager Lane管理器
// 功能：管理地图中的所有车道（含路口内车道），提供查找与遍历
type LaneManager struct {
	data  map[int32]*Lane
	lanes []*Lane // 按ID升序
}

func NewManager() *LaneManager {
	return &LaneManager{
		data:  make(map[int32]*Lane),
		lanes: make([]*Lane, 0),
	}
}

// Init 根据基础数据创建全部车道
// 说明：重复ID视为地图数据错误，直接panic；拓扑中引用的车道必须存在
func (m *LaneManager) Init(bases []Base) {
	m.lanes = parallel.GoMap(bases, func(b Base) *Lane {
		return newLane(b)
	})
	sort.Slice(m.lanes, func(i, j int) bool { return m.lanes[i].id < m.lanes[j].id })
	m.data = make(map[int32]*Lane, len(m.lanes))
	for _, l := range m.lanes {
		if _, ok := m.data[l.id]; ok {
			log.Panicf("duplicated lane id %d", l.id)
		}
		m.data[l.id] = l
	}
	for _, l := range m.lanes {
		for _, id := range lo.Flatten([][]int32{l.predecessors, l.successors}) {
			if _, ok := m.data[id]; !ok {
				log.Panicf("lane %d: connection to unknown lane %d", l.id, id)
			}
		}
	}
}

// Get 根据ID获取Lane，不存在则panic
func (m *LaneManager) Get(id int32) entity.ILane {
	if lane, ok := m.data[id]; !ok {
		log.Panicf("no id %d in lane data", id)
		return nil
	} else {
		return lane
	}
}

// GetOrError 根据ID获取Lane，不存在则返回error
func (m *LaneManager) GetOrError(id int32) (entity.ILane, error) {
	if lane, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in lane data", id)
	} else {
		return lane, nil
	}
}

// Lanes 所有不在路口内的车道，按ID升序
func (m *LaneManager) Lanes() []entity.ILane {
	return lo.FilterMap(m.lanes, func(l *Lane, _ int) (entity.ILane, bool) {
		return l, !l.InJunction()
	})
}

// Len 车道总数（含路口内车道）
func (m *LaneManager) Len() int {
	return len(m.lanes)
}
