package junction

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
)

// Junction管理器
type JunctionManager struct {
	data      map[int32]*Junction
	junctions []*Junction // 按ID升序
	turns     map[entity.TurnID]entity.ITurn
}

func NewManager() *JunctionManager {
	return &JunctionManager{
		data:      make(map[int32]*Junction),
		junctions: make([]*Junction, 0),
		turns:     make(map[entity.TurnID]entity.ITurn),
	}
}

// Init 创建所有路口，并在车道上登记所在路口与出口转向
// 说明：会修改车道的初始化字段，因此逐个路口顺序执行
func (m *JunctionManager) Init(bases []Base, laneManager entity.ILaneManager) {
	m.junctions = lo.Map(bases, func(b Base, _ int) *Junction {
		return newJunction(b, laneManager)
	})
	sort.Slice(m.junctions, func(i, j int) bool { return m.junctions[i].id < m.junctions[j].id })
	m.data = lo.SliceToMap(m.junctions, func(j *Junction) (int32, *Junction) {
		return j.id, j
	})
	m.turns = make(map[entity.TurnID]entity.ITurn)
	for _, j := range m.junctions {
		for _, t := range j.turns {
			m.turns[t.ID()] = t
		}
		for _, t := range j.crosswalks {
			m.turns[t.ID()] = t
		}
	}
}

// Get 根据ID获取Junction，不存在则panic
func (m *JunctionManager) Get(id int32) entity.IJunction {
	if j, ok := m.data[id]; !ok {
		log.Panicf("no id %d in junction data", id)
		return nil
	} else {
		return j
	}
}

// GetOrError 根据ID获取Junction，不存在则返回error
func (m *JunctionManager) GetOrError(id int32) (entity.IJunction, error) {
	if j, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in junction data", id)
	} else {
		return j, nil
	}
}

func (m *JunctionManager) Junctions() []entity.IJunction {
	return lo.Map(m.junctions, func(j *Junction, _ int) entity.IJunction { return j })
}

// Turn 根据TurnID获取转向（含人行横道），不存在则panic
func (m *JunctionManager) Turn(id entity.TurnID) entity.ITurn {
	if t, ok := m.turns[id]; !ok {
		log.Panicf("no %v in junction data", id)
		return nil
	} else {
		return t
	}
}

// TurnOrError 根据TurnID获取转向，不存在则返回error
func (m *JunctionManager) TurnOrError(id entity.TurnID) (entity.ITurn, error) {
	if t, ok := m.turns[id]; !ok {
		return nil, fmt.Errorf("no %v in junction data", id)
	} else {
		return t, nil
	}
}
