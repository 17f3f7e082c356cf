package aoi

import (
	"fmt"
	"sort"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
)

// Aoi管理器
type AoiManager struct {
	data map[int32]*Aoi
	aois []*Aoi // 按ID升序
}

func NewManager() *AoiManager {
	return &AoiManager{
		data: make(map[int32]*Aoi),
		aois: make([]*Aoi, 0),
	}
}

// Init 并行创建所有AOI
func (m *AoiManager) Init(bases []Base) {
	m.aois = parallel.GoMap(bases, func(b Base) *Aoi {
		return newAoi(b)
	})
	sort.Slice(m.aois, func(i, j int) bool { return m.aois[i].id < m.aois[j].id })
	m.data = lo.SliceToMap(m.aois, func(a *Aoi) (int32, *Aoi) {
		return a.id, a
	})
}

// Get 根据ID获取Aoi，不存在则panic
func (m *AoiManager) Get(id int32) entity.IAoi {
	if a, ok := m.data[id]; !ok {
		log.Panicf("no id %d in aoi data", id)
		return nil
	} else {
		return a
	}
}

// GetOrError 根据ID获取Aoi，不存在则返回error
func (m *AoiManager) GetOrError(id int32) (entity.IAoi, error) {
	if a, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in aoi data", id)
	} else {
		return a, nil
	}
}

func (m *AoiManager) Aois() []entity.IAoi {
	return lo.Map(m.aois, func(a *Aoi, _ int) entity.IAoi { return a })
}
