package overlay

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
)

// 叠加图形管理器
type OverlayManager struct {
	data   map[entity.ID]*Shape
	shapes []*Shape // 面状区域在前，其余按文件顺序
}

func NewManager() *OverlayManager {
	return &OverlayManager{
		data:   make(map[entity.ID]*Shape),
		shapes: make([]*Shape, 0),
	}
}

// Init 创建所有图形，同类图形按出现顺序从0编号
func (m *OverlayManager) Init(bases []Base) {
	counters := make(map[entity.Kind]int32)
	areas := make([]*Shape, 0)
	others := make([]*Shape, 0)
	for _, b := range bases {
		s := &Shape{
			id:     entity.ID{Kind: b.Kind, Num: counters[b.Kind]},
			name:   b.Name,
			points: b.Points,
			closed: b.Closed,
		}
		counters[b.Kind]++
		if b.Kind == entity.KindArea {
			areas = append(areas, s)
		} else {
			others = append(others, s)
		}
	}
	m.shapes = append(areas, others...)
	m.data = lo.SliceToMap(m.shapes, func(s *Shape) (entity.ID, *Shape) {
		return s.id, s
	})
	log.Infof("overlay: %d areas, %d extra shapes", len(areas), len(others))
}

// GetOrError 根据ID获取图形，不存在则返回error
func (m *OverlayManager) GetOrError(id entity.ID) (entity.IShape, error) {
	if s, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no %v in overlay data", id)
	} else {
		return s, nil
	}
}

func (m *OverlayManager) Shapes() []entity.IShape {
	return lo.Map(m.shapes, func(s *Shape, _ int) entity.IShape { return s })
}
