package overlay

import (
	"fmt"
	"os"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
	"gopkg.in/yaml.v2"
)

// 叠加层文件中的一个图形
type shapeFile struct {
	Kind   string      `yaml:"kind"` // area或shape
	Name   string      `yaml:"name"`
	Closed bool        `yaml:"closed"` // 仅对shape有效，area总是闭合
	Points [][]float64 `yaml:"points"`
}

type overlayFile struct {
	Shapes []shapeFile `yaml:"shapes"`
}

// Base 叠加图形的基础数据
type Base struct {
	Kind   entity.Kind // KindArea或KindExtraShape
	Name   string
	Points []geometry.Point
	Closed bool
}

// Load 从YAML文件读取叠加图形，path为空时返回空列表
func Load(path string) ([]Base, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overlay file: %w", err)
	}
	return Parse(data)
}

// Parse 解析YAML格式的叠加图形
func Parse(data []byte) ([]Base, error) {
	var f overlayFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("parse overlay: %w", err)
	}
	bases := make([]Base, 0, len(f.Shapes))
	for i, s := range f.Shapes {
		if _, bad := lo.Find(s.Points, func(p []float64) bool { return len(p) != 2 }); bad {
			return nil, fmt.Errorf("overlay shape %d (%s): points must be [x, y]", i, s.Name)
		}
		b := Base{
			Name: s.Name,
			Points: lo.Map(s.Points, func(p []float64, _ int) geometry.Point {
				return geometry.Point{X: p[0], Y: p[1]}
			}),
		}
		switch s.Kind {
		case "area":
			b.Kind = entity.KindArea
			b.Closed = true
			if len(b.Points) < 3 {
				return nil, fmt.Errorf("overlay shape %d (%s): area needs at least 3 points", i, s.Name)
			}
		case "shape", "":
			b.Kind = entity.KindExtraShape
			b.Closed = s.Closed
			if len(b.Points) < 2 {
				return nil, fmt.Errorf("overlay shape %d (%s): needs at least 2 points", i, s.Name)
			}
		default:
			return nil, fmt.Errorf("overlay shape %d (%s): unknown kind %q", i, s.Name, s.Kind)
		}
		bases = append(bases, b)
	}
	return bases, nil
}

// Shape 面状区域或额外图形
type Shape struct {
	id     entity.ID
	name   string
	points []geometry.Point
	closed bool
}

func (s *Shape) String() string {
	return fmt.Sprintf("%v(%s)", s.id, s.name)
}

func (s *Shape) ID() entity.ID {
	return s.id
}

func (s *Shape) Name() string {
	return s.name
}

func (s *Shape) Points() []geometry.Point {
	return s.points
}

func (s *Shape) Closed() bool {
	return s.closed
}
