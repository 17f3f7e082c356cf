package render

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
)

const (
	gridCellSize = 50.0 // 空间索引网格边长(m)
)

type cellKey struct {
	X, Y int32
}

// grid 均匀网格空间索引，对象登记在其包围盒覆盖的所有格子中
type grid struct {
	cells map[cellKey][]int
}

func cellOf(x, y float64) cellKey {
	return cellKey{X: int32(math.Floor(x / gridCellSize)), Y: int32(math.Floor(y / gridCellSize))}
}

func (g *grid) insert(b orb.Bound, index int) {
	lo, hi := cellOf(b.Min[0], b.Min[1]), cellOf(b.Max[0], b.Max[1])
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			k := cellKey{X: x, Y: y}
			g.cells[k] = append(g.cells[k], index)
		}
	}
}

// query 返回包围盒可能与b相交的对象下标，升序且不重复
func (g *grid) query(b orb.Bound) []int {
	lo, hi := cellOf(b.Min[0], b.Min[1]), cellOf(b.Max[0], b.Max[1])
	seen := make(map[int]struct{})
	if int64(hi.X-lo.X+1)*int64(hi.Y-lo.Y+1) > int64(len(g.cells)) {
		// 视野覆盖的格子比已有格子多时直接遍历已有格子
		for k, indices := range g.cells {
			if k.X < lo.X || k.X > hi.X || k.Y < lo.Y || k.Y > hi.Y {
				continue
			}
			for _, i := range indices {
				seen[i] = struct{}{}
			}
		}
	} else {
		for x := lo.X; x <= hi.X; x++ {
			for y := lo.Y; y <= hi.Y; y++ {
				for _, i := range g.cells[cellKey{X: x, Y: y}] {
					seen[i] = struct{}{}
				}
			}
		}
	}
	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// DrawMap 静态地图对象的绘制几何
// 功能：为所有车道、路口、建筑、面状区域与额外图形创建可绘制对象，
// 按绘制顺序（层次、ID）排列并建立网格索引；随地图一同创建，之后只读
type DrawMap struct {
	statics []*Renderable // 按(层次, ID)排序，即从下到上的绘制顺序
	byID    map[entity.ID]*Renderable
	grid    grid
}

func NewDrawMap(m entity.IMap) *DrawMap {
	dm := &DrawMap{
		statics: make([]*Renderable, 0),
		byID:    make(map[entity.ID]*Renderable),
		grid:    grid{cells: make(map[cellKey][]int)},
	}
	for _, l := range m.LaneManager().Lanes() {
		dm.statics = append(dm.statics, newLane(l))
	}
	for _, j := range m.JunctionManager().Junctions() {
		dm.statics = append(dm.statics, newIntersection(j))
	}
	for _, a := range m.AoiManager().Aois() {
		dm.statics = append(dm.statics, newBuilding(a))
	}
	for _, s := range m.OverlayManager().Shapes() {
		dm.statics = append(dm.statics, newShape(s))
	}
	sort.Slice(dm.statics, func(i, j int) bool {
		a, b := dm.statics[i], dm.statics[j]
		if a.Layer() != b.Layer() {
			return a.Layer() < b.Layer()
		}
		return a.id.Less(b.id)
	})
	for i, r := range dm.statics {
		dm.byID[r.id] = r
		dm.grid.insert(r.bound, i)
	}
	log.Infof("draw map: %d static objects in %d grid cells", len(dm.statics), len(dm.grid.cells))
	return dm
}

// Get 按ID获取静态对象
func (dm *DrawMap) Get(id entity.ID) (*Renderable, bool) {
	r, ok := dm.byID[id]
	return r, ok
}

func (dm *DrawMap) Len() int {
	return len(dm.statics)
}

// Query 包围盒与b相交的静态对象，按绘制顺序，跳过hidden中的对象
func (dm *DrawMap) Query(b orb.Bound, hidden map[entity.ID]struct{}) []*Renderable {
	out := make([]*Renderable, 0)
	for _, i := range dm.grid.query(b) {
		r := dm.statics[i]
		if _, ok := hidden[r.id]; ok {
			continue
		}
		if r.bound.Intersects(b) {
			out = append(out, r)
		}
	}
	return out
}
