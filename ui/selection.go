package ui

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/render"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/utils/container"
)

// MinZoomForMouseover 低于该缩放级别时不做光标选中
const MinZoomForMouseover = 4.0

// 选中状态
type SelectionState int

const (
	SelectionIdle   SelectionState = iota // 无候选，例如缩放级别过低
	SelectionActive                       // 跟踪一个可能为空的当前对象
)

// Selection 光标选中状态机
type Selection struct {
	state   SelectionState
	current *entity.ID
}

func (s *Selection) State() SelectionState {
	return s.state
}

// Current 当前选中对象
func (s *Selection) Current() (entity.ID, bool) {
	if s.current == nil {
		return entity.ID{}, false
	}
	return *s.current, true
}

// Set 设置选中对象，nil表示没有选中
func (s *Selection) Set(id *entity.ID) {
	s.state = SelectionActive
	s.current = id
}

// HandleZoom 缩放级别从阈值之上降到阈值之下时清空选中
func (s *Selection) HandleZoom(oldZoom, newZoom float64) {
	if oldZoom >= MinZoomForMouseover && newZoom < MinZoomForMouseover {
		s.state = SelectionIdle
		s.current = nil
	}
}

// MouseoverSomething 光标处的对象
// 算法说明：
// 1. 智能体优先：在包含光标的智能体中取中心离光标最近的，距离相同取ID较小的
// 2. 否则按绘制顺序从上到下检查静态对象，返回第一个包含光标的
// 3. 都没有时返回nil
func MouseoverSomething(pt orb.Point, statics, dynamics []*render.Renderable) *entity.ID {
	pq := container.NewPriorityQueue(func(a, b *render.Renderable) bool {
		return a.ID().Less(b.ID())
	})
	for _, r := range dynamics {
		if r.ContainsPt(pt) {
			pq.Push(r, planar.Distance(r.Center(), pt))
		}
	}
	if pq.Len() > 0 {
		pq.Heapify()
		best, _ := pq.Pop()
		return lo.ToPtr(best.ID())
	}
	for i := len(statics) - 1; i >= 0; i-- {
		if statics[i].ContainsPt(pt) {
			return lo.ToPtr(statics[i].ID())
		}
	}
	return nil
}
