package ui

import (
	"fmt"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/paulmach/orb"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/render"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/task"
)

// EventCtx 插件处理事件时可访问的状态
type EventCtx struct {
	Input       *UserInput
	Hints       *RenderingHints
	Recalculate *bool // 置为true则本帧重新计算光标选中
	Selection   *Selection
	Session     *task.Context
	Colors      *ColorScheme
	Canvas      *Canvas
}

// DrawCtx 插件绘制时可访问的状态，只读
type DrawCtx struct {
	Batch     *render.Batch
	Hints     *RenderingHints
	Selection *Selection
	Session   *task.Context
	Colors    *ColorScheme
}

// Plugin 交互功能
type Plugin interface {
	// 处理输入，可写入绘制提示与重算标记
	Event(ctx *EventCtx)
	// 对象的着色，不关心该对象时返回false
	ColorFor(id entity.ID, cs *ColorScheme) (render.Color, bool)
	// 在所有对象之上绘制
	Draw(ctx *DrawCtx)
}

type pluginBase struct{}

func (pluginBase) ColorFor(entity.ID, *ColorScheme) (render.Color, bool) {
	return render.Color{}, false
}

func (pluginBase) Draw(*DrawCtx) {}

// SimControls 运行/暂停与单步
type SimControls struct {
	pluginBase
	running bool
}

func (p *SimControls) Running() bool {
	return p.running
}

func (p *SimControls) Event(ctx *EventCtx) {
	s, m := ctx.Session.Sim(), ctx.Session.Map()
	if ctx.Input.KeyPressed("space", lo.Ternary(p.running, "pause sim", "run sim")) {
		p.running = !p.running
		log.Infof("sim %s at %s", lo.Ternary(p.running, "running", "paused"), s.Clock())
	}
	if p.running {
		if s.Step(m) {
			*ctx.Recalculate = true
			ctx.Hints.Mode = Animation
		} else {
			p.running = false
			log.Infof("sim reached its last step at %s", s.Clock())
		}
	} else if ctx.Input.KeyPressed("m", "run one step") {
		if s.Step(m) {
			*ctx.Recalculate = true
		}
	}
	ctx.Hints.AddOSD("Time: %s %s", s.Clock(), lo.Ternary(p.running, "(running)", "(paused)"))
	ctx.Hints.AddOSD("%d moving, %d parked, %d pedestrians", s.Driving().Len(), s.Parking().Len(), s.Walking().Len())
}

// Hider 隐藏选中的静态对象
type Hider struct {
	pluginBase
	hidden map[entity.ID]struct{}
}

func NewHider() *Hider {
	return &Hider{hidden: make(map[entity.ID]struct{})}
}

// Hidden 已隐藏的对象
func (p *Hider) Hidden() map[entity.ID]struct{} {
	return p.hidden
}

func hideable(k entity.Kind) bool {
	switch k {
	case entity.KindLane, entity.KindIntersection, entity.KindBuilding, entity.KindExtraShape, entity.KindArea:
		return true
	default:
		return false
	}
}

func (p *Hider) Event(ctx *EventCtx) {
	if id, ok := ctx.Selection.Current(); ok && hideable(id.Kind) {
		if ctx.Input.KeyPressed("h", fmt.Sprintf("hide %v", id)) {
			p.hidden[id] = struct{}{}
			log.Infof("Hiding %v", id)
			ctx.Selection.Set(nil)
			*ctx.Recalculate = true
		}
	}
	if len(p.hidden) == 0 {
		return
	}
	if ctx.Input.KeyPressed("u", fmt.Sprintf("unhide %d things", len(p.hidden))) {
		log.Infof("Unhiding %d things", len(p.hidden))
		clear(p.hidden)
		*ctx.Recalculate = true
		return
	}
	ctx.Hints.AddOSD("%d things hidden", len(p.hidden))
}

// TurnCycler 选中车道时展示其出口转向，tab逐个高亮
type TurnCycler struct {
	pluginBase
	active bool
	lane   int32
	index  int // 高亮的转向，-1表示全部
}

func (p *TurnCycler) turns(ctx *task.Context) []entity.ITurn {
	l, err := ctx.Map().LaneManager().GetOrError(p.lane)
	if err != nil {
		return nil
	}
	return l.Turns()
}

func (p *TurnCycler) Event(ctx *EventCtx) {
	id, ok := ctx.Selection.Current()
	if !ok || id.Kind != entity.KindLane {
		p.active = false
		return
	}
	if !p.active || p.lane != id.Num {
		p.active, p.lane, p.index = true, id.Num, -1
	}
	ctx.Hints.HideTurnIcons[p.lane] = struct{}{}
	turns := p.turns(ctx.Session)
	if len(turns) == 0 {
		return
	}
	if ctx.Input.KeyPressed("tab", "cycle through this lane's turns") {
		p.index = (p.index + 1) % len(turns)
	}
	// 显示全部转向时高亮路口的人行横道，只显示一个转向时隐藏人行横道
	j, err := ctx.Session.Map().JunctionManager().GetOrError(turns[0].ID().Parent)
	if err == nil {
		c := ctx.Colors.GetDef("crosswalk in selected junction", render.RGB(255, 200, 0).Alpha(0.6))
		for _, cw := range j.Crosswalks() {
			if p.index >= 0 {
				ctx.Hints.HideCrosswalks[cw.ID()] = struct{}{}
			} else {
				ctx.Hints.ColorCrosswalks[cw.ID()] = c
			}
		}
	}
	if p.index >= 0 {
		t := turns[p.index]
		ctx.Hints.SuppressIntersectionIcon = lo.ToPtr(entity.IntersectionID(t.ID().Parent))
		ctx.Hints.AddOSD("Showing %v", t.ID())
	}
}

func (p *TurnCycler) Draw(ctx *DrawCtx) {
	if !p.active {
		return
	}
	for i, t := range p.turns(ctx.Session) {
		c := ctx.Colors.GetDef("turns from selected lane", render.RGB(0, 120, 255).Alpha(0.5))
		if i == p.index {
			c = ctx.Colors.GetDef("current selected turn", render.RGB(0, 0, 255))
		}
		pts := lo.Map(t.CenterLine(), func(pt geometry.Point, _ int) orb.Point { return orb.Point{pt.X, pt.Y} })
		ctx.Batch.Line(t.ID().String(), pts, 0.5, c)
	}
}

// DebugMode 调试绘制与选中对象信息
type DebugMode struct {
	pluginBase
	enabled bool
}

func (p *DebugMode) Enabled() bool {
	return p.enabled
}

func (p *DebugMode) Event(ctx *EventCtx) {
	if ctx.Input.KeyPressed("d", lo.Ternary(p.enabled, "hide debug info", "show debug info")) {
		p.enabled = !p.enabled
	}
	if !p.enabled {
		return
	}
	ctx.Hints.AddOSD("debug mode, zoom %.2f", ctx.Canvas.CamZoom)
	id, ok := ctx.Selection.Current()
	if !ok {
		return
	}
	s, m := ctx.Session.Sim(), ctx.Session.Map()
	switch id.Kind {
	case entity.KindCar:
		if d, ok := s.GetDrawCar(id.Num, m); ok {
			ctx.Hints.AddOSD("%v: %v %v on %v", id, d.Status, d.VehicleType, d.On)
		}
	case entity.KindPedestrian:
		if d, ok := s.GetDrawPed(id.Num, m); ok {
			ctx.Hints.AddOSD("%v: on %v", id, d.On)
		}
	case entity.KindLane:
		l := m.LaneManager().Get(id.Num)
		ctx.Hints.AddOSD("%v: %v, %.1fm, %d cars", id, l.Type(), l.Length(), len(s.GetDrawCars(entity.OnLane(id.Num), m)))
	default:
		ctx.Hints.AddOSD("%v", id)
	}
}
