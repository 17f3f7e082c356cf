package ui

import (
	"fmt"

	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/render"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/task"
)

// Camera 帧中附带的相机状态，前端据此将地图坐标换算为屏幕坐标
type Camera struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// Frame 一帧的绘制结果
type Frame struct {
	Mode       EventLoopMode    `json:"mode"`
	Background render.Color     `json:"background"`
	Camera     Camera           `json:"camera"`
	Commands   []render.Command `json:"commands"`
	OSD        []string         `json:"osd"`
	Selected   string           `json:"selected,omitempty"`
	Quit       bool             `json:"quit,omitempty"`
}

// UI 帧控制器
// 功能：持有相机、选中状态、配色与插件；每帧先处理一批输入（Event），再绘制一次（Draw）
type UI struct {
	session         *task.Context
	canvas          *Canvas
	selection       Selection
	cs              *ColorScheme
	editorStatePath string

	simControls *SimControls
	hider       *Hider
	turnCycler  *TurnCycler
	debug       *DebugMode
	plugins     []Plugin

	quit bool
}

// New 创建帧控制器，加载配色并恢复相机
func New(session *task.Context) (*UI, error) {
	rc := session.RuntimeConfig()
	cs, err := LoadColorScheme(rc.V.ColorScheme)
	if err != nil {
		return nil, err
	}
	ui := &UI{
		session:         session,
		canvas:          NewCanvas(rc.V.WindowWidth, rc.V.WindowHeight),
		cs:              cs,
		editorStatePath: rc.V.EditorState,
		simControls:     &SimControls{},
		hider:           NewHider(),
		turnCycler:      &TurnCycler{},
		debug:           &DebugMode{},
	}
	ui.plugins = []Plugin{ui.simControls, ui.hider, ui.turnCycler, ui.debug}
	if err := restoreCamera(ui.canvas, ui.editorStatePath, session); err != nil {
		return nil, err
	}
	return ui, nil
}

func (ui *UI) Canvas() *Canvas {
	return ui.canvas
}

func (ui *UI) Selection() *Selection {
	return &ui.selection
}

func (ui *UI) Session() *task.Context {
	return ui.session
}

// Quit 是否已收到退出指令
func (ui *UI) Quit() bool {
	return ui.quit
}

// objectsOnscreen 视野内的对象，跳过已隐藏的静态对象
func (ui *UI) objectsOnscreen() (statics, dynamics []*render.Renderable) {
	return render.GetObjectsOnscreen(
		ui.canvas.ScreenBound(),
		ui.session.DrawMap(),
		ui.session.Sim(),
		ui.session.Map(),
		ui.hider.Hidden(),
	)
}

func (ui *UI) mouseoverSomething() *entity.ID {
	statics, dynamics := ui.objectsOnscreen()
	return MouseoverSomething(ui.canvas.CursorInMapSpace(), statics, dynamics)
}

// Event 处理一批输入
// 算法说明：
// 1. 相机处理输入，缩放越过阈值时清空选中
// 2. 未拖动、光标移动且缩放足够时重新计算光标选中
// 3. 各插件依次处理输入，写入本帧的绘制提示
// 4. 有插件要求且缩放足够时再次计算光标选中
// 5. Esc保存相机状态与配色后退出
// 6. 本帧登记的按键说明追加到状态栏
func (ui *UI) Event(in *UserInput) (EventLoopMode, RenderingHints) {
	hints := NewRenderingHints()

	oldZoom := ui.canvas.CamZoom
	ui.canvas.HandleEvent(in)
	newZoom := ui.canvas.CamZoom
	ui.selection.HandleZoom(oldZoom, newZoom)

	if _, _, moved := in.MovedMouse(); moved && !ui.canvas.IsDragging() && newZoom >= MinZoomForMouseover {
		ui.selection.Set(ui.mouseoverSomething())
	}

	recalculate := false
	ctx := &EventCtx{
		Input:       in,
		Hints:       &hints,
		Recalculate: &recalculate,
		Selection:   &ui.selection,
		Session:     ui.session,
		Colors:      ui.cs,
		Canvas:      ui.canvas,
	}
	for _, p := range ui.plugins {
		p.Event(ctx)
	}
	if recalculate && newZoom >= MinZoomForMouseover {
		ui.selection.Set(ui.mouseoverSomething())
	}

	if in.KeyPressed("escape", "quit") {
		ui.saveOnQuit()
		ui.quit = true
	}

	hints.OSD = append(hints.OSD, in.Bindings()...)
	return hints.Mode, hints
}

func (ui *UI) saveOnQuit() {
	if err := ui.SaveEditorState(); err != nil {
		log.Errorf("save editor state: %v", err)
	}
	if err := ui.cs.Save(); err != nil {
		log.Errorf("%v", err)
	}
}

// colorObj 选中对象使用选中色，其次由插件决定，都没有时返回nil使用默认颜色
func (ui *UI) colorObj(id entity.ID) *render.Color {
	if cur, ok := ui.selection.Current(); ok && cur == id {
		c := ui.cs.GetDef("selected", render.RGB(255, 255, 0).Alpha(0.9))
		return &c
	}
	for _, p := range ui.plugins {
		if c, ok := p.ColorFor(id, ui.cs); ok {
			return &c
		}
	}
	return nil
}

// Draw 按本帧的绘制提示绘制，只读取已确定的选中状态
func (ui *UI) Draw(hints RenderingHints) Frame {
	var b render.Batch
	opts := hints.drawOptions(ui.cs, ui.canvas.CamZoom, ui.debug.Enabled())
	statics, dynamics := ui.objectsOnscreen()
	for _, r := range statics {
		r.Draw(&b, ui.colorObj(r.ID()), opts)
	}
	for _, r := range dynamics {
		r.Draw(&b, ui.colorObj(r.ID()), opts)
	}
	ctx := &DrawCtx{
		Batch:     &b,
		Hints:     &hints,
		Selection: &ui.selection,
		Session:   ui.session,
		Colors:    ui.cs,
	}
	for _, p := range ui.plugins {
		p.Draw(ctx)
	}

	f := Frame{
		Mode:       hints.Mode,
		Background: ui.cs.GetDef("map background", render.RGB(242, 239, 233)),
		Camera:     Camera{X: ui.canvas.CamX, Y: ui.canvas.CamY, Zoom: ui.canvas.CamZoom},
		Commands:   b.Commands,
		OSD:        hints.OSD,
		Quit:       ui.quit,
	}
	if f.Commands == nil {
		f.Commands = make([]render.Command, 0)
	}
	if id, ok := ui.selection.Current(); ok {
		f.Selected = id.String()
	}
	return f
}

// SaveEditorState 保存相机状态
func (ui *UI) SaveEditorState() error {
	s := EditorState{
		MapName: ui.session.Map().Name(),
		CamX:    ui.canvas.CamX,
		CamY:    ui.canvas.CamY,
		CamZoom: ui.canvas.CamZoom,
	}
	if err := s.Save(ui.editorStatePath); err != nil {
		return fmt.Errorf("save editor state: %w", err)
	}
	log.Infof("Saved editor state to %s", ui.editorStatePath)
	return nil
}

// DumpBeforeAbort 异常退出前保存相机状态
func (ui *UI) DumpBeforeAbort() {
	log.Errorf("aborting at %s, selection %v", ui.session.Sim().Clock(), ui.selection.current)
	if err := ui.SaveEditorState(); err != nil {
		log.Errorf("%v", err)
	}
}
