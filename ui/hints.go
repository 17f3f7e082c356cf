package ui

import (
	"encoding/json"
	"fmt"

	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/render"
)

// EventLoopMode 前端事件循环方式
type EventLoopMode int

const (
	InputOnly EventLoopMode = iota // 等待下一次输入
	Animation                      // 无输入时也按帧率持续刷新
)

func (m EventLoopMode) String() string {
	switch m {
	case InputOnly:
		return "input_only"
	case Animation:
		return "animation"
	default:
		return fmt.Sprintf("EventLoopMode(%d)", int(m))
	}
}

func (m EventLoopMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// RenderingHints 单帧绘制提示
// 功能：事件处理期间由各插件写入，下一次绘制读取一次后丢弃；每次UI.Event重新创建
type RenderingHints struct {
	Mode EventLoopMode
	OSD  []string // 状态栏文字，每项一行

	SuppressIntersectionIcon *entity.ID
	ColorCrosswalks          map[entity.TurnID]render.Color
	HideCrosswalks           map[entity.TurnID]struct{}
	HideTurnIcons            map[int32]struct{}
}

func NewRenderingHints() RenderingHints {
	return RenderingHints{
		Mode:            InputOnly,
		OSD:             make([]string, 0),
		ColorCrosswalks: make(map[entity.TurnID]render.Color),
		HideCrosswalks:  make(map[entity.TurnID]struct{}),
		HideTurnIcons:   make(map[int32]struct{}),
	}
}

// AddOSD 追加一行状态栏文字
func (h *RenderingHints) AddOSD(format string, args ...any) {
	h.OSD = append(h.OSD, fmt.Sprintf(format, args...))
}

func (h *RenderingHints) drawOptions(p render.Palette, zoom float64, debug bool) render.DrawOptions {
	return render.DrawOptions{
		Palette:                  p,
		CamZoom:                  zoom,
		DebugMode:                debug,
		SuppressIntersectionIcon: h.SuppressIntersectionIcon,
		ColorCrosswalks:          h.ColorCrosswalks,
		HideCrosswalks:           h.HideCrosswalks,
		HideTurnIcons:            h.HideTurnIcons,
	}
}
