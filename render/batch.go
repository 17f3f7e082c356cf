package render

import (
	"github.com/paulmach/orb"
)

// 绘制指令类型
const (
	OpPolygon = "polygon"
	OpLine    = "line"
	OpCircle  = "circle"
	OpText    = "text"
)

// Command 一条绘制指令，坐标均为地图坐标
type Command struct {
	Op     string      `json:"op"`
	ID     string      `json:"id,omitempty"`
	Points []orb.Point `json:"points,omitempty"` // polygon/line的顶点，circle/text的锚点
	Width  float64     `json:"width,omitempty"`
	Radius float64     `json:"radius,omitempty"`
	Color  Color       `json:"color"`
	Text   string      `json:"text,omitempty"`
}

// Batch 一帧内按顺序累积的绘制指令，后绘制的在上层
type Batch struct {
	Commands []Command
}

func (b *Batch) Polygon(id string, ring orb.Ring, c Color) {
	b.Commands = append(b.Commands, Command{Op: OpPolygon, ID: id, Points: ring, Color: c})
}

func (b *Batch) Line(id string, pts []orb.Point, width float64, c Color) {
	b.Commands = append(b.Commands, Command{Op: OpLine, ID: id, Points: pts, Width: width, Color: c})
}

func (b *Batch) Circle(id string, center orb.Point, radius float64, c Color) {
	b.Commands = append(b.Commands, Command{Op: OpCircle, ID: id, Points: []orb.Point{center}, Radius: radius, Color: c})
}

func (b *Batch) Text(at orb.Point, text string, c Color) {
	b.Commands = append(b.Commands, Command{Op: OpText, Points: []orb.Point{at}, Text: text, Color: c})
}
