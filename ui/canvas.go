package ui

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/samber/lo"
)

const (
	zoomSpeed = 0.1
	minZoom   = 0.05
	maxZoom   = 100.0
)

// Canvas 相机
// 功能：维护平移、缩放与窗口大小，是地图坐标与屏幕坐标之间换算的唯一途径
// 说明：screen = map * zoom - cam
type Canvas struct {
	CamX    float64
	CamY    float64
	CamZoom float64

	WindowWidth  float64
	WindowHeight float64

	cursorX  float64
	cursorY  float64
	dragging bool
}

func NewCanvas(width, height float64) *Canvas {
	return &Canvas{
		CamZoom:      1,
		WindowWidth:  width,
		WindowHeight: height,
		cursorX:      width / 2,
		cursorY:      height / 2,
	}
}

// HandleEvent 按顺序处理输入批中的相机相关事件
// 功能：左键按下开始拖动，拖动时移动鼠标平移相机；滚轮以光标为中心缩放；窗口大小变化
func (c *Canvas) HandleEvent(in *UserInput) {
	for _, e := range in.Events {
		switch e.Type {
		case EventMouseDown:
			c.dragging = true
		case EventMouseUp:
			c.dragging = false
		case EventMouseMove:
			if c.dragging {
				c.CamX -= e.X - c.cursorX
				c.CamY -= e.Y - c.cursorY
			}
			c.cursorX, c.cursorY = e.X, e.Y
		case EventScroll:
			c.zoomAroundCursor(e.Delta)
		case EventResize:
			c.WindowWidth, c.WindowHeight = e.Width, e.Height
		}
	}
}

// zoomAroundCursor 缩放后光标下的地图点保持不动
func (c *Canvas) zoomAroundCursor(delta float64) {
	anchor := c.ScreenToMap(c.cursorX, c.cursorY)
	c.CamZoom = lo.Clamp(c.CamZoom*math.Pow(1+zoomSpeed, delta), minZoom, maxZoom)
	c.CamX = anchor[0]*c.CamZoom - c.cursorX
	c.CamY = anchor[1]*c.CamZoom - c.cursorY
}

func (c *Canvas) IsDragging() bool {
	return c.dragging
}

// CursorInMapSpace 光标所在的地图坐标
func (c *Canvas) CursorInMapSpace() orb.Point {
	return c.ScreenToMap(c.cursorX, c.cursorY)
}

func (c *Canvas) ScreenToMap(x, y float64) orb.Point {
	return orb.Point{(x + c.CamX) / c.CamZoom, (y + c.CamY) / c.CamZoom}
}

func (c *Canvas) MapToScreen(pt orb.Point) (x, y float64) {
	return pt[0]*c.CamZoom - c.CamX, pt[1]*c.CamZoom - c.CamY
}

// CenterOnMapPt 将相机移动到使pt位于窗口中心
func (c *Canvas) CenterOnMapPt(pt orb.Point) {
	c.CamX = pt[0]*c.CamZoom - c.WindowWidth/2
	c.CamY = pt[1]*c.CamZoom - c.WindowHeight/2
}

// ScreenBound 窗口覆盖的地图范围
func (c *Canvas) ScreenBound() orb.Bound {
	return orb.MultiPoint{
		c.ScreenToMap(0, 0),
		c.ScreenToMap(c.WindowWidth, c.WindowHeight),
	}.Bound()
}
