package render

import "fmt"

// Color RGBA颜色，分量取值[0, 1]
type Color struct {
	R float64 `json:"r" yaml:"r"`
	G float64 `json:"g" yaml:"g"`
	B float64 `json:"b" yaml:"b"`
	A float64 `json:"a" yaml:"a"`
}

// RGB 由0~255的分量构造不透明颜色
func RGB(r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: 1}
}

// Alpha 替换透明度
func (c Color) Alpha(a float64) Color {
	c.A = a
	return c
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x",
		uint8(c.R*255+0.5), uint8(c.G*255+0.5), uint8(c.B*255+0.5), uint8(c.A*255+0.5))
}

var (
	Black = RGB(0, 0, 0)
	White = RGB(255, 255, 255)
	Red   = RGB(255, 0, 0)
	Green = RGB(0, 255, 0)
	Blue  = RGB(0, 0, 255)
)

// Palette 按名称取颜色，未配置时使用默认值
type Palette interface {
	GetDef(name string, def Color) Color
}

// DefaultPalette 总是返回默认值
type DefaultPalette struct{}

func (DefaultPalette) GetDef(_ string, def Color) Color {
	return def
}
