package entity

import (
	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"
)

// SliceTraversable 截取路段中心线上[s0, s1]的部分，s超出范围时截断到端点
func SliceTraversable(tr ITraversable, s0, s1 float64) PolyLine {
	length := tr.Length()
	s0, s1 = lo.Clamp(s0, 0, length), lo.Clamp(s1, 0, length)
	if s0 > s1 {
		s0, s1 = s1, s0
	}
	line := tr.CenterLine()
	lengths := geometry.GetPolylineLengths2D(line)
	out := PolyLine{tr.GetPositionByS(s0)}
	for i, s := range lengths {
		if s > s0 && s < s1 {
			out = append(out, line[i])
		}
	}
	return append(out, tr.GetPositionByS(s1))
}
