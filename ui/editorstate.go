package ui

import (
	"fmt"
	"os"

	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/render"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/task"
	"gopkg.in/yaml.v2"
)

// EditorState 退出时保存的相机状态
type EditorState struct {
	MapName string  `yaml:"map_name"`
	CamX    float64 `yaml:"cam_x"`
	CamY    float64 `yaml:"cam_y"`
	CamZoom float64 `yaml:"cam_zoom"`
}

func LoadEditorState(path string) (EditorState, error) {
	var s EditorState
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.UnmarshalStrict(data, &s); err != nil {
		return s, fmt.Errorf("parse editor state %s: %w", path, err)
	}
	return s, nil
}

func (s EditorState) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// restoreCamera 恢复相机
// 功能：读取同一地图保存的相机状态；没有时依次尝试以0号建筑、0号车道为中心，都不存在时返回错误
func restoreCamera(c *Canvas, path string, session *task.Context) error {
	m := session.Map()
	s, err := LoadEditorState(path)
	if err == nil && s.MapName == m.Name() && s.CamZoom > 0 {
		log.Info("Loaded previous editor state")
		c.CamX, c.CamY, c.CamZoom = s.CamX, s.CamY, s.CamZoom
		return nil
	}
	log.Warnf("Couldn't load editor state or it's for a different map, so just focusing on an arbitrary building")
	for _, id := range []entity.ID{entity.BuildingID(0), entity.LaneID(0)} {
		if pt, ok := render.CanonicalPoint(id, session.DrawMap(), session.Sim(), m); ok {
			c.CenterOnMapPt(pt)
			return nil
		}
	}
	return fmt.Errorf("can't get canonical point of %v or %v", entity.BuildingID(0), entity.LaneID(0))
}
