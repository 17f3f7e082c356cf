package config

import (
	"fmt"

	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
)

const (
	defaultListen       = ":51180"
	defaultFPS          = 30
	defaultEditorState  = "editor_state.yaml"
	defaultColorScheme  = "color_scheme.yaml"
	defaultWindowWidth  = 1280
	defaultWindowHeight = 800
	defaultInterval     = 0.1
	defaultMapName      = "demo"
)

// RuntimeConfig 运行时配置
// 功能：在原始YAML配置的基础上补全默认值，并解析车道类型覆盖表
type RuntimeConfig struct {
	All       Config                    // 全部配置
	C         Control                   // 全局控制配置
	V         Viewer                    // 前端配置（已补全默认值）
	MapName   string                    // 地图名
	LaneTypes map[int32]entity.LaneType // 车道类型覆盖表
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：补全默认值，解析lane_types，名称无法识别时返回错误
func NewRuntimeConfig(config Config) (*RuntimeConfig, error) {
	rc := &RuntimeConfig{
		All:       config,
		C:         config.Control,
		V:         config.Viewer,
		MapName:   config.Map.Name,
		LaneTypes: make(map[int32]entity.LaneType, len(config.Map.LaneTypes)),
	}
	if rc.C.Step.Interval <= 0 {
		rc.C.Step.Interval = defaultInterval
	}
	if rc.V.Listen == "" {
		rc.V.Listen = defaultListen
	}
	if rc.V.FPS <= 0 {
		rc.V.FPS = defaultFPS
	}
	if rc.V.EditorState == "" {
		rc.V.EditorState = defaultEditorState
	}
	if rc.V.ColorScheme == "" {
		rc.V.ColorScheme = defaultColorScheme
	}
	if rc.V.WindowWidth <= 0 {
		rc.V.WindowWidth = defaultWindowWidth
	}
	if rc.V.WindowHeight <= 0 {
		rc.V.WindowHeight = defaultWindowHeight
	}
	if rc.MapName == "" {
		if config.Input.Map.Empty() {
			rc.MapName = defaultMapName
		} else if config.Input.Map.File != "" {
			rc.MapName = config.Input.Map.File
		} else {
			rc.MapName = config.Input.Map.DB + "." + config.Input.Map.Col
		}
	}
	for id, name := range config.Map.LaneTypes {
		t, err := entity.ParseLaneType(name)
		if err != nil {
			return nil, fmt.Errorf("map.lane_types[%d]: %w", id, err)
		}
		rc.LaneTypes[id] = t
	}
	return rc, nil
}
