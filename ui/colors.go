package ui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tsinghua-fib-lab/agentsociety-viewer/render"
	"gopkg.in/yaml.v2"
)

// ColorScheme 可编辑的配色表
// 功能：按名称取颜色，未配置的名称记录默认值，保存后即成为可编辑的配色文件
type ColorScheme struct {
	path   string
	colors map[string]render.Color
}

// LoadColorScheme 从YAML文件加载配色，文件不存在时返回空配色表
func LoadColorScheme(path string) (*ColorScheme, error) {
	cs := &ColorScheme{path: path, colors: make(map[string]render.Color)}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Infof("no color scheme at %s, using defaults", path)
		return cs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read color scheme: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &cs.colors); err != nil {
		return nil, fmt.Errorf("parse color scheme %s: %w", path, err)
	}
	return cs, nil
}

// GetDef 取名为name的颜色，未配置时登记并返回def
func (cs *ColorScheme) GetDef(name string, def render.Color) render.Color {
	if c, ok := cs.colors[name]; ok {
		return c
	}
	cs.colors[name] = def
	return def
}

// Save 写回配色文件
func (cs *ColorScheme) Save() error {
	data, err := yaml.Marshal(cs.colors)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cs.path, data, 0o644); err != nil {
		return fmt.Errorf("save color scheme: %w", err)
	}
	log.Infof("Saved color scheme to %s", cs.path)
	return nil
}
