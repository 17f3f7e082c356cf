package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/utils/config"
	"gopkg.in/yaml.v2"
)

const sample = `
input:
  map:
    file: data/map.pb
control:
  step:
    start: 0
    total: 3600
    interval: 1
  seed: 7
  spawn:
    cars: 10
    parked_cars: 5
    pedestrians: 20
map:
  lane_types:
    12: parking
    13: bus
viewer:
  listen: ":9000"
`

func TestNewRuntimeConfig(t *testing.T) {
	var c config.Config
	require.NoError(t, yaml.UnmarshalStrict([]byte(sample), &c))
	rc, err := config.NewRuntimeConfig(c)
	require.NoError(t, err)

	assert.Equal(t, ":9000", rc.V.Listen)
	assert.Equal(t, 30, rc.V.FPS)
	assert.Equal(t, "data/map.pb", rc.MapName)
	assert.Equal(t, 1.0, rc.C.Step.Interval)
	assert.Equal(t, 20, rc.C.Spawn.Pedestrians)
	assert.Equal(t, map[int32]entity.LaneType{
		12: entity.LaneTypeParking,
		13: entity.LaneTypeBus,
	}, rc.LaneTypes)
}

func TestNewRuntimeConfigDefaults(t *testing.T) {
	rc, err := config.NewRuntimeConfig(config.Config{})
	require.NoError(t, err)
	assert.Equal(t, "demo", rc.MapName)
	assert.Equal(t, 0.1, rc.C.Step.Interval)
	assert.Equal(t, "editor_state.yaml", rc.V.EditorState)
	assert.Equal(t, "color_scheme.yaml", rc.V.ColorScheme)
	assert.Empty(t, rc.LaneTypes)
}

func TestNewRuntimeConfigBadLaneType(t *testing.T) {
	c := config.Config{Map: config.Map{LaneTypes: map[int32]string{1: "tram"}}}
	_, err := config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "tram")
}

func TestUnknownFieldRejected(t *testing.T) {
	var c config.Config
	err := yaml.UnmarshalStrict([]byte("viewer:\n  colour: red\n"), &c)
	assert.Error(t, err)
}
