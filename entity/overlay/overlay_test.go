package overlay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
)

const sample = `
shapes:
  - kind: shape
    name: bus route
    points: [[0, 0], [10, 0], [10, 10]]
  - kind: area
    name: park
    points: [[0, 0], [5, 0], [5, 5], [0, 5]]
  - name: fence
    closed: true
    points: [[1, 1], [2, 1], [2, 2]]
`

func TestParse(t *testing.T) {
	bases, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, bases, 3)
	assert.Equal(t, entity.KindExtraShape, bases[0].Kind)
	assert.False(t, bases[0].Closed)
	assert.Equal(t, entity.KindArea, bases[1].Kind)
	assert.True(t, bases[1].Closed)
	assert.True(t, bases[2].Closed)
	assert.Equal(t, 10.0, bases[0].Points[2].Y)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("shapes:\n  - kind: circle\n    points: [[0,0],[1,1]]\n"))
	assert.ErrorContains(t, err, "unknown kind")
	_, err = Parse([]byte("shapes:\n  - kind: area\n    points: [[0,0],[1,1]]\n"))
	assert.ErrorContains(t, err, "at least 3")
	_, err = Parse([]byte("shapes:\n  - kind: area\n    color: red\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	bases, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, bases)

	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	bases, err = Load(path)
	require.NoError(t, err)
	assert.Len(t, bases, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestManager(t *testing.T) {
	bases, err := Parse([]byte(sample))
	require.NoError(t, err)
	m := NewManager()
	m.Init(bases)

	shapes := m.Shapes()
	require.Len(t, shapes, 3)
	assert.Equal(t, entity.AreaID(0), shapes[0].ID())
	assert.Equal(t, entity.ExtraShapeID(0), shapes[1].ID())
	assert.Equal(t, entity.ExtraShapeID(1), shapes[2].ID())

	s, err := m.GetOrError(entity.AreaID(0))
	require.NoError(t, err)
	assert.Equal(t, "park", s.Name())
	_, err = m.GetOrError(entity.AreaID(1))
	assert.Error(t, err)
}

func TestParseBadPoint(t *testing.T) {
	_, err := Parse([]byte("shapes:\n  - kind: shape\n    points: [[0,0],[1]]\n"))
	assert.ErrorContains(t, err, "[x, y]")
}
