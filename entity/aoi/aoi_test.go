package aoi

import (
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	geov2 "git.fiblab.net/sim/protos/v2/go/city/geo/v2"
	mapv2 "git.fiblab.net/sim/protos/v2/go/city/map/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAoiBoundary(t *testing.T) {
	b := BaseFromPb(&mapv2.Aoi{
		Id: 3,
		Positions: []*geov2.XYPosition{
			{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 0, Y: 2}, {X: 0, Y: 0},
		},
	})
	a := newAoi(b)
	assert.Len(t, a.Boundary(), 4)
	assert.InDelta(t, 2, a.Centroid().X, 1e-9)
	assert.InDelta(t, 1, a.Centroid().Y, 1e-9)
}

func TestPointAoi(t *testing.T) {
	a := newAoi(Base{ID: 1, Boundary: []geometry.Point{{X: 10, Y: 10}}})
	require.Len(t, a.Boundary(), 4)
	assert.InDelta(t, 10, a.Centroid().X, 1e-9)
	assert.Panics(t, func() { newAoi(Base{ID: 2}) })
}

func TestManager(t *testing.T) {
	m := NewManager()
	m.Init([]Base{
		{ID: 5, Boundary: []geometry.Point{{X: 0, Y: 0}}},
		{ID: 2, Boundary: []geometry.Point{{X: 1, Y: 1}}},
	})
	aois := m.Aois()
	require.Len(t, aois, 2)
	assert.Equal(t, int32(2), aois[0].ID())
	_, err := m.GetOrError(9)
	assert.Error(t, err)
	assert.Equal(t, int32(5), m.Get(5).ID())
}
