package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdginn/go-ray-optics/optics/config"
)

func TestTraceBenchABCD(t *testing.T) {
	assert := assert.New(t)

	bench, err := config.Parse([]byte(`
family: abcd
ray: {weighting: uniform}
bundle: {half_width: 2, rays: 5}
elements:
  - {type: space, d: 5}
  - {type: curved_interface, r: 1.5}
  - {type: space, d: 2}
`))
	require.NoError(t, err)
	require.Empty(t, bench.Validate())

	result, err := traceBench(context.Background(), bench)
	require.NoError(t, err)
	assert.Len(result.rays, 5)
	assert.Empty(result.angles)
	assert.Equal(2, result.failures())

	d, err := result.diagram(true)
	require.NoError(t, err)
	assert.Len(d.Rays, 3)
	assert.Equal([]float64(nil), d.Planes)
	require.Len(t, d.Surfaces, 1)
	assert.Equal(5.0, d.Surfaces[0].X)

	d, err = result.diagram(false)
	require.NoError(t, err)
	assert.Len(d.Rays, 5)

	p, err := result.plot("bench", d)
	require.NoError(t, err)
	assert.Equal("bench", p.Title.Text)
}

func TestTraceBenchAngle(t *testing.T) {
	assert := assert.New(t)

	bench, err := config.Parse([]byte(`
family: angle
ray: {y: -0.5}
bundle: {half_width: 0.4, rays: 3}
elements:
  - {type: prism, side_length: 4, center: 6}
  - {type: mirror_at, position: 12}
`))
	require.NoError(t, err)
	require.Empty(t, bench.Validate())

	result, err := traceBench(context.Background(), bench)
	require.NoError(t, err)
	assert.Len(result.angles, 3)
	assert.Equal(0, result.failures())

	d, err := result.diagram(false)
	require.NoError(t, err)
	assert.Equal([]float64{12}, d.Planes)
	assert.Len(d.Prisms, 1)
	assert.Len(d.AngleRays, 3)
}
