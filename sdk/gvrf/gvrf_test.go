package gvrf_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearvrf/gvrf-exporter/sdk/gvrf"
)

func TestPublicAPI(t *testing.T) {
	p := gvrf.RemapPosition(gvrf.Vec3{X: 1, Y: 2, Z: 3})
	assert.Equal(t, gvrf.RemoteVec3{X: 1, Y: 3, Z: -2}, p)

	_, err := gvrf.RemapOrientation(gvrf.Quat{})
	assert.True(t, errors.Is(err, gvrf.ErrZeroQuaternion))

	statements, err := gvrf.NewBuilder().Light(gvrf.LightDescriptor{
		Name: "Sun",
		Kind: gvrf.SunLight{},
	})
	require.NoError(t, err)
	assert.Contains(t, statements, "var directLight = new GVRDirectLight(gvrf)")

	assert.ErrorIs(t, gvrf.ErrNotConnected, gvrf.ErrConnection)
	assert.Equal(t, 1645, gvrf.DefaultPort)
}
