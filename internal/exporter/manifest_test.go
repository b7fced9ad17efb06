package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearvrf/gvrf-exporter/internal/models"
)

const sampleManifest = `version: 1.0
objects:
  - name: Cube
    type: mesh
    location: [1, 2, 3]
    rotation: [1, 0, 0, 0]
    mesh:
      file: assets/cube.fbx
      textures: [textures/wood.png]
  - name: Lamp
    type: light
    light:
      type: SPOT
      color: [1, 1, 1]
      use_diffuse: true
      spot_size: 0.785
      spot_blend: 0.15
      distance: 30
  - name: Camera
    type: camera
    camera: {clip_start: 0.1, clip_end: 100}
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadManifest_YAML(t *testing.T) {
	path := writeManifest(t, sampleManifest)

	m, err := LoadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", m.Version.String())
	require.Len(t, m.Objects, 3)
	assert.Equal(t, filepath.Dir(path), m.BasePath)

	cube := m.Objects[0]
	assert.Equal(t, models.ObjectTypeMesh, cube.Type)
	assert.Equal(t, [3]float64{1, 2, 3}, cube.Location)
	assert.Equal(t, "assets/cube.fbx", cube.Mesh.File)

	lamp := m.Objects[1]
	assert.Equal(t, "SPOT", lamp.Light.Type)
	assert.InDelta(t, 0.15, lamp.Light.SpotBlend, 1e-9)
	assert.Equal(t, [4]float64{1, 0, 0, 0}, lamp.GetRotation())

	assert.Equal(t, 100.0, m.Objects[2].Camera.ClipEnd)

	assert.Equal(t, []string{
		filepath.Join(m.BasePath, "assets/cube.fbx"),
		filepath.Join(m.BasePath, "textures/wood.png"),
	}, sourceFiles(m))
}

func TestLoadManifest_JSON(t *testing.T) {
	path := writeManifest(t, `{"version": "1.2", "objects": [{"name": "Sun", "type": "light", "light": {"type": "SUN"}}]}`)

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", m.Version.String())
	assert.Equal(t, "Sun", m.Objects[0].Name)
}

func TestLoadManifest_Invalid(t *testing.T) {
	tests := map[string]string{
		"unsupported version": `{"version": "2.0", "objects": []}`,
		"duplicate names": `objects:
  - {name: A, type: camera, camera: {clip_end: 1}}
  - {name: A, type: camera, camera: {clip_end: 1}}`,
		"mesh without file": `objects:
  - {name: Cube, type: mesh}`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadManifest(writeManifest(t, content))
			assert.Error(t, err)
		})
	}

	_, err := LoadManifest(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}
