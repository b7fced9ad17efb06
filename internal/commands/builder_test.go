package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearvrf/gvrf-exporter/internal/geometry"
	"github.com/gearvrf/gvrf-exporter/internal/models"
)

func TestBootstrap(t *testing.T) {
	got := NewBuilder().Bootstrap()

	assert.Equal(t, []string{
		"importPackage(org.gearvrf)",
		"importPackage(org.gearvrf.animation)",
		"var scene = gvrf.getMainScene()",
		"var camera = scene.getMainCameraRig()",
	}, got)
}

func TestBootstrap_CustomVariables(t *testing.T) {
	b := Builder{SceneVar: "s", CameraVar: "rig"}
	got := b.Bootstrap()

	require.Len(t, got, 4)
	assert.Equal(t, "var s = gvrf.getMainScene()", got[2])
	assert.Equal(t, "var rig = s.getMainCameraRig()", got[3])
	assert.Equal(t, []string{"s.clear()"}, b.Clear())
}

func TestMesh_Static(t *testing.T) {
	got := NewBuilder().Mesh(models.MeshDescriptor{
		URL:      "http://h/x.fbx",
		Name:     "Cube",
		Animated: false,
	})

	require.Len(t, got, 3)

	assert.Equal(t, `var url = "http://h/x.fbx"`, got[0])
	assert.Contains(t, got[1], `getSceneObjectByName("Cube")`)
	assert.Contains(t, got[1], "removeSceneObject")
	assert.Equal(t, "var obj = gvrf.getAssetLoader().loadModel(url, scene)", got[2])

	for _, s := range got {
		assert.NotContains(t, s, "animator")
	}
}

func TestMesh_Animated(t *testing.T) {
	got := NewBuilder().Mesh(models.MeshDescriptor{
		URL:      "http://h/rig.fbx",
		Name:     "rig.fbx",
		Animated: true,
	})

	require.Len(t, got, 7)
	assert.Equal(t, []string{
		"var animator = obj.getComponent(GVRAnimator.getComponentType())",
		"animator.start()",
		"animator.setRepeatMode(GVRRepeatMode.REPEATED)",
		"animator.setRepeatCount(-1)",
	}, got[3:])
}

func remoteLight(kind models.LightKind, diffuse, specular bool) models.LightDescriptor {
	return models.LightDescriptor{
		Name:        "Lamp",
		Position:    geometry.RemapPosition(geometry.Vec3{X: 1, Y: 2, Z: 3}),
		Rotation:    geometry.RemoteQuat{W: 1},
		Color:       models.Color{R: 1, G: 0.5, B: 0.25},
		UseDiffuse:  diffuse,
		UseSpecular: specular,
		Kind:        kind,
	}
}

func TestLight_Point(t *testing.T) {
	got, err := NewBuilder().Light(remoteLight(models.PointLight{}, true, true))
	require.NoError(t, err)

	assert.Equal(t, []string{
		`var found = scene.getSceneObjectByName("Lamp"); if (found != null) scene.removeSceneObject(found)`,
		"var lightNode = new GVRSceneObject(gvrf)",
		`lightNode.setName("Lamp")`,
		"lightNode.getTransform().setPosition(1, 3, -2)",
		"lightNode.getTransform().setRotation(1, 0, 0, 0)",
		"scene.addSceneObject(lightNode)",
		"var pointLight = new GVRPointLight(gvrf)",
		"pointLight.setDiffuseIntensity(1, 0.5, 0.25, 1)",
		"pointLight.setSpecularIntensity(1, 0.5, 0.25, 1)",
		"lightNode.attachLight(pointLight)",
	}, got)
}

func TestLight_SunWithoutIntensities(t *testing.T) {
	got, err := NewBuilder().Light(remoteLight(models.SunLight{}, false, false))
	require.NoError(t, err)

	assert.Contains(t, got, "var directLight = new GVRDirectLight(gvrf)")
	assert.Equal(t, "lightNode.attachLight(directLight)", got[len(got)-1])
	for _, s := range got {
		assert.NotContains(t, s, "Intensity")
	}
}

func TestLight_SpotCones(t *testing.T) {
	got, err := NewBuilder().Light(remoteLight(models.SpotLight{OuterCone: 22.5, InnerCone: 20}, true, false))
	require.NoError(t, err)

	n := len(got)
	assert.Equal(t, "var spotLight = new GVRSpotLight(gvrf)", got[n-5])
	assert.Equal(t, "spotLight.setDiffuseIntensity(1, 0.5, 0.25, 1)", got[n-4])
	assert.Equal(t, "spotLight.setInnerConeAngle(20)", got[n-3])
	assert.Equal(t, "spotLight.setOuterConeAngle(22.5)", got[n-2])
	assert.Equal(t, "lightNode.attachLight(spotLight)", got[n-1])
}

func TestLight_MissingKind(t *testing.T) {
	_, err := NewBuilder().Light(models.LightDescriptor{Name: "Area"})
	assert.ErrorIs(t, err, models.ErrUnsupportedKind)
}

func TestCamera(t *testing.T) {
	got := NewBuilder().Camera(models.CameraDescriptor{
		Position: geometry.RemapPosition(geometry.Vec3{X: 7, Y: -6, Z: 5}),
		Rotation: geometry.RemoteQuat{W: 0.5, X: -0.5, Y: 0.5, Z: 0.5},
		Near:     0.1,
		Far:      100,
	})

	assert.Equal(t, []string{
		"camera.getTransform().setPosition(7, 5, 6)",
		"camera.getTransform().setRotation(0.5, -0.5, 0.5, 0.5)",
		"camera.setNearClippingDistance(0.1)",
		"camera.setFarClippingDistance(100)",
	}, got)
}

func TestStatementsAreSingleLines(t *testing.T) {
	b := NewBuilder()
	all := append(b.Bootstrap(), b.Mesh(models.MeshDescriptor{URL: "u", Name: "n", Animated: true})...)
	all = append(all, SetAmbient("l", 0.1, 0.2, 0.3, 1))

	for _, s := range all {
		assert.False(t, strings.ContainsAny(s, "\r\n"), "statement %q", s)
	}
}

func TestNumberFormatting(t *testing.T) {
	tests := map[float64]string{
		0:          "0",
		1:          "1",
		-2.5:       "-2.5",
		0.1:        "0.1",
		1e-7:       "0.0000001",
		123456789:  "123456789",
		-0.0000305: "-0.0000305",
	}

	for in, want := range tests {
		assert.Equal(t, want, number(in))
	}
}
