// Package commands builds GVRf console statements.
//
// Every function returns one line of Rhino JavaScript for the "js" mode of
// the GVRf debug console, without the trailing line break. Numbers are
// written as plain decimals. Names and URLs are embedded as double quoted
// literals and are not escaped: callers must not pass quotes or line breaks.
package commands

import (
	"fmt"
	"strconv"
)

// Default variable names bound on the device by Bootstrap.
const (
	DefaultSceneVar  = "scene"
	DefaultCameraVar = "camera"
)

// Workflow variables reused by every element of a given kind.
const (
	VarURL         = "url"
	VarObject      = "obj"
	VarAnimator    = "animator"
	VarLightNode   = "lightNode"
	VarPointLight  = "pointLight"
	VarDirectLight = "directLight"
	VarSpotLight   = "spotLight"
)

// RepeatInfinite is the animator repeat count for endless playback.
const RepeatInfinite = -1

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func quote(s string) string {
	return `"` + s + `"`
}

func ImportPackage() string {
	return "importPackage(org.gearvrf)"
}

func ImportAnimationPackage() string {
	return "importPackage(org.gearvrf.animation)"
}

func BindScene(sceneVar string) string {
	return fmt.Sprintf("var %s = gvrf.getMainScene()", sceneVar)
}

func BindCamera(cameraVar, sceneVar string) string {
	return fmt.Sprintf("var %s = %s.getMainCameraRig()", cameraVar, sceneVar)
}

func ClearScene(sceneVar string) string {
	return sceneVar + ".clear()"
}

func BindURL(urlVar, url string) string {
	return fmt.Sprintf("var %s = %s", urlVar, quote(url))
}

// RemoveByName removes the first scene object called name, if any.
func RemoveByName(sceneVar, name string) string {
	return fmt.Sprintf(
		"var found = %s.getSceneObjectByName(%s); if (found != null) %s.removeSceneObject(found)",
		sceneVar, quote(name), sceneVar)
}

func LoadModel(objVar, urlVar, sceneVar string) string {
	return fmt.Sprintf("var %s = gvrf.getAssetLoader().loadModel(%s, %s)", objVar, urlVar, sceneVar)
}

func GetAnimator(animatorVar, objVar string) string {
	return fmt.Sprintf("var %s = %s.getComponent(GVRAnimator.getComponentType())", animatorVar, objVar)
}

func AnimatorStart(animatorVar string) string {
	return animatorVar + ".start()"
}

func AnimatorRepeatMode(animatorVar string) string {
	return animatorVar + ".setRepeatMode(GVRRepeatMode.REPEATED)"
}

func AnimatorRepeatCount(animatorVar string, count int) string {
	return fmt.Sprintf("%s.setRepeatCount(%d)", animatorVar, count)
}

func CreateSceneObject(objVar string) string {
	return fmt.Sprintf("var %s = new GVRSceneObject(gvrf)", objVar)
}

func SetName(objVar, name string) string {
	return fmt.Sprintf("%s.setName(%s)", objVar, quote(name))
}

func SetPosition(objVar string, x, y, z float64) string {
	return fmt.Sprintf("%s.getTransform().setPosition(%s, %s, %s)",
		objVar, number(x), number(y), number(z))
}

func SetRotation(objVar string, w, x, y, z float64) string {
	return fmt.Sprintf("%s.getTransform().setRotation(%s, %s, %s, %s)",
		objVar, number(w), number(x), number(y), number(z))
}

func AddToScene(sceneVar, objVar string) string {
	return fmt.Sprintf("%s.addSceneObject(%s)", sceneVar, objVar)
}

func CreatePointLight(lightVar string) string {
	return fmt.Sprintf("var %s = new GVRPointLight(gvrf)", lightVar)
}

func CreateDirectLight(lightVar string) string {
	return fmt.Sprintf("var %s = new GVRDirectLight(gvrf)", lightVar)
}

func CreateSpotLight(lightVar string) string {
	return fmt.Sprintf("var %s = new GVRSpotLight(gvrf)", lightVar)
}

func intensity(lightVar, method string, r, g, b, a float64) string {
	return fmt.Sprintf("%s.%s(%s, %s, %s, %s)", lightVar, method, number(r), number(g), number(b), number(a))
}

// SetAmbient is part of the console vocabulary but the export workflow
// never emits it.
func SetAmbient(lightVar string, r, g, b, a float64) string {
	return intensity(lightVar, "setAmbientIntensity", r, g, b, a)
}

func SetDiffuse(lightVar string, r, g, b, a float64) string {
	return intensity(lightVar, "setDiffuseIntensity", r, g, b, a)
}

func SetSpecular(lightVar string, r, g, b, a float64) string {
	return intensity(lightVar, "setSpecularIntensity", r, g, b, a)
}

func SetInnerCone(lightVar string, angle float64) string {
	return fmt.Sprintf("%s.setInnerConeAngle(%s)", lightVar, number(angle))
}

func SetOuterCone(lightVar string, angle float64) string {
	return fmt.Sprintf("%s.setOuterConeAngle(%s)", lightVar, number(angle))
}

func AttachLight(objVar, lightVar string) string {
	return fmt.Sprintf("%s.attachLight(%s)", objVar, lightVar)
}

func SetNearClipping(cameraVar string, near float64) string {
	return fmt.Sprintf("%s.setNearClippingDistance(%s)", cameraVar, number(near))
}

func SetFarClipping(cameraVar string, far float64) string {
	return fmt.Sprintf("%s.setFarClippingDistance(%s)", cameraVar, number(far))
}
