package commands

import (
	"fmt"

	"github.com/gearvrf/gvrf-exporter/internal/models"
)

// Builder turns scene element descriptors into ordered statement
// sequences. The variable names are the ones bound on the device for the
// current connection.
type Builder struct {
	SceneVar  string
	CameraVar string
}

func NewBuilder() Builder {
	return Builder{
		SceneVar:  DefaultSceneVar,
		CameraVar: DefaultCameraVar,
	}
}

// Bootstrap prepares a freshly switched js console: package imports and
// the scene and camera bindings.
func (b Builder) Bootstrap() []string {
	return []string{
		ImportPackage(),
		ImportAnimationPackage(),
		BindScene(b.SceneVar),
		BindCamera(b.CameraVar, b.SceneVar),
	}
}

func (b Builder) Clear() []string {
	return []string{ClearScene(b.SceneVar)}
}

// Mesh replaces any object called m.Name with the model at m.URL and, for
// animated models, starts its animator in endless repeat.
func (b Builder) Mesh(m models.MeshDescriptor) []string {
	statements := []string{
		BindURL(VarURL, m.URL),
		RemoveByName(b.SceneVar, m.Name),
		LoadModel(VarObject, VarURL, b.SceneVar),
	}

	if m.Animated {
		statements = append(statements,
			GetAnimator(VarAnimator, VarObject),
			AnimatorStart(VarAnimator),
			AnimatorRepeatMode(VarAnimator),
			AnimatorRepeatCount(VarAnimator, RepeatInfinite),
		)
	}

	return statements
}

// Light replaces any object called l.Name with a new node carrying the
// light. Only the intensities enabled on the source are set.
func (b Builder) Light(l models.LightDescriptor) ([]string, error) {
	var lightVar, create string

	switch l.Kind.(type) {
	case models.PointLight:
		lightVar = VarPointLight
		create = CreatePointLight(lightVar)
	case models.SunLight:
		lightVar = VarDirectLight
		create = CreateDirectLight(lightVar)
	case models.SpotLight:
		lightVar = VarSpotLight
		create = CreateSpotLight(lightVar)
	default:
		return nil, fmt.Errorf("%w: light %q has kind %T", models.ErrUnsupportedKind, l.Name, l.Kind)
	}

	statements := []string{RemoveByName(b.SceneVar, l.Name)}
	statements = append(statements, b.lightNode(l)...)
	statements = append(statements, create)

	c := l.Color
	if l.UseDiffuse {
		statements = append(statements, SetDiffuse(lightVar, c.R, c.G, c.B, 1))
	}
	if l.UseSpecular {
		statements = append(statements, SetSpecular(lightVar, c.R, c.G, c.B, 1))
	}

	if spot, ok := l.Kind.(models.SpotLight); ok {
		statements = append(statements,
			SetInnerCone(lightVar, spot.InnerCone),
			SetOuterCone(lightVar, spot.OuterCone),
		)
	}

	return append(statements, AttachLight(VarLightNode, lightVar)), nil
}

func (b Builder) lightNode(l models.LightDescriptor) []string {
	p, r := l.Position, l.Rotation
	return []string{
		CreateSceneObject(VarLightNode),
		SetName(VarLightNode, l.Name),
		SetPosition(VarLightNode, p.X, p.Y, p.Z),
		SetRotation(VarLightNode, r.W, r.X, r.Y, r.Z),
		AddToScene(b.SceneVar, VarLightNode),
	}
}

// Camera moves the main camera rig and sets its clipping planes.
func (b Builder) Camera(c models.CameraDescriptor) []string {
	p, r := c.Position, c.Rotation
	return []string{
		SetPosition(b.CameraVar, p.X, p.Y, p.Z),
		SetRotation(b.CameraVar, r.W, r.X, r.Y, r.Z),
		SetNearClipping(b.CameraVar, c.Near),
		SetFarClipping(b.CameraVar, c.Far),
	}
}
