package exporter

import (
	"fmt"
	"strings"

	"github.com/gearvrf/gvrf-exporter/internal/geometry"
	"github.com/gearvrf/gvrf-exporter/internal/models"
)

// transform converts an object's location and rotation into device space.
func transform(obj *models.SceneObject) (geometry.RemoteVec3, geometry.RemoteQuat, error) {
	position := geometry.RemapPosition(geometry.NewVec3(obj.Location))

	rotation, err := geometry.RemapOrientation(geometry.NewQuat(obj.GetRotation()))
	if err != nil {
		return geometry.RemoteVec3{}, geometry.RemoteQuat{}, fmt.Errorf("object %q: %w", obj.Name, err)
	}

	return position, rotation, nil
}

func lightKind(src *models.LightSource) (models.LightKind, error) {
	switch strings.ToUpper(src.Type) {
	case models.LightTypePoint:
		return models.PointLight{}, nil
	case models.LightTypeSun:
		return models.SunLight{}, nil
	case models.LightTypeSpot:
		outer, inner := geometry.SpotCone(src.SpotSize, src.SpotBlend, src.Distance)
		return models.SpotLight{OuterCone: outer, InnerCone: inner}, nil
	default:
		return nil, fmt.Errorf("%w: light type %q", ErrUnsupportedKind, src.Type)
	}
}

func lightDescriptor(obj *models.SceneObject) (models.LightDescriptor, error) {
	kind, err := lightKind(obj.Light)
	if err != nil {
		return models.LightDescriptor{}, fmt.Errorf("object %q: %w", obj.Name, err)
	}

	position, rotation, err := transform(obj)
	if err != nil {
		return models.LightDescriptor{}, err
	}

	return models.LightDescriptor{
		Name:        obj.Name,
		Position:    position,
		Rotation:    rotation,
		Color:       models.NewColor(obj.Light.Color),
		UseDiffuse:  obj.Light.UseDiffuse,
		UseSpecular: obj.Light.UseSpecular,
		Kind:        kind,
	}, nil
}

func cameraDescriptor(obj *models.SceneObject) (models.CameraDescriptor, error) {
	position, rotation, err := transform(obj)
	if err != nil {
		return models.CameraDescriptor{}, err
	}

	return models.CameraDescriptor{
		Position: position,
		Rotation: rotation,
		Near:     obj.Camera.ClipStart,
		Far:      obj.Camera.ClipEnd,
	}, nil
}
