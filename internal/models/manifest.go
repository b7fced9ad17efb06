package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-version"
)

// ManifestVersions are the manifest versions this exporter reads.
var ManifestVersions = mustConstraint(">= 1.0, < 2.0")

func mustConstraint(c string) version.Constraints {
	constraints, err := version.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraints
}

const defaultManifestVersion = "1.0"

type ObjectType string

const (
	ObjectTypeMesh     ObjectType = "mesh"
	ObjectTypeArmature ObjectType = "armature"
	ObjectTypeLight    ObjectType = "light"
	ObjectTypeCamera   ObjectType = "camera"
)

// Manifest lists the objects of an authored scene. Positions and
// rotations are in authoring-tool space.
type Manifest struct {
	Version *version.Version `json:"version,omitempty" yaml:"version,omitempty"`
	Objects []SceneObject    `json:"objects" yaml:"objects"`

	// Directory relative paths are resolved against. Set by the loader.
	BasePath string `json:"-" yaml:"-"`
}

type SceneObject struct {
	Name     string      `json:"name" yaml:"name"`
	Type     ObjectType  `json:"type" yaml:"type"`
	Parent   string      `json:"parent,omitempty" yaml:"parent,omitempty"`
	Location [3]float64  `json:"location" yaml:"location"`
	Rotation *[4]float64 `json:"rotation,omitempty" yaml:"rotation,omitempty"` // w, x, y, z

	Mesh   *MeshSource   `json:"mesh,omitempty" yaml:"mesh,omitempty"`
	Light  *LightSource  `json:"light,omitempty" yaml:"light,omitempty"`
	Camera *CameraSource `json:"camera,omitempty" yaml:"camera,omitempty"`
}

type MeshSource struct {
	File     string   `json:"file" yaml:"file"`
	Textures []string `json:"textures,omitempty" yaml:"textures,omitempty"`
}

type LightSource struct {
	Type        string     `json:"type" yaml:"type"`
	Color       [3]float64 `json:"color" yaml:"color"`
	UseDiffuse  bool       `json:"use_diffuse" yaml:"use_diffuse"`
	UseSpecular bool       `json:"use_specular" yaml:"use_specular"`

	// Spot lights only. SpotSize is the full cone angle in radians.
	SpotSize  float64 `json:"spot_size,omitempty" yaml:"spot_size,omitempty"`
	SpotBlend float64 `json:"spot_blend,omitempty" yaml:"spot_blend,omitempty"`
	Distance  float64 `json:"distance,omitempty" yaml:"distance,omitempty"`
}

type CameraSource struct {
	ClipStart float64 `json:"clip_start" yaml:"clip_start"`
	ClipEnd   float64 `json:"clip_end" yaml:"clip_end"`
}

// GetRotation returns the rotation quaternion, identity when unset.
func (o *SceneObject) GetRotation() [4]float64 {
	if o.Rotation == nil {
		return [4]float64{1, 0, 0, 0}
	}
	return *o.Rotation
}

func (o *SceneObject) Validate() error {
	if len(strings.TrimSpace(o.Name)) == 0 {
		return fmt.Errorf("object has no name")
	}

	switch o.Type {
	case ObjectTypeMesh, ObjectTypeArmature:
		if o.Mesh == nil || len(o.Mesh.File) == 0 {
			return fmt.Errorf("object %q: %s requires mesh.file", o.Name, o.Type)
		}
	case ObjectTypeLight:
		if o.Light == nil {
			return fmt.Errorf("object %q: light requires a light block", o.Name)
		}
	case ObjectTypeCamera:
		if o.Camera == nil {
			return fmt.Errorf("object %q: camera requires a camera block", o.Name)
		}
	}

	return nil
}

// UnmarshalJSON accepts the version as a string or a number.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	aux := &struct {
		Version any           `json:"version"`
		Objects []SceneObject `json:"objects"`
	}{}

	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	parsedVersion, err := version.NewVersion(versionString(aux.Version))
	if err != nil {
		return fmt.Errorf("manifest version: %w", err)
	}

	m.Version = parsedVersion
	m.Objects = aux.Objects

	return nil
}

func versionString(v any) string {
	switch t := v.(type) {
	case nil:
		return defaultManifestVersion
	case string:
		if len(strings.TrimSpace(t)) == 0 {
			return defaultManifestVersion
		}
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}

func (m *Manifest) Validate() error {
	if m.Version != nil && !ManifestVersions.Check(m.Version) {
		return fmt.Errorf("unsupported manifest version %s (want %s)", m.Version, ManifestVersions)
	}

	seen := make(map[string]struct{}, len(m.Objects))
	for i := range m.Objects {
		obj := &m.Objects[i]
		if err := obj.Validate(); err != nil {
			return err
		}
		if _, dup := seen[obj.Name]; dup {
			return fmt.Errorf("duplicate object name %q", obj.Name)
		}
		seen[obj.Name] = struct{}{}
	}
	return nil
}

// Children returns the objects whose parent is name.
func (m *Manifest) Children(name string) []*SceneObject {
	var children []*SceneObject
	for i := range m.Objects {
		if m.Objects[i].Parent == name {
			children = append(children, &m.Objects[i])
		}
	}
	return children
}
