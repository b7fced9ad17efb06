package models

import (
	"github.com/gearvrf/gvrf-exporter/internal/geometry"
)

// MeshDescriptor describes one model file the device should load.
type MeshDescriptor struct {
	URL      string
	Name     string
	Animated bool
}

type Color struct {
	R, G, B float64
}

func NewColor(c [3]float64) Color {
	return Color{R: c[0], G: c[1], B: c[2]}
}

func (c Color) Array() [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}

// LightKind is one of PointLight, SunLight or SpotLight.
type LightKind interface {
	// Type returns the authoring-tool name of the kind.
	Type() string
	isLightKind()
}

type PointLight struct{}

type SunLight struct{}

// SpotLight carries half-angle cone sizes in degrees.
type SpotLight struct {
	OuterCone float64
	InnerCone float64
}

func (PointLight) Type() string { return LightTypePoint }
func (SunLight) Type() string   { return LightTypeSun }
func (SpotLight) Type() string  { return LightTypeSpot }

func (PointLight) isLightKind() {}
func (SunLight) isLightKind()   {}
func (SpotLight) isLightKind()  {}

const (
	LightTypePoint = "POINT"
	LightTypeSun   = "SUN"
	LightTypeSpot  = "SPOT"
)

// LightDescriptor is a light already converted into device space.
type LightDescriptor struct {
	Name        string
	Position    geometry.RemoteVec3
	Rotation    geometry.RemoteQuat
	Color       Color
	UseDiffuse  bool
	UseSpecular bool
	Kind        LightKind
}

// CameraDescriptor is the main camera rig already converted into device space.
type CameraDescriptor struct {
	Position geometry.RemoteVec3
	Rotation geometry.RemoteQuat
	Near     float64
	Far      float64
}
