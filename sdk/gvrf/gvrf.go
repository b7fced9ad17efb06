// Package gvrf is the public API for driving a GearVR Framework debug
// console from Go: open a session, build statements for scene elements
// and convert authoring-tool transforms into device space.
//
//	session := gvrf.NewSession(gvrf.DefaultOptions())
//	if err := session.Connect(ctx, "192.168.1.20", gvrf.DefaultPort); err != nil {
//		return err
//	}
//	defer session.Disconnect()
//
//	mesh := gvrf.MeshDescriptor{URL: "http://192.168.1.5:8000/Cube.fbx", Name: "Cube.fbx"}
//	return session.ExecAll(ctx, session.Builder().Mesh(mesh))
package gvrf

import (
	"github.com/gearvrf/gvrf-exporter/internal/commands"
	"github.com/gearvrf/gvrf-exporter/internal/exporter"
	"github.com/gearvrf/gvrf-exporter/internal/geometry"
	"github.com/gearvrf/gvrf-exporter/internal/models"
	"github.com/gearvrf/gvrf-exporter/internal/remote"
)

// Session owns one connection to the debug console.
type Session = remote.Session

// Options configures dialing, read timeouts and transcript logging.
type Options = remote.Options

// Dialer opens the console connection.
type Dialer = remote.Dialer

const (
	DefaultPort   = remote.DefaultPort
	MarkerConsole = remote.MarkerConsole
	MarkerScript  = remote.MarkerScript
)

var (
	ErrConnection      = remote.ErrConnection
	ErrTimeout         = remote.ErrTimeout
	ErrNotConnected    = remote.ErrNotConnected
	ErrUnsupportedKind = models.ErrUnsupportedKind
	ErrZeroQuaternion  = geometry.ErrZeroQuaternion
)

func NewSession(opts Options) *Session {
	return remote.NewSession(opts)
}

func DefaultOptions() Options {
	return remote.DefaultOptions()
}

// Builder emits console statements for scene elements.
type Builder = commands.Builder

func NewBuilder() Builder {
	return commands.NewBuilder()
}

// Scene element descriptors, already in device space.
type (
	MeshDescriptor   = models.MeshDescriptor
	LightDescriptor  = models.LightDescriptor
	CameraDescriptor = models.CameraDescriptor
	LightKind        = models.LightKind
	PointLight       = models.PointLight
	SunLight         = models.SunLight
	SpotLight        = models.SpotLight
	Color            = models.Color
)

// Geometry in authoring-tool space and device space.
type (
	Vec3       = geometry.Vec3
	Quat       = geometry.Quat
	RemoteVec3 = geometry.RemoteVec3
	RemoteQuat = geometry.RemoteQuat
)

// RemapPosition converts an authoring-tool position to device space.
func RemapPosition(v Vec3) RemoteVec3 {
	return geometry.RemapPosition(v)
}

// RemapOrientation normalizes q and applies the device axis correction.
func RemapOrientation(q Quat) (RemoteQuat, error) {
	return geometry.RemapOrientation(q)
}

// SpotCone converts a full cone size in radians and a blend fraction into
// half-angle outer and inner cones in degrees.
func SpotCone(size, blend, distance float64) (outerHalf, innerHalf float64) {
	return geometry.SpotCone(size, blend, distance)
}

// Manifest describes a scene to export.
type Manifest = models.Manifest

// Exporter sends a manifest through a session.
type Exporter = exporter.Exporter

// Report summarises one export.
type Report = exporter.Report

// LoadManifest reads a YAML or JSON scene manifest.
func LoadManifest(path string) (*Manifest, error) {
	return exporter.LoadManifest(path)
}
