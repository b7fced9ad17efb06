// Package exporter drives one export of a scene manifest: it stages model
// files for the asset server, writes light and camera side files and sends
// the statements that rebuild each object on the device.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gearvrf/gvrf-exporter/internal/commands"
	"github.com/gearvrf/gvrf-exporter/internal/models"
	"github.com/gearvrf/gvrf-exporter/internal/staging"
)

// ErrUnsupportedKind marks objects that are skipped rather than exported.
var ErrUnsupportedKind = models.ErrUnsupportedKind

// Console is the part of a remote session an export needs.
type Console interface {
	Builder() commands.Builder
	ExecAll(ctx context.Context, statements []string) error
}

// Probe reports whether the device can download staged files.
type Probe interface {
	Check(ctx context.Context) error
}

type Exporter struct {
	console Console
	stager  *staging.Stager
	probe   Probe
}

// NewExporter returns an exporter sending to console. probe may be nil when
// the files are served by something outside this process.
func NewExporter(console Console, stager *staging.Stager, probe Probe) *Exporter {
	return &Exporter{
		console: console,
		stager:  stager,
		probe:   probe,
	}
}

// Skipped is an object left out of an export and why.
type Skipped struct {
	Name   string
	Reason error
}

// Report summarises one export run.
type Report struct {
	Run      string
	Meshes   int
	Lights   int
	Cameras  int
	Textures int
	Skipped  []Skipped
	Warnings []error
	Duration time.Duration
}

func (r *Report) Exported() int {
	return r.Meshes + r.Lights + r.Cameras
}

// run holds the state of one Export call.
type run struct {
	*Exporter
	manifest *models.Manifest
	builder  commands.Builder
	report   *Report
	log      *logrus.Entry
	probed   bool
}

// Export sends every root object of the manifest to the device. With only
// set, just those objects and their descendants are exported. Unsupported
// or malformed objects are skipped; a console failure stops the export and
// leaves the remote scene as far as it got.
func (e *Exporter) Export(ctx context.Context, manifest *models.Manifest, only []string) (*Report, error) {
	start := time.Now()

	r := &run{
		Exporter: e,
		manifest: manifest,
		builder:  e.console.Builder(),
		report:   &Report{Run: uuid.NewString()},
	}
	r.log = logrus.WithField(models.RunField, r.report.Run)

	roots, missing := Roots(manifest, only)
	for _, name := range missing {
		r.log.WithField("object", name).Warnln("Selected object is not in the manifest")
	}

	r.log.WithFields(logrus.Fields{
		"objects": len(roots),
		"url":     e.stager.BaseURL(),
	}).Infoln("Exporting scene")

	for _, obj := range roots {
		if err := ctx.Err(); err != nil {
			return r.finish(start), err
		}
		if err := r.export(ctx, obj); err != nil {
			return r.finish(start), err
		}
	}

	report := r.finish(start)

	r.log.WithFields(logrus.Fields{
		"meshes":   report.Meshes,
		"lights":   report.Lights,
		"cameras":  report.Cameras,
		"textures": report.Textures,
		"skipped":  len(report.Skipped),
		"duration": report.Duration.String(),
	}).Infoln("Export finished")

	return report, nil
}

func (r *run) finish(start time.Time) *Report {
	r.report.Duration = time.Since(start)
	return r.report
}

// export handles one object. Only console and probe failures are returned.
func (r *run) export(ctx context.Context, obj *models.SceneObject) error {
	log := r.log.WithFields(logrus.Fields{
		"object": obj.Name,
		"type":   obj.Type,
	})

	var err error
	switch obj.Type {
	case models.ObjectTypeMesh, models.ObjectTypeArmature:
		err = r.exportMesh(ctx, obj, log)
	case models.ObjectTypeLight:
		err = r.exportLight(ctx, obj, log)
	case models.ObjectTypeCamera:
		err = r.exportCamera(ctx, obj, log)
	default:
		err = fmt.Errorf("%w: object type %q", ErrUnsupportedKind, obj.Type)
	}

	if err == nil {
		return nil
	}

	var skipped *skipError
	if errors.As(err, &skipped) {
		log.WithError(skipped.err).Warnln("Object skipped")
		r.report.Skipped = append(r.report.Skipped, Skipped{Name: obj.Name, Reason: skipped.err})
		return nil
	}
	if errors.Is(err, ErrUnsupportedKind) {
		log.WithError(err).Warnln("Unsupported object skipped")
		r.report.Skipped = append(r.report.Skipped, Skipped{Name: obj.Name, Reason: err})
		return nil
	}

	log.WithError(err).Errorln("Export failed")
	return err
}

// skipError wraps failures that leave the rest of the export unaffected.
type skipError struct {
	err error
}

func (e *skipError) Error() string { return e.err.Error() }
func (e *skipError) Unwrap() error { return e.err }

func skip(err error) error {
	return &skipError{err: err}
}

func (r *run) exportMesh(ctx context.Context, obj *models.SceneObject, log *logrus.Entry) error {
	src := resolve(r.manifest, obj.Mesh.File)
	name := staging.AssetName(obj.Name, src)

	url, err := r.stager.StageAsset(src, name)
	if err != nil {
		return skip(err)
	}

	if len(obj.Mesh.Textures) > 0 {
		textures := make([]string, 0, len(obj.Mesh.Textures))
		for _, t := range obj.Mesh.Textures {
			textures = append(textures, resolve(r.manifest, t))
		}
		staged, err := r.stager.StageTextures(textures)
		r.report.Textures += staged
		if err != nil {
			r.report.Warnings = append(r.report.Warnings, err)
		}
	}

	if err := r.checkServer(ctx); err != nil {
		return err
	}

	mesh := models.MeshDescriptor{
		URL:      url,
		Name:     name,
		Animated: obj.Type == models.ObjectTypeArmature,
	}

	if err := r.console.ExecAll(ctx, r.builder.Mesh(mesh)); err != nil {
		return fmt.Errorf("export %s: %w", obj.Name, err)
	}

	log.WithFields(logrus.Fields{
		"url":      url,
		"animated": mesh.Animated,
	}).Infoln("Mesh exported")

	r.report.Meshes++
	return nil
}

// checkServer probes the asset server once, before the first download.
func (r *run) checkServer(ctx context.Context) error {
	if r.probe == nil || r.probed {
		return nil
	}
	if err := r.probe.Check(ctx); err != nil {
		return err
	}
	r.probed = true
	return nil
}

func (r *run) exportLight(ctx context.Context, obj *models.SceneObject, log *logrus.Entry) error {
	light, err := lightDescriptor(obj)
	if err != nil {
		if errors.Is(err, ErrUnsupportedKind) {
			return err
		}
		return skip(err)
	}

	statements, err := r.builder.Light(light)
	if err != nil {
		return err
	}

	if _, err := r.stager.WriteDocument(obj.Name, models.NewLightDocument(light)); err != nil {
		r.report.Warnings = append(r.report.Warnings, err)
		log.WithError(err).Warnln("Cannot write light document")
	}

	if err := r.console.ExecAll(ctx, statements); err != nil {
		return fmt.Errorf("export %s: %w", obj.Name, err)
	}

	log.WithField("light", light.Kind.Type()).Infoln("Light exported")

	r.report.Lights++
	return nil
}

func (r *run) exportCamera(ctx context.Context, obj *models.SceneObject, log *logrus.Entry) error {
	camera, err := cameraDescriptor(obj)
	if err != nil {
		return skip(err)
	}

	if _, err := r.stager.WriteDocument(obj.Name, models.NewCameraDocument(obj.Name, camera)); err != nil {
		r.report.Warnings = append(r.report.Warnings, err)
		log.WithError(err).Warnln("Cannot write camera document")
	}

	if err := r.console.ExecAll(ctx, r.builder.Camera(camera)); err != nil {
		return fmt.Errorf("export %s: %w", obj.Name, err)
	}

	log.Infoln("Camera exported")

	r.report.Cameras++
	return nil
}

// Roots returns the objects an export visits, in manifest order. Without
// a selection these are the parentless objects. With one, they are the
// selected objects whose parent is not selected; children travel inside
// their root's model file. Selected names missing from the manifest are
// returned separately.
func Roots(m *models.Manifest, only []string) ([]*models.SceneObject, []string) {
	var roots []*models.SceneObject

	if len(only) == 0 {
		for i := range m.Objects {
			if len(m.Objects[i].Parent) == 0 {
				roots = append(roots, &m.Objects[i])
			}
		}
		return roots, nil
	}

	selected := make(map[string]bool, len(only))
	for _, name := range only {
		selected[name] = true
	}

	found := make(map[string]bool, len(only))
	for i := range m.Objects {
		obj := &m.Objects[i]
		if !selected[obj.Name] {
			continue
		}
		found[obj.Name] = true
		if len(obj.Parent) == 0 || !selected[obj.Parent] {
			roots = append(roots, obj)
		}
	}

	var missing []string
	for _, name := range only {
		if !found[name] {
			missing = append(missing, name)
		}
	}

	return roots, missing
}
