package exporter

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/gearvrf/gvrf-exporter/internal/models"
)

const DefaultDebounce = 500 * time.Millisecond

// ExportFunc runs one export of a freshly loaded manifest.
type ExportFunc func(ctx context.Context, manifest *models.Manifest) error

// Watch exports the manifest at path, then exports again whenever the
// manifest or a file it references changes, until ctx is done. Failed
// loads and exports are logged and the watch carries on.
func Watch(ctx context.Context, path string, debounce time.Duration, export ExportFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	manifestPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w := &watchState{
		watcher:  watcher,
		manifest: manifestPath,
		dirs:     map[string]bool{},
	}

	w.run(ctx, export)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logrus.WithFields(logrus.Fields{
				"file": event.Name,
				"op":   event.Op.String(),
			}).Debugln("Source changed")
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.WithError(err).Warnln("File watcher error")

		case <-timer.C:
			w.run(ctx, export)
		}
	}
}

type watchState struct {
	watcher  *fsnotify.Watcher
	manifest string
	files    map[string]bool
	dirs     map[string]bool
}

// run reloads the manifest, refreshes the watch list and exports.
func (w *watchState) run(ctx context.Context, export ExportFunc) {
	manifest, err := LoadManifest(w.manifest)
	if err != nil {
		logrus.WithError(err).Errorln("Cannot load manifest, waiting for changes")
		w.watch([]string{w.manifest})
		return
	}

	w.watch(append([]string{w.manifest}, sourceFiles(manifest)...))

	if err := export(ctx, manifest); err != nil {
		logrus.WithError(err).Errorln("Export failed, waiting for changes")
	}
}

// watch tracks files by watching their directories; editors often replace
// a file rather than write it in place.
func (w *watchState) watch(files []string) {
	w.files = make(map[string]bool, len(files))
	for _, f := range files {
		f = filepath.Clean(f)
		w.files[f] = true

		dir := filepath.Dir(f)
		if w.dirs[dir] {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			logrus.WithError(err).WithField("dir", dir).Warnln("Cannot watch directory")
			continue
		}
		w.dirs[dir] = true
	}
}

func (w *watchState) relevant(event fsnotify.Event) bool {
	if !w.files[filepath.Clean(event.Name)] {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
