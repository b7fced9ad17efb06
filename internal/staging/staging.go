// Package staging manages the directory the asset server exposes to the
// device: model files, their textures and the light and camera side files.
package staging

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/gearvrf/gvrf-exporter/internal/common"
	"github.com/gearvrf/gvrf-exporter/internal/models"
)

var ErrAssetStaging = errors.New("asset staging error")

type Stager struct {
	root    string
	baseURL string
}

// AssetInfo describes one staged file.
type AssetInfo struct {
	Name     string    `json:"name"`
	URL      string    `json:"url"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// NewStager creates root if needed. baseURL is the prefix under which the
// device reaches files in root.
func NewStager(root, baseURL string) (*Stager, error) {
	if len(root) == 0 {
		return nil, fmt.Errorf("%w: no staging directory configured", ErrAssetStaging)
	}

	if !common.IsValidURL(baseURL) {
		return nil, fmt.Errorf("%w: invalid base url %q", ErrAssetStaging, baseURL)
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrAssetStaging, root, err)
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Stager{root: root, baseURL: baseURL}, nil
}

func (s *Stager) Root() string {
	return s.root
}

func (s *Stager) BaseURL() string {
	return s.baseURL
}

// URL returns the address of a staged file as seen by the device.
func (s *Stager) URL(name string) string {
	return s.baseURL + url.PathEscape(name)
}

// CleanName replaces every character but ASCII letters and digits with a
// single '_'.
func CleanName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// AssetName is the staged file name of an object's model: the cleaned
// object name with the source file's extension.
func AssetName(objectName, sourceFile string) string {
	return CleanName(objectName) + strings.ToLower(filepath.Ext(sourceFile))
}

// StageAsset copies src into the staging directory as name and returns its
// URL.
func (s *Stager) StageAsset(src, name string) (string, error) {
	dst := filepath.Join(s.root, name)

	copied, size, err := copyIfChanged(src, dst)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrAssetStaging, src, err)
	}

	logrus.WithFields(logrus.Fields{
		"asset":  name,
		"size":   humanize.Bytes(uint64(size)),
		"copied": copied,
	}).Debugln("Staged asset")

	return s.URL(name), nil
}

// StageTextures copies each texture next to the models under its base
// name. Missing textures are logged and skipped; their errors are returned
// together so callers can report them.
func (s *Stager) StageTextures(paths []string) (int, error) {
	var staged int
	var failures []error

	for _, p := range paths {
		name := filepath.Base(p)
		copied, _, err := copyIfChanged(p, filepath.Join(s.root, name))
		if err != nil {
			err = fmt.Errorf("%w: texture %s: %v", ErrAssetStaging, p, err)
			logrus.WithError(err).Warnln("Cannot stage texture file")
			failures = append(failures, err)
			continue
		}
		if copied {
			staged++
		}
	}

	return staged, errors.Join(failures...)
}

// WriteDocument writes doc as <name>.json and returns its path.
func (s *Stager) WriteDocument(name string, doc *models.ElementDocument) (string, error) {
	data, err := sonic.ConfigStd.MarshalIndent(doc, "", "    ")
	if err != nil {
		return "", fmt.Errorf("%w: encode %s: %v", ErrAssetStaging, name, err)
	}

	path := filepath.Join(s.root, CleanName(name)+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", ErrAssetStaging, path, err)
	}

	return path, nil
}

// List returns the staged files sorted by name.
func (s *Stager) List() ([]AssetInfo, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", ErrAssetStaging, s.root, err)
	}

	assets := make([]AssetInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		assets = append(assets, AssetInfo{
			Name:     e.Name(),
			URL:      s.URL(e.Name()),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(assets, func(i, j int) bool { return assets[i].Name < assets[j].Name })
	return assets, nil
}

// copyIfChanged copies src to dst unless dst already has the same bytes.
func copyIfChanged(src, dst string) (bool, int64, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, 0, err
	}
	if srcInfo.IsDir() {
		return false, 0, fmt.Errorf("%s is a directory", src)
	}

	if same, err := sameContent(src, dst, srcInfo.Size()); err == nil && same {
		return false, srcInfo.Size(), nil
	}

	in, err := os.Open(src)
	if err != nil {
		return false, 0, err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".staging-*")
	if err != nil {
		return false, 0, err
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, in)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return false, 0, err
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return false, 0, err
	}

	if err := os.Rename(tmp.Name(), dst); err != nil {
		return false, 0, err
	}

	return true, n, nil
}

func sameContent(a, b string, size int64) (bool, error) {
	bInfo, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	if bInfo.Size() != size {
		return false, nil
	}

	fa, err := os.Open(a)
	if err != nil {
		return false, err
	}
	defer fa.Close()

	fb, err := os.Open(b)
	if err != nil {
		return false, err
	}
	defer fb.Close()

	bufA := make([]byte, 32*1024)
	bufB := make([]byte, 32*1024)
	for {
		na, errA := io.ReadFull(fa, bufA)
		nb, errB := io.ReadFull(fb, bufB)
		if na != nb || !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		if errA == io.EOF || errA == io.ErrUnexpectedEOF {
			return errB == io.EOF || errB == io.ErrUnexpectedEOF, nil
		}
		if errA != nil {
			return false, errA
		}
		if errB != nil {
			return false, errB
		}
	}
}
