package exporter

import (
	"fmt"
	"path/filepath"

	"github.com/gearvrf/gvrf-exporter/internal/common"
	"github.com/gearvrf/gvrf-exporter/internal/models"
)

// LoadManifest reads a YAML or JSON scene manifest. Relative asset paths
// resolve against the manifest's directory.
func LoadManifest(path string) (*models.Manifest, error) {
	manifest, err := common.ReadFileToInterface[models.Manifest](path)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	manifest.BasePath = filepath.Dir(abs)

	return manifest, nil
}

func resolve(m *models.Manifest, p string) string {
	if len(p) == 0 || filepath.IsAbs(p) || len(m.BasePath) == 0 {
		return p
	}
	return filepath.Join(m.BasePath, p)
}

// sourceFiles lists every file an export of m reads.
func sourceFiles(m *models.Manifest) []string {
	var files []string
	for i := range m.Objects {
		mesh := m.Objects[i].Mesh
		if mesh == nil {
			continue
		}
		files = append(files, resolve(m, mesh.File))
		for _, tex := range mesh.Textures {
			files = append(files, resolve(m, tex))
		}
	}
	return files
}
