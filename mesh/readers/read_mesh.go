package readers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/notargets/starcsr/mesh"
)

// ReadMeshFile reads a mesh named by its basename or by any one of its StarCD files
func ReadMeshFile(filename string) (*mesh.Grid, error) {
	return ReadMeshFileWithOptions(filename, DefaultOptions())
}

func ReadMeshFileWithOptions(filename string, opts Options) (*mesh.Grid, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".vrt", ".cel", ".bnd":
		return ReadStarCDWithOptions(strings.TrimSuffix(filename, filepath.Ext(filename)), opts)
	case ".neu", ".msh", ".su2":
		return nil, fmt.Errorf("unsupported mesh format: %s, only StarCD (.vrt, .cel, .bnd) is read", ext)
	default:
		return ReadStarCDWithOptions(filename, opts)
	}
}
