package magetasks

import (
	"os"
	"path/filepath"
)

var (
	// ModulePath is the Go module path.
	ModulePath = "github.com/dkoosis/flatconf"

	// BinPath is the output path for the flatconf binary.
	BinPath = "./bin/flatconf"

	// MainPackage is the package BuildAll compiles.
	MainPackage = "./cmd/flatconf"

	// ProjectRoot is the directory holding go.mod.
	ProjectRoot string
)

// Initialize locates the module root and creates its bin directory.
// Call this from the Magefile init() function.
func Initialize() error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	ProjectRoot = moduleRoot(wd)

	return os.MkdirAll(filepath.Join(ProjectRoot, "bin"), 0o750)
}

// moduleRoot returns the nearest directory at or above dir that holds a
// go.mod, or dir itself when there is none.
func moduleRoot(dir string) string {
	for d := dir; ; {
		if _, err := os.Stat(filepath.Join(d, "go.mod")); err == nil {
			return d
		}
		parent := filepath.Dir(d)
		if parent == d {
			return dir
		}
		d = parent
	}
}
