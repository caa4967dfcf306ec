//go:build windows

package storage

import (
	"os"
	"path/filepath"
)

func init() {
	osSpecificEnsureDir = func(o osOps, dir string, mode os.FileMode) error {
		// a bare volume root always exists
		if dir == filepath.VolumeName(dir)+string(os.PathSeparator) {
			return nil
		}
		return o.MkdirAll(dir, mode)
	}
}
