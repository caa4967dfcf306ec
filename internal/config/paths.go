package config

import "path/filepath"

const (
	globalFile      = "upim.conf"
	localFile       = ".upim.conf"
	applicationFile = "upim-contact.conf"
)

// Sources lists the configuration files to look for.
type Sources struct {
	// Global files are read, in order, when they exist.
	Global []string
	// Application holds candidates for the upim-contact configuration. The
	// first one that exists is used.
	Application []string
}

// SearchPaths returns the configuration locations for the given home, XDG
// configuration and working directories. Empty values are skipped.
func SearchPaths(home, xdgConfigHome, workDir string) Sources {
	dirs := []string{"/etc/upim"}
	switch {
	case xdgConfigHome != "":
		dirs = append(dirs, filepath.Join(xdgConfigHome, "upim"))
	case home != "":
		dirs = append(dirs, filepath.Join(home, ".config", "upim"))
	}

	var src Sources
	for _, dir := range dirs {
		src.Global = append(src.Global, filepath.Join(dir, globalFile))
		src.Application = append(src.Application, filepath.Join(dir, applicationFile))
	}
	if workDir != "" {
		src.Global = append(src.Global, filepath.Join(workDir, localFile))
	}
	return src
}
