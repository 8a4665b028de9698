package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver finds vocabulary files that were given as relative paths.
type PathResolver struct {
	executableDir string
	configDir     string
}

// NewPathResolver determines the executable location and the per-user config dir.
func NewPathResolver(appName string) (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		configDir:     userConfigDir(homeDir, appName),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

func userConfigDir(homeDir, appName string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, appName)
		}
		return filepath.Join(homeDir, ".config", appName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", appName)
	default:
		return filepath.Join(homeDir, ".config", appName)
	}
}

// ConfigDir returns the per-user config directory.
func (pr *PathResolver) ConfigDir() string {
	return pr.configDir
}

// Resolve looks for path as given, relative to the working directory, next to the
// executable and under <configDir>/data, in that order. When nothing exists the
// path is returned unchanged so the caller reports the original name.
func (pr *PathResolver) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	candidates := []string{path}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, path))
	}
	candidates = append(candidates,
		filepath.Join(pr.executableDir, path),
		filepath.Join(pr.configDir, "data", path),
	)

	for _, candidate := range candidates {
		if FileExists(candidate) {
			log.Debugf("Resolved %s to %s", path, candidate)
			return candidate
		}
	}
	return path
}

// ResolveAll applies Resolve to every path.
func (pr *PathResolver) ResolveAll(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = pr.Resolve(p)
	}
	return out
}
