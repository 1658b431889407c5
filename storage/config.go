package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	yaml "gopkg.in/yaml.v2"
)

const appName = "pubnet"

// Config carries the storage locations. The zero value falls back to
// the platform data and cache directories.
type Config struct {
	DataDir  string `yaml:"data_dir"`
	CacheDir string `yaml:"cache_dir"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("storage: read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Config{}, fmt.Errorf("storage: parse config: %w", err)
	}

	return c, nil
}

var (
	defaultMu      sync.Mutex
	defaultDataDir string
)

// SetDefaultDataDir installs a process-wide data directory used when
// callers pass an empty dataDir. An empty path restores the platform
// default.
func SetDefaultDataDir(path string) {
	defaultMu.Lock()
	defaultDataDir = path
	defaultMu.Unlock()
}

// DefaultDataDir reports the directory graphs are saved under when no
// explicit dataDir is given. Nothing is created on disk.
func DefaultDataDir() string {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultDataDir != "" {
		return defaultDataDir
	}

	return filepath.Join(xdg.DataHome, appName)
}

// DefaultCacheDir reports the platform cache directory for files that
// can be regenerated, such as downloads.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, appName)
}

// GraphPath resolves the directory a named graph lives in. An empty
// dataDir means DefaultDataDir.
func GraphPath(name, dataDir string) string {
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}

	return filepath.Join(dataDir, name)
}

// ListGraphs names the graphs saved under dataDir, sorted.
func ListGraphs(dataDir string) ([]string, error) {
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: list graphs: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	return names, nil
}

// DeleteGraph removes a saved graph and every file in it.
func DeleteGraph(name, dataDir string) error {
	path := GraphPath(name, dataDir)
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		available, _ := ListGraphs(dataDir)
		return fmt.Errorf("%w: %q; available graphs: %s",
			ErrGraphNotFound, name, strings.Join(available, ", "))
	}

	return os.RemoveAll(path)
}
