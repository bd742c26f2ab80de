// Package appconfig implements ports.AppSource over a directory of YAML app
// definitions, one app per file:
//
//	# ~/.config/roost/shop.yml
//	description: Storefront
//	aliases: [store]
//	services:
//	  - name: web
//	    cmd: bin/rails server -p $PORT
//	    default: true
//	  - name: worker
//	    cmd: bin/jobs
package appconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/corey/roost/internal/ports"
	"gopkg.in/yaml.v3"
)

// GlobalConfigName is the global settings file that shares the directory
// with app definitions. It is never read as an app.
const GlobalConfigName = "config.json"

// certsDir holds generated TLS material, not app definitions.
const certsDir = "certs"

// yamlService is the YAML-serialized form of a ports.Service.
type yamlService struct {
	Name    string `yaml:"name"`
	Dir     string `yaml:"dir,omitempty"`
	Cmd     string `yaml:"cmd,omitempty"`
	Port    int    `yaml:"port,omitempty"`
	Default bool   `yaml:"default,omitempty"`
}

// yamlApp is the YAML-serialized form of a ports.App.
type yamlApp struct {
	Name        string        `yaml:"name,omitempty"`
	Description string        `yaml:"description,omitempty"`
	Aliases     []string      `yaml:"aliases,omitempty"`
	Root        string        `yaml:"root,omitempty"`
	Cmd         string        `yaml:"cmd,omitempty"`
	Port        int           `yaml:"port,omitempty"`
	Services    []yamlService `yaml:"services,omitempty"`
}

// Loader reads app definitions from Dir.
type Loader struct {
	Dir string
}

// NewLoader creates a Loader for the given config directory.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// Load implements ports.AppSource. A missing directory is an empty config.
func (l *Loader) Load() ([]ports.App, error) {
	if _, err := os.Stat(l.Dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	apps, err := LoadFS(os.DirFS(l.Dir))
	if err != nil {
		return nil, err
	}
	for i := range apps {
		apps[i].FilePath = filepath.Join(l.Dir, apps[i].FilePath)
	}
	return apps, nil
}

// LoadFS loads every app definition at the root of fsys. FilePath on the
// returned apps is relative to fsys.
func LoadFS(fsys fs.FS) ([]ports.App, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read config dir: %w", err)
	}

	// Sort for deterministic load order
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var apps []ports.App
	seen := make(map[string]string) // app name → source file

	for _, entry := range entries {
		if !IsDefinition(entry.Name()) || entry.IsDir() {
			continue
		}

		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		var ya yamlApp
		if err := yaml.Unmarshal(data, &ya); err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}

		app, err := convertApp(ya, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}

		if prev, ok := seen[app.Name]; ok {
			return nil, fmt.Errorf("duplicate app name %q (first in %s, again in %s)", app.Name, prev, entry.Name())
		}
		seen[app.Name] = entry.Name()
		apps = append(apps, app)
	}

	return apps, nil
}

// convertApp validates a parsed definition and fills defaults.
func convertApp(ya yamlApp, fileName string) (ports.App, error) {
	name := strings.TrimSpace(ya.Name)
	if name == "" {
		name = AppName(fileName)
	}
	if strings.ContainsAny(name, "/.") {
		return ports.App{}, fmt.Errorf("invalid app name %q", name)
	}

	app := ports.App{
		Name:        name,
		Description: ya.Description,
		Aliases:     ya.Aliases,
		Root:        ya.Root,
		Command:     ya.Cmd,
		Port:        ya.Port,
		FilePath:    fileName,
	}

	defaults := 0
	for i, ys := range ya.Services {
		if strings.TrimSpace(ys.Name) == "" {
			return ports.App{}, fmt.Errorf("service %d: name required", i)
		}
		if ys.Default {
			defaults++
		}
		dir := ys.Dir
		if dir == "" {
			dir = ya.Root
		}
		app.Services = append(app.Services, ports.Service{
			Name:    ys.Name,
			Dir:     dir,
			Command: ys.Cmd,
			Port:    ys.Port,
			Default: ys.Default,
		})
	}
	if defaults > 1 {
		return ports.App{}, fmt.Errorf("%d services marked default, at most 1 allowed", defaults)
	}

	return app, nil
}

// IsDefinition reports whether a directory entry name looks like an app
// definition: a visible .yml or .yaml file.
func IsDefinition(name string) bool {
	if strings.HasPrefix(name, ".") || name == GlobalConfigName || name == certsDir {
		return false
	}
	ext := filepath.Ext(name)
	return ext == ".yml" || ext == ".yaml"
}

// AppName strips the definition extension from a file name.
func AppName(fileName string) string {
	name := filepath.Base(fileName)
	name = strings.TrimSuffix(name, ".yml")
	return strings.TrimSuffix(name, ".yaml")
}

// ListNames returns the app names implied by the file names in dir without
// parsing them. It is the view shown when the server is not running.
// A missing directory returns no names and no error.
func ListNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !IsDefinition(entry.Name()) {
			continue
		}
		names = append(names, AppName(entry.Name()))
	}
	sort.Strings(names)
	return names, nil
}
