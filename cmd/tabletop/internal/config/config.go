// Package config reads the optional tabletop.yaml next to a project's
// go.mod and resolves the values the CLI needs, defaulting anything the
// file leaves out from the module path.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	tberrors "github.com/go-tabletop/tabletop/pkg/errors"
)

const (
	// DefaultDiagnosticsAddr binds loopback only; the inspection surface
	// has no auth.
	DefaultDiagnosticsAddr = "127.0.0.1:7474"
	DefaultDemoFrames      = 240
	DefaultDemoTick        = 16 * time.Millisecond
)

// Config mirrors tabletop.yaml.
type Config struct {
	App         AppConfig         `yaml:"app"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Demo        DemoConfig        `yaml:"demo"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
	ID   string `yaml:"id,omitempty"`
}

// DiagnosticsConfig configures the inspection server.
type DiagnosticsConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// DemoConfig configures the headless demo loop. Tick is a duration
// string such as "16ms".
type DemoConfig struct {
	Frames int    `yaml:"frames,omitempty"`
	Tick   string `yaml:"tick,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root            string
	ModulePath      string
	AppName         string
	AppID           string
	DiagnosticsAddr string
	DemoFrames      int
	DemoTick        time.Duration
}

// LoadOptional reads tabletop.yaml if present. A missing file is an
// empty config, not an error.
func LoadOptional(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, "tabletop.yaml"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read tabletop.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse tabletop.yaml: %w", err)
	}
	return &cfg, nil
}

// Resolve loads tabletop.yaml (if present) and fills in defaults. A
// missing go.mod is tolerated: the app is then named after the
// directory. Failures carry KindConfig.
func Resolve(dir string) (*Resolved, error) {
	resolved, err := resolve(dir)
	if err != nil {
		return nil, &tberrors.FrameworkError{Op: "config.Resolve", Kind: tberrors.KindConfig, Err: err}
	}
	return resolved, nil
}

func resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	modulePath := modulePathOf(dir)

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	appID := strings.TrimSpace(cfg.App.ID)
	if appID == "" {
		appID = defaultAppID(modulePath, appName)
	}
	if err := validateAppID(appID); err != nil {
		return nil, err
	}

	addr := strings.TrimSpace(cfg.Diagnostics.Addr)
	if addr == "" {
		addr = DefaultDiagnosticsAddr
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return nil, fmt.Errorf("diagnostics.addr %q: %w", addr, err)
	}

	frames := cfg.Demo.Frames
	if frames == 0 {
		frames = DefaultDemoFrames
	}
	if frames < 0 {
		return nil, fmt.Errorf("demo.frames must be positive (got %d)", frames)
	}

	tick := DefaultDemoTick
	if raw := strings.TrimSpace(cfg.Demo.Tick); raw != "" {
		tick, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("demo.tick %q: %w", raw, err)
		}
		if tick <= 0 {
			return nil, fmt.Errorf("demo.tick must be positive (got %s)", tick)
		}
	}

	return &Resolved{
		Root:            dir,
		ModulePath:      modulePath,
		AppName:         appName,
		AppID:           appID,
		DiagnosticsAddr: addr,
		DemoFrames:      frames,
		DemoTick:        tick,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

// modulePathOf returns dir's module path, or "" when dir has no
// readable go.mod.
func modulePathOf(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		if i := strings.LastIndex(modName, "/"); i >= 0 {
			modName = modName[i+1:]
		}
		if modName != "" {
			base = modName
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "tabletop_app"
	}
	return base
}

// defaultAppID derives a reverse-DNS id from the module path, or falls
// back to com.example.<name> when the path has no host part.
func defaultAppID(modulePath, appName string) string {
	parts := strings.Split(modulePath, "/")
	if len(parts) < 2 || !strings.Contains(parts[0], ".") {
		return "com.example." + sanitizeSegment(appName, false)
	}

	host := strings.Split(parts[0], ".")
	slices.Reverse(host)

	segments := host
	for _, p := range parts[1:] {
		if p != "" {
			segments = append(segments, p)
		}
	}
	for i, segment := range segments {
		segments[i] = sanitizeSegment(segment, i > 0)
	}
	return strings.Join(segments, ".")
}

// sanitizeSegment lowercases and strips everything outside [a-z0-9].
// Hyphens and underscores are dropped rather than kept because bundle-id
// style consumers reject them.
func sanitizeSegment(segment string, allowLeadingDigit bool) string {
	segment = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, strings.TrimSpace(segment))

	if segment == "" {
		segment = "app"
	}
	if !allowLeadingDigit && segment[0] >= '0' && segment[0] <= '9' {
		segment = "a" + segment
	}
	return segment
}

func validateAppID(appID string) error {
	if !strings.Contains(appID, ".") {
		return fmt.Errorf("app.id must contain at least one '.' (got %q)", appID)
	}
	for _, segment := range strings.Split(appID, ".") {
		if segment == "" {
			return fmt.Errorf("app.id contains an empty segment (%q)", appID)
		}
		if segment[0] >= '0' && segment[0] <= '9' {
			return fmt.Errorf("app.id segments cannot start with a digit (%q)", appID)
		}
		if segment[0] == '_' {
			return fmt.Errorf("app.id segments cannot start with '_' (%q)", appID)
		}
		for _, r := range segment {
			if r != '_' && !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') {
				return fmt.Errorf("app.id contains invalid character %q in %q", r, appID)
			}
		}
	}
	return nil
}
