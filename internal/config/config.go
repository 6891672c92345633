package config

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dshills/gapbuffer/internal/config/loader"
	"github.com/dshills/gapbuffer/internal/config/notify"
	"github.com/dshills/gapbuffer/internal/config/watcher"
)

// Config holds buffer settings merged from defaults, settings files and
// environment variables.
type Config struct {
	mu sync.RWMutex

	// merged is the result of the last successful Load, or the defaults.
	merged map[string]any

	// overrides are values from Set; they survive reloads.
	overrides map[string]any

	notifier *notify.Notifier

	fs        loader.FileSystem
	files     []string
	envPrefix string
	env       bool
}

// Option configures a Config instance.
type Option func(*Config)

// WithFile adds a TOML or YAML settings file. Files are applied in the order
// given; later files override earlier ones. Missing files are skipped.
func WithFile(path string) Option {
	return func(c *Config) {
		c.files = append(c.files, path)
	}
}

// WithFileSystem replaces the file system settings files are read from.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithEnvPrefix sets the environment variable prefix, loader.DefaultEnvPrefix
// by default.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithEnvironment enables or disables the environment layer.
func WithEnvironment(enable bool) Option {
	return func(c *Config) {
		c.env = enable
	}
}

// New creates a Config holding the built-in defaults. Call Load to apply
// settings files and the environment.
func New(opts ...Option) *Config {
	c := &Config{
		merged:    defaultConfig(),
		overrides: make(map[string]any),
		notifier:  notify.New(),
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultEnvPrefix,
		env:       true,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Load reads every source and replaces the merged configuration. Layers are
// applied lowest priority first: defaults, settings files, environment,
// values from Set. On error the previous configuration is kept.
func (c *Config) Load(_ context.Context) error {
	merged := defaultConfig()

	for _, path := range c.files {
		l, err := loader.ForPath(c.fs, path)
		if err != nil {
			return err
		}
		data, err := l.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		merged = loader.DeepMerge(merged, data)
	}

	if c.env {
		data, err := loader.NewEnvLoader(c.envPrefix).Load()
		if err != nil {
			return fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, data)
	}

	c.mu.Lock()
	merged = loader.DeepMerge(merged, c.overrides)
	if _, err := decodeSettings(merged); err != nil {
		c.mu.Unlock()
		return err
	}
	c.merged = merged
	c.mu.Unlock()

	c.notifier.NotifyReload()
	return nil
}

// Watch reloads the configuration whenever a settings file given with
// WithFile changes on disk. A failed reload is passed to onError, when
// non-nil, and leaves the previous settings in effect; a successful one
// reaches Subscribe observers as a reload. The watcher stops when ctx is
// done or when the caller closes it.
//
// Files are watched on the operating system, regardless of WithFileSystem.
func (c *Config) Watch(ctx context.Context, onError func(error), opts ...watcher.Option) (*watcher.Watcher, error) {
	w, err := watcher.New(opts...)
	if err != nil {
		return nil, err
	}

	w.OnChange(func(watcher.Event) {
		if ctx.Err() != nil {
			return
		}
		if err := c.Load(ctx); err != nil && onError != nil {
			onError(err)
		}
	})

	for _, path := range c.files {
		if err := w.Watch(path); err != nil {
			w.Close()
			return nil, err
		}
	}

	context.AfterFunc(ctx, func() { w.Close() })
	return w, nil
}

// Get returns the value at the given path from the merged configuration.
// Sections are returned as copies; change settings with Set.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := getPath(c.merged, path)
	if m, isMap := v.(map[string]any); isMap {
		return loader.Clone(m), ok
	}
	return v, ok
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return getInt(c.merged, path)
}

// Set sets a value at the given path. The value must keep the settings
// valid; it takes precedence over every loaded source.
func (c *Config) Set(path string, value any) error {
	old, err := c.set(path, value)
	if err != nil {
		return err
	}
	c.notifier.NotifySet(strings.Join(splitPath(path), "."), old, value)
	return nil
}

func (c *Config) set(path string, value any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	old, _ := getPath(c.merged, path)
	merged := loader.Clone(c.merged)
	if err := setPath(merged, path, value); err != nil {
		return nil, err
	}
	if _, err := decodeSettings(merged); err != nil {
		return nil, err
	}
	if err := setPath(c.overrides, path, value); err != nil {
		return nil, err
	}
	c.merged = merged
	return old, nil
}

// Subscribe registers an observer called after every successful Load and
// Set. Observers run on the goroutine that made the change.
func (c *Config) Subscribe(observer notify.Observer) *notify.Subscription {
	return c.notifier.Subscribe(observer)
}

// SubscribePath registers an observer for Set calls at or below path and
// for every successful Load.
func (c *Config) SubscribePath(path string, observer notify.Observer) *notify.Subscription {
	return c.notifier.SubscribePath(path, observer)
}

// Merged returns a copy of the fully merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return loader.Clone(c.merged)
}

// DefaultFiles returns the settings files looked up when none are given:
// gapbuffer.toml and gapbuffer.yaml in the user config directory.
func DefaultFiles() []string {
	dir := defaultUserConfigDir()
	if dir == "" {
		return nil
	}
	return []string{
		filepath.Join(dir, "gapbuffer.toml"),
		filepath.Join(dir, "gapbuffer.yaml"),
	}
}

// defaultUserConfigDir returns the default user configuration directory.
func defaultUserConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gapbuffer")
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	current := any(m)
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = cm[part]; !ok {
			return nil, false
		}
	}

	return current, true
}

// setPath sets a value in a nested map using a dot-separated path.
func setPath(m map[string]any, path string, value any) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return fmt.Errorf("%q: %w", path, ErrInvalidPath)
	}

	current := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part]
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		nextMap, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("%q: %s is not a section: %w", path, part, ErrInvalidPath)
		}
		current = nextMap
	}

	current[parts[len(parts)-1]] = value
	return nil
}

// splitPath splits a dot-separated path into parts, dropping empty parts.
func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '.' })
}

// getInt reads an integer, accepting the numeric types produced by the
// TOML, YAML and environment loaders.
func getInt(m map[string]any, path string) (int, error) {
	v, ok := getPath(m, path)
	if !ok {
		return 0, fmt.Errorf("%s: %w", path, ErrSettingNotFound)
	}
	outOfRange := &ValidationError{Path: path, Message: "out of range for int", Value: v}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		if val < math.MinInt || val > math.MaxInt {
			return 0, outOfRange
		}
		return int(val), nil
	case uint64:
		if val > math.MaxInt {
			return 0, outOfRange
		}
		return int(val), nil
	case float64:
		if val < float64(math.MinInt) || val >= -float64(math.MinInt) {
			return 0, outOfRange
		}
		if math.Trunc(val) != val {
			return 0, &TypeError{Path: path, Expected: "int", Actual: "float64"}
		}
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case bool:
		return "bool"
	case map[string]any:
		return "map"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
