package config

import "github.com/dshills/gapbuffer/internal/engine/gapbuffer"

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration. Use Config.Set()
// to update configuration values.

// Settings is the decoded configuration.
type Settings struct {
	Buffer BufferSettings
}

// BufferSettings controls how new gap buffers are allocated.
type BufferSettings struct {
	// InitialCapacity is the storage size of an empty buffer.
	InitialCapacity int

	// Slack is the gap width left after content seeded at construction.
	Slack int

	// MaxCapacity caps storage growth. Zero means unlimited.
	MaxCapacity int
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"buffer": map[string]any{
			"initialCapacity": gapbuffer.DefaultCapacity,
			"slack":           gapbuffer.DefaultSlack,
			"maxCapacity":     0,
		},
	}
}

// Settings returns the current settings.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// merged is validated before it is stored.
	s, _ := decodeSettings(c.merged)
	return s
}

// Buffer returns the buffer section.
func (c *Config) Buffer() BufferSettings {
	return c.Settings().Buffer
}

// Options converts the buffer settings into gap buffer options.
func (c *Config) Options() []gapbuffer.Option {
	return c.Buffer().Options()
}

// Options converts s into gap buffer options.
func (s BufferSettings) Options() []gapbuffer.Option {
	opts := []gapbuffer.Option{
		gapbuffer.WithCapacity(s.InitialCapacity),
		gapbuffer.WithSlack(s.Slack),
	}
	if s.MaxCapacity > 0 {
		opts = append(opts, gapbuffer.WithMaxCapacity(s.MaxCapacity))
	}
	return opts
}

// decodeSettings reads and validates the settings in m.
func decodeSettings(m map[string]any) (Settings, error) {
	var s Settings

	fields := []struct {
		path string
		dst  *int
	}{
		{"buffer.initialCapacity", &s.Buffer.InitialCapacity},
		{"buffer.slack", &s.Buffer.Slack},
		{"buffer.maxCapacity", &s.Buffer.MaxCapacity},
	}
	for _, f := range fields {
		v, err := getInt(m, f.path)
		if err != nil {
			return Settings{}, err
		}
		if v < 0 {
			return Settings{}, &ValidationError{Path: f.path, Message: "must not be negative", Value: v}
		}
		*f.dst = v
	}

	b := s.Buffer
	if b.MaxCapacity > 0 && b.InitialCapacity > b.MaxCapacity {
		return Settings{}, &ValidationError{
			Path:    "buffer.initialCapacity",
			Message: "exceeds buffer.maxCapacity",
			Value:   b.InitialCapacity,
		}
	}

	return s, nil
}
