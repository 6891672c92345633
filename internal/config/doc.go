// Package config provides the settings used to construct gap buffers.
//
// # Layers
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Config.Set              │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← GAPBUFFER_SLACK=16
//	├─────────────────────────────┤
//	│  2. Settings Files          │  ← gapbuffer.toml / gapbuffer.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Settings files may be TOML or YAML, selected by extension:
//
//	[buffer]
//	initialCapacity = 64
//	slack = 16
//	maxCapacity = 1048576
//
// Environment variables use the GAPBUFFER_ prefix. GAPBUFFER_CAPACITY,
// GAPBUFFER_SLACK and GAPBUFFER_MAX_CAPACITY are short forms; any other
// variable maps by name, e.g. GAPBUFFER_BUFFER_INITIAL_CAPACITY sets
// buffer.initialCapacity. Short forms win over the long names, and a
// variable naming only a section (GAPBUFFER_BUFFER) is ignored.
//
// # Basic Usage
//
//	cfg := config.New(config.WithFile("gapbuffer.toml"))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	g := gapbuffer.New[rune](cfg.Options()...)
//
// # Change Notification
//
// Observers learn about Set calls and reloads:
//
//	sub := cfg.SubscribePath("buffer", func(ch notify.Change) {
//	    // rebuild buffers with cfg.Options()
//	})
//	defer sub.Unsubscribe()
//
// # Live Reload
//
// Watch reloads the settings files whenever one changes on disk, until the
// context is canceled. Reload failures leave the previous settings in place:
//
//	w, err := cfg.Watch(ctx, func(err error) { errs <- err })
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
// A Config is safe for concurrent use.
package config
