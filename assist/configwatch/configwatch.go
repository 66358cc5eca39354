// Package configwatch is the file-backed config hot-reload sidecar: it loads
// an AssistiveConfig document from disk with viper, pushes it into a running
// engine, and re-pushes on every subsequent write to the file.
//
// This mirrors the reinforcement-learning trainer's viper.New/SetConfigFile/
// ReadInConfig/Unmarshal loading sequence, extended with viper's own
// WatchConfig/OnConfigChange hook (backed by fsnotify) for the reload half,
// which the trainer never needed since training configs are read once.
package configwatch

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/cursorassist/cursorassist/assist"
)

// Updater is the subset of *engine.Engine this package depends on, kept
// narrow so configwatch can be unit-tested without a real engine.
type Updater interface {
	UpdateConfig(cfg assist.AssistiveConfig)
}

// Watcher loads an AssistiveConfig document from path and pushes every
// subsequent revision of that file into an Updater.
type Watcher struct {
	vp      *viper.Viper
	path    string
	log     *logrus.Entry
	updater Updater
}

// New constructs a Watcher bound to path, without yet reading it.
func New(path string, updater Updater, log *logrus.Entry) *Watcher {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("json")
	vp.AddConfigPath(filepath.Dir(path))
	return &Watcher{
		vp:      vp,
		path:    path,
		log:     log.WithField("component", "assist.configwatch"),
		updater: updater,
	}
}

// Load reads and validates path once, returning the parsed config without
// pushing it anywhere. Start calls this before installing the watch.
func (w *Watcher) Load() (assist.AssistiveConfig, error) {
	if err := w.vp.ReadInConfig(); err != nil {
		return assist.AssistiveConfig{}, fmt.Errorf("configwatch: reading %s: %w", w.path, err)
	}

	var dto map[string]any
	if err := w.vp.Unmarshal(&dto); err != nil {
		return assist.AssistiveConfig{}, fmt.Errorf("configwatch: decoding %s: %w", w.path, err)
	}

	encoded, err := json.Marshal(dto)
	if err != nil {
		return assist.AssistiveConfig{}, fmt.Errorf("configwatch: re-encoding %s: %w", w.path, err)
	}

	cfg, diags, ok := assist.ParseConfigJSON(encoded)
	if !ok {
		return assist.AssistiveConfig{}, fmt.Errorf("configwatch: %s failed validation: %v", w.path, diags)
	}
	return cfg, nil
}

// Start loads the config once, pushes it to the updater, then installs a
// watch so every subsequent write re-loads, re-validates, and re-pushes. A
// revision that fails validation is logged and ignored; the engine keeps
// running on the last good config rather than falling back to stdlib
// defaults mid-session.
func (w *Watcher) Start() error {
	cfg, err := w.Load()
	if err != nil {
		return err
	}
	w.updater.UpdateConfig(cfg)

	w.vp.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := w.Load()
		if err != nil {
			w.log.WithError(err).WithField("event", e.Name).Warn("config reload rejected")
			return
		}
		w.updater.UpdateConfig(cfg)
		w.log.WithField("event", e.Name).Info("config reloaded")
	})
	w.vp.WatchConfig()
	return nil
}
