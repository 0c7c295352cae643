package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dshills/vhdlalign/internal/config/layer"
	"github.com/dshills/vhdlalign/internal/config/loader"
	"github.com/dshills/vhdlalign/internal/config/notify"
	"github.com/dshills/vhdlalign/internal/config/watcher"
)

// Layer names.
const (
	LayerDefaults    = "defaults"
	LayerFile        = "file"
	LayerSettings    = "settings"
	LayerEnvironment = "environment"
	LayerFlags       = "flags"
)

// Config provides layered access to settings.
//
// From lowest to highest precedence: built-in defaults, the TOML config
// file, the editor settings.json file, environment variables and
// command-line flags.
type Config struct {
	mu sync.Mutex

	layers   *layer.Manager
	notifier *notify.Notifier
	watcher  *watcher.Watcher

	configFile    string
	settingsFile  string
	language      string
	envLookup     func(string) (string, bool)
	enableWatcher bool
	onError       func(error)
}

// Option configures a Config instance.
type Option func(*Config)

// WithConfigFile sets the TOML configuration file.
func WithConfigFile(path string) Option {
	return func(c *Config) {
		c.configFile = path
	}
}

// WithSettingsFile sets the editor settings.json file.
func WithSettingsFile(path string) Option {
	return func(c *Config) {
		c.settingsFile = path
	}
}

// WithLanguage selects the "[language]" override block of settings.json.
func WithLanguage(language string) Option {
	return func(c *Config) {
		c.language = language
	}
}

// WithEnvLookup replaces the environment lookup.
func WithEnvLookup(fn func(string) (string, bool)) Option {
	return func(c *Config) {
		c.envLookup = fn
	}
}

// WithWatcher enables file watching for live reload.
func WithWatcher(enable bool) Option {
	return func(c *Config) {
		c.enableWatcher = enable
	}
}

// WithErrorHandler sets the function called when a live reload fails.
func WithErrorHandler(fn func(error)) Option {
	return func(c *Config) {
		c.onError = fn
	}
}

// New creates a new Config instance with the given options.
// Only defaults are available until Load is called.
func New(opts ...Option) *Config {
	c := &Config{
		layers:   layer.NewManager(),
		notifier: notify.New(),
		language: "vhdl",
	}
	for _, opt := range opts {
		opt(c)
	}

	c.layers.AddLayer(layer.New(LayerDefaults, layer.SourceDefaults, defaults()))
	return c
}

// Load reads every configured source. Missing files are skipped. Invalid
// values are reported together and leave the configuration unchanged.
func (c *Config) Load(_ context.Context) error {
	c.mu.Lock()

	var loaded []*layer.Layer
	if c.configFile != "" {
		l, err := c.readFile(c.configFile)
		if err != nil {
			c.mu.Unlock()
			return err
		}
		if l != nil {
			loaded = append(loaded, l)
		}
	}
	if c.settingsFile != "" {
		l, err := c.readFile(c.settingsFile)
		if err != nil {
			c.mu.Unlock()
			return err
		}
		if l != nil {
			loaded = append(loaded, l)
		}
	}

	env := loader.NewEnvLoader().WithLookup(c.envLookup)
	data, err := env.Load()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	loaded = append(loaded, layer.New(LayerEnvironment, layer.SourceEnv, data))

	var errs []error
	for _, l := range loaded {
		errs = append(errs, validateLayer(l)...)
	}
	if len(errs) > 0 {
		c.mu.Unlock()
		return errors.Join(errs...)
	}
	for _, l := range loaded {
		c.layers.AddLayer(l)
	}

	watch := c.enableWatcher && c.watcher == nil
	c.mu.Unlock()

	if watch {
		return c.startWatcher()
	}
	return nil
}

// readFile loads the layer for one of the configured files.
// It returns nil, nil when the file does not exist.
func (c *Config) readFile(path string) (*layer.Layer, error) {
	var (
		name   string
		source layer.Source
		ld     loader.Loader
	)
	switch path {
	case c.configFile:
		name, source, ld = LayerFile, layer.SourceFile, loader.NewTOMLLoader(path)
	case c.settingsFile:
		name, source, ld = LayerSettings, layer.SourceSettings, loader.NewSettingsLoader(path, c.language)
	default:
		return nil, fmt.Errorf("%s is not a configuration file", path)
	}

	data, err := ld.Load()
	if err != nil || data == nil {
		return nil, err
	}
	return layer.FromFile(name, source, path, data), nil
}

// reloadDelay lets an editor finish a save before the file is re-read.
const reloadDelay = 250 * time.Millisecond

func (c *Config) startWatcher() error {
	w, err := watcher.New(func(ev watcher.Event) {
		if err := c.Reload(ev.Path); err != nil && c.onError != nil {
			c.onError(err)
		}
	}, watcher.WithDebounce(reloadDelay), watcher.WithErrorHandler(c.onError))
	if err != nil {
		return fmt.Errorf("starting config watcher: %w", err)
	}

	for _, path := range []string{c.configFile, c.settingsFile} {
		if path == "" {
			continue
		}
		if err := w.Watch(path); err != nil {
			w.Close()
			return fmt.Errorf("watching %s: %w", path, err)
		}
	}

	c.mu.Lock()
	c.watcher = w
	c.mu.Unlock()
	return nil
}

// Reload re-reads one configuration file and notifies observers of every
// setting whose effective value changed. A removed file drops its layer.
func (c *Config) Reload(path string) error {
	c.mu.Lock()
	target := ""
	for _, p := range []string{c.configFile, c.settingsFile} {
		if p != "" && samePath(p, path) {
			target = p
		}
	}
	if target == "" {
		c.mu.Unlock()
		return nil
	}

	l, err := c.readFile(target)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if l != nil {
		if errs := validateLayer(l); len(errs) > 0 {
			c.mu.Unlock()
			return errors.Join(errs...)
		}
	}

	before := c.layers.Merge()
	if l == nil {
		if target == c.configFile {
			c.layers.RemoveLayer(LayerFile)
		} else {
			c.layers.RemoveLayer(LayerSettings)
		}
	} else {
		c.layers.AddLayer(l)
	}
	after := c.layers.Merge()
	c.mu.Unlock()

	c.notifyDiff(before, after, target)
	c.notifier.NotifyReload(target)
	return nil
}

func (c *Config) notifyDiff(before, after map[string]any, source string) {
	for _, path := range layer.Changed(before, after) {
		oldValue, _ := layer.GetByPath(before, path)
		newValue, _ := layer.GetByPath(after, path)
		c.notifier.NotifySet(path, oldValue, newValue, source)
	}
}

// Close stops the file watcher and notifications.
func (c *Config) Close() {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w != nil {
		w.Close()
	}
	c.notifier.Close()
}

// Get returns the effective value at path.
func (c *Config) Get(path string) (any, bool) {
	v, _, ok := c.layers.Get(path)
	return v, ok
}

// Has reports whether any layer above the defaults sets path.
func (c *Config) Has(path string) bool {
	_, l, ok := c.layers.Get(path)
	return ok && l.Source != layer.SourceDefaults
}

// SourceOf returns the name of the layer that provides path.
func (c *Config) SourceOf(path string) string {
	_, l, ok := c.layers.Get(path)
	if !ok {
		return ""
	}
	return l.Name
}

// Int returns the integer at path.
func (c *Config) Int(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	n, ok := toInt(v)
	if !ok {
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
	return n, nil
}

// Bool returns the boolean at path.
func (c *Config) Bool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// String returns the string at path.
func (c *Config) String(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns the integer at path, or def if unset or not an integer.
func (c *Config) GetInt(path string, def int) int {
	if n, err := c.Int(path); err == nil {
		return n
	}
	return def
}

// GetBool returns the boolean at path, or def if unset or not a boolean.
func (c *Config) GetBool(path string, def bool) bool {
	if b, err := c.Bool(path); err == nil {
		return b
	}
	return def
}

// GetString returns the string at path, or def if unset or not a string.
func (c *Config) GetString(path string, def string) string {
	if s, err := c.String(path); err == nil {
		return s
	}
	return def
}

// SetFlag sets a command-line override and notifies observers when the
// effective value changes.
func (c *Config) SetFlag(path string, value any) error {
	if path == "" {
		return ErrInvalidPath
	}
	if err := Validate(path, value); err != nil {
		return err
	}

	c.mu.Lock()
	if c.layers.Layer(LayerFlags) == nil {
		c.layers.AddLayer(layer.New(LayerFlags, layer.SourceFlags, nil))
	}
	old, _, _ := c.layers.Get(path)
	if err := c.layers.SetIn(LayerFlags, path, value); err != nil {
		c.mu.Unlock()
		return err
	}
	cur, _, _ := c.layers.Get(path)
	c.mu.Unlock()

	if fmt.Sprint(old) != fmt.Sprint(cur) {
		c.notifier.NotifySet(path, old, cur, LayerFlags)
	}
	return nil
}

// SetSetting writes value to the settings.json file and reloads it.
func (c *Config) SetSetting(path string, value any) error {
	if err := Validate(path, value); err != nil {
		return err
	}

	c.mu.Lock()
	file := c.settingsFile
	c.mu.Unlock()
	if file == "" {
		return ErrNoSettingsFile
	}

	if err := loader.WriteSetting(file, path, value); err != nil {
		return err
	}
	return c.Reload(file)
}

// Subscribe registers an observer for all configuration changes.
func (c *Config) Subscribe(observer notify.Observer) *notify.Subscription {
	return c.notifier.Subscribe(observer)
}

// SubscribePath registers an observer for changes under path.
func (c *Config) SubscribePath(path string, observer notify.Observer) *notify.Subscription {
	return c.notifier.SubscribePath(path, observer)
}

// Effective is a setting's current value and the layer it comes from.
type Effective struct {
	Path  string
	Value any
	Layer string
}

// Merged lists every effective setting sorted by path.
func (c *Config) Merged() []Effective {
	flat := layer.Flatten(c.layers.Merge())
	out := make([]Effective, 0, len(flat))
	for path, v := range flat {
		out = append(out, Effective{Path: path, Value: v, Layer: c.SourceOf(path)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Layers returns the active layer names from lowest to highest precedence.
func (c *Config) Layers() []string {
	var names []string
	for _, l := range c.layers.Layers() {
		names = append(names, l.Name)
	}
	return names
}

func samePath(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	if err1 != nil || err2 != nil {
		return a == b
	}
	return aa == bb
}
