// Package config provides layered settings for vhdlalign.
//
// Settings are addressed by dotted paths such as
// "vhdlCommentAligner.commentColumn" or "editor.tabSize". Each source
// contributes one layer, and higher layers override lower ones:
//
//	┌─────────────────────────────┐
//	│  5. Command-line flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  4. Environment variables   │  ← VHDLALIGN_*
//	├─────────────────────────────┤
//	│  3. settings.json           │  ← "[vhdl]" block applied on top
//	├─────────────────────────────┤
//	│  2. TOML config file        │
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - layer: layer storage, merging and path access
//   - loader: TOML, settings.json and environment loaders
//   - notify: change notification
//   - watcher: file watching for live reload
//
// # Usage
//
//	cfg := config.New(
//	    config.WithConfigFile("vhdlalign.toml"),
//	    config.WithSettingsFile(".vscode/settings.json"),
//	    config.WithWatcher(true),
//	)
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	defer cfg.Close()
//
//	column := cfg.GetInt(config.KeyCommentColumn, 95)
//
// Config satisfies the ConfigReader interface used by command handlers, so
// handlers read settings fresh on every invocation.
package config
