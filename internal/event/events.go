package event

import (
	"github.com/dshills/vhdlalign/internal/engine/cursor"
	"github.com/dshills/vhdlalign/internal/event/topic"
)

// Topics published by the host.
const (
	TopicEditorChanged    topic.Topic = "editor.active.changed"
	TopicSelectionChanged topic.Topic = "editor.selection.changed"
	TopicDocumentEdited   topic.Topic = "editor.document.edited"
	TopicConfigChanged    topic.Topic = "config.changed"
)

// EditorChanged is published when the active document changes.
// Path and LanguageID are empty when no document is active.
type EditorChanged struct {
	Path       string
	LanguageID string
}

// SelectionChanged is published after cursors move.
type SelectionChanged struct {
	Path       string
	Selections []cursor.Selection
}

// DocumentEdited is published after an edit is applied to a document.
type DocumentEdited struct {
	Path   string
	Label  string
	Action string
}

// ConfigChanged is published when a setting changes value.
type ConfigChanged struct {
	Key      string
	OldValue any
	NewValue any
	Source   string
}
