package app

import (
	"context"
	"sync"

	"github.com/dshills/vhdlalign/internal/config"
	"github.com/dshills/vhdlalign/internal/config/notify"
	"github.com/dshills/vhdlalign/internal/dispatcher/handlers/comment"
	"github.com/dshills/vhdlalign/internal/event"
	"github.com/dshills/vhdlalign/internal/event/topic"
	"github.com/dshills/vhdlalign/internal/renderer/highlight"
)

// subscriptionManager manages event bus subscriptions for the application.
type subscriptionManager struct {
	mu            sync.Mutex
	subscriptions []event.Subscription
	configSub     *notify.Subscription
	app           *Application
}

// newSubscriptionManager creates a new subscription manager.
func newSubscriptionManager(app *Application) *subscriptionManager {
	return &subscriptionManager{app: app}
}

// setupSubscriptions registers all event subscriptions.
func (sm *subscriptionManager) setupSubscriptions() error {
	if err := sm.subscribe(event.TopicEditorChanged, sm.onEditorChanged); err != nil {
		return err
	}
	if err := sm.subscribe(event.TopicSelectionChanged, sm.onSelectionChanged); err != nil {
		return err
	}
	if err := sm.subscribe(event.TopicDocumentEdited, sm.onDocumentEdited); err != nil {
		return err
	}
	if err := sm.subscribe(event.TopicConfigChanged, sm.onConfigChanged, event.WithFilter(cachedSetting)); err != nil {
		return err
	}

	// Config notifications are republished on the bus.
	if sm.app.config != nil {
		sm.configSub = sm.app.config.Subscribe(func(change notify.Change) {
			if change.Type != notify.ChangeSet {
				sm.app.logger.Info("reloaded %s", change.Path)
				return
			}
			sm.app.publish(event.TopicConfigChanged, event.ConfigChanged{
				Key:      change.Path,
				OldValue: change.OldValue,
				NewValue: change.NewValue,
				Source:   change.Source,
			})
		})
	}
	return nil
}

func (sm *subscriptionManager) subscribe(t topic.Topic, fn event.HandlerFunc, opts ...event.SubscriptionOption) error {
	sub, err := sm.app.bus.SubscribeFunc(t, fn, opts...)
	if err != nil {
		return err
	}
	sm.mu.Lock()
	sm.subscriptions = append(sm.subscriptions, sub)
	sm.mu.Unlock()
	return nil
}

// onEditorChanged recomputes the context flag and retargets the renderer.
func (sm *subscriptionManager) onEditorChanged(_ context.Context, ev any) error {
	p, ok := event.Payload[event.EditorChanged](ev)
	if !ok {
		return nil
	}
	sm.app.refreshContext()

	if r := sm.app.currentRenderer(); r != nil {
		status := r.Status()
		status.SetFilename(p.Path)
		status.SetLanguage(p.LanguageID)
		r.SetHighlighter(highlighterFor(p.LanguageID, p.Path))
		sm.app.updateStatus()
	}
	return nil
}

// onSelectionChanged recomputes the context flag.
func (sm *subscriptionManager) onSelectionChanged(_ context.Context, ev any) error {
	if _, ok := event.Payload[event.SelectionChanged](ev); !ok {
		return nil
	}
	sm.app.refreshContext()
	sm.app.updateStatus()
	return nil
}

// onDocumentEdited recomputes the context flag; an edit can move comments.
func (sm *subscriptionManager) onDocumentEdited(_ context.Context, ev any) error {
	p, ok := event.Payload[event.DocumentEdited](ev)
	if !ok {
		return nil
	}
	sm.app.logger.Debug("edited %s: %s", p.Path, p.Action)
	sm.app.refreshContext()
	sm.app.updateStatus()
	return nil
}

// onConfigChanged applies settings that components cache.
func (sm *subscriptionManager) onConfigChanged(_ context.Context, ev any) error {
	p, ok := event.Payload[event.ConfigChanged](ev)
	if !ok {
		return nil
	}
	sm.app.logger.Debug("setting %s: %v -> %v (%s)", p.Key, p.OldValue, p.NewValue, p.Source)

	switch p.Key {
	case config.KeyLogLevel:
		sm.app.logger.SetLevel(ParseLogLevel(sm.app.config.GetString(config.KeyLogLevel, "info")))
	case comment.SettingCommentColumn, comment.SettingTabStop, comment.SettingTabSize:
		sm.app.configureRenderer()
	}
	return nil
}

// cachedSetting matches config changes to settings that components cache.
func cachedSetting(ev any) bool {
	p, ok := event.Payload[event.ConfigChanged](ev)
	if !ok {
		return false
	}
	switch p.Key {
	case config.KeyLogLevel, comment.SettingCommentColumn, comment.SettingTabStop, comment.SettingTabSize:
		return true
	}
	return false
}

// close removes every subscription.
func (sm *subscriptionManager) close() {
	sm.mu.Lock()
	subs := sm.subscriptions
	sm.subscriptions = nil
	sm.mu.Unlock()

	for _, sub := range subs {
		_ = sm.app.bus.Unsubscribe(sub)
	}
	sm.configSub.Unsubscribe()
}

// highlighterFor picks a lexer by language, falling back to the file name.
func highlighterFor(languageID, path string) *highlight.Highlighter {
	if languageID != "" {
		if h, err := highlight.New(languageID); err == nil {
			return h
		}
	}
	return highlight.ForFile(path)
}
