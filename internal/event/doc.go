// Package event provides a synchronous publish/subscribe bus.
//
// Components announce state changes (active editor, selections, settings)
// without knowing who listens. The aligner's key-binding flag, the terminal
// host and the config watcher are all wired through it.
//
// # Event Topics
//
// Events use hierarchical topics with dot notation:
//
//	editor.active.changed
//	editor.selection.changed
//	editor.document.edited
//	config.changed
//
// Subscriptions may use wildcards ("editor.*.changed", "editor.**").
//
// # Delivery
//
// Publish runs every matching handler on the caller's goroutine, lowest
// Priority first, then in subscription order. A handler error or panic is
// reported back to the publisher and does not stop delivery to the others.
//
// # Usage
//
//	bus := event.NewBus()
//	sub, _ := bus.SubscribeFunc(event.TopicSelectionChanged, func(ctx context.Context, ev any) error {
//		p, _ := event.Payload[event.SelectionChanged](ev)
//		log.Printf("%d cursors", len(p.Selections))
//		return nil
//	})
//	defer bus.Unsubscribe(sub)
package event
