// Package topic names bus events and matches them against subscription
// patterns.
package topic
