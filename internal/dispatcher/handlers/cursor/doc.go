// Package cursor provides handlers for cursor movement operations.
//
// All movements apply to every cursor and collapse selections:
//   - cursor.moveLeft, cursor.moveRight: one character, wrapping across lines
//   - cursor.moveUp, cursor.moveDown: one line, keeping the column when it fits
//   - cursor.moveLineStart, cursor.moveLineEnd: line boundaries
//   - cursor.moveFirstLine, cursor.moveLastLine: document boundaries
//
// Multi-cursor management:
//   - cursor.addBelow: add a cursor on the line below the last cursor
//   - cursor.single: keep only the primary cursor
//
// Movements never edit the document, so they do not create undo steps.
package cursor
