// Package history provides undo/redo functionality for the text editor engine.
//
// Every change to a buffer is recorded as a Transaction: an ordered batch of
// line edits together with the cursors before and after it. A transaction is
// one undo step no matter how many lines or cursors it touched.
//
//	h := history.NewHistory(1000)
//
//	tx := history.NewTransaction("align comments", edits, before, after)
//	if err := h.Execute(tx, buf, cursors); err != nil {
//	    return err
//	}
//
//	h.Undo(buf, cursors) // reverts every line in tx at once
package history
