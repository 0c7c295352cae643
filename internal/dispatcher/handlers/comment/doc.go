// Package comment provides the VHDL comment alignment commands.
//
// Two commands act on trailing "--" comments:
//
//   - vhdlCommentAligner.alignCommentOnTab moves a comment right to the
//     configured column when a cursor is at or before its marker.
//   - vhdlCommentAligner.deIndentCommentOnBackspace pulls a comment left to
//     the column when a cursor sits exactly on its marker.
//
// Every cursor is judged against the document as it was before the command,
// and all changes land as one undo step. When no cursor qualifies, or the
// document is not VHDL, the command defers to the default "tab" or
// "deleteLeft" command.
//
// The column comes from vhdlCommentAligner.commentColumn (default 95), or
// the older vhdlCommentAligner.tabStop when only that is set. Tab width comes
// from editor.tabSize.
//
// The vhdlCommentAligner.cursorAtComment condition, kept current by Tracker,
// gates the Keymap bindings so Tab and Backspace only reach the aligner when
// a cursor is on a marker.
package comment
