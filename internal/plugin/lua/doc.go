// Package lua runs Lua scripts against the comment aligner.
//
// A State is a sandboxed gopher-lua interpreter. The io, os and debug
// libraries are not opened, file loading functions are removed, and
// require only resolves the built-in string, table and math libraries plus
// the preloaded "vhdlalign" module:
//
//	local va = require("vhdlalign")
//	local line, cur = va.align_forward("x -- c", 0, { column = 40 })
//	print(va.visual_column("\tx", 1))   --> 4
//
// Offsets are 0-based character offsets, matching the Go API. Functions
// that decline to align return nil followed by the reason.
package lua
