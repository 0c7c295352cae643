package comment

import "github.com/dshills/vhdlalign/internal/input/keymap"

// KeymapName is the name the aligner keymap registers under.
const KeymapName = Namespace

// When is the condition under which Tab and Backspace reach the aligner.
const When = "editorTextFocus && resourceLangId == " + LanguageID + " && " + ContextKey

// Keymap returns the bindings that route Tab and Backspace to the aligner
// in VHDL documents. It outranks the default keymap; when the condition is false the default
// bindings apply.
func Keymap() *keymap.Keymap {
	return keymap.NewKeymap(KeymapName).
		ForFileType(LanguageID).
		WithPriority(5).
		WithSource("extension").
		AddBinding(keymap.NewBinding("Tab", ActionAlignOnTab).
			WithWhen(When).
			WithDescription("Align the trailing comment to the comment column")).
		AddBinding(keymap.NewBinding("BS", ActionDeIndentOnBackspace).
			WithWhen(When).
			WithDescription("Pull the trailing comment back to the comment column"))
}
