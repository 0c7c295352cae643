package keymap

// DefaultKeymap returns the built-in editing keymap.
func DefaultKeymap() *Keymap {
	km := NewKeymap("default").WithSource("default")

	km.AddBinding(NewBinding("Tab", "tab").
		WithWhen("editorTextFocus && !editorReadonly").
		WithDescription("Insert a tab"))
	km.AddBinding(NewBinding("BS", "deleteLeft").
		WithWhen("editorTextFocus && !editorReadonly").
		WithDescription("Delete the character left of the cursor"))
	km.AddBinding(NewBinding("Enter", "editor.newline").
		WithWhen("editorTextFocus && !editorReadonly").
		WithDescription("Split the line"))

	km.AddBinding(NewBinding("Left", "cursor.moveLeft").WithDescription("Move left"))
	km.AddBinding(NewBinding("Right", "cursor.moveRight").WithDescription("Move right"))
	km.AddBinding(NewBinding("Up", "cursor.moveUp").WithDescription("Move up"))
	km.AddBinding(NewBinding("Down", "cursor.moveDown").WithDescription("Move down"))
	km.AddBinding(NewBinding("Home", "cursor.moveLineStart").WithDescription("Move to line start"))
	km.AddBinding(NewBinding("End", "cursor.moveLineEnd").WithDescription("Move to line end"))
	km.AddBinding(NewBinding("Esc", "cursor.single").WithDescription("Collapse to one cursor"))
	km.AddBinding(NewBinding("C-d", "cursor.addBelow").WithDescription("Add a cursor on the next line"))

	km.AddBinding(NewBinding("C-z", "editor.undo").WithDescription("Undo"))
	km.AddBinding(NewBinding("C-y", "editor.redo").WithDescription("Redo"))
	km.AddBinding(NewBinding("C-s", "file.save").WithDescription("Save"))
	km.AddBinding(NewBinding("C-n", "app.nextDocument").WithDescription("Switch to the next document"))
	km.AddBinding(NewBinding("C-q", "app.quit").WithDescription("Quit"))

	return km
}

// LoadDefaults registers the built-in keymaps.
func LoadDefaults(r *Registry) error {
	return r.Register(DefaultKeymap())
}
