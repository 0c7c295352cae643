package keymap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/vhdlalign/internal/input/key"
)

// ErrInvalidKeybindings is returned when a keybindings file is malformed.
var ErrInvalidKeybindings = errors.New("invalid keybindings")

// LoadKeybindingsFile reads a keybindings.json file in the VS Code
// format, an array of {"key", "command", "when", "args"} objects.
func LoadKeybindingsFile(path string) (*Keymap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading keybindings %s: %w", path, err)
	}
	defer f.Close()

	km, err := LoadKeybindings(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return km, nil
}

// LoadKeybindings reads a keybindings document from r.
func LoadKeybindings(r io.Reader) (*Keymap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseKeybindings(data)
}

// ParseKeybindings parses a keybindings document into a user keymap.
// Keys are stored in canonical form. Entries whose command starts with "-"
// are skipped; removal of default bindings is not supported.
func ParseKeybindings(data []byte) (*Keymap, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidKeybindings)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected an array", ErrInvalidKeybindings)
	}

	km := NewKeymap("user").WithSource("user").WithPriority(10)

	var perr error
	root.ForEach(func(idx, item gjson.Result) bool {
		keys := item.Get("key").String()
		command := item.Get("command").String()
		if keys == "" || command == "" {
			perr = fmt.Errorf("%w: entry %d needs key and command", ErrInvalidKeybindings, idx.Int())
			return false
		}
		if strings.HasPrefix(command, "-") {
			return true
		}
		canon, err := key.NormalizeSpec(keys)
		if err != nil {
			perr = fmt.Errorf("%w: entry %d: %v", ErrInvalidKeybindings, idx.Int(), err)
			return false
		}

		b := NewBinding(canon, command).WithWhen(item.Get("when").String())
		if args := item.Get("args"); args.IsObject() {
			if m, ok := args.Value().(map[string]any); ok {
				b.Args = m
			}
		}
		km.AddBinding(b)
		return true
	})
	if perr != nil {
		return nil, perr
	}

	if err := km.Validate(); err != nil {
		return nil, err
	}
	return km, nil
}
