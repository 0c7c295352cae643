package notify

import "testing"

func TestNotifyPaths(t *testing.T) {
	n := New()
	var all, editor, tab, aligner []string

	n.Subscribe(func(c Change) { all = append(all, c.Path) })
	n.SubscribePath("editor", func(c Change) { editor = append(editor, c.Path) })
	n.SubscribePath("editor.tabSize", func(c Change) { tab = append(tab, c.Path) })
	sub := n.SubscribePath("vhdlCommentAligner", func(c Change) { aligner = append(aligner, c.Path) })

	n.NotifySet("editor.tabSize", 4, 2, "file")
	n.NotifySet("editorial.x", 1, 2, "file")
	n.NotifySet("vhdlCommentAligner.commentColumn", 95, 81, "flags")
	sub.Unsubscribe()
	n.NotifySet("vhdlCommentAligner.commentColumn", 81, 70, "session")

	if len(all) != 4 {
		t.Errorf("all = %v", all)
	}
	if len(editor) != 1 || editor[0] != "editor.tabSize" {
		t.Errorf("editor = %v", editor)
	}
	if len(tab) != 1 {
		t.Errorf("tab = %v", tab)
	}
	if len(aligner) != 1 {
		t.Errorf("aligner = %v", aligner)
	}
}

func TestNotifyReloadAndOrder(t *testing.T) {
	n := New()
	var order []int
	n.SubscribePath("editor", func(c Change) {
		if c.Type != ChangeReload || c.Path != "vhdlalign.toml" {
			t.Errorf("change = %+v", c)
		}
		order = append(order, 1)
	})
	n.Subscribe(func(Change) { order = append(order, 2) })

	n.NotifyReload("vhdlalign.toml")
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v", order)
	}

	n.Close()
	n.NotifyReload("vhdlalign.toml")
	if len(order) != 2 {
		t.Error("delivered after Close")
	}
}

func TestChangeTypeString(t *testing.T) {
	if ChangeSet.String() != "set" || ChangeReload.String() != "reload" || ChangeType(7).String() != "unknown" {
		t.Error("ChangeType.String mismatch")
	}
}
