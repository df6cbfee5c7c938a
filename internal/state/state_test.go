package state

import (
	"testing"

	"github.com/atomicstack/tmux-tab-rename/internal/pane"
)

func TestTabStoreClonesOnReadAndWrite(t *testing.T) {
	store := NewTabStore()
	if store.Loaded() {
		t.Fatalf("new store should not be loaded")
	}
	tabs := pane.TabSnapshot{{Position: 1, Name: "a"}}
	store.SetTabs(tabs)
	tabs[0].Name = "mutated"
	got := store.Tabs()
	if got[0].Name != "a" {
		t.Fatalf("store shared input slice: %#v", got)
	}
	got[0].Name = "again"
	if store.Tabs()[0].Name != "a" {
		t.Fatalf("store shared output slice")
	}
	if !store.Loaded() {
		t.Fatalf("expected loaded after SetTabs")
	}
}

func TestPaneStoreClonesGroups(t *testing.T) {
	store := NewPaneStore()
	manifest := pane.PaneManifest{0: {{ID: 1}}}
	store.SetManifest(manifest)
	manifest[0][0].ID = 99
	if store.Manifest()[0][0].ID != 1 {
		t.Fatalf("store shared input groups")
	}
}

func TestIndexStoreReplace(t *testing.T) {
	store := NewIndexStore()
	if store.Len() != 0 {
		t.Fatalf("expected empty index")
	}
	store.Replace(pane.Index{3: {DisplayIndex: 0, TabName: "x"}})
	store.Replace(pane.Index{4: {DisplayIndex: 1, TabName: "y"}})
	idx := store.Index()
	if _, ok := idx.Lookup(3); ok {
		t.Fatalf("stale entry survived replace")
	}
	if entry, ok := idx.Lookup(4); !ok || entry.TabName != "y" {
		t.Fatalf("unexpected index: %#v", idx)
	}
	idx[5] = pane.Entry{}
	if store.Len() != 1 {
		t.Fatalf("caller mutation leaked into store")
	}
	store.Replace(nil)
	if store.Index() == nil || store.Len() != 0 {
		t.Fatalf("nil replace should yield an empty index")
	}
}
