package store

import (
	"path/filepath"
	"testing"
	"time"
)

type record struct {
	Mood  int      `json:"mood"`
	Notes []string `json:"notes,omitempty"`
}

func backends(t *testing.T) map[string]func(t *testing.T) (KV, func() KV) {
	return map[string]func(t *testing.T) (KV, func() KV){
		"memory": func(t *testing.T) (KV, func() KV) {
			m := NewMemory()
			return m, func() KV { return m }
		},
		"disk": func(t *testing.T) (KV, func() KV) {
			base := t.TempDir()
			d, err := OpenDisk(base)
			if err != nil {
				t.Fatalf("open disk: %v", err)
			}
			t.Cleanup(func() { _ = d.Close() })
			return d, func() KV {
				again, err := OpenDisk(base)
				if err != nil {
					t.Fatalf("reopen disk: %v", err)
				}
				t.Cleanup(func() { _ = again.Close() })
				return again
			}
		},
		"sqlite": func(t *testing.T) (KV, func() KV) {
			path := filepath.Join(t.TempDir(), "mood.db")
			s, err := OpenSQLite(path)
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			t.Cleanup(func() { _ = s.Close() })
			return s, func() KV {
				again, err := OpenSQLite(path)
				if err != nil {
					t.Fatalf("reopen sqlite: %v", err)
				}
				t.Cleanup(func() { _ = again.Close() })
				return again
			}
		},
	}
}

func TestKVRoundTrip(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			kv, reopen := open(t)

			var got record
			ok, err := kv.Get("moods", &got)
			if err != nil || ok {
				t.Fatalf("empty get = %v, %v; want false, nil", ok, err)
			}

			want := record{Mood: 3, Notes: []string{"calm"}}
			if err := kv.Set("moods", want); err != nil {
				t.Fatalf("set: %v", err)
			}

			// Staged values are visible before Save.
			ok, err = kv.Get("moods", &got)
			if err != nil || !ok || got.Mood != 3 {
				t.Fatalf("staged get = %+v, %v, %v", got, ok, err)
			}

			if err := kv.Save(); err != nil {
				t.Fatalf("save: %v", err)
			}

			other := reopen()
			got = record{}
			ok, err = other.Get("moods", &got)
			if err != nil || !ok {
				t.Fatalf("reopened get = %v, %v", ok, err)
			}
			if got.Mood != want.Mood || len(got.Notes) != 1 || got.Notes[0] != "calm" {
				t.Errorf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestKVDeleteAndDiscard(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			kv, _ := open(t)

			if err := kv.Set("moods", record{Mood: 1}); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := kv.Save(); err != nil {
				t.Fatalf("save: %v", err)
			}

			if err := kv.Set("moods", record{Mood: 4}); err != nil {
				t.Fatalf("set: %v", err)
			}
			kv.Discard()

			var got record
			if ok, err := kv.Get("moods", &got); err != nil || !ok || got.Mood != 1 {
				t.Fatalf("after discard got %+v, %v, %v; want mood 1", got, ok, err)
			}

			if err := kv.Delete("moods"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if ok, _ := kv.Get("moods", &got); ok {
				t.Fatal("staged delete should hide the value")
			}
			if err := kv.Save(); err != nil {
				t.Fatalf("save delete: %v", err)
			}
			if ok, err := kv.Get("moods", &got); err != nil || ok {
				t.Fatalf("after delete got %v, %v", ok, err)
			}

			// Deleting an absent key is not an error.
			if err := kv.Delete("moods"); err != nil {
				t.Fatalf("delete again: %v", err)
			}
			if err := kv.Save(); err != nil {
				t.Fatalf("save absent delete: %v", err)
			}
		})
	}
}

func TestKVClosed(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			kv, _ := open(t)
			if err := kv.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}
			if _, err := kv.Get("moods", nil); err != ErrClosed {
				t.Errorf("get after close = %v, want ErrClosed", err)
			}
			if err := kv.Set("moods", 1); err != ErrClosed {
				t.Errorf("set after close = %v, want ErrClosed", err)
			}
		})
	}
}

// A handle that already read a key must see a later write made through
// another handle, as happens when a second process logs a mood.
func TestKVSeesOtherWriters(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			kv, reopen := open(t)
			if err := kv.Set("moods", record{Mood: 1}); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := kv.Save(); err != nil {
				t.Fatalf("save: %v", err)
			}
			var got record
			if _, err := kv.Get("moods", &got); err != nil || got.Mood != 1 {
				t.Fatalf("first read = %+v, %v", got, err)
			}

			other := reopen()
			if err := other.Set("moods", record{Mood: 3, Notes: []string{"elsewhere"}}); err != nil {
				t.Fatalf("other set: %v", err)
			}
			if err := other.Save(); err != nil {
				t.Fatalf("other save: %v", err)
			}

			got = record{}
			if _, err := kv.Get("moods", &got); err != nil {
				t.Fatalf("second read: %v", err)
			}
			if got.Mood != 3 || len(got.Notes) != 1 {
				t.Errorf("stale read %+v, want the other handle's write", got)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	base := t.TempDir()
	d, err := OpenDisk(base)
	if err != nil {
		t.Fatalf("open disk: %v", err)
	}
	defer d.Close()
	_ = d.Set("moods", 1)
	_ = d.Set("settings-theme", "dark")
	if err := d.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	desc := d.Describe()
	if desc.Backend != BackendDisk || desc.Location != base {
		t.Errorf("unexpected description %+v", desc)
	}
	if len(desc.Keys) != 2 || desc.Keys[0] != "moods" || desc.Keys[1] != "settings-theme" {
		t.Errorf("keys = %v", desc.Keys)
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	base := t.TempDir()
	tests := map[string]struct {
		kind    string
		wantErr bool
		check   func(KV) bool
	}{
		"default disk": {kind: "", check: func(kv KV) bool { _, ok := kv.(*Disk); return ok }},
		"sqlite":       {kind: BackendSQLite, check: func(kv KV) bool { _, ok := kv.(*SQLite); return ok }},
		"memory":       {kind: BackendMemory, check: func(kv KV) bool { _, ok := kv.(*Memory); return ok }},
		"unknown":      {kind: "etcd", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			kv, err := Open(StaticConfig{Path: filepath.Join(base, name), Kind: tc.kind, Interval: time.Second})
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer kv.Close()
			if !tc.check(kv) {
				t.Errorf("unexpected backend %T", kv)
			}
		})
	}
}

func TestSQLitePath(t *testing.T) {
	if got := sqlitePath("/x/mood.db"); got != "/x/mood.db" {
		t.Errorf("sqlitePath kept file = %q", got)
	}
	if got := sqlitePath("/x/mood"); got != filepath.Join("/x/mood", sqliteFile) {
		t.Errorf("sqlitePath dir = %q", got)
	}
}
