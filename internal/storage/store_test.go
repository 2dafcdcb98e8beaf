package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

// mockRecord implements ValidatingSpec for testing the stores
type mockRecord struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func (r *mockRecord) Validate() error {
	return nil
}

func writeAsset(t *testing.T, dir, file string, asset Asset[*mockRecord]) {
	t.Helper()

	data, err := json.Marshal(asset)
	if err != nil {
		t.Fatalf("failed to marshal test asset: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, file), data, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
}

func TestNewFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "players")

	store, err := NewFileStore[*mockRecord](dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "records length", len(store.GetAll()), 0)
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected directory to exist: %v", err)
	}
}

func TestNewFileStore_Load(t *testing.T) {
	tests := map[string]struct {
		setup    func(t *testing.T, dir string)
		expErr   string
		expCount int
	}{
		"loads valid assets": {
			setup: func(t *testing.T, dir string) {
				writeAsset(t, dir, "a.json", Asset[*mockRecord]{Version: 1, Identifier: "story-1.alice", Spec: &mockRecord{Name: "Alice"}})
				writeAsset(t, dir, "b.json", Asset[*mockRecord]{Version: 1, Identifier: "story-1.bob", Spec: &mockRecord{Name: "Bob"}})
			},
			expCount: 2,
		},
		"ignores non json files": {
			setup: func(t *testing.T, dir string) {
				writeAsset(t, dir, "a.json", Asset[*mockRecord]{Version: 1, Identifier: "a", Spec: &mockRecord{}})
				if err := os.WriteFile(filepath.Join(dir, "a.json.tmp"), []byte("{"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			expCount: 1,
		},
		"invalid json": {
			setup: func(t *testing.T, dir string) {
				if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{invalid`), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			expErr: "decoding asset",
		},
		"unknown field": {
			setup: func(t *testing.T, dir string) {
				raw := `{"version":1,"id":"a","spec":{"name":"Alice","nmae":"typo"}}`
				if err := os.WriteFile(filepath.Join(dir, "a.json"), []byte(raw), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			expErr: `unknown field "nmae"`,
		},
		"missing version": {
			setup: func(t *testing.T, dir string) {
				writeAsset(t, dir, "a.json", Asset[*mockRecord]{Identifier: "a", Spec: &mockRecord{}})
			},
			expErr: "version must be set",
		},
		"duplicate key": {
			setup: func(t *testing.T, dir string) {
				writeAsset(t, dir, "a.json", Asset[*mockRecord]{Version: 1, Identifier: "same", Spec: &mockRecord{}})
				writeAsset(t, dir, "b.json", Asset[*mockRecord]{Version: 1, Identifier: "same", Spec: &mockRecord{}})
			},
			expErr: "duplicate key detected: same",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)

			store, err := NewFileStore[*mockRecord](dir)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "record count", len(store.GetAll()), tt.expCount)
		})
	}
}

func TestFileStore_SaveAndReload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore[*mockRecord](dir)
	if err != nil {
		t.Fatalf("unexpected error creating store: %v", err)
	}

	if err := store.Save("story-1.alice", &mockRecord{Name: "Alice", Value: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Save("story-1.alice", &mockRecord{Name: "Alice", Value: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "cached value", store.Get("story-1.alice").Value, 2)

	reloaded, err := NewFileStore[*mockRecord](dir)
	if err != nil {
		t.Fatalf("unexpected error reloading store: %v", err)
	}
	rec := reloaded.Get("story-1.alice")
	if rec == nil {
		t.Fatal("expected record after reload")
	}
	testutil.AssertEqual(t, "reloaded name", rec.Name, "Alice")
	testutil.AssertEqual(t, "reloaded value", rec.Value, 2)

	if _, err := os.Stat(filepath.Join(dir, "story-1.alice.json.tmp")); !os.IsNotExist(err) {
		t.Errorf("temp file should not remain after save")
	}
}

func TestFileStore_SaveRejectsBadKey(t *testing.T) {
	store, err := NewFileStore[*mockRecord](t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error creating store: %v", err)
	}

	err = store.Save("../escape", &mockRecord{})
	testutil.AssertErrorContains(t, err, "invalid record key")
	testutil.AssertEqual(t, "records length", len(store.GetAll()), 0)
}

func TestStores_GetMissing(t *testing.T) {
	fs, err := NewFileStore[*mockRecord](t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error creating store: %v", err)
	}

	stores := map[string]Storer[*mockRecord]{
		"file":   fs,
		"memory": NewMemoryStore[*mockRecord](),
	}

	for name, st := range stores {
		t.Run(name, func(t *testing.T) {
			if got := st.Get("nope"); got != nil {
				t.Errorf("expected nil, got %v", got)
			}
		})
	}
}

func TestStores_GetAllReturnsCopy(t *testing.T) {
	fs, err := NewFileStore[*mockRecord](t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error creating store: %v", err)
	}

	stores := map[string]Storer[*mockRecord]{
		"file":   fs,
		"memory": NewMemoryStore[*mockRecord](),
	}

	for name, st := range stores {
		t.Run(name, func(t *testing.T) {
			if err := st.Save("one", &mockRecord{Name: "One"}); err != nil {
				t.Fatalf("save: %v", err)
			}
			all := st.GetAll()
			delete(all, "one")

			if st.Get("one") == nil {
				t.Errorf("GetAll should return a copy, not the original map")
			}
		})
	}
}
