package storage

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

// mockSelectable implements validatingSelectable for testing
type mockSelectable struct {
	name string
}

func (s *mockSelectable) Validate() error  { return nil }
func (s *mockSelectable) Selector() string { return s.name }

func newSelectableFixture(t *testing.T, names map[string]string) *SelectableStorer[*mockSelectable] {
	t.Helper()

	st := NewMemoryStore[*mockSelectable]()
	for id, name := range names {
		if err := st.Save(id, &mockSelectable{name: name}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	return NewSelectableStorer[*mockSelectable](st)
}

func TestSelectableStorer_Prompt(t *testing.T) {
	tests := map[string]struct {
		records map[string]string
		input   string
		exp     string
		expErr  string
	}{
		"first option sorted by selector": {
			records: map[string]string{"story-b": "Beta", "story-a": "Alpha"},
			input:   "1\n",
			exp:     "story-a",
		},
		"second option": {
			records: map[string]string{"story-b": "Beta", "story-a": "Alpha"},
			input:   "2\n",
			exp:     "story-b",
		},
		"invalid then valid": {
			records: map[string]string{"story-a": "Alpha"},
			input:   "banana\n7\n1\n",
			exp:     "story-a",
		},
		"empty store": {
			records: map[string]string{},
			input:   "1\n",
			expErr:  "nothing to select",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ss := newSelectableFixture(t, tt.records)
			out := &bytes.Buffer{}

			got, err := ss.Prompt(bufio.NewReader(strings.NewReader(tt.input)), out, "Pick a story:")
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "selection", got, tt.exp)
			if !strings.Contains(out.String(), "Pick a story:") {
				t.Errorf("expected prompt in output, got %q", out.String())
			}
		})
	}
}

func TestSelectableStorer_SeesNewRecords(t *testing.T) {
	st := NewMemoryStore[*mockSelectable]()
	ss := NewSelectableStorer[*mockSelectable](st)

	if err := st.Save("late", &mockSelectable{name: "Late Arrival"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	out := &bytes.Buffer{}
	got, err := ss.Prompt(bufio.NewReader(strings.NewReader("1\n")), out, "Pick:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "selection", got, "late")
	if !strings.Contains(out.String(), " 1. Late Arrival") {
		t.Errorf("menu missing option, got %q", out.String())
	}
}

func TestRender(t *testing.T) {
	opts := []option[*mockSelectable]{}
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		opts = append(opts, option[*mockSelectable]{id: n, val: &mockSelectable{name: n}})
	}

	rows := render(opts)

	testutil.AssertEqual(t, "row count", len(rows), defaultSelectorRowCount)
	if !strings.HasPrefix(rows[0], " 1. a") {
		t.Errorf("unexpected first row %q", rows[0])
	}
	if !strings.Contains(rows[0], " 6. f") {
		t.Errorf("expected column wrap in first row, got %q", rows[0])
	}
}
