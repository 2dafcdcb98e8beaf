package storage

import (
	"fmt"
	"testing"

	"github.com/pixil98/go-testutil"
)

// testRecord stands in for a story, location or player record.
type testRecord struct {
	Name string `json:"name"`
}

func (r *testRecord) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

func TestAsset_Validate(t *testing.T) {
	named := &testRecord{Name: "Great Hall"}

	tests := map[string]struct {
		asset   Asset[*testRecord]
		expErrs []string
	}{
		"ok": {
			asset: Asset[*testRecord]{Version: 1, Identifier: "keep", Spec: named},
		},
		"location key": {
			asset: Asset[*testRecord]{Version: 1, Identifier: "keep.great_hall-2", Spec: named},
		},
		"missing version": {
			asset:   Asset[*testRecord]{Identifier: "keep", Spec: named},
			expErrs: []string{"version must be set"},
		},
		"missing id": {
			asset:   Asset[*testRecord]{Version: 1, Spec: named},
			expErrs: []string{"id must be set"},
		},
		"id escapes directory": {
			asset:   Asset[*testRecord]{Version: 1, Identifier: "../players", Spec: named},
			expErrs: []string{"id must only contain"},
		},
		"record invalid": {
			asset:   Asset[*testRecord]{Version: 1, Identifier: "keep", Spec: &testRecord{}},
			expErrs: []string{"name is required"},
		},
		"every problem reported": {
			asset:   Asset[*testRecord]{Identifier: "a b", Spec: &testRecord{}},
			expErrs: []string{"version must be set", "id must only contain", "name is required"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.asset.Validate()
			if len(tt.expErrs) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			for _, e := range tt.expErrs {
				testutil.AssertErrorContains(t, err, e)
			}
		})
	}
}

func TestValidIdentifier(t *testing.T) {
	tests := map[string]struct {
		id  string
		exp bool
	}{
		"story":      {id: "keep", exp: true},
		"player key": {id: "keep.alice", exp: true},
		"empty":      {id: "", exp: false},
		"slash":      {id: "keep/alice", exp: false},
		"space":      {id: "the keep", exp: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "valid", ValidIdentifier(tt.id), tt.exp)
		})
	}
}
