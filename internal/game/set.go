package game

import "slices"

// addUnique appends v unless it is already present. The second result
// reports whether the slice changed.
func addUnique(s []string, v string) ([]string, bool) {
	if slices.Contains(s, v) {
		return s, false
	}
	return append(s, v), true
}

func containsAll(have, want []string) bool {
	for _, w := range want {
		if !slices.Contains(have, w) {
			return false
		}
	}
	return true
}

func remove(s []string, v string) ([]string, bool) {
	i := slices.Index(s, v)
	if i < 0 {
		return s, false
	}
	return slices.Delete(s, i, i+1), true
}
