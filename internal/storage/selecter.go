package storage

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/pixil98/go-quest/internal"
)

const (
	defaultSelectorRowLength = 80
	defaultSelectorRowCount  = 5
)

type validatingSelectable interface {
	ValidatingSpec
	Selector() string
}

// SelectableStorer presents the records of a store as a numbered menu.
type SelectableStorer[T validatingSelectable] struct {
	Storer[T]
}

type option[T validatingSelectable] struct {
	id  string
	val T
}

func NewSelectableStorer[T validatingSelectable](st Storer[T]) *SelectableStorer[T] {
	return &SelectableStorer[T]{Storer: st}
}

// options snapshots the store sorted by selector so the numbering is stable
// between the menu being printed and the answer being read.
func (s *SelectableStorer[T]) options() []option[T] {
	var opts []option[T]
	for id, val := range s.GetAll() {
		opts = append(opts, option[T]{id: id, val: val})
	}
	slices.SortFunc(opts, func(a, b option[T]) int {
		if c := strings.Compare(a.val.Selector(), b.val.Selector()); c != 0 {
			return c
		}
		return strings.Compare(a.id, b.id)
	})
	return opts
}

func render[T validatingSelectable](opts []option[T]) []string {
	colWidth := 1
	for _, v := range opts {
		l := len(v.val.Selector()) + 7 // "nn. " prefix plus column gap
		if l > colWidth {
			colWidth = l
		}
	}

	// Fill columns first, left to right, growing the row count when the
	// options do not fit in the default number of rows.
	numCols := max(defaultSelectorRowLength/colWidth, 1)
	numRows := max(len(opts)/numCols, defaultSelectorRowCount)

	rows := make([]string, numRows)
	for i, v := range opts {
		rows[i%numRows] += fmt.Sprintf("%2d. %-*s  ", i+1, colWidth-5, v.val.Selector())
	}

	return rows
}

// Prompt prints the menu to w and returns the id of the chosen record.
func (s *SelectableStorer[T]) Prompt(r *bufio.Reader, w io.Writer, prompt string) (string, error) {
	opts := s.options()
	if len(opts) == 0 {
		return "", fmt.Errorf("nothing to select")
	}

	if _, err := fmt.Fprintf(w, "%s\n", prompt); err != nil {
		return "", err
	}
	for _, row := range render(opts) {
		if len(row) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\n", strings.TrimRight(row, " ")); err != nil {
			return "", err
		}
	}

	selection, err := internal.Prompt(r, w, "Make your selection: ", internal.WithValidator(
		func(str string) (bool, string) {
			i, err := strconv.Atoi(str)
			if err != nil || i < 1 || i > len(opts) {
				return false, "Invalid selection!\n"
			}
			return true, ""
		},
	))
	if err != nil {
		return "", err
	}

	i, err := strconv.Atoi(selection)
	if err != nil {
		return "", err
	}

	return opts[i-1].id, nil
}
