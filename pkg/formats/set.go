package formats

import (
	"sort"

	"github.com/arthur-debert/model-extract/pkg/errors"
)

// FormatSet is a non-empty set of output formats
type FormatSet struct {
	members map[OutputFormat]struct{}
}

// Select validates and deduplicates the requested formats. It performs no
// I/O and fails with ErrEmptyFormatSelection when nothing was requested.
func Select(requested []OutputFormat) (FormatSet, error) {
	if len(requested) == 0 {
		return FormatSet{}, errors.New(errors.ErrEmptyFormatSelection,
			"output format cannot be empty: select at least one format")
	}

	members := make(map[OutputFormat]struct{}, len(requested))
	for _, f := range requested {
		if !f.Valid() {
			return FormatSet{}, errors.Newf(errors.ErrUnknownFormat, "unknown output format %d", int(f))
		}
		members[f] = struct{}{}
	}

	return FormatSet{members: members}, nil
}

// Len returns the number of distinct formats
func (s FormatSet) Len() int {
	return len(s.members)
}

// Contains reports whether f was selected
func (s FormatSet) Contains(f OutputFormat) bool {
	_, ok := s.members[f]
	return ok
}

// Sorted returns the selected formats in canonical order
func (s FormatSet) Sorted() []OutputFormat {
	sorted := make([]OutputFormat, 0, len(s.members))
	for f := range s.members {
		sorted = append(sorted, f)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}

// Names returns the canonical names of the selected formats in canonical order
func (s FormatSet) Names() []string {
	sorted := s.Sorted()
	names := make([]string, len(sorted))
	for i, f := range sorted {
		names[i] = f.String()
	}
	return names
}
