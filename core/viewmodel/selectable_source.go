// ABOUTME: SelectableSource pairs a feed source with an observable selection flag
// ABOUTME: The flag only changes through SourceSelectionModel and emits on real changes

package viewmodel

import (
	"digests-reader/core/domain"
	"digests-reader/core/reactive"
)

// SelectableSource wraps a Source with a live selection flag.
// Only SourceSelectionModel can change the flag.
type SelectableSource struct {
	source     domain.Source
	isSelected *reactive.BehaviorSubject[bool]
}

func newSelectableSource(source domain.Source) *SelectableSource {
	return &SelectableSource{
		source:     source,
		isSelected: reactive.NewBehaviorSubject(false),
	}
}

// Source returns the wrapped source.
func (s *SelectableSource) Source() domain.Source {
	return s.source
}

// IsSelected streams the selection flag, starting with its current value.
func (s *SelectableSource) IsSelected() reactive.Observable[bool] {
	return s.isSelected
}

// Selected returns the current selection flag.
func (s *SelectableSource) Selected() bool {
	return s.isSelected.Value()
}

// setSelected emits only when the flag actually changes.
func (s *SelectableSource) setSelected(selected bool) {
	if s.isSelected.Value() == selected {
		return
	}
	s.isSelected.Emit(selected)
}
