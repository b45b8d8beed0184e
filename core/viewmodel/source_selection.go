// ABOUTME: Source selection view-model keeps exactly one feed source selected
// ABOUTME: Combines the catalog with a live text filter and exposes a validity signal

package viewmodel

import (
	"context"
	"strings"
	"sync"

	"digests-reader/core/domain"
	coreerrors "digests-reader/core/errors"
	"digests-reader/core/interfaces"
	"digests-reader/core/reactive"
)

// SourceLoader provides the default list of sources.
type SourceLoader interface {
	Load() ([]domain.Source, error)
}

// SourceSelectionModel holds every known source and the user's choice among them.
//
// The full set is mutated only by ToggleSource and AddNewSource. Both run
// under a mutex and publish their result before returning, so observers see
// a strict sequence of states and never two selected entries at once.
type SourceSelectionModel struct {
	mu       sync.Mutex
	settings interfaces.SettingsGateway
	logger   interfaces.Logger

	all     *reactive.BehaviorSubject[[]*SelectableSource]
	filter  *reactive.BehaviorSubject[string]
	valid   *reactive.BehaviorSubject[bool]
	sources reactive.Observable[[]*SelectableSource]
}

// NewSourceSelectionModel loads the catalog and pre-selects the persisted
// source. A persisted source missing from the catalog is inserted at the
// head of the list. Catalog failures are returned unchanged; a failure to
// read the settings is logged and treated as "nothing persisted".
func NewSourceSelectionModel(ctx context.Context, loader SourceLoader, settings interfaces.SettingsGateway, logger interfaces.Logger) (*SourceSelectionModel, error) {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}

	catalog, err := loader.Load()
	if err != nil {
		return nil, err
	}

	all := make([]*SelectableSource, 0, len(catalog)+1)
	for _, s := range catalog {
		all = append(all, newSelectableSource(s))
	}

	persisted, err := settings.SelectedSource(ctx)
	if err != nil {
		logger.Warn("Failed to read selected source, starting without selection", map[string]interface{}{
			"error": err.Error(),
		})
		persisted = nil
	}

	if persisted != nil {
		if existing := find(all, *persisted); existing != nil {
			existing.setSelected(true)
			logger.Debug("Pre-selected persisted source", map[string]interface{}{
				"url": persisted.URL,
			})
		} else {
			custom := newSelectableSource(*persisted)
			custom.setSelected(true)
			all = append([]*SelectableSource{custom}, all...)
			logger.Debug("Restored custom source", map[string]interface{}{
				"url": persisted.URL,
			})
		}
	}

	m := &SourceSelectionModel{
		settings: settings,
		logger:   logger,
		all:      reactive.NewBehaviorSubject(all),
		filter:   reactive.NewBehaviorSubject(""),
		valid:    reactive.NewBehaviorSubject(countSelected(all) == 1),
	}
	m.sources = reactive.CombineLatest[[]*SelectableSource, string, []*SelectableSource](m.all, m.filter, FilterSources)

	return m, nil
}

// Sources streams the visible (filtered) sources. It re-emits whenever the
// full set or the filter text changes.
func (m *SourceSelectionModel) Sources() reactive.Observable[[]*SelectableSource] {
	return m.sources
}

// FilterText is the filter the UI writes to. Empty means no filter.
func (m *SourceSelectionModel) FilterText() *reactive.BehaviorSubject[string] {
	return m.filter
}

// IsValid streams whether exactly one source in the full, unfiltered set is
// selected.
func (m *SourceSelectionModel) IsValid() reactive.Observable[bool] {
	return m.valid
}

// Valid returns the current value of IsValid.
func (m *SourceSelectionModel) Valid() bool {
	return m.valid.Value()
}

// All returns a snapshot of the full, unfiltered set.
func (m *SourceSelectionModel) All() []*SelectableSource {
	current := m.all.Value()
	snapshot := make([]*SelectableSource, len(current))
	copy(snapshot, current)
	return snapshot
}

// Visible returns the sources currently matching the filter.
func (m *SourceSelectionModel) Visible() []*SelectableSource {
	return FilterSources(m.all.Value(), m.filter.Value())
}

// Find returns the entry for source, or nil.
func (m *SourceSelectionModel) Find(source domain.Source) *SelectableSource {
	return find(m.all.Value(), source)
}

// ToggleSource makes target the only selected source, or deselects
// everything when target was already selected. Entries that are not part
// of the full set are ignored.
func (m *SourceSelectionModel) ToggleSource(target *SelectableSource) {
	if target == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !contains(m.all.Value(), target) {
		m.logger.Warn("Ignoring toggle of unknown source", map[string]interface{}{
			"url": target.Source().URL,
		})
		return
	}
	m.toggleLocked(target)
}

// AddNewSource inserts a user-entered source at the head of the list and
// makes it the only selection. Title and URL are trimmed before they are
// stored.
func (m *SourceSelectionModel) AddNewSource(input domain.Source) (*SelectableSource, error) {
	source, err := domain.NewSource(input.Title, input.URL)
	if err != nil {
		return nil, &coreerrors.ValidationError{Field: "source", Message: err.Error()}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry := newSelectableSource(source)
	current := m.all.Value()
	next := make([]*SelectableSource, 0, len(current)+1)
	next = append(next, entry)
	next = append(next, current...)
	m.all.Emit(next)

	m.toggleLocked(entry)

	m.logger.Info("Added custom source", map[string]interface{}{
		"title": source.Title,
		"url":   source.URL,
	})
	return entry, nil
}

// SaveSelectedSource persists the selected source. It returns false, after
// logging, when nothing is selected or the write fails.
func (m *SourceSelectionModel) SaveSelectedSource(ctx context.Context) bool {
	_, err := m.SaveSelection(ctx)
	return err == nil
}

// SaveSelection persists the selected source and returns it. The selection
// is read under the model lock, so the returned source is the one written
// even while other goroutines toggle. Failures are logged and returned:
// ErrNothingSelected when there is no selection, otherwise the settings
// error.
func (m *SourceSelectionModel) SaveSelection(ctx context.Context) (domain.Source, error) {
	m.mu.Lock()
	selected, ok := m.SelectedSource()
	m.mu.Unlock()

	if !ok {
		m.logger.Error(coreerrors.ErrNothingSelected.Error(), nil)
		return domain.Source{}, coreerrors.ErrNothingSelected
	}

	if err := m.settings.SetSelectedSource(ctx, &selected); err != nil {
		m.logger.Error("Failed to save selected source", map[string]interface{}{
			"url":   selected.URL,
			"error": err.Error(),
		})
		return domain.Source{}, err
	}

	m.logger.Info("Saved selected source", map[string]interface{}{
		"url": selected.URL,
	})
	return selected, nil
}

// SelectedSource returns the selected source, if any.
func (m *SourceSelectionModel) SelectedSource() (domain.Source, bool) {
	for _, s := range m.all.Value() {
		if s.Selected() {
			return s.Source(), true
		}
	}
	return domain.Source{}, false
}

// toggleLocked clears every flag before setting the target, so no instant
// has two selected entries. isValid is published once per toggle.
func (m *SourceSelectionModel) toggleLocked(target *SelectableSource) {
	wasSelected := target.Selected()
	all := m.all.Value()

	for _, s := range all {
		s.setSelected(false)
	}
	target.setSelected(!wasSelected)

	m.valid.Emit(countSelected(all) == 1)
}

// FilterSources returns the entries whose title contains filter,
// case-insensitively. An empty filter returns all entries. The returned
// slice may alias all and must not be modified.
func FilterSources(all []*SelectableSource, filter string) []*SelectableSource {
	if filter == "" {
		return all
	}

	needle := strings.ToLower(filter)
	visible := make([]*SelectableSource, 0, len(all))
	for _, s := range all {
		if strings.Contains(strings.ToLower(s.Source().Title), needle) {
			visible = append(visible, s)
		}
	}
	return visible
}

func countSelected(all []*SelectableSource) int {
	n := 0
	for _, s := range all {
		if s.Selected() {
			n++
		}
	}
	return n
}

func find(all []*SelectableSource, source domain.Source) *SelectableSource {
	for _, s := range all {
		if s.Source().Equal(source) {
			return s
		}
	}
	return nil
}

func contains(all []*SelectableSource, target *SelectableSource) bool {
	for _, s := range all {
		if s == target {
			return true
		}
	}
	return false
}
