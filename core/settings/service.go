// ABOUTME: Settings service persists the chosen feed source in a key-value store
// ABOUTME: Any interfaces.Cache backend works; entries are written without expiry

package settings

import (
	"context"
	"encoding/json"
	"errors"

	"digests-reader/core/domain"
	coreerrors "digests-reader/core/errors"
	"digests-reader/core/interfaces"
)

// SelectedSourceKey is the store key holding the chosen source
const SelectedSourceKey = "settings:selected_source"

// Service implements interfaces.SettingsGateway on top of a key-value store
type Service struct {
	store  interfaces.Cache
	logger interfaces.Logger
}

// NewService creates a settings service backed by store
func NewService(store interfaces.Cache, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Service{
		store:  store,
		logger: logger,
	}
}

// SelectedSource returns the persisted source or nil when none is stored
func (s *Service) SelectedSource(ctx context.Context) (*domain.Source, error) {
	data, err := s.store.Get(ctx, SelectedSourceKey)
	if errors.Is(err, interfaces.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, coreerrors.WrapError(err, "reading selected source")
	}

	var source domain.Source
	if err := json.Unmarshal(data, &source); err != nil {
		// A corrupt entry is reported as "nothing selected" so the user can
		// pick again instead of being stuck.
		s.logger.Warn("Ignoring unreadable selected source", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, nil
	}

	return &source, nil
}

// SetSelectedSource persists source; nil clears it
func (s *Service) SetSelectedSource(ctx context.Context, source *domain.Source) error {
	if source == nil {
		return s.Clear(ctx)
	}

	data, err := json.Marshal(source)
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, SelectedSourceKey, data, 0); err != nil {
		return coreerrors.WrapError(err, "saving selected source")
	}
	return nil
}

// Clear removes the persisted selection
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, SelectedSourceKey); err != nil {
		return coreerrors.WrapError(err, "clearing selected source")
	}
	s.logger.Debug("Cleared selected source", nil)
	return nil
}
