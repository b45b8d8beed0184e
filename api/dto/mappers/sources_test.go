package mappers

import (
	"context"
	"testing"

	"digests-reader/core/domain"
	"digests-reader/core/viewmodel"
)

type staticLoader []domain.Source

func (s staticLoader) Load() ([]domain.Source, error) { return s, nil }

type noSettings struct{}

func (noSettings) SelectedSource(context.Context) (*domain.Source, error)  { return nil, nil }
func (noSettings) SetSelectedSource(context.Context, *domain.Source) error { return nil }

func TestToSourcesResponse(t *testing.T) {
	model, err := viewmodel.NewSourceSelectionModel(context.Background(), staticLoader{
		{Title: "Alpha", URL: "https://alpha.example.com/rss"},
		{Title: "Beta", URL: "https://beta.example.com/rss"},
	}, noSettings{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	model.ToggleSource(model.All()[1])

	out := ToSourcesResponse(model.All(), model.Valid())

	if !out.Valid {
		t.Error("Valid should mirror the model")
	}
	if len(out.Sources) != 2 {
		t.Fatalf("len = %d, want 2", len(out.Sources))
	}
	if out.Sources[0].Selected || !out.Sources[1].Selected {
		t.Errorf("selection not mapped: %+v", out.Sources)
	}
	if out.Sources[1].Title != "Beta" || out.Sources[1].URL != "https://beta.example.com/rss" {
		t.Errorf("source fields not mapped: %+v", out.Sources[1])
	}
}
