// ABOUTME: CLI commands for browsing, selecting and reading sources
// ABOUTME: Each command drives the same view-models the HTTP API uses

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"digests-reader/core/domain"
	coreerrors "digests-reader/core/errors"
	"digests-reader/core/reactive"
	"digests-reader/core/viewmodel"
	"github.com/urfave/cli/v2"
)

func sourcesCmd() *cli.Command {
	return &cli.Command{
		Name:  "sources",
		Usage: "List the available sources",
		Description: `List every source in the catalog. The saved source is marked with *.
		Use --filter to show only titles containing the given text.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "Case-insensitive title filter",
			},
		},
		Action: func(ctx *cli.Context) error {
			app, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			model, err := app.NewSelectionModel(ctx.Context)
			if err != nil {
				return err
			}
			model.FilterText().Emit(ctx.String("filter"))

			printSources(ctx.App.Writer, model.Visible())
			return nil
		},
	}
}

func selectCmd() *cli.Command {
	return &cli.Command{
		Name:      "select",
		Usage:     "Select and save a listed source",
		ArgsUsage: "<url>",
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() != 1 {
				return cli.Exit("select takes exactly one source URL", 2)
			}

			app, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			model, err := app.NewSelectionModel(ctx.Context)
			if err != nil {
				return err
			}

			url := ctx.Args().First()
			target := model.Find(domain.Source{URL: url})
			if target == nil {
				return &coreerrors.NotFoundError{Resource: "source", ID: url}
			}
			// Toggling the saved source would deselect it
			if !target.Selected() {
				model.ToggleSource(target)
			}

			return saveSelection(ctx, model)
		},
	}
}

func addCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a custom source and save it",
		ArgsUsage: "<title> <url>",
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() != 2 {
				return cli.Exit("add takes a title and a URL", 2)
			}

			app, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			model, err := app.NewSelectionModel(ctx.Context)
			if err != nil {
				return err
			}

			source := domain.Source{Title: ctx.Args().Get(0), URL: ctx.Args().Get(1)}
			if _, err := model.AddNewSource(source); err != nil {
				return err
			}

			return saveSelection(ctx, model)
		},
	}
}

func saveSelection(ctx *cli.Context, model *viewmodel.SourceSelectionModel) error {
	saved, err := model.SaveSelection(ctx.Context)
	if err != nil {
		return fmt.Errorf("failed to save the selected source: %w", err)
	}
	fmt.Fprintf(ctx.App.Writer, "Saved %s (%s)\n", saved.Title, saved.URL)
	return nil
}

func feedCmd() *cli.Command {
	return &cli.Command{
		Name:  "feed",
		Usage: "Load and print the saved source",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Value:   20,
				Usage:   "Maximum number of items to print (0 prints all)",
			},
		},
		Action: func(ctx *cli.Context) error {
			app, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			model := app.NewFeedModel(&presenter{ctx: ctx.Context, w: ctx.App.ErrWriter, articles: app.Articles})
			defer model.Close()

			items, err := loadOnce(ctx.Context, model, app.LoadDeadline())
			if err != nil {
				if errors.Is(err, coreerrors.ErrNoSourceSelected) {
					model.RequestSetup()
				}
				return cli.Exit(coreerrors.UserMessage(err), 1)
			}

			limit := ctx.Int("limit")
			if limit > 0 && len(items) > limit {
				items = items[:limit]
			}
			printFeed(ctx.App.Writer, model.Title(ctx.Context), items)
			return nil
		},
	}
}

func readCmd() *cli.Command {
	return &cli.Command{
		Name:      "read",
		Usage:     "Print the article behind an item of the saved source",
		ArgsUsage: "<item number>",
		Description: `Load the saved source and print the readable article of the given item.
		Items are numbered as in the output of 'feed'.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "Print plain text instead of Markdown",
			},
		},
		Action: func(ctx *cli.Context) error {
			n, err := strconv.Atoi(ctx.Args().First())
			if ctx.NArg() != 1 || err != nil || n < 1 {
				return cli.Exit("read takes one item number, starting at 1", 2)
			}

			app, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			p := &presenter{ctx: ctx.Context, w: ctx.App.Writer, articles: app.Articles, plain: ctx.Bool("plain")}
			model := app.NewFeedModel(p)
			defer model.Close()

			items, err := loadOnce(ctx.Context, model, app.LoadDeadline())
			if err != nil {
				return cli.Exit(coreerrors.UserMessage(err), 1)
			}
			if n > len(items) {
				return cli.Exit(fmt.Sprintf("the feed has %d items", len(items)), 1)
			}

			model.SelectItem(items[n-1])
			if p.err != nil {
				return cli.Exit(coreerrors.UserMessage(p.err), 1)
			}
			return nil
		},
	}
}

func resetCmd() *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Forget the saved source",
		Action: func(ctx *cli.Context) error {
			app, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Settings.Clear(ctx.Context); err != nil {
				return err
			}
			fmt.Fprintln(ctx.App.Writer, "Saved source cleared")
			return nil
		},
	}
}

// loadOnce triggers one load and waits for its outcome
func loadOnce(ctx context.Context, model *viewmodel.FeedModel, timeout time.Duration) ([]domain.FeedItem, error) {
	type outcome struct {
		items []domain.FeedItem
		err   error
	}
	done := make(chan outcome, 1)
	deliver := func(o outcome) {
		select {
		case done <- o:
		default:
		}
	}

	var bag reactive.Bag
	defer bag.Dispose()
	bag.Add(
		model.Feed().Subscribe(func(items []domain.FeedItem) { deliver(outcome{items: items}) }),
		model.OnError().Subscribe(func(err error) { deliver(outcome{err: err}) }),
	)

	model.Load().Emit(reactive.Signal{})

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case o := <-done:
		return o.items, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func printSources(w io.Writer, sources []*viewmodel.SelectableSource) {
	if len(sources) == 0 {
		fmt.Fprintln(w, "No sources match")
		return
	}
	for _, s := range sources {
		mark := " "
		if s.Selected() {
			mark = "*"
		}
		src := s.Source()
		fmt.Fprintf(w, "%s %s\n    %s\n", mark, src.Title, src.URL)
	}
}

func printFeed(w io.Writer, title string, items []domain.FeedItem) {
	if title != "" {
		fmt.Fprintf(w, "%s\n\n", title)
	}
	if len(items) == 0 {
		fmt.Fprintln(w, "No items")
		return
	}
	for i, item := range items {
		fmt.Fprintf(w, "%d. %s\n", i+1, item.Title)
		if !item.Published.IsZero() {
			fmt.Fprintf(w, "   %s\n", item.Published.Format(time.DateOnly))
		}
		fmt.Fprintf(w, "   %s\n", item.Link)
	}
}
