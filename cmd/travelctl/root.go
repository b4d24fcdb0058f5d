package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/FACorreiaa/go-travel-recommendation/internal/api/destination"
	"github.com/FACorreiaa/go-travel-recommendation/internal/catalog"
)

type rootOptions struct {
	dataset string
	locale  string
	timeout time.Duration
	json    bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "travelctl",
		Short:        "Query a travel recommendation dataset",
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.dataset, "dataset", "d", envOr("TRAVEL_DATASET_SOURCE", "travel_recommendation_api.json"), "dataset file path or http(s) URL")
	flags.StringVar(&opts.locale, "locale", "en", "collation locale for sorting names")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "dataset fetch timeout")
	flags.BoolVar(&opts.json, "json", false, "print raw JSON")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging to stderr")

	cmd.AddCommand(newQueryCmd(opts), newSearchCmd(opts), newTagsCmd(opts))
	return cmd
}

func newQueryCmd(opts *rootOptions) *cobra.Command {
	var keyword string
	var tags []string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Show the destination grid for a keyword and tag filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadCatalog(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			res := c.Query(catalog.QueryParams{Keyword: keyword, ActiveTags: tags})
			out := cmd.OutOrStdout()
			if opts.json {
				return writeJSON(out, res)
			}
			if res.Empty() && res.Keyword != "" {
				fmt.Fprintf(out, "No results for %q\n", res.Keyword)
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCOUNTRY\tTAGS")
			for _, d := range res.Shown {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Name, orDash(d.Country), strings.Join(d.Tags, ","))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d shown, %d matched, %d placeholders\n", len(res.Shown), res.Matched, res.Placeholders)
			return nil
		},
	}

	cmd.Flags().StringVarP(&keyword, "keyword", "k", "", "case-insensitive substring of a tag, country or name")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "active tag filter, repeatable")
	return cmd
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search KEYWORD",
		Short: "Shortcut search: category keywords or substring, at most 2 results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			res := c.Search(args[0], time.Now())
			out := cmd.OutOrStdout()
			if opts.json {
				return writeJSON(out, res)
			}
			if len(res.Results) == 0 {
				fmt.Fprintf(out, "No results for %q\n", res.Keyword)
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCOUNTRY\tLOCAL TIME")
			for _, hit := range res.Results {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", hit.Name, orDash(hit.Country), orDash(hit.CountryTime))
			}
			return tw.Flush()
		},
	}
}

func newTagsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags and how many destinations carry each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadCatalog(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			tags := c.Tags()
			out := cmd.OutOrStdout()
			if opts.json {
				return writeJSON(out, tags)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, t := range tags {
				fmt.Fprintf(tw, "%s\t%d\n", t.Tag, t.Count)
			}
			return tw.Flush()
		},
	}
}

func loadCatalog(ctx context.Context, opts *rootOptions, stderr io.Writer) (*catalog.Catalog, error) {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(stderr, &tint.Options{Level: level, TimeFormat: time.Kitchen}))

	locale, err := language.Parse(opts.locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", opts.locale, err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	repo := destination.NewDatasetRepository(opts.dataset, opts.timeout, logger)
	ds, err := repo.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.New(ds, repo.Source(), catalog.WithLocale(locale))
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
