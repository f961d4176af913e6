// cmd/pixisphere/list.go
package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"pixisphere/internal/common/config"
	"pixisphere/internal/common/logger"
	"pixisphere/internal/dataclient"
	"pixisphere/internal/models"
	"pixisphere/internal/pipeline"
	"pixisphere/internal/search"
	"pixisphere/internal/store"
	"pixisphere/internal/views"

	"github.com/spf13/cobra"
)

type listOptions struct {
	search   string
	query    string
	price    float64
	rating   float64
	styles   []string
	city     string
	sort     string
	featured bool
}

func newListCmd() *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch the directory once and print the filtered listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			zapLog, log, err := newLogger(cfg.Logging)
			if err != nil {
				return err
			}
			defer zapLog.Sync()

			if !cmd.Flags().Changed("price") {
				opts.price = cfg.Listing.PriceMax
			}
			return runList(cmd.Context(), cfg, opts, cmd.OutOrStdout(), log)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.search, "search", "", "fuzzy search applied when loading, as the search bar does")
	f.StringVarP(&opts.query, "query", "q", "", "substring filter on name, location and tags")
	f.Float64Var(&opts.price, "price", models.DefaultPriceCeiling, "maximum price")
	f.Float64Var(&opts.rating, "rating", 0, "minimum rating")
	f.StringSliceVar(&opts.styles, "style", nil, "required style tag, repeatable")
	f.StringVar(&opts.city, "city", "", "exact city")
	f.StringVar(&opts.sort, "sort", "", "default, priceAsc, ratingDesc or recentFirst")
	f.BoolVar(&opts.featured, "featured", false, "print the featured photographers instead")
	return cmd
}

func runList(ctx context.Context, cfg *config.Config, opts *listOptions, out io.Writer, log logger.Logger) error {
	matcher, err := search.New(cfg.Search.Engine, cfg.Search.Threshold)
	if err != nil {
		return err
	}

	api := dataclient.NewClient(cfg.API, log)
	st := store.New(api, matcher, log, store.WithFeaturedCount(cfg.Search.FeaturedCount))
	st.Load(ctx, opts.search)

	state := st.State()
	if state.Err != nil {
		return fmt.Errorf("load photographers: %w", state.Err)
	}

	if opts.featured {
		return writeTable(out, state.Featured)
	}

	filters := models.FilterConfig{
		TextQuery:      opts.query,
		PriceCeiling:   opts.price,
		MinRating:      opts.rating,
		RequiredStyles: opts.styles,
		City:           opts.city,
		SortMode:       models.ParseSortMode(opts.sort),
	}
	result := pipeline.Apply(state.Collection, filters)

	if msg := pipeline.ResultMessage(filters, len(result)); msg != "" {
		fmt.Fprintln(out, msg)
	}
	return writeTable(out, result)
}

func writeTable(out io.Writer, items []models.Photographer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLOCATION\tPRICE\tRATING\tTAGS")
	for _, p := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID,
			p.Name,
			p.Location,
			views.FormatNumber(p.Price),
			views.FormatNumber(p.Rating),
			strings.Join(p.Tags, ","),
		)
	}
	return w.Flush()
}
