package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/exporter"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/infrastructure"
	appmiddleware "github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/middleware"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/services"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/validation"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

// options holds the flags shared by every subcommand
type options struct {
	dataset  string
	sheet    string
	brands   []string
	fuels    []string
	bodies   []string
	minPrice float64
	maxPrice float64
	logLevel string
}

// report is the JSON document printed by the report command
type report struct {
	Filter            domain.Filter             `json:"filter"`
	TotalRecords      int                       `json:"totalRecords"`
	FilteredCount     int                       `json:"filteredCount"`
	KPIs              domain.KPISummary         `json:"kpis"`
	BrandPerformance  []domain.BrandPerformance `json:"brandPerformance"`
	PriceDistribution []domain.PriceBucket      `json:"priceDistribution"`
	MarketShare       []domain.MarketShare      `json:"marketShare"`
	Features          []domain.FeatureScore     `json:"features"`
	Options           domain.FilterOptions      `json:"options"`
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "carstats",
		Short: "Filter and summarize a car listings dataset",
		Long: `carstats loads a car listings file (.csv or .xlsx), applies an optional
filter and prints the dashboard figures as JSON or exports them as CSV.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.dataset, "dataset", "", "listings file, or a directory holding them")
	flags.StringVar(&opts.sheet, "sheet", "", "worksheet name for .xlsx files (default: first sheet)")
	flags.StringSliceVar(&opts.brands, "brands", nil, "brands to include")
	flags.StringSliceVar(&opts.fuels, "fuel", nil, "fuel types to include")
	flags.StringSliceVar(&opts.bodies, "body", nil, "body types to include")
	flags.Float64Var(&opts.minPrice, "min-price", 0, "lower price bound")
	flags.Float64Var(&opts.maxPrice, "max-price", domain.DefaultMaxPrice, "upper price bound")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(reportCmd(opts))
	cmd.AddCommand(exportCmd(opts))
	cmd.AddCommand(versionCmd())

	return cmd
}

func reportCmd(opts *options) *cobra.Command {
	var buckets int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print KPIs, charts and filter options as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, snap, err := load(cmd, opts, buckets)
			if err != nil {
				return err
			}
			defer svc.Close()

			r, err := buildReport(svc, snap)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(r)
		},
	}
	cmd.Flags().IntVar(&buckets, "buckets", 0, "price distribution bucket count")
	return cmd
}

func exportCmd(opts *options) *cobra.Command {
	var (
		out string
		bom bool
	)

	names := make([]string, 0, len(exporter.Datasets))
	for _, d := range exporter.Datasets {
		names = append(names, string(d))
	}

	cmd := &cobra.Command{
		Use:       "export <dataset>",
		Short:     "Export a dataset of the filtered view as CSV",
		Long:      "Export one of: " + strings.Join(names, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, ok := exporter.ParseDataset(args[0])
			if !ok {
				return fmt.Errorf("unknown export dataset %q", args[0])
			}

			svc, _, err := load(cmd, opts, 0)
			if err != nil {
				return err
			}
			defer svc.Close()

			table, err := svc.ExportTable(dataset)
			if err != nil {
				return err
			}

			logger := newLogger(cmd, opts)
			writer := exporter.NewCSVWriter(logger)
			writeOpts := exporter.WriteOptions{BOMPrefix: bom}
			if out == "" {
				return writer.Write(cmd.OutOrStdout(), table, writeOpts)
			}
			if err := validation.NewFileValidator(logger).ValidateExportPath(out); err != nil {
				return err
			}
			return writer.WriteFile(out, table, writeOpts)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "destination file (default: stdout)")
	cmd.Flags().BoolVar(&bom, "bom", false, "prefix the CSV with a UTF-8 byte order mark")
	return cmd
}

func versionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(contracts.GetVersionInfo())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), contracts.GetFullVersionString())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the version report as JSON")
	return cmd
}

func newLogger(cmd *cobra.Command, opts *options) *slog.Logger {
	return infrastructure.NewJSONLogger(cmd.ErrOrStderr(), opts.logLevel).
		With(slog.String("component", "carstats"))
}

// filterPatch builds the patch from the flags the user actually set
func filterPatch(cmd *cobra.Command, opts *options) domain.FilterPatch {
	var patch domain.FilterPatch
	patch.Brands = trimList(opts.brands)
	patch.FuelTypes = trimList(opts.fuels)
	patch.BodyTypes = trimList(opts.bodies)

	if cmd.Flags().Changed("min-price") || cmd.Flags().Changed("max-price") {
		patch.PriceRange = &domain.PriceRange{opts.minPrice, opts.maxPrice}
	}
	return patch
}

// trimList returns nil for an empty list so the filter keeps its default
func trimList(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// load reads the dataset and applies the flag filter synchronously
func load(cmd *cobra.Command, opts *options, buckets int) (*services.DashboardService, domain.DashboardSnapshot, error) {
	if opts.dataset == "" {
		return nil, domain.DashboardSnapshot{}, errors.New("--dataset is required")
	}

	ctx := cmd.Context()
	logger := newLogger(cmd, opts)

	patch := filterPatch(cmd, opts)
	if !patch.IsEmpty() {
		validator := appmiddleware.NewValidationMiddleware(logger, nil)
		if err := validator.ValidateStruct(patch); err != nil {
			return nil, domain.DashboardSnapshot{}, fmt.Errorf("invalid filter: %w", err)
		}
	}

	cfg := services.DefaultDashboardConfig()
	cfg.DebounceWindow = 0
	cfg.CacheSize = 0
	if buckets > 0 {
		cfg.BucketCount = buckets
	}

	svc := services.NewDashboardService(cfg, logger)
	if err := svc.LoadFile(ctx, opts.dataset, opts.sheet); err != nil {
		svc.Close()
		return nil, domain.DashboardSnapshot{}, err
	}

	snap, err := svc.Snapshot()
	if err == nil && !patch.IsEmpty() {
		snap, err = svc.SetFilter(ctx, patch)
	}
	if err != nil {
		svc.Close()
		return nil, domain.DashboardSnapshot{}, err
	}

	logger.Info("Filter applied",
		slog.Int("total_records", snap.TotalRecords),
		slog.Int("filtered_count", snap.FilteredCount))
	return svc, snap, nil
}

func buildReport(svc *services.DashboardService, snap domain.DashboardSnapshot) (report, error) {
	r := report{
		Filter:        snap.Filter,
		TotalRecords:  snap.TotalRecords,
		FilteredCount: snap.FilteredCount,
		KPIs:          snap.KPIs,
	}

	var err error
	if r.BrandPerformance, err = svc.BrandPerformance(); err != nil {
		return report{}, err
	}
	if r.PriceDistribution, err = svc.PriceDistribution(0); err != nil {
		return report{}, err
	}
	if r.MarketShare, err = svc.MarketShare(); err != nil {
		return report{}, err
	}
	if r.Features, err = svc.Features(); err != nil {
		return report{}, err
	}
	if r.Options, err = svc.Options(""); err != nil {
		return report{}, err
	}
	return r, nil
}
