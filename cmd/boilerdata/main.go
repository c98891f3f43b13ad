// Package main provides the boilerdata binary: query-driven collection
// of industrial boiler documentation into an organized, cataloged
// local dataset.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/cleanup"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/config"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/merge"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/organize"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/pipeline"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/search"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/catalog"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/logging"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/taxonomy"
)

const appName = "boilerdata"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Collect and catalog industrial boiler documentation",
		Long: `Boilerdata expands a boiler taxonomy into search queries, filters the
results, downloads verified documents and maintains a deduplicated
catalog with resumable progress checkpoints.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logCfg := logging.DefaultLogConfig()
			logCfg.Level = logLevel
			return logging.SetupLogger(logCfg)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		runCmd(&configPath),
		collectImagesCmd(&configPath),
		mergeCmd(),
		extractURLsCmd(),
		organizeCmd(),
		cleanupCmd(),
		monitorCmd(),
	)

	return cmd
}

func runCmd(configPath *string) *cobra.Command {
	var (
		outputDir string
		types     []string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a collection pass over the boiler taxonomy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}

			entries, err := selectEntries(types)
			if err != nil {
				return err
			}

			backend, err := search.NewClient(cfg.Search)
			if err != nil {
				return err
			}

			runner, err := pipeline.New(cfg, backend)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, err := runner.Run(ctx, entries)
			if report != nil {
				printSummary(report)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides config)")
	cmd.Flags().StringSliceVar(&types, "types", nil, "Boiler types to process (default: all)")

	return cmd
}

// selectEntries filters the built-in dataset by type name, or returns
// everything when no filter is given.
func selectEntries(types []string) ([]taxonomy.Entry, error) {
	all := taxonomy.BoilerDataset()
	if len(types) == 0 {
		return all, nil
	}

	byName := make(map[string]taxonomy.Entry, len(all))
	for _, entry := range all {
		byName[entry.TypeName] = entry
	}

	entries := make([]taxonomy.Entry, 0, len(types))
	for _, name := range types {
		entry, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown boiler type %q", name)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func printSummary(report *pipeline.Report) {
	sum := report.Summary
	fmt.Printf("\nRun %s\n", report.RunID)
	fmt.Printf("  Searches:    %d\n", sum.TotalSearches)
	fmt.Printf("  Found:       %d\n", sum.TotalFound)
	fmt.Printf("  Downloaded:  %d\n", sum.TotalDownloads)
	fmt.Printf("  Failed:      %d\n", sum.TotalFailures)
	fmt.Printf("  Total size:  %.1f MB\n", float64(sum.TotalSizeBytes)/(1024*1024))
	if sum.TotalFound > 0 {
		fmt.Printf("  Success:     %.1f%%\n", sum.SuccessRate())
	}
	if report.Exports != nil {
		fmt.Printf("  Catalog:     %s\n", report.Exports.CatalogCSV)
	}
}

func collectImagesCmd(configPath *string) *cobra.Command {
	var (
		keywordDir string
		outDir     string
		download   bool
	)

	cmd := &cobra.Command{
		Use:   "collect-images",
		Short: "Scrape image URLs for every boiler keyword file into per-boiler catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			scraper := search.NewImageScraper(cfg.Images)
			collector := pipeline.NewImageCollector(cfg, scraper, download)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, err := collector.Collect(ctx, keywordDir, outDir)
			if report != nil {
				fmt.Printf("Collected %d URLs from %d queries across %d boiler types\n",
					report.URLs, report.Queries, report.Boilers)
				if download {
					fmt.Printf("Downloaded %d images, %d unsuccessful\n", report.Downloaded, report.Failed)
				}
				for _, path := range report.Catalogs {
					fmt.Printf("  Catalog: %s\n", path)
				}
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&keywordDir, "keywords", "k", "boiler_keywords", "Directory of per-boiler keyword files")
	cmd.Flags().StringVarP(&outDir, "out", "o", "boiler_image_urls", "Output directory for URL catalogs")
	cmd.Flags().BoolVar(&download, "download", false, "Also download and verify each image")

	return cmd
}

func mergeCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "merge <catalog-glob>...",
		Short: "Merge catalog CSVs from multiple runs into one deduplicated catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, merged, err := merge.New().Merge(args, outDir)
			if err != nil {
				return err
			}
			fmt.Printf("Merged %d unique records\n", len(merged))
			fmt.Printf("  Catalog: %s\n", out.CatalogCSV)
			fmt.Printf("  Report:  %s\n", out.Report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "merged", "Output directory for merged files")

	return cmd
}

func extractURLsCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "extract-urls <catalog-glob>...",
		Short: "Extract every source URL from catalog CSVs into a plain text list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var all []catalog.Record
			for _, pattern := range args {
				matches, err := filepath.Glob(pattern)
				if err != nil {
					return err
				}
				for _, path := range matches {
					records, err := catalog.ReadCatalogCSV(path)
					if err != nil {
						return fmt.Errorf("reading %s: %w", path, err)
					}
					all = append(all, records...)
				}
			}
			if len(all) == 0 {
				return fmt.Errorf("no records matched %v", args)
			}

			unique := catalog.Dedup(all)
			if err := catalog.WriteURLList(outFile, unique); err != nil {
				return err
			}
			fmt.Printf("Wrote %d URLs to %s\n", len(unique), outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "all_urls.txt", "Output URL list path")

	return cmd
}

func organizeCmd() *cobra.Command {
	var (
		dir     string
		listing string
	)

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Move downloaded videos into category folders by exact URL mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(listing)
			if err != nil {
				return fmt.Errorf("opening URL listing: %w", err)
			}
			defer f.Close()

			mapping, err := organize.LoadURLCategories(f)
			if err != nil {
				return err
			}

			org := organize.New()
			report, err := org.Organize(dir, mapping)
			if err != nil {
				return err
			}

			reportPath, err := org.WriteReport(dir, report)
			if err != nil {
				return err
			}

			fmt.Printf("Categorized %d, uncategorized %d\n", report.Categorized, len(report.Uncategorized))
			fmt.Printf("  Report: %s\n", reportPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory holding downloaded videos")
	cmd.Flags().StringVarP(&listing, "urls", "u", "", "Category-sectioned URL listing file")
	_ = cmd.MarkFlagRequired("urls")

	return cmd
}

func cleanupCmd() *cobra.Command {
	var (
		dir          string
		keepSidecars bool
	)

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove completed .part files and downloader sidecars once",
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []cleanup.Option
			if keepSidecars {
				opts = append(opts, cleanup.KeepSidecars())
			}
			stats, err := cleanup.New(dir, opts...).Sweep()
			if err != nil {
				return err
			}
			printCleanupStats(stats)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to clean")
	cmd.Flags().BoolVar(&keepSidecars, "keep-sidecars", false, "Keep .info.json and thumbnail files")

	return cmd
}

func monitorCmd() *cobra.Command {
	var (
		dir      string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Continuously clean the download directory until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Monitoring %s every %s, Ctrl+C to stop\n", dir, interval)
			stats, err := cleanup.New(dir).Monitor(ctx, interval)
			if err != nil {
				return err
			}
			printCleanupStats(stats)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to monitor")
	cmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "Sweep interval")

	return cmd
}

func printCleanupStats(stats cleanup.Stats) {
	fmt.Printf("Removed %d partial files, %d sidecars; %d downloads still in flight\n",
		stats.PartsRemoved, stats.SidecarsRemoved, stats.PartsInFlight)
}
