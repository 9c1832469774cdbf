package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/fieldgrad/internal/batch"
	"github.com/san-kum/fieldgrad/internal/config"
	"github.com/san-kum/fieldgrad/internal/grid"
	"github.com/san-kum/fieldgrad/internal/metrics"
	"github.com/san-kum/fieldgrad/internal/pipeline"
	"github.com/san-kum/fieldgrad/internal/storage"
	"github.com/san-kum/fieldgrad/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	radii      []float64
	selector   float64
	rounding   string
	noSave     bool
	gridName   string
	rebin      int
	height     int
	width      int
	yMin       float64
	yMax       float64

	logger = slog.New(slog.DiscardHandler)
)

// main registers the commands and exits with status 1 when one fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "fieldgrad",
		Short:        "field map grids and dBz/dz cross-sections",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fieldgrad", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [table]",
		Short: "build field and derivative grids from a table",
		Args:  cobra.ExactArgs(1),
		RunE:  runTable,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().Float64SliceVar(&radii, "r", nil, "cross-section radii in m")
	runCmd.Flags().Float64Var(&selector, "selector", 6.0, "selector column value to keep")
	runCmd.Flags().StringVar(&rounding, "rounding", string(grid.HalfAwayFromZero), "bin rounding (half-away, half-even)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	sectionsCmd := newSectionsCmd()

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "run every table listed in a batch file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export cross-sections to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().Float64SliceVar(&radii, "r", nil, "radii in m (default: radii of the run)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration helpers",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err == nil {
				return fmt.Errorf("%s already exists", args[0])
			}
			cfg := config.DefaultConfig()
			if preset != "" {
				if cfg = config.GetPreset(preset); cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
				}
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	})
	configCmd.PersistentFlags().StringVar(&preset, "preset", "", "start from a preset")

	rootCmd.AddCommand(runCmd, batchCmd, sectionsCmd, listCmd, exportCmd, exportJSONCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file and explicit flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("r") {
		cfg.Sections = append([]float64(nil), radii...)
	}
	if cmd.Flags().Changed("selector") {
		cfg.Input.Selector = selector
	}
	if cmd.Flags().Changed("rounding") {
		cfg.Rounding = rounding
	}

	return cfg, cfg.Validate()
}

func runTable(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("processing table", "path", path)
	start := time.Now()

	res, err := p.Run(context.Background(), path)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	zc, rc := res.Field.Dims()

	fmt.Println(viz.Title.Render("field map"))
	fmt.Println(viz.Metric("source", res.Source))
	fmt.Println(viz.Metric("completed in", elapsed.String()))
	fmt.Println(viz.Metric("rows kept", fmt.Sprint(res.Rows)))
	fmt.Println(viz.Metric("grid", fmt.Sprintf("%d x %d", zc, rc)))
	fmt.Println(viz.Metric("cells filled", fmt.Sprint(res.Stats.Cells)))
	fmt.Println(viz.Metric("empty cells", fmt.Sprint(res.Stats.Empty)))
	if res.Stats.Collisions > 0 {
		fmt.Println(viz.Warning.Render(fmt.Sprintf("%d samples overwrote an earlier sample in the same bin", res.Stats.Collisions)))
	}

	if len(res.DerivativeSections) > 0 {
		fmt.Println()
		fmt.Println(viz.Header.Render("dBz/dz cross-sections"))
		z := res.Derivative.Layout().Z.Centers()
		for _, s := range res.DerivativeSections {
			fmt.Printf("  %-10s %s\n", viz.Legend(s), viz.Sparkline(s.Values, 60))
			if err := printSummary(z, s); err != nil {
				return err
			}
		}
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(res)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(viz.Metric("run id", runID))
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	b, err := batch.Load(args[0])
	if err != nil {
		return err
	}

	var saver batch.Saver
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		saver = st
	}

	if b.Name != "" {
		fmt.Println(viz.Title.Render(b.Name))
	}
	if b.Description != "" {
		fmt.Println(viz.Subtle.Render(b.Description))
	}

	outcomes, err := batch.Run(context.Background(), b, saver, logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tTABLE\tROWS\tCOLLISIONS\tRUN")
	for _, o := range outcomes {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n", o.Step, o.Table, o.Result.Rows, o.Result.Stats.Collisions, o.RunID)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func newSectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections [run_id]",
		Short: "plot cross-sections of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSections,
	}
	cmd.Flags().StringVar(&gridName, "grid", storage.DerivativeGrid, "grid to cut (field, derivative)")
	cmd.Flags().Float64SliceVar(&radii, "r", nil, "radii in m (default: radii of the run)")
	cmd.Flags().IntVar(&rebin, "rebin", config.DefaultRebin, "average this many z bins per point (default: rebin of the run)")
	cmd.Flags().IntVar(&height, "height", 15, "plot height")
	cmd.Flags().IntVar(&width, "width", 80, "plot width")
	cmd.Flags().Float64Var(&yMin, "min", 0, "lower y bound (with --max)")
	cmd.Flags().Float64Var(&yMax, "max", 0, "upper y bound (with --min)")
	return cmd
}

// plotOptions uses the rebin stored with the run unless --rebin is given.
func plotOptions(cmd *cobra.Command, meta *storage.RunMetadata) viz.PlotOptions {
	factor := meta.PlotRebin()
	if cmd.Flags().Changed("rebin") {
		factor = rebin
	}

	caption := "Bz (T) vs z"
	if gridName == storage.DerivativeGrid {
		caption = "dBz/dz (T/m) vs z"
	}

	return viz.PlotOptions{
		Height:  height,
		Width:   width,
		Rebin:   factor,
		Caption: caption,
		Bounded: cmd.Flags().Changed("min") && cmd.Flags().Changed("max"),
		Lower:   yMin,
		Upper:   yMax,
	}
}

func plotSections(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rs := meta.Sections
	if cmd.Flags().Changed("r") {
		rs = radii
	}

	sections, g, err := st.Sections(runID, gridName, rs)
	if err != nil {
		return err
	}

	out, err := viz.PlotSections(sections, plotOptions(cmd, meta))
	if err != nil {
		return err
	}

	fmt.Println(viz.Metric("run", meta.ID))
	fmt.Println(viz.Metric("source", meta.Source))
	fmt.Println()
	fmt.Println(out)

	z := g.Layout().Z.Centers()
	for _, s := range sections {
		fmt.Printf("  %s\n", viz.Legend(s))
		if err := printSummary(z, s); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(z []float64, s grid.Section) error {
	sum, err := metrics.Summarize(z, s.Values)
	if err != nil {
		return err
	}
	fmt.Printf("  %-10s %s\n", "", viz.Subtle.Render(sum.String()))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tROWS\tGRID\tCOLLISIONS\tSECTIONS")

	for _, run := range runs {
		l := run.Grids[storage.FieldGrid]
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dx%d\t%d\t%s\n",
			run.ID,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Rows,
			l.Z.Count, l.R.Count,
			run.Stats.Collisions,
			formatRadii(run.Sections),
		)
	}

	return w.Flush()
}

func formatRadii(rs []float64) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = fmt.Sprintf("%g", r)
	}
	return strings.Join(parts, ",")
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	var rs []float64
	if cmd.Flags().Changed("r") {
		rs = radii
	}
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0], rs)
}
