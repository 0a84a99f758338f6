package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/schedkit/schedkit/internal/ingest"
	"github.com/schedkit/schedkit/internal/mip"
	"github.com/schedkit/schedkit/internal/render"
	"github.com/schedkit/schedkit/internal/schedule"
	"github.com/schedkit/schedkit/pkg/config"
	"github.com/schedkit/schedkit/pkg/logger"
)

var (
	configPath   string
	outputDir    string
	formats      string
	schedulePath string
)

func main() {
	log.SetFlags(log.Ltime)

	cmdRoot := &cobra.Command{
		Use:   "schedkit",
		Short: "Course timetable optimizer",
		Long: "A tool to place courses into rooms and time slots by solving a\n" +
			"sequence of integer programs, one objective at a time",
	}
	cmdRoot.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default schedkit.yaml in the working directory)")

	cmdSolve := &cobra.Command{
		Use:   "solve",
		Short: "load the catalog, optimize and write the schedule",
		Run:   CommandSolve,
	}
	cmdSolve.Flags().StringVar(&outputDir, "output", "", "output directory (overrides config)")
	cmdSolve.Flags().StringVar(&formats, "formats", "", "comma separated output formats: csv, text, html, pdf (overrides config)")
	cmdRoot.AddCommand(cmdSolve)

	cmdCheck := &cobra.Command{
		Use:   "check",
		Short: "validate the catalog and screen it for feasibility without solving",
		Run:   CommandCheck,
	}
	cmdRoot.AddCommand(cmdCheck)

	cmdRender := &cobra.Command{
		Use:   "render",
		Short: "re-render a previously saved schedule",
		Run:   CommandRender,
	}
	cmdRender.Flags().StringVar(&schedulePath, "schedule", "", "schedule csv to render (default <output dir>/schedule.csv)")
	cmdRender.Flags().StringVar(&formats, "formats", "text", "comma separated output formats: text, html, pdf")
	cmdRoot.AddCommand(cmdRender)

	cmdRoot.Execute()
}

func CommandSolve(cmd *cobra.Command, args []string) {
	if len(args) > 0 {
		log.Fatalf("unknown option: %s", strings.Join(args, " "))
	}

	cfg := mustConfig()
	if outputDir != "" {
		cfg.Output.Directory = outputDir
	}
	if formats != "" {
		cfg.Output.Formats = splitFormats(formats)
	}

	zlog := mustLogger(cfg)
	defer zlog.Sync()

	catalog, plan := mustPlan(cfg, zlog)
	if err := schedule.ScreenPlacements(catalog, plan.Space()); err != nil {
		log.Fatalf("%v", err)
	}

	solver, err := mip.NewSolver(mip.SolverConfig{Name: cfg.Solver.Name, Path: cfg.Solver.Path})
	if err != nil {
		log.Fatalf("%v", err)
	}
	objectives, err := schedule.NewObjectives(cfg.Objectives)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()
	if cfg.Solver.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Solver.TimeLimit)
		defer cancel()
	}

	engine := schedule.NewEngine(plan, solver, zlog)
	result, err := engine.Optimize(ctx, objectives)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := schedule.Validate(catalog, plan.Space(), result.Assignment, cfg.Model.OverlapBufferMinutes); err != nil {
		log.Fatalf("solver returned an unsound schedule: %v", err)
	}

	rows := render.Rows(schedule.Placements(catalog, result.Assignment))
	capacity := roomCapacities(catalog.Rooms())
	grid := render.NewGrid(rows, capacity)

	for _, stage := range result.Stages {
		fmt.Printf("objective %q: value %g, bound %g\n", stage.Objective, stage.Value, stage.Bound)
	}
	if err := render.WriteText(os.Stdout, grid); err != nil {
		log.Fatalf("%v", err)
	}

	writeOutputs(cfg, rows, grid)
}

func CommandCheck(cmd *cobra.Command, args []string) {
	if len(args) > 0 {
		log.Fatalf("unknown option: %s", strings.Join(args, " "))
	}

	cfg := mustConfig()
	zlog := mustLogger(cfg)
	defer zlog.Sync()

	catalog, plan := mustPlan(cfg, zlog)

	fmt.Printf("courses:         %d\n", len(catalog.Courses()))
	fmt.Printf("rooms:           %d\n", len(catalog.Rooms()))
	fmt.Printf("time slots:      %d\n", len(catalog.Slots()))
	fmt.Printf("placement keys:  %d\n", plan.Space().Len())
	fmt.Printf("constraint rows: %d\n", len(plan.BaseConstraints()))

	if err := schedule.ScreenPlacements(catalog, plan.Space()); err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println("catalog is schedulable")
}

func CommandRender(cmd *cobra.Command, args []string) {
	if len(args) > 0 {
		log.Fatalf("unknown option: %s", strings.Join(args, " "))
	}

	cfg := mustConfig()
	if formats != "" {
		cfg.Output.Formats = splitFormats(formats)
	}
	path := schedulePath
	if path == "" {
		path = filepath.Join(cfg.Output.Directory, "schedule.csv")
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("%v", err)
	}
	rows, err := render.ReadCSV(file)
	file.Close()
	if err != nil {
		log.Fatalf("cannot read schedule %s: %v", path, err)
	}

	// Capacities are cosmetic here: without the room file the labels fall
	// back to a question mark.
	capacity := map[string]int{}
	if rooms, err := ingest.NewLoader(nil).LoadRooms(cfg.Data.Rooms); err == nil {
		capacity = roomCapacities(rooms)
	}

	grid := render.NewGrid(rows, capacity)
	if err := render.WriteText(os.Stdout, grid); err != nil {
		log.Fatalf("%v", err)
	}
	writeOutputs(cfg, rows, grid)
}

func mustConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return cfg
}

func mustLogger(cfg *config.Config) *zap.Logger {
	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return zlog
}

func mustPlan(cfg *config.Config, zlog *zap.Logger) (*schedule.Catalog, *schedule.Plan) {
	catalog, err := ingest.NewLoader(zlog).LoadCatalog(ingest.Paths{
		Courses:   cfg.Data.Courses,
		Rooms:     cfg.Data.Rooms,
		TimeSlots: cfg.Data.TimeSlots,
	})
	if err != nil {
		log.Fatalf("%v", err)
	}

	extra, err := schedule.NewConstraints(cfg.Constraints)
	if err != nil {
		log.Fatalf("%v", err)
	}
	constraints := append(schedule.StandardConstraints(cfg.Model.OverlapBufferMinutes), extra...)

	plan, err := schedule.BuildPlan(catalog, constraints)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return catalog, plan
}

func roomCapacities(rooms []schedule.Room) map[string]int {
	capacity := make(map[string]int, len(rooms))
	for _, room := range rooms {
		capacity[room.ID] = room.Capacity
	}
	return capacity
}

func splitFormats(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func writeOutputs(cfg *config.Config, rows []render.Row, grid []render.Day) {
	if len(cfg.Output.Formats) == 0 {
		return
	}
	if err := os.MkdirAll(cfg.Output.Directory, 0o755); err != nil {
		log.Fatalf("%v", err)
	}

	for _, format := range cfg.Output.Formats {
		name := "schedule." + extensionOf(format)
		path := filepath.Join(cfg.Output.Directory, name)
		file, err := os.Create(path)
		if err != nil {
			log.Fatalf("%v", err)
		}

		switch format {
		case "csv":
			err = render.WriteCSV(file, rows)
		case "text":
			err = render.WriteText(file, grid)
		case "html":
			err = render.WriteHTML(file, grid)
		case "pdf":
			err = render.WritePDF(file, rows, cfg.Output.Title)
		default:
			file.Close()
			log.Fatalf("unknown output format %q", format)
		}
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			log.Fatalf("cannot write %s: %v", path, err)
		}
		fmt.Printf("schedule saved to %s\n", path)
	}
}

func extensionOf(format string) string {
	if format == "text" {
		return "txt"
	}
	return format
}
