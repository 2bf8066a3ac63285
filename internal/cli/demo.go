package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vampirenirmal/novelagent/internal/config"
	"github.com/vampirenirmal/novelagent/internal/generator"
	"github.com/vampirenirmal/novelagent/internal/novel"
	"github.com/vampirenirmal/novelagent/internal/orchestrator"
	"github.com/vampirenirmal/novelagent/internal/originality"
	"github.com/vampirenirmal/novelagent/internal/store"
	"github.com/vampirenirmal/novelagent/internal/task"
)

var demoLive bool

func init() {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run an end-to-end authoring flow",
		Long:  "Runs the full authoring flow against the mock generator, or against the configured API backend with --live.",
		Run:   runDemo,
	}
	cmd.Flags().BoolVar(&demoLive, "live", false, "Use the configured API backend instead of the mock generator")
	RootCmd.AddCommand(cmd)
}

// demoWorkers is how many world-bible categories expand concurrently; the
// live path replaces it from config.
var demoWorkers = 4

// buildGenerator constructs the configured API client and its default
// writing settings, or the mock when not running live.
func buildGenerator() (generator.ContentGenerator, novel.WritingSettings) {
	if !demoLive {
		return generator.NewMock(), novel.WritingSettings{Model: "mock", Temperature: 0.7, MaxTokens: 2048, PointOfView: "3rd-limited"}
	}
	cfg, err := config.Load()
	if err != nil {
		exitErr("load config", err)
	}
	gen, err := generator.NewClient(cfg.AI.APIKey,
		generator.WithAPIConfig(cfg.AI.BaseURL, cfg.AI.Model),
		generator.WithRetry(cfg.Limits.MaxRetries),
		generator.WithTimeout(cfg.Limits.RequestTimeout()),
		generator.WithRateLimit(cfg.Limits.RateLimit.RequestsPerMinute, cfg.Limits.RateLimit.BurstSize),
	)
	if err != nil {
		exitErr("build generator", err)
	}
	demoWorkers = cfg.Limits.WorldExpansionWorkers
	settings := novel.WritingSettings{
		Model:       cfg.AI.Model,
		Temperature: cfg.Defaults.Temperature,
		MaxTokens:   cfg.Defaults.MaxTokens,
		PointOfView: cfg.Defaults.PointOfView,
	}
	return gen, settings
}

func runDemo(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	st := store.New()
	ledger := task.NewLedger()
	gen, settings := buildGenerator()

	projects, err := orchestrator.NewProject(st, ledger, gen, originality.NewBasicChecker(nil))
	if err != nil {
		exitErr("project orchestrator", err)
	}
	series, err := orchestrator.NewSeries(st, ledger, gen, projects, orchestrator.WithExpansionWorkers(demoWorkers))
	if err != nil {
		exitErr("series orchestrator", err)
	}

	project, err := projects.CreateProject(ctx, orchestrator.ProjectDraft{Title: "The Cartographer's Daughter", Genre: "Fantasy"})
	if err != nil {
		exitErr("create project", err)
	}
	if _, err := projects.GenerateOutline(ctx, project.ID, settings); err != nil {
		exitErr("generate outline", err)
	}
	if _, err := projects.WriteChapter(ctx, project.ID, orchestrator.ChapterDraft{Summary: "The map arrives"}, settings); err != nil {
		exitErr("write chapter", err)
	}
	if _, err := projects.DevelopCharacter(ctx, project.ID, orchestrator.CharacterDraft{Name: "Mara", Role: "protagonist"}, settings); err != nil {
		exitErr("develop character", err)
	}

	s, err := series.CreateBookSeries(ctx, orchestrator.SeriesDraft{Title: "The Unmapped Lands", Genre: "Fantasy"})
	if err != nil {
		exitErr("create series", err)
	}
	if _, err := series.AddBookToSeries(ctx, s.ID, orchestrator.ProjectDraft{}); err != nil {
		exitErr("add book", err)
	}
	character, err := series.AddSeriesCharacter(s.ID, novel.SeriesCharacter{Name: "Mara", Role: "protagonist"})
	if err != nil {
		exitErr("add series character", err)
	}
	if _, err := series.DevelopSeriesCharacterArc(ctx, s.ID, character, settings); err != nil {
		exitErr("develop arc", err)
	}
	if _, err := series.ExpandWorldBible(ctx, s.ID, []string{"locations", "cultures"}, settings); err != nil {
		exitErr("expand world bible", err)
	}
	if _, err := series.PlanBookTransition(ctx, s.ID, 1, 2, settings); err != nil {
		exitErr("plan transition", err)
	}
	if _, err := series.CheckSeriesContinuity(ctx, s.ID, nil); err != nil {
		exitErr("check continuity", err)
	}
	analytics, err := series.GenerateSeriesAnalytics(s.ID)
	if err != nil {
		exitErr("series analytics", err)
	}

	summary := map[string]any{
		"project":   mustGet(projects.GetProject(project.ID)),
		"series":    mustGet(series.GetSeries(s.ID)),
		"analytics": analytics,
		"tasks":     ledger.List(""),
	}
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		exitErr("marshal summary", err)
	}
	fmt.Println(string(out))
}

func mustGet[T any](v T, err error) T {
	if err != nil {
		exitErr("lookup", err)
	}
	return v
}
