package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"calorics/internal/api"
	"calorics/internal/calc"
	"calorics/internal/catalog"
	"calorics/internal/config"
	"calorics/internal/foodset"
	"calorics/internal/model"
	"calorics/internal/session"
	"calorics/internal/tracker"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the wired engine components behind the CLI commands.
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	session *session.Session
	client  api.Client
	loader  catalog.Loader
	store   *tracker.EntryStore
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	sess := session.New()
	token := os.Getenv("CALORICS_TOKEN")
	if token == "" {
		return fmt.Errorf("CALORICS_TOKEN is required")
	}
	sess.SetCredential(token)
	if sess.Expired(time.Now()) {
		logger.Warn().Msg("stored credential looks expired; requests may be rejected")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := api.NewClient(
		cfg.API.BaseURL,
		sess,
		time.Duration(cfg.API.TimeoutSeconds)*time.Second,
		logger,
	)

	a := &app{
		cfg:     cfg,
		logger:  logger,
		session: sess,
		client:  client,
		loader:  newCatalogLoader(ctx, cfg, client, logger),
		store:   tracker.NewEntryStore(client, logger),
	}

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		return nil
	}

	command, rest := args[0], args[1:]
	switch command {
	case "progress":
		return a.progress(ctx, rest)
	case "log":
		return a.logFood(ctx, rest)
	case "direct":
		return a.direct(ctx, rest)
	case "remove":
		return a.remove(ctx, rest)
	case "sets":
		return a.listSets(ctx)
	case "set-new":
		return a.newSet(ctx, rest)
	case "set-apply":
		return a.applySet(ctx, rest)
	case "set-delete":
		return a.deleteSet(ctx, rest)
	default:
		usage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// newCatalogLoader wires the catalog source: the catalog service,
// optionally falling back to a local or S3 snapshot.
func newCatalogLoader(ctx context.Context, cfg *config.Config, client api.Client, logger zerolog.Logger) catalog.Loader {
	service := catalog.NewServiceLoader(client, logger)
	if !cfg.Snapshot.Enabled {
		return service
	}

	var snapshot catalog.Loader
	if cfg.Snapshot.S3Enabled {
		key := cfg.Snapshot.S3Prefix + "foods.json.gz"
		s3Loader, err := catalog.NewS3Loader(ctx, cfg.Snapshot.S3Bucket, cfg.Snapshot.S3Region, key, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 snapshot loader, using local snapshot only")
			snapshot = catalog.NewFileLoader(cfg.Snapshot.Path, logger)
		} else {
			snapshot = catalog.NewFallbackLoader(s3Loader, catalog.NewFileLoader(cfg.Snapshot.Path, logger), logger)
		}
	} else {
		snapshot = catalog.NewFileLoader(cfg.Snapshot.Path, logger)
	}

	return catalog.NewFallbackLoader(service, snapshot, logger)
}

// dateArg returns the optional trailing date argument or today.
func dateArg(args []string, at int) string {
	if len(args) > at {
		return args[at]
	}
	return model.Today()
}

func (a *app) progress(ctx context.Context, args []string) error {
	date := dateArg(args, 0)
	if err := a.session.SetActiveDate(date); err != nil {
		return err
	}

	cat, err := a.loader.Load(ctx)
	if err != nil {
		return err
	}

	entries, err := a.store.LoadForDate(ctx, date)
	if err != nil {
		return err
	}

	stats := a.store.Stats()
	progress := a.store.Progress(cat)
	bar := calc.RenderCalorieBar(progress.DailyCalories, stats.NeededCalories)

	fmt.Printf("Daily progress for %s (%s)\n\n", date, stats.Goal.Text())
	fmt.Printf("Calories: %.0f of %.0f kcal\n", progress.DailyCalories, stats.NeededCalories)
	fmt.Printf("  %s\n", renderBar(bar, progress.CalorieProgressPercent))
	fmt.Printf("Protein:  %.0fg of %.0fg (%.0f%%)\n", progress.Protein.ConsumedGrams, progress.Protein.TargetGrams, progress.Protein.Percent)
	fmt.Printf("Carbs:    %.0fg of %.0fg (%.0f%%)\n", progress.Carbs.ConsumedGrams, progress.Carbs.TargetGrams, progress.Carbs.Percent)
	fmt.Printf("Fat:      %.0fg of %.0fg (%.0f%%)\n", progress.Fat.ConsumedGrams, progress.Fat.TargetGrams, progress.Fat.Percent)
	if progress.UnresolvedEntries > 0 {
		fmt.Printf("(%d entries reference foods missing from the catalog)\n", progress.UnresolvedEntries)
	}

	fmt.Printf("\nFoods:\n")
	if len(entries) == 0 {
		fmt.Println("  no foods logged")
		return nil
	}
	for _, e := range entries {
		name := "Unknown Food"
		if f, ok := cat.Food(e.FoodID); ok {
			name = f.Name
		} else if e.Food != nil {
			name = e.Food.Name
		}
		fmt.Printf("  [%d] %s: %.2f x %s, %.0f kcal\n", e.ID, name, e.Quantity, e.ServingDesc, e.Calories)
	}
	return nil
}

// renderBar draws the segment description as a fixed-width text bar.
// Past budget the whole bar rescales so the overflow segment fits
// inside the same width instead of widening the bar.
func renderBar(bar calc.CalorieBar, percent float64) string {
	const width = 40
	scale := 100.0
	if percent > scale {
		scale = percent
	}

	var b strings.Builder
	b.WriteString("[")
	drawn := 0
	for _, seg := range bar.Segments {
		n := int(seg.WidthPercent / scale * width)
		if n > width-drawn {
			n = width - drawn
		}
		mark := "#"
		if seg.Kind == calc.SegmentExceeded {
			mark = "!"
		}
		b.WriteString(strings.Repeat(mark, n))
		drawn += n
	}
	if drawn < width {
		b.WriteString(strings.Repeat("-", width-drawn))
	}
	b.WriteString("]")
	fmt.Fprintf(&b, " %.0f%%", percent)
	return b.String()
}

func (a *app) logFood(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: calorics log <food> <serving> <quantity> [date]")
	}
	quantity, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return model.ErrInvalidQuantity
	}
	date := dateArg(args, 3)

	cat, err := a.loader.Load(ctx)
	if err != nil {
		return err
	}

	var sel catalog.Selection
	sel.SetQuery(args[0])
	matches := catalog.NewSearchIndex(cat).Filter(sel.Query())
	if len(matches) == 0 {
		return model.ErrFoodNotFound
	}
	food, _ := cat.Food(matches[0].ID)
	sel.Choose(food)
	if err := sel.ChooseServing(args[1]); err != nil {
		return err
	}
	if err := sel.SetQuantity(quantity); err != nil {
		return err
	}

	preview, err := calc.EstimateCalories(sel.Food(), *sel.Serving(), sel.Quantity())
	if err != nil {
		return err
	}
	fmt.Printf("%s, %.2f x %s is about %.0f kcal\n", food.Name, quantity, args[1], preview)

	if _, err := a.store.LoadForDate(ctx, date); err != nil {
		return err
	}
	entry, err := a.store.Add(ctx, sel.Food(), *sel.Serving(), sel.Quantity(), date)
	if err != nil {
		return err
	}
	fmt.Printf("Logged entry %d on %s (%.0f kcal)\n", entry.ID, date, entry.Calories)
	return nil
}

func (a *app) direct(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: calorics direct <name> <calories> <quantity> [date]")
	}
	calories, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid calories: %s", args[1])
	}
	quantity, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return model.ErrInvalidQuantity
	}

	entry, err := a.client.CreateDirectEntry(ctx, model.DirectEntryRequest{
		Name:     args[0],
		Calories: calories,
		Quantity: quantity,
		Date:     dateArg(args, 3),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Logged entry %d (%.0f kcal)\n", entry.ID, entry.Calories)
	return nil
}

func (a *app) remove(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: calorics remove <entry-id> [date]")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid entry id: %s", args[0])
	}
	date := dateArg(args, 1)

	if _, err := a.store.LoadForDate(ctx, date); err != nil {
		return err
	}
	if err := a.store.Remove(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Removed entry %d; %.0f kcal remain on %s\n", id, a.store.DailyCalories(), date)
	return nil
}

func (a *app) listSets(ctx context.Context) error {
	applier := foodset.NewApplier(a.client, a.logger)
	if err := applier.Refresh(ctx); err != nil {
		return err
	}
	sets := applier.Sets()
	if len(sets) == 0 {
		fmt.Println("no food sets")
		return nil
	}
	for _, s := range sets {
		fmt.Printf("[%d] %s (%d entries)", s.ID, s.Name, len(s.Entries))
		if s.Description != "" {
			fmt.Printf(": %s", s.Description)
		}
		fmt.Println()
	}
	return nil
}

// newSet authors a set from item arguments of the form
// "food:serving:quantity".
func (a *app) newSet(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: calorics set-new <name> <food:serving:quantity>... [--desc text]")
	}
	name := args[0]
	items := args[1:]
	var description string
	for i, arg := range items {
		if arg == "--desc" && i+1 < len(items) {
			description = strings.Join(items[i+1:], " ")
			items = items[:i]
			break
		}
	}

	cat, err := a.loader.Load(ctx)
	if err != nil {
		return err
	}
	index := catalog.NewSearchIndex(cat)

	workflow := tracker.NewWorkflow()
	workflow.BeginSetAuthoring(foodset.NewBuilder(a.client, a.logger))
	builder, _ := workflow.Builder()

	var sel catalog.Selection
	for _, item := range items {
		parts := strings.SplitN(item, ":", 3)
		if len(parts) != 3 {
			return fmt.Errorf("invalid item %q, want food:serving:quantity", item)
		}
		quantity, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return model.ErrInvalidQuantity
		}

		sel.SetQuery(parts[0])
		matches := index.Filter(sel.Query())
		if len(matches) == 0 {
			return fmt.Errorf("no food matches %q", parts[0])
		}
		food, _ := cat.Food(matches[0].ID)
		sel.Choose(food)
		if err := sel.ChooseServing(parts[1]); err != nil {
			return err
		}
		if err := sel.SetQuantity(quantity); err != nil {
			return err
		}
		if err := builder.Append(&sel); err != nil {
			return err
		}
	}

	set, err := builder.Commit(ctx, name, description)
	if err != nil {
		return err
	}
	workflow.Reset()
	fmt.Printf("Created food set %d %q with %d entries\n", set.ID, set.Name, len(set.Entries))
	return nil
}

func (a *app) applySet(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: calorics set-apply <set-id> [date]")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid set id: %s", args[0])
	}
	date := dateArg(args, 1)

	applier := foodset.NewApplier(a.client, a.logger)
	if err := applier.Apply(ctx, id, date); err != nil {
		return err
	}

	// The apply response carries no entries; reload to see them.
	entries, err := a.store.LoadForDate(ctx, date)
	if err != nil {
		return err
	}
	fmt.Printf("Applied set %d to %s; %d entries, %.0f kcal\n", id, date, len(entries), a.store.DailyCalories())
	return nil
}

func (a *app) deleteSet(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: calorics set-delete <set-id>")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid set id: %s", args[0])
	}

	applier := foodset.NewApplier(a.client, a.logger)
	if err := applier.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted food set %d\n", id)
	return nil
}

func usage() {
	fmt.Println(`calorics - daily calorie and macro tracking

Usage:
  calorics progress [date]
  calorics log <food> <serving> <quantity> [date]
  calorics direct <name> <calories> <quantity> [date]
  calorics remove <entry-id> [date]
  calorics sets
  calorics set-new <name> <food:serving:quantity>... [--desc text]
  calorics set-apply <set-id> [date]
  calorics set-delete <set-id>

Dates use YYYY-MM-DD and default to today.
Set CALORICS_TOKEN to your API credential.`)
}
