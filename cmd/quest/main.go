package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/stefanpenner/quest/pkg/config"
	"github.com/stefanpenner/quest/pkg/goal"
	"github.com/stefanpenner/quest/pkg/logging"
	"github.com/stefanpenner/quest/pkg/store"
	gsync "github.com/stefanpenner/quest/pkg/sync"
	"github.com/stefanpenner/quest/pkg/tracker"
	"github.com/stefanpenner/quest/pkg/tui"
)

const usage = "Usage: quest [list|add|record|score|init|sync] [--dir <path>] [--json]"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	jsonOutput := hasFlag(args, "--json")
	args = removeFlag(args, "--json")
	dir, args := takeFlag(args, "--dir")
	configPath, args := takeFlag(args, "--config")
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dir != "" {
		cfg.DataDir = dir
	}

	// The TUI has no JSON form; --json alone lists goals.
	if jsonOutput && len(args) == 0 {
		args = []string{"list"}
	}

	interactive := len(args) == 0
	logger, closeLog, err := setupLogging(cfg, interactive)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := store.NewStore(cfg.DataDir, store.WithGoalsFile(cfg.GoalsFile), store.WithLogger(logger))
	if err != nil {
		return err
	}

	if interactive {
		return runTUI(s, logger)
	}

	c := &cli{store: s, log: logger, out: stdout, json: jsonOutput}

	switch args[0] {
	case "list":
		return c.list()
	case "add":
		desc, rest := takeFlag(args[1:], "--desc")
		if len(rest) < 3 {
			return fmt.Errorf("usage: quest add <simple|eternal|checklist> <name> <points> [<target> <bonus>] [--desc <text>]")
		}
		return c.add(rest, desc)
	case "record":
		if len(args) < 2 {
			return fmt.Errorf("usage: quest record <goal-number>")
		}
		return c.record(args[1])
	case "score":
		return c.score()
	case "init":
		remote, _ := takeFlag(args[1:], "--remote")
		return gsync.InitRepo(s.Root, remote, stdout)
	case "sync":
		return gsync.SyncRepo(s.Root, stdout)
	default:
		return fmt.Errorf("unknown command: %s\n%s", args[0], usage)
	}
}

// setupLogging logs to stderr for CLI commands and to a file for the TUI,
// whose alt screen owns the terminal.
func setupLogging(cfg config.Config, interactive bool) (*slog.Logger, func(), error) {
	if !interactive {
		return logging.Setup(os.Stderr, cfg.LogLevel), func() {}, nil
	}

	path := cfg.LogFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.DataDir, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return logging.Setup(f, cfg.LogLevel), func() { f.Close() }, nil
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func removeFlag(args []string, flag string) []string {
	var result []string
	for _, a := range args {
		if a != flag {
			result = append(result, a)
		}
	}
	return result
}

// takeFlag extracts "flag value" from args and returns the value and the
// remaining args.
func takeFlag(args []string, flag string) (string, []string) {
	var value string
	var rest []string
	for i := 0; i < len(args); i++ {
		if args[i] == flag && i+1 < len(args) {
			value = args[i+1]
			i++
			continue
		}
		rest = append(rest, args[i])
	}
	return value, rest
}

func runTUI(s *store.Store, logger *slog.Logger) error {
	t, err := s.LoadOrNew(tracker.WithLogger(logger))
	if err != nil {
		return err
	}

	m := tui.NewModel(s, t)
	p := tea.NewProgram(m, tea.WithAltScreen())

	cleanup, err := tui.StartWatcher(s.GoalsPath(), p)
	if err != nil {
		logger.Warn("file watcher failed", "error", err)
	} else {
		defer cleanup()
	}

	_, err = p.Run()
	return err
}

// CLI Commands

type cli struct {
	store *store.Store
	log   *slog.Logger
	out   io.Writer
	json  bool
}

func (c *cli) load() (*tracker.Tracker, error) {
	return c.store.LoadOrNew(tracker.WithLogger(c.log))
}

func (c *cli) list() error {
	t, err := c.load()
	if err != nil {
		return err
	}

	if c.json {
		return c.outputJSON(trackerToMap(t))
	}

	goals := t.ListGoals()
	if len(goals) == 0 {
		fmt.Fprintln(c.out, "No goals yet. Add one with 'quest add'.")
	}
	for _, l := range goals {
		fmt.Fprintf(c.out, "%d. %s %s\n", l.Index+1, l.Status, l.Record)
	}
	fmt.Fprintf(c.out, "Total Score: %s\n", humanize.Comma(int64(t.TotalScore())))
	return nil
}

func (c *cli) add(args []string, desc string) error {
	kind, err := goal.ParseKind(args[0])
	if err != nil {
		return err
	}
	spec := goal.Spec{Kind: kind, Name: args[1], Description: desc}
	if spec.Points, err = parseNumber("points", args[2]); err != nil {
		return err
	}
	if kind == goal.KindChecklist {
		if len(args) < 5 {
			return fmt.Errorf("%w: checklist goals need <target> and <bonus>", goal.ErrInvalidArgument)
		}
		if spec.Target, err = parseNumber("target", args[3]); err != nil {
			return err
		}
		if spec.Bonus, err = parseNumber("bonus", args[4]); err != nil {
			return err
		}
	}

	t, err := c.load()
	if err != nil {
		return err
	}
	idx, err := t.CreateGoal(spec)
	if err != nil {
		return err
	}
	if err := c.store.Save(t); err != nil {
		return err
	}

	l := t.ListGoals()[idx]
	if c.json {
		return c.outputJSON(listingToMap(l))
	}
	fmt.Fprintf(c.out, "Created %d. %s %s\n", idx+1, l.Status, l.Name)
	return nil
}

func (c *cli) record(arg string) error {
	n, err := parseNumber("goal number", arg)
	if err != nil {
		return err
	}

	t, err := c.load()
	if err != nil {
		return err
	}
	award, err := t.RecordEvent(n - 1)
	if err != nil {
		return err
	}
	if err := c.store.Save(t); err != nil {
		return err
	}

	l := t.ListGoals()[n-1]
	if c.json {
		return c.outputJSON(map[string]interface{}{
			"goal":             listingToMap(l),
			"points":           award.Points,
			"bonus":            award.Bonus,
			"completed":        award.Completed,
			"already_complete": award.AlreadyComplete,
			"score":            t.TotalScore(),
		})
	}
	fmt.Fprintln(c.out, award.Message(l.Name))
	fmt.Fprintf(c.out, "Total Score: %s\n", humanize.Comma(int64(t.TotalScore())))
	return nil
}

func (c *cli) score() error {
	t, err := c.load()
	if err != nil {
		return err
	}
	if c.json {
		return c.outputJSON(map[string]int{"score": t.TotalScore()})
	}
	fmt.Fprintln(c.out, humanize.Comma(int64(t.TotalScore())))
	return nil
}

func parseNumber(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", goal.ErrInvalidArgument, field, s)
	}
	return n, nil
}

// JSON helpers

func (c *cli) outputJSON(v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func listingToMap(l tracker.Listing) map[string]interface{} {
	return map[string]interface{}{
		"number":      l.Index + 1,
		"kind":        string(l.Kind),
		"name":        l.Name,
		"description": l.Description,
		"points":      l.Points,
		"complete":    l.Complete,
		"status":      l.Status,
		"record":      l.Record,
	}
}

func trackerToMap(t *tracker.Tracker) map[string]interface{} {
	goals := []map[string]interface{}{}
	for _, l := range t.ListGoals() {
		goals = append(goals, listingToMap(l))
	}
	return map[string]interface{}{
		"score": t.TotalScore(),
		"goals": goals,
	}
}
