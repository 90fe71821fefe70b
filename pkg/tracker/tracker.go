package tracker

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/stefanpenner/quest/pkg/goal"
)

// Tracker holds an ordered list of goals and the aggregate score.
//
// The score is the sum of every award ever recorded. It is persisted as-is
// rather than recomputed from goal state.
type Tracker struct {
	goals []goal.Goal
	score int
	log   *slog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for tracker events.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		t.log = l
	}
}

// New returns an empty tracker.
func New(opts ...Option) *Tracker {
	t := &Tracker{log: slog.Default()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Listing is a read-only view of one goal.
type Listing struct {
	Index       int
	Kind        goal.Kind
	Name        string
	Description string
	Points      int
	Complete    bool
	Status      string
	Record      string

	// Checklist progress; zero for other kinds.
	Count  int
	Target int
	Bonus  int
}

// CreateGoal appends a new goal and returns its zero-based index.
func (t *Tracker) CreateGoal(spec goal.Spec) (int, error) {
	g, err := goal.New(spec)
	if err != nil {
		return 0, fmt.Errorf("creating goal: %w", err)
	}
	t.goals = append(t.goals, g)
	idx := len(t.goals) - 1
	t.log.Debug("goal created", "index", idx, "kind", g.Kind(), "name", g.Name())
	return idx, nil
}

// RecordEvent records one event against the goal at the zero-based index and
// adds the award to the score.
func (t *Tracker) RecordEvent(index int) (goal.Award, error) {
	if index < 0 || index >= len(t.goals) {
		return goal.Award{}, fmt.Errorf("%w: %d (have %d goals)", ErrOutOfRange, index, len(t.goals))
	}
	g := t.goals[index]
	award := g.RecordEvent()
	t.score += award.Total()
	t.log.Debug("event recorded",
		"index", index,
		"name", g.Name(),
		"points", award.Points,
		"bonus", award.Bonus,
		"already_complete", award.AlreadyComplete,
		"score", t.score)
	return award, nil
}

// ListGoals returns the goals in order.
func (t *Tracker) ListGoals() []Listing {
	out := make([]Listing, 0, len(t.goals))
	for i, g := range t.goals {
		l := Listing{
			Index:       i,
			Kind:        g.Kind(),
			Name:        g.Name(),
			Description: g.Description(),
			Points:      g.Points(),
			Complete:    g.IsComplete(),
			Status:      g.Status(),
			Record:      g.SaveFormat(),
		}
		if c, ok := g.(*goal.Checklist); ok {
			l.Count, l.Target, l.Bonus = c.Count(), c.Target(), c.Bonus()
		}
		out = append(out, l)
	}
	return out
}

// TotalScore returns the aggregate score.
func (t *Tracker) TotalScore() int {
	return t.score
}

// Len returns the number of goals.
func (t *Tracker) Len() int {
	return len(t.goals)
}

// Save writes the score line followed by one record per goal.
func (t *Tracker) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, t.score)
	for _, g := range t.goals {
		fmt.Fprintln(bw, g.SaveFormat())
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// Load replaces the tracker's contents with those read from r. On error the
// tracker is left untouched.
func (t *Tracker) Load(r io.Reader) error {
	var (
		goals    []goal.Goal
		score    int
		hasScore bool
		lineNo   int
	)

	br := bufio.NewReader(r)
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("%w: %w", ErrIO, readErr)
		}
		if raw == "" && readErr != nil {
			break
		}
		lineNo++
		line := strings.TrimRight(raw, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !hasScore {
			n, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				return &goal.FormatError{Line: lineNo, Msg: fmt.Sprintf("score %q is not an integer", line)}
			}
			score = n
			hasScore = true
			continue
		}

		g, err := goal.ParseRecord(line)
		if err != nil {
			var fe *goal.FormatError
			if errors.As(err, &fe) {
				return &goal.FormatError{Line: lineNo, Msg: fe.Msg}
			}
			return err
		}
		goals = append(goals, g)
	}
	if !hasScore {
		return &goal.FormatError{Line: lineNo, Msg: "missing score line"}
	}

	t.goals = goals
	t.score = score
	t.log.Debug("goals loaded", "goals", len(goals), "score", score)
	return nil
}
