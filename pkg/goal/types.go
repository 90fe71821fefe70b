package goal

import (
	"fmt"
	"strings"
)

// Kind identifies a goal variant. Its string form is the record tag used in
// the goals file.
type Kind string

const (
	KindSimple    Kind = "Simple"
	KindEternal   Kind = "Eternal"
	KindChecklist Kind = "Checklist"
)

// Kinds lists the variants in menu order.
var Kinds = []Kind{KindSimple, KindEternal, KindChecklist}

// ParseKind resolves a user-supplied kind name. Matching is case-insensitive,
// and the menu numbers 1, 2 and 3 are accepted as well.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple", "1":
		return KindSimple, nil
	case "eternal", "2":
		return KindEternal, nil
	case "checklist", "3":
		return KindChecklist, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Goal is a trackable objective with its own completion model.
type Goal interface {
	Kind() Kind
	Name() string
	Description() string
	Points() int
	IsComplete() bool

	// RecordEvent applies one occurrence of progress and returns what it earned.
	RecordEvent() Award
	// Status returns the display marker, e.g. "[ ]", "[X]", "[∞]" or "[2/5]".
	Status() string
	// SaveFormat returns the record line for the goals file.
	SaveFormat() string
}

// Base holds the fields every variant shares.
type Base struct {
	name        string
	description string
	points      int
}

func (b Base) Name() string        { return b.name }
func (b Base) Description() string { return b.description }
func (b Base) Points() int         { return b.points }

// Spec is a request to create a goal. Target and Bonus are only read for
// checklist goals.
type Spec struct {
	Kind        Kind
	Name        string
	Description string
	Points      int
	Target      int
	Bonus       int
}

// New builds the goal described by spec.
func New(spec Spec) (Goal, error) {
	if err := checkText("name", spec.Name); err != nil {
		return nil, err
	}
	if err := checkText("description", spec.Description); err != nil {
		return nil, err
	}

	switch spec.Kind {
	case KindSimple:
		return NewSimple(spec.Name, spec.Description, spec.Points), nil
	case KindEternal:
		return NewEternal(spec.Name, spec.Description, spec.Points), nil
	case KindChecklist:
		if spec.Target <= 0 {
			return nil, fmt.Errorf("%w: target count must be positive, got %d", ErrInvalidArgument, spec.Target)
		}
		return NewChecklist(spec.Name, spec.Description, spec.Points, spec.Target, spec.Bonus), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidKind, spec.Kind)
}

// checkText rejects text that the unescaped record format cannot round-trip.
func checkText(field, s string) error {
	if strings.ContainsAny(s, recordDelimiter+"\r\n") {
		return fmt.Errorf("%w: %s must not contain %q or line breaks", ErrInvalidArgument, field, recordDelimiter)
	}
	return nil
}

// Award is the outcome of a single recorded event.
type Award struct {
	Points int
	Bonus  int

	// Completed is set on the event that completed the goal.
	Completed bool
	// AlreadyComplete is set when a one-shot goal was recorded again.
	AlreadyComplete bool
}

// Total returns the amount to add to the aggregate score.
func (a Award) Total() int {
	return a.Points + a.Bonus
}

// Message renders the award for display.
func (a Award) Message(name string) string {
	switch {
	case a.AlreadyComplete:
		return fmt.Sprintf("Goal '%s' is already complete. No points awarded.", name)
	case a.Completed && a.Bonus != 0:
		return fmt.Sprintf("Goal '%s' completed! You gained %d points plus a %d bonus!", name, a.Points, a.Bonus)
	case a.Completed:
		return fmt.Sprintf("Goal '%s' completed! You gained %d points.", name, a.Points)
	}
	return fmt.Sprintf("Recorded '%s'. You gained %d points.", name, a.Points)
}
