package goal

import "fmt"

// Checklist completes after Target events and pays Bonus on the event that
// reaches the target.
//
// Events recorded after completion still advance the count and pay the base
// points. The bonus is paid at most once.
type Checklist struct {
	Base
	target int
	count  int
	bonus  int
}

func NewChecklist(name, description string, points, target, bonus int) *Checklist {
	return &Checklist{
		Base:   Base{name: name, description: description, points: points},
		target: target,
		bonus:  bonus,
	}
}

func (g *Checklist) Kind() Kind  { return KindChecklist }
func (g *Checklist) Target() int { return g.target }
func (g *Checklist) Count() int  { return g.count }
func (g *Checklist) Bonus() int  { return g.bonus }

func (g *Checklist) IsComplete() bool {
	return g.count >= g.target
}

func (g *Checklist) RecordEvent() Award {
	wasComplete := g.IsComplete()
	g.count++

	award := Award{Points: g.points}
	if !wasComplete && g.IsComplete() {
		award.Bonus = g.bonus
		award.Completed = true
	}
	return award
}

func (g *Checklist) Status() string {
	if g.IsComplete() {
		return "[X]"
	}
	return fmt.Sprintf("[%d/%d]", g.count, g.target)
}

func (g *Checklist) SaveFormat() string {
	return joinRecord(string(KindChecklist), g.name, g.description,
		itoa(g.points), itoa(g.target), itoa(g.count), itoa(g.bonus))
}
