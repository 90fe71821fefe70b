package tui

import (
	"github.com/stefanpenner/quest/pkg/goal"
	"github.com/stefanpenner/quest/pkg/tracker"
)

// GoalItem is one row of the goal list.
type GoalItem struct {
	tracker.Listing
	Number int // 1-based, as shown on screen
}

// BuildItems converts tracker listings into list rows.
func BuildItems(listings []tracker.Listing) []GoalItem {
	items := make([]GoalItem, 0, len(listings))
	for _, l := range listings {
		items = append(items, GoalItem{Listing: l, Number: l.Index + 1})
	}
	return items
}

// FilterItems keeps items whose name or description contains query,
// case-insensitively. An empty query keeps everything.
func FilterItems(items []GoalItem, query string) []GoalItem {
	if query == "" {
		return items
	}
	var result []GoalItem
	for _, item := range items {
		_, _, inName := foldIndex(item.Name, query)
		_, _, inDesc := foldIndex(item.Description, query)
		if inName || inDesc {
			result = append(result, item)
		}
	}
	return result
}

// Progress returns how far along the goal is, from 0 to 1. Eternal goals
// report 0.
func (i GoalItem) Progress() float64 {
	switch i.Kind {
	case goal.KindChecklist:
		if i.Target <= 0 {
			return 0
		}
		p := float64(i.Count) / float64(i.Target)
		if p > 1 {
			p = 1
		}
		return p
	case goal.KindSimple:
		if i.Complete {
			return 1
		}
	}
	return 0
}

func countComplete(items []GoalItem) int {
	n := 0
	for _, item := range items {
		if item.Complete {
			n++
		}
	}
	return n
}
