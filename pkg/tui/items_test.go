package tui

import (
	"testing"

	"github.com/stefanpenner/quest/pkg/goal"
	"github.com/stefanpenner/quest/pkg/tracker"
	"github.com/stretchr/testify/assert"
)

func TestBuildItemsNumbersFromOne(t *testing.T) {
	items := BuildItems([]tracker.Listing{{Index: 0, Name: "a"}, {Index: 1, Name: "b"}})
	assert.Equal(t, 1, items[0].Number)
	assert.Equal(t, 2, items[1].Number)
}

func TestFilterItems(t *testing.T) {
	items := BuildItems([]tracker.Listing{
		{Index: 0, Name: "Read book", Description: "chapter a day"},
		{Index: 1, Name: "Exercise", Description: "Gym"},
		{Index: 2, Name: "Pray"},
	})

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Read book", "Exercise", "Pray"}},
		{"read", []string{"Read book"}},
		{"gym", []string{"Exercise"}},
		{"A", []string{"Read book", "Pray"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var names []string
			for _, item := range FilterItems(items, tt.query) {
				names = append(names, item.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name    string
		listing tracker.Listing
		want    float64
	}{
		{"simple open", tracker.Listing{Kind: goal.KindSimple}, 0},
		{"simple done", tracker.Listing{Kind: goal.KindSimple, Complete: true}, 1},
		{"eternal", tracker.Listing{Kind: goal.KindEternal}, 0},
		{"checklist half", tracker.Listing{Kind: goal.KindChecklist, Count: 2, Target: 4}, 0.5},
		{"checklist over", tracker.Listing{Kind: goal.KindChecklist, Count: 6, Target: 4, Complete: true}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GoalItem{Listing: tt.listing}.Progress())
		})
	}
}

func TestCountComplete(t *testing.T) {
	items := BuildItems([]tracker.Listing{{Complete: true}, {}, {Complete: true}})
	assert.Equal(t, 2, countComplete(items))
}
