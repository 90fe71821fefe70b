package goal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleAwardsOnce(t *testing.T) {
	g := NewSimple("Read scriptures", "", 10)
	assert.Equal(t, "[ ]", g.Status())
	assert.False(t, g.IsComplete())

	first := g.RecordEvent()
	assert.Equal(t, 10, first.Total())
	assert.True(t, first.Completed)
	assert.False(t, first.AlreadyComplete)
	assert.Equal(t, "[X]", g.Status())

	second := g.RecordEvent()
	assert.Equal(t, 0, second.Total())
	assert.True(t, second.AlreadyComplete)
	assert.Equal(t, "[X]", g.Status())
}

func TestEternalNeverCompletes(t *testing.T) {
	g := NewEternal("Pray", "", 3)

	total := 0
	for i := 0; i < 5; i++ {
		a := g.RecordEvent()
		assert.False(t, a.Completed)
		total += a.Total()
		assert.Equal(t, EternalStatus, g.Status())
		assert.False(t, g.IsComplete())
	}
	assert.Equal(t, 15, total)
}

func TestChecklistProgress(t *testing.T) {
	g := NewChecklist("Exercise", "", 5, 3, 20)
	assert.Equal(t, "[0/3]", g.Status())

	a := g.RecordEvent()
	assert.Equal(t, Award{Points: 5}, a)
	assert.Equal(t, "[1/3]", g.Status())

	a = g.RecordEvent()
	assert.Equal(t, Award{Points: 5}, a)
	assert.Equal(t, "[2/3]", g.Status())

	a = g.RecordEvent()
	assert.Equal(t, Award{Points: 5, Bonus: 20, Completed: true}, a)
	assert.Equal(t, 25, a.Total())
	assert.Equal(t, "[X]", g.Status())
	assert.True(t, g.IsComplete())
}

func TestChecklistAfterCompletion(t *testing.T) {
	g := NewChecklist("Exercise", "", 5, 2, 20)
	g.RecordEvent()
	g.RecordEvent()
	require.True(t, g.IsComplete())

	// Base points keep flowing, the bonus does not repeat.
	a := g.RecordEvent()
	assert.Equal(t, Award{Points: 5}, a)
	assert.Equal(t, 3, g.Count())
	assert.Equal(t, "[X]", g.Status())
}

func TestChecklistScoreLaw(t *testing.T) {
	for _, tc := range []struct{ target, points, bonus int }{
		{1, 5, 20}, {3, 5, 20}, {10, 1, 100}, {4, 0, 0},
	} {
		g := NewChecklist("c", "", tc.points, tc.target, tc.bonus)
		score := 0
		for i := 0; i < tc.target-1; i++ {
			score += g.RecordEvent().Total()
		}
		assert.Equal(t, (tc.target-1)*tc.points, score)
		if tc.target > 1 {
			assert.False(t, g.IsComplete())
		}
		score += g.RecordEvent().Total()
		assert.Equal(t, tc.target*tc.points+tc.bonus, score)
		assert.Equal(t, "[X]", g.Status())
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr error
		check   func(t *testing.T, g Goal)
	}{
		{
			name: "simple",
			spec: Spec{Kind: KindSimple, Name: "Run a marathon", Description: "42km", Points: 1000},
			check: func(t *testing.T, g Goal) {
				assert.IsType(t, &Simple{}, g)
				assert.Equal(t, "Run a marathon", g.Name())
				assert.Equal(t, "42km", g.Description())
				assert.Equal(t, 1000, g.Points())
			},
		},
		{
			name: "eternal ignores checklist fields",
			spec: Spec{Kind: KindEternal, Name: "Pray", Points: 3, Target: -1},
			check: func(t *testing.T, g Goal) {
				assert.IsType(t, &Eternal{}, g)
			},
		},
		{
			name: "checklist",
			spec: Spec{Kind: KindChecklist, Name: "Temple", Points: 50, Target: 10, Bonus: 500},
			check: func(t *testing.T, g Goal) {
				c, ok := g.(*Checklist)
				require.True(t, ok)
				assert.Equal(t, 10, c.Target())
				assert.Equal(t, 0, c.Count())
				assert.Equal(t, 500, c.Bonus())
			},
		},
		{
			name:    "unknown kind",
			spec:    Spec{Kind: "Weekly", Name: "x"},
			wantErr: ErrInvalidKind,
		},
		{
			name:    "zero target",
			spec:    Spec{Kind: KindChecklist, Name: "x", Target: 0},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "negative target",
			spec:    Spec{Kind: KindChecklist, Name: "x", Target: -3},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "delimiter in name",
			spec:    Spec{Kind: KindSimple, Name: "a,b"},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "newline in description",
			spec:    Spec{Kind: KindSimple, Name: "a", Description: "line\nbreak"},
			wantErr: ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.spec)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, g)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.spec.Kind, g.Kind())
			if tt.check != nil {
				tt.check(t, g)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"simple":    KindSimple,
		"Simple":    KindSimple,
		"1":         KindSimple,
		"ETERNAL":   KindEternal,
		"2":         KindEternal,
		"checklist": KindChecklist,
		"3":         KindChecklist,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("4")
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestAwardMessage(t *testing.T) {
	assert.Contains(t, Award{AlreadyComplete: true}.Message("Read"), "already complete")
	assert.Contains(t, Award{Points: 5, Bonus: 20, Completed: true}.Message("Run"), "20 bonus")
	assert.Contains(t, Award{Points: 10, Completed: true}.Message("Read"), "completed")
	assert.Equal(t, "Recorded 'Pray'. You gained 3 points.", Award{Points: 3}.Message("Pray"))
}
