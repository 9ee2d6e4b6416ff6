package exercise

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== Catalog ====================

func TestCatalogOrderAndAudio(t *testing.T) {
	all := All()
	require.Len(t, all, 7)

	var ids []string
	var withAudio []string
	for _, e := range all {
		ids = append(ids, e.ID)
		assert.NotEmpty(t, e.Steps, e.ID)
		if e.HasAudio {
			withAudio = append(withAudio, e.ID)
		}
	}
	assert.Equal(t, []string{
		"respiracion", "grounding", "afirmaciones", "escritura", "escucha", "ayuda", "afirmacionesAnsiedad",
	}, ids)
	assert.Equal(t, []string{"respiracion", "afirmaciones", "escucha", "afirmacionesAnsiedad"}, withAudio)
}

func TestLookup(t *testing.T) {
	e, err := Lookup(Respiracion)
	require.NoError(t, err)
	assert.Equal(t, "Respiración guiada", e.Title)
	assert.Len(t, e.Steps, 5)

	_, err = Lookup("yoga")
	assert.ErrorIs(t, err, ErrUnknownExercise)

	assert.True(t, IsCatalogID(Grounding))
	assert.False(t, IsCatalogID("journaling"))
}

func TestLookupReturnsCopy(t *testing.T) {
	e, _ := Lookup(Grounding)
	e.Steps[0] = "changed"
	again, _ := Lookup(Grounding)
	assert.NotEqual(t, "changed", again.Steps[0])
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Grounding 5-4-3-2-1", Title("grounding"))
	assert.Equal(t, "Escritura emocional", Title("journaling"))
	assert.Equal(t, "Escucha consciente", Title("audio"))
	assert.Equal(t, "mystery", Title("mystery"))
	assert.Equal(t, []string{"Respiración guiada", "x"}, Titles([]string{"respiracion", "x"}))
}

// ==================== Custom ====================

func TestNewCustom(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c, err := NewCustom(" Autoestima ", "Frases para mí", []string{"Respira", "Repite  ", ""}, now)
	require.NoError(t, err)

	_, perr := uuid.Parse(c.ID)
	assert.NoError(t, perr)
	assert.Equal(t, "Autoestima", c.Title)
	assert.Equal(t, []string{"Respira", "Repite"}, c.Steps)
	assert.True(t, c.Custom)
	assert.Equal(t, now, c.CreatedAt)
}

func TestNewCustomIncomplete(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name        string
		title, desc string
		steps       []string
	}{
		{"no title", "", "d", []string{"a"}},
		{"blank title", "   ", "d", []string{"a"}},
		{"no description", "t", "", []string{"a"}},
		{"no steps", "t", "d", nil},
		{"only blank steps", "t", "d", []string{" ", ""}},
		{"blank step in the middle", "t", "d", []string{"a", " ", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCustom(tt.title, tt.desc, tt.steps, now)
			assert.ErrorIs(t, err, ErrInvalidExercise)
		})
	}
}

func TestNewValidatorRegistersNotBlank(t *testing.T) {
	require.NotPanics(t, func() { newValidator() })
	v := newValidator()
	assert.NoError(t, v.Var("Caminar", "notblank"))
	assert.Error(t, v.Var("   ", "notblank"))
}

func TestCustomJSONShape(t *testing.T) {
	c, err := NewCustom("t", "d", []string{"s"}, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)
	b, err := json.Marshal(c)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "2024-01-02T03:04:05Z", raw["createdAt"])
	assert.Equal(t, true, raw["custom"])
	assert.Contains(t, raw, "steps")
}

func TestSplitSteps(t *testing.T) {
	assert.Equal(t, []string{"uno", "dos"}, SplitSteps("uno\n dos \n\n"))
	assert.Empty(t, SplitSteps(""))
}

// ==================== Pacer ====================

func TestPacerFullSession(t *testing.T) {
	p := NewPacer()
	assert.Equal(t, PhaseIdle, p.Phase())
	assert.False(t, p.Running())

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p.Start(start)
	assert.Equal(t, PhaseInhale, p.Phase())
	assert.Equal(t, 1, p.Cycle())
	assert.Equal(t, 4*time.Second, p.Remaining())

	assert.False(t, p.Tick(start.Add(3*time.Second)))
	assert.Equal(t, time.Second, p.Remaining())

	assert.True(t, p.Tick(start.Add(4*time.Second)))
	assert.Equal(t, PhaseHold, p.Phase())

	assert.True(t, p.Tick(start.Add(8*time.Second)))
	assert.Equal(t, PhaseExhale, p.Phase())
	assert.Equal(t, 6*time.Second, p.Remaining())

	assert.True(t, p.Tick(start.Add(14*time.Second)))
	assert.Equal(t, PhaseInhale, p.Phase())
	assert.Equal(t, 2, p.Cycle())

	// Five 14 second cycles.
	p.Tick(start.Add(70 * time.Second))
	assert.Equal(t, PhaseDone, p.Phase())
	assert.Equal(t, 1.0, p.Progress())
	assert.False(t, p.Tick(start.Add(100*time.Second)))
}

func TestPacerLateTickSkipsPhases(t *testing.T) {
	p := NewPacer()
	start := time.Now()
	p.Start(start)
	p.Tick(start.Add(30 * time.Second)) // two cycles done, 2s into the third inhale
	assert.Equal(t, 3, p.Cycle())
	assert.Equal(t, PhaseInhale, p.Phase())
	assert.Equal(t, 2*time.Second, p.Remaining())
}

func TestPacerProgressAndStop(t *testing.T) {
	p := NewPacer()
	start := time.Now()
	assert.Equal(t, 0.0, p.Progress())

	p.Start(start)
	p.Tick(start.Add(7 * time.Second)) // hold, 1s left
	assert.InDelta(t, 7.0/70.0, p.Progress(), 1e-9)

	p.Stop()
	assert.Equal(t, PhaseIdle, p.Phase())
	assert.Equal(t, 0, p.Cycle())
	assert.Equal(t, "Listo", p.Phase().String())
}
