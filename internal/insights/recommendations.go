package insights

// Recommendation is a fixed payload shown for a tier or severity.
type Recommendation struct {
	Title          string
	Message        string
	ExerciseIDs    []string
	SuggestContact bool
	Escalate       bool
}

var tierPayloads = map[Tier]Recommendation{
	UrgentPattern: {
		Title:          "Varios días bajos",
		Message:        "Has tenido varios días bajos. Te recomendamos practicar respiración guiada o grounding. También podrías contactar a tu persona de confianza.",
		ExerciseIDs:    []string{"respiracion", "grounding"},
		SuggestContact: true,
	},
	StablePositive: {
		Title:       "Semana estable",
		Message:     "Tu semana ha sido emocionalmente estable. ¡Sigue con tus buenos hábitos!",
		ExerciseIDs: []string{"respiracion", "grounding", "afirmaciones", "escritura", "escucha", "ayuda", "afirmacionesAnsiedad"},
	},
	LowAverage: {
		Title:       "Promedio bajo",
		Message:     "Tu promedio emocional está algo bajo. Prueba con afirmaciones o escritura emocional.",
		ExerciseIDs: []string{"afirmaciones", "escritura"},
	},
	NeutralTier: {
		Title:       "Estado intermedio",
		Message:     "Tu estado emocional es intermedio. Revisa ejercicios si necesitas apoyo extra.",
		ExerciseIDs: []string{"respiracion", "grounding", "afirmaciones"},
	},
}

var severityPayloads = map[Severity]Recommendation{
	Leve: {
		Title:       "Estás bien por ahora",
		Message:     "Parece que hoy estás emocionalmente estable. ¡Qué bueno saberlo!",
		ExerciseIDs: []string{"respiracion", "afirmaciones"},
	},
	Moderado: {
		Title:       "Te estás cuidando",
		Message:     "Sabemos que no siempre es fácil. Estás haciendo lo correcto al cuidarte.",
		ExerciseIDs: []string{"grounding", "escritura"},
	},
	Alto: {
		Title:       "No estás solo/a",
		Message:     "Estás pasando por algo difícil. El hecho de que estés aquí ya es un paso importante.",
		ExerciseIDs: []string{"respiracion", "escucha", "ayuda"},
		Escalate:    true,
	},
}

// ForTier returns the payload for t. Unknown tiers get the neutral payload.
func ForTier(t Tier) Recommendation {
	if r, ok := tierPayloads[t]; ok {
		return r.copy()
	}
	return tierPayloads[NeutralTier].copy()
}

// ForSeverity returns the payload for s. Any unrecognized level gets the
// alto payload.
func ForSeverity(s Severity) Recommendation {
	if r, ok := severityPayloads[s]; ok {
		return r.copy()
	}
	return severityPayloads[Alto].copy()
}

func (r Recommendation) copy() Recommendation {
	r.ExerciseIDs = append([]string(nil), r.ExerciseIDs...)
	return r
}
