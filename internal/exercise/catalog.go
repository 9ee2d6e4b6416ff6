// Package exercise holds the guided self-care exercises: the fixed catalog,
// user-authored custom exercises and the breathing pacer.
package exercise

import "errors"

var ErrUnknownExercise = errors.New("unknown exercise")

// Exercise is one entry of the fixed catalog.
type Exercise struct {
	ID          string
	Title       string
	Description string
	Steps       []string
	HasAudio    bool
}

// Catalog ids.
const (
	Respiracion          = "respiracion"
	Grounding            = "grounding"
	Afirmaciones         = "afirmaciones"
	Escritura            = "escritura"
	Escucha              = "escucha"
	Ayuda                = "ayuda"
	AfirmacionesAnsiedad = "afirmacionesAnsiedad"
)

var catalog = []Exercise{
	{
		ID:          Respiracion,
		Title:       "Respiración guiada",
		Description: "Esta técnica te ayudará a calmar tu sistema nervioso mediante respiraciones controladas.",
		Steps: []string{
			"Siéntate en un lugar tranquilo.",
			"Inhala por la nariz durante 4 segundos.",
			"Sostén el aire durante 4 segundos.",
			"Exhala lentamente por la boca durante 6 segundos.",
			"Repite por al menos 5 ciclos.",
		},
		HasAudio: true,
	},
	{
		ID:          Grounding,
		Title:       "Grounding 5-4-3-2-1",
		Description: "Una técnica para anclarte al presente usando tus sentidos.",
		Steps: []string{
			"Mira y nombra 5 cosas que puedes ver.",
			"Toca 4 objetos cercanos y describe su textura.",
			"Escucha 3 sonidos distintos (cercanos o lejanos).",
			"Detecta 2 olores e intenta nombrarlos.",
			"Piensa en 1 cosa que puedas saborear o por la que estás agradecido.",
		},
	},
	{
		ID:          Afirmaciones,
		Title:       "Afirmaciones positivas",
		Description: "Repetir frases positivas te ayuda a redirigir tu pensamiento.",
		Steps: []string{
			"Cierra los ojos y respira profundamente.",
			`Repite frases como: "Estoy haciendo lo mejor que puedo", "Esto también pasará", "Soy más fuerte de lo que creo".`,
			"Puedes escribir tus propias afirmaciones y leerlas en voz alta.",
		},
		HasAudio: true,
	},
	{
		ID:          Escritura,
		Title:       "Escritura emocional",
		Description: "Escribir tus pensamientos y emociones ayuda a procesarlos con claridad.",
		Steps: []string{
			"Toma papel o abre una nota digital.",
			"Escribe cómo te sientes sin juzgarte.",
			"No busques escribir bonito, solo sé honesto.",
			"Al final, agradece por darte este espacio.",
		},
	},
	{
		ID:          Escucha,
		Title:       "Escucha consciente (audio)",
		Description: "Escucha sonidos relajantes y enfócate en el presente.",
		Steps: []string{
			"Ponte audífonos en un lugar tranquilo.",
			"Escoge un audio relajante de tu preferencia.",
			"Cierra los ojos y enfócate solo en lo que escuchas.",
			"Respira profundamente mientras lo haces.",
			"Hazlo por al menos 5 minutos.",
		},
		HasAudio: true,
	},
	{
		ID:          Ayuda,
		Title:       "Contacto con ayuda urgente",
		Description: "Si te sientes en riesgo o necesitas ayuda urgente, estas opciones pueden asistirte rápidamente.",
		Steps: []string{
			"Llama a una línea de apoyo emocional de tu país.",
			"Habla con alguien de confianza que pueda acompañarte.",
			"Respira profundo. Buscar ayuda es un acto de fortaleza.",
		},
	},
	{
		ID:          AfirmacionesAnsiedad,
		Title:       "Afirmaciones para ansiedad",
		Description: "Una guía auditiva para calmar tu mente y reenfocar tus pensamientos en momentos de ansiedad.",
		Steps: []string{
			"Busca un lugar tranquilo y sin distracciones.",
			"Colócate cómodo y cierra los ojos si lo deseas.",
			"Escucha el audio con atención y respira profundo.",
			"Permite que cada afirmación entre en tu mente sin juzgar.",
			"Repite este ejercicio cuando lo necesites.",
		},
		HasAudio: true,
	},
}

// Older builds recorded completions under these ids.
var legacyTitles = map[string]string{
	"journaling": "Escritura emocional",
	"audio":      "Escucha consciente",
}

// All returns the catalog in display order.
func All() []Exercise {
	out := make([]Exercise, len(catalog))
	for i, e := range catalog {
		out[i] = e.clone()
	}
	return out
}

func Lookup(id string) (Exercise, error) {
	for _, e := range catalog {
		if e.ID == id {
			return e.clone(), nil
		}
	}
	return Exercise{}, ErrUnknownExercise
}

// IsCatalogID reports whether id names a fixed exercise.
func IsCatalogID(id string) bool {
	_, err := Lookup(id)
	return err == nil
}

// Title is the display name for a completed exercise id. Unknown ids are
// shown as-is.
func Title(id string) string {
	if e, err := Lookup(id); err == nil {
		return e.Title
	}
	if t, ok := legacyTitles[id]; ok {
		return t
	}
	return id
}

// Titles maps ids through Title, preserving order.
func Titles(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = Title(id)
	}
	return out
}

func (e Exercise) clone() Exercise {
	e.Steps = append([]string(nil), e.Steps...)
	return e
}
