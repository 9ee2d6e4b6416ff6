package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sadopc/calma/internal/contact"
	"github.com/sadopc/calma/internal/exercise"
	"github.com/sadopc/calma/internal/export"
	"github.com/sadopc/calma/internal/insights"
	"github.com/sadopc/calma/internal/mood"
	"github.com/sadopc/calma/internal/survey"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// parseEmotion accepts a label in any letter case.
func parseEmotion(s string) (mood.Emotion, error) {
	for _, e := range mood.Emotions {
		if strings.EqualFold(string(e), s) {
			return e, nil
		}
	}
	return mood.ParseEmotion(s)
}

func newCheckInCmd(e *env) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "checkin <emoción>",
		Short: "Registra la emoción del día (Bien, Tranquilo, Neutral, Ansioso, Triste)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			emotion, err := parseEmotion(args[0])
			if err != nil {
				return err
			}
			if date == "" {
				date = mood.Today(e.now())
			} else if _, err := time.Parse(mood.DateLayout, date); err != nil {
				return fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
			}

			if _, err := e.mlog.UpsertToday(cmd.Context(), emotion, date); err != nil {
				return fmt.Errorf("save check-in: %w", err)
			}
			e.log.Info("check-in saved", zap.String("date", date), zap.String("emotion", string(emotion)))
			fmt.Fprintf(out(cmd), "Registrado: %s %s (%s)\n", emotion.Emoji(), emotion, date)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "fecha del registro (YYYY-MM-DD), por defecto hoy")
	return cmd
}

func newHistoryCmd(e *env) *cobra.Command {
	var window int
	var asc bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Muestra el historial emocional",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries := e.mlog.LoadHistory(cmd.Context())
			if window > 0 {
				entries = mood.FilterByWindow(entries, window, e.now())
			}
			if asc {
				entries = mood.SortAscending(entries)
			} else {
				entries = mood.SortDescending(entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(out(cmd), "Sin registros.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, en := range entries {
				rows = append(rows, []string{en.Date, en.Emotion.Emoji() + " " + string(en.Emotion), strconv.Itoa(en.Value())})
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("Fecha", "Emoción", "Valor").
				Rows(rows...)
			fmt.Fprintln(out(cmd), t.String())
			return nil
		},
	}
	cmd.Flags().IntVar(&window, "window", 0, "solo los últimos N días (0 = todo)")
	cmd.Flags().BoolVar(&asc, "asc", false, "orden cronológico ascendente")
	return cmd
}

func newStatsCmd(e *env) *cobra.Command {
	var window int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Estadísticas y recomendación del periodo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if window <= 0 {
				window = e.cfg.Insights.WindowDays
			}
			history := e.mlog.LoadHistory(cmd.Context())
			in := insights.Analyze(history, window, e.now())
			ov := insights.Summarize(history)
			w := out(cmd)

			fmt.Fprintf(w, "Últimos %d días: %d registros\n", window, len(in.Entries))
			if in.Stats.HasData() {
				fmt.Fprintf(w, "Promedio:      %.2f (%s)\n", in.Stats.Average, mood.OrdinalToLabel(in.Stats.Average))
			}
			if in.Stats.Max != nil {
				fmt.Fprintf(w, "Mejor día:     %s %s\n", in.Stats.Max.Date, in.Stats.Max.Emotion)
			}
			if in.Stats.Min != nil {
				fmt.Fprintf(w, "Día más bajo:  %s %s\n", in.Stats.Min.Date, in.Stats.Min.Emotion)
			}
			fmt.Fprintf(w, "Días bajos:    %d\n", in.LowDays)
			if ov.HasAverage {
				fmt.Fprintf(w, "General:       %.2f %s, más frecuente %s\n", ov.Average, ov.Outlook, ov.MostFrequent)
			}

			rec := in.Recommendation
			fmt.Fprintf(w, "\n%s\n%s\n", rec.Title, rec.Message)
			if len(rec.ExerciseIDs) > 0 {
				fmt.Fprintf(w, "Ejercicios sugeridos: %s\n", strings.Join(exercise.Titles(rec.ExerciseIDs), ", "))
			}
			if rec.SuggestContact || ov.ShowAlert {
				fmt.Fprintln(w, "Considera hablar con tu persona de confianza: calma contact")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&window, "window", 0, "días a analizar (por defecto insights.window_days)")
	return cmd
}

func parseAnswers(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	values := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", survey.ErrInvalidAnswer, p)
		}
		values[i] = v
	}
	return values, nil
}

func newSurveyCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "survey <r1,r2,r3,r4,r5>",
		Short: "Calcula el resultado de la autoevaluación (respuestas de 0 a 4)",
		Long:  "Preguntas:\n" + numbered(survey.Questions) + "\nEscala: " + strings.Join(survey.ScaleLabels, ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseAnswers(args[0])
			if err != nil {
				return err
			}
			resp, err := survey.FromAnswers(values)
			if err != nil {
				return err
			}
			total, err := resp.TotalScore()
			if err != nil {
				return err
			}
			sev := insights.ClassifySurvey(resp.Answers())
			rec := insights.ForSeverity(sev)
			e.log.Debug("survey scored", zap.Int("total", total), zap.String("severity", string(sev)))

			w := out(cmd)
			fmt.Fprintf(w, "Puntaje: %d de %d (%s)\n", total, survey.MaxValue*len(survey.Questions), sev)
			fmt.Fprintf(w, "%s\n%s\n", rec.Title, rec.Message)
			fmt.Fprintf(w, "Te recomendamos: %s\n", strings.Join(exercise.Titles(rec.ExerciseIDs), ", "))
			if rec.Escalate {
				printHelpLine(cmd, e.helpLine())
			}
			return nil
		},
	}
}

func numbered(items []string) string {
	var b strings.Builder
	for i, s := range items {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
	}
	return b.String()
}

func printHelpLine(cmd *cobra.Command, h contact.HelpLine) {
	w := out(cmd)
	fmt.Fprintln(w, "\nAyuda urgente")
	fmt.Fprintf(w, "  Línea de ayuda: %s\n", h.Phone)
	fmt.Fprintf(w, "  WhatsApp:       %s\n", h.WhatsAppURI())
	if h.VideoURL != "" {
		fmt.Fprintf(w, "  Video:          %s\n", h.VideoURL)
	}
	if h.GuideURL != "" {
		fmt.Fprintf(w, "  Guía:           %s\n", h.GuideURL)
	}
}

func newExercisesCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercises",
		Short: "Lista los ejercicios y marca los completados",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			done := make(map[string]bool)
			for _, id := range e.mlog.LoadCompleted(ctx) {
				done[id] = true
			}
			w := out(cmd)
			mark := func(id string) string {
				if done[id] {
					return "✓"
				}
				return " "
			}
			for _, ex := range exercise.All() {
				fmt.Fprintf(w, "%s %-22s %s\n", mark(ex.ID), ex.ID, ex.Title)
			}
			for _, c := range e.mlog.LoadCustomExercises(ctx) {
				fmt.Fprintf(w, "%s %-22s %s (personal)\n", mark(c.ID), c.ID, c.Title)
			}
			return nil
		},
	}
	cmd.AddCommand(newExerciseShowCmd(e), newExerciseDoneCmd(e), newExerciseAddCmd(e))
	return cmd
}

func newExerciseShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Muestra los pasos de un ejercicio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, desc, steps, err := e.findExercise(cmd, args[0])
			if err != nil {
				return err
			}
			w := out(cmd)
			fmt.Fprintf(w, "%s\n%s\n\n", title, desc)
			for i, s := range steps {
				fmt.Fprintf(w, "%d. %s\n", i+1, s)
			}
			return nil
		},
	}
}

func (e *env) findExercise(cmd *cobra.Command, id string) (title, desc string, steps []string, err error) {
	if ex, lerr := exercise.Lookup(id); lerr == nil {
		return ex.Title, ex.Description, ex.Steps, nil
	}
	if c, ok := e.mlog.FindCustomExercise(cmd.Context(), id); ok {
		return c.Title, c.Description, c.Steps, nil
	}
	return "", "", nil, fmt.Errorf("%w: %q", exercise.ErrUnknownExercise, id)
}

func newExerciseDoneCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Marca un ejercicio como completado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _, _, err := e.findExercise(cmd, args[0])
			if err != nil {
				return err
			}
			if err := e.mlog.MarkExerciseCompleted(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("mark completed: %w", err)
			}
			fmt.Fprintf(out(cmd), "¡Ejercicio completado! %s\n", title)
			return nil
		},
	}
}

func newExerciseAddCmd(e *env) *cobra.Command {
	var title, desc string
	var steps []string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Crea un ejercicio personalizado",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := exercise.NewCustom(title, desc, steps, e.now())
			if err != nil {
				return err
			}
			if err := e.mlog.SaveCustomExercise(cmd.Context(), c); err != nil {
				return fmt.Errorf("save exercise: %w", err)
			}
			fmt.Fprintf(out(cmd), "Ejercicio guardado: %s (%s)\n", c.Title, c.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "título")
	cmd.Flags().StringVar(&desc, "description", "", "descripción")
	cmd.Flags().StringArrayVar(&steps, "step", nil, "paso (repetible)")
	return cmd
}

func newContactCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Muestra tu contacto de confianza",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, ok := e.mlog.LoadContact(cmd.Context())
			if !ok {
				fmt.Fprintln(out(cmd), "Aún no tienes un contacto de confianza. Usa: calma contact set <nombre> <teléfono>")
				return nil
			}
			fmt.Fprintf(out(cmd), "%s  %s\n", c.Name, c.Phone)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <nombre> <teléfono>",
		Short: "Guarda el contacto de confianza",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := contact.Contact{Name: args[0], Phone: args[1]}
			if err := e.mlog.SaveContact(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Contacto guardado: %s\n", c.Name)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Elimina el contacto de confianza",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := e.mlog.ClearContact(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "Contacto eliminado")
			return nil
		},
	}

	openCmd := func(use, short string, uri func(contact.Contact) string) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				c, ok := e.mlog.LoadContact(cmd.Context())
				if !ok {
					return contact.ErrIncomplete
				}
				return e.linkDispatcher().Open(cmd.Context(), uri(c))
			},
		}
	}

	cmd.AddCommand(set, clearCmd,
		openCmd("call", "Llama a tu contacto", contact.Contact.CallURI),
		openCmd("whatsapp", "Envía un WhatsApp a tu contacto", contact.Contact.WhatsAppURI),
	)
	return cmd
}

func newHelpLineCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "helpline [call|whatsapp|video|guide]",
		Short:     "Muestra o abre la línea de ayuda",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"call", "whatsapp", "video", "guide"},
		RunE: func(cmd *cobra.Command, args []string) error {
			h := e.helpLine()
			if len(args) == 0 {
				printHelpLine(cmd, h)
				return nil
			}
			var uri string
			switch args[0] {
			case "call":
				uri = h.CallURI()
			case "whatsapp":
				uri = h.WhatsAppURI()
			case "video":
				uri = h.VideoURL
			case "guide":
				uri = h.GuideURL
			default:
				return fmt.Errorf("unknown helpline action %q", args[0])
			}
			if uri == "" {
				return fmt.Errorf("helpline %s is not configured", args[0])
			}
			return e.linkDispatcher().Open(cmd.Context(), uri)
		},
	}
	return cmd
}

func newExportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:       "export <csv|json> [ruta]",
		Short:     "Exporta el historial emocional",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: export.Formats,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(args[0])
			var path string
			if len(args) == 2 {
				path = args[1]
			} else {
				dir, err := os.Getwd()
				if err != nil {
					return err
				}
				path = export.DefaultPath(dir, format, e.now())
			}

			entries := e.mlog.LoadHistory(cmd.Context())
			if err := export.ToFile(format, entries, path); err != nil {
				return err
			}
			e.log.Info("history exported", zap.String("format", format), zap.String("path", path), zap.Int("entries", len(entries)))
			fmt.Fprintf(out(cmd), "Exportado a %s (%d registros)\n", path, len(entries))
			return nil
		},
	}
}

var errNotConfirmed = errors.New("refusing to clear history without --yes")

func newClearCmd(e *env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Borra el historial emocional",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errNotConfirmed
			}
			if err := e.mlog.ClearAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "Historial borrado")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirma el borrado")
	return cmd
}
