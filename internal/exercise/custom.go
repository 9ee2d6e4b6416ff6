package exercise

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var ErrInvalidExercise = errors.New("invalid exercise")

// Custom is an exercise written by the user. It is stored as a JSON array
// under the customExercises key.
type Custom struct {
	ID          string    `json:"id" validate:"required,uuid4"`
	Title       string    `json:"title" validate:"required,notblank"`
	Description string    `json:"description" validate:"required,notblank"`
	Steps       []string  `json:"steps" validate:"required,min=1,dive,required,notblank"`
	CreatedAt   time.Time `json:"createdAt" validate:"required"`
	Custom      bool      `json:"custom"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	if err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	return v
}

// NewCustom builds and validates a custom exercise with a fresh id.
func NewCustom(title, description string, steps []string, now time.Time) (Custom, error) {
	c := Custom{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Steps:       cleanSteps(steps),
		CreatedAt:   now.UTC(),
		Custom:      true,
	}
	if err := c.Validate(); err != nil {
		return Custom{}, err
	}
	return c, nil
}

// Validate checks that the title, the description and every step are set.
func (c Custom) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed %s", ErrInvalidExercise, verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidExercise, err)
	}
	return nil
}

// SplitSteps turns multi-line form input into steps, one per line.
func SplitSteps(text string) []string {
	return cleanSteps(strings.Split(text, "\n"))
}

// cleanSteps trims steps and drops trailing empty ones. Blank steps in the
// middle are kept so Validate can reject them.
func cleanSteps(steps []string) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		out = append(out, strings.TrimSpace(s))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}
