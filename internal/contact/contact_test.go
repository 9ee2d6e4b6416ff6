package contact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		contact Contact
		want    error
	}{
		{"valid 10 digits", Contact{"Ana", "5512345678"}, nil},
		{"valid 15 digits", Contact{"Ana", "123456789012345"}, nil},
		{"missing name", Contact{"", "5512345678"}, ErrIncomplete},
		{"missing phone", Contact{"Ana", ""}, ErrIncomplete},
		{"both missing", Contact{}, ErrIncomplete},
		{"too short", Contact{"Ana", "123456789"}, ErrInvalidPhone},
		{"too long", Contact{"Ana", "1234567890123456"}, ErrInvalidPhone},
		{"plus sign", Contact{"Ana", "+525512345678"}, ErrInvalidPhone},
		{"spaces", Contact{"Ana", "55 1234 5678"}, ErrInvalidPhone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.contact.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewValidatorRegistersPhone(t *testing.T) {
	require.NotPanics(t, func() { newValidator() })
	v := newValidator()
	assert.NoError(t, v.Var("5512345678", "phone"))
	assert.Error(t, v.Var("55-1234", "phone"))
}

func TestEmpty(t *testing.T) {
	assert.True(t, Contact{}.Empty())
	assert.False(t, Contact{Name: "Ana"}.Empty())
}

func TestURIs(t *testing.T) {
	c := Contact{Name: "Ana", Phone: "5512345678"}
	assert.Equal(t, "tel:5512345678", c.CallURI())

	wa := c.WhatsAppURI()
	assert.Contains(t, wa, "https://wa.me/5512345678?text=Hola%20Ana%2C%20necesito%20hablar%20contigo.")
	assert.NotContains(t, wa, "+")

	assert.Equal(t, "https://wa.me/123", WhatsAppURI("123", ""))
}

func TestDefaultHelpLine(t *testing.T) {
	h := DefaultHelpLine()
	assert.Equal(t, "tel:8009112000", h.CallURI())
	assert.Contains(t, h.WhatsAppURI(), "https://wa.me/525500000000?text=Hola%2C%20necesito%20hablar%20con%20alguien.")
	assert.Equal(t, "https://www.youtube.com/watch?v=inpok4MKVLM", h.VideoURL)
}

func TestLogDispatcher(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var d Dispatcher = LogDispatcher{Log: zap.New(core)}

	require.NoError(t, d.Open(context.Background(), "tel:8009112000"))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "open link", entry.Message)
	assert.Equal(t, "tel:8009112000", entry.ContextMap()["uri"])
}

func TestExecDispatcherMissingOpener(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	d := ExecDispatcher{Log: zap.New(core), Command: "/nonexistent/calma-opener"}

	err := d.Open(context.Background(), "tel:1")
	assert.Error(t, err)
	assert.Equal(t, 1, logs.Len())
}
