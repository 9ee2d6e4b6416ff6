package contact

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"go.uber.org/zap"
)

// HelpLine is the set of emergency resources shown when the survey score
// escalates or the user asks for help.
type HelpLine struct {
	Phone    string
	WhatsApp string
	Message  string
	VideoURL string
	GuideURL string
}

// DefaultHelpLine is Línea de la Vida (Mexico) plus a guided breathing video
// and the WHO psychological first aid guide.
func DefaultHelpLine() HelpLine {
	return HelpLine{
		Phone:    "8009112000",
		WhatsApp: "525500000000",
		Message:  "Hola, necesito hablar con alguien. Estoy pasando por un momento difícil.",
		VideoURL: "https://www.youtube.com/watch?v=inpok4MKVLM",
		GuideURL: "https://www.who.int/publications/i/item/9789240030787",
	}
}

func (h HelpLine) CallURI() string     { return CallURI(h.Phone) }
func (h HelpLine) WhatsAppURI() string { return WhatsAppURI(h.WhatsApp, h.Message) }

// Dispatcher hands a tel:, https: or wa.me link to whatever can open it.
type Dispatcher interface {
	Open(ctx context.Context, uri string) error
}

// LogDispatcher only records the link. It is used when no opener is
// available and in tests.
type LogDispatcher struct {
	Log *zap.Logger
}

func (d LogDispatcher) Open(_ context.Context, uri string) error {
	d.Log.Info("open link", zap.String("uri", uri))
	return nil
}

// ExecDispatcher opens links with the desktop's URL handler.
type ExecDispatcher struct {
	Log *zap.Logger
	// Command overrides the opener; empty picks one for the OS.
	Command string
}

func (d ExecDispatcher) Open(ctx context.Context, uri string) error {
	name := d.Command
	if name == "" {
		name = defaultOpener()
	}
	if err := exec.CommandContext(ctx, name, uri).Start(); err != nil {
		d.Log.Warn("open link failed", zap.String("uri", uri), zap.String("opener", name), zap.Error(err))
		return fmt.Errorf("open %s: %w", uri, err)
	}
	d.Log.Info("open link", zap.String("uri", uri), zap.String("opener", name))
	return nil
}

func defaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}
