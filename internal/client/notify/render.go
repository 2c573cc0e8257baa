package notify

import (
	"io"

	"github.com/fatih/color"
)

var palette = map[Severity]*color.Color{
	Primary:   color.New(color.FgHiBlue, color.Bold),
	Secondary: color.New(color.FgWhite),
	Success:   color.New(color.FgHiGreen, color.Bold),
	Danger:    color.New(color.FgHiRed, color.Bold),
	Warning:   color.New(color.FgHiYellow),
	Info:      color.New(color.FgHiCyan),
	Light:     color.New(color.FgHiWhite),
	Dark:      color.New(color.FgHiBlack, color.Bold),
}

var icons = map[Severity]string{
	Success: "✅",
	Danger:  "🚨",
	Warning: "⚠️ ",
	Info:    "ℹ️ ",
}

// Render writes n as a single coloured line.
func Render(w io.Writer, n Notification) error {
	c, ok := palette[n.Severity]
	if !ok {
		c = color.New(color.Reset)
	}

	prefix := icons[n.Severity]
	if prefix != "" {
		prefix += " "
	}

	_, err := c.Fprintln(w, prefix+n.Message)
	return err
}
