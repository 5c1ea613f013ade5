package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/dusk/internal/application/port"
)

// RenderTransitions renders journal entries newest first.
func (t *Theme) RenderTransitions(transitions []port.Transition) string {
	if len(transitions) == 0 {
		return t.Subtle.Render("no transitions recorded yet") + "\n"
	}

	var b strings.Builder
	for _, tr := range transitions {
		fmt.Fprintf(&b, "%s  %s  %s %s\n",
			t.Subtle.Render(tr.At.Format(time.DateTime)),
			t.ModeBadge(tr.Dark),
			tr.Environment,
			t.Subtle.Render("via "+tr.Source),
		)
	}
	return b.String()
}
