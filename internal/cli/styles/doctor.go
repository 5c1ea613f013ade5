package styles

import (
	"fmt"
	"strings"
)

// DoctorCheck is one tooling check result.
type DoctorCheck struct {
	Name    string
	OK      bool
	Detail  string
	Advice  string
	Skipped bool
}

// DoctorReport is the full diagnosis for the classified environment.
type DoctorReport struct {
	Environment string
	Command     string
	Checks      []DoctorCheck
}

// OverallOK reports whether every non-skipped check passed.
func (r DoctorReport) OverallOK() bool {
	for _, c := range r.Checks {
		if !c.Skipped && !c.OK {
			return false
		}
	}
	return true
}

// RenderDoctorReport renders a doctor report for terminal output.
func (t *Theme) RenderDoctorReport(r DoctorReport) string {
	var b strings.Builder

	b.WriteString(t.Title.Render("dusk doctor"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Environment: %s\n", r.Environment)
	if r.Command != "" {
		fmt.Fprintf(&b, "Probe:       %s\n", t.Subtle.Render(r.Command))
	}
	b.WriteString("\n")

	for _, c := range r.Checks {
		marker := t.Success.Render("ok")
		switch {
		case c.Skipped:
			marker = t.Subtle.Render("--")
		case !c.OK:
			marker = t.ErrStyle.Render("!!")
		}
		fmt.Fprintf(&b, " %s %s", marker, c.Name)
		if c.Detail != "" {
			fmt.Fprintf(&b, " %s", t.Subtle.Render("("+c.Detail+")"))
		}
		b.WriteString("\n")
		if !c.OK && !c.Skipped && c.Advice != "" {
			fmt.Fprintf(&b, "    %s\n", t.Warning.Render(c.Advice))
		}
	}

	b.WriteString("\n")
	if r.OverallOK() {
		b.WriteString(t.Success.Render("All checks passed."))
	} else {
		b.WriteString(t.ErrStyle.Render("Some checks failed."))
	}
	b.WriteString("\n")

	return b.String()
}
