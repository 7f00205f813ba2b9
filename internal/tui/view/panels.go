package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/gridwatch/internal/overlay"
)

const appTitle = "gridwatch"

func (r *renderer) loading(text string) string {
	return r.box(r.styles.Muted.Render(r.fit(text)))
}

func (r *renderer) errorPanel(p *overlay.ErrorPanel) string {
	if p == nil {
		p = &overlay.ErrorPanel{Message: overlay.DisconnectedText, Retry: overlay.RetryText}
	}
	return r.styles.ErrorBox.Render(
		r.styles.Error.Render(r.fit(p.Message)) + "\n\n" +
			r.styles.Button.Render(r.fit("[r] "+p.Retry)),
	)
}

func (r *renderer) header(step overlay.StepCounter) string {
	return r.styles.Title.Render(appTitle) + "  " + r.styles.Text.Render(step.Label())
}

// teams renders the team badges on one line, in the order given.
func (r *renderer) teams(teams []overlay.TeamSummary) string {
	if len(teams) == 0 {
		return r.box(r.styles.Muted.Render("no teams"))
	}
	badges := make([]string, 0, len(teams))
	for _, t := range teams {
		badges = append(badges, r.styles.Team(t.ColorIndex).Render(t.Label()))
	}
	return r.box(strings.Join(badges, " "))
}

func (r *renderer) tasks(cat overlay.TaskCatalog) string {
	selected := ""
	if cat.Selected != nil {
		selected = cat.Selected.Name
	}

	lines := make([]string, 0, len(cat.Options)+1)
	summary := r.styles.Summary
	if selected == "" {
		summary = r.styles.OptionSelected
	}
	lines = append(lines, summary.Render(r.fit(cat.SummaryLabel)))

	// Only the first option of a duplicated name is highlighted.
	highlighted := false
	for _, opt := range cat.Options {
		style := r.styles.Option
		if !highlighted && opt.Value == selected && selected != "" {
			style = r.styles.OptionSelected
			highlighted = true
		}
		lines = append(lines, style.Render(r.fit(opt.Label)))
	}
	return r.box(lines...)
}

func (r *renderer) detail(d *overlay.TaskDetail) string {
	lines := []string{
		r.styles.Title.Render(r.fit(d.Task.Name)),
		r.styles.Label.Render(r.fit(overlay.TaskLabel(d.Task))),
		r.styles.Text.Render(d.BlockLabel),
	}

	if art := r.pattern(d); art != "" {
		lines = append(lines, "", art)
	}
	return r.box(lines...)
}

// pattern rasterizes the task requirements. The art is centered in the
// pattern column.
func (r *renderer) pattern(d *overlay.TaskDetail) string {
	surface := r.opts.Surface
	if surface == nil {
		return ""
	}
	surface.Draw(d.Layout, r.opts.Static, d.Task.Requirements, r.opts.Drawer)

	cols := r.opts.PatternColumns
	if w := r.innerWidth(); w > 0 {
		cols = min(cols, w)
	}
	art := surface.Terminal(cols)
	if art == "" {
		return ""
	}
	return lipgloss.PlaceHorizontal(cols, lipgloss.Center, art)
}

func (r *renderer) hover(h *overlay.HoverPanel) string {
	if len(h.Facts) == 0 {
		return r.box(r.styles.Muted.Render(r.fit("nothing here")))
	}
	lines := make([]string, 0, len(h.Facts))
	for _, f := range h.Facts {
		lines = append(lines, r.fact(f))
	}
	return r.box(lines...)
}

// fact highlights the "key:" prefix of a fact.
func (r *renderer) fact(f overlay.Fact) string {
	text := r.fit(f.Text)
	key, rest, ok := strings.Cut(text, ":")
	if !ok || f.Kind == overlay.FactPosition {
		return r.styles.Text.Render(text)
	}
	return r.styles.FactKey.Render(key+":") + r.styles.Text.Render(rest)
}
