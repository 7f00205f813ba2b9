package overlay

// Composer renders overlay views. It holds only layout options and is safe
// to share; Render does not modify the receiver.
type Composer struct {
	layout LayoutOptions
}

// NewComposer creates a Composer laying out task patterns with opts.
func NewComposer(opts LayoutOptions) *Composer {
	return &Composer{layout: opts}
}

// Layout returns the pattern layout options.
func (c *Composer) Layout() LayoutOptions {
	return c.layout
}

// Render projects s into a view. An error connection wins over everything
// else; a connecting session or a missing snapshot shows the loading view.
func (c *Composer) Render(s State) View {
	switch {
	case s.Conn == ConnError:
		return View{
			Kind:  ViewError,
			Error: &ErrorPanel{Message: DisconnectedText, Retry: RetryText},
		}
	case s.Conn == ConnConnecting || s.Static == nil || s.Dynamic == nil:
		return View{Kind: ViewLoading, Loading: LoadingText}
	}

	st, dyn := s.Static, s.Dynamic
	v := View{
		Kind:  ViewConnected,
		Step:  StepCounter{Current: dyn.Step, Last: st.LastStep()},
		Teams: BuildTeams(st.Teams, dyn.Scores),
		Tasks: BuildTaskCatalog(dyn.Tasks, s.Selection.TaskName),
	}

	if task := v.Tasks.Selected; task != nil {
		v.Detail = &TaskDetail{
			Task:       *task,
			Layout:     LayoutPattern(task.Requirements, c.layout),
			BlockLabel: SimplePlural(len(task.Requirements), "block"),
		}
	}

	if hover := s.Selection.Hover; hover != nil {
		v.Hover = &HoverPanel{
			Pos:   *hover,
			Facts: InspectAll(dyn, *hover),
		}
	}

	return v
}

// Render renders s with the default layout options.
func Render(s State) View {
	return NewComposer(DefaultLayoutOptions()).Render(s)
}
