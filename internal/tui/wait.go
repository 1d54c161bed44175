package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handleui/shimmer"
)

const shimmerColor = "#585858"

// WaitModel is a single shimmering status line shown while a request is
// in flight. It never reads keyboard input; Ctrl+C reaches the process
// signal handler instead.
type WaitModel struct {
	shimmer shimmer.Model
	done    bool
}

// waitDoneMsg stops the indicator.
type waitDoneMsg struct{}

// NewWaitModel creates an indicator showing text.
func NewWaitModel(text string) WaitModel {
	return WaitModel{shimmer: shimmer.New(text, shimmerColor)}
}

// Init starts the shimmer animation.
func (m WaitModel) Init() tea.Cmd {
	return m.shimmer.Init()
}

// Update advances the animation until the request finishes.
func (m WaitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case waitDoneMsg:
		m.done = true
		return m, tea.Quit

	case shimmer.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.shimmer, cmd = m.shimmer.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the status line, or nothing once done so the line is
// cleared before the solution is printed.
func (m WaitModel) View() string {
	if m.done {
		return ""
	}
	return MutedStyle.Render("· ") + m.shimmer.View()
}

// RunWithIndicator calls fn while a WaitModel animates on w. The indicator
// is cosmetic: if it fails to start, fn still runs to completion and its
// result is returned unchanged.
func RunWithIndicator[T any](ctx context.Context, w io.Writer, text string, fn func(context.Context) (T, error)) (T, error) {
	program := tea.NewProgram(NewWaitModel(text),
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(w),
		tea.WithoutSignalHandler(),
	)

	var (
		result T
		err    error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		result, err = fn(ctx)
		program.Send(waitDoneMsg{})
	}()

	_, _ = program.Run()
	<-done
	return result, err
}
