package controller

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "entfix.dev/pkg/entfix/internal/model"
)

// TUI extends SimpleUI with an interactive, scrollable report view. Progress
// output during a run stays line-oriented either way; only the view command
// benefits from paging.
type TUI struct {
	*SimpleUI
	cmd *cobra.Command
}

// NewTUI creates a TUI wrapping the simple line-oriented output.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd), cmd: cmd}
}

// NewUI picks the report display implementation: interactive when stdout is
// a terminal, plain otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// DisplayReports shows the saved runs in a scrollable pager.
func (t *TUI) DisplayReports(ctx context.Context, runs []m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(runs) == 0 {
		return t.SimpleUI.DisplayReports(ctx, runs)
	}

	model := newReportModel(fmt.Sprintf("entfix - %d migration run(s)", len(runs)), renderRuns(runs))

	program := tea.NewProgram(model, tea.WithOutput(t.cmd.OutOrStdout()), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("report view: %w", err)
	}

	return nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

const chromeLines = 2 // title + help line

// reportModel is the Bubble Tea model backing the report pager.
type reportModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

func newReportModel(title, content string) reportModel {
	return reportModel{title: title, content: content}
}

// Init implements tea.Model.
func (rm reportModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (rm reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return rm, tea.Quit
		}

	case tea.WindowSizeMsg:
		height := msg.Height - chromeLines
		if height < 1 {
			height = 1
		}

		if !rm.ready {
			rm.viewport = viewport.New(msg.Width, height)
			rm.viewport.SetContent(rm.content)
			rm.ready = true
		} else {
			rm.viewport.Width = msg.Width
			rm.viewport.Height = height
		}
	}

	var cmd tea.Cmd
	rm.viewport, cmd = rm.viewport.Update(msg)

	return rm, cmd
}

// View implements tea.Model.
func (rm reportModel) View() string {
	if !rm.ready {
		return "loading reports..."
	}

	return titleStyle.Render(rm.title) + "\n" +
		rm.viewport.View() + "\n" +
		helpStyle.Render("up/down to scroll - q to quit")
}
