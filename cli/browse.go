// cli/browse.go
// Package cli holds the interactive terminal browser for the task catalogue.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/mteb/internal/appconfig"
	"github.com/mwiater/mteb/internal/datasets"
	"github.com/mwiater/mteb/internal/logging"
	"github.com/mwiater/mteb/internal/report"
	"github.com/mwiater/mteb/internal/sourcefactory"
	"github.com/mwiater/mteb/internal/tasks"
	"github.com/mwiater/mteb/internal/util"
)

type viewState int

const (
	viewTaskList viewState = iota
	viewLoading
	viewSummary
)

var (
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
	headerStyle = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
)

// model is the Bubble Tea model behind 'mteb browse'.
type model struct {
	ctx       context.Context
	src       datasets.Source
	seed      int64
	tasks     []tasks.Task
	taskList  list.Model
	spinner   spinner.Model
	viewport  viewport.Model
	state     viewState
	selected  tasks.Task
	summary   *report.TaskSummary
	loadStart time.Time
	width     int
	height    int
	err       error
}

// item is one task in the list.
type item struct {
	task tasks.Task
}

// Title returns the task name.
func (i item) Title() string { return i.task.Metadata().Name }

// Description returns the type, category and main score.
func (i item) Description() string {
	meta := i.task.Metadata()
	desc := fmt.Sprintf("%s | %s | %s", meta.Type, meta.Category, meta.MainScore)
	if meta.IsSuperseded() {
		desc += " | superseded"
	}
	return desc
}

// FilterValue returns the task name, used for filtering.
func (i item) FilterValue() string { return i.task.Metadata().Name }

type summaryReadyMsg struct {
	summary *report.TaskSummary
}

type loadErr struct{ error }

func newModel(ctx context.Context, ts []tasks.Task, src datasets.Source, seed int64) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	items := make([]list.Item, len(ts))
	for i, t := range ts {
		items[i] = item{task: t}
	}
	taskList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	taskList.Title = "Benchmark Tasks"

	return &model{
		ctx:      ctx,
		src:      src,
		seed:     seed,
		tasks:    ts,
		taskList: taskList,
		spinner:  s,
		viewport: viewport.New(80, 20),
		state:    viewTaskList,
	}
}

// loadTaskCmd loads the task's data off the UI goroutine and summarizes it.
func loadTaskCmd(ctx context.Context, task tasks.Task, src datasets.Source) tea.Cmd {
	return func() tea.Msg {
		if err := task.LoadData(ctx, src); err != nil {
			return loadErr{err}
		}
		sum, err := report.Summarize(task)
		if err != nil {
			return loadErr{err}
		}
		return summaryReadyMsg{summary: sum}
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		filtering := m.state == viewTaskList && m.taskList.FilterState() == list.Filtering
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if !filtering {
				return m, tea.Quit
			}
		case "esc":
			if m.state == viewSummary || m.err != nil {
				m.state = viewTaskList
				m.err = nil
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.taskList.SetSize(msg.Width/2, msg.Height-2)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6
		return m, nil

	case summaryReadyMsg:
		m.summary = msg.summary
		m.state = viewSummary
		m.viewport.SetContent(summaryText(msg.summary))
		m.viewport.GotoTop()
		logging.LogEvent("browse: loaded %s in %s", msg.summary.Task, time.Since(m.loadStart).Round(time.Millisecond))
		return m, nil

	case loadErr:
		m.state = viewTaskList
		m.err = msg.error
		return m, nil
	}

	switch m.state {
	case viewTaskList:
		if m.err != nil {
			return m, nil
		}
		filtering := m.taskList.FilterState() == list.Filtering
		m.taskList, cmd = m.taskList.Update(msg)
		cmds = append(cmds, cmd)
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" && !filtering {
			if selected, ok := m.taskList.SelectedItem().(item); ok {
				m.selected = selected.task
				m.selected.SetSeed(m.seed)
				m.state = viewLoading
				m.loadStart = time.Now()
				cmds = append(cmds, m.spinner.Tick, loadTaskCmd(m.ctx, m.selected, m.src))
			}
		}

	case viewLoading:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case viewSummary:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the application's UI based on the current state of the model.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" + helpStyle.Render("  (esc to go back, ctrl+c to quit)")
	}

	switch m.state {
	case viewTaskList:
		detail := ""
		if selected, ok := m.taskList.SelectedItem().(item); ok {
			detail = paneStyle.Width(m.width/2 - 4).Render(metadataText(selected.task, m.width/2-8))
		}
		help := helpStyle.Render("enter: load  /: filter  q: quit")
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, m.taskList.View(), detail),
			help)

	case viewLoading:
		timer := fmt.Sprintf("%.1f", time.Since(m.loadStart).Seconds())
		return fmt.Sprintf("\n  %s Loading %s... %ss\n", m.spinner.View(), m.selected.Metadata().Name, timer)

	case viewSummary:
		header := headerStyle.Render(m.summary.Task)
		help := helpStyle.Render(" (esc to go back, q to quit)")
		return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), help)

	default:
		return "Unknown state"
	}
}

// metadataText describes a task for the side pane.
func metadataText(task tasks.Task, width int) string {
	meta := task.Metadata()
	var b strings.Builder
	line := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(label+":"), value)
	}
	b.WriteString(labelStyle.Render(meta.Name) + "\n\n")
	if width > 10 {
		b.WriteString(util.Wrap(meta.Description, width) + "\n\n")
	} else {
		b.WriteString(util.FirstLine(meta.Description) + "\n\n")
	}
	line("Type", string(meta.Type))
	line("Category", string(meta.Category))
	line("Main score", meta.MainScore)
	line("Dataset", meta.Dataset.Path)
	line("Revision", util.Truncate(meta.Dataset.Revision, 12))
	line("Splits", strings.Join(meta.EvalSplits, ", "))
	langs := meta.Languages()
	if len(langs) > 6 {
		line("Languages", fmt.Sprintf("%s and %d more", strings.Join(langs[:6], ", "), len(langs)-6))
	} else {
		line("Languages", strings.Join(langs, ", "))
	}
	line("Superseded by", meta.SupersededBy)
	line("Reference", meta.Reference)
	return strings.TrimRight(b.String(), "\n")
}

// summaryText renders a loaded task's splits for the viewport.
func summaryText(sum *report.TaskSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Type: %s   Main score: %s\n", sum.Type, sum.MainScore)
	fmt.Fprintf(&b, "Dataset: %s@%s\n\n", sum.Dataset, sum.Revision)
	fmt.Fprintln(&b, "Splits:")
	for _, sp := range sum.Splits {
		name := sp.Split
		if sp.Scope != "" {
			name = sp.Scope + "/" + sp.Split
		}
		switch {
		case sp.Queries > 0 || sp.Documents > 0:
			fmt.Fprintf(&b, "  %-28s queries=%d documents=%d judgments=%d\n", name, sp.Queries, sp.Documents, sp.Judgments)
		case len(sp.Labels) > 0:
			fmt.Fprintf(&b, "  %-28s rows=%d labels=%d\n", name, sp.Rows, len(sp.Labels))
		default:
			fmt.Fprintf(&b, "  %-28s rows=%d\n", name, sp.Rows)
		}
	}
	return b.String()
}

// StartBrowser runs the interactive task browser until the user quits.
func StartBrowser(ctx context.Context, cfg *appconfig.Config, ts []tasks.Task) error {
	if cfg == nil {
		return fmt.Errorf("failed to start: configuration is not loaded")
	}
	src, err := sourcefactory.NewSource(cfg)
	if err != nil {
		return fmt.Errorf("dataset source: %w", err)
	}

	m := newModel(ctx, ts, src, cfg.Seed)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running browser: %w", err)
	}
	return nil
}
