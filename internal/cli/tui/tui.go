package tui

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/GustavoCaso/expenselog/internal/cli"
	"github.com/GustavoCaso/expenselog/internal/expense"
)

type tuiCommand struct{}

func NewCommand() cli.Command {
	return tuiCommand{}
}

func (c tuiCommand) Description() string {
	return "Interactive terminal user interface to browse monthly spending"
}

func (c tuiCommand) SetFlags(*flag.FlagSet) {
}

type focusState int

const (
	focusedMain focusState = iota
	focusedDetail
)

const (
	numberOfPanels = 2
)

// keymap is shared by both views; enter switches between them.
type keymap struct {
	Toggle key.Binding
	Up     key.Binding
	Down   key.Binding
	Quit   key.Binding
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Quit}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Toggle}, {k.Quit}}
}

func newKeymap(toggleHelp string) keymap {
	return keymap{
		Toggle: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", toggleHelp)),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q/ctrl+c", "exit")),
	}
}

type model struct {
	reports []wrapper

	months      monthsTable
	focusReport focusReport
	help        help.Model

	monthKeys  keymap
	detailKeys keymap

	focusMode focusState

	width  int
	height int
}

func initialModel(expenses []expense.Expense, now time.Time, width int, height int) model {
	reports := generateReports(expenses, now)

	m := model{
		reports:   reports,
		focusMode: focusedMain,

		monthKeys:  newKeymap("show categories"),
		detailKeys: newKeymap("back to months"),

		months:      newMonthsTable(reports),
		focusReport: newFocusReport(reports[0], width/numberOfPanels, height/numberOfPanels),
		help:        help.New(),

		width:  width,
		height: height,
	}
	m.resize()

	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetWidth(msg.Width)
		m.SetHeight(msg.Height)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.monthKeys.Toggle):
			m.focusMode = m.focusModeToggle()
			return m, nil
		case key.Matches(msg, m.monthKeys.Up), key.Matches(msg, m.monthKeys.Down):
			if m.focusMode == focusedMain {
				m.months, cmd = m.months.Update(msg)
				m.focusReport = newFocusReport(m.reports[m.months.Cursor()], m.width/numberOfPanels, m.height/numberOfPanels)
			} else {
				m.focusReport, cmd = m.focusReport.Update(msg)
			}
		case key.Matches(msg, m.monthKeys.Quit):
			return m, tea.Quit
		}
	}

	m.resize()

	return m, cmd
}

func (m *model) resize() {
	m.months = m.months.Resize(m.width, m.height/numberOfPanels)
	m.focusReport = m.focusReport.UpdateDimensions(m.width/numberOfPanels, m.height/numberOfPanels)
}

func (m model) View() string {
	var main string
	var helpView string

	if m.focusMode == focusedMain {
		helpView = m.help.View(m.monthKeys)
		main = m.months.View()
	} else {
		helpView = m.help.View(m.detailKeys)
		main = m.focusReport.View()
	}

	main = lipgloss.JoinVertical(lipgloss.Top, main, helpView)

	return main
}

func (m model) focusModeToggle() focusState {
	switch m.focusMode {
	case focusedMain:
		return focusedDetail
	case focusedDetail:
		return focusedMain
	default:
		panic("invalid focus state")
	}
}

func (m *model) SetHeight(height int) {
	m.height = height
}

func (m *model) SetWidth(width int) {
	m.width = width
}

func (c tuiCommand) Run(ctx context.Context, env *cli.Env) error {
	w, h, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		return fmt.Errorf("failed to get terminal size: %w", err)
	}

	if len(os.Getenv("EXPENSELOG_TUI_DEBUG")) > 0 {
		f, logErr := tea.LogToFile("debug.log", "debug")
		if logErr != nil {
			return fmt.Errorf("failed to log to file: %w", logErr)
		}
		defer f.Close()
	}

	m := initialModel(env.Store.Load(ctx), env.Now(), w, h)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
