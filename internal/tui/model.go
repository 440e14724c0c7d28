package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/nominamx/nomina/internal/calculation"
	"github.com/nominamx/nomina/internal/config"
	"github.com/nominamx/nomina/internal/domain"
)

// Model is the payroll-run browser: an employee list on the left and the
// selected employee's payslip breakdown on the right.
type Model struct {
	inputPath      string
	regulatoryPath string

	list     list.Model
	viewport viewport.Model
	run      *domain.PayrollRunResult

	width  int
	height int
	ready  bool

	err error
}

type employeeItem struct {
	result domain.PayrollResult
}

func (i employeeItem) Title() string { return i.result.EmployeeName }
func (i employeeItem) Description() string {
	return fmt.Sprintf("net %s", i.result.Totals.Net.StringFixed(2))
}
func (i employeeItem) FilterValue() string { return i.result.EmployeeName }

// NewModel creates a browser for the given input file. regulatoryPath
// may be empty, in which case the compiled-in law-year defaults apply.
func NewModel(inputPath, regulatoryPath string) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Employees"
	l.SetShowStatusBar(false)

	return Model{
		inputPath:      inputPath,
		regulatoryPath: regulatoryPath,
		list:           l,
		viewport:       viewport.New(0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return runPayrollCmd(m.inputPath, m.regulatoryPath)
}

// runPayrollCmd loads the input and regulatory files and executes the
// payroll run off the UI loop.
func runPayrollCmd(inputPath, regulatoryPath string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()

		reg := domain.NewRegulatoryConfig2024()
		if regulatoryPath != "" {
			loaded, err := parser.LoadRegulatoryFromFile(regulatoryPath)
			if err != nil {
				return ErrorMsg{Err: err}
			}
			reg = loaded
		}

		input, err := parser.LoadPayrollInputFromFile(inputPath)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		engine := calculation.NewPayrollEngine(reg, input.Company.RiskPremiumPct)
		run, err := engine.RunAll(input)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return RunCompletedMsg{Run: run}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case RunCompletedMsg:
		m.run = msg.Run
		items := make([]list.Item, 0, len(msg.Run.Results))
		for _, r := range msg.Run.Results {
			items = append(items, employeeItem{result: r})
		}
		m.list.SetItems(items)
		m.ready = true
		m.refreshDetail()
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	before := m.list.Index()
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	if m.list.Index() != before {
		m.refreshDetail()
	}
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) layout() {
	listWidth := m.width / 3
	m.list.SetSize(listWidth, m.height-4)
	m.viewport.Width = m.width - listWidth - 6
	m.viewport.Height = m.height - 4
}

func (m *Model) refreshDetail() {
	if m.run == nil || len(m.run.Results) == 0 {
		return
	}
	idx := m.list.Index()
	if idx < 0 || idx >= len(m.run.Results) {
		idx = 0
	}
	m.viewport.SetContent(renderPayslip(&m.run.Results[idx]))
	m.viewport.GotoTop()
}

func renderPayslip(r *domain.PayrollResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", TitleStyle.Render(r.EmployeeName))
	fmt.Fprintf(&b, "%s %d   %s %d   %s %s\n\n",
		LabelStyle.Render("days worked"), r.Details.DaysWorked,
		LabelStyle.Render("days absent"), r.Details.DaysAbsent,
		LabelStyle.Render("SDI"), r.Details.SDI.StringFixed(2))

	b.WriteString(LabelStyle.Render("Earnings") + "\n")
	renderConcepts(&b, r.Earnings)
	b.WriteString("\n" + LabelStyle.Render("Deductions") + "\n")
	renderConcepts(&b, r.Deductions)

	fmt.Fprintf(&b, "\n%s %s   %s %s\n",
		LabelStyle.Render("ISR withheld"), r.Details.ISR.WithheldISR.StringFixed(2),
		LabelStyle.Render("IMSS employee"), r.Details.IMSS.Totals.Employee.StringFixed(2))

	fmt.Fprintf(&b, "\n%s %s\n", LabelStyle.Render("NET"),
		NetStyle.Render(r.Totals.Net.StringFixed(2)))
	return b.String()
}

func renderConcepts(b *strings.Builder, concepts map[string]decimal.Decimal) {
	names := make([]string, 0, len(concepts))
	for name := range concepts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(b, "  %-22s %12s\n", name, concepts[name].StringFixed(2))
	}
}

func (m Model) View() string {
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n\npress q to quit\n"
	}
	if !m.ready {
		return "calculating payroll...\n"
	}

	left := BorderStyle.Render(m.list.View())
	right := BorderStyle.Render(m.viewport.View())
	panes := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := StatusBarStyle.Render(fmt.Sprintf("run %s  •  total net %s  •  q: quit",
		m.run.RunID, m.run.TotalNet.StringFixed(2)))
	return panes + "\n" + status + "\n"
}
