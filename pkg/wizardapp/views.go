package wizardapp

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/scottierieh/statistica-frontend-sub010/analyses"
	"github.com/scottierieh/statistica-frontend-sub010/utils/helpdocs"
	"github.com/scottierieh/statistica-frontend-sub010/utils/report"
	"github.com/scottierieh/statistica-frontend-sub010/wizard"
)

func (m *model) View() string {
	header := m.renderHeader()
	trail := m.renderStepTrail()
	body := m.renderBody()
	statusBar := statusBarStyle.Render(m.statusMsg)
	footer := footerStyle.Render("←/→ or h/l steps • 1-6 jump • ↑/↓ or j/k move • Enter select/run • e export • c copy • r reset • ? help • Ctrl+C quit")

	sections := []string{header, trail, body}
	if m.prompting {
		sections = append(sections, m.renderPromptPanel())
	}
	sections = append(sections, statusBar)

	if m.helpVisible {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, footer)
	}

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)
	renderWidth := m.terminalWidth()
	if renderWidth <= 0 {
		renderWidth = lipgloss.Width(view)
	}
	renderHeight := lipgloss.Height(view)
	if viewportHeight := m.viewportHeight(); viewportHeight > renderHeight {
		renderHeight = viewportHeight
	}
	return lipgloss.Place(renderWidth, renderHeight, lipgloss.Left, lipgloss.Top, view)
}

func (m *model) renderHeader() string {
	title := titleStyle.Render(m.meta.Title)
	state := subtitleStyle.Render(m.runStateDisplay())
	if m.snapshot.Submitting {
		state = lipgloss.JoinHorizontal(lipgloss.Top, m.spinner.View(), " ", state)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", state)
}

var titleCase = cases.Title(language.English)

func (m *model) runStateDisplay() string {
	switch {
	case m.snapshot.Submitting:
		return titleCase.String("submitting")
	case m.snapshot.HasResult:
		return titleCase.String("results ready")
	default:
		return titleCase.String("configuring")
	}
}

func (m *model) renderStepTrail() string {
	items := make([]string, 0, m.wizardCfg.Count())
	for i := 1; i <= m.wizardCfg.Count(); i++ {
		s := wizard.Step(i)
		info := m.wizardCfg.Info(s)
		label := fmt.Sprintf("%d %s", i, info.Title)

		style := stepLockedStyle
		switch {
		case s == m.snapshot.Current:
			style = stepCurrentStyle
		case m.controller.Accessible(s):
			style = stepOpenStyle
		}
		items = append(items, style.Render(label))
	}
	return stepTrailStyle.Render(strings.Join(items, stepSeparatorStyle.Render(" › ")))
}

func (m *model) renderBody() string {
	width := m.viewportWidth()
	info := m.wizardCfg.Info(m.snapshot.Current)

	var content string
	switch m.snapshot.Current {
	case analyses.StepVariables:
		content = m.renderVariables()
	case analyses.StepParameters:
		content = m.renderParameters()
	case analyses.StepValidation:
		content = m.renderValidation()
	case analyses.StepSummary:
		content = m.renderSummary()
	case analyses.StepReasoning:
		content = m.renderReasoning(width)
	case analyses.StepStatistics:
		content = m.renderStatistics()
	}

	heading := detailTitleStyle.Render(info.Title) + "\n" + infoTextStyle.Render(info.Description)
	return styleForWidth(bodyPanelStyle, width).Render(heading + "\n\n" + content)
}

func (m *model) renderVariables() string {
	in := m.store.Snapshot()
	cols := in.Dataset.ColumnNames()
	if len(cols) == 0 {
		return "Dataset has no columns"
	}

	selected := make(map[string]bool, len(in.Selected))
	for _, name := range in.Selected {
		selected[name] = true
	}

	lines := make([]string, 0, len(cols)+1)
	for idx, name := range cols {
		cursor := " "
		if idx == m.cursor {
			cursor = ">"
		}
		mark := "[ ]"
		if selected[name] {
			mark = "[x]"
		}
		kind := "categorical"
		if col, ok := in.Dataset.Column(name); ok && col.Numeric {
			kind = "numeric"
		}
		line := fmt.Sprintf("%s %s %s (%s)", cursor, mark, name, kind)
		if name == in.Target {
			line += targetTagStyle.Render(" ← target")
		}
		style := infoTextStyle
		if idx == m.cursor {
			style = cursorLineStyle
		}
		lines = append(lines, style.Render(line))
	}
	lines = append(lines, "", mutedTextStyle.Render("Space/Enter select • t mark target"))
	return strings.Join(lines, "\n")
}

func (m *model) renderParameters() string {
	if len(m.params) == 0 {
		return "This method has no parameters"
	}
	in := m.store.Snapshot()

	lines := make([]string, 0, len(m.params)+1)
	for idx, def := range m.params {
		cursor := " "
		if idx == m.cursor {
			cursor = ">"
		}
		value := in.Param(def.ID, def.Default)
		if value == "" {
			value = "unset"
		}
		line := fmt.Sprintf("%s %s: %s", cursor, def.Label, value)
		style := infoTextStyle
		if idx == m.cursor {
			style = cursorLineStyle
		}
		lines = append(lines, style.Render(line))
		if idx == m.cursor && def.Description != "" {
			lines = append(lines, mutedTextStyle.Render("    "+def.Description))
		}
	}
	lines = append(lines, "", mutedTextStyle.Render("Enter edit value"))
	return strings.Join(lines, "\n")
}

func (m *model) renderValidation() string {
	checks := m.analysis.Checks(m.store.Snapshot())
	lines := make([]string, 0, len(checks)+2)
	for _, check := range checks {
		if check.Passed {
			lines = append(lines, passedCheckStyle.Render("✔ "+check.Label))
			continue
		}
		line := "✖ " + check.Label
		if check.Detail != "" {
			line += " — " + check.Detail
		}
		lines = append(lines, failedCheckStyle.Render(line))
	}
	lines = append(lines, "")
	if wizard.AllPassed(checks) {
		lines = append(lines, infoTextStyle.Render("All checks passed. Press Enter to run the analysis."))
	} else {
		lines = append(lines, mutedTextStyle.Render("Resolve the failed checks to run the analysis."))
	}
	return strings.Join(lines, "\n")
}

func (m *model) renderSummary() string {
	if m.result == nil {
		return "No results yet — run the analysis from the Validation step"
	}
	return report.Summary(m.result)
}

func (m *model) renderReasoning(width int) string {
	if m.result == nil {
		return "No results yet — run the analysis from the Validation step"
	}
	if strings.TrimSpace(m.result.Interpretation) == "" {
		return "The backend returned no interpretation for this run"
	}
	rendered, err := helpdocs.RenderMarkdown(m.result.Interpretation, width-4)
	if err != nil {
		return m.result.Interpretation
	}
	return rendered
}

func (m *model) renderStatistics() string {
	if m.result == nil {
		return "No results yet — run the analysis from the Validation step"
	}

	var b strings.Builder
	if len(m.result.Metrics) > 0 {
		b.WriteString(logSectionStyle.Render("Metrics"))
		b.WriteString("\n")
		b.WriteString(report.MetricLines(m.result))
		b.WriteString("\n")
	}
	for _, table := range m.result.Tables {
		b.WriteString("\n")
		b.WriteString(logSectionStyle.Render(table.Title))
		b.WriteString("\n")
		b.WriteString(infoTextStyle.Render(strings.Join(table.Columns, " | ")))
		b.WriteString("\n")
		for _, row := range table.Rows {
			b.WriteString(mutedTextStyle.Render(strings.Join(row, " | ")))
			b.WriteString("\n")
		}
	}
	if b.Len() == 0 {
		return "The run produced no metrics or tables"
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *model) renderPromptPanel() string {
	style := styleForWidth(promptPanelStyle, m.viewportWidth())
	if m.activeParam == nil {
		return style.Render("No parameter selected")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Edit — %s\n", m.activeParam.Label))
	if m.activeParam.Description != "" {
		b.WriteString(infoTextStyle.Render(m.activeParam.Description))
		b.WriteString("\n")
	}

	if m.isSelectPrompt() {
		b.WriteString("Use ↑/↓, j/k, number keys. Enter to confirm.\n\n")
		for idx, opt := range m.activeParam.Options {
			cursor := " "
			if idx == m.selectIndex {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %d. %s\n", cursor, idx+1, opt.Label))
		}
	} else {
		b.WriteString("> ")
		b.WriteString(m.prompt.View())
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *model) renderHelp() string {
	help := []string{
		"Key Bindings:",
		"  ←/→ or h/l   Previous / next step (next runs the analysis at Validation)",
		"  1-6          Jump to a reachable step",
		"  ↑/↓ or j/k   Move within the current step",
		"  Space/Enter  Toggle column / edit parameter / run",
		"  t            Mark the cursor column as target",
		"  e            Export results to CSV",
		"  c            Copy the result summary to the clipboard",
		"  r            Reset the wizard (discards results)",
		"  Esc          Cancel a prompt or close this help",
		"  ?            Toggle this help",
		"  Ctrl+C / q   Quit",
	}
	body := strings.Join(help, "\n")
	if topic, err := helpdocs.Render(m.meta.ID, m.viewportWidth()-8); err == nil {
		body += "\n\n" + strings.TrimSpace(topic)
	}
	return helpStyle.Render(body)
}

func (m *model) viewportWidth() int {
	if m.width > 0 {
		if m.width < 40 {
			return 40
		}
		return m.width
	}
	return 100
}

func (m *model) viewportHeight() int {
	if m.height > 0 {
		return m.height
	}
	return 0
}

func (m *model) terminalWidth() int {
	if m.width > 0 {
		return m.width
	}
	return 0
}

func styleForWidth(base lipgloss.Style, totalWidth int) lipgloss.Style {
	style := base.Copy()
	if totalWidth <= 0 {
		return style.Width(0)
	}
	frameWidth, _ := base.GetFrameSize()
	contentWidth := totalWidth - frameWidth
	if contentWidth < 0 {
		contentWidth = 0
	}
	return style.Width(contentWidth)
}

// ---- Styling helpers ----

var (
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E0AAFF"))
	subtitleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	stepTrailStyle     = lipgloss.NewStyle().Padding(0, 1).MarginBottom(1)
	stepSeparatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4C566A"))
	stepCurrentStyle   = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#A78BFA"))
	stepOpenStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#CBD5F5"))
	stepLockedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#475569"))
	bodyPanelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#4C566A")).Padding(0, 1)
	promptPanelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#A78BFA")).Padding(0, 1).MarginTop(1)
	statusBarStyle     = lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color("#312E81")).Foreground(lipgloss.Color("#E0E7FF"))
	footerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")).Padding(0, 1).MarginTop(1)
	helpStyle          = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#7C3AED")).Padding(1, 2).MarginTop(1)
	detailTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FDE047"))
	infoTextStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#CBD5F5"))
	mutedTextStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	cursorLineStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	targetTagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FDE047"))
	passedCheckStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399"))
	failedCheckStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
	logSectionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A5B4FC")).Bold(true)
)
