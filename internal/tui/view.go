package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NeverVane/pickline/internal/menu"
)

func (m model) View() string {
	var body string
	if m.opts.Vertical {
		body = m.renderVertical()
	} else {
		body = m.renderHorizontal()
	}
	if m.showHelp {
		body += "\n" + m.help.View(m.keys)
	}
	return body
}

func (m model) itemStyle(v menu.View) lipgloss.Style {
	switch {
	case v.Selected:
		return m.styles.selected
	case v.LastAccepted:
		return m.styles.last
	default:
		return m.styles.normal
	}
}

func (m model) renderPrompt() string {
	if m.opts.Prompt == "" {
		return ""
	}
	return m.styles.prompt.Render(m.opts.Prompt) + m.styles.normal.Render(" ")
}

// renderHorizontal draws prompt, query slot, indicators and items on a
// single line whose layout mirrors the budget.
func (m model) renderHorizontal() string {
	b := m.state.Budget()
	var sb strings.Builder

	if b.PromptWidth > 0 {
		sb.WriteString(m.styles.prompt.Render(fit(m.opts.Prompt, b.PromptWidth-1)))
		sb.WriteString(m.styles.normal.Render(" "))
	}

	used := b.PromptWidth
	queryWidth := b.QueryWidth
	if m.state.Empty() {
		queryWidth = m.width - used
	}
	sb.WriteString(m.styles.normal.Render(fit(m.renderQuery(queryWidth), queryWidth)))
	used += queryWidth

	if m.state.Empty() {
		return sb.String()
	}

	if b.IndicatorWidth > 0 {
		left := ""
		if m.state.HasLeft() {
			left = "<"
		}
		sb.WriteString(m.styles.indicator.Render(fit(center(left, b.IndicatorWidth), b.IndicatorWidth)))
		used += b.IndicatorWidth
	}

	limit := m.width - b.IndicatorWidth
	for _, v := range m.state.Visible() {
		w := b.Cost(v.Text)
		if used+w > limit {
			w = limit - used
		}
		if w <= 0 {
			break
		}
		sb.WriteString(m.itemStyle(v).Render(fit(" "+v.Text+" ", w)))
		used += w
	}

	if b.IndicatorWidth > 0 {
		if pad := limit - used; pad > 0 {
			sb.WriteString(m.styles.normal.Render(strings.Repeat(" ", pad)))
		}
		right := ""
		if m.state.HasRight() {
			right = ">"
		}
		sb.WriteString(m.styles.indicator.Render(fit(center(right, b.IndicatorWidth), b.IndicatorWidth)))
	}
	return sb.String()
}

// renderVertical draws the prompt line and one item per line, with optional
// indicator rows above and below the list.
func (m model) renderVertical() string {
	lines := m.state.Budget().Lines
	rows := make([]string, 0, lines+3)

	if m.opts.Indicators {
		up := ""
		if m.state.HasLeft() {
			up = "^"
		}
		rows = append(rows, m.styles.indicator.Render(fit(up, m.width)))
	}

	visible := m.state.Visible()
	for _, v := range visible {
		rows = append(rows, m.itemStyle(v).Render(fit(" "+v.Text, m.width)))
	}
	if !m.opts.Resize {
		for i := len(visible); i < lines; i++ {
			rows = append(rows, m.styles.normal.Render(fit("", m.width)))
		}
	}

	if m.opts.Indicators {
		down := ""
		if m.state.HasRight() {
			down = "v"
		}
		rows = append(rows, m.styles.indicator.Render(fit(down, m.width)))
	}

	prompt := m.renderPromptLine()
	if m.opts.Topbar {
		rows = append([]string{prompt}, rows...)
	} else {
		rows = append(rows, prompt)
	}
	return strings.Join(rows, "\n")
}

func (m model) renderPromptLine() string {
	prompt := m.renderPrompt()
	counter := ""
	if m.opts.HitCounter {
		counter = " " + m.state.HitText()
	}

	queryWidth := m.width - lipgloss.Width(prompt) - cellWidth(counter)
	line := prompt + m.styles.normal.Render(fit(m.renderQuery(queryWidth), queryWidth))
	if counter != "" {
		line += m.styles.counter.Render(counter)
	}
	return line
}

// renderQuery shows the tail of the query followed by a cursor.
func (m model) renderQuery(width int) string {
	return tail(m.state.Query()+"_", width)
}

func center(s string, width int) string {
	w := cellWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s
}
