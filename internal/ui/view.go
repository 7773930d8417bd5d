package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"hydroboard/internal/domain"
	"hydroboard/internal/state"
)

type uiStyles struct {
	headerStyle lipgloss.Style
	mutedStyle  lipgloss.Style
	statusStyle lipgloss.Style
	warnStyle   lipgloss.Style
	okStyle     lipgloss.Style
	panelBorder lipgloss.Style
}

func stylesFor(model Model) uiStyles {
	if strings.ToLower(model.theme) == "light" {
		return uiStyles{
			headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235")),
			mutedStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
			statusStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
			warnStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("124")).Bold(true),
			okStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Bold(true),
			panelBorder: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		}
	}
	return uiStyles{
		headerStyle: lipgloss.NewStyle().Bold(true),
		mutedStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		statusStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true),
		warnStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true),
		okStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		panelBorder: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

func (model Model) View() string {
	styles := stylesFor(model)
	if model.showHelp {
		return renderHelpView(model, styles)
	}
	body := renderBody(model, styles)
	footer := renderFooter(model, styles)
	return strings.Join([]string{body, footer}, "\n")
}

func renderBody(model Model, styles uiStyles) string {
	summaryWidth, listWidth, showList := splitPanels(model.width)
	summary := renderSummaryPanel(model, styles, summaryWidth)
	if !showList {
		return summary
	}
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Render("│")
	list := renderListPanel(model, styles, listWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top, summary, sep, list)
}

func renderSummaryPanel(model Model, styles uiStyles, width int) string {
	contentWidth := maxInt(width-2, 10)
	phase := model.workflow.Phase.String()
	header := padLine(styles.headerStyle.Render("Hydroboard"), styles.statusStyle.Render(phase), contentWidth)

	lines := []string{header, ""}
	lines = append(lines, styles.headerStyle.Render("Raw Dataset"))
	lines = append(lines, snapshotSummary(model.workflow.Raw, model.workflow.HasRaw)...)
	lines = append(lines, "", styles.headerStyle.Render("Processed Output"))
	lines = append(lines, snapshotSummary(model.workflow.Processed, model.workflow.HasProcessed)...)

	switch model.workflow.Phase {
	case state.PhaseRunning:
		lines = append(lines, "", styles.headerStyle.Render("Update"))
		lines = append(lines, fmt.Sprintf("%s %s (%d%%)", model.spinner.View(), model.workflow.Step, model.workflow.Percent))
	case state.PhaseLoading:
		lines = append(lines, "", fmt.Sprintf("%s loading...", model.spinner.View()))
	case state.PhaseSucceeded:
		lines = append(lines, "", styles.okStyle.Render("Update complete"))
		lines = append(lines, changesSummary(model.workflow.Changes)...)
	case state.PhaseFailed:
		lines = append(lines, "", styles.warnStyle.Render("Last error"))
		lines = append(lines, model.workflow.ErrMessage)
	}

	content := strings.Join(lines, "\n")
	bodyHeight := maxInt(model.height-4, 5)
	content = lipgloss.NewStyle().Width(contentWidth).Height(bodyHeight).Render(content)
	return styles.panelBorder.Width(contentWidth).Render(content)
}

func renderListPanel(model Model, styles uiStyles, width int) string {
	contentWidth := maxInt(width-2, 10)
	title := focusTitle(model.focus)
	lines := []string{
		styles.headerStyle.Render(title) + styles.mutedStyle.Render("  (tab to switch)"),
		model.viewport.View(),
	}
	content := strings.Join(lines, "\n")
	return styles.panelBorder.Width(contentWidth).Render(content)
}

func renderFooter(model Model, styles uiStyles) string {
	statusLine := trimStatus(model.status, model.width)
	statusStyle := styles.mutedStyle
	if strings.Contains(strings.ToLower(model.status), "error") {
		statusStyle = styles.warnStyle
	}
	keys := "r refresh  u update  tab switch list  ↑/↓ scroll  ? help  q quit"
	return strings.Join([]string{statusStyle.Render(statusLine), styles.mutedStyle.Render(keys)}, "\n")
}

func focusTitle(focus focusArea) string {
	switch focus {
	case focusProcessedFiles:
		return "Processed Files"
	case focusChanges:
		return "Latest Changes"
	default:
		return "Raw Files"
	}
}

func focusContent(model Model) string {
	switch model.focus {
	case focusProcessedFiles:
		return renderFileList(model.workflow.Processed, model.workflow.HasProcessed)
	case focusChanges:
		if !model.workflow.HasChanges {
			return "No update run yet - press u"
		}
		return renderChanges(model.workflow.Changes)
	default:
		return renderFileList(model.workflow.Raw, model.workflow.HasRaw)
	}
}

func snapshotSummary(snapshot domain.DatasetSnapshot, fetched bool) []string {
	if !fetched {
		return []string{"not loaded"}
	}
	lines := []string{
		fmt.Sprintf("Size : %s", snapshot.TotalSize),
		fmt.Sprintf("Files: %d", snapshot.FileCount),
	}
	if len(snapshot.Files) != snapshot.FileCount {
		lines = append(lines, fmt.Sprintf("Listed: %d", len(snapshot.Files)))
	}
	return lines
}

// renderFileList is the scrollable file listing for one dataset directory.
// A count mismatch between file_count and the list renders as-is.
func renderFileList(snapshot domain.DatasetSnapshot, fetched bool) string {
	if !fetched {
		return "Not loaded - press r to refresh"
	}
	if len(snapshot.Files) == 0 {
		return "No files"
	}
	lines := make([]string, 0, len(snapshot.Files))
	for _, name := range snapshot.Files {
		if rows, ok := snapshot.RowCounts[name]; ok {
			lines = append(lines, fmt.Sprintf("%s (%d rows)", name, rows))
		} else {
			lines = append(lines, name)
		}
	}
	return strings.Join(lines, "\n")
}

// renderChanges presents a changeset. Empty sections are omitted entirely,
// as is the current-output block when the backend sent none.
func renderChanges(changes domain.DatasetChangeSet) string {
	if changes.IsEmpty() && changes.SizeChange == "" {
		return "No changes in the processed dataset"
	}
	lines := []string{}
	if changes.SizeChange != "" {
		lines = append(lines, fmt.Sprintf("Size change: %s", changes.SizeChange))
	}
	if len(changes.AddedFiles) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "Added Files")
		for _, name := range changes.AddedFiles {
			lines = append(lines, "  + "+name)
		}
	}
	if len(changes.ModifiedFiles) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "Modified Files")
		for _, name := range changes.ModifiedFiles {
			lines = append(lines, "  ~ "+name)
		}
	}
	if changes.CurrentInfo != nil {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "Current Output")
		lines = append(lines, fmt.Sprintf("  Size : %s", changes.CurrentInfo.TotalSize))
		lines = append(lines, fmt.Sprintf("  Files: %d", changes.CurrentInfo.FileCount))
	}
	return strings.Join(lines, "\n")
}

func changesSummary(changes domain.DatasetChangeSet) []string {
	lines := []string{}
	if changes.SizeChange != "" {
		lines = append(lines, fmt.Sprintf("Size change: %s", changes.SizeChange))
	}
	lines = append(lines, fmt.Sprintf("Added: %d  Modified: %d", len(changes.AddedFiles), len(changes.ModifiedFiles)))
	return lines
}

func renderHelpView(model Model, styles uiStyles) string {
	bindings := []key.Binding{
		model.keys.Up,
		model.keys.Down,
		model.keys.Focus,
		model.keys.Refresh,
		model.keys.Run,
		model.keys.Help,
		model.keys.Quit,
	}
	lines := []string{styles.headerStyle.Render("Hydroboard Help"), ""}
	lines = append(lines, styles.headerStyle.Render("Workflow"))
	lines = append(lines, "r refreshes both dataset directories", "u triggers the remote sensor-data update, then compares before/after")
	lines = append(lines, "", styles.headerStyle.Render("Lists"))
	lines = append(lines, "tab cycles raw files / processed files / latest changes", "↑/↓ scroll the focused list")
	lines = append(lines, "", styles.headerStyle.Render("Keys"))
	for _, binding := range bindings {
		keysLabel := strings.Join(binding.Keys(), ", ")
		lines = append(lines, fmt.Sprintf("%-14s %s", keysLabel, binding.Help().Desc))
	}
	lines = append(lines, "", "Press ? to close help")
	content := strings.Join(lines, "\n")
	width := model.width
	if width <= 0 {
		width = 80
	}
	return styles.panelBorder.Width(maxInt(width-2, 10)).Render(content)
}

func padLine(left, right string, width int) string {
	if width <= 0 {
		return left
	}
	space := width - lipgloss.Width(left) - lipgloss.Width(right)
	if space < 1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", space) + right
}

func trimStatus(message string, width int) string {
	if width <= 0 {
		return message
	}
	max := width - 4
	runes := []rune(message)
	if max <= 0 || len(runes) <= max {
		return message
	}
	return string(runes[:max]) + "..."
}

func splitPanels(width int) (int, int, bool) {
	if width < 80 {
		return width, 0, false
	}
	left := int(float64(width) * 0.45)
	if left < 34 {
		left = 34
	}
	right := width - left - 1
	if right < 30 {
		return width, 0, false
	}
	return left, right, true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
