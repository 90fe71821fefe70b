package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/stefanpenner/quest/pkg/goal"
)

const minWidth = 40
const minHeight = 10

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	if m.showHelpModal {
		return placeOverlay(m.renderHelpModal(), w, h)
	}

	if m.confirm != confirmNone {
		return placeOverlay(m.renderConfirmModal(), w, h)
	}

	var b strings.Builder

	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")
	b.WriteString(DividerStyle.Render(strings.Repeat("─", w)))
	b.WriteString("\n")

	headerLines := 2
	footerLines := 2

	searchActive := m.isSearching || m.searchQuery != ""
	if searchActive {
		headerLines++
		b.WriteString(m.renderSearchBar(w))
		b.WriteString("\n")
	}

	contentHeight := h - headerLines - footerLines

	leftWidth := m.listWidth()
	rightWidth := m.detailWidth()

	leftPanel := m.renderGoalList(leftWidth, contentHeight)
	rightPanel := m.renderDetailPanel(rightWidth, contentHeight)

	sep := DividerStyle.Render("│")
	for i := 0; i < contentHeight; i++ {
		b.WriteString(getLine(leftPanel, i, leftWidth))
		b.WriteString(sep)
		b.WriteString(getLine(rightPanel, i, rightWidth))
		b.WriteString("\n")
	}

	b.WriteString(DividerStyle.Render(strings.Repeat("─", w)))
	b.WriteString("\n")
	b.WriteString(m.renderFooter(w))

	return b.String()
}

func (m Model) listWidth() int {
	w := m.width * 2 / 5
	if w < 30 {
		w = 30
	}
	return w
}

func (m Model) detailWidth() int {
	w := m.width - m.listWidth() - 1 // 1 char for divider
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) renderHeader(width int) string {
	title := HeaderStyle.Render("Quest")
	if m.dirty {
		title += DirtyStyle.Render(" ●")
	}

	stats := HeaderCountStyle.Render(fmt.Sprintf("%d/%d complete  ", countComplete(m.items), len(m.items))) +
		ScoreStyle.Render(humanize.Comma(int64(m.tracker.TotalScore()))+" pts")

	status := ""
	if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		status = "  " + StatusStyle.Render(m.statusMsg) + "  "
	}

	gap := width - lipgloss.Width(title) - lipgloss.Width(stats) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}

	return title + strings.Repeat(" ", gap) + status + stats
}

func (m Model) renderSearchBar(width int) string {
	prefix := SearchBarStyle.Render(" / ")
	query := SearchBarStyle.Render(m.searchQuery)
	cursor := ""
	if m.isSearching {
		cursor = SearchBarStyle.Render("█")
	}

	countStr := ""
	if m.searchQuery != "" {
		countStr = SearchCountStyle.Render(fmt.Sprintf(" %d matches", len(m.visibleItems)))
	}

	left := prefix + query + cursor
	padWidth := width - lipgloss.Width(left) - lipgloss.Width(countStr)
	if padWidth < 1 {
		padWidth = 1
	}

	return left + strings.Repeat(" ", padWidth) + countStr
}

func (m Model) renderGoalList(width, height int) string {
	var lines []string

	// Reserve last line for the goals file path
	listHeight := height - 1
	if m.isAdding {
		listHeight--
	}
	if listHeight < 1 {
		listHeight = 1
	}

	if len(m.visibleItems) == 0 {
		if m.searchQuery != "" {
			lines = append(lines, FooterStyle.Render("No goals match."))
		} else {
			lines = append(lines, FooterStyle.Render("No goals yet. Press 'a' to add one."))
		}
	}

	// Scrolling window
	startIdx := 0
	endIdx := len(m.visibleItems)
	if len(m.visibleItems) > listHeight {
		startIdx = m.cursor - listHeight/2
		if startIdx < 0 {
			startIdx = 0
		}
		endIdx = startIdx + listHeight
		if endIdx > len(m.visibleItems) {
			endIdx = len(m.visibleItems)
			startIdx = endIdx - listHeight
		}
	}

	for i := startIdx; i < endIdx; i++ {
		lines = append(lines, m.renderGoalItem(m.visibleItems[i], i == m.cursor, width))
	}

	if m.isAdding {
		prompt := InputPromptStyle.Render(fmt.Sprintf("%d/%d > ", m.addStep+1, m.wizardSteps()))
		lines = append(lines, prompt+m.textInput.View())
	}

	for len(lines) < height-1 {
		lines = append(lines, "")
	}

	pathLine := PathStyle.Render(fileHyperlink(m.store.GoalsPath()))
	lines = append(lines, pathLine)

	return strings.Join(lines, "\n")
}

// wizardSteps is the number of prompts for the kind being added.
func (m Model) wizardSteps() int {
	if m.addStep > stepKind && m.addSpec.Kind != goal.KindChecklist {
		return int(stepPoints) + 1
	}
	return int(stepBonus) + 1
}

func (m Model) renderGoalItem(item GoalItem, isSelected bool, width int) string {
	var icon string
	switch {
	case item.Kind == goal.KindEternal:
		icon = EternalStyle.Render(IconEternal)
	case item.Complete:
		icon = CompleteStyle.Render(IconComplete)
	case item.Progress() > 0:
		icon = InProgressStyle.Render(IconInProgress)
	default:
		icon = IncompleteStyle.Render(IconIncomplete)
	}

	name := item.Name
	if m.searchQuery != "" {
		if isSelected {
			name = highlightMatch(name, m.searchQuery, SearchCharSelectedStyle, SelectedStyle)
		} else {
			name = highlightMatch(name, m.searchQuery, SearchCharStyle, SearchRowStyle)
		}
	}

	line := fmt.Sprintf("%2d. ", item.Number) + icon + " " + item.Status + " " + name
	points := PointsStyle.Render(fmt.Sprintf("%d", item.Points))

	gap := width - lipgloss.Width(line) - lipgloss.Width(points) - 1
	if gap < 1 {
		gap = 1
	}
	line += strings.Repeat(" ", gap) + points + " "

	if isSelected {
		return SelectedStyle.Render(line)
	}
	return NormalStyle.Render(line)
}

func (m Model) renderDetailPanel(width, height int) string {
	item, ok := m.selected()
	if !ok {
		return FooterStyle.Render(" Select a goal to view details")
	}

	md := goalMarkdown(item)

	var rendered string
	if m.glamourRenderer != nil {
		var err error
		rendered, err = m.glamourRenderer.Render(md)
		if err != nil {
			rendered = md
		}
	} else {
		rendered = md
	}

	rendered = strings.TrimRight(rendered, "\n ")
	lines := strings.Split(rendered, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// goalMarkdown describes a goal for the detail panel.
func goalMarkdown(item GoalItem) string {
	var md strings.Builder

	md.WriteString("# " + item.Name + "\n\n")
	if item.Description != "" {
		md.WriteString(item.Description + "\n\n")
	}

	meta := []string{
		"**Type:** " + string(item.Kind),
		"**Status:** `" + item.Status + "`",
		fmt.Sprintf("**Points:** %d", item.Points),
	}
	md.WriteString(strings.Join(meta, " | ") + "\n\n")

	switch item.Kind {
	case goal.KindChecklist:
		md.WriteString(fmt.Sprintf("- Progress: %d of %d\n", item.Count, item.Target))
		if item.Complete {
			md.WriteString(fmt.Sprintf("- Bonus of %d earned\n", item.Bonus))
		} else {
			md.WriteString(fmt.Sprintf("- Bonus on completion: %d\n", item.Bonus))
		}
	case goal.KindEternal:
		md.WriteString("- Earns points every time it is recorded\n")
	case goal.KindSimple:
		if item.Complete {
			md.WriteString("- Completed\n")
		} else {
			md.WriteString("- Completes the first time it is recorded\n")
		}
	}

	md.WriteString("\n```\n" + item.Record + "\n```\n")
	return md.String()
}

func (m Model) renderFooter(width int) string {
	help := m.keys.ShortHelp()
	if m.isAdding {
		help = "enter next  esc cancel"
	} else if m.isSearching {
		help = "type to search  enter/↓ keep filter  esc clear"
	} else if m.searchQuery != "" {
		help = "esc clear filter  ↑↓ nav  space record"
	}
	return FooterStyle.Render(help)
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, binding := range m.keys.FullHelp() {
		b.WriteString(ModalKeyStyle.Render(binding[0]))
		b.WriteString(ModalDescStyle.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Press Esc or ? to close"))

	return ModalStyle.Render(b.String())
}

func (m Model) renderConfirmModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Unsaved Changes"))
	b.WriteString("\n\n")
	switch m.confirm {
	case confirmQuit:
		b.WriteString("Quit without saving?\n\n")
		b.WriteString(ConfirmYesStyle.Render("[y]") + " Quit  ")
		b.WriteString(ConfirmYesStyle.Render("[s]") + " Save & quit  ")
	case confirmLoad:
		b.WriteString("Discard changes and load from disk?\n\n")
		b.WriteString(ConfirmYesStyle.Render("[y]") + " Load  ")
	}
	b.WriteString(ConfirmNoStyle.Render("[n]") + " Cancel")

	return ModalStyle.Render(b.String())
}

// highlightMatch splits name into before/match/after and styles the match portion
// with charStyle, and the rest with rowStyle. The match is case-insensitive.
func highlightMatch(name, query string, charStyle, rowStyle lipgloss.Style) string {
	start, end, ok := foldIndex(name, query)
	if !ok {
		return rowStyle.Render(name)
	}
	before := name[:start]
	match := name[start:end]
	after := name[end:]

	var result string
	if before != "" {
		result += rowStyle.Render(before)
	}
	result += charStyle.Render(match)
	if after != "" {
		result += rowStyle.Render(after)
	}
	return result
}

// foldIndex finds the first case-insensitive occurrence of query in s and
// returns its byte range in s. Offsets always fall on rune boundaries of s.
func foldIndex(s, query string) (start, end int, ok bool) {
	n := utf8.RuneCountInString(query)
	if n == 0 {
		return 0, 0, false
	}
	for start = range s {
		end = start
		for i := 0; i < n && end < len(s); i++ {
			_, size := utf8.DecodeRuneInString(s[end:])
			end += size
		}
		if strings.EqualFold(s[start:end], query) {
			return start, end, true
		}
	}
	return 0, 0, false
}

// fileHyperlink wraps a file path in an OSC 8 terminal hyperlink so it's clickable.
func fileHyperlink(path string) string {
	url := "file://" + path
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, path)
}

func getLine(block string, idx int, width int) string {
	lines := strings.Split(block, "\n")
	if idx < len(lines) {
		line := lines[idx]
		lineWidth := lipgloss.Width(line)
		if lineWidth < width {
			return line + strings.Repeat(" ", width-lineWidth)
		}
		return line
	}
	return strings.Repeat(" ", width)
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := (height - len(modalLines)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	leftPadding := (width - lipgloss.Width(modalLines[0])) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}

	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
