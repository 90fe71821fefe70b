package tui

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/stefanpenner/quest/pkg/goal"
	"github.com/stefanpenner/quest/pkg/store"
	gsync "github.com/stefanpenner/quest/pkg/sync"
	"github.com/stefanpenner/quest/pkg/tracker"
)

// FileChangedMsg is sent when the file watcher detects changes.
type FileChangedMsg struct{}

// SyncDoneMsg is sent when git sync completes.
type SyncDoneMsg struct {
	Err error
}

type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmQuit
	confirmLoad
)

// Add-goal wizard steps, in prompt order.
type wizardStep int

const (
	stepKind wizardStep = iota
	stepName
	stepDescription
	stepPoints
	stepTarget
	stepBonus
)

var wizardPrompts = map[wizardStep]string{
	stepKind:        "kind: simple, eternal or checklist (1/2/3)",
	stepName:        "goal name",
	stepDescription: "short description (optional)",
	stepPoints:      "points per event",
	stepTarget:      "times to complete",
	stepBonus:       "bonus points on completion",
}

// Model is the Bubble Tea model for the goal tracker.
type Model struct {
	store        *store.Store
	tracker      *tracker.Tracker
	keys         KeyMap
	width        int
	height       int
	items        []GoalItem
	visibleItems []GoalItem
	cursor       int

	// Unsaved changes since the last save or load
	dirty bool

	// Modal state
	showHelpModal bool
	confirm       confirmAction

	// Add-goal wizard
	isAdding  bool
	addStep   wizardStep
	addSpec   goal.Spec
	textInput textinput.Model

	// Search state
	isSearching bool
	searchQuery string

	// Status message
	statusMsg     string
	statusTimeout time.Time

	// Cached glamour renderer (expensive to create)
	glamourRenderer *glamour.TermRenderer
	glamourWidth    int
}

// NewModel creates a new TUI model over an already loaded tracker.
func NewModel(s *store.Store, t *tracker.Tracker) Model {
	ti := textinput.New()
	ti.CharLimit = 80
	ti.Prompt = ""
	ti.PromptStyle = InputPromptStyle
	ti.TextStyle = InputStyle

	m := Model{
		store:     s,
		tracker:   t,
		keys:      DefaultKeyMap(),
		textInput: ti,
	}
	m.rebuildVisible()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.getGlamourRenderer(m.detailWidth() - 2)
		return m, tea.ClearScreen

	case FileChangedMsg:
		if m.diskMatches() {
			return m, nil
		}
		if m.dirty {
			m.setStatus("Goals file changed on disk. Press L to load it.")
			return m, nil
		}
		m.load()
		return m, nil

	case SyncDoneMsg:
		if msg.Err != nil {
			m.setStatus("Sync failed: " + msg.Err.Error())
			return m, nil
		}
		if m.dirty {
			m.setStatus("Synced. Unsaved changes were not included.")
			return m, nil
		}
		if m.store.Exists() {
			m.load()
		}
		m.setStatus("Synced successfully")
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.isAdding {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.isAdding {
		switch msg.Type {
		case tea.KeyEsc:
			m.isAdding = false
			m.setStatus("Add cancelled")
			return m, nil
		case tea.KeyEnter:
			m.advanceWizard()
			return m, nil
		default:
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}
	}

	if m.isSearching {
		return m.handleSearchInput(msg)
	}

	if m.showHelpModal {
		switch msg.String() {
		case "esc", "enter", "?", "q":
			m.showHelpModal = false
		}
		return m, nil
	}

	if m.confirm != confirmNone {
		return m.handleConfirm(msg)
	}

	// If search filter is active (not typing), Esc clears it
	if m.searchQuery != "" && msg.Type == tea.KeyEsc {
		m.clearSearch()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.dirty {
			m.confirm = confirmQuit
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visibleItems)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0

	case key.Matches(msg, m.keys.Bottom):
		if len(m.visibleItems) > 0 {
			m.cursor = len(m.visibleItems) - 1
		}

	case key.Matches(msg, m.keys.Record):
		m.recordSelected()

	case key.Matches(msg, m.keys.Add):
		m.startWizard()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Save):
		m.save()

	case key.Matches(msg, m.keys.Load):
		if m.dirty {
			m.confirm = confirmLoad
			return m, nil
		}
		m.load()

	case key.Matches(msg, m.keys.Sync):
		m.setStatus("Syncing...")
		return m, m.doSync()

	case key.Matches(msg, m.keys.Search):
		m.isSearching = true
		m.searchQuery = ""
		m.rebuildVisible()

	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = !m.showHelpModal
	}

	return m, nil
}

// handleConfirm answers the unsaved-changes prompt.
func (m Model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.confirm
	switch msg.String() {
	case "y", "Y":
		m.confirm = confirmNone
		if action == confirmQuit {
			return m, tea.Quit
		}
		m.load()
	case "s", "S":
		if action != confirmQuit {
			return m, nil
		}
		m.confirm = confirmNone
		if m.save() {
			return m, tea.Quit
		}
	case "n", "N", "esc":
		m.confirm = confirmNone
	}
	return m, nil
}

// handleSearchInput handles key messages while typing in the search bar.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.clearSearch()
		return m, nil

	case tea.KeyEnter, tea.KeyDown, tea.KeyTab:
		// Exit search input but keep filter active
		m.isSearching = false
		return m, nil

	case tea.KeyBackspace:
		if len(m.searchQuery) > 0 {
			_, size := utf8.DecodeLastRuneInString(m.searchQuery)
			m.searchQuery = m.searchQuery[:len(m.searchQuery)-size]
		}
		m.rebuildVisible()
		return m, nil

	default:
		if msg.Type == tea.KeyRunes {
			m.searchQuery += string(msg.Runes)
			m.cursor = 0
			m.rebuildVisible()
		}
		return m, nil
	}
}

func (m *Model) clearSearch() {
	cur := -1
	if item, ok := m.selected(); ok {
		cur = item.Index
	}
	m.isSearching = false
	m.searchQuery = ""
	m.rebuildVisible()
	m.moveCursorToGoal(cur)
}

// recordSelected records an event for the goal under the cursor.
func (m *Model) recordSelected() {
	item, ok := m.selected()
	if !ok {
		return
	}
	award, err := m.tracker.RecordEvent(item.Index)
	if err != nil {
		m.setStatus("Error: " + err.Error())
		return
	}
	if !award.AlreadyComplete {
		m.dirty = true
	}
	m.setStatus(award.Message(item.Name))
	m.rebuildVisible()
}

func (m *Model) startWizard() {
	m.isAdding = true
	m.addStep = stepKind
	m.addSpec = goal.Spec{}
	m.textInput.Reset()
	m.textInput.Placeholder = wizardPrompts[stepKind]
	m.textInput.Focus()
}

// advanceWizard validates the current answer and moves to the next prompt,
// creating the goal after the last one.
func (m *Model) advanceWizard() {
	value := strings.TrimSpace(m.textInput.Value())

	switch m.addStep {
	case stepKind:
		kind, err := goal.ParseKind(value)
		if err != nil {
			m.setStatus("Choose simple, eternal or checklist")
			return
		}
		m.addSpec.Kind = kind

	case stepName:
		if value == "" {
			m.setStatus("A name is required")
			return
		}
		if strings.Contains(value, ",") {
			m.setStatus("Names cannot contain commas")
			return
		}
		m.addSpec.Name = value

	case stepDescription:
		if strings.Contains(value, ",") {
			m.setStatus("Descriptions cannot contain commas")
			return
		}
		m.addSpec.Description = value

	case stepPoints:
		n, err := strconv.Atoi(value)
		if err != nil {
			m.setStatus("Points must be a whole number")
			return
		}
		m.addSpec.Points = n
		if m.addSpec.Kind != goal.KindChecklist {
			m.finishWizard()
			return
		}

	case stepTarget:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			m.setStatus("Target must be a positive whole number")
			return
		}
		m.addSpec.Target = n

	case stepBonus:
		n, err := strconv.Atoi(value)
		if err != nil {
			m.setStatus("Bonus must be a whole number")
			return
		}
		m.addSpec.Bonus = n
		m.finishWizard()
		return
	}

	m.addStep++
	m.textInput.Reset()
	m.textInput.Placeholder = wizardPrompts[m.addStep]
}

func (m *Model) finishWizard() {
	m.isAdding = false
	m.textInput.Blur()

	idx, err := m.tracker.CreateGoal(m.addSpec)
	if err != nil {
		m.setStatus("Error: " + err.Error())
		return
	}
	m.dirty = true
	m.searchQuery = ""
	m.rebuildVisible()
	m.moveCursorToGoal(idx)
	m.setStatus("Created: " + m.addSpec.Name)
}

// save writes the goals file and reports whether it succeeded.
func (m *Model) save() bool {
	if err := m.store.Save(m.tracker); err != nil {
		m.setStatus("Save failed: " + err.Error())
		return false
	}
	m.dirty = false
	m.setStatus(fmt.Sprintf("Saved %d goals", m.tracker.Len()))
	return true
}

func (m *Model) load() {
	if err := m.store.Load(m.tracker); err != nil {
		if errors.Is(err, tracker.ErrNotFound) {
			m.setStatus("No saved goals at " + m.store.GoalsPath())
		} else {
			m.setStatus("Load failed: " + err.Error())
		}
		return
	}
	m.dirty = false
	m.rebuildVisible()
	m.setStatus(fmt.Sprintf("Loaded %d goals", m.tracker.Len()))
}

// diskMatches reports whether the goals file holds exactly the in-memory state.
func (m *Model) diskMatches() bool {
	data, err := os.ReadFile(m.store.GoalsPath())
	if err != nil {
		return false
	}
	var buf bytes.Buffer
	if err := m.tracker.Save(&buf); err != nil {
		return false
	}
	return bytes.Equal(data, buf.Bytes())
}

func (m *Model) selected() (GoalItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visibleItems) {
		return GoalItem{}, false
	}
	return m.visibleItems[m.cursor], true
}

// moveCursorToGoal positions the cursor on the goal with the given index.
func (m *Model) moveCursorToGoal(index int) {
	for i, item := range m.visibleItems {
		if item.Index == index {
			m.cursor = i
			return
		}
	}
}

func (m *Model) rebuildVisible() {
	m.items = BuildItems(m.tracker.ListGoals())
	m.visibleItems = FilterItems(m.items, m.searchQuery)

	if m.cursor >= len(m.visibleItems) {
		m.cursor = len(m.visibleItems) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// getGlamourRenderer returns a cached glamour renderer, creating one if needed
// or if the width changed.
func (m *Model) getGlamourRenderer(width int) *glamour.TermRenderer {
	if width < 20 {
		width = 20
	}
	if m.glamourRenderer != nil && m.glamourWidth == width {
		return m.glamourRenderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	m.glamourRenderer = r
	m.glamourWidth = width
	return r
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTimeout = time.Now().Add(3 * time.Second)
}

func (m Model) doSync() tea.Cmd {
	dir := m.store.Root
	return func() tea.Msg {
		return SyncDoneMsg{Err: gsync.SyncRepo(dir, io.Discard)}
	}
}
