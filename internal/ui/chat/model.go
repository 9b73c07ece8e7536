// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/insightsbot/insights-tui/internal/config"
	"github.com/insightsbot/insights-tui/internal/logging"
	"github.com/insightsbot/insights-tui/internal/model"
	"github.com/insightsbot/insights-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady  State = iota // Ready for input
	StateAsking              // Question in flight to the backend
	StateTyping              // Revealing the answer
)

// welcomeText is the first bot entry shown when the welcome message is
// enabled in config.
const welcomeText = "Hello! I'm your **Marketing Insights Bot**. Ask me anything " +
	"about your marketing data and I'll analyze it for you.\n\n" +
	"Press `Ctrl+B` to review the company background I'm working from."

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Transcript
	transcript *model.Transcript

	// Backend client
	backend        Backend
	requestTimeout time.Duration

	// Typewriter animation. typingGen identifies the current run; ticks
	// carrying an older generation are dropped.
	typing    *typingSession
	typingGen int
	msPerChar int

	// In-flight request cancellation. Pointer to avoid copying the
	// mutex during Bubble Tea updates.
	cancelMgr *cancelManager

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	panel    *backgroundPanel
	markdown *markdownRenderer

	// Key bindings
	keyMap KeyMap

	// Status
	statusMsg          string
	totalRecords       int
	conversationLength int

	// Help overlay
	showHelp bool
}

// New creates a new chat model backed by the given client.
func New(theme *styles.Theme, backend Backend) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about your marketing data..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}

	msPerChar := DefaultTypingMsPerChar
	timeout := 60 * time.Second
	showWelcome := true
	if cfg := config.Global(); cfg != nil {
		if cfg.UI.TypingMsPerChar > 0 {
			msPerChar = cfg.UI.TypingMsPerChar
		}
		if cfg.Server.TimeoutSecs > 0 {
			timeout = time.Duration(cfg.Server.TimeoutSecs) * time.Second
		}
		showWelcome = cfg.UI.ShowWelcome
	}

	transcript := model.NewTranscript()
	if showWelcome {
		transcript.Append(model.KindBot, welcomeText)
	}

	return Model{
		state:          StateReady,
		theme:          theme,
		transcript:     transcript,
		backend:        backend,
		requestTimeout: timeout,
		msPerChar:      msPerChar,
		cancelMgr:      newCancelManager(),
		viewport:       vp,
		input:          ti,
		spinner:        sp,
		panel:          newBackgroundPanel(),
		markdown:       newMarkdownRenderer(78),
		keyMap:         DefaultKeyMap(),
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadBackgroundCmd())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case AskResultMsg:
		return m.handleAskResult(msg)

	case TypingTickMsg:
		return m.handleTypingTick(msg)

	case BackgroundLoadedMsg:
		return m.handleBackgroundLoaded(msg)

	case BackgroundSavedMsg:
		return m.handleBackgroundSaved(msg)

	case BackgroundResetMsg:
		return m.handleBackgroundReset(msg)

	case HistoryClearedMsg:
		return m.handleHistoryCleared(msg)

	case spinner.TickMsg:
		if m.state == StateAsking {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	default:
		var cmds []tea.Cmd
		if m.state == StateReady && !m.panel.editing() {
			var inputCmd tea.Cmd
			m.input, inputCmd = m.input.Update(msg)
			cmds = append(cmds, inputCmd)
		}

		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		cmds = append(cmds, vpCmd)

		return m, tea.Batch(cmds...)
	}
}

// View renders the chat view.
func (m Model) View() string {
	return m.renderChat()
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	m.recalcViewport()

	const promptLen = 2 // "> "
	inputWidth := m.width - 4 - promptLen
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth

	editorWidth := m.width - 8
	if editorWidth < 20 {
		editorWidth = 20
	}
	m.panel.editor.SetWidth(editorWidth)

	m.markdown.setWidth(m.width - 6)

	if m.theme != nil {
		m.theme.SetSize(m.width, m.height)
	}

	m.updateViewport()
	m.viewport.GotoBottom()

	return m, nil
}

// recalcViewport sizes the transcript viewport to the space left over
// by the fixed chrome. The panel claims rows only while visible.
func (m *Model) recalcViewport() {
	reserved := headerHeight + inputAreaHeight + statusBarHeight
	if m.panel.visible() {
		reserved += m.panelHeight()
	}

	vpHeight := m.height - reserved
	if vpHeight < 1 {
		vpHeight = 1
	}
	vpWidth := m.width
	if vpWidth < 1 {
		vpWidth = 1
	}

	m.viewport.Width = vpWidth
	m.viewport.Height = vpHeight
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	// Quit always works.
	if keyStr == "ctrl+c" || keyStr == "ctrl+q" {
		m.cancelMgr.cancel()
		return m, tea.Quit
	}

	// Help overlay swallows everything until dismissed.
	if m.showHelp {
		switch keyStr {
		case "?", "esc", "q", "enter":
			m.showHelp = false
		}
		return m, nil
	}

	// Reset confirmation owns input until answered.
	if m.panel.mode == panelConfirmReset {
		return m.handleConfirmResetKey(keyStr)
	}

	// The editor owns key input while editing.
	if m.panel.editing() {
		return m.handleEditKey(msg)
	}

	switch keyStr {
	case "ctrl+b":
		return m.togglePanel()

	case "esc":
		if m.state == StateTyping {
			return m.stopTyping()
		}
		if m.state == StateAsking {
			return m.cancelAsk()
		}
		if m.panel.visible() {
			m.panel.toggle()
			m.recalcViewport()
			m.updateViewport()
		}
		return m, nil

	case "enter":
		if m.state == StateReady {
			return m.submitInput()
		}
		return m, nil

	case "ctrl+x":
		if m.state == StateReady {
			m.statusMsg = "Clearing server history..."
			return m, m.clearHistoryCmd()
		}
		return m, nil

	case "ctrl+r":
		if m.panel.visible() && m.panel.info != nil && !m.panel.busy {
			m.panel.mode = panelConfirmReset
		}
		return m, nil

	case "e":
		// Edit only when the panel is open and the input is empty, so
		// "e" can still be typed into a question.
		if m.panel.mode == panelDisplay && m.input.Value() == "" {
			m.panel.beginEdit()
			m.recalcViewport()
			return m, textinput.Blink
		}

	case "?":
		if m.input.Value() == "" {
			m.showHelp = true
			return m, nil
		}

	case "pgup", "ctrl+u":
		m.viewport.HalfViewUp()
		return m, nil

	case "pgdown", "ctrl+d":
		m.viewport.HalfViewDown()
		return m, nil

	case "up":
		m.viewport.LineUp(1)
		return m, nil

	case "down":
		m.viewport.LineDown(1)
		return m, nil

	case "home":
		m.viewport.GotoTop()
		return m, nil

	case "end":
		m.viewport.GotoBottom()
		return m, nil
	}

	// Forward anything else to the text input while ready.
	if m.state == StateReady {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleConfirmResetKey resolves the y/n reset confirmation.
func (m Model) handleConfirmResetKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "y", "Y":
		m.panel.mode = panelDisplay
		m.panel.busy = true
		m.statusMsg = "Resetting background..."
		return m, m.resetBackgroundCmd()
	case "n", "N", "esc":
		m.panel.mode = panelDisplay
	}
	return m, nil
}

// handleEditKey routes keys while the background editor is focused.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.panel.cancelEdit()
		m.recalcViewport()
		m.statusMsg = "Edit cancelled"
		return m, nil

	case "ctrl+s":
		if m.panel.busy {
			return m, nil
		}
		if problem := m.panel.validateEdit(); problem != "" {
			// Local validation failure: logged as an error entry,
			// never sent to the server, edit mode retained.
			m.transcript.Append(model.KindError, problem)
			m.updateViewport()
			m.viewport.GotoBottom()
			return m, nil
		}
		m.panel.busy = true
		m.statusMsg = "Saving background..."
		return m, m.saveBackgroundCmd(m.panel.editor.Value())

	case "ctrl+b":
		m.panel.toggle()
		m.recalcViewport()
		m.updateViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.panel.editor, cmd = m.panel.editor.Update(msg)
	return m, cmd
}

// togglePanel shows or hides the background panel, fetching the info
// on first open.
func (m Model) togglePanel() (tea.Model, tea.Cmd) {
	m.panel.toggle()
	m.recalcViewport()
	m.updateViewport()

	if m.panel.visible() && m.panel.info == nil {
		return m, m.loadBackgroundCmd()
	}
	return m, nil
}

// =============================================================================
// ASK FLOW
// =============================================================================

// submitInput sends the current question. One question is in flight at
// a time; submissions during asking or typing never reach here because
// the key handler gates on StateReady.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	question := strings.TrimSpace(m.input.Value())
	if question == "" {
		return m, nil
	}

	user := m.transcript.Append(model.KindUser, question)
	placeholder := m.transcript.AppendPlaceholder()

	m.input.Reset()
	m.state = StateAsking
	m.statusMsg = ""
	m.updateViewport()
	m.viewport.GotoBottom()

	logging.Infof("asking: %s", user.Preview(80))
	return m, tea.Batch(m.spinner.Tick, m.askCmd(placeholder.ID, question))
}

// cancelAsk aborts the in-flight question. The placeholder entry is
// converted to a note instead of being removed; the transcript is
// append-only.
func (m Model) cancelAsk() (tea.Model, tea.Cmd) {
	m.cancelMgr.cancel()

	if last := m.transcript.Last(); last != nil && last.Loading {
		last.Loading = false
		last.Kind = model.KindSystem
		last.Content = "Question cancelled."
	}

	m.state = StateReady
	m.statusMsg = ""
	m.input.Focus()
	m.updateViewport()
	return m, textinput.Blink
}

func (m Model) handleAskResult(msg AskResultMsg) (tea.Model, tea.Cmd) {
	entry := m.transcript.Find(msg.EntryID)
	// A cancelled ask already resolved its placeholder; drop the result.
	if entry == nil || !entry.Loading {
		return m, nil
	}

	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			return m, nil
		}
		entry.Loading = false
		entry.Kind = model.KindError
		entry.Content = msg.Err.Error()
		m.state = StateReady
		m.input.Focus()
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, textinput.Blink
	}

	resp := msg.Response
	m.totalRecords = resp.TotalRecords
	m.conversationLength = resp.ConversationLength
	if resp.BackgroundInfo != nil {
		m.panel.setInfo(resp.BackgroundInfo)
	}
	if resp.Warning != "" {
		m.transcript.Append(model.KindSystem, resp.Warning)
	}

	// Start the typewriter reveal. The entry begins empty and fills as
	// ticks arrive.
	entry.Loading = false
	entry.Content = ""
	m.typingGen++
	m.typing = newTypingSession(m.typingGen, entry.ID, resp.Insights, m.msPerChar)
	m.state = StateTyping

	m.updateViewport()
	m.viewport.GotoBottom()
	return m, typingTickCmd(m.typingGen, m.typing.tickInterval())
}

// =============================================================================
// TYPING ANIMATION
// =============================================================================

func (m Model) handleTypingTick(msg TypingTickMsg) (tea.Model, tea.Cmd) {
	// Ticks from a finished or superseded animation are no-ops.
	if m.typing == nil || msg.Gen != m.typingGen {
		return m, nil
	}

	s := m.typing
	target := s.targetIndex(msg.Time)
	entry := m.transcript.Find(s.entryID)
	if entry == nil {
		m.typing = nil
		m.state = StateReady
		return m, nil
	}

	entry.Content = s.visibleText(target)
	s.lastIndex = target

	// Re-render only when the styled output actually changed, except
	// the final frame which always lands.
	rendered := m.renderEntries()
	finished := s.done()
	if rendered != s.lastRender || finished {
		s.lastRender = rendered
		m.setViewportContent(rendered)
	}

	if finished {
		m.typing = nil
		m.state = StateReady
		m.input.Focus()
		return m, textinput.Blink
	}

	return m, typingTickCmd(s.gen, s.tickInterval())
}

// stopTyping ends the animation early, leaving the revealed prefix in
// place as the entry's final content.
func (m Model) stopTyping() (tea.Model, tea.Cmd) {
	if m.typing == nil {
		m.state = StateReady
		return m, nil
	}

	// Bump the generation so in-flight ticks are dropped.
	m.typingGen++
	m.typing = nil
	m.state = StateReady
	m.statusMsg = "Answer stopped"
	m.input.Focus()
	m.updateViewport()
	return m, textinput.Blink
}

// =============================================================================
// BACKGROUND PANEL RESULTS
// =============================================================================

func (m Model) handleBackgroundLoaded(msg BackgroundLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.panel.loadErr = msg.Err
		return m, nil
	}
	m.panel.setInfo(msg.Info)
	m.recalcViewport()
	m.updateViewport()
	return m, nil
}

func (m Model) handleBackgroundSaved(msg BackgroundSavedMsg) (tea.Model, tea.Cmd) {
	m.panel.busy = false
	if msg.Err != nil {
		// Stay in edit mode so the text can be fixed and resubmitted.
		m.statusMsg = "Save failed: " + msg.Err.Error()
		return m, nil
	}

	if msg.Response.BackgroundInfo != nil {
		m.panel.setInfo(msg.Response.BackgroundInfo)
	}
	m.panel.finishEdit()
	m.recalcViewport()

	note := msg.Response.Message
	if note == "" {
		note = "Background updated successfully."
	}
	m.transcript.Append(model.KindSystem, note)
	m.statusMsg = ""
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

func (m Model) handleBackgroundReset(msg BackgroundResetMsg) (tea.Model, tea.Cmd) {
	m.panel.busy = false
	if msg.Err != nil {
		m.statusMsg = "Reset failed: " + msg.Err.Error()
		return m, nil
	}

	if msg.Response.BackgroundInfo != nil {
		m.panel.setInfo(msg.Response.BackgroundInfo)
	}

	note := msg.Response.Message
	if note == "" {
		note = "Background reset to original."
	}
	m.transcript.Append(model.KindSystem, note)
	m.statusMsg = ""
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// =============================================================================
// HISTORY
// =============================================================================

// handleHistoryCleared records the server-side reset in the transcript.
// The visible log is never wiped; clearing history affects only what
// the backend remembers.
func (m Model) handleHistoryCleared(msg HistoryClearedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.transcript.Append(model.KindError, "Failed to clear history: "+msg.Err.Error())
	} else {
		note := msg.Message
		if note == "" {
			note = "Conversation history cleared"
		}
		m.transcript.Append(model.KindSystem, note)
		m.conversationLength = 0
	}
	m.statusMsg = ""
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// =============================================================================
// VIEWPORT UPDATE
// =============================================================================

func (m *Model) updateViewport() {
	m.setViewportContent(m.renderEntries())
}

// setViewportContent replaces the viewport content, keeping the view
// pinned to the bottom when it was already near it. A reader who has
// scrolled up stays where they are.
func (m *Model) setViewportContent(content string) {
	const tolerance = 2
	nearBottom := m.viewport.YOffset+m.viewport.Height >= m.viewport.TotalLineCount()-tolerance

	m.viewport.SetContent(content)

	if nearBottom {
		m.viewport.GotoBottom()
	}
}

// =============================================================================
// GETTERS
// =============================================================================

// GetState returns the current state.
func (m *Model) GetState() State {
	return m.state
}

// Transcript returns the chat transcript.
func (m *Model) Transcript() *model.Transcript {
	return m.transcript
}
