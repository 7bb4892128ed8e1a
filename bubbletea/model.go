package bubbletea

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/banter"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"
)

var _ tea.Model = Model{}

const defaultTitle = "AI Chat Assistant"

// Config holds optional collaborators and display settings for the TUI.
type Config struct {
	// Title is shown in the header line.
	Title string
	// Copy writes text to the system clipboard. Nil disables copying.
	Copy func(string) error
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// Logger receives turn lifecycle events. Nil discards them.
	Logger *zerolog.Logger
}

// Model is the Bubble Tea model for the chat TUI. It drives the submit
// lifecycle of a Conversation and keeps one block per conversation entry.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable message list. Exported for test access.
	Viewport viewport.Model

	client banter.Client
	conv   *banter.Conversation
	theme  banter.Theme
	styles Styles
	config Config
	now    func() time.Time
	logger zerolog.Logger

	blocks  []MessageBlock
	pending *PendingBlock

	cancel    context.CancelFunc
	sentAt    time.Time
	notice    string
	noticeErr bool
	width     int
	ready     bool
}

// New creates a new TUI Model that sends turns through client and records
// them in conv.
func New(client banter.Client, conv *banter.Conversation, theme banter.Theme, config Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Type your message..."
	ti.Prompt = "› "
	ti.Focus()
	ti.CharLimit = 0

	if config.Title == "" {
		config.Title = defaultTitle
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	m := Model{
		Input:  ti,
		client: client,
		conv:   conv,
		theme:  theme,
		styles: NewStyles(theme),
		config: config,
		now:    now,
		logger: logger,
	}
	return m.renderConversation()
}

// Sending returns whether a turn is awaiting its reply.
func (m Model) Sending() bool { return m.conv.State() == banter.StateAwaitingResponse }

// Err returns the current error banner text, if any.
func (m Model) Err() string { return m.conv.Err() }

// Notice returns the transient status message, if any.
func (m Model) Notice() string { return m.notice }

// Blocks returns the rendered blocks in conversation order.
func (m Model) Blocks() []MessageBlock { return m.blocks }

// Close cancels the request in flight, if any.
func (m Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		return m.settle(msg)

	case RevealTickMsg:
		return m.forwardToBlocks(msg)

	case spinner.TickMsg:
		return m.forwardToBlocks(msg)

	case ClipboardMsg:
		if msg.Err != nil {
			m.notice, m.noticeErr = "Copy failed: "+msg.Err.Error(), true
			m.logger.Warn().Err(msg.Err).Msg("clipboard write failed")
		} else {
			m.notice, m.noticeErr = "Copied code to clipboard", false
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	if !m.Sending() {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(m.config.Title))
	b.WriteString("\n")
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	headerHeight := 1
	statusHeight := 1
	inputHeight := 1
	borderHeight := 2 // blank separators around the viewport
	vpHeight := msg.Height - headerHeight - statusHeight - inputHeight - borderHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.width = msg.Width
	m.Input.Width = msg.Width - lipgloss.Width(m.Input.Prompt) - 1
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.Close()
		m.cancel = nil
		return m, tea.Quit

	case tea.KeyEnter:
		if m.Sending() {
			return m, nil
		}
		return m.submit(m.Input.Value())

	case tea.KeyCtrlY:
		return m.copyCode()
	}

	if m.Sending() {
		return m, nil
	}

	// Keys other than typed characters also scroll the viewport.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit starts a turn. Blank input changes nothing.
func (m Model) submit(raw string) (tea.Model, tea.Cmd) {
	turn, err := m.conv.Submit(raw, m.now())
	if err != nil {
		return m, nil
	}
	m.notice, m.noticeErr = "", false

	m.pending = NewPendingBlock(m.styles)
	m.blocks = append(m.blocks, NewUserMessageBlock(turn.User, m.styles), m.pending)
	m = m.refresh(true)

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.sentAt = m.now()
	m.Input.Blur()

	m.logger.Info().Str("turn", turn.ID).Int("text_len", len(turn.User.Text)).Msg("turn submitted")
	return m, tea.Batch(
		sendTurn(ctx, m.client, turn),
		m.pending.Init(),
	)
}

// settle replaces the pending block with the reply, fallback or diagnostic
// and returns the model to idle.
func (m Model) settle(msg ReplyMsg) (tea.Model, tea.Cmd) {
	now := m.now()
	var (
		bot banter.Message
		err error
	)
	if msg.Err != nil {
		bot, err = m.conv.Fail(msg.TurnID, msg.Err, now)
	} else {
		bot, err = m.conv.Resolve(msg.TurnID, msg.Text, now)
	}
	if err != nil {
		m.logger.Warn().Str("turn", msg.TurnID).Err(err).Msg("reply dropped")
		return m, nil
	}

	event := m.logger.Info()
	if msg.Err != nil {
		event = m.logger.Warn().Err(msg.Err)
	}
	event.Str("turn", msg.TurnID).
		Bool("timeout", errors.Is(msg.Err, banter.ErrTimeout)).
		Dur("elapsed", now.Sub(m.sentAt)).
		Msg("turn settled")

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	block := NewBotMessageBlock(bot, m.theme, m.styles)
	for i := len(m.blocks) - 1; i >= 0; i-- {
		if m.blocks[i] == MessageBlock(m.pending) {
			m.blocks[i] = block
			break
		}
	}
	m.pending = nil
	m = m.refresh(true)

	m.Input.SetValue("")
	return m, tea.Batch(block.Start(now), m.Input.Focus())
}

func (m Model) copyCode() (tea.Model, tea.Cmd) {
	if m.config.Copy == nil {
		m.notice, m.noticeErr = "Clipboard unavailable", true
		return m, nil
	}
	history := m.conv.History()
	for i := len(history) - 1; i >= 0; i-- {
		msg := history[i]
		if !msg.Bot || banter.Classify(msg.Text) != banter.KindCode {
			continue
		}
		code := banter.StripFences(msg.Text)
		copyFn := m.config.Copy
		return m, func() tea.Msg {
			return ClipboardMsg{Err: copyFn(code)}
		}
	}
	m.notice, m.noticeErr = "No code reply to copy", false
	return m, nil
}

// forwardToBlocks delivers a timer message to every block and re-renders.
// The viewport follows new content only when it was already at the bottom.
func (m Model) forwardToBlocks(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for i, block := range m.blocks {
		updated, cmd := block.Update(msg)
		m.blocks[i] = updated
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	m = m.refresh(m.Viewport.AtBottom())
	return m, tea.Batch(cmds...)
}

// renderConversation creates blocks from the conversation's current entries.
// Committed bot messages are shown in full.
func (m Model) renderConversation() Model {
	m.blocks = nil
	m.pending = nil
	for _, e := range m.conv.Entries() {
		switch {
		case e.Pending:
			m.pending = NewPendingBlock(m.styles)
			m.blocks = append(m.blocks, m.pending)
		case e.Bot:
			m.blocks = append(m.blocks, NewBotMessageBlock(e.Message, m.theme, m.styles))
		default:
			m.blocks = append(m.blocks, NewUserMessageBlock(e.Message, m.styles))
		}
	}
	return m
}

// refresh re-renders the message list. Any change to the list of blocks
// passes follow=true so the newest message is scrolled into view.
func (m Model) refresh(follow bool) Model {
	if !m.ready {
		return m
	}
	m.Viewport.SetContent(m.renderContent())
	if follow {
		m.Viewport.GotoBottom()
	}
	return m
}

func (m Model) renderContent() string {
	views := make([]string, len(m.blocks))
	for i, block := range m.blocks {
		views[i] = block.View(m.Viewport.Width)
	}
	return strings.Join(views, "\n\n")
}

func (m Model) statusLine() string {
	var (
		text  string
		style lipgloss.Style
	)
	switch {
	case m.conv.Err() != "":
		text, style = "Error: "+m.conv.Err(), m.styles.Error
	case m.notice != "" && m.noticeErr:
		text, style = m.notice, m.styles.Error
	case m.notice != "":
		text, style = m.notice, m.styles.Success
	case m.Sending():
		text, style = "Waiting for reply...", m.styles.Muted
	default:
		text, style = "Enter to send · Ctrl+Y copy code · Ctrl+C quit", m.styles.Muted
	}
	if m.width > 0 {
		text = runewidth.Truncate(text, m.width, "…")
	}
	return style.Render(text)
}

// sendTurn performs the chat call for turn and reports its outcome.
func sendTurn(ctx context.Context, client banter.Client, turn banter.Turn) tea.Cmd {
	return func() tea.Msg {
		text, err := client.Send(ctx, turn.User.Text)
		return ReplyMsg{TurnID: turn.ID, Text: text, Err: err}
	}
}
