package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/glass-forest/internal/session"
	"github.com/jwebster45206/glass-forest/pkg/effect"
	"github.com/jwebster45206/glass-forest/pkg/state"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const PlaceHolderText = "What do you do?"

type entryKind int

const (
	entryNarration entryKind = iota
	entryPlayer
	entryNotice
	entryError
)

type logEntry struct {
	kind entryKind
	text string
}

// copyFunc puts text on the system clipboard.
var copyFunc = clipboard.WriteAll

// ConsoleUI is the BubbleTea model that runs the game.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	ctx          context.Context
	session      *session.Session
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int

	entries     []logEntry
	lastMessage string
	ended       bool

	// Quit confirmation state
	showQuitModal bool
}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(ctx context.Context, sess *session.Session) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(session.Prompt)
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	m := ConsoleUI{
		ctx:          ctx,
		session:      sess,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
	}
	m.narrate(sess.Describe())
	return m
}

// narrate appends game text and remembers it for /copy.
func (m *ConsoleUI) narrate(text string) {
	m.entries = append(m.entries, logEntry{kind: entryNarration, text: text})
	m.lastMessage = text
}

func (m *ConsoleUI) notice(kind entryKind, text string) {
	m.entries = append(m.entries, logEntry{kind: kind, text: text})
}

func writeMetadata(gs *state.GameState) string {
	title := cases.Title(language.English)

	var content strings.Builder
	content.WriteString(titleStyle.Render("GAME STATE") + "\n\n")

	content.WriteString("Game ID:\n")
	content.WriteString(gs.ID.String()[:8] + "...\n\n")

	content.WriteString("Location:\n")
	if loc, ok := gs.CurrentLocation(); ok && loc.Name != "" {
		content.WriteString(title.String(loc.Name) + "\n\n")
	} else {
		content.WriteString(title.String(strings.ReplaceAll(gs.Player.Location, "_", " ")) + "\n\n")
	}

	content.WriteString("Traits:\n")
	for _, t := range effect.Traits {
		content.WriteString(fmt.Sprintf("• %s: %d\n", title.String(string(t)), gs.Player.Trait(t)))
	}
	content.WriteString("\n")

	content.WriteString("Inventory:\n")
	if len(gs.Player.Inventory) == 0 {
		content.WriteString("Empty\n")
	} else {
		for _, item := range gs.Player.Inventory {
			content.WriteString("• " + title.String(item) + "\n")
		}
	}

	content.WriteString(fmt.Sprintf("\nTurns: %d\n\n", gs.TurnCounter))

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• /copy: Copy text\n")

	return content.String()
}

// writeChatContent rebuilds the log for the current viewport width.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding
	if chatWidth < 10 {
		chatWidth = 10
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("GLASS FOREST") + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth)) + "\n\n")

	for _, e := range m.entries {
		switch e.kind {
		case entryNarration:
			content.WriteString(narratorStyle.Render(wordwrap.String(e.text, chatWidth)) + "\n\n")
		case entryPlayer:
			content.WriteString(userStyle.Render(session.Prompt) + wordwrap.String(e.text, chatWidth-len(session.Prompt)) + "\n\n")
		case entryNotice:
			content.WriteString(noticeStyle.Render(wordwrap.String(e.text, chatWidth)) + "\n\n")
		case entryError:
			content.WriteString(errorStyle.Render(wordwrap.String(e.text, chatWidth)) + "\n\n")
		}
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m *ConsoleUI) resize() {
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(writeMetadata(m.session.GameState()))

	case tea.KeyMsg:
		if m.ended {
			return m, tea.Quit
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}
			if strings.HasPrefix(input, "/") {
				return m.handleSlashCommand(input)
			}
			return m.play(input), nil
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// play runs one game turn and appends its output to the log.
func (m ConsoleUI) play(input string) ConsoleUI {
	before := m.session.GameState().Player.Location

	m.entries = append(m.entries, logEntry{kind: entryPlayer, text: input})
	res := m.session.Step(m.ctx, input)
	if res.Message != "" {
		m.narrate(res.Message)
	}

	if res.Quit {
		m.ended = true
		m.notice(entryNotice, state.MsgFarewell)
		m.notice(entryNotice, "Press any key to close.")
		m.textarea.Blur()
	} else if res.Location != before {
		m.narrate(m.session.Describe())
	}

	m.writeChatContent()
	m.metaViewport.SetContent(writeMetadata(m.session.GameState()))
	return m
}

func (m ConsoleUI) handleSlashCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))

	switch cmd {
	case "/help":
		m.notice(entryNotice, `Commands:
• /help - Show this help
• /copy - Copy the last text to the clipboard
• Ctrl+C - Quit game

How to play:
• Type an action such as "look" or "take glass shard" and press Enter
• Type "help" to see what you can do where you are`)

	case "/copy":
		if m.lastMessage == "" {
			m.notice(entryNotice, "Nothing to copy yet.")
		} else if err := copyFunc(m.lastMessage); err != nil {
			m.notice(entryError, "Error: "+err.Error())
		} else {
			m.notice(entryNotice, "Copied to clipboard.")
		}

	default:
		m.notice(entryError, fmt.Sprintf("Unknown console command %s. Try /help.", cmd))
	}

	m.writeChatContent()
	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to leave the simulation?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 0))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}
