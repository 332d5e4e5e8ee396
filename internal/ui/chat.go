package ui

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/raphaelgruber/gemchat/internal/ai"
	"github.com/raphaelgruber/gemchat/internal/models"
	"github.com/raphaelgruber/gemchat/internal/validate"
)

const (
	// initialSeedCount messages seed a freshly opened, empty chatroom.
	initialSeedCount = 15

	// olderPageCount messages come back per "scroll up" fetch. Smaller than
	// the page size, so the second fetch ends the mock history.
	olderPageCount = 10

	// sendWindow throttles message submission and AI triggering.
	sendWindow = time.Second

	// pageFetchDelay fakes the round trip for an older-history page.
	pageFetchDelay = 600 * time.Millisecond

	typingFrame = 350 * time.Millisecond
)

type (
	olderPageMsg  struct{ roomID string }
	typingTickMsg struct{}

	aiReplyMsg struct {
		roomID string
		reply  *ai.Reply
		err    error
	}
)

// chatModel is the conversation screen: history, input, typing indicator.
type chatModel struct {
	deps   Deps
	roomID string

	input  textinput.Model
	thr    *Throttle
	scroll int
	dots   int

	errs map[string]string
}

func newChatModel(deps Deps, roomID string) chatModel {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.CharLimit = 2000
	input.Focus()

	return chatModel{
		deps:   deps,
		roomID: roomID,
		input:  input,
		thr:    NewThrottle(sendWindow),
	}
}

// enter seeds an empty chatroom with mock history so pagination has
// something to page over.
func (m chatModel) enter() tea.Cmd {
	if len(m.deps.Chat.Messages(m.roomID)) == 0 {
		m.deps.Chat.LoadMoreMessages(m.roomID, m.deps.API.MockHistory(initialSeedCount))
	}
	return nil
}

func (m chatModel) Update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case olderPageMsg:
		if msg.roomID != m.roomID {
			return m, nil
		}
		m.deps.Chat.LoadMoreMessages(m.roomID, m.deps.API.MockHistory(olderPageCount))
		m.deps.Chat.SetLoading(false)
		return m, nil

	case aiReplyMsg:
		m.deps.Chat.SetTyping(false)
		m.deps.Chat.SetLoading(false)
		if msg.err != nil {
			m.deps.Logger.Warn("AI response failed", "error", msg.err)
			return m, statusCmd("Failed to get AI response", true)
		}
		if !m.roomExists(msg.roomID) {
			// The target chatroom was deleted while the reply was pending.
			m.deps.Logger.Debug("dropping AI reply for deleted chatroom", "room_id", msg.roomID)
			return m, nil
		}
		m.deps.Chat.AddMessage(msg.roomID, models.Message{
			ID:        models.NewID(),
			Content:   msg.reply.Content,
			Type:      models.KindText,
			Sender:    models.SenderAI,
			Timestamp: msg.reply.Timestamp,
		})
		m.scroll = 0
		return m, nil

	case typingTickMsg:
		if m.deps.Chat.IsTyping() {
			m.dots = (m.dots + 1) % 4
			return m, tea.Tick(typingFrame, func(time.Time) tea.Msg { return typingTickMsg{} })
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m chatModel) updateKeys(msg tea.KeyPressMsg) (chatModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return leaveChatroomMsg{} }

	case "up", "pgup":
		m.scroll++
		if m.atTop() {
			return m.loadOlder()
		}
		return m, nil

	case "down", "pgdown":
		if m.scroll > 0 {
			m.scroll--
		}
		return m, nil

	case "enter":
		return m.send()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// atTop reports whether the view is scrolled past the oldest loaded line.
func (m chatModel) atTop() bool {
	return m.scroll >= len(m.deps.Chat.Messages(m.roomID))
}

// loadOlder fetches the next mock history page once per in-flight request.
func (m chatModel) loadOlder() (chatModel, tea.Cmd) {
	pag := m.deps.Chat.Pagination(m.roomID)
	if !pag.HasMore || m.deps.Chat.IsLoading() {
		m.scroll = len(m.deps.Chat.Messages(m.roomID))
		return m, nil
	}
	m.deps.Chat.SetLoading(true)
	roomID := m.roomID
	return m, tea.Tick(pageFetchDelay, func(time.Time) tea.Msg {
		return olderPageMsg{roomID: roomID}
	})
}

func (m chatModel) send() (chatModel, tea.Cmd) {
	content := strings.TrimSpace(m.input.Value())
	if content == "" {
		return m, nil
	}

	if path, ok := strings.CutPrefix(content, "/image "); ok {
		return m.sendImage(strings.TrimSpace(path))
	}

	if errs := validate.Check(validate.MessageInput{Content: content}); len(errs) > 0 {
		m.errs = errs
		return m, nil
	}
	m.errs = nil

	// Collapse bursts: one send per window, extra presses are dropped.
	if !m.thr.Allow() {
		return m, statusCmd("You're sending messages too quickly", true)
	}

	user := m.deps.Session.User()
	msg := models.Message{
		ID:        models.NewID(),
		Content:   content,
		Type:      models.KindText,
		Sender:    models.SenderUser,
		Timestamp: time.Now().UTC(),
	}
	if user != nil {
		msg.User = user.Snapshot()
	}
	m.deps.Chat.AddMessage(m.roomID, msg)
	m.input.SetValue("")
	m.scroll = 0

	m.deps.Chat.SetTyping(true)
	m.deps.Chat.SetLoading(true)

	return m, tea.Batch(
		tea.Tick(typingFrame, func(time.Time) tea.Msg { return typingTickMsg{} }),
		m.requestReply(content),
	)
}

// requestReply asks the responder for the assistant's answer off the event
// loop.
func (m chatModel) requestReply(content string) tea.Cmd {
	responder := m.deps.Responder
	roomID := m.roomID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		reply, err := responder.Respond(ctx, content)
		return aiReplyMsg{roomID: roomID, reply: reply, err: err}
	}
}

func (m chatModel) sendImage(path string) (chatModel, tea.Cmd) {
	info, err := os.Stat(path)
	if err != nil {
		return m, statusCmd("Failed to process image", true)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if err := validate.CheckImage(mimeType, info.Size()); err != nil {
		return m, statusCmd(capitalize(err.Error()), true)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return m, statusCmd("Failed to process image", true)
	}

	user := m.deps.Session.User()
	msg := models.Message{
		ID:        models.NewID(),
		Content:   "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
		Type:      models.KindImage,
		Sender:    models.SenderUser,
		Timestamp: time.Now().UTC(),
		ImageData: &models.ImageData{
			Name: filepath.Base(path),
			Size: info.Size(),
			Type: mimeType,
		},
	}
	if user != nil {
		msg.User = user.Snapshot()
	}
	m.deps.Chat.AddMessage(m.roomID, msg)
	m.input.SetValue("")
	m.scroll = 0
	return m, statusCmd("Image uploaded successfully", false)
}

func (m chatModel) roomExists(id string) bool {
	for _, room := range m.deps.Chat.Chatrooms() {
		if room.ID == id {
			return true
		}
	}
	return false
}

func (m chatModel) View(theme Theme, width, height int) string {
	room := m.deps.Chat.CurrentChatroom()
	msgs := m.deps.Chat.Messages(m.roomID)
	pag := m.deps.Chat.Pagination(m.roomID)

	var b strings.Builder

	title := "Chat"
	if room != nil {
		title = room.Title
	}
	b.WriteString(theme.titleStyle().Render(title) + "  " +
		theme.hintStyle().Render(fmt.Sprintf("%d messages", len(msgs))) + "\n")

	switch {
	case m.deps.Chat.IsLoading() && m.atTop():
		b.WriteString(theme.hintStyle().Render("Loading older messages…") + "\n")
	case pag.HasMore:
		b.WriteString(theme.hintStyle().Render("── scroll up for older messages ──") + "\n")
	default:
		b.WriteString(theme.hintStyle().Render("── beginning of conversation ──") + "\n")
	}

	lines := m.renderMessages(theme, width, msgs)

	visible := height - 7
	if visible < 3 {
		visible = 3
	}
	start := len(lines) - visible - m.scroll
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}
	b.WriteString(strings.Join(lines[start:end], "\n") + "\n")

	if m.deps.Chat.IsTyping() {
		b.WriteString(theme.aiTagStyle().Render("Gemini is typing"+strings.Repeat(".", m.dots)) + "\n")
	}

	b.WriteString(m.input.View() + "\n")
	if msg, ok := m.errs["Content"]; ok {
		b.WriteString(theme.errorStyle().Render(msg) + "\n")
	}
	b.WriteString(theme.hintStyle().Render("enter send · /image <path> attach · ↑/↓ scroll · esc back"))
	return b.String()
}

// renderMessages flattens the history into display lines with day headers.
func (m chatModel) renderMessages(theme Theme, width int, msgs []models.Message) []string {
	now := time.Now()
	wrap := theme.textStyle().Width(max(width-10, 20))

	var lines []string
	var lastDay string
	for _, msg := range msgs {
		day := formatDay(msg.Timestamp.Local(), now)
		if day != lastDay {
			lines = append(lines, theme.hintStyle().Render("── "+day+" ──"))
			lastDay = day
		}

		tag := theme.aiTagStyle().Render("Gemini")
		if msg.Sender == models.SenderUser {
			name := "You"
			if msg.User != nil && msg.User.Name != "" {
				name = msg.User.Name
			}
			tag = theme.userTagStyle().Render(name)
		}
		stamp := theme.hintStyle().Render(formatClock(msg.Timestamp.Local()))

		body := msg.Content
		if msg.Type == models.KindImage {
			body = "[image]"
			if msg.ImageData != nil {
				body = fmt.Sprintf("[image] %s (%s)", msg.ImageData.Name, formatSize(msg.ImageData.Size))
			}
		}

		lines = append(lines, fmt.Sprintf("%s %s", stamp, tag))
		lines = append(lines, strings.Split(wrap.Render(body), "\n")...)
	}
	return lines
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
