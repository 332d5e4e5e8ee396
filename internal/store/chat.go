package store

import (
	"log/slog"
	"strings"
	"time"

	"github.com/raphaelgruber/gemchat/internal/models"
	"github.com/raphaelgruber/gemchat/internal/storage"
)

// Chat owns the chatroom list, the per-chatroom message lists and pagination
// cursors, and the UI filter state. Chatrooms are kept newest-first; message
// order within a room is append order. The "current chatroom" is a
// non-owning reference by id, cleared when its target is deleted.
type Chat struct {
	repo   storage.Repository
	logger *slog.Logger

	pageSize int

	chatrooms  []models.Chatroom
	currentID  string
	messages   map[string][]models.Message
	pagination map[string]models.Pagination

	isLoading   bool
	isTyping    bool
	searchQuery string
	darkMode    bool
}

// chatSnapshot is the persisted subset of the chat state.
type chatSnapshot struct {
	Chatrooms  []models.Chatroom            `json:"chatrooms"`
	Messages   map[string][]models.Message  `json:"messages"`
	Pagination map[string]models.Pagination `json:"pagination"`
	DarkMode   bool                         `json:"darkMode"`
}

// NewChat rehydrates the chat state from the repository.
func NewChat(repo storage.Repository, logger *slog.Logger, pageSize int) *Chat {
	c := &Chat{
		repo:       repo,
		logger:     logger,
		pageSize:   pageSize,
		messages:   make(map[string][]models.Message),
		pagination: make(map[string]models.Pagination),
	}

	var snap chatSnapshot
	found, err := repo.Load(storage.KeyChat, &snap)
	if err != nil {
		logger.Warn("failed to load chat snapshot", "error", err)
	}
	if found {
		c.chatrooms = snap.Chatrooms
		c.darkMode = snap.DarkMode
		if snap.Messages != nil {
			c.messages = snap.Messages
		}
		if snap.Pagination != nil {
			c.pagination = snap.Pagination
		}
	}
	return c
}

// CreateChatroom allocates a chatroom with a fresh id and prepends it to the
// list (newest first). Its message list starts empty and its cursor at the
// default. Duplicate titles are permitted.
func (c *Chat) CreateChatroom(title string) models.Chatroom {
	room := models.Chatroom{
		ID:        models.NewID(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	c.chatrooms = append([]models.Chatroom{room}, c.chatrooms...)
	c.messages[room.ID] = []models.Message{}
	c.pagination[room.ID] = models.DefaultPagination()
	c.persist()

	c.logger.Info("chatroom created", "id", room.ID, "title", title)
	return room
}

// DeleteChatroom removes the chatroom and cascades to its message list and
// pagination cursor. Deleting the current selection clears it. Unknown ids
// are a no-op.
func (c *Chat) DeleteChatroom(id string) {
	kept := c.chatrooms[:0]
	for _, room := range c.chatrooms {
		if room.ID != id {
			kept = append(kept, room)
		}
	}
	c.chatrooms = kept
	delete(c.messages, id)
	delete(c.pagination, id)
	if c.currentID == id {
		c.currentID = ""
	}
	c.persist()
}

// SetCurrentChatroom sets the non-owning current-room reference. The empty
// id deselects and returns the caller to the list view.
func (c *Chat) SetCurrentChatroom(id string) {
	c.currentID = id
}

// AddMessage appends a message to the chatroom's list, creating the list if
// absent, and recomputes the room's preview and count. The count derives
// from the list length before the append; the pagination cursor is untouched.
func (c *Chat) AddMessage(chatroomID string, msg models.Message) {
	prior := c.messages[chatroomID]
	count := len(prior) + 1
	c.messages[chatroomID] = append(prior, msg)

	for i := range c.chatrooms {
		if c.chatrooms[i].ID == chatroomID {
			content := msg.Content
			c.chatrooms[i].LastMessage = &content
			c.chatrooms[i].MessageCount = count
			break
		}
	}
	c.persist()
}

// LoadMoreMessages prepends an older page of history and advances the
// cursor. HasMore flips to false once a batch comes back short of the page
// size and never flips back on its own. The same primitive also seeds a
// freshly created chatroom with its initial history.
func (c *Chat) LoadMoreMessages(chatroomID string, older []models.Message) {
	current := c.messages[chatroomID]
	merged := make([]models.Message, 0, len(older)+len(current))
	merged = append(merged, older...)
	merged = append(merged, current...)
	c.messages[chatroomID] = merged

	cursor, ok := c.pagination[chatroomID]
	if !ok {
		cursor = models.DefaultPagination()
	}
	cursor.CurrentPage++
	cursor.HasMore = len(older) == c.pageSize
	c.pagination[chatroomID] = cursor
	c.persist()
}

// InitializeMessages replaces a chatroom's history with a known prefix of a
// larger total, resetting the cursor to page one.
func (c *Chat) InitializeMessages(chatroomID string, msgs []models.Message, totalCount int) {
	c.messages[chatroomID] = msgs
	c.pagination[chatroomID] = models.Pagination{
		CurrentPage:   1,
		HasMore:       len(msgs) < totalCount,
		TotalMessages: totalCount,
	}
	c.persist()
}

// SetLoading toggles the transient loading flag. Not persisted.
func (c *Chat) SetLoading(v bool) { c.isLoading = v }

// SetTyping toggles the transient AI-typing flag. Not persisted.
func (c *Chat) SetTyping(v bool) { c.isTyping = v }

// SetSearchQuery sets the dashboard filter text.
func (c *Chat) SetSearchQuery(q string) { c.searchQuery = q }

// ToggleDarkMode flips the theme flag and persists it.
func (c *Chat) ToggleDarkMode() {
	c.darkMode = !c.darkMode
	c.persist()
}

// FilteredChatrooms returns chatrooms whose title contains the search query,
// case-insensitively. An empty query returns the full list.
func (c *Chat) FilteredChatrooms() []models.Chatroom {
	if c.searchQuery == "" {
		return c.chatrooms
	}
	q := strings.ToLower(c.searchQuery)
	var filtered []models.Chatroom
	for _, room := range c.chatrooms {
		if strings.Contains(strings.ToLower(room.Title), q) {
			filtered = append(filtered, room)
		}
	}
	return filtered
}

// Chatrooms returns the full chatroom list, newest first.
func (c *Chat) Chatrooms() []models.Chatroom { return c.chatrooms }

// CurrentChatroom returns a copy of the selected chatroom, or nil.
func (c *Chat) CurrentChatroom() *models.Chatroom {
	if c.currentID == "" {
		return nil
	}
	for _, room := range c.chatrooms {
		if room.ID == c.currentID {
			r := room
			return &r
		}
	}
	return nil
}

// CurrentMessages returns the selected chatroom's messages, empty when
// nothing is selected.
func (c *Chat) CurrentMessages() []models.Message {
	if c.currentID == "" {
		return nil
	}
	return c.messages[c.currentID]
}

// CurrentPagination returns the selected chatroom's cursor, or the default
// when nothing is selected.
func (c *Chat) CurrentPagination() models.Pagination {
	if c.currentID != "" {
		if cursor, ok := c.pagination[c.currentID]; ok {
			return cursor
		}
	}
	return models.DefaultPagination()
}

// Messages returns the message list for a chatroom id.
func (c *Chat) Messages(chatroomID string) []models.Message {
	return c.messages[chatroomID]
}

// Pagination returns the cursor for a chatroom id, defaulted when untracked.
func (c *Chat) Pagination(chatroomID string) models.Pagination {
	if cursor, ok := c.pagination[chatroomID]; ok {
		return cursor
	}
	return models.DefaultPagination()
}

// IsLoading reports the transient loading flag.
func (c *Chat) IsLoading() bool { return c.isLoading }

// IsTyping reports the transient AI-typing flag.
func (c *Chat) IsTyping() bool { return c.isTyping }

// SearchQuery returns the dashboard filter text.
func (c *Chat) SearchQuery() string { return c.searchQuery }

// DarkMode reports the theme flag.
func (c *Chat) DarkMode() bool { return c.darkMode }

// PageSize returns the configured messages-per-page.
func (c *Chat) PageSize() int { return c.pageSize }

func (c *Chat) persist() {
	snap := chatSnapshot{
		Chatrooms:  c.chatrooms,
		Messages:   c.messages,
		Pagination: c.pagination,
		DarkMode:   c.darkMode,
	}
	if err := c.repo.Save(storage.KeyChat, snap); err != nil {
		c.logger.Warn("failed to persist chat snapshot", "error", err)
	}
}
