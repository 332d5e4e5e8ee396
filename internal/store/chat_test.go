package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/gemchat/internal/models"
	"github.com/raphaelgruber/gemchat/internal/storage"
)

func newChat(t *testing.T) *Chat {
	t.Helper()
	return NewChat(storage.NewMemoryRepository(), testLogger(), 20)
}

func textMessage(content string, sender models.Sender) models.Message {
	return models.Message{
		ID:        models.NewID(),
		Content:   content,
		Type:      models.KindText,
		Sender:    sender,
		Timestamp: time.Now().UTC(),
	}
}

func TestChat_CreateChatroom(t *testing.T) {
	c := newChat(t)

	room := c.CreateChatroom("Test")

	assert.Len(t, room.Title, 4)
	assert.Zero(t, room.MessageCount)
	assert.Nil(t, room.LastMessage)
	assert.NotEmpty(t, room.ID)
	assert.False(t, room.CreatedAt.IsZero())

	require.Len(t, c.Chatrooms(), 1)
	assert.Empty(t, c.Messages(room.ID))
	assert.Equal(t, models.DefaultPagination(), c.Pagination(room.ID))
}

func TestChat_CreateChatroom_NewestFirst(t *testing.T) {
	c := newChat(t)

	c.CreateChatroom("first")
	c.CreateChatroom("second")
	c.CreateChatroom("third")

	rooms := c.Chatrooms()
	require.Len(t, rooms, 3)
	assert.Equal(t, "third", rooms[0].Title)
	assert.Equal(t, "first", rooms[2].Title)
}

func TestChat_CreateChatroom_DuplicateTitlesPermitted(t *testing.T) {
	c := newChat(t)

	a := c.CreateChatroom("same")
	b := c.CreateChatroom("same")

	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, c.Chatrooms(), 2)
}

func TestChat_CreateThenDeleteRoundTrip(t *testing.T) {
	c := newChat(t)
	c.CreateChatroom("survivor")
	before := len(c.Chatrooms())

	room := c.CreateChatroom("ephemeral")
	c.DeleteChatroom(room.ID)

	assert.Len(t, c.Chatrooms(), before)
	assert.Nil(t, c.Messages(room.ID))
	assert.Equal(t, models.DefaultPagination(), c.Pagination(room.ID))
}

func TestChat_DeleteChatroom(t *testing.T) {
	c := newChat(t)
	room := c.CreateChatroom("Test")
	c.SetCurrentChatroom(room.ID)
	c.AddMessage(room.ID, textMessage("hi", models.SenderUser))

	c.DeleteChatroom(room.ID)

	assert.Empty(t, c.Chatrooms())
	assert.Nil(t, c.CurrentChatroom(), "deleting the current room clears the selection")
	assert.Empty(t, c.CurrentMessages())
}

func TestChat_DeleteChatroom_UnknownIDIsNoop(t *testing.T) {
	c := newChat(t)
	c.CreateChatroom("keep")

	c.DeleteChatroom("no-such-id")

	assert.Len(t, c.Chatrooms(), 1)
}

func TestChat_AddMessage_AppendOnly(t *testing.T) {
	c := newChat(t)
	room := c.CreateChatroom("appends")

	const n = 5
	for i := 0; i < n; i++ {
		c.AddMessage(room.ID, textMessage(fmt.Sprintf("msg %d", i), models.SenderUser))
	}

	msgs := c.Messages(room.ID)
	require.Len(t, msgs, n)
	for i, m := range msgs {
		assert.Equal(t, fmt.Sprintf("msg %d", i), m.Content, "messages stay in call order")
	}
}

func TestChat_AddMessage_UpdatesPreviewAndCount(t *testing.T) {
	c := newChat(t)
	room := c.CreateChatroom("Test")

	c.AddMessage(room.ID, textMessage("hi", models.SenderUser))

	updated := c.Chatrooms()[0]
	require.NotNil(t, updated.LastMessage)
	assert.Equal(t, "hi", *updated.LastMessage)
	assert.Equal(t, 1, updated.MessageCount)

	c.AddMessage(room.ID, textMessage("there", models.SenderAI))
	updated = c.Chatrooms()[0]
	assert.Equal(t, "there", *updated.LastMessage)
	assert.Equal(t, 2, updated.MessageCount)
}

func TestChat_AddMessage_CreatesMissingList(t *testing.T) {
	c := newChat(t)
	room := c.CreateChatroom("Test")
	// Simulate a snapshot that lost the message list but kept the room.
	delete(c.messages, room.ID)

	c.AddMessage(room.ID, textMessage("hi", models.SenderUser))

	require.Len(t, c.Messages(room.ID), 1)
	assert.Equal(t, 1, c.Chatrooms()[0].MessageCount)
}

func TestChat_AddMessage_DoesNotTouchPagination(t *testing.T) {
	c := newChat(t)
	room := c.CreateChatroom("Test")
	before := c.Pagination(room.ID)

	c.AddMessage(room.ID, textMessage("hi", models.SenderUser))

	assert.Equal(t, before, c.Pagination(room.ID))
}

func TestChat_LoadMoreMessages_Prepends(t *testing.T) {
	c := newChat(t)
	room := c.CreateChatroom("history")
	c.AddMessage(room.ID, textMessage("m1", models.SenderUser))
	c.AddMessage(room.ID, textMessage("m2", models.SenderAI))

	older := []models.Message{
		textMessage("o1", models.SenderUser),
		textMessage("o2", models.SenderAI),
	}
	c.LoadMoreMessages(room.ID, older)

	msgs := c.Messages(room.ID)
	require.Len(t, msgs, 4)
	assert.Equal(t, "o1", msgs[0].Content)
	assert.Equal(t, "o2", msgs[1].Content)
	assert.Equal(t, "m1", msgs[2].Content)
	assert.Equal(t, "m2", msgs[3].Content)
}

func TestChat_LoadMoreMessages_Cursor(t *testing.T) {
	tests := []struct {
		name        string
		batchSize   int
		wantHasMore bool
	}{
		{name: "full page keeps hasMore", batchSize: 20, wantHasMore: true},
		{name: "short page ends history", batchSize: 7, wantHasMore: false},
		{name: "empty page ends history", batchSize: 0, wantHasMore: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newChat(t)
			room := c.CreateChatroom("pages")

			batch := make([]models.Message, tt.batchSize)
			for i := range batch {
				batch[i] = textMessage(fmt.Sprintf("o%d", i), models.SenderAI)
			}
			c.LoadMoreMessages(room.ID, batch)

			cursor := c.Pagination(room.ID)
			assert.Equal(t, 2, cursor.CurrentPage)
			assert.Equal(t, tt.wantHasMore, cursor.HasMore)
		})
	}
}

func TestChat_LoadMoreMessages_HasMoreNeverRevertsOnItsOwn(t *testing.T) {
	c := newChat(t)
	room := c.CreateChatroom("terminal")

	c.LoadMoreMessages(room.ID, []models.Message{textMessage("o1", models.SenderAI)})
	require.False(t, c.Pagination(room.ID).HasMore)

	full := make([]models.Message, c.PageSize())
	for i := range full {
		full[i] = textMessage(fmt.Sprintf("f%d", i), models.SenderAI)
	}
	c.LoadMoreMessages(room.ID, full)
	// A later full page does recompute the heuristic; only appends and UI
	// flags must leave a terminal cursor alone.
	assert.True(t, c.Pagination(room.ID).HasMore)

	c.LoadMoreMessages(room.ID, nil)
	require.False(t, c.Pagination(room.ID).HasMore)
	c.AddMessage(room.ID, textMessage("new", models.SenderUser))
	c.SetTyping(true)
	c.SetLoading(true)
	assert.False(t, c.Pagination(room.ID).HasMore)
}

func TestChat_InitializeMessages(t *testing.T) {
	c := newChat(t)
	room := c.CreateChatroom("seeded")

	seed := []models.Message{
		textMessage("s1", models.SenderUser),
		textMessage("s2", models.SenderAI),
	}
	c.InitializeMessages(room.ID, seed, 10)

	require.Len(t, c.Messages(room.ID), 2)
	cursor := c.Pagination(room.ID)
	assert.Equal(t, 1, cursor.CurrentPage)
	assert.True(t, cursor.HasMore)
	assert.Equal(t, 10, cursor.TotalMessages)

	// Loading the whole history up front leaves nothing more to fetch.
	c.InitializeMessages(room.ID, seed, 2)
	assert.False(t, c.Pagination(room.ID).HasMore)
}

func TestChat_FilteredChatrooms(t *testing.T) {
	c := newChat(t)
	c.CreateChatroom("General")
	c.CreateChatroom("Work Notes")
	c.CreateChatroom("generally speaking")

	tests := []struct {
		query string
		want  int
	}{
		{query: "", want: 3},
		{query: "general", want: 2},
		{query: "GENERAL", want: 2},
		{query: "work", want: 1},
		{query: "nothing here", want: 0},
	}

	for _, tt := range tests {
		t.Run("query="+tt.query, func(t *testing.T) {
			c.SetSearchQuery(tt.query)
			assert.Len(t, c.FilteredChatrooms(), tt.want)
		})
	}
}

func TestChat_CurrentProjectionsWithoutSelection(t *testing.T) {
	c := newChat(t)
	c.CreateChatroom("ignored")

	assert.Nil(t, c.CurrentChatroom())
	assert.Empty(t, c.CurrentMessages())
	assert.Equal(t, models.DefaultPagination(), c.CurrentPagination())
}

func TestChat_CurrentProjectionsWithSelection(t *testing.T) {
	c := newChat(t)
	room := c.CreateChatroom("selected")
	c.SetCurrentChatroom(room.ID)
	c.AddMessage(room.ID, textMessage("hi", models.SenderUser))

	require.NotNil(t, c.CurrentChatroom())
	assert.Equal(t, room.ID, c.CurrentChatroom().ID)
	assert.Len(t, c.CurrentMessages(), 1)

	c.SetCurrentChatroom("")
	assert.Nil(t, c.CurrentChatroom())
	assert.Empty(t, c.CurrentMessages())
}

func TestChat_ToggleDarkModePersists(t *testing.T) {
	repo := storage.NewMemoryRepository()
	c := NewChat(repo, testLogger(), 20)

	c.ToggleDarkMode()
	assert.True(t, c.DarkMode())

	restored := NewChat(repo, testLogger(), 20)
	assert.True(t, restored.DarkMode())
}

func TestChat_SnapshotRoundTrip(t *testing.T) {
	repo := storage.NewMemoryRepository()
	c := NewChat(repo, testLogger(), 20)

	room := c.CreateChatroom("persisted")
	c.AddMessage(room.ID, textMessage("hello", models.SenderUser))
	c.LoadMoreMessages(room.ID, []models.Message{textMessage("old", models.SenderAI)})

	restored := NewChat(repo, testLogger(), 20)
	require.Len(t, restored.Chatrooms(), 1)
	assert.Equal(t, 1, restored.Chatrooms()[0].MessageCount)
	require.Len(t, restored.Messages(room.ID), 2)
	assert.Equal(t, "old", restored.Messages(room.ID)[0].Content)
	cursor := restored.Pagination(room.ID)
	assert.Equal(t, 2, cursor.CurrentPage)
	assert.False(t, cursor.HasMore)
}

func TestChat_TransientFlagsNotPersisted(t *testing.T) {
	repo := storage.NewMemoryRepository()
	c := NewChat(repo, testLogger(), 20)
	c.CreateChatroom("room")

	c.SetLoading(true)
	c.SetTyping(true)
	c.SetSearchQuery("query")

	restored := NewChat(repo, testLogger(), 20)
	assert.False(t, restored.IsLoading())
	assert.False(t, restored.IsTyping())
	assert.Empty(t, restored.SearchQuery())
}
