package models

import "time"

// Chatroom is a named conversation container. LastMessage and MessageCount
// are denormalized from the room's message list and updated on every append.
type Chatroom struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"createdAt"`
	LastMessage  *string   `json:"lastMessage"`
	MessageCount int       `json:"messageCount"`
}

// Pagination tracks how much history has been loaded for one chatroom.
// HasMore is a heuristic: it is recomputed on every page load as
// "the batch filled a whole page", so an exact page-size multiple at the end
// of history mis-reports one extra page.
type Pagination struct {
	CurrentPage   int  `json:"currentPage"`
	HasMore       bool `json:"hasMore"`
	TotalMessages int  `json:"totalMessages"`
}

// DefaultPagination is the cursor for a chatroom with no history loaded yet.
func DefaultPagination() Pagination {
	return Pagination{CurrentPage: 1, HasMore: true, TotalMessages: 0}
}
