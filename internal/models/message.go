package models

import "time"

// Kind discriminates message payloads.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// ImageData carries metadata for image messages. The image bytes themselves
// are base64-embedded in the message content.
type ImageData struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// Message is a single chat message. Messages are immutable once appended;
// per-chatroom ordering is append order, which equals chronological order
// because timestamps are assigned at append time.
type Message struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	Type      Kind       `json:"type"`
	Sender    Sender     `json:"sender"`
	Timestamp time.Time  `json:"timestamp"`
	User      *Profile   `json:"user,omitempty"`
	ImageData *ImageData `json:"imageData,omitempty"`
}
