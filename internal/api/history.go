package api

import (
	"fmt"
	"time"

	"github.com/raphaelgruber/gemchat/internal/models"
)

// MockHistory fabricates a batch of older messages for seeding a fresh
// chatroom and for serving "scroll up" pages. Senders alternate and
// timestamps are spaced a minute apart, oldest first.
func (s *Service) MockHistory(count int) []models.Message {
	now := time.Now().UTC()
	batch := make([]models.Message, 0, count)
	for i := 0; i < count; i++ {
		sender := models.SenderUser
		if i%2 == 1 {
			sender = models.SenderAI
		}
		batch = append(batch, models.Message{
			ID:        models.NewID(),
			Content:   fmt.Sprintf("This is a mock message %d for pagination testing.", i+1),
			Type:      models.KindText,
			Sender:    sender,
			Timestamp: now.Add(-time.Duration(count-i) * time.Minute),
		})
	}
	return batch
}
