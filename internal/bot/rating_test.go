package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v4"

	"github.com/bibiti/supportbot/internal/domain"
)

func TestEscalation(t *testing.T) {
	tests := []struct {
		name     string
		drink    int
		service  int
		escalate bool
		category domain.Category
	}{
		{name: "both high", drink: 5, service: 5, escalate: false},
		{name: "drink lower", drink: 2, service: 5, escalate: true, category: domain.CategoryDrink},
		{name: "service lower", drink: 5, service: 3, escalate: true, category: domain.CategoryService},
		{name: "threshold itself escalates", drink: 4, service: 5, escalate: true, category: domain.CategoryDrink},
		{name: "tie goes to service", drink: 2, service: 2, escalate: true, category: domain.CategoryService},
		{name: "both low drink worse", drink: 1, service: 3, escalate: true, category: domain.CategoryDrink},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, prompt, ok := escalation(tt.drink, tt.service)
			assert.Equal(t, tt.escalate, ok)
			if !tt.escalate {
				return
			}
			assert.Equal(t, tt.category, category)
			assert.NotEmpty(t, prompt)
		})
	}
}

func TestBroadcastPayload(t *testing.T) {
	t.Run("nil message", func(t *testing.T) {
		assert.Nil(t, broadcastPayload(nil))
	})

	t.Run("plain text", func(t *testing.T) {
		got := broadcastPayload(&tele.Message{Text: "акция"})
		assert.Equal(t, "акция", got)
	})

	t.Run("photo keeps caption", func(t *testing.T) {
		msg := &tele.Message{
			Photo:   &tele.Photo{File: tele.File{FileID: "f1"}},
			Caption: "новое меню",
		}
		got, ok := broadcastPayload(msg).(*tele.Photo)
		assert.True(t, ok)
		assert.Equal(t, "f1", got.FileID)
		assert.Equal(t, "новое меню", got.Caption)
	})

	t.Run("video keeps caption", func(t *testing.T) {
		msg := &tele.Message{
			Video:   &tele.Video{File: tele.File{FileID: "v1"}},
			Caption: "ролик",
		}
		got, ok := broadcastPayload(msg).(*tele.Video)
		assert.True(t, ok)
		assert.Equal(t, "v1", got.FileID)
		assert.Equal(t, "ролик", got.Caption)
	})

	t.Run("empty message", func(t *testing.T) {
		assert.Nil(t, broadcastPayload(&tele.Message{}))
	})
}
