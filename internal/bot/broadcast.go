package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	tele "gopkg.in/telebot.v4"

	"github.com/bibiti/supportbot/core/logger"
	tghelpers "github.com/bibiti/supportbot/core/telegram/helpers"
)

// handleBroadcastWait takes the next message from the operator and fans it
// out to every directory user. Text, photo and video payloads are supported;
// captions travel with the media.
func (b *Bot) handleBroadcastWait(c tele.Context) error {
	userID := c.Sender().ID
	if !b.isAdmin(userID) {
		b.toMainMenu(userID)
		return b.send(c, msgWelcome, mainMenuKeyboard(false))
	}

	if c.Text() == btnBack {
		b.toMainMenu(userID)
		return b.send(c, msgWelcome, mainMenuKeyboard(true))
	}

	payload := broadcastPayload(c.Message())
	if payload == nil {
		return b.send(c, adminMsgBroadcastAsk, backKeyboard())
	}

	ctx := tghelpers.BuildContext(c)
	success, fail := b.broadcast(ctx, payload)

	b.toMainMenu(userID)
	return b.send(c, fmt.Sprintf(adminMsgBroadcastComplete, success, fail), mainMenuKeyboard(true))
}

// broadcastPayload converts the operator's message into a sendable value.
// Returns nil when the message carries nothing broadcastable.
func broadcastPayload(m *tele.Message) interface{} {
	if m == nil {
		return nil
	}
	switch {
	case m.Photo != nil:
		photo := *m.Photo
		photo.Caption = m.Caption
		return &photo
	case m.Video != nil:
		video := *m.Video
		video.Caption = m.Caption
		return &video
	case m.Text != "":
		return m.Text
	}
	return nil
}

// broadcast delivers the payload to every known user. Every send is attempted
// regardless of earlier failures; the tally is what the operator sees.
func (b *Bot) broadcast(ctx context.Context, what interface{}) (success, fail int) {
	transport, ok := b.transport()
	if !ok {
		logger.Error(ctx, "bot", "broadcast.skipped",
			slog.String("reason", "transport_unset"),
		)
		return 0, 0
	}

	ids := b.directory.IDs()

	var okCount, failCount atomic.Int64
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Broadcast.Workers)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			if _, err := transport.Send(tele.ChatID(id), what); err != nil {
				failCount.Add(1)
				logger.Warn(ctx, "bot", "broadcast.send_failed",
					slog.Int64("user_id", id),
					slog.String("err", err.Error()),
				)
				return nil
			}
			okCount.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	success, fail = int(okCount.Load()), int(failCount.Load())
	logger.Info(ctx, "bot", "broadcast.complete",
		slog.Int("recipients", len(ids)),
		slog.Int("success", success),
		slog.Int("fail", fail),
	)
	return success, fail
}
