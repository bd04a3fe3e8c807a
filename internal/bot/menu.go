package bot

import (
	"bytes"
	"fmt"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/bibiti/supportbot/core/logger"
	tghelpers "github.com/bibiti/supportbot/core/telegram/helpers"
	"github.com/bibiti/supportbot/internal/domain"
	"github.com/bibiti/supportbot/internal/media"
)

// handleStart greets the user and opens the main menu. It also serves as the
// fallback for users without an active dialogue.
func (b *Bot) handleStart(c tele.Context) error {
	b.toMainMenu(c.Sender().ID)

	if path := b.cfg.Media.WelcomePhoto; path != "" {
		if data, err := media.ResizeJPEG(path, b.cfg.Media.MaxSide); err == nil {
			photo := &tele.Photo{
				File:    tele.FromReader(bytes.NewReader(data)),
				Caption: msgInitial,
			}
			if err := c.Send(photo); err == nil {
				return b.send(c, msgWelcome, mainMenuKeyboard(b.isAdmin(c.Sender().ID)))
			}
		} else {
			logger.Warn(tghelpers.BuildContext(c), "bot", "welcome.photo_failed",
				slog.String("path", path),
				slog.String("err", err.Error()),
			)
		}
	}

	if err := b.send(c, msgInitial, nil); err != nil {
		return err
	}
	return b.send(c, msgWelcome, mainMenuKeyboard(b.isAdmin(c.Sender().ID)))
}

func (b *Bot) handleMainMenu(c tele.Context) error {
	userID := c.Sender().ID

	switch c.Text() {
	case btnFeedback:
		b.fsm.SetState(userID, stateLocationSelect)
		return b.send(c, msgSelectLocation, locationKeyboard(b.cfg.Venues))

	case btnMenu:
		return b.sendMenuAlbum(c)

	case btnVacancies:
		b.fsm.SetState(userID, stateResumeWait)
		return b.send(c, msgVacancies, vacanciesKeyboard())

	case btnCooperation:
		b.fsm.SetState(userID, stateCooperationMenu)
		return b.send(c, msgCooperation, cooperationKeyboard())

	case btnSuggestions:
		b.fsm.SetTemp(userID, tempCategory, string(domain.CategorySuggestion))
		b.fsm.SetState(userID, stateFeedbackEntry)
		return b.send(c, fmt.Sprintf(msgSuggestions, b.cfg.Telegram.AdminContact), backKeyboard())
	}

	if b.isAdmin(userID) {
		switch c.Text() {
		case btnAdminBroadcast:
			b.fsm.SetState(userID, stateBroadcastWait)
			return b.send(c, adminMsgBroadcastAsk, backKeyboard())
		case btnAdminUsers:
			return b.handleAdminUsers(c)
		case btnAdminStats:
			return b.handleAdminStats(c)
		}
	}

	// Unrecognized input: repeat the menu. Admin labels typed by a regular
	// user fall through here, indistinguishable from any other text.
	return b.send(c, msgWelcome, mainMenuKeyboard(b.isAdmin(userID)))
}

func (b *Bot) sendMenuAlbum(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	prepared := media.PrepareAll(ctx, b.cfg.Media.MenuPhotos, b.cfg.Media.MaxSide)
	if len(prepared) == 0 {
		return b.send(c, msgMenuUnavailable, nil)
	}

	album := make(tele.Album, 0, len(prepared))
	for _, data := range prepared {
		album = append(album, &tele.Photo{File: tele.FromReader(bytes.NewReader(data))})
	}
	return c.SendAlbum(album)
}
