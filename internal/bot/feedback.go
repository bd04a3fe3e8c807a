package bot

import (
	"fmt"
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/bibiti/supportbot/core/logger"
	tghelpers "github.com/bibiti/supportbot/core/telegram/helpers"
	"github.com/bibiti/supportbot/internal/domain"
)

var categoryTitles = map[domain.Category]string{
	domain.CategorySuggestion:  "Предложение",
	domain.CategoryCooperation: "Сотрудничество",
	domain.CategoryFranchise:   "Франшиза",
	domain.CategoryDrink:       "Качество напитка",
	domain.CategoryService:     "Качество обслуживания",
	domain.CategoryGeneral:     "Обращение",
}

func categoryTitle(cat domain.Category) string {
	if t, ok := categoryTitles[cat]; ok {
		return t
	}
	return string(cat)
}

// handleFeedbackEntry accepts the free-text body of a ticket. The category
// was stashed by whichever flow led here.
func (b *Bot) handleFeedbackEntry(c tele.Context) error {
	userID := c.Sender().ID

	if c.Text() == btnBack {
		b.toMainMenu(userID)
		return b.send(c, msgWelcome, mainMenuKeyboard(b.isAdmin(userID)))
	}

	body := strings.TrimSpace(c.Text())
	if body == "" {
		return b.send(c, msgFeedbackGeneral, backKeyboard())
	}

	category := domain.CategoryGeneral
	if raw, ok := b.fsm.GetTempString(userID, tempCategory); ok && raw != "" {
		category = domain.Category(raw)
	}

	ctx := tghelpers.BuildContext(c)
	ticket := b.tickets.Create(ctx, b.senderUser(c), c.Chat().ID, category, body)
	b.notifyAdmin(c, fmt.Sprintf(adminMsgNewTicket,
		ticket.ID, categoryTitle(ticket.Category), ticket.FullName, ticket.Username, ticket.Body,
	), replyKeyboard(ticket.ID))

	b.toMainMenu(userID)
	return b.send(c, msgThanksFeedback, mainMenuKeyboard(b.isAdmin(userID)))
}

func (b *Bot) handleCooperationMenu(c tele.Context) error {
	userID := c.Sender().ID

	switch c.Text() {
	case btnBack:
		b.toMainMenu(userID)
		return b.send(c, msgWelcome, mainMenuKeyboard(b.isAdmin(userID)))

	case btnFranchise:
		b.fsm.SetTemp(userID, tempCategory, string(domain.CategoryFranchise))
		b.fsm.SetState(userID, stateFeedbackEntry)
		return b.send(c, msgFranchiseAsk, backKeyboard())

	case btnOtherQuestion:
		b.fsm.SetTemp(userID, tempCategory, string(domain.CategoryCooperation))
		b.fsm.SetState(userID, stateFeedbackEntry)
		return b.send(c, msgQuestionAsk, backKeyboard())
	}

	return b.send(c, msgCooperation, cooperationKeyboard())
}

// handleResumeWait covers the vacancies submenu: the buttons plus a free-text
// resume submission.
func (b *Bot) handleResumeWait(c tele.Context) error {
	userID := c.Sender().ID

	switch c.Text() {
	case btnBack:
		b.toMainMenu(userID)
		return b.send(c, msgWelcome, mainMenuKeyboard(b.isAdmin(userID)))

	case btnSendResume:
		return b.send(c, msgResumeAsk, backKeyboard())

	case btnContactAdmin:
		b.toMainMenu(userID)
		if err := b.send(c, fmt.Sprintf(msgContactAdmin, b.cfg.Telegram.AdminContact), nil); err != nil {
			return err
		}
		return b.send(c, msgWelcome, mainMenuKeyboard(b.isAdmin(userID)))
	}

	body := strings.TrimSpace(c.Text())
	if body == "" {
		return b.send(c, msgResumeAsk, backKeyboard())
	}

	ctx := tghelpers.BuildContext(c)
	ticket := b.tickets.Create(ctx, b.senderUser(c), c.Chat().ID, domain.CategoryGeneral, body)
	b.notifyAdmin(c, fmt.Sprintf(adminMsgNewResume,
		ticket.ID, ticket.FullName, ticket.Username, ticket.Body,
	), replyKeyboard(ticket.ID))

	b.toMainMenu(userID)
	return b.send(c, msgThanksResume, mainMenuKeyboard(b.isAdmin(userID)))
}

// notifyAdmin forwards a ticket to the operator chat. Delivery failures must
// not break the user-facing flow, so they are only logged.
func (b *Bot) notifyAdmin(c tele.Context, text string, kb *tele.ReplyMarkup) {
	adminID := b.cfg.Telegram.AdminID
	if adminID == 0 {
		return
	}
	transport, ok := b.transport()
	if !ok {
		logger.Warn(tghelpers.BuildContext(c), "bot", "admin.notify_skipped",
			slog.String("reason", "transport_unset"),
		)
		return
	}
	var err error
	if kb != nil {
		_, err = transport.Send(tele.ChatID(adminID), text, kb)
	} else {
		_, err = transport.Send(tele.ChatID(adminID), text)
	}
	if err != nil {
		logger.Error(tghelpers.BuildContext(c), "bot", "admin.notify_failed",
			slog.String("err", err.Error()),
		)
	}
}
