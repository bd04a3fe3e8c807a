package bot

import (
	"errors"
	"fmt"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/bibiti/supportbot/core/logger"
	"github.com/bibiti/supportbot/core/telegram/callbacks"
	tghelpers "github.com/bibiti/supportbot/core/telegram/helpers"
)

// handleReplyStart reacts to the reply button under a ticket notification.
// It fires from any state: an operator mid-broadcast or mid-rating still gets
// switched into the reply dialogue.
func (b *Bot) handleReplyStart(c tele.Context) error {
	userID := c.Sender().ID
	if !b.isAdmin(userID) {
		return nil
	}

	ticketID := callbacks.CallbackPayload(c)
	if _, ok := b.tickets.Get(ticketID); !ok {
		b.toMainMenu(userID)
		return b.send(c, adminMsgTicketNotFound, mainMenuKeyboard(true))
	}

	b.fsm.SetTemp(userID, tempReplyTicket, ticketID)
	b.fsm.SetState(userID, stateReplyWait)
	return b.send(c, fmt.Sprintf(adminMsgReplyAsk, ticketID), backKeyboard())
}

func (b *Bot) handleReplyWait(c tele.Context) error {
	userID := c.Sender().ID
	if !b.isAdmin(userID) {
		b.toMainMenu(userID)
		return b.send(c, msgWelcome, mainMenuKeyboard(false))
	}

	if c.Text() == btnBack {
		b.toMainMenu(userID)
		return b.send(c, msgWelcome, mainMenuKeyboard(true))
	}

	ticketID, _ := b.fsm.GetTempString(userID, tempReplyTicket)
	ticket, ok := b.tickets.Get(ticketID)
	if !ok {
		b.toMainMenu(userID)
		return b.send(c, adminMsgTicketNotFound, mainMenuKeyboard(true))
	}

	err := b.deliverReply(c, ticket.ChatID, ticket.ID, c.Text())
	b.toMainMenu(userID)
	if err != nil {
		logger.Error(tghelpers.BuildContext(c), "bot", "reply.deliver_failed",
			slog.String("ticket_id", ticket.ID),
			slog.Int64("chat_id", ticket.ChatID),
			slog.String("err", err.Error()),
		)
		return b.send(c, fmt.Sprintf(adminMsgReplyFailed, ticket.ID), mainMenuKeyboard(true))
	}

	logger.Info(tghelpers.BuildContext(c), "bot", "reply.delivered",
		slog.String("ticket_id", ticket.ID),
		slog.Int64("chat_id", ticket.ChatID),
	)
	return b.send(c, fmt.Sprintf(adminMsgReplySent, ticket.ID), mainMenuKeyboard(true))
}

func (b *Bot) deliverReply(c tele.Context, chatID int64, ticketID, text string) error {
	transport, ok := b.transport()
	if !ok {
		return errors.New("transport unset")
	}
	_, err := transport.Send(tele.ChatID(chatID), fmt.Sprintf(userMsgReply, ticketID, text))
	return err
}
