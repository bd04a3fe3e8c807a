package bot

import (
	"strconv"

	tele "gopkg.in/telebot.v4"

	"github.com/bibiti/supportbot/core/telegram/keyboard"
)

func mainMenuKeyboard(isAdmin bool) *tele.ReplyMarkup {
	rows := [][]string{
		{btnFeedback},
		{btnMenu, btnVacancies},
		{btnCooperation, btnSuggestions},
	}
	if isAdmin {
		rows = append(rows,
			[]string{btnAdminBroadcast, btnAdminUsers},
			[]string{btnAdminStats},
		)
	}
	return keyboard.ReplyButtons(rows...)
}

func backKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{btnBack})
}

func locationKeyboard(venues []string) *tele.ReplyMarkup {
	rows := make([][]string, 0, len(venues)+1)
	for _, v := range venues {
		rows = append(rows, []string{v})
	}
	rows = append(rows, []string{btnBack})
	return keyboard.ReplyButtons(rows...)
}

func vacanciesKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{btnSendResume},
		[]string{btnContactAdmin},
		[]string{btnBack},
	)
}

func cooperationKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{btnFranchise},
		[]string{btnOtherQuestion},
		[]string{btnBack},
	)
}

// scoreKeyboard renders the 1..5 row for a rating callback.
func scoreKeyboard(unique string) *tele.ReplyMarkup {
	row := make([]keyboard.InlineBtn, 0, 5)
	for i := 1; i <= 5; i++ {
		row = append(row, keyboard.InlineBtn{
			Text:   strconv.Itoa(i),
			Unique: unique,
			Data:   strconv.Itoa(i),
		})
	}
	return keyboard.InlineButtonsRows(row)
}

// replyKeyboard attaches the operator reply action to a ticket notification.
func replyKeyboard(ticketID string) *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: adminBtnReply, Unique: cbReply, Data: ticketID},
	})
}
