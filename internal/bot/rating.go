package bot

import (
	tele "gopkg.in/telebot.v4"

	"github.com/bibiti/supportbot/core/telegram/callbacks"
	tghelpers "github.com/bibiti/supportbot/core/telegram/helpers"
	"github.com/bibiti/supportbot/internal/domain"
)

const escalationThreshold = 4

func (b *Bot) handleLocationSelect(c tele.Context) error {
	userID := c.Sender().ID
	text := c.Text()

	if text == btnBack {
		b.toMainMenu(userID)
		return b.send(c, msgWelcome, mainMenuKeyboard(b.isAdmin(userID)))
	}

	for _, venue := range b.cfg.Venues {
		if text == venue {
			b.fsm.SetTemp(userID, tempLocation, venue)
			b.fsm.SetState(userID, stateRatingDrink)
			return b.send(c, msgRateDrink, scoreKeyboard(cbRateDrink))
		}
	}

	return b.send(c, msgSelectLocation, locationKeyboard(b.cfg.Venues))
}

// handleRatingPrompt catches text typed while a score callback is expected.
func (b *Bot) handleRatingPrompt(c tele.Context) error {
	userID := c.Sender().ID
	if c.Text() == btnBack {
		b.toMainMenu(userID)
		return b.send(c, msgWelcome, mainMenuKeyboard(b.isAdmin(userID)))
	}
	if b.fsm.GetState(userID) == stateRatingService {
		return b.send(c, msgRateService, scoreKeyboard(cbRateService))
	}
	return b.send(c, msgRateDrink, scoreKeyboard(cbRateDrink))
}

func (b *Bot) handleRateDrink(c tele.Context) error {
	userID := c.Sender().ID
	score, err := callbacks.PayloadInt(c)
	if err != nil || score < 1 || score > 5 {
		return b.send(c, msgRateDrink, scoreKeyboard(cbRateDrink))
	}

	location, _ := b.fsm.GetTempString(userID, tempLocation)
	ctx := tghelpers.BuildContext(c)
	if err := b.directory.RecordRating(ctx, userID, location, domain.DimensionDrink, score); err != nil {
		return err
	}

	b.fsm.SetTemp(userID, tempDrinkScore, score)
	b.fsm.SetState(userID, stateRatingService)
	return b.send(c, msgRateService, scoreKeyboard(cbRateService))
}

func (b *Bot) handleRateService(c tele.Context) error {
	userID := c.Sender().ID
	score, err := callbacks.PayloadInt(c)
	if err != nil || score < 1 || score > 5 {
		return b.send(c, msgRateService, scoreKeyboard(cbRateService))
	}

	location, _ := b.fsm.GetTempString(userID, tempLocation)
	ctx := tghelpers.BuildContext(c)
	if err := b.directory.RecordRating(ctx, userID, location, domain.DimensionService, score); err != nil {
		return err
	}

	drinkScore := 5
	if v, ok := b.fsm.GetTemp(userID, tempDrinkScore); ok {
		if n, ok := v.(int); ok {
			drinkScore = n
		}
	}

	if category, prompt, ok := escalation(drinkScore, score); ok {
		b.fsm.SetTemp(userID, tempCategory, string(category))
		b.fsm.SetState(userID, stateFeedbackEntry)
		return b.send(c, prompt, backKeyboard())
	}

	b.toMainMenu(userID)
	return b.send(c, msgThanksHighRating, mainMenuKeyboard(b.isAdmin(userID)))
}

// escalation decides whether a completed rating turns into a feedback
// request. A low score on either dimension asks for details about the lower
// one; a tie goes to service, the broader complaint.
func escalation(drink, service int) (domain.Category, string, bool) {
	if drink > escalationThreshold && service > escalationThreshold {
		return "", "", false
	}
	if drink < service {
		return domain.CategoryDrink, msgFeedbackDrink, true
	}
	return domain.CategoryService, msgFeedbackService, true
}
