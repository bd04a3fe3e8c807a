package bot

import "github.com/bibiti/supportbot/core/telegram/state"

const (
	stateMainMenu       state.State = "main_menu"
	stateLocationSelect state.State = "location_select"
	stateRatingDrink    state.State = "rating_drink"
	stateRatingService  state.State = "rating_service"
	stateFeedbackEntry  state.State = "feedback_entry"
	stateCooperationMenu state.State = "cooperation_menu"
	stateResumeWait     state.State = "resume_wait"
	stateBroadcastWait  state.State = "broadcast_wait"
	stateReplyWait      state.State = "reply_wait"
)

// TempData keys carried between dialogue steps.
const (
	tempLocation    = "location"
	tempDrinkScore  = "drink_score"
	tempCategory    = "category"
	tempReplyTicket = "reply_ticket"
)

// Callback uniques. rate_* callbacks are gated on their dialogue state,
// cbReply is an operator action and fires from any state.
const (
	cbRateDrink   = "rate_drink"
	cbRateService = "rate_service"
	cbReply       = "reply"
)
