package bot

import (
	"log/slog"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/bibiti/supportbot/core/config"
	"github.com/bibiti/supportbot/core/logger"
	tg "github.com/bibiti/supportbot/core/telegram"
	"github.com/bibiti/supportbot/core/telegram/commands"
	tghelpers "github.com/bibiti/supportbot/core/telegram/helpers"
	"github.com/bibiti/supportbot/core/telegram/middleware"
	"github.com/bibiti/supportbot/core/telegram/state"
	"github.com/bibiti/supportbot/internal/domain"
	"github.com/bibiti/supportbot/internal/storage"
)

// api covers the out-of-band sends the bot performs besides replying to the
// current update: notifying the operator, delivering replies, broadcasting.
// *tele.Bot satisfies it.
type api interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Bot wires the support dialogue on top of the FSM manager and the stores.
type Bot struct {
	cfg       *coreconfig.Config
	fsm       state.Manager
	directory *storage.Directory
	tickets   *storage.TicketStore

	api atomic.Pointer[apiHolder]
}

type apiHolder struct{ api api }

func New(cfg *coreconfig.Config, fsm state.Manager, directory *storage.Directory, tickets *storage.TicketStore) *Bot {
	return &Bot{
		cfg:       cfg,
		fsm:       fsm,
		directory: directory,
		tickets:   tickets,
	}
}

// SetAPI injects the transport used for out-of-band sends. Called once the
// bot client exists; until then those sends are dropped with a log entry.
func (b *Bot) SetAPI(a api) {
	if a == nil {
		b.api.Store(nil)
		return
	}
	b.api.Store(&apiHolder{api: a})
}

func (b *Bot) transport() (api, bool) {
	h := b.api.Load()
	if h == nil {
		return nil, false
	}
	return h.api, true
}

func (b *Bot) isAdmin(userID int64) bool {
	return b.cfg.Telegram.AdminID != 0 && userID == b.cfg.Telegram.AdminID
}

// Register binds commands, callbacks and per-state handlers to the registry
// and the FSM manager.
func (b *Bot) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     b.guard("start", b.handleStart),
		Description: "Главное меню",
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     b.guard("stats", b.handleAdminStats),
		Description: "Средние оценки по точкам",
		AdminOnly:   true,
	})

	gate := stateStrings{b.fsm}
	_ = reg.RegisterCallback(cbRateDrink,
		middleware.State(gate, string(stateRatingDrink))(b.guard("rate_drink", b.handleRateDrink)))
	_ = reg.RegisterCallback(cbRateService,
		middleware.State(gate, string(stateRatingService))(b.guard("rate_service", b.handleRateService)))
	_ = reg.RegisterCallback(cbReply, b.guard("reply", b.handleReplyStart))

	b.fsm.RegisterHandler(stateMainMenu, b.guard("main_menu", b.handleMainMenu))
	b.fsm.RegisterHandler(stateLocationSelect, b.guard("location_select", b.handleLocationSelect))
	b.fsm.RegisterHandler(stateRatingDrink, b.guard("rating_prompt", b.handleRatingPrompt))
	b.fsm.RegisterHandler(stateRatingService, b.guard("rating_prompt", b.handleRatingPrompt))
	b.fsm.RegisterHandler(stateFeedbackEntry, b.guard("feedback_entry", b.handleFeedbackEntry))
	b.fsm.RegisterHandler(stateCooperationMenu, b.guard("cooperation_menu", b.handleCooperationMenu))
	b.fsm.RegisterHandler(stateResumeWait, b.guard("resume_wait", b.handleResumeWait))
	b.fsm.RegisterHandler(stateBroadcastWait, b.guard("broadcast_wait", b.handleBroadcastWait))
	b.fsm.RegisterHandler(stateReplyWait, b.guard("reply_wait", b.handleReplyWait))

	// Users who write before ever pressing /start land in the entry flow.
	b.fsm.SetDefaultHandler(b.guard("start", b.handleStart))
	reg.SetTextFallback(b.guard("start", b.handleStart))
}

// stateStrings adapts the FSM manager to the string-based state gate.
type stateStrings struct{ m state.Manager }

func (s stateStrings) GetState(userID int64) string {
	return string(s.m.GetState(userID))
}

// guard converts handler failures into an apology and a reset to the main
// menu so a user is never stranded mid-dialogue.
func (b *Bot) guard(name string, fn tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		err := fn(c)
		if err == nil {
			return nil
		}
		ctx := tghelpers.WithHandler(c, name)
		logger.Error(ctx, "bot", "handler.failed",
			slog.String("handler", name),
			slog.String("err", err.Error()),
		)
		b.toMainMenu(c.Sender().ID)
		return b.send(c, msgErrorGeneral, mainMenuKeyboard(b.isAdmin(c.Sender().ID)))
	}
}

// UpsertDirectoryMiddleware refreshes the user directory on every inbound
// update so the broadcast audience stays current.
func (b *Bot) UpsertDirectoryMiddleware() tg.Middleware {
	return tg.Middleware{
		Name: "directory_upsert",
		Use: func(next tele.HandlerFunc) tele.HandlerFunc {
			return func(c tele.Context) error {
				if u := c.Sender(); u != nil && !u.IsBot {
					b.directory.Upsert(tghelpers.BuildContext(c), domain.User{
						ID:        u.ID,
						Username:  u.Username,
						FirstName: u.FirstName,
						LastName:  u.LastName,
					})
				}
				return next(c)
			}
		},
	}
}

func (b *Bot) send(c tele.Context, text string, kb *tele.ReplyMarkup) error {
	if kb == nil {
		return tghelpers.SendText(c, text)
	}
	return tghelpers.SendText(c, text, &tele.SendOptions{ReplyMarkup: kb})
}

// toMainMenu resets dialogue state and drops step-scoped temp data.
func (b *Bot) toMainMenu(userID int64) {
	b.fsm.Clear(userID)
	b.fsm.SetState(userID, stateMainMenu)
}

func (b *Bot) senderUser(c tele.Context) domain.User {
	u := c.Sender()
	if u == nil {
		return domain.User{}
	}
	return domain.User{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
