package bot

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/bibiti/supportbot/core/config"
	"github.com/bibiti/supportbot/core/telegram/state"
	"github.com/bibiti/supportbot/internal/domain"
	"github.com/bibiti/supportbot/internal/storage"
)

const testAdminID int64 = 99

// fakeContext implements the handful of tele.Context methods the handlers
// touch. Everything else panics via the embedded nil interface, which is
// exactly what we want from a test double.
type fakeContext struct {
	tele.Context

	sender *tele.User
	chat   *tele.Chat
	text   string
	msg    *tele.Message
	cb     *tele.Callback

	store map[string]interface{}
	sent  []interface{}
}

func newFakeContext(userID int64, text string) *fakeContext {
	return &fakeContext{
		sender: &tele.User{ID: userID, FirstName: "Анна", Username: "anna"},
		chat:   &tele.Chat{ID: userID},
		text:   text,
		store:  map[string]interface{}{},
	}
}

func newCallbackContext(userID int64, unique, payload string) *fakeContext {
	c := newFakeContext(userID, "")
	c.cb = &tele.Callback{Data: unique + "|" + payload}
	return c
}

func (f *fakeContext) Sender() *tele.User       { return f.sender }
func (f *fakeContext) Chat() *tele.Chat         { return f.chat }
func (f *fakeContext) Text() string             { return f.text }
func (f *fakeContext) Message() *tele.Message   { return f.msg }
func (f *fakeContext) Callback() *tele.Callback { return f.cb }
func (f *fakeContext) Update() tele.Update      { return tele.Update{} }

func (f *fakeContext) Get(key string) interface{}      { return f.store[key] }
func (f *fakeContext) Set(key string, val interface{}) { f.store[key] = val }

func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	f.sent = append(f.sent, what)
	return nil
}

func (f *fakeContext) SendAlbum(a tele.Album, _ ...interface{}) error {
	f.sent = append(f.sent, a)
	return nil
}

func (f *fakeContext) Respond(_ ...*tele.CallbackResponse) error { return nil }

func (f *fakeContext) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.sent)
	text, ok := f.sent[len(f.sent)-1].(string)
	require.True(t, ok, "last send is not text: %T", f.sent[len(f.sent)-1])
	return text
}

// fakeAPI records out-of-band sends and can be told to fail per recipient.
type fakeAPI struct {
	mu      sync.Mutex
	sent    []fakeSend
	failFor map[string]bool
}

type fakeSend struct {
	to   string
	what interface{}
}

func (f *fakeAPI) Send(to tele.Recipient, what interface{}, _ ...interface{}) (*tele.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[to.Recipient()] {
		return nil, fmt.Errorf("blocked by user")
	}
	f.sent = append(f.sent, fakeSend{to: to.Recipient(), what: what})
	return &tele.Message{}, nil
}

func (f *fakeAPI) sentTo(id int64) []fakeSend {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []fakeSend
	key := strconv.FormatInt(id, 10)
	for _, s := range f.sent {
		if s.to == key {
			out = append(out, s)
		}
	}
	return out
}

func newTestBot(t *testing.T) (*Bot, *fakeAPI) {
	t.Helper()
	dir := t.TempDir()
	cfg := &coreconfig.Config{
		Telegram: coreconfig.TelegramConfig{
			AdminID:      testAdminID,
			AdminContact: "@admin",
		},
		Storage: coreconfig.StorageConfig{
			UsersFile:  filepath.Join(dir, "users.json"),
			ExportFile: filepath.Join(dir, "users.txt"),
		},
		Broadcast: coreconfig.BroadcastConfig{Workers: 4},
		Venues:    []string{"Центр", "Север"},
	}

	b := New(cfg, state.NewMemoryManager(), storage.NewDirectory(cfg.Storage.UsersFile), storage.NewTicketStore())
	api := &fakeAPI{failFor: map[string]bool{}}
	b.SetAPI(api)
	return b, api
}

func TestStartOpensMainMenu(t *testing.T) {
	b, _ := newTestBot(t)
	c := newFakeContext(1, "/start")

	require.NoError(t, b.handleStart(c))
	assert.Equal(t, stateMainMenu, b.fsm.GetState(1))
	assert.Equal(t, msgWelcome, c.lastText(t))
}

func TestRatingHappyPath(t *testing.T) {
	b, api := newTestBot(t)
	const userID int64 = 10
	b.directory.Upsert(context.Background(), domain.User{ID: userID, Username: "anna", FirstName: "Анна"})
	b.fsm.SetState(userID, stateMainMenu)

	c := newFakeContext(userID, btnFeedback)
	require.NoError(t, b.handleMainMenu(c))
	assert.Equal(t, stateLocationSelect, b.fsm.GetState(userID))

	c = newFakeContext(userID, "Центр")
	require.NoError(t, b.handleLocationSelect(c))
	assert.Equal(t, stateRatingDrink, b.fsm.GetState(userID))
	assert.Equal(t, msgRateDrink, c.lastText(t))

	c = newCallbackContext(userID, cbRateDrink, "5")
	require.NoError(t, b.handleRateDrink(c))
	assert.Equal(t, stateRatingService, b.fsm.GetState(userID))

	c = newCallbackContext(userID, cbRateService, "5")
	require.NoError(t, b.handleRateService(c))
	assert.Equal(t, stateMainMenu, b.fsm.GetState(userID))
	assert.Equal(t, msgThanksHighRating, c.lastText(t))

	user, ok := b.directory.Get(userID)
	require.True(t, ok)
	require.Len(t, user.Ratings, 1)
	assert.Equal(t, "Центр", user.Ratings[0].Location)
	require.NotNil(t, user.Ratings[0].DrinkRating)
	require.NotNil(t, user.Ratings[0].ServiceRating)
	assert.Equal(t, 5, *user.Ratings[0].DrinkRating)
	assert.Equal(t, 5, *user.Ratings[0].ServiceRating)

	// No ticket and no operator notification for a clean rating.
	assert.Equal(t, 0, b.tickets.Len())
	assert.Empty(t, api.sentTo(testAdminID))
}

func TestLowDrinkRatingEscalates(t *testing.T) {
	b, api := newTestBot(t)
	const userID int64 = 11
	b.directory.Upsert(context.Background(), domain.User{ID: userID, Username: "anna", FirstName: "Анна"})
	b.fsm.SetState(userID, stateRatingDrink)
	b.fsm.SetTemp(userID, tempLocation, "Север")

	c := newCallbackContext(userID, cbRateDrink, "2")
	require.NoError(t, b.handleRateDrink(c))

	c = newCallbackContext(userID, cbRateService, "5")
	require.NoError(t, b.handleRateService(c))
	assert.Equal(t, stateFeedbackEntry, b.fsm.GetState(userID))
	assert.Equal(t, msgFeedbackDrink, c.lastText(t))

	c = newFakeContext(userID, "слишком сладкий напиток")
	require.NoError(t, b.handleFeedbackEntry(c))
	assert.Equal(t, stateMainMenu, b.fsm.GetState(userID))

	require.Equal(t, 1, b.tickets.Len())
	notified := api.sentTo(testAdminID)
	require.Len(t, notified, 1)
	text, ok := notified[0].what.(string)
	require.True(t, ok)
	assert.Contains(t, text, "Качество напитка")
	assert.Contains(t, text, "слишком сладкий напиток")
}

func TestBackReturnsToMainMenu(t *testing.T) {
	b, _ := newTestBot(t)
	const userID int64 = 12

	handlers := map[state.State]tele.HandlerFunc{
		stateLocationSelect:  b.handleLocationSelect,
		stateRatingDrink:     b.handleRatingPrompt,
		stateRatingService:   b.handleRatingPrompt,
		stateFeedbackEntry:   b.handleFeedbackEntry,
		stateCooperationMenu: b.handleCooperationMenu,
		stateResumeWait:      b.handleResumeWait,
	}

	for st, h := range handlers {
		b.fsm.SetState(userID, st)
		b.fsm.SetTemp(userID, tempLocation, "Центр")

		c := newFakeContext(userID, btnBack)
		require.NoError(t, h(c), "state %s", st)
		assert.Equal(t, stateMainMenu, b.fsm.GetState(userID), "state %s", st)

		_, hasTemp := b.fsm.GetTempString(userID, tempLocation)
		assert.False(t, hasTemp, "temp data survived back from %s", st)
	}
}

func TestSuggestionCreatesTicket(t *testing.T) {
	b, api := newTestBot(t)
	const userID int64 = 13
	b.fsm.SetState(userID, stateMainMenu)

	c := newFakeContext(userID, btnSuggestions)
	require.NoError(t, b.handleMainMenu(c))
	assert.Equal(t, stateFeedbackEntry, b.fsm.GetState(userID))

	c = newFakeContext(userID, "добавьте матчу")
	require.NoError(t, b.handleFeedbackEntry(c))
	require.Equal(t, 1, b.tickets.Len())

	notified := api.sentTo(testAdminID)
	require.Len(t, notified, 1)
	text := notified[0].what.(string)
	assert.Contains(t, text, "Предложение")
}

func TestResumeSubmission(t *testing.T) {
	b, api := newTestBot(t)
	const userID int64 = 14
	b.fsm.SetState(userID, stateResumeWait)

	c := newFakeContext(userID, btnSendResume)
	require.NoError(t, b.handleResumeWait(c))
	assert.Equal(t, stateResumeWait, b.fsm.GetState(userID))
	assert.Equal(t, msgResumeAsk, c.lastText(t))

	c = newFakeContext(userID, "Бариста, опыт 2 года")
	require.NoError(t, b.handleResumeWait(c))
	assert.Equal(t, stateMainMenu, b.fsm.GetState(userID))
	assert.Equal(t, msgThanksResume, c.lastText(t))

	notified := api.sentTo(testAdminID)
	require.Len(t, notified, 1)
	assert.Contains(t, notified[0].what.(string), "Бариста, опыт 2 года")
}

func TestReplyFlowDeliversToTicketChat(t *testing.T) {
	b, api := newTestBot(t)
	const userID int64 = 15

	ticket := b.tickets.Create(context.Background(), domain.User{ID: userID, FirstName: "Анна"}, userID, domain.CategoryGeneral, "вопрос")

	c := newCallbackContext(testAdminID, cbReply, ticket.ID)
	require.NoError(t, b.handleReplyStart(c))
	assert.Equal(t, stateReplyWait, b.fsm.GetState(testAdminID))

	c = newFakeContext(testAdminID, "уже исправили")
	c.sender.Username = "admin"
	require.NoError(t, b.handleReplyWait(c))
	assert.Equal(t, stateMainMenu, b.fsm.GetState(testAdminID))
	assert.Equal(t, fmt.Sprintf(adminMsgReplySent, ticket.ID), c.lastText(t))

	delivered := api.sentTo(userID)
	require.Len(t, delivered, 1)
	text := delivered[0].what.(string)
	assert.Contains(t, text, ticket.ID)
	assert.Contains(t, text, "уже исправили")
}

func TestReplyFlowReportsDeliveryFailure(t *testing.T) {
	b, api := newTestBot(t)
	const userID int64 = 16

	ticket := b.tickets.Create(context.Background(), domain.User{ID: userID}, userID, domain.CategoryGeneral, "вопрос")
	api.failFor[strconv.FormatInt(userID, 10)] = true

	c := newCallbackContext(testAdminID, cbReply, ticket.ID)
	require.NoError(t, b.handleReplyStart(c))

	c = newFakeContext(testAdminID, "ответ")
	require.NoError(t, b.handleReplyWait(c))
	assert.Equal(t, stateMainMenu, b.fsm.GetState(testAdminID))
	assert.Equal(t, fmt.Sprintf(adminMsgReplyFailed, ticket.ID), c.lastText(t))
}

func TestReplyUnknownTicket(t *testing.T) {
	b, _ := newTestBot(t)

	c := newCallbackContext(testAdminID, cbReply, "missing-id")
	require.NoError(t, b.handleReplyStart(c))
	assert.Equal(t, stateMainMenu, b.fsm.GetState(testAdminID))
	assert.Equal(t, adminMsgTicketNotFound, c.lastText(t))
}

func TestReplyIgnoredForNonAdmin(t *testing.T) {
	b, _ := newTestBot(t)

	c := newCallbackContext(42, cbReply, "whatever")
	require.NoError(t, b.handleReplyStart(c))
	assert.Empty(t, c.sent)
	assert.Equal(t, state.StateIdle, b.fsm.GetState(42))
}

func TestBroadcastTallyCountsEveryRecipient(t *testing.T) {
	b, api := newTestBot(t)

	for _, id := range []int64{101, 102, 103} {
		b.directory.Upsert(context.Background(), domain.User{ID: id, FirstName: "u"})
	}
	api.failFor["102"] = true

	b.fsm.SetState(testAdminID, stateBroadcastWait)
	c := newFakeContext(testAdminID, "скидка 20%")
	c.msg = &tele.Message{Text: "скидка 20%"}

	require.NoError(t, b.handleBroadcastWait(c))
	assert.Equal(t, stateMainMenu, b.fsm.GetState(testAdminID))
	assert.Equal(t, fmt.Sprintf(adminMsgBroadcastComplete, 2, 1), c.lastText(t))

	assert.Len(t, api.sentTo(101), 1)
	assert.Len(t, api.sentTo(103), 1)
	assert.Empty(t, api.sentTo(102))
}

func TestBroadcastIgnoredForNonAdmin(t *testing.T) {
	b, api := newTestBot(t)
	const userID int64 = 50

	b.directory.Upsert(context.Background(), domain.User{ID: 101})
	b.fsm.SetState(userID, stateBroadcastWait)

	c := newFakeContext(userID, "спам")
	c.msg = &tele.Message{Text: "спам"}
	require.NoError(t, b.handleBroadcastWait(c))

	assert.Equal(t, stateMainMenu, b.fsm.GetState(userID))
	assert.Empty(t, api.sentTo(101))
}

func TestMainMenuHidesAdminActions(t *testing.T) {
	b, _ := newTestBot(t)
	const userID int64 = 60
	b.fsm.SetState(userID, stateMainMenu)

	c := newFakeContext(userID, btnAdminBroadcast)
	require.NoError(t, b.handleMainMenu(c))

	// Same reaction as any unrecognized text.
	assert.Equal(t, stateMainMenu, b.fsm.GetState(userID))
	assert.Equal(t, msgWelcome, c.lastText(t))
}
