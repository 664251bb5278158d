package bot_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/chefmenu/app/bot"
	httpc "github.com/shashiranjanraj/chefmenu/pkg/http"
	"github.com/shashiranjanraj/chefmenu/pkg/metrics"
	"github.com/shashiranjanraj/chefmenu/pkg/testkit"
)

const (
	token = "123:abc"
	api   = "https://api.telegram.org/bot" + token + "/"
)

var (
	getMe = testkit.MockStep{
		MatchURL: api + "getMe",
		Body:     json.RawMessage(`{"ok":true,"result":{"id":7,"is_bot":true,"first_name":"Chef","username":"chefmenu_bot"}}`),
	}
	sendMessage = testkit.MockStep{
		MatchURL: api + "sendMessage",
		Body:     json.RawMessage(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`),
	}
	answerCallback = testkit.MockStep{
		MatchURL: api + "answerCallbackQuery",
		Body:     json.RawMessage(`{"ok":true,"result":true}`),
	}
)

func newBot(t *testing.T, mt *testkit.MockTransport) *bot.Bot {
	t.Helper()
	b, err := bot.New(bot.Config{Token: token, Client: mt.Client(), Workers: 2, Chef: "Cristoffel"}, seeded(t))
	require.NoError(t, err)
	return b
}

func message(id int, text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: id,
		Message:  &tgbotapi.Message{MessageID: id, Text: text, Chat: &tgbotapi.Chat{ID: 42, Type: "private"}},
	}
}

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rec.Body.String()
}

func TestNewRequiresToken(t *testing.T) {
	_, err := bot.New(bot.Config{}, seeded(t))
	assert.Error(t, err)
}

func TestNewRejectedToken(t *testing.T) {
	mt := testkit.NewMockTransport(testkit.MockStep{
		MatchURL:   api + "getMe",
		StatusCode: http.StatusUnauthorized,
		Body:       json.RawMessage(`{"ok":false,"error_code":401,"description":"Unauthorized"}`),
	})
	_, err := bot.New(bot.Config{Token: token, Client: mt.Client()}, seeded(t))
	assert.Error(t, err)
}

func TestDispatchCommand(t *testing.T) {
	mt := testkit.NewMockTransport(getMe, sendMessage)
	b := newBot(t, mt)
	assert.Equal(t, "chefmenu_bot", b.Username())

	require.NoError(t, b.Dispatch(message(1, "/menu desserts")))
	require.NoError(t, b.Close(context.Background()))

	calls := mt.CallsTo(api + "sendMessage")
	require.Len(t, calls, 1)
	form := calls[0].Form
	assert.Equal(t, "42", form.Get("chat_id"))
	assert.Contains(t, form.Get("text"), "Menu: 🍰 Desserts")
	assert.Contains(t, form.Get("text"), "Malva Pudding")
	assert.Contains(t, form.Get("reply_markup"), `"callback_data":"course:all"`)
	assert.Empty(t, mt.AssertAllCalled())
}

func TestDispatchCallback(t *testing.T) {
	mt := testkit.NewMockTransport(getMe, answerCallback, sendMessage)
	b := newBot(t, mt)

	require.NoError(t, b.Dispatch(tgbotapi.Update{
		UpdateID: 2,
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb-1",
			Data:    "course:mains",
			Message: &tgbotapi.Message{MessageID: 9, Chat: &tgbotapi.Chat{ID: 42}},
		},
	}))
	require.NoError(t, b.Dispatch(tgbotapi.Update{
		UpdateID:      3,
		CallbackQuery: &tgbotapi.CallbackQuery{ID: "cb-2", Data: "lang:uz"},
	}))
	require.NoError(t, b.Close(context.Background()))

	answers := mt.CallsTo(api + "answerCallbackQuery")
	require.Len(t, answers, 2)
	ids := []string{answers[0].Form.Get("callback_query_id"), answers[1].Form.Get("callback_query_id")}
	assert.ElementsMatch(t, []string{"cb-1", "cb-2"}, ids)

	sent := mt.CallsTo(api + "sendMessage")
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Form.Get("text"), "Truffle Risotto")
	assert.Contains(t, scrape(t), `chefmenu_bot_updates_total{kind="callback",status="ignored"}`)
}

func TestDispatchSendFailure(t *testing.T) {
	mt := testkit.NewMockTransport(getMe, testkit.MockStep{
		MatchURL:   api + "sendMessage",
		StatusCode: http.StatusForbidden,
		Body:       json.RawMessage(`{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`),
	})
	b := newBot(t, mt)

	require.NoError(t, b.Dispatch(message(4, "/stats")))
	require.NoError(t, b.Close(context.Background()))

	assert.Len(t, mt.CallsTo(api+"sendMessage"), 1)
	assert.Contains(t, scrape(t), `chefmenu_bot_updates_total{kind="command",status="error"}`)
}

func TestDispatchAfterClose(t *testing.T) {
	mt := testkit.NewMockTransport(getMe)
	b := newBot(t, mt)
	require.NoError(t, b.Close(context.Background()))

	assert.Error(t, b.Dispatch(message(5, "/start")))
	assert.Contains(t, scrape(t), `chefmenu_bot_updates_total{kind="command",status="dropped"}`)
}

func TestRunPollsUntilCancelled(t *testing.T) {
	mt := testkit.NewMockTransport(getMe, sendMessage, testkit.MockStep{
		MatchURL: api + "getUpdates",
		Body: json.RawMessage(`{"ok":true,"result":[{"update_id":10,"message":{"message_id":10,"date":0,` +
			`"chat":{"id":42,"type":"private"},"text":"/courses"}}]}`),
	})
	b := newBot(t, mt)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	require.Eventually(t, func() bool {
		return len(mt.CallsTo(api+"sendMessage")) == 1
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	require.NoError(t, b.Close(context.Background()))

	sent := mt.CallsTo(api + "sendMessage")
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Form.Get("text"), "🥗 Appetizers (2)")
}

func TestNewRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bot"+token+"/getMe" {
			http.NotFound(w, r)
			return
		}
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"ok":false,"error_code":502,"description":"Bad Gateway"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":7,"is_bot":true,"first_name":"Chef","username":"chefmenu_bot"}}`))
	}))
	defer srv.Close()

	b, err := bot.New(bot.Config{
		Token:    token,
		Endpoint: srv.URL + "/bot%s/%s",
		Client:   httpc.New(httpc.WithAttempts(2), httpc.WithBackoff(time.Millisecond)),
	}, seeded(t))
	require.NoError(t, err)
	assert.Equal(t, "chefmenu_bot", b.Username())
	assert.Equal(t, int32(2), calls.Load())
	require.NoError(t, b.Close(context.Background()))
}
