package telegram

import (
	"net/http"
	"net/http/httptest"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://relay.example.com"

// newTestController points a controller at a fake Bot API server.
func newTestController(t *testing.T, mux *http.ServeMux) *Controller {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	api := &tgbotapi.BotAPI{Token: "test-token", Client: srv.Client(), Buffer: 100}
	api.SetAPIEndpoint(srv.URL + "/bot%s/%s")

	return NewWithAPI(api, testBaseURL)
}

func ok(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
}

func fail(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"` + description + `"}`))
}

func TestRegisterDeletesThenSetsWebhook(t *testing.T) {
	var deletes, sets int
	var deleteBeforeSet bool
	var dropPending, setURL string

	mux := http.NewServeMux()
	mux.HandleFunc("/bottest-token/deleteWebhook", func(w http.ResponseWriter, r *http.Request) {
		deletes++
		dropPending = r.FormValue("drop_pending_updates")
		ok(w)
	})
	mux.HandleFunc("/bottest-token/setWebhook", func(w http.ResponseWriter, r *http.Request) {
		sets++
		deleteBeforeSet = deletes == 1
		setURL = r.FormValue("url")
		ok(w)
	})

	controller := newTestController(t, mux)

	state, err := controller.Register()
	require.NoError(t, err)
	require.Equal(t, StateRegistered, state)
	require.Equal(t, 1, deletes)
	require.Equal(t, 1, sets)
	require.True(t, deleteBeforeSet, "delete must happen before set")
	require.Equal(t, "true", dropPending)
	require.Equal(t, testBaseURL+"/webhook", setURL)
}

func TestRegisterSetFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bottest-token/deleteWebhook", func(w http.ResponseWriter, r *http.Request) { ok(w) })
	mux.HandleFunc("/bottest-token/setWebhook", func(w http.ResponseWriter, r *http.Request) {
		fail(w, "bad webhook: HTTPS url must be provided")
	})

	controller := newTestController(t, mux)

	state, err := controller.Register()
	require.Error(t, err)
	require.Equal(t, StateUnregistered, state)
}

func TestRegisterProceedsWhenDeleteFails(t *testing.T) {
	var sets int

	mux := http.NewServeMux()
	mux.HandleFunc("/bottest-token/deleteWebhook", func(w http.ResponseWriter, r *http.Request) {
		fail(w, "webhook was not set")
	})
	mux.HandleFunc("/bottest-token/setWebhook", func(w http.ResponseWriter, r *http.Request) {
		sets++
		ok(w)
	})

	controller := newTestController(t, mux)

	state, err := controller.Register()
	require.NoError(t, err)
	require.Equal(t, StateRegistered, state)
	require.Equal(t, 1, sets)
}

func TestUnregister(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bottest-token/deleteWebhook", func(w http.ResponseWriter, r *http.Request) { ok(w) })

	controller := newTestController(t, mux)

	state, err := controller.Unregister()
	require.NoError(t, err)
	require.Equal(t, StateUnregistered, state)
}

func TestUnregisterFailureLeavesStateUnknown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bottest-token/deleteWebhook", func(w http.ResponseWriter, r *http.Request) {
		fail(w, "unavailable")
	})

	controller := newTestController(t, mux)

	state, err := controller.Unregister()
	require.Error(t, err)
	require.Equal(t, StateUnknown, state)
}

func TestStatus(t *testing.T) {
	url := testBaseURL + "/webhook"

	mux := http.NewServeMux()
	mux.HandleFunc("/bottest-token/getWebhookInfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"url":"` + url + `","pending_update_count":0}}`))
	})

	controller := newTestController(t, mux)

	state, err := controller.Status()
	require.NoError(t, err)
	require.Equal(t, StateRegistered, state)

	url = ""
	state, err = controller.Status()
	require.NoError(t, err)
	require.Equal(t, StateUnregistered, state)
}

func TestSendMessage(t *testing.T) {
	var chatID, text string

	mux := http.NewServeMux()
	mux.HandleFunc("/bottest-token/sendMessage", func(w http.ResponseWriter, r *http.Request) {
		chatID = r.FormValue("chat_id")
		text = r.FormValue("text")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":1,"chat":{"id":42,"type":"private"},"text":"hello"}}`))
	})

	controller := newTestController(t, mux)

	require.NoError(t, controller.SendMessage(42, "hello"))
	require.Equal(t, "42", chatID)
	require.Equal(t, "hello", text)
}
