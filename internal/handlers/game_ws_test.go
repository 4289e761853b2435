package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wsReply struct {
	Type     string          `json:"type"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response"`
}

func dialGame(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{Subprotocols: []string{"game"}})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close(websocket.StatusNormalClosure, "") })
	return c
}

func roundTrip(t *testing.T, c *websocket.Conn, msg string) wsReply {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.Write(ctx, websocket.MessageText, []byte(msg)))
	_, data, err := c.Read(ctx)
	require.NoError(t, err)
	var reply wsReply
	require.NoError(t, json.Unmarshal(data, &reply))
	return reply
}

func TestGameWebSocket(t *testing.T) {
	srv, _ := newTestServer(t)
	started := startTestGame(t, srv)
	human := started.GameState.Players[0].ID
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") +
		"/api/game/" + started.GameID.String() + "/ws?playerId=" + human.String()

	c := dialGame(t, wsURL)

	reply := roundTrip(t, c, `{"type":"get_state"}`)
	assert.Equal(t, "get_state", reply.Type)
	var state struct {
		Success   bool `json:"success"`
		GameState struct {
			GameID uuid.UUID `json:"gameId"`
		} `json:"gameState"`
	}
	require.NoError(t, json.Unmarshal(reply.Response, &state))
	assert.True(t, state.Success)
	assert.Equal(t, started.GameID, state.GameState.GameID)

	reply = roundTrip(t, c, `{"type":"play_card","cardId":"`+uuid.NewString()+`"}`)
	assert.Equal(t, "play_card", reply.Type)
	assert.Contains(t, string(reply.Response), `"code":"card_not_in_hand"`)

	reply = roundTrip(t, c, `{"type":"shuffle"}`)
	assert.Equal(t, "error", reply.Type)
	assert.Contains(t, reply.Message, "shuffle")

	reply = roundTrip(t, c, `not json`)
	assert.Equal(t, "error", reply.Type)
}

func TestGameWebSocketRejectsStrangers(t *testing.T) {
	srv, _ := newTestServer(t)
	started := startTestGame(t, srv)

	resp, err := http.Get(srv.URL + "/api/game/" + started.GameID.String() + "/ws?playerId=" + uuid.NewString())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/game/" + uuid.NewString() + "/ws?playerId=" + uuid.NewString())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
