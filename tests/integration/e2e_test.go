//go:build integration
// +build integration

package integration

import (
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HobbyCoders/deck/internal/shared/types"
)

func dialStream(t *testing.T, stack *deckStack) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(stack.server.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err, "Failed to dial deck stream")
	t.Cleanup(func() { conn.Close() })

	var welcome map[string]interface{}
	require.NoError(t, conn.ReadJSON(&welcome))
	require.Equal(t, "system", welcome["type"])

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readStream(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

// TestEndToEndDeckSession exercises the full loop a real client runs:
// state changes over REST, gestures over the stream, and every mutation
// fanned out to all connected stream clients.
func TestEndToEndDeckSession(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping end-to-end test in short mode")
	}

	stack := newDeckStack(t)
	conn := dialStream(t, stack)

	code, resp := stack.call(t, "POST", "/cards", gin.H{
		"type": "chat", "title": "Chat",
		"position": gin.H{"x": 200, "y": 200},
	})
	require.Equal(t, http.StatusOK, code)
	cardID := resp["card"].(map[string]interface{})["id"].(string)

	// REST open reaches the stream client
	msg := readStream(t, conn)
	require.Equal(t, "card_opened", msg["type"])

	t.Run("Gesture over stream moves the card for REST observers", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(types.WSMessage{
			Type:    types.MsgPointerDown,
			CardID:  cardID,
			Gesture: types.GestureDrag,
			X:       250,
			Y:       250,
		}))
		require.NoError(t, conn.WriteJSON(types.WSMessage{
			Type:   types.MsgPointerMove,
			CardID: cardID,
			X:      330,
			Y:      260,
		}))
		require.NoError(t, conn.WriteJSON(types.WSMessage{
			Type:   types.MsgPointerUp,
			CardID: cardID,
		}))

		// One update for the move, one for the commit
		move := readStream(t, conn)
		require.Equal(t, "card_update", move["type"])
		commit := readStream(t, conn)
		require.Equal(t, "card_update", commit["type"])

		_, resp := stack.call(t, "GET", "/cards/"+cardID, nil)
		pos := resp["card"].(map[string]interface{})["position"].(map[string]interface{})
		assert.EqualValues(t, 280, pos["x"])
		assert.EqualValues(t, 210, pos["y"])
	})

	t.Run("REST resize reaches the stream client", func(t *testing.T) {
		code, resp := stack.call(t, "PATCH", "/cards/"+cardID+"/window", gin.H{
			"size": gin.H{"width": 700, "height": 500},
		})
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, true, resp["success"])

		msg := readStream(t, conn)
		assert.Equal(t, "card_update", msg["type"])
		size := msg["card"].(map[string]interface{})["size"].(map[string]interface{})
		assert.EqualValues(t, 700, size["width"])
	})

	t.Run("Stream close cleans up for REST observers", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(types.WSMessage{
			Type:   types.MsgCloseCard,
			CardID: cardID,
		}))

		msg := readStream(t, conn)
		require.Equal(t, "card_closed", msg["type"])
		assert.Equal(t, cardID, msg["card_id"])

		code, _ := stack.call(t, "GET", "/cards/"+cardID, nil)
		assert.Equal(t, http.StatusNotFound, code)
	})
}

// TestConcurrentCardOpens hammers the card manager from parallel
// clients and verifies every open lands with a distinct ID and Z.
func TestConcurrentCardOpens(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping concurrent test in short mode")
	}

	stack := newDeckStack(t)

	const clients = 10

	var wg sync.WaitGroup
	ids := make(chan string, clients)
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, resp := stack.call(t, "POST", "/cards", gin.H{"type": "chat", "title": "Burst"})
			if code != http.StatusOK {
				t.Errorf("Open failed with status %d", code)
				return
			}
			ids <- resp["card"].(map[string]interface{})["id"].(string)
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		require.False(t, seen[id], "Duplicate card ID %s", id)
		seen[id] = true
	}
	require.Len(t, seen, clients)

	_, resp := stack.call(t, "GET", "/cards", nil)
	cards := resp["cards"].([]interface{})
	assert.Len(t, cards, clients)

	zs := make(map[float64]bool)
	for _, c := range cards {
		z := c.(map[string]interface{})["z"].(float64)
		assert.False(t, zs[z], "Z order collision at %v", z)
		zs[z] = true
	}
}
