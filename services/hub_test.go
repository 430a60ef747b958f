package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quizdeck/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubSendsSnapshotAndBroadcasts(t *testing.T) {
	db := newTestDB(t)
	results := NewResultService(db)

	user := createUser(t, db, "alice", models.RoleUser)
	quiz := createQuizWithQuestions(t, db, "Geography", "a")

	hub := NewHub(results)
	go hub.Run()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.RegisterClient(conn)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// First frame is the current snapshot, empty board included.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var snapshot Message
	require.NoError(t, conn.ReadJSON(&snapshot))
	assert.Equal(t, "leaderboard", snapshot.Type)

	_, _, err = results.SubmitAnswers(user.ID, quiz.ID, map[uint]string{quiz.Questions[0].ID: "a"})
	require.NoError(t, err)
	hub.BroadcastLeaderboard()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var update Message
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, "leaderboard", update.Type)

	data, err := json.Marshal(update.Payload)
	require.NoError(t, err)
	var scores []models.QuizResult
	require.NoError(t, json.Unmarshal(data, &scores))
	require.Len(t, scores, 1)
	assert.Equal(t, 100.0, scores[0].Percent)
}
