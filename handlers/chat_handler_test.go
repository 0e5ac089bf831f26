package handlers_test

import (
	"net/http"
	"testing"

	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrGetChat(t *testing.T) {
	app := setupApp(t)
	alice := createUser(t, "learner")
	bob := createUser(t, "teacher")

	t.Run("no chat with yourself", func(t *testing.T) {
		resp, parsed := doRequest(t, app, http.MethodPost, "/chat/chat", tokenFor(t, alice),
			map[string]interface{}{"user_id": alice.ID.String()})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Cannot open a chat with yourself", parsed["message"])
	})

	resp, parsed := doRequest(t, app, http.MethodPost, "/chat/chat", tokenFor(t, alice),
		map[string]interface{}{"user_id": bob.ID.String()})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	chatID := parsed["chat"].(map[string]interface{})["id"].(string)

	t.Run("same pair resolves to the same chat", func(t *testing.T) {
		resp, parsed := doRequest(t, app, http.MethodPost, "/chat/chat", tokenFor(t, alice),
			map[string]interface{}{"user_id": bob.ID.String()})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, chatID, parsed["chat"].(map[string]interface{})["id"])
	})

	t.Run("order independent", func(t *testing.T) {
		resp, parsed := doRequest(t, app, http.MethodPost, "/chat/chat", tokenFor(t, bob),
			map[string]interface{}{"user_id": alice.ID.String()})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, chatID, parsed["chat"].(map[string]interface{})["id"])
	})
}

func TestSendMessage(t *testing.T) {
	app := setupApp(t)
	alice := createUser(t, "learner")
	bob := createUser(t, "teacher")
	carol := createUser(t, "learner")

	resp, parsed := doRequest(t, app, http.MethodPost, "/chat/chat", tokenFor(t, alice),
		map[string]interface{}{"user_id": bob.ID.String()})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	chatID := parsed["chat"].(map[string]interface{})["id"].(string)

	t.Run("participants only", func(t *testing.T) {
		resp, _ := doRequest(t, app, http.MethodPost, "/chat/chatsend", tokenFor(t, carol),
			map[string]interface{}{"chat": chatID, "content": "hi"})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	resp, parsed = doRequest(t, app, http.MethodPost, "/chat/chatsend", tokenFor(t, alice),
		map[string]interface{}{"chat": chatID, "content": "hello bob"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	message := parsed["chat_message"].(map[string]interface{})

	// The sender has implicitly read their own message.
	assert.Contains(t, message["read_by"], alice.ID.String())

	var chat models.Chat
	require.NoError(t, database.DB.First(&chat, "id = ?", chatID).Error)
	require.NotNil(t, chat.LatestMessageID)
	assert.Equal(t, message["id"], chat.LatestMessageID.String())

	// The other participant gets a message notification; the sender none.
	var notifCount int64
	database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", bob.ID, "message").
		Count(&notifCount)
	assert.EqualValues(t, 1, notifCount)

	database.DB.Model(&models.Notification{}).
		Where("recipient_id = ?", alice.ID).
		Count(&notifCount)
	assert.EqualValues(t, 0, notifCount)
}

func TestGetChatMessages(t *testing.T) {
	app := setupApp(t)
	alice := createUser(t, "learner")
	bob := createUser(t, "teacher")

	resp, parsed := doRequest(t, app, http.MethodPost, "/chat/chat", tokenFor(t, alice),
		map[string]interface{}{"user_id": bob.ID.String()})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	chatID := parsed["chat"].(map[string]interface{})["id"].(string)

	for _, content := range []string{"first", "second"} {
		resp, _ := doRequest(t, app, http.MethodPost, "/chat/chatsend", tokenFor(t, alice),
			map[string]interface{}{"chat": chatID, "content": content})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, parsed = doRequest(t, app, http.MethodGet, "/chat/"+chatID+"/messages", tokenFor(t, bob), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	messages := parsed["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].(map[string]interface{})["content"])
	assert.Equal(t, "second", messages[1].(map[string]interface{})["content"])

	// Fetching marks the newest message read by the requester.
	var latest models.Message
	require.NoError(t, database.DB.
		Where("chat_id = ?", chatID).
		Order("created_at desc").
		First(&latest).Error)
	assert.True(t, latest.ReadByUser(bob.ID))
}

func TestGetMyChats(t *testing.T) {
	app := setupApp(t)
	alice := createUser(t, "learner")
	bob := createUser(t, "teacher")
	carol := createUser(t, "teacher")

	for _, peer := range []models.User{bob, carol} {
		resp, _ := doRequest(t, app, http.MethodPost, "/chat/chat", tokenFor(t, alice),
			map[string]interface{}{"user_id": peer.ID.String()})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, parsed := doRequest(t, app, http.MethodGet, "/chat/mychats", tokenFor(t, alice), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, parsed["chats"].([]interface{}), 2)

	resp, parsed = doRequest(t, app, http.MethodGet, "/chat/mychats", tokenFor(t, bob), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, parsed["chats"].([]interface{}), 1)
}
