package handlers_test

import (
	"net/http"
	"testing"

	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifications(t *testing.T) {
	app := setupApp(t)
	sender := createUser(t, "teacher")
	recipient := createUser(t, "learner")
	token := tokenFor(t, recipient)

	for i := 0; i < 3; i++ {
		require.NoError(t, database.DB.Create(&models.Notification{
			SenderID:    sender.ID,
			RecipientID: recipient.ID,
			Type:        "meeting",
			Content:     "Session update",
		}).Error)
	}
	// A notification for someone else must not leak in.
	require.NoError(t, database.DB.Create(&models.Notification{
		SenderID:    recipient.ID,
		RecipientID: sender.ID,
		Type:        "message",
		Content:     "New message",
	}).Error)

	resp, parsed := doRequest(t, app, http.MethodGet, "/notifications/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, parsed["notifications"].([]interface{}), 3)
	assert.EqualValues(t, 3, parsed["unread_count"])

	resp, _ = doRequest(t, app, http.MethodPatch, "/notifications/read-all", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, parsed = doRequest(t, app, http.MethodGet, "/notifications/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, parsed["unread_count"])

	// The other user's unread notification is untouched.
	var unread int64
	database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", sender.ID, false).
		Count(&unread)
	assert.EqualValues(t, 1, unread)
}
