package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateListing(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, "teacher")
	skill := createSkill(t, teacher)
	teacherToken := tokenFor(t, teacher)

	body := map[string]interface{}{
		"title":       "Evening Go Lessons",
		"description": "One-on-one lessons",
		"fee":         30,
		"duration":    "1h",
		"proficiency": "advanced",
		"payment_methods": []map[string]string{
			{"name": "bkash", "account": "01700000000"},
		},
		"available_slots": []string{"10:00", "14:00"},
		"skill_id":        skill.ID.String(),
	}
	resp, parsed := doRequest(t, app, http.MethodPost, "/listings/create", teacherToken, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	listing := parsed["listing"].(map[string]interface{})
	assert.Equal(t, "Evening Go Lessons", listing["title"])
	assert.Equal(t, 30.0, listing["fee"])
	assert.Len(t, listing["available_slots"].([]interface{}), 2)

	t.Run("skill must belong to the teacher", func(t *testing.T) {
		other := createUser(t, "teacher")
		resp, parsed := doRequest(t, app, http.MethodPost, "/listings/create", tokenFor(t, other), body)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "You can only create listings for your own skills", parsed["message"])
	})

	t.Run("negative fee rejected", func(t *testing.T) {
		bad := map[string]interface{}{
			"title":       "Cheap Lessons",
			"fee":         -5,
			"proficiency": "beginner",
			"skill_id":    skill.ID.String(),
		}
		resp, _ := doRequest(t, app, http.MethodPost, "/listings/create", teacherToken, bad)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("proficiency is constrained", func(t *testing.T) {
		bad := map[string]interface{}{
			"title":       "Mystery Lessons",
			"fee":         10,
			"proficiency": "wizard",
			"skill_id":    skill.ID.String(),
		}
		resp, _ := doRequest(t, app, http.MethodPost, "/listings/create", teacherToken, bad)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateListing(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, "teacher")
	listing := createListing(t, teacher, []string{"10:00"})
	teacherToken := tokenFor(t, teacher)

	t.Run("partial update", func(t *testing.T) {
		resp, parsed := doRequest(t, app, http.MethodPut, "/listings/"+listing.ID.String(), teacherToken,
			map[string]interface{}{"fee": 40})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		updated := parsed["listing"].(map[string]interface{})
		assert.Equal(t, 40.0, updated["fee"])
		assert.Equal(t, listing.Title, updated["title"], "untouched fields survive")
	})

	t.Run("negative fee rejected", func(t *testing.T) {
		resp, parsed := doRequest(t, app, http.MethodPut, "/listings/"+listing.ID.String(), teacherToken,
			map[string]interface{}{"fee": -1})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Fee cannot be negative", parsed["message"])
	})

	t.Run("only the owner", func(t *testing.T) {
		stranger := createUser(t, "teacher")
		resp, _ := doRequest(t, app, http.MethodPut, "/listings/"+listing.ID.String(), tokenFor(t, stranger),
			map[string]interface{}{"fee": 1})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestListListingsFilters(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, "teacher")
	other := createUser(t, "teacher")
	createListing(t, teacher, []string{"10:00"})
	createListing(t, teacher, []string{"11:00"})
	createListing(t, other, []string{"12:00"})

	resp, parsed := doRequest(t, app, http.MethodGet, "/listings", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, parsed["listings"].([]interface{}), 3)

	resp, parsed = doRequest(t, app, http.MethodGet, "/listings?teacher="+teacher.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, parsed["listings"].([]interface{}), 2)
}

func TestGetListing(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, "teacher")
	listing := createListing(t, teacher, []string{"10:00"})

	resp, parsed := doRequest(t, app, http.MethodGet, "/listings/"+listing.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := parsed["listing"].(map[string]interface{})
	assert.Equal(t, listing.Title, fetched["title"])
	assert.NotNil(t, fetched["teacher"], "teacher is preloaded")

	resp, _ = doRequest(t, app, http.MethodGet, "/listings/1f2ad4a6-34b2-4292-8a9f-6d78cd7d2c69", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
