package handlers_test

import (
	"net/http"
	"testing"

	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSkill(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, "teacher")
	teacherToken := tokenFor(t, teacher)

	body := map[string]interface{}{
		"name":        "Go Programming",
		"description": "Backend development with Go",
		"category":    "programming",
		"tags":        []string{"go", "Go", " backend ", ""},
	}
	resp, parsed := doRequest(t, app, http.MethodPost, "/skills/create", teacherToken, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	skill := parsed["skill"].(map[string]interface{})
	tags := skill["tags"].([]interface{})
	assert.Equal(t, []interface{}{"go", "backend"}, tags, "tags are trimmed and deduplicated case-insensitively")

	t.Run("name must be unique", func(t *testing.T) {
		resp, parsed := doRequest(t, app, http.MethodPost, "/skills/create", teacherToken, body)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "A skill with this name already exists", parsed["message"])
	})

	t.Run("learners cannot create skills", func(t *testing.T) {
		learner := createUser(t, "learner")
		resp, _ := doRequest(t, app, http.MethodPost, "/skills/create", tokenFor(t, learner), body)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestListSkillsFilters(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, "teacher")
	other := createUser(t, "teacher")

	require.NoError(t, database.DB.Create(&models.Skill{
		Name: "Guitar", Category: "music", CreatorID: teacher.ID,
	}).Error)
	require.NoError(t, database.DB.Create(&models.Skill{
		Name: "Piano", Category: "music", CreatorID: other.ID,
	}).Error)
	require.NoError(t, database.DB.Create(&models.Skill{
		Name: "Go Programming", Category: "programming", CreatorID: teacher.ID,
	}).Error)

	resp, parsed := doRequest(t, app, http.MethodGet, "/skills", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, parsed["skills"].([]interface{}), 3)

	resp, parsed = doRequest(t, app, http.MethodGet, "/skills?category=music", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, parsed["skills"].([]interface{}), 2)

	resp, parsed = doRequest(t, app, http.MethodGet, "/skills?creator="+teacher.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, parsed["skills"].([]interface{}), 2)
}

func TestUpdateSkillOwnership(t *testing.T) {
	app := setupApp(t)
	owner := createUser(t, "teacher")
	stranger := createUser(t, "teacher")
	skill := createSkill(t, owner)

	resp, _ := doRequest(t, app, http.MethodPut, "/skills/"+skill.ID.String(), tokenFor(t, stranger),
		map[string]interface{}{"description": "hijacked"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, parsed := doRequest(t, app, http.MethodPut, "/skills/"+skill.ID.String(), tokenFor(t, owner),
		map[string]interface{}{"description": "updated description"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "updated description", parsed["skill"].(map[string]interface{})["description"])

	resp, _ = doRequest(t, app, http.MethodDelete, "/skills/"+skill.ID.String(), tokenFor(t, stranger), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodDelete, "/skills/"+skill.ID.String(), tokenFor(t, owner), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetTagCounts(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, "teacher")

	require.NoError(t, database.DB.Create(&models.Skill{
		Name: "Guitar", Tags: []string{"Music", "strings"}, CreatorID: teacher.ID,
	}).Error)
	require.NoError(t, database.DB.Create(&models.Skill{
		Name: "Piano", Tags: []string{"music", "keys"}, CreatorID: teacher.ID,
	}).Error)

	resp, parsed := doRequest(t, app, http.MethodGet, "/skills/tags", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tags := parsed["tags"].([]interface{})
	require.Len(t, tags, 3)

	top := tags[0].(map[string]interface{})
	assert.Equal(t, "Music", top["tag"], "keeps the first spelling seen")
	assert.EqualValues(t, 2, top["count"])
}
