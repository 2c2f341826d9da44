package controllers_test

import (
	"fmt"
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllCoursesFilters(t *testing.T) {
	app, db := setupTestApp(t)

	_, token := createUser(t, db, "browser@example.com", "USER")

	published := createPublishedCourse(t, db, "go-fundamentals")
	require.NoError(t, db.Model(&published).Update("category", "programming").Error)

	other := createPublishedCourse(t, db, "cooking-basics")
	require.NoError(t, db.Model(&other).Update("category", "cooking").Error)

	// Draft courses never show up in the catalogue
	draft := courseModels.Course{Title: "Secret", Slug: "secret", Status: courseModels.CourseStatusDraft}
	require.NoError(t, db.Create(&draft).Error)

	status, payload := doRequest(t, app, "GET", "/course/list", token, nil)
	require.Equal(t, 200, status)
	data := dataMap(t, payload)
	assert.Equal(t, float64(2), data["pagination"].(map[string]interface{})["total"])

	status, payload = doRequest(t, app, "GET", "/course/list?category=programming", token, nil)
	require.Equal(t, 200, status)
	data = dataMap(t, payload)
	courses := data["courses"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, "go-fundamentals", courses[0].(map[string]interface{})["slug"])
}

func TestCourseDetailLocksLessons(t *testing.T) {
	app, db := setupTestApp(t)

	user, token := createUser(t, db, "viewer@example.com", "USER")
	course := createPublishedCourse(t, db, "go-fundamentals")
	lessons := addLessons(t, db, course, 2)

	// Make the first lesson a free preview
	require.NoError(t, db.Model(&lessons[0]).Update("is_free_preview", true).Error)

	status, payload := doRequest(t, app, "GET", fmt.Sprintf("/course/%d", course.ID), token, nil)
	require.Equal(t, 200, status)
	data := dataMap(t, payload)
	assert.Equal(t, false, data["is_enrolled"])

	chapters := data["chapters"].([]interface{})
	require.Len(t, chapters, 1)
	served := chapters[0].(map[string]interface{})["lessons"].([]interface{})
	require.Len(t, served, 2)

	preview := served[0].(map[string]interface{})
	assert.Equal(t, false, preview["locked"])
	assert.NotEmpty(t, preview["video_url"])

	locked := served[1].(map[string]interface{})
	assert.Equal(t, true, locked["locked"])
	assert.Empty(t, locked["video_url"])

	// Once enrolled everything unlocks
	enrollActive(t, db, user.ID, course.ID)

	status, payload = doRequest(t, app, "GET", fmt.Sprintf("/course/%d", course.ID), token, nil)
	require.Equal(t, 200, status)
	data = dataMap(t, payload)
	assert.Equal(t, true, data["is_enrolled"])

	chapters = data["chapters"].([]interface{})
	served = chapters[0].(map[string]interface{})["lessons"].([]interface{})
	for _, raw := range served {
		lesson := raw.(map[string]interface{})
		assert.Equal(t, false, lesson["locked"])
		assert.NotEmpty(t, lesson["video_url"])
	}
}

func TestCourseDetailNotFound(t *testing.T) {
	app, db := setupTestApp(t)

	_, token := createUser(t, db, "viewer@example.com", "USER")

	status, _ := doRequest(t, app, "GET", "/course/9999", token, nil)
	require.Equal(t, 404, status)

	// Draft course is indistinguishable from a missing one
	draft := courseModels.Course{Title: "Secret", Slug: "secret", Status: courseModels.CourseStatusDraft}
	require.NoError(t, db.Create(&draft).Error)

	status, _ = doRequest(t, app, "GET", fmt.Sprintf("/course/%d", draft.ID), token, nil)
	require.Equal(t, 404, status)
}
