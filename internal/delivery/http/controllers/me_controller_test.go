package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventexplorer/internal/delivery/http/middleware"
	"eventexplorer/internal/domain"
)

func themesRequest(t *testing.T, body string, userID int64) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/me/themes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req = req.WithContext(middleware.SetUserID(req.Context(), userID))
	}
	return req
}

func TestMeController_SaveThemes(t *testing.T) {
	svc := &fakeCatalogService{saved: []domain.Category{
		{ID: 1, Name: "Culture", Slug: "culture"},
		{ID: 4, Name: "Nature", Slug: "nature"},
	}}
	ctrl := NewMeController(discardLogger(), svc)

	rec := httptest.NewRecorder()
	ctrl.SaveThemes(rec, themesRequest(t, `{"categories":["culture","nature","bogus"]}`, 42))

	require.Equal(t, http.StatusOK, rec.Code)
	var body SaveThemesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.OK)
	require.Len(t, body.Categories, 2)
	assert.Equal(t, "culture", body.Categories[0].Slug)

	assert.Equal(t, int64(42), svc.lastUserID)
	assert.Equal(t, []string{"culture", "nature", "bogus"}, svc.lastSlugs)
}

func TestMeController_SaveThemes_empty_clears(t *testing.T) {
	svc := &fakeCatalogService{}
	ctrl := NewMeController(discardLogger(), svc)

	rec := httptest.NewRecorder()
	ctrl.SaveThemes(rec, themesRequest(t, `{"categories":[]}`, 42))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"categories":[]}`, rec.Body.String())
	assert.Empty(t, svc.lastSlugs)
}

func TestMeController_SaveThemes_unauthenticated(t *testing.T) {
	ctrl := NewMeController(discardLogger(), &fakeCatalogService{})

	rec := httptest.NewRecorder()
	ctrl.SaveThemes(rec, themesRequest(t, `{"categories":["culture"]}`, 0))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestMeController_SaveThemes_bad_body(t *testing.T) {
	ctrl := NewMeController(discardLogger(), &fakeCatalogService{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"categories":`},
		{"unknown field", `{"slugs":["culture"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctrl.SaveThemes(rec, themesRequest(t, tt.body, 42))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "bad_request")
		})
	}
}
