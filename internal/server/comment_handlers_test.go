package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"seedbed/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		mockSetup      func(deps *testDeps)
		expectedStatus int
	}{
		{
			name:    "Success",
			content: "응원해요!",
			mockSetup: func(deps *testDeps) {
				deps.users.On("GetByID", mock.Anything, uint(1)).Return(activeUser(1), nil)
				deps.posts.On("GetByID", mock.Anything, uint(5), uint(0)).
					Return(&models.Post{ID: 5, UserID: 2}, nil)
				deps.comments.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
					args.Get(1).(*models.Comment).ID = 3
				}).Return(nil)
				deps.comments.On("GetByID", mock.Anything, uint(3)).
					Return(&models.Comment{ID: 3, Content: "응원해요!", PostID: 5, UserID: 1}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:    "Blank content",
			content: "   ",
			mockSetup: func(deps *testDeps) {
				deps.users.On("GetByID", mock.Anything, uint(1)).Return(activeUser(1), nil)
				deps.posts.On("GetByID", mock.Anything, uint(5), uint(0)).
					Return(&models.Post{ID: 5, UserID: 2}, nil)
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:    "Deleted post",
			content: "응원해요!",
			mockSetup: func(deps *testDeps) {
				deps.users.On("GetByID", mock.Anything, uint(1)).Return(activeUser(1), nil)
				deps.posts.On("GetByID", mock.Anything, uint(5), uint(0)).
					Return(&models.Post{ID: 5, IsDeleted: true}, nil)
			},
			expectedStatus: http.StatusGone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			s, deps := newTestServer(t)
			app.Use(withUser(1))
			app.Post("/posts/:id/comments", s.CreateComment)
			tt.mockSetup(deps)

			body, _ := json.Marshal(map[string]string{"content": tt.content})
			req := httptest.NewRequest(http.MethodPost, "/posts/5/comments", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetComments(t *testing.T) {
	app := fiber.New()
	s, deps := newTestServer(t)
	app.Get("/posts/:id/comments", s.GetComments)

	deps.posts.On("GetByID", mock.Anything, uint(5), uint(0)).
		Return(&models.Post{ID: 5, UserID: 2}, nil)
	deps.comments.On("ListByPost", mock.Anything, uint(5), 10, 0).
		Return([]*models.Comment{{ID: 1, PostID: 5}, {ID: 2, PostID: 5}}, nil)
	deps.comments.On("CountByPost", mock.Anything, uint(5)).Return(int64(2), nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts/5/comments", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Comments []models.Comment `json:"comments"`
		Total    int64            `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Comments, 2)
	assert.Equal(t, int64(2), body.Total)
}

func TestUpdateComment(t *testing.T) {
	t.Run("non-owner gets 403", func(t *testing.T) {
		app := fiber.New()
		s, deps := newTestServer(t)
		app.Use(withUser(1))
		app.Put("/posts/:id/comments/:commentId", s.UpdateComment)

		deps.users.On("GetByID", mock.Anything, uint(1)).Return(activeUser(1), nil)
		deps.comments.On("GetByID", mock.Anything, uint(3)).
			Return(&models.Comment{ID: 3, Content: "남의 댓글", PostID: 5, UserID: 2}, nil)

		body, _ := json.Marshal(map[string]string{"content": "수정"})
		req := httptest.NewRequest(http.MethodPut, "/posts/5/comments/3", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("deleted comment returns 410", func(t *testing.T) {
		app := fiber.New()
		s, deps := newTestServer(t)
		app.Use(withUser(1))
		app.Put("/posts/:id/comments/:commentId", s.UpdateComment)

		deps.users.On("GetByID", mock.Anything, uint(1)).Return(activeUser(1), nil)
		deps.comments.On("GetByID", mock.Anything, uint(3)).
			Return(&models.Comment{ID: 3, IsDeleted: true, PostID: 5, UserID: 1}, nil)

		body, _ := json.Marshal(map[string]string{"content": "수정"})
		req := httptest.NewRequest(http.MethodPut, "/posts/5/comments/3", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusGone, resp.StatusCode)
	})
}

func TestDeleteComment(t *testing.T) {
	app := fiber.New()
	s, deps := newTestServer(t)
	app.Use(withUser(1))
	app.Delete("/posts/:id/comments/:commentId", s.DeleteComment)

	deps.users.On("GetByID", mock.Anything, uint(1)).Return(activeUser(1), nil)
	deps.comments.On("GetByID", mock.Anything, uint(3)).
		Return(&models.Comment{ID: 3, Content: "댓글", PostID: 5, UserID: 1}, nil)
	deps.comments.On("SoftDelete", mock.Anything, uint(3)).Return(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/posts/5/comments/3", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
