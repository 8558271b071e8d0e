package repository

import (
	"context"
	"regexp"
	"testing"

	"seedbed/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Title: "hello", Content: "world", UserID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Anonymous reader", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "title", "content", "user_id", "comments_count", "likes_count", "liked", "is_deleted"}).
			AddRow(1, "hello", "world", 2, 3, 5, false, false)
		mock.ExpectQuery(`SELECT posts\.\*, \(SELECT COUNT\(\*\) FROM comments.+FALSE as liked FROM "posts" WHERE "posts"\."id" = \$1`).
			WithArgs(1, 1).
			WillReturnRows(rows)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "author"))

		post, err := repo.GetByID(ctx, 1, 0)
		assert.NoError(t, err)
		if assert.NotNil(t, post) {
			assert.Equal(t, 3, post.CommentsCount)
			assert.Equal(t, 5, post.LikesCount)
			assert.False(t, post.Liked)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Authenticated reader gets liked flag", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "title", "user_id", "comments_count", "likes_count", "liked"}).
			AddRow(1, "hello", 2, 0, 1, true)
		mock.ExpectQuery(`SELECT posts\.\*.+EXISTS\(SELECT 1 FROM likes.+\) as liked FROM "posts" WHERE "posts"\."id" = \$2`).
			WithArgs(9, 1, 1).
			WillReturnRows(rows)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "author"))

		post, err := repo.GetByID(ctx, 1, 9)
		assert.NoError(t, err)
		assert.True(t, post.Liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT posts\.\*.+FROM "posts" WHERE "posts"\."id" = \$1`).
			WithArgs(99, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		post, err := repo.GetByID(ctx, 99, 0)
		assert.Error(t, err)
		assert.Nil(t, post)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "title", "user_id", "comments_count", "likes_count", "liked"}).
		AddRow(2, "newer", 1, 0, 0, false).
		AddRow(1, "older", 1, 2, 1, false)
	mock.ExpectQuery(`SELECT posts\.\*.+FROM "posts" WHERE posts\.is_deleted = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs(false, 10).
		WillReturnRows(rows)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "author"))

	posts, err := repo.List(ctx, 10, 0, 0)
	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_IncrementViewCount(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "view_count"=view_count + 1 WHERE id = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.IncrementViewCount(ctx, 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_SoftDelete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SoftDelete(ctx, 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Likes(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("IsLiked", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
			WithArgs(1, 2).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		liked, err := repo.IsLiked(ctx, 1, 2)
		assert.NoError(t, err)
		assert.True(t, liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Like returns the created row", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "likes"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		like, err := repo.Like(ctx, 1, 2)
		assert.NoError(t, err)
		require.NotNil(t, like)
		assert.Equal(t, uint(1), like.ID)
		assert.Equal(t, uint(1), like.UserID)
		assert.Equal(t, uint(2), like.PostID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unlike removes existing like", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
			WithArgs(1, 2).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		removed, err := repo.Unlike(ctx, 1, 2)
		assert.NoError(t, err)
		assert.True(t, removed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unlike without existing like", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
			WithArgs(1, 2).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		removed, err := repo.Unlike(ctx, 1, 2)
		assert.NoError(t, err)
		assert.False(t, removed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
