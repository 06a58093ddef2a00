package repository

import (
	"context"
	"errors"
	"testing"

	"linknet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPost(t *testing.T, repo PostRepository, authorID uint) *models.Post {
	t.Helper()
	post := &models.Post{AuthorID: authorID, Content: "hello", Type: models.PostTypeText}
	require.NoError(t, repo.Create(context.Background(), post))
	return post
}

func TestPostRepositoryToggleLikeRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	users := seedUsers(t, NewUserRepository(db), 2)
	post := createPost(t, repo, users[0].ID)

	liked, err := repo.ToggleLike(context.Background(), post.ID, users[1].ID)
	require.NoError(t, err)
	assert.True(t, liked)

	got, err := repo.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)

	// Second toggle removes the like and decrements the counter.
	liked, err = repo.ToggleLike(context.Background(), post.ID, users[1].ID)
	require.NoError(t, err)
	assert.False(t, liked)

	got, err = repo.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LikesCount)

	var likeRows int64
	require.NoError(t, db.Model(&models.Like{}).Count(&likeRows).Error)
	assert.Equal(t, int64(0), likeRows)
}

func TestPostRepositoryToggleLikeTwoUsers(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	users := seedUsers(t, NewUserRepository(db), 3)
	post := createPost(t, repo, users[0].ID)

	for _, u := range users[1:] {
		liked, err := repo.ToggleLike(context.Background(), post.ID, u.ID)
		require.NoError(t, err)
		assert.True(t, liked)
	}

	got, err := repo.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.LikesCount)

	// One user unlikes; the other's like is untouched.
	_, err = repo.ToggleLike(context.Background(), post.ID, users[1].ID)
	require.NoError(t, err)

	got, err = repo.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)

	likedMap, err := repo.GetLikedPostIDs(context.Background(), users[2].ID, []uint{post.ID})
	require.NoError(t, err)
	assert.True(t, likedMap[post.ID])
}

func TestPostRepositoryToggleLikeMissingPost(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	users := seedUsers(t, NewUserRepository(db), 1)

	_, err := repo.ToggleLike(context.Background(), 999, users[0].ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostRepositoryAddCommentBumpsCounter(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	users := seedUsers(t, NewUserRepository(db), 2)
	post := createPost(t, repo, users[0].ID)

	for i := 0; i < 2; i++ {
		comment := &models.Comment{PostID: post.ID, AuthorID: users[1].ID, Content: "nice"}
		require.NoError(t, repo.AddComment(context.Background(), comment))
	}

	got, err := repo.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CommentsCount)

	comments, err := repo.ListComments(context.Background(), post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, users[1].ID, comments[0].Author.ID, "author should be preloaded")
}

func TestPostRepositoryAddCommentMissingPost(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	users := seedUsers(t, NewUserRepository(db), 1)

	err := repo.AddComment(context.Background(), &models.Comment{
		PostID: 999, AuthorID: users[0].ID, Content: "ghost",
	})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	var commentRows int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&commentRows).Error)
	assert.Equal(t, int64(0), commentRows, "failed transaction must not leave a comment row")
}

func TestPostRepositoryListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	users := seedUsers(t, NewUserRepository(db), 1)

	first := createPost(t, repo, users[0].ID)
	second := createPost(t, repo, users[0].ID)
	third := createPost(t, repo, users[0].ID)

	posts, err := repo.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, third.ID, posts[0].ID)
	assert.Equal(t, second.ID, posts[1].ID)
	_ = first
}
