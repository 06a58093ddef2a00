package service

import (
	"context"
	"strings"

	"linknet/internal/blob"
	"linknet/internal/cache"
	"linknet/internal/models"
	"linknet/internal/repository"
)

const (
	// DefaultFeedLimit is the feed window when the caller does not ask for one.
	DefaultFeedLimit = 50
	// MaxFeedLimit caps how much a single feed request may pull.
	MaxFeedLimit     = 100
	maxContentLength = 5000
)

// PostService provides post, like, and comment business logic.
type PostService struct {
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	blobs       blob.Store
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, profileRepo repository.ProfileRepository, blobs blob.Store) *PostService {
	return &PostService{
		postRepo:    postRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		blobs:       blobs,
	}
}

// CreatePostInput carries the author-supplied fields of a new post.
type CreatePostInput struct {
	Content  string
	Type     models.PostType
	MediaRef string
	Title    string
}

// CreatePost validates and stores a new post for the author.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, input CreatePostInput) (*models.Post, error) {
	input.Content = strings.TrimSpace(input.Content)
	if input.Content == "" && input.MediaRef == "" {
		return nil, models.NewValidationError("Post must have content or media")
	}
	if len(input.Content) > maxContentLength {
		return nil, models.NewValidationError("Post content is too long")
	}
	if input.Type == "" {
		input.Type = models.PostTypeText
	}
	if !models.ValidPostType(input.Type) {
		return nil, models.NewValidationError("Invalid post type")
	}

	post := &models.Post{
		AuthorID: authorID,
		Content:  input.Content,
		Type:     input.Type,
		MediaRef: input.MediaRef,
		Title:    strings.TrimSpace(input.Title),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.decorated(ctx, post, authorID)
}

// GetPost returns one post with author details and the viewer's like state.
// viewerID zero means anonymous.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.decorated(ctx, post, viewerID)
}

// Feed returns the newest posts. The anonymous feed is served from cache;
// authenticated feeds carry viewer-specific like flags and always hit the
// database.
func (s *PostService) Feed(ctx context.Context, viewerID uint, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}

	if viewerID == 0 {
		var posts []models.Post
		err := cache.Aside(ctx, cache.FeedKey(limit), &posts, cache.FeedTTL, func() error {
			var err error
			posts, err = s.fetchFeed(ctx, 0, limit)
			return err
		})
		if err != nil {
			return nil, err
		}
		return posts, nil
	}

	return s.fetchFeed(ctx, viewerID, limit)
}

func (s *PostService) fetchFeed(ctx context.Context, viewerID uint, limit int) ([]models.Post, error) {
	posts, err := s.postRepo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if err := s.decorate(ctx, posts, viewerID); err != nil {
		return nil, err
	}
	return posts, nil
}

// ToggleLike flips the caller's like on a post. It returns the new like
// state and the post's updated like count.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID uint) (bool, int, error) {
	liked, err := s.postRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return false, 0, err
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return false, 0, err
	}
	return liked, post.LikesCount, nil
}

// AddComment appends a comment to a post.
func (s *PostService) AddComment(ctx context.Context, postID, authorID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Comment content cannot be empty")
	}
	if len(content) > maxContentLength {
		return nil, models.NewValidationError("Comment content is too long")
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	if profile, err := s.profileRepo.GetByUserID(ctx, authorID); err == nil {
		comment.AuthorProfile = profile
	}
	return comment, nil
}

// ListComments returns a post's comments oldest first, with author profiles
// attached.
func (s *PostService) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.postRepo.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]uint, 0, len(comments))
	for i := range comments {
		authorIDs = append(authorIDs, comments[i].AuthorID)
	}
	profiles, err := s.profileRepo.GetByUserIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		comments[i].AuthorProfile = profiles[comments[i].AuthorID]
	}
	return comments, nil
}

// decorate fills the computed fields on a batch of posts: author accounts
// and profiles, media URLs, and the viewer's like flags.
func (s *PostService) decorate(ctx context.Context, posts []models.Post, viewerID uint) error {
	if len(posts) == 0 {
		return nil
	}

	authorIDs := make([]uint, 0, len(posts))
	postIDs := make([]uint, 0, len(posts))
	for i := range posts {
		authorIDs = append(authorIDs, posts[i].AuthorID)
		postIDs = append(postIDs, posts[i].ID)
	}

	users, err := s.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		return err
	}
	profiles, err := s.profileRepo.GetByUserIDs(ctx, authorIDs)
	if err != nil {
		return err
	}

	liked := map[uint]bool{}
	if viewerID != 0 {
		liked, err = s.postRepo.GetLikedPostIDs(ctx, viewerID, postIDs)
		if err != nil {
			return err
		}
	}

	for i := range posts {
		p := &posts[i]
		if u := users[p.AuthorID]; u != nil {
			p.Author = *u
		}
		p.AuthorProfile = profiles[p.AuthorID]
		if p.AuthorProfile != nil && s.blobs != nil {
			p.AuthorProfile.ImageURL = s.blobs.URL(p.AuthorProfile.ImageRef)
		}
		if s.blobs != nil {
			p.MediaURL = s.blobs.URL(p.MediaRef)
		}
		p.IsLiked = liked[p.ID]
	}
	return nil
}

func (s *PostService) decorated(ctx context.Context, post *models.Post, viewerID uint) (*models.Post, error) {
	batch := []models.Post{*post}
	if err := s.decorate(ctx, batch, viewerID); err != nil {
		return nil, err
	}
	return &batch[0], nil
}
