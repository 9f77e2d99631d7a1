package community

import (
	"context"
	"errors"
	"strings"

	"youthBanking/domain"
	"youthBanking/pkg/logger"
)

// CommunityRepository contract interface
type CommunityRepository interface {
	FindPosts(ctx context.Context, filter domain.PostFilter) ([]domain.PostSummary, error)
	FindPostSummary(ctx context.Context, id uint) (domain.PostSummary, error)
	FindPostByID(ctx context.Context, id uint) (domain.Post, error)
	CreatePost(ctx context.Context, post *domain.Post) error
	UpdatePost(ctx context.Context, post *domain.Post) error
	DeletePost(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, postID, userID uint) (domain.LikeResult, error)
	IsLiked(ctx context.Context, postID, userID uint) (bool, error)
	FindComments(ctx context.Context, postID uint) ([]domain.Comment, error)
	FindCommentByID(ctx context.Context, id uint) (domain.Comment, error)
	CreateComment(ctx context.Context, comment *domain.Comment) error
	DeleteComment(ctx context.Context, id uint) error
}

var (
	ErrForbidden       = errors.New("you can only modify your own content")
	ErrInvalidCategory = errors.New("invalid post category")
	ErrEmptyTitle      = errors.New("title is required")
	ErrEmptyContent    = errors.New("content is required")
)

type communityService struct {
	repo CommunityRepository
}

func NewCommunityService(repo CommunityRepository) *communityService {
	return &communityService{
		repo: repo,
	}
}

func (s *communityService) ListPosts(ctx context.Context, filter domain.PostFilter) ([]domain.PostSummary, error) {
	if filter.Category != "" && !domain.ValidPostCategory(filter.Category) {
		return nil, ErrInvalidCategory
	}
	filter.Search = strings.TrimSpace(filter.Search)

	posts, err := s.repo.FindPosts(ctx, filter)
	if err != nil {
		logger.Error("Failed to list posts", "error", err)
		return nil, err
	}

	return posts, nil
}

// GetPost counts a view and returns the post with its comments. viewerID is
// 0 for anonymous readers.
func (s *communityService) GetPost(ctx context.Context, id, viewerID uint) (domain.PostDetail, error) {
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return domain.PostDetail{}, err
	}

	summary, err := s.repo.FindPostSummary(ctx, id)
	if err != nil {
		return domain.PostDetail{}, err
	}

	comments, err := s.repo.FindComments(ctx, id)
	if err != nil {
		logger.Error("Failed to load comments", "post_id", id, "error", err)
		return domain.PostDetail{}, err
	}

	detail := domain.PostDetail{PostSummary: summary, Comments: comments}
	if viewerID != 0 {
		liked, err := s.repo.IsLiked(ctx, id, viewerID)
		if err != nil {
			return domain.PostDetail{}, err
		}
		detail.IsLiked = liked
	}

	return detail, nil
}

func validatePost(post *domain.Post) error {
	post.Title = strings.TrimSpace(post.Title)
	if post.Title == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(post.Content) == "" {
		return ErrEmptyContent
	}
	if post.Category == "" {
		post.Category = domain.DefaultPostCategory
	}
	if !domain.ValidPostCategory(post.Category) {
		return ErrInvalidCategory
	}
	return nil
}

func (s *communityService) CreatePost(ctx context.Context, authorID uint, post domain.Post) (domain.Post, error) {
	post.ID = 0
	post.AuthorID = authorID
	post.ViewCount = 0
	if err := validatePost(&post); err != nil {
		return domain.Post{}, err
	}

	if err := s.repo.CreatePost(ctx, &post); err != nil {
		logger.Error("Failed to create post", "author_id", authorID, "error", err)
		return domain.Post{}, err
	}

	return post, nil
}

func (s *communityService) UpdatePost(ctx context.Context, userID, postID uint, update domain.Post) (domain.Post, error) {
	post, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		return domain.Post{}, err
	}
	if post.AuthorID != userID {
		return domain.Post{}, ErrForbidden
	}

	post.Title = update.Title
	post.Content = update.Content
	if update.Category != "" {
		post.Category = update.Category
	}
	if err := validatePost(&post); err != nil {
		return domain.Post{}, err
	}

	if err := s.repo.UpdatePost(ctx, &post); err != nil {
		logger.Error("Failed to update post", "post_id", postID, "error", err)
		return domain.Post{}, err
	}

	return post, nil
}

func (s *communityService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return ErrForbidden
	}

	return s.repo.DeletePost(ctx, postID)
}

func (s *communityService) ToggleLike(ctx context.Context, postID, userID uint) (domain.LikeResult, error) {
	if _, err := s.repo.FindPostByID(ctx, postID); err != nil {
		return domain.LikeResult{}, err
	}

	return s.repo.ToggleLike(ctx, postID, userID)
}

func (s *communityService) ListComments(ctx context.Context, postID uint) ([]domain.Comment, error) {
	if _, err := s.repo.FindPostByID(ctx, postID); err != nil {
		return nil, err
	}

	return s.repo.FindComments(ctx, postID)
}

func (s *communityService) CreateComment(ctx context.Context, userID, postID uint, content string) (domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Comment{}, ErrEmptyContent
	}
	if _, err := s.repo.FindPostByID(ctx, postID); err != nil {
		return domain.Comment{}, err
	}

	comment := domain.Comment{PostID: postID, AuthorID: userID, Content: content}
	if err := s.repo.CreateComment(ctx, &comment); err != nil {
		logger.Error("Failed to create comment", "post_id", postID, "error", err)
		return domain.Comment{}, err
	}

	return comment, nil
}

// DeleteComment removes a comment of postID written by userID.
func (s *communityService) DeleteComment(ctx context.Context, userID, postID, commentID uint) error {
	comment, err := s.repo.FindCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.PostID != postID {
		return domain.ErrCommentNotFound
	}
	if comment.AuthorID != userID {
		return ErrForbidden
	}

	return s.repo.DeleteComment(ctx, commentID)
}
