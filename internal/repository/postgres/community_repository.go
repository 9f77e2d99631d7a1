package postgres

import (
	"context"
	"errors"
	"fmt"

	"youthBanking/domain"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{
		DB: db,
	}
}

func (r *CommunityRepository) summaries(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("posts").
		Select(`posts.*, u.username AS author_username,
			(SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = posts.id) AS like_count,
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = posts.id) AS comment_count`).
		Joins("LEFT JOIN users u ON u.id = posts.author_id")
}

func (r *CommunityRepository) FindPosts(ctx context.Context, filter domain.PostFilter) ([]domain.PostSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.summaries(ctx)
	if filter.Category != "" {
		q = q.Where("posts.category = ?", filter.Category)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("posts.title ILIKE ? OR posts.content ILIKE ?", like, like)
	}

	var posts []domain.PostSummary
	if err := q.Order("posts.created_at DESC").Order("posts.id DESC").Scan(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}

	return posts, nil
}

func (r *CommunityRepository) FindPostSummary(ctx context.Context, id uint) (domain.PostSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.PostSummary{}, fmt.Errorf("context error: %w", err)
	}

	var posts []domain.PostSummary
	if err := r.summaries(ctx).Where("posts.id = ?", id).Limit(1).Scan(&posts).Error; err != nil {
		return domain.PostSummary{}, fmt.Errorf("failed to find post: %w", err)
	}
	if len(posts) == 0 {
		return domain.PostSummary{}, domain.ErrPostNotFound
	}

	return posts[0], nil
}

func (r *CommunityRepository) FindPostByID(ctx context.Context, id uint) (domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return domain.Post{}, fmt.Errorf("context error: %w", err)
	}

	var post domain.Post
	if err := r.DB.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Post{}, domain.ErrPostNotFound
		}
		return domain.Post{}, fmt.Errorf("failed to find post: %w", err)
	}

	return post, nil
}

func (r *CommunityRepository) CreatePost(ctx context.Context, post *domain.Post) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *CommunityRepository) UpdatePost(ctx context.Context, post *domain.Post) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Post{}).Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"title":      post.Title,
			"content":    post.Content,
			"category":   post.Category,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPostNotFound
	}

	return nil
}

// DeletePost removes the post with its comments and likes.
func (r *CommunityRepository) DeletePost(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		if err := tx.Where("post_id = ?", id).Delete(&domain.PostLike{}).Error; err != nil {
			return fmt.Errorf("failed to delete likes: %w", err)
		}
		result := tx.Delete(&domain.Post{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete post: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrPostNotFound
		}
		return nil
	})
}

func (r *CommunityRepository) IncrementViews(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Post{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment views: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPostNotFound
	}

	return nil
}

// ToggleLike flips the user's like on a post and returns the new state.
func (r *CommunityRepository) ToggleLike(ctx context.Context, postID, userID uint) (domain.LikeResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.LikeResult{}, fmt.Errorf("context error: %w", err)
	}

	var res domain.LikeResult
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&domain.PostLike{})
		if deleted.Error != nil {
			return deleted.Error
		}

		if deleted.RowsAffected == 0 {
			if err := tx.Create(&domain.PostLike{PostID: postID, UserID: userID}).Error; err != nil {
				return err
			}
			res.Liked = true
		}

		var count int64
		if err := tx.Model(&domain.PostLike{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
			return err
		}
		res.LikeCount = int(count)
		return nil
	})
	if err != nil {
		return domain.LikeResult{}, fmt.Errorf("failed to toggle like: %w", err)
	}

	return res, nil
}

func (r *CommunityRepository) IsLiked(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}

	return count > 0, nil
}

func (r *CommunityRepository) FindComments(ctx context.Context, postID uint) ([]domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var comments []domain.Comment
	err := r.DB.WithContext(ctx).
		Select("comments.*, u.username AS author_username").
		Joins("LEFT JOIN users u ON u.id = comments.author_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at").Order("comments.id").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}

	return comments, nil
}

func (r *CommunityRepository) FindCommentByID(ctx context.Context, id uint) (domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Comment{}, fmt.Errorf("context error: %w", err)
	}

	var comment domain.Comment
	if err := r.DB.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Comment{}, domain.ErrCommentNotFound
		}
		return domain.Comment{}, fmt.Errorf("failed to find comment: %w", err)
	}

	return comment, nil
}

func (r *CommunityRepository) CreateComment(ctx context.Context, comment *domain.Comment) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *CommunityRepository) DeleteComment(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Comment{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCommentNotFound
	}

	return nil
}
