package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	communityService "youthBanking/business/community"
	"youthBanking/domain"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CommunityService interface {
	ListPosts(ctx context.Context, filter domain.PostFilter) ([]domain.PostSummary, error)
	GetPost(ctx context.Context, id, viewerID uint) (domain.PostDetail, error)
	CreatePost(ctx context.Context, authorID uint, post domain.Post) (domain.Post, error)
	UpdatePost(ctx context.Context, userID, postID uint, update domain.Post) (domain.Post, error)
	DeletePost(ctx context.Context, userID, postID uint) error
	ToggleLike(ctx context.Context, postID, userID uint) (domain.LikeResult, error)
	ListComments(ctx context.Context, postID uint) ([]domain.Comment, error)
	CreateComment(ctx context.Context, userID, postID uint, content string) (domain.Comment, error)
	DeleteComment(ctx context.Context, userID, postID, commentID uint) error
}

type CommunityHandler struct {
	communityService CommunityService
	validator        *validator.Validate
	timeout          time.Duration
}

func NewCommunityHandler(communityService CommunityService) *CommunityHandler {
	return &CommunityHandler{
		communityService: communityService,
		validator:        validator.New(),
		timeout:          10 * time.Second,
	}
}

type PostRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"required"`
}

func communityErrorStatus(err error) int {
	switch {
	case errors.Is(err, communityService.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, communityService.ErrInvalidCategory),
		errors.Is(err, communityService.ErrEmptyTitle),
		errors.Is(err, communityService.ErrEmptyContent):
		return http.StatusBadRequest
	default:
		return notFoundStatus(err)
	}
}

// ListPosts serves /community/posts?category=&search=
func (h *CommunityHandler) ListPosts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	posts, err := h.communityService.ListPosts(ctx, domain.PostFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
	})
	if err != nil {
		return c.JSON(communityErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "successfully get posts",
		"posts":      posts,
		"categories": domain.PostCategories,
	})
}

func (h *CommunityHandler) GetPost(c echo.Context) error {
	postID, err := uintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	// Anonymous readers are allowed; viewer stays 0.
	viewerID, _ := currentUserID(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	post, err := h.communityService.GetPost(ctx, postID, viewerID)
	if err != nil {
		return c.JSON(communityErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get post",
		"post":    post,
	})
}

func (h *CommunityHandler) CreatePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	post, err := h.communityService.CreatePost(ctx, userID, domain.Post{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		return c.JSON(communityErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "post successfully created",
		"post":    post,
	})
}

func (h *CommunityHandler) UpdatePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	postID, err := uintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	post, err := h.communityService.UpdatePost(ctx, userID, postID, domain.Post{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		return c.JSON(communityErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "post successfully updated",
		"post":    post,
	})
}

func (h *CommunityHandler) DeletePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	postID, err := uintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.communityService.DeletePost(ctx, userID, postID); err != nil {
		return c.JSON(communityErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "post successfully deleted",
	})
}

func (h *CommunityHandler) ToggleLike(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	postID, err := uintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.communityService.ToggleLike(ctx, postID, userID)
	if err != nil {
		return c.JSON(communityErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CommunityHandler) ListComments(c echo.Context) error {
	postID, err := uintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	comments, err := h.communityService.ListComments(ctx, postID)
	if err != nil {
		return c.JSON(communityErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get comments",
		"comments": comments,
	})
}

func (h *CommunityHandler) CreateComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	postID, err := uintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	comment, err := h.communityService.CreateComment(ctx, userID, postID, req.Content)
	if err != nil {
		return c.JSON(communityErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "comment successfully created",
		"comment": comment,
	})
}

func (h *CommunityHandler) DeleteComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	postID, err := uintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	commentID, err := uintParam(c, "comment_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.communityService.DeleteComment(ctx, userID, postID, commentID); err != nil {
		return c.JSON(communityErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "comment successfully deleted",
	})
}
