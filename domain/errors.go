package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrAttemptNotFound      = errors.New("quiz attempt not found")
	ErrCertificateNotFound  = errors.New("certificate not found")
)
