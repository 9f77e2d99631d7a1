package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"youthBanking/domain"
	"youthBanking/pkg/logger"
	"youthBanking/pkg/metrics"
)

const (
	MessageRecommendations = "Recommendations based on %d users with a similar profile"
	MessageNoSimilarUsers  = "Not enough similar users yet to generate recommendations"
	MessageNoNewProducts   = "Similar users hold no products you have not already joined"
)

// ProfileRepository contract interface
type ProfileRepository interface {
	FindProfile(ctx context.Context, userID uint) (domain.UserProfile, error)
	FindEligibleProfiles(ctx context.Context) ([]domain.UserProfile, error)
}

// SubscriptionRepository contract interface
type SubscriptionRepository interface {
	FindByUsers(ctx context.Context, userIDs []uint, kind domain.ProductKind) ([]domain.Subscription, error)
}

// ProductMetadataRepository contract interface
type ProductMetadataRepository interface {
	FindMetadata(ctx context.Context, codes []string, kind domain.ProductKind) (map[string]domain.ProductMetadata, error)
}

type Service struct {
	profiles      ProfileRepository
	subscriptions SubscriptionRepository
	products      ProductMetadataRepository
	cfg           Config
}

func NewService(profiles ProfileRepository, subscriptions SubscriptionRepository, products ProductMetadataRepository, cfg Config) *Service {
	return &Service{
		profiles:      profiles,
		subscriptions: subscriptions,
		products:      products,
		cfg:           cfg.withDefaults(),
	}
}

// Recommend suggests deposit and saving products held by the users whose
// age, assets and income are closest to the requester's. Everything is
// recomputed on each call.
func (s *Service) Recommend(ctx context.Context, userID uint) (domain.RecommendationResult, error) {
	start := time.Now()
	defer func() {
		metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	}()

	result, outcome, err := s.recommend(ctx, userID)
	metrics.RecommendRequests.WithLabelValues(outcome).Inc()
	return result, err
}

func (s *Service) recommend(ctx context.Context, userID uint) (domain.RecommendationResult, string, error) {
	tid := TraceIDFromContext(ctx)

	if err := ctx.Err(); err != nil {
		return domain.RecommendationResult{}, metrics.OutcomeError, fmt.Errorf("context error: %w", err)
	}

	requester, err := s.profiles.FindProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.RecommendationResult{}, metrics.OutcomeNotFound, err
		}
		logger.Error("Failed to load requester profile", "trace_id", tid, "user_id", userID, "error", err)
		return domain.RecommendationResult{}, metrics.OutcomeError, fmt.Errorf("%w: %v", ErrUnexpectedFailure, err)
	}

	if !requester.Complete() {
		return domain.RecommendationResult{}, metrics.OutcomeIncompleteProfile, ErrMissingProfileData
	}

	candidates, err := s.profiles.FindEligibleProfiles(ctx)
	if err != nil {
		logger.Error("Failed to load candidate profiles", "trace_id", tid, "user_id", userID, "error", err)
		return domain.RecommendationResult{}, metrics.OutcomeError, fmt.Errorf("%w: %v", ErrUnexpectedFailure, err)
	}

	neighbors, err := FindSimilarUsers(requester, candidates, s.cfg.Neighbors, s.cfg.Weights)
	if err != nil {
		return domain.RecommendationResult{}, metrics.OutcomeIncompleteProfile, err
	}
	metrics.RecommendNeighbors.Observe(float64(len(neighbors)))

	if len(neighbors) == 0 {
		return domain.RecommendationResult{
			Message:         MessageNoSimilarUsers,
			Recommendations: []domain.Recommendation{},
		}, metrics.OutcomeEmpty, nil
	}

	ids := neighborIDs(neighbors)
	perKind := make([][]domain.RankedProduct, 0, len(domain.ProductKinds))
	meta := make(map[domain.ProductKind]map[string]domain.ProductMetadata, len(domain.ProductKinds))
	failed := 0

	for _, kind := range domain.ProductKinds {
		ranked, kindMeta, err := s.rankKind(ctx, userID, ids, kind)
		if err != nil {
			failed++
			logger.Error("Failed to rank products for kind",
				"trace_id", tid,
				"user_id", userID,
				"kind", kind,
				"error", err,
			)
			continue
		}
		perKind = append(perKind, ranked)
		meta[kind] = kindMeta
	}

	if failed == len(domain.ProductKinds) {
		return domain.RecommendationResult{}, metrics.OutcomeError, ErrUnexpectedFailure
	}

	recs := Assemble(Merge(s.cfg.TopTotal, perKind...), meta)

	logger.Debug("recommendations_built",
		"trace_id", tid,
		"user_id", userID,
		"candidates", len(candidates),
		"neighbors", len(neighbors),
		"recommendations", len(recs),
		"failed_kinds", failed,
	)

	message := fmt.Sprintf(MessageRecommendations, len(neighbors))
	if len(recs) == 0 {
		message = MessageNoNewProducts
	}

	outcome := metrics.OutcomeOK
	if failed > 0 {
		outcome = metrics.OutcomePartial
	}

	return domain.RecommendationResult{
		Message:           message,
		Recommendations:   recs,
		SimilarUsersCount: len(neighbors),
	}, outcome, nil
}

func (s *Service) rankKind(ctx context.Context, userID uint, neighbors []uint, kind domain.ProductKind) ([]domain.RankedProduct, map[string]domain.ProductMetadata, error) {
	own, err := s.subscriptions.FindByUsers(ctx, []uint{userID}, kind)
	if err != nil {
		return nil, nil, fmt.Errorf("load own subscriptions: %w", err)
	}

	subs, err := s.subscriptions.FindByUsers(ctx, neighbors, kind)
	if err != nil {
		return nil, nil, fmt.Errorf("load neighbor subscriptions: %w", err)
	}

	ranked := Aggregate(neighbors, subs, excludeSet(own), kind, s.cfg.TopPerKind)
	if len(ranked) == 0 {
		return ranked, map[string]domain.ProductMetadata{}, nil
	}

	meta, err := s.products.FindMetadata(ctx, codes(ranked), kind)
	if err != nil {
		return nil, nil, fmt.Errorf("load product metadata: %w", err)
	}

	return ranked, meta, nil
}
