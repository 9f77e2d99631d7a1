package domain

// SimilarityCandidate is a neighbor picked by the similarity engine, with
// its features scaled into the request's [0,1] range.
type SimilarityCandidate struct {
	UserID     uint
	NormAge    float64
	NormAssets float64
	NormIncome float64
	Distance   float64
}

type RankedProduct struct {
	Code  string
	Kind  ProductKind
	Count int
}

type Recommendation struct {
	Product             ProductMetadata `json:"product"`
	RecommendationCount int             `json:"recommendation_count"`
	Type                ProductKind     `json:"type"`
}

type RecommendationResult struct {
	Message           string           `json:"message"`
	Recommendations   []Recommendation `json:"recommendations"`
	SimilarUsersCount int              `json:"similar_users_count"`
}
