package domain

// AspectScore is one scored dimension of a food photo.
type AspectScore struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// QualityAspects breaks the overall score into fixed dimensions.
type QualityAspects struct {
	Presentation AspectScore `json:"presentation"`
	Freshness    AspectScore `json:"freshness"`
	Color        AspectScore `json:"color"`
	Texture      AspectScore `json:"texture"`
	Plating      AspectScore `json:"plating"`
}

// QualityAssessment is the structured verdict of the quality assessor for an
// image that does depict food. A "not food" verdict never produces one of
// these; it surfaces as ErrNotFood with the upstream message instead.
type QualityAssessment struct {
	OverallScore   int            `json:"overallScore"`
	QualityRating  QualityRating  `json:"qualityRating"`
	Aspects        QualityAspects `json:"aspects"`
	PositivePoints []string       `json:"positivePoints"`
	Improvements   []string       `json:"improvements"`
	Summary        string         `json:"summary"`
	Recommendation string         `json:"recommendation"`
}
