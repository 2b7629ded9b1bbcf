package models

type UploadResponse struct {
	ResumeID   string      `json:"resume_id"`
	Filename   string      `json:"filename"`
	ParsedInfo *ParsedInfo `json:"parsed_info,omitempty"`
	Message    string      `json:"message"`
}

type MatchRunResponse struct {
	Message    string `json:"message"`
	MatchedCVs int    `json:"matched_cvs"`
	Matches    int    `json:"matches"`
}

// MatchResult is one ranked entry of GET /match/results: a scored
// resume/offer pair, presented by its offer.
type MatchResult struct {
	JobOfferID  string  `json:"job_offer_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

type MatchResultsResponse struct {
	Message string        `json:"message"`
	Matches []MatchResult `json:"matches"`
}

type CreateJobOfferRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Criteria    Criteria `json:"criteria,omitempty"`
}

type CreateApplicationRequest struct {
	OfferID       string  `json:"offer_id"`
	CoverLetter   string  `json:"cover_letter"`
	MatchingScore float64 `json:"matching_score"`
}
