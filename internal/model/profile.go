package model

// CurrentBucket is the progress key for the rolling 365-day window.
const CurrentBucket = "current"

// Difficulty tiers reported in UserProfile.Problem.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// YearBucket holds the per-day submission counts of one bucket and their sum.
type YearBucket struct {
	Daily map[string]int `json:"daily"`
	Total int            `json:"total"`
}

// Progress maps a 4-digit year, or CurrentBucket, to its bucket.
type Progress map[string]YearBucket

type ProblemStats struct {
	Solved int `json:"solved"`
	Total  int `json:"total"`
}

// UserProfile is the payload served by GET /api/user/{username} and stored in
// the cache. Every field is always emitted; missing upstream values are null
// or an empty array.
type UserProfile struct {
	Username    string                  `json:"username"`
	GitHub      *string                 `json:"github"`
	Twitter     *string                 `json:"twitter"`
	LinkedIn    *string                 `json:"linkedin"`
	Ranking     *int                    `json:"ranking"`
	RealName    *string                 `json:"realname"`
	AboutMe     *string                 `json:"aboutme"`
	School      *string                 `json:"school"`
	Website     []string                `json:"website"`
	CountryName *string                 `json:"country_name"`
	Company     *string                 `json:"company"`
	JobTitle    *string                 `json:"job_title"`
	Skill       []string                `json:"skill"`
	Progress    Progress                `json:"progress"`
	Problem     map[string]ProblemStats `json:"problem"`
}

// NewProblemStats returns the zero-filled stats for every difficulty tier.
func NewProblemStats() map[string]ProblemStats {
	return map[string]ProblemStats{
		DifficultyEasy:   {},
		DifficultyMedium: {},
		DifficultyHard:   {},
	}
}
