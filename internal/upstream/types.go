package upstream

import "github.com/SARVESHVARADKAR123/leetproxy/internal/calendar"

// User is the typed view of a getUserProfile response, with the submission
// calendar already decoded.
type User struct {
	Username    string
	GitHubURL   *string
	TwitterURL  *string
	LinkedInURL *string
	Profile     Profile
	Solved      []DifficultyCount
	Questions   []DifficultyCount
	Calendar    calendar.Calendar
}

type Profile struct {
	RealName    *string  `json:"realName"`
	AboutMe     *string  `json:"aboutMe"`
	School      *string  `json:"school"`
	Websites    []string `json:"websites"`
	CountryName *string  `json:"countryName"`
	Company     *string  `json:"company"`
	JobTitle    *string  `json:"jobTitle"`
	SkillTags   []string `json:"skillTags"`
	Ranking     *int     `json:"ranking"`
}

type DifficultyCount struct {
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

// Wire format of the GraphQL response.

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data   *responseData  `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type responseData struct {
	MatchedUser       *matchedUser      `json:"matchedUser"`
	AllQuestionsCount []DifficultyCount `json:"allQuestionsCount"`
}

type matchedUser struct {
	Username    string   `json:"username"`
	Profile     *Profile `json:"profile"`
	GitHubURL   *string  `json:"githubUrl"`
	TwitterURL  *string  `json:"twitterUrl"`
	LinkedInURL *string  `json:"linkedinUrl"`
	SubmitStats *struct {
		AcSubmissionNum []DifficultyCount `json:"acSubmissionNum"`
	} `json:"submitStats"`
	UserCalendar *struct {
		SubmissionCalendar *string `json:"submissionCalendar"`
	} `json:"userCalendar"`
}
