package service

import (
	"strings"

	"github.com/SARVESHVARADKAR123/leetproxy/internal/model"
	"github.com/SARVESHVARADKAR123/leetproxy/internal/upstream"
)

// Assemble builds the response profile from the upstream record and its
// bucketed calendar. Null lists become empty; difficulty tiers other than
// easy, medium and hard are ignored.
func Assemble(u *upstream.User, progress model.Progress) *model.UserProfile {
	p := &model.UserProfile{
		Username:    u.Username,
		GitHub:      u.GitHubURL,
		Twitter:     u.TwitterURL,
		LinkedIn:    u.LinkedInURL,
		Ranking:     u.Profile.Ranking,
		RealName:    u.Profile.RealName,
		AboutMe:     u.Profile.AboutMe,
		School:      u.Profile.School,
		Website:     nonNil(u.Profile.Websites),
		CountryName: u.Profile.CountryName,
		Company:     u.Profile.Company,
		JobTitle:    u.Profile.JobTitle,
		Skill:       nonNil(u.Profile.SkillTags),
		Progress:    progress,
		Problem:     model.NewProblemStats(),
	}

	for _, q := range u.Questions {
		d := strings.ToLower(q.Difficulty)
		if st, ok := p.Problem[d]; ok {
			st.Total = q.Count
			p.Problem[d] = st
		}
	}
	for _, s := range u.Solved {
		d := strings.ToLower(s.Difficulty)
		if st, ok := p.Problem[d]; ok {
			st.Solved = s.Count
			p.Problem[d] = st
		}
	}

	return p
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
