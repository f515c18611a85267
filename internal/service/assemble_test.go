package service

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SARVESHVARADKAR123/leetproxy/internal/model"
	"github.com/SARVESHVARADKAR123/leetproxy/internal/upstream"
)

func ptr[T any](v T) *T { return &v }

func TestAssemble_MapsFields(t *testing.T) {
	u := &upstream.User{
		Username:  "alice",
		GitHubURL: ptr("https://github.com/alice"),
		Profile: upstream.Profile{
			RealName:  ptr("Alice A"),
			Ranking:   ptr(1234),
			Websites:  []string{"https://alice.dev"},
			SkillTags: []string{"go"},
		},
		Solved: []upstream.DifficultyCount{
			{Difficulty: "All", Count: 60},
			{Difficulty: "Easy", Count: 30},
			{Difficulty: "Medium", Count: 20},
			{Difficulty: "Hard", Count: 10},
		},
		Questions: []upstream.DifficultyCount{
			{Difficulty: "All", Count: 3000},
			{Difficulty: "Easy", Count: 800},
			{Difficulty: "Medium", Count: 1600},
			{Difficulty: "Hard", Count: 600},
		},
	}
	progress := model.Progress{model.CurrentBucket: {Daily: map[string]int{}}}

	p := Assemble(u, progress)

	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "https://github.com/alice", *p.GitHub)
	assert.Equal(t, 1234, *p.Ranking)
	assert.Equal(t, "Alice A", *p.RealName)
	assert.Equal(t, []string{"https://alice.dev"}, p.Website)
	assert.Equal(t, []string{"go"}, p.Skill)
	assert.Equal(t, progress, p.Progress)
	assert.Equal(t, map[string]model.ProblemStats{
		"easy":   {Solved: 30, Total: 800},
		"medium": {Solved: 20, Total: 1600},
		"hard":   {Solved: 10, Total: 600},
	}, p.Problem)
}

func TestAssemble_NullsAreExplicit(t *testing.T) {
	p := Assemble(&upstream.User{Username: "bare"}, model.Progress{})

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))

	for _, k := range []string{"github", "twitter", "linkedin", "ranking", "realname", "aboutme", "school", "country_name", "company", "job_title"} {
		v, ok := out[k]
		assert.True(t, ok, "missing key %s", k)
		assert.Nil(t, v, k)
	}
	assert.Equal(t, []any{}, out["website"])
	assert.Equal(t, []any{}, out["skill"])
	assert.Equal(t, map[string]any{
		"easy":   map[string]any{"solved": float64(0), "total": float64(0)},
		"medium": map[string]any{"solved": float64(0), "total": float64(0)},
		"hard":   map[string]any{"solved": float64(0), "total": float64(0)},
	}, out["problem"])
}

func TestValidateUsername(t *testing.T) {
	for _, ok := range []string{"alice", "Bob_99", "a-b.c", "x"} {
		assert.NoError(t, ValidateUsername(ok), ok)
	}
	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}
	for _, bad := range []string{"", "a b", "a/b", "ümlaut", string(long)} {
		assert.ErrorIs(t, ValidateUsername(bad), model.ErrInvalidUsername, bad)
	}
}
