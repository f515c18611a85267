package upstream

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aliceResponse = `{
  "data": {
    "matchedUser": {
      "username": "alice",
      "profile": {
        "realName": "Alice A",
        "aboutMe": "hi",
        "school": null,
        "websites": ["https://alice.dev"],
        "countryName": "Norway",
        "company": null,
        "jobTitle": null,
        "skillTags": ["go", "graphs"],
        "ranking": 1234
      },
      "githubUrl": "https://github.com/alice",
      "twitterUrl": null,
      "linkedinUrl": null,
      "submitStats": {
        "acSubmissionNum": [
          {"difficulty": "All", "count": 60},
          {"difficulty": "Easy", "count": 30},
          {"difficulty": "Medium", "count": 20},
          {"difficulty": "Hard", "count": 10}
        ]
      },
      "userCalendar": {
        "submissionCalendar": "{\"1555286400\": 3, \"1555372800\": 5}"
      }
    },
    "allQuestionsCount": [
      {"difficulty": "All", "count": 3000},
      {"difficulty": "Easy", "count": 800},
      {"difficulty": "Medium", "count": 1600},
      {"difficulty": "Hard", "count": 600}
    ]
  }
}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "", 2*time.Second)
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

func TestFetchUser_Success(t *testing.T) {
	var gotReq graphQLRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		respond(http.StatusOK, aliceResponse)(w, r)
	})

	u, err := c.FetchUser(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, "alice", gotReq.Variables["username"])
	assert.Contains(t, gotReq.Query, "submissionCalendar")

	assert.Equal(t, "alice", u.Username)
	require.NotNil(t, u.GitHubURL)
	assert.Equal(t, "https://github.com/alice", *u.GitHubURL)
	assert.Nil(t, u.TwitterURL)
	require.NotNil(t, u.Profile.Ranking)
	assert.Equal(t, 1234, *u.Profile.Ranking)
	assert.Nil(t, u.Profile.School)
	assert.Equal(t, []string{"go", "graphs"}, u.Profile.SkillTags)
	assert.Len(t, u.Solved, 4)
	assert.Len(t, u.Questions, 4)
	assert.Equal(t, 3, u.Calendar["1555286400"])
	assert.Equal(t, 5, u.Calendar["1555372800"])
}

func TestFetchUser_Failures(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantKind Kind
	}{
		{
			name:     "HTTP 404",
			handler:  respond(http.StatusNotFound, `{}`),
			wantKind: KindNotFound,
		},
		{
			name:     "HTTP 500",
			handler:  respond(http.StatusInternalServerError, `oops`),
			wantKind: KindStatus,
		},
		{
			name:     "HTTP 403 blocked",
			handler:  respond(http.StatusForbidden, `<html>blocked</html>`),
			wantKind: KindStatus,
		},
		{
			name:     "Malformed body",
			handler:  respond(http.StatusOK, `{"data":`),
			wantKind: KindParse,
		},
		{
			name:     "Null matched user",
			handler:  respond(http.StatusOK, `{"data":{"matchedUser":null,"allQuestionsCount":[]},"errors":[{"message":"That user does not exist."}]}`),
			wantKind: KindNotFound,
		},
		{
			name:     "Missing data",
			handler:  respond(http.StatusOK, `{}`),
			wantKind: KindNotFound,
		},
		{
			name:     "Empty username",
			handler:  respond(http.StatusOK, `{"data":{"matchedUser":{"username":""}}}`),
			wantKind: KindNotFound,
		},
		{
			name:     "Malformed calendar",
			handler:  respond(http.StatusOK, `{"data":{"matchedUser":{"username":"x","userCalendar":{"submissionCalendar":"not json"}}}}`),
			wantKind: KindParse,
		},
		{
			name:     "Wrong field type",
			handler:  respond(http.StatusOK, `{"data":{"matchedUser":{"username":42}}}`),
			wantKind: KindParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)

			u, err := c.FetchUser(context.Background(), "x")
			assert.Nil(t, u)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, KindOf(err))
		})
	}
}

func TestFetchUser_NotFoundKeepsUpstreamMessage(t *testing.T) {
	c := newTestClient(t, respond(http.StatusOK, `{"data":{"matchedUser":null},"errors":[{"message":"That user does not exist."}]}`))

	_, err := c.FetchUser(context.Background(), "ghost")
	assert.Contains(t, err.Error(), "That user does not exist.")
}

func TestFetchUser_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, "", 50*time.Millisecond)

	_, err := c.FetchUser(context.Background(), "slow")
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestFetchUser_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, "", time.Second)

	_, err := c.FetchUser(context.Background(), "alice")
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestFetchUser_NullCalendarIsEmpty(t *testing.T) {
	c := newTestClient(t, respond(http.StatusOK, `{"data":{"matchedUser":{"username":"new","userCalendar":{"submissionCalendar":null}}}}`))

	u, err := c.FetchUser(context.Background(), "new")
	require.NoError(t, err)
	assert.Empty(t, u.Calendar)
	assert.NotNil(t, u.Calendar)
}
