package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chirp/internal/adapters/database"
	"chirp/internal/adapters/httpapi"
	commentapp "chirp/internal/core/comment/service"
	followerapp "chirp/internal/core/follower/service"
	likeapp "chirp/internal/core/like/service"
	retweetapp "chirp/internal/core/retweet/service"
	timelineapp "chirp/internal/core/timeline/service"
	tweetapp "chirp/internal/core/tweet/service"
	userapp "chirp/internal/core/user/service"
	"chirp/internal/metrics"
	"chirp/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	logger := zap.NewNop()
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	userRepo := database.NewUserRepositoryDatabase(db)
	tweetRepo := database.NewTweetRepositoryDatabase(db)
	fanoutRepo := database.NewFanoutRepositoryDatabase(db)
	followerRepo := database.NewFollowerRepositoryDatabase(db)
	timelineRepo := database.NewTimelineRepositoryDatabase(db)

	uc := httpapi.UseCases{
		User: userapp.NewUserService(userRepo, userapp.TokenConfig{
			Key: []byte("test-secret"), Issuer: "chirp-test", TTL: time.Hour,
		}, collector, logger),
		Tweet:    tweetapp.NewTweetService(tweetRepo, fanoutRepo, nil, collector, logger),
		Comment:  commentapp.NewCommentService(database.NewCommentRepositoryDatabase(db), tweetRepo, collector, logger),
		Like:     likeapp.NewLikeService(database.NewLikeRepositoryDatabase(db), tweetRepo, collector, logger),
		Retweet:  retweetapp.NewRetweetService(database.NewRetweetRepositoryDatabase(db), tweetRepo, collector, logger),
		Follower: followerapp.NewFollowerService(followerRepo, userRepo, collector, logger),
		Timeline: timelineapp.NewTimelineService(timelineRepo, nil, tweetRepo, logger),
	}
	return httpapi.SetupRoutes(uc, httpapi.Options{
		Logger:         logger,
		Metrics:        collector,
		MetricsHandler: metrics.Handler(reg),
	})
}

func call(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type account struct {
	id    string
	token string
}

func register(t *testing.T, h http.Handler, username string) account {
	t.Helper()

	w := call(t, h, http.MethodPost, "/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	u := body["user"].(map[string]any)
	auth := body["auth"].(map[string]any)
	return account{id: u["id"].(string), token: auth["token"].(string)}
}

func createTweet(t *testing.T, h http.Handler, a account, text string) string {
	t.Helper()
	w := call(t, h, http.MethodPost, "/tweets", a.token, map[string]string{"content": text})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["id"].(string)
}

func TestRegisterAndLogin(t *testing.T) {
	h := newServer(t)
	register(t, h, "alice")

	w := call(t, h, http.MethodPost, "/register", "", map[string]string{
		"username": "alice", "email": "other@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(t, h, http.MethodPost, "/login", "", map[string]string{"username": "alice", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["token"])

	w = call(t, h, http.MethodPost, "/login", "", map[string]string{"username": "alice", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(t, h, http.MethodPost, "/login", "", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTweetLifecycle(t *testing.T) {
	h := newServer(t)
	alice := register(t, h, "alice")
	bob := register(t, h, "bob")

	w := call(t, h, http.MethodPost, "/tweets", "", map[string]string{"content": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(t, h, http.MethodPost, "/tweets", alice.token, map[string]string{"content": strings.Repeat("a", 281)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = call(t, h, http.MethodPost, "/tweets", alice.token, map[string]string{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	id := createTweet(t, h, alice, strings.Repeat("a", 280))

	w = call(t, h, http.MethodGet, "/tweets/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, alice.id, decode(t, w)["userId"])

	w = call(t, h, http.MethodPut, "/tweets/"+id, bob.token, map[string]string{"content": "hijack"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = call(t, h, http.MethodDelete, "/tweets/"+id, bob.token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(t, h, http.MethodPut, "/tweets/"+id, alice.token, map[string]string{"content": "edited"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "edited", decode(t, w)["content"])

	w = call(t, h, http.MethodGet, "/users/"+alice.id+"/tweets", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["tweets"], 1)

	w = call(t, h, http.MethodDelete, "/tweets/"+id, alice.token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = call(t, h, http.MethodGet, "/tweets/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReactions(t *testing.T) {
	h := newServer(t)
	alice := register(t, h, "alice")
	bob := register(t, h, "bob")
	id := createTweet(t, h, alice, "react to me")

	w := call(t, h, http.MethodPost, "/likes/tweet/"+id, bob.token, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	w = call(t, h, http.MethodPost, "/likes/tweet/"+id, bob.token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(t, h, http.MethodPost, "/retweets/"+id, bob.token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	retweetID := decode(t, w)["id"].(string)

	w = call(t, h, http.MethodGet, "/tweets/"+id+"/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"likes":1,"retweets":1,"comments":0}`, w.Body.String())

	w = call(t, h, http.MethodDelete, "/retweets/"+retweetID, alice.token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = call(t, h, http.MethodDelete, "/retweets/"+retweetID, bob.token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = call(t, h, http.MethodDelete, "/likes/tweet/"+id, bob.token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = call(t, h, http.MethodDelete, "/likes/tweet/"+id, bob.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReactionChecks(t *testing.T) {
	h := newServer(t)
	alice := register(t, h, "alice")
	bob := register(t, h, "bob")
	id := createTweet(t, h, alice, "check me")

	w := call(t, h, http.MethodGet, "/likes/tweet/"+id+"/check", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(t, h, http.MethodGet, "/likes/tweet/"+id+"/check", bob.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"liked":false}`, w.Body.String())
	require.Equal(t, http.StatusCreated, call(t, h, http.MethodPost, "/likes/tweet/"+id, bob.token, nil).Code)
	w = call(t, h, http.MethodGet, "/likes/tweet/"+id+"/check", bob.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"liked":true}`, w.Body.String())

	w = call(t, h, http.MethodGet, "/retweets/tweet/"+id+"/check", bob.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"retweeted":false}`, w.Body.String())
	require.Equal(t, http.StatusCreated, call(t, h, http.MethodPost, "/retweets/"+id, bob.token, nil).Code)
	w = call(t, h, http.MethodGet, "/retweets/tweet/"+id+"/check", bob.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"retweeted":true}`, w.Body.String())

	// once the tweet is deleted its reactions are not visible
	require.Equal(t, http.StatusNoContent, call(t, h, http.MethodDelete, "/tweets/"+id, alice.token, nil).Code)
	w = call(t, h, http.MethodGet, "/likes/tweet/"+id+"/check", bob.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = call(t, h, http.MethodGet, "/retweets/tweet/"+id+"/check", bob.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = call(t, h, http.MethodDelete, "/likes/tweet/"+id, bob.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestComments(t *testing.T) {
	h := newServer(t)
	alice := register(t, h, "alice")
	bob := register(t, h, "bob")
	carol := register(t, h, "carol")
	id := createTweet(t, h, alice, "comment on me")

	w := call(t, h, http.MethodPost, "/comments", bob.token, map[string]string{"tweetId": id, "content": "nice"})
	require.Equal(t, http.StatusCreated, w.Code)
	commentID := decode(t, w)["id"].(string)

	w = call(t, h, http.MethodPut, "/comments/"+commentID, alice.token, map[string]string{"content": "edited by owner"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = call(t, h, http.MethodDelete, "/comments/"+commentID, carol.token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(t, h, http.MethodGet, "/tweets/"+id+"/comments", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["comments"], 1)

	w = call(t, h, http.MethodDelete, "/comments/"+commentID, alice.token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = call(t, h, http.MethodGet, "/comments/"+commentID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollow(t *testing.T) {
	h := newServer(t)
	alice := register(t, h, "alice")
	bob := register(t, h, "bob")

	w := call(t, h, http.MethodPost, "/users/"+alice.id+"/follow", alice.token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(t, h, http.MethodPost, "/users/"+alice.id+"/follow", bob.token, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	w = call(t, h, http.MethodPost, "/users/"+alice.id+"/follow", bob.token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(t, h, http.MethodGet, "/users/"+alice.id+"/follow-counts", bob.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["followers"])

	w = call(t, h, http.MethodGet, "/users/"+alice.id+"/followers", bob.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["followers"], 1)

	w = call(t, h, http.MethodGet, "/users/"+alice.id+"/follow", bob.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"following":true}`, w.Body.String())
	w = call(t, h, http.MethodGet, "/users/"+bob.id+"/follow", alice.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"following":false}`, w.Body.String())

	w = call(t, h, http.MethodDelete, "/users/"+alice.id+"/follow", bob.token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = call(t, h, http.MethodDelete, "/users/"+alice.id+"/follow", bob.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(t, h, http.MethodGet, "/users/"+alice.id+"/follow", bob.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"following":false}`, w.Body.String())
}

func TestUsers(t *testing.T) {
	h := newServer(t)
	alice := register(t, h, "alice")
	bob := register(t, h, "bob")

	w := call(t, h, http.MethodGet, "/users/search?q=ali", bob.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["users"], 1)

	w = call(t, h, http.MethodPut, "/users/"+alice.id, bob.token, map[string]string{"username": "mallory"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(t, h, http.MethodDelete, "/users/"+bob.id, bob.token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = call(t, h, http.MethodGet, "/users/"+bob.id, alice.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	// a deleted user's token no longer resolves
	w = call(t, h, http.MethodGet, "/users/"+alice.id, bob.token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(t, h, http.MethodPut, "/users/"+alice.id, alice.token, map[string]string{"username": "alice2"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice2", decode(t, w)["username"])
}

func TestTimelineAndOps(t *testing.T) {
	h := newServer(t)
	alice := register(t, h, "alice")

	w := call(t, h, http.MethodGet, "/timeline?limit=0", alice.token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = call(t, h, http.MethodGet, "/timeline?start=x", alice.token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = call(t, h, http.MethodGet, "/timeline", alice.token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = call(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = call(t, h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "chirp_domain_events_total")
}

func TestHandlerWithoutPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/likes/tweet/x", nil)
	c.Params = gin.Params{{Key: "id", Value: "x"}}

	// mounted without the auth middleware, the handler must refuse before touching the use case
	httpapi.NewLikeController(nil).Like(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthenticated"}`, w.Body.String())
}
