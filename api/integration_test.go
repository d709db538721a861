package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/yuzuhara/betbook/config"
	"github.com/yuzuhara/betbook/database"
)

type APITestSuite struct {
	suite.Suite
	server *Server
	db     *database.Client
}

// SetupTest builds a full server on a fresh in-memory database.
func (suite *APITestSuite) SetupTest() {
	db, err := database.New(":memory:")
	suite.Require().NoError(err)
	suite.db = db

	cfg := &config.Config{
		Listen:        "127.0.0.1:0",
		LogLevel:      "error",
		SessionKey:    "test-session-key",
		SessionMaxAge: 3600,
		Database:      &config.DatabaseConfig{Path: ":memory:"},
	}
	server, err := New(cfg, db, false)
	suite.Require().NoError(err)
	suite.server = server
}

func (suite *APITestSuite) TearDownTest() {
	if suite.db != nil {
		_ = suite.db.Close()
	}
}

func (suite *APITestSuite) request(method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	suite.server.Engine().ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) register(username, password string) *httptest.ResponseRecorder {
	return suite.request(http.MethodPost, "/register", url.Values{
		"username": {username},
		"password": {password},
	}, nil)
}

// login authenticates and returns the session cookies for follow-up
// requests.
func (suite *APITestSuite) login(username, password string) []*http.Cookie {
	w := suite.request(http.MethodPost, "/login", url.Values{
		"username": {username},
		"password": {password},
	}, nil)
	suite.Require().Equal(http.StatusFound, w.Code)
	suite.Require().Equal("/", w.Header().Get("Location"))
	return w.Result().Cookies()
}

func (suite *APITestSuite) TestAuthGateRedirectsToLogin() {
	for _, path := range []string{"/", "/bait", "/koinushi", "/employer/history", "/employee/invitations"} {
		w := suite.request(http.MethodGet, path, nil, nil)
		suite.Equal(http.StatusFound, w.Code, path)
		suite.Equal("/login", w.Header().Get("Location"), path)
	}
}

func (suite *APITestSuite) TestRegisterValidation() {
	w := suite.register("alice smith", "secret")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "半角アルファベットと数字のみ")

	w = suite.register("alice!", "secret")
	suite.Contains(w.Body.String(), "半角アルファベットと数字のみ")

	w = suite.register("alice", "secret")
	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/login", w.Header().Get("Location"))

	w = suite.register("alice", "othersecret")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "既に登録されています")

	// A valid, unique attempt still succeeds and is retrievable via login.
	w = suite.register("bob", "secret")
	suite.Equal(http.StatusFound, w.Code)
	suite.login("alice", "secret")
}

func (suite *APITestSuite) TestLoginFailure() {
	suite.register("alice", "secret")

	w := suite.request(http.MethodPost, "/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	}, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "ユーザー名またはパスワードが間違っています")

	w = suite.request(http.MethodPost, "/login", url.Values{
		"username": {"nobody"},
		"password": {"secret"},
	}, nil)
	suite.Contains(w.Body.String(), "ユーザー名またはパスワードが間違っています")
}

func (suite *APITestSuite) TestLogout() {
	suite.register("alice", "secret")
	cookies := suite.login("alice", "secret")

	w := suite.request(http.MethodGet, "/logout", nil, cookies)
	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/login", w.Header().Get("Location"))
}

func (suite *APITestSuite) TestRecordBet() {
	suite.register("alice", "secret")
	cookies := suite.login("alice", "secret")

	w := suite.request(http.MethodPost, "/bait", url.Values{
		"result": {"win"},
		"rule":   {"poker"},
		"oku":    {"0"},
		"man":    {"15"},
	}, cookies)
	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/bait", w.Header().Get("Location"))

	w = suite.request(http.MethodGet, "/bait", nil, cookies)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "0億0015万")
	suite.Contains(w.Body.String(), "poker")
	suite.Contains(w.Body.String(), "150000")

	// The home page shows the raw balance.
	w = suite.request(http.MethodGet, "/", nil, cookies)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "150000")
}

func (suite *APITestSuite) TestRecordBetInvalidAmount() {
	suite.register("alice", "secret")
	cookies := suite.login("alice", "secret")

	w := suite.request(http.MethodPost, "/bait", url.Values{
		"result": {"win"},
		"rule":   {"poker"},
		"oku":    {"abc"},
		"man":    {"0"},
	}, cookies)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestSendInviteGuards() {
	suite.register("boss", "secret")
	suite.register("worker", "secret")
	bossCookies := suite.login("boss", "secret")

	// Self-invite is always rejected.
	w := suite.request(http.MethodGet, "/employer/send_invite/1", nil, bossCookies)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "自分自身を招待することはできません")

	// Unknown target.
	w = suite.request(http.MethodGet, "/employer/send_invite/999", nil, bossCookies)
	suite.Contains(w.Body.String(), "招待先のユーザーが見つかりません")

	w = suite.request(http.MethodGet, "/employer/send_invite/2", nil, bossCookies)
	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/employer/invite", w.Header().Get("Location"))

	// A second invite for the same pair is rejected while pending...
	w = suite.request(http.MethodGet, "/employer/send_invite/2", nil, bossCookies)
	suite.Contains(w.Body.String(), "既に招待を送っています")

	// ...and still after the pair's invitation was rejected.
	workerCookies := suite.login("worker", "secret")
	w = suite.request(http.MethodGet, "/employee/reject_invite/1", nil, workerCookies)
	suite.Equal(http.StatusFound, w.Code)

	w = suite.request(http.MethodGet, "/employer/send_invite/2", nil, bossCookies)
	suite.Contains(w.Body.String(), "既に招待を送っています")
}

func (suite *APITestSuite) TestAcceptInviteForeignOrNonPendingIsNoop() {
	suite.register("boss", "secret")
	suite.register("worker", "secret")
	suite.register("bystander", "secret")
	bossCookies := suite.login("boss", "secret")

	w := suite.request(http.MethodGet, "/employer/send_invite/2", nil, bossCookies)
	suite.Equal(http.StatusFound, w.Code)

	// A foreign user acting on the invitation is silently redirected.
	bystanderCookies := suite.login("bystander", "secret")
	w = suite.request(http.MethodGet, "/employee/accept_invite/1", nil, bystanderCookies)
	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/employee/invitations", w.Header().Get("Location"))

	inv, err := suite.db.GetInvitationByID(context.Background(), 1)
	suite.Require().NoError(err)
	suite.Equal(database.InvitationStatusPending, inv.Status)

	// Rejecting twice: the second attempt is a no-op.
	workerCookies := suite.login("worker", "secret")
	suite.request(http.MethodGet, "/employee/reject_invite/1", nil, workerCookies)
	suite.request(http.MethodGet, "/employee/accept_invite/1", nil, workerCookies)

	inv, err = suite.db.GetInvitationByID(context.Background(), 1)
	suite.Require().NoError(err)
	suite.Equal(database.InvitationStatusRejected, inv.Status)

	worker, err := suite.db.GetUserByID(context.Background(), 2)
	suite.Require().NoError(err)
	suite.Nil(worker.EmployerID)
}

// TestEmployerScenario walks the full employer/employee flow: invite,
// accept, record a win, and read it back from the aggregated history.
func (suite *APITestSuite) TestEmployerScenario() {
	suite.register("bossA", "secret")
	suite.register("workerB", "secret")

	bossCookies := suite.login("bossA", "secret")

	// Directory lists the candidate before the invite.
	w := suite.request(http.MethodGet, "/employer/invite", nil, bossCookies)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "workerB")

	// Without employees, history is a plain-text message.
	w = suite.request(http.MethodGet, "/employer/history", nil, bossCookies)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "まだバイトが登録されていません")

	w = suite.request(http.MethodGet, "/employer/send_invite/2", nil, bossCookies)
	suite.Equal(http.StatusFound, w.Code)

	workerCookies := suite.login("workerB", "secret")
	w = suite.request(http.MethodGet, "/employee/invitations", nil, workerCookies)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "bossA")

	w = suite.request(http.MethodGet, "/employee/accept_invite/1", nil, workerCookies)
	suite.Equal(http.StatusFound, w.Code)

	worker, err := suite.db.GetUserByID(context.Background(), 2)
	suite.Require().NoError(err)
	suite.Require().NotNil(worker.EmployerID)
	suite.Equal(uint(1), *worker.EmployerID)

	inv, err := suite.db.GetInvitationByID(context.Background(), 1)
	suite.Require().NoError(err)
	suite.Equal(database.InvitationStatusAccepted, inv.Status)

	// The accepted invitation is gone from the pending list.
	w = suite.request(http.MethodGet, "/employee/invitations", nil, workerCookies)
	suite.NotContains(w.Body.String(), "accept_invite")

	// The bait page now shows the employer.
	w = suite.request(http.MethodGet, "/bait", nil, workerCookies)
	suite.Contains(w.Body.String(), "bossA")

	// The worker records a win of 150000.
	w = suite.request(http.MethodPost, "/bait", url.Values{
		"result": {"win"},
		"rule":   {"poker"},
		"man":    {"15"},
	}, workerCookies)
	suite.Equal(http.StatusFound, w.Code)

	w = suite.request(http.MethodGet, "/employer/history", nil, bossCookies)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "workerB")
	suite.Contains(w.Body.String(), "0億0015万")
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
