package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-session-profile/config"
	"github.com/oksasatya/go-session-profile/internal/container"
	"github.com/oksasatya/go-session-profile/internal/infrastructure/memory"
	"github.com/oksasatya/go-session-profile/internal/interface/middleware"
	"github.com/oksasatya/go-session-profile/pkg/helpers"
)

type client struct {
	t      *testing.T
	engine *gin.Engine
	cookie *http.Cookie
}

func newApp(t *testing.T) (*client, *container.Container) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	c := &container.Container{
		Cfg: &config.Config{
			SessionSecret:       "test-secret",
			SessionTTL:          time.Hour,
			SessionCookieName:   "session_id",
			SaltRounds:          4,
			DebugMetricsEnabled: true,
		},
		Logger: helpers.NewDiscardLogger(),
		Users:  memory.NewUserRepository(),
		Redis:  rdb,
	}
	c.Wire()
	return &client{t: t, engine: NewEngine(c)}, c
}

func (cl *client) do(method, path, contentType, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	if cl.cookie != nil {
		req.AddCookie(cl.cookie)
	}
	w := httptest.NewRecorder()
	cl.engine.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name != "session_id" {
			continue
		}
		if ck.MaxAge < 0 || ck.Value == "" {
			cl.cookie = nil
		} else {
			cl.cookie = &http.Cookie{Name: ck.Name, Value: ck.Value}
		}
	}
	return w
}

func (cl *client) form(path string, vals url.Values) *httptest.ResponseRecorder {
	return cl.do(http.MethodPost, path, "application/x-www-form-urlencoded", vals.Encode(), nil)
}

func (cl *client) get(path string) *httptest.ResponseRecorder {
	return cl.do(http.MethodGet, path, "", "", nil)
}

func (cl *client) getJSON(path string) map[string]any {
	w := cl.do(http.MethodGet, path, "", "", http.Header{"Accept": {"application/json"}})
	require.Equal(cl.t, http.StatusOK, w.Code, w.Body.String())
	var out map[string]any
	require.NoError(cl.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func register(cl *client, u, p string) *httptest.ResponseRecorder {
	return cl.form("/register", url.Values{"username": {u}, "password": {p}, "confirmPassword": {p}})
}

func TestFullSessionLifecycle(t *testing.T) {
	cl, _ := newApp(t)

	w := register(cl, "alice", "Secret123")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Nil(t, cl.cookie, "register must not start a session")

	w = cl.form("/login", url.Values{"username": {"alice"}, "password": {"Secret123"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/profile", w.Header().Get("Location"))
	require.NotNil(t, cl.cookie)

	profile := cl.getJSON("/profile")
	assert.Equal(t, "alice", profile["username"])
	assert.Equal(t, "", profile["status"])
	assert.Equal(t, "/public/image/user.svg", profile["avatarUrl"])

	w = cl.form("/profile/status", url.Values{"status": {"hello"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"newStatus":"hello"}`, w.Body.String())
	assert.Equal(t, "hello", cl.getJSON("/profile")["status"])

	img := "data:image/png;base64,iVBORw0KGgo="
	w = cl.do(http.MethodPost, "/profile/avatar", "text/plain", img, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, img, cl.getJSON("/profile")["avatarUrl"])

	w = cl.get("/profile")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hello")

	w = cl.get("/logout")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?messageSuccess=Successfully+Logged+Out!", w.Header().Get("Location"))
	assert.Nil(t, cl.cookie)

	w = cl.get("/profile")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, middleware.LoginRedirectUnauthorized, w.Header().Get("Location"))
}

func TestLoginFailuresRenderLoginPage(t *testing.T) {
	cl, _ := newApp(t)
	require.Equal(t, http.StatusOK, register(cl, "alice", "Secret123").Code)

	w := cl.form("/login", url.Values{"username": {"alice"}, "password": {"nope"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect password")
	assert.Nil(t, cl.cookie)

	w = cl.form("/login", url.Values{"username": {"bob"}, "password": {"x"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No user with username")
	assert.Contains(t, w.Body.String(), "bob")

	w = cl.form("/login", url.Values{"username": {"alice"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = cl.form("/login", url.Values{"username": {strings.Repeat("a", 65)}, "password": {"x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "username must be at most 64 characters long")
	assert.NotContains(t, w.Body.String(), "Request body incomplete")
}

func TestLegacyFieldNamesAndAliases(t *testing.T) {
	cl, _ := newApp(t)

	w := cl.form("/register", url.Values{
		"register_username":         {"carol"},
		"register_password":         {"pw"},
		"register_confirm_password": {"pw"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = cl.form("/login", url.Values{"login_username": {"carol"}, "login_password": {"pw"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = cl.form("/profile/changeStatus", url.Values{"profile__chgStatus": {"legacy"}})
	assert.JSONEq(t, `{"success":true,"newStatus":"legacy"}`, w.Body.String())

	w = cl.do(http.MethodPost, "/profile/changeProfilePic", "text/plain", "not an image", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "New profile picture is not a valid image!")
}

func TestRegisterErrors(t *testing.T) {
	cl, _ := newApp(t)
	require.Equal(t, http.StatusOK, register(cl, "alice", "Secret123").Code)

	w := register(cl, "alice", "Other1")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Username alice is already taken!")

	w = cl.form("/register", url.Values{"username": {"dave"}, "password": {"a"}, "confirmPassword": {"b"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Password and Confirm Password Does not Match!")

	w = cl.form("/register", url.Values{"username": {"dave"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Request body incomplete.")
}

func TestStaleSessionIsHealed(t *testing.T) {
	cl, c := newApp(t)
	require.Equal(t, http.StatusOK, register(cl, "alice", "Secret123").Code)
	require.Equal(t, http.StatusSeeOther, cl.form("/login", url.Values{"username": {"alice"}, "password": {"Secret123"}}).Code)
	stale := cl.cookie

	require.NoError(t, c.Users.Delete(context.Background(), "alice"))

	w := cl.get("/profile")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, middleware.LoginRedirectStale, w.Header().Get("Location"))
	assert.Nil(t, cl.cookie)

	// the old cookie no longer names a live session
	cl.cookie = stale
	w = cl.form("/profile/status", url.Values{"status": {"x"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIGateAndLimits(t *testing.T) {
	cl, _ := newApp(t)

	w := cl.form("/profile/status", url.Values{"status": {"x"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized. Please log in to fix this problem")

	require.Equal(t, http.StatusOK, register(cl, "alice", "Secret123").Code)
	require.Equal(t, http.StatusSeeOther, cl.form("/login", url.Values{"username": {"alice"}, "password": {"Secret123"}}).Code)

	w = cl.form("/profile/status", url.Values{"status": {strings.Repeat("a", 501)}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = cl.form("/profile/status", url.Values{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	big := "data:image/png;base64," + strings.Repeat("A", 5242880)
	w = cl.do(http.MethodPost, "/profile/avatar", "text/plain", big, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Image too large!")

	w = cl.get("/api/users/search?q=ali")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"results":[]}`, w.Body.String())
}

func TestPagesAndRedirects(t *testing.T) {
	cl, _ := newApp(t)

	w := cl.get("/")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = cl.get("/login?messageDanger=oops")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "oops")

	w = cl.get("/register")
	assert.Equal(t, http.StatusOK, w.Code)

	w = cl.get("/public/image/user.svg")
	assert.Equal(t, http.StatusOK, w.Code)

	w = cl.get("/health")
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = cl.get("/debug/vars")
	assert.Contains(t, w.Body.String(), "auth_logins_total")

	require.Equal(t, http.StatusOK, register(cl, "alice", "Secret123").Code)
	require.Equal(t, http.StatusSeeOther, cl.form("/login", url.Values{"username": {"alice"}, "password": {"Secret123"}}).Code)
	for _, p := range []string{"/", "/login", "/register"} {
		w = cl.get(p)
		assert.Equal(t, http.StatusSeeOther, w.Code, p)
		assert.Equal(t, "/profile", w.Header().Get("Location"), p)
	}
}
