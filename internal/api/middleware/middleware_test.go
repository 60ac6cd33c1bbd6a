package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/FarahAbdullah11/NU-CLUBS/config"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/model"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/policy"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/jwt"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:  "test-secret-key-for-unit-testing",
		SessionTTL: time.Hour,
	})
}

// protectedEngine echoes the injected session
func protectedEngine(mgr *jwt.Manager, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{SessionAuth(mgr, nil, zap.NewNop())}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		s := c.MustGet(sessionKey).(policy.Session)
		c.JSON(http.StatusOK, gin.H{"user_id": s.UserID, "role": s.Role, "club_id": s.ClubID})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestSessionAuth(t *testing.T) {
	mgr := newTestJWT()
	clubID := int64(1)
	valid, _, err := mgr.Issue(10, string(model.RoleClubLeader), &clubID, "nimun@nu.edu.eg")
	require.NoError(t, err)
	foreignRole, _, err := mgr.Issue(11, "MEMBER", nil, "member@nu.edu.eg")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"non portal role", "Bearer " + foreignRole, http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}

	r := protectedEngine(mgr)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestSessionAuth_IgnoresClientSuppliedIdentity(t *testing.T) {
	mgr := newTestJWT()
	clubID := int64(1)
	token, _, err := mgr.Issue(10, string(model.RoleClubLeader), &clubID, "nimun@nu.edu.eg")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected?user_id=1&role=SU_ADMIN", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-User-Role", "SU_ADMIN")
	w := httptest.NewRecorder()
	protectedEngine(mgr).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"CLUB_LEADER"`)
	assert.Contains(t, w.Body.String(), `"user_id":10`)
}

func TestAdminOnly(t *testing.T) {
	mgr := newTestJWT()
	clubID := int64(1)
	leader, _, _ := mgr.Issue(10, string(model.RoleClubLeader), &clubID, "l@nu.edu.eg")
	admin, _, _ := mgr.Issue(5, string(model.RoleStudentLifeAdmin), nil, "a@nu.edu.eg")

	r := protectedEngine(mgr, AdminOnly())

	for token, want := range map[string]int{leader: http.StatusForbidden, admin: http.StatusOK} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code)
	}
}

func TestRoleAuth_MissingOrMalformedSession(t *testing.T) {
	tests := []struct {
		name  string
		setup gin.HandlerFunc
	}{
		{"no session", func(c *gin.Context) { c.Next() }},
		{"wrong type", func(c *gin.Context) { c.Set(sessionKey, "SU_ADMIN"); c.Next() }},
		{"zero session", func(c *gin.Context) { c.Set(sessionKey, policy.Session{Role: model.RoleSUAdmin}); c.Next() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/admin", tt.setup, AdminOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestLogger_RecordsSessionIdentity(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	mgr := newTestJWT()
	clubID := int64(1)
	token, _, err := mgr.Issue(10, string(model.RoleClubLeader), &clubID, "nimun@nu.edu.eg")
	require.NoError(t, err)

	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/protected", SessionAuth(mgr, nil, zap.NewNop()), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "CLUB_LEADER", fields["role"])
	assert.EqualValues(t, 10, fields["user_id"])
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(16))
	r.POST("/echo", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 64))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("{}")))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc-123", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit_NilRedisAllows(t *testing.T) {
	r := gin.New()
	r.POST("/login", RateLimit(nil, 1, time.Minute, zap.NewNop()), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestMetrics(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/clubs/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/clubs/1", nil))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/api/clubs/:id", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("unmatched", "GET", "404")))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "50000")
}
