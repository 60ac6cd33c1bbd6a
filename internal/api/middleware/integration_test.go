//go:build integration

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/model"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/redis"
)

func TestSessionAuth_RevokedTokenRejected(t *testing.T) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	rdb := redis.NewFromUniversal(goredis.NewClient(&goredis.Options{Addr: addr}), zap.NewNop())
	t.Cleanup(func() { _ = rdb.Close() })

	mgr := newTestJWT()
	clubID := int64(1)
	token, claims, err := mgr.Issue(10, string(model.RoleClubLeader), &clubID, "nimun@nu.edu.eg")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/protected", SessionAuth(mgr, rdb, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	call := func() int {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call())

	require.NoError(t, rdb.RevokeSession(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)))

	assert.Equal(t, http.StatusUnauthorized, call(), "logged-out token must be refused")
}
