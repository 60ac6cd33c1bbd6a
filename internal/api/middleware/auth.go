package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/model"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/policy"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/jwt"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/redis"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/response"
)

// context keys shared with the handlers
const (
	sessionKey = "session"
	userIDKey  = "user_id"
	roleKey    = "role"
)

// SessionAuth verifies Authorization: Bearer <token> and injects the
// policy.Session. Role and club come only from the signed claims.
// rdb may be nil, in which case revocation is not checked.
func SessionAuth(jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.Unauthorized(c, 10002, "malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.Parse(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "invalid or expired token")
			c.Abort()
			return
		}

		role := model.Role(claims.Role)
		if !role.IsPortalRole() {
			response.Unauthorized(c, 10002, "invalid or expired token")
			c.Abort()
			return
		}

		revoked, err := rdb.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			// fail open when the blacklist is unreachable
			logger.Warn("session revocation check failed", zap.Error(err))
		} else if revoked {
			response.Unauthorized(c, 10002, "session has been logged out")
			c.Abort()
			return
		}

		session := policy.Session{
			UserID:  claims.UserID,
			Role:    role,
			ClubID:  claims.ClubID,
			Email:   claims.Email,
			TokenID: claims.ID,
		}
		if claims.ExpiresAt != nil {
			session.ExpiresAt = claims.ExpiresAt.Time
		}

		c.Set(sessionKey, session)
		c.Set(userIDKey, session.UserID)
		c.Set(roleKey, string(session.Role))

		c.Next()
	}
}

// RoleAuth allows only the listed roles; must run after SessionAuth
func RoleAuth(allowedRoles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(sessionKey)
		if !exists {
			response.Unauthorized(c, 10002, "not authenticated")
			c.Abort()
			return
		}

		session, ok := v.(policy.Session)
		if !ok || session.UserID == 0 {
			response.Unauthorized(c, 10002, "not authenticated")
			c.Abort()
			return
		}
		for _, r := range allowedRoles {
			if session.Role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "forbidden")
		c.Abort()
	}
}

// AdminOnly SU_ADMIN or STUDENT_LIFE_ADMIN
func AdminOnly() gin.HandlerFunc {
	return RoleAuth(model.RoleSUAdmin, model.RoleStudentLifeAdmin)
}
