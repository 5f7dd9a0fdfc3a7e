package Middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zygisk-enc/caresync/Models"
	"github.com/zygisk-enc/caresync/Utils/Token"
)

const actorKey = "actor"

// JwtAuthMiddleware validates the token and stores the verified actor in
// the request context. Everything downstream reads identity from there.
func JwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := Token.ExtractActor(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireRole gates a route group to a single role.
func RequireRole(role Models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := CurrentActor(c)
		if actor.Role != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentActor returns the actor stored by JwtAuthMiddleware. The zero
// actor is returned on unauthenticated routes.
func CurrentActor(c *gin.Context) Models.Actor {
	value, exists := c.Get(actorKey)
	if !exists {
		return Models.Actor{}
	}
	actor, ok := value.(Models.Actor)
	if !ok {
		return Models.Actor{}
	}
	return actor
}
