package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hemanthscode/fintrack/internal/ai"
	"github.com/hemanthscode/fintrack/internal/jobs"
	"github.com/hemanthscode/fintrack/internal/models"
)

// Controller carries the dependencies the request handlers need beyond the
// database connection.
type Controller struct {
	AI   *ai.Client
	Jobs *jobs.Jobs
}

const contextUser = "fintrack-user"

// RequireUser verifies the bearer token of the request and stores the
// authenticated user in the gin context. Requests without a valid token are
// aborted with 401.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" || token == c.GetHeader("Authorization") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: errNoToken.Error()})
			return
		}

		var user models.User
		err := models.DB.First(&user, "token = ?", token).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: errTokenInvalid.Error()})
			return
		}

		c.Set(contextUser, user)
	}
}

// currentUser returns the user authenticated by RequireUser.
func currentUser(c *gin.Context) models.User {
	return c.MustGet(contextUser).(models.User)
}
