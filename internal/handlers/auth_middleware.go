package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/survey-service/internal/config"
	"github.com/SAP-F-2025/survey-service/internal/utils"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"
)

const (
	contextUserID   = "user_id"
	contextUserName = "user_name"
	bearerPrefix    = "Bearer "
)

// TokenVerifier validates a JWT issued by the identity provider.
// *casdoorsdk.Client satisfies it.
type TokenVerifier interface {
	ParseJwtToken(token string) (*casdoorsdk.Claims, error)
}

// NewCasdoorVerifier builds a verifier from the Casdoor settings
func NewCasdoorVerifier(cfg config.AuthConfig) TokenVerifier {
	return casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Certificate,
		cfg.OrganizationName,
		cfg.ApplicationName,
	)
}

// AuthMiddleware rejects requests without a valid bearer token. With
// requireAdmin only Casdoor administrators get through.
func AuthMiddleware(verifier TokenVerifier, requireAdmin bool, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Missing bearer token",
				Code:    CodeUnauthorized,
			})
			return
		}

		claims, err := verifier.ParseJwtToken(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
		if err != nil {
			utils.GetLoggerFromContext(c, logger).Warn("Rejected token", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired token",
				Code:    CodeUnauthorized,
			})
			return
		}

		if requireAdmin && !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Administrator access required",
				Code:    CodeForbidden,
			})
			return
		}

		userID := claims.Id
		if userID == "" {
			userID = claims.Owner + "/" + claims.Name
		}
		c.Set(contextUserID, userID)
		c.Set(contextUserName, claims.Name)
		c.Next()
	}
}
