package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

// authenticated returns the caller's claims and a logger tagged with the user id.
// It writes 401 and reports false when the request carries no claims.
func authenticated(w http.ResponseWriter, r *http.Request) (*models.Claims, *slog.Logger, bool) {

	logger := middleware.LoggerFromContext(r.Context())

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		logger.Warn("Unauthorized request: missing user claims")
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return nil, logger, false
	}

	return claims, logger.With(slog.String("userID", claims.UserID.String())), true
}

func queryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return fallback
	}
	return v
}
