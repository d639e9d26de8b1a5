// Package health serves the liveness/readiness probe.
package health

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aanand-mishra/skillbridge/internal/logger"
	"github.com/aanand-mishra/skillbridge/internal/utils/response"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by every storage backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

var errStorageUnavailable = errors.New("storage unavailable")

// Check handles GET /healthz: 200 {"status":"ok"} when db answers a
// ping, 503 otherwise.
func Check(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.FromRequest(r).Err(err).Msg("health check failed")
			response.WriteJSON(w, http.StatusServiceUnavailable, response.GeneralError(errStorageUnavailable))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.Response{Status: response.StatusOK})
	}
}
