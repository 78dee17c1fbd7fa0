package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"pawn-backend/internal/logger"
	"pawn-backend/pkg/utils"

	"github.com/sirupsen/logrus"
)

func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Component("recovery").WithFields(logrus.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
					"stack":  string(debug.Stack()),
				}).Errorf("panic recovered: %v", rec)

				utils.Error(w, http.StatusInternalServerError, "Internal server error", fmt.Errorf("%v", rec), false)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
