package auth

import (
	"net/http"
	"strings"

	"moneymarket/handler/request"

	"github.com/fox-one/pkg/logger"
)

// HandleAuthentication take the bearer token as the sender address. Signing
// is left to the gateway in front of the engine.
func HandleAuthentication() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sender := getBearerToken(r)
			if sender == "" {
				next.ServeHTTP(w, r)
				return
			}

			log := logger.FromContext(ctx).WithField("sender", sender)
			ctx = logger.WithContext(request.WithSender(ctx, sender), log)
			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}

func getBearerToken(r *http.Request) string {
	s := r.Header.Get("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(s, "Bearer "))
}
