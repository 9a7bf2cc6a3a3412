package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"orderflow/internal/entities"
	"orderflow/internal/pkg/session"
	"orderflow/pkg/logger"
)

const (
	cookieName   = "access_token"
	bearerPrefix = "Bearer "
)

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ExtractToken берёт токен из заголовка Authorization, иначе из cookie.
func ExtractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}
	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Middleware puts the session actor into the request context or answers 401.
// Roles are canonicalized when known and passed through verbatim otherwise.
func Middleware(log handlerLogger, parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				unauthorized(w, log, "missing session token")
				return
			}

			claims, err := parser.Parse(token)
			if err != nil {
				log.With(
					logger.NewField("path", r.URL.Path),
					logger.NewField("error", err),
				).Warn("rejected session token")
				unauthorized(w, log, "invalid session token")
				return
			}

			role, ok := entities.ParseRole(claims.Role)
			if !ok {
				role = entities.Role(claims.Role)
			}
			actor := entities.Actor{Role: role, ID: claims.Subject}

			next.ServeHTTP(w, r.WithContext(session.WithActor(r.Context(), actor)))
		})
	}
}

func unauthorized(w http.ResponseWriter, log handlerLogger, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="orderflow"`)
	w.WriteHeader(http.StatusUnauthorized)

	if err := json.NewEncoder(w).Encode(errorBody{Kind: "Unauthenticated", Message: message}); err != nil {
		log.With(logger.NewField("error", err)).Error("encode JSON response")
	}
}
