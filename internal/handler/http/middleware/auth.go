package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kudu-hr/payroll-engine-go/internal/handler/http/response"
)

// AuthRequired rejects requests without a verified access token. Every
// token this service issues carries a company_id claim; a token without
// one cannot be scoped to a tenant and is refused.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing access token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Invalid access token")
				return
			}
			companyID, ok := claims["company_id"].(string)
			if !ok || companyID == "" {
				response.Unauthorized(w, "Invalid access token")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
