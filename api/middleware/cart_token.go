package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/campusmart/storefront/api/responses"
	pkgerrors "github.com/campusmart/storefront/pkg/errors"
	"github.com/campusmart/storefront/pkg/logger"
)

// CartTokenHeader carries the signed guest cart token in both directions.
const CartTokenHeader = "X-Cart-Token"

type cartTokenIssuer interface {
	Mint(now time.Time) (token string, cartID string, err error)
	Renew(token string, now time.Time) (renewed string, cartID string, ok bool)
}

// CartToken resolves the caller's cart id from X-Cart-Token. A valid token
// nearing expiry is renewed for the same cart; a missing, expired or forged
// token is replaced by a freshly minted one. The resulting token is echoed
// back so the client can store it.
func CartToken(issuer cartTokenIssuer, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if issuer == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart tokens unavailable"))
				return
			}

			now := time.Now().UTC()
			token := strings.TrimSpace(r.Header.Get(CartTokenHeader))
			renewed, cartID, ok := issuer.Renew(token, now)
			if ok {
				token = renewed
			} else {
				minted, id, err := issuer.Mint(now)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint cart token"))
					return
				}
				if token != "" && logg != nil {
					logg.Debug(r.Context(), "cart token rejected, minted a new cart")
				}
				token, cartID = minted, id
			}

			w.Header().Set(CartTokenHeader, token)
			ctx := WithCartID(r.Context(), cartID)
			if logg != nil {
				ctx = logg.WithField(ctx, "cart_id", cartID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
