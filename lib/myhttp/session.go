package myhttp

import (
	"net/http"
	"time"

	"github.com/MarcGrol/storefront/lib/myuuid"
)

const (
	shopperCookieName = "shopper"
	shopperCookieAge  = 90 * 24 * time.Hour
)

// ShopperUID returns the shopper identity carried by the request, if any.
func ShopperUID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(shopperCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// EnsureShopperUID returns the shopper identity of the request and hands out a fresh one
// (as cookie) to first-time visitors.
func EnsureShopperUID(w http.ResponseWriter, r *http.Request, uuider myuuid.UUIDer) string {
	uid, found := ShopperUID(r)
	if found {
		return uid
	}

	uid = uuider.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     shopperCookieName,
		Value:    uid,
		Path:     "/",
		MaxAge:   int(shopperCookieAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	// make the new identity visible to the remainder of this request
	r.AddCookie(&http.Cookie{Name: shopperCookieName, Value: uid})

	return uid
}
