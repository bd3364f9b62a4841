package myhttp

import (
	"fmt"
	"net/http"
)

func HostnameWithScheme(r *http.Request) string {
	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}

	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

// RedirectBack sends the browser to the page it came from, or to fallbackPath when unknown.
func RedirectBack(w http.ResponseWriter, r *http.Request, fallbackPath string) {
	target := r.Referer()
	if target == "" {
		target = HostnameWithScheme(r) + fallbackPath
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
