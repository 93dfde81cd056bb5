package common

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const SessionCookieName = "sid"

// SessionTracker is told about sessions the first time they are seen.
type SessionTracker interface {
	TrackSession(sessionId string, r *http.Request)
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, sessionId string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionId,
		Domain:   strings.TrimPrefix(r.Host, "."),
		SameSite: http.SameSiteNoneMode,
		Secure:   true,
		HttpOnly: true,
		MaxAge:   30 * 24 * 3600,
		Path:     "/",
	})
}

func ClearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:   SessionCookieName,
		Value:  "",
		Domain: strings.TrimPrefix(r.Host, "."),
		MaxAge: -1,
		Path:   "/",
	})
}

// HandleSessionCookie returns the session id of the request, starting a new session when
// the cookie is missing or malformed.
func HandleSessionCookie(trk SessionTracker, w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	sessionId := uuid.NewString()
	if trk != nil {
		go trk.TrackSession(sessionId, r)
	}
	setSessionCookie(w, r, sessionId)
	return sessionId
}
