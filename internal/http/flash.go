package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookieName = "spendbook_flash"

// Flash is a one-shot notice shown on the next rendered page only.
type Flash struct {
	Kind    string `json:"kind"` // "success" or "error"
	Message string `json:"message"`
}

func flashSuccess(w http.ResponseWriter, message string) {
	setFlash(w, Flash{Kind: "success", Message: message})
}

func flashError(w http.ResponseWriter, message string) {
	setFlash(w, Flash{Kind: "error", Message: message})
}

func setFlash(w http.ResponseWriter, f Flash) {
	raw, err := json.Marshal(f)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

// popFlash consumes the pending flash, clearing the cookie so the notice
// renders exactly once. Returns nil when there is nothing to show.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	return &f
}
