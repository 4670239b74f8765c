package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// carryFlash copies the flash cookie written by w onto a fresh request,
// mimicking the browser's redirect round-trip.
func carryFlash(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.Name == flashCookieName {
			req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}
	return req
}

func TestFlashRoundTrip(t *testing.T) {
	set := httptest.NewRecorder()
	flashSuccess(set, "Expense added successfully!")

	show := httptest.NewRecorder()
	f := popFlash(show, carryFlash(t, set))
	if f == nil {
		t.Fatal("popFlash returned nil after setFlash")
	}
	if f.Kind != "success" || f.Message != "Expense added successfully!" {
		t.Errorf("flash = %+v", f)
	}

	// popFlash must expire the cookie so the notice shows exactly once.
	var cleared bool
	for _, c := range show.Result().Cookies() {
		if c.Name == flashCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("popFlash did not clear the flash cookie")
	}
}

func TestPopFlashWithoutCookie(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if f := popFlash(w, r); f != nil {
		t.Errorf("popFlash = %+v, want nil", f)
	}
}

func TestPopFlashGarbledCookie(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: flashCookieName, Value: "@@not-base64@@"})
	if f := popFlash(w, r); f != nil {
		t.Errorf("popFlash = %+v, want nil", f)
	}
}

func TestFlashErrorKind(t *testing.T) {
	set := httptest.NewRecorder()
	flashError(set, "Username already exists")

	f := popFlash(httptest.NewRecorder(), carryFlash(t, set))
	if f == nil || f.Kind != "error" {
		t.Fatalf("flash = %+v, want error kind", f)
	}
}
