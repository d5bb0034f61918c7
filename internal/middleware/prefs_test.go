package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPrefsLanguage(t *testing.T) {
	var got string
	h := Prefs(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { got = LangFrom(r) }))

	cases := []struct {
		name   string
		url    string
		cookie string
		accept string
		want   string
	}{
		{"default", "/", "", "", "ru"},
		{"header", "/", "", "en-US,en;q=0.9", "en"},
		{"cookie beats header", "/", "ru", "en", "ru"},
		{"query beats cookie", "/?lang=en", "ru", "", "en"},
		{"unsupported query ignored", "/?lang=de", "", "", "ru"},
		{"bad cookie falls back to header", "/", "xx", "en", "en"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, c.url, nil)
			if c.cookie != "" {
				req.AddCookie(&http.Cookie{Name: langCookie, Value: c.cookie})
			}
			if c.accept != "" {
				req.Header.Set("Accept-Language", c.accept)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			if got != c.want {
				t.Fatalf("expected %s got %s", c.want, got)
			}
		})
	}
}

func TestPrefsPersistsQueryLanguage(t *testing.T) {
	h := Prefs(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?lang=en", nil))
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != langCookie || cookies[0].Value != "en" {
		t.Fatalf("expected lang cookie, got %v", cookies)
	}
}
