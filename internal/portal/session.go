package portal

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
)

const planningPagePath = "/planning/mon-planning"

// browserHeaders is the fixed header set attached to every portal
// request, captured from a real browser session. The AJAX endpoints
// reject requests that do not look like they come from the planning
// page, X-Requested-With in particular. This set is a literal constant,
// not configuration; the Referer is derived from the portal base URL.
var browserHeaders = map[string]string{
	"Accept":             "application/json, text/javascript, */*; q=0.01",
	"Accept-Language":    "en-US,en;q=0.9,fr;q=0.8,vi;q=0.7,fr-FR;q=0.6",
	"X-Requested-With":   "XMLHttpRequest",
	"User-Agent":         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.0.0 Safari/537.36 Edg/141.0.0.0",
	"sec-ch-ua":          `"Microsoft Edge";v="141", "Not?A_Brand";v="8", "Chromium";v="141"`,
	"sec-ch-ua-mobile":   "?0",
	"sec-ch-ua-platform": `"Windows"`,
	"Sec-Fetch-Dest":     "empty",
	"Sec-Fetch-Mode":     "cors",
	"Sec-Fetch-Site":     "same-origin",
}

// Session is an authenticated portal context: a cookie jar plus the fixed
// browser header set. It is created by Authenticator.Login, scoped to a
// single sync pass and must not be shared across concurrent runs.
type Session struct {
	base   *url.URL
	client *http.Client
}

func newSession(baseURL string) (*Session, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Session{base: base, client: &http.Client{Jar: jar}}, nil
}

// endpoint resolves a portal path against the base URL.
func (s *Session) endpoint(path string) string {
	u := *s.base
	u.Path = path
	return u.String()
}

func (s *Session) attachHeaders(req *http.Request) {
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
	req.Header.Set("Referer", s.endpoint(planningPagePath))
}

func (s *Session) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint(path), nil)
	if err != nil {
		return nil, err
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	s.attachHeaders(req)
	return s.client.Do(req)
}

func (s *Session) postForm(ctx context.Context, path string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(path), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	s.attachHeaders(req)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.client.Do(req)
}
