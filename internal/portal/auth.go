package portal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"

	"github.com/sirupsen/logrus"
)

const loginPath = "/login"

// TokenExtractor locates the anti-forgery token inside the login page
// markup. It is an interface so that a change in the portal's markup
// only requires swapping the extractor, not the login control flow.
type TokenExtractor interface {
	// Extract returns the token value and whether one was found.
	Extract(page string) (string, bool)
}

// RegexExtractor finds the value attribute of a named hidden input via
// pattern matching over the raw markup. This deliberately couples to the
// markup shape instead of doing a structural HTML parse; the portal
// renders the input with name before value and has done so for years.
type RegexExtractor struct {
	re *regexp.Regexp
}

// NewRegexExtractor builds an extractor for the hidden input with the
// given name attribute.
func NewRegexExtractor(inputName string) *RegexExtractor {
	return &RegexExtractor{
		re: regexp.MustCompile(`name="` + regexp.QuoteMeta(inputName) + `"[^>]*value="([^"]*)"`),
	}
}

func (e *RegexExtractor) Extract(page string) (string, bool) {
	m := e.re.FindStringSubmatch(page)
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// Authenticator obtains an authenticated portal session.
type Authenticator struct {
	BaseURL   string
	Extractor TokenExtractor
}

// NewAuthenticator returns an Authenticator using the default CSRF
// extractor for the portal's login form.
func NewAuthenticator(baseURL string) *Authenticator {
	return &Authenticator{
		BaseURL:   baseURL,
		Extractor: NewRegexExtractor("_csrf_token"),
	}
}

// Login fetches the login page, extracts the CSRF token and posts the
// credentials. Success is strictly an HTTP 200 on the POST; the returned
// Session carries the accumulated cookies.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*Session, error) {
	sess, err := newSession(a.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("building portal session: %w", err)
	}

	resp, err := sess.get(ctx, loginPath, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching login page: %w", err)
	}
	page, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading login page: %w", err)
	}

	token, ok := a.Extractor.Extract(string(page))
	if !ok {
		return nil, ErrCSRFNotFound
	}

	form := url.Values{
		"_username":   {username},
		"_password":   {password},
		"_csrf_token": {token},
	}
	resp, err = sess.postForm(ctx, loginPath, form)
	if err != nil {
		return nil, fmt.Errorf("posting credentials: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrLoginRejected, resp.StatusCode)
	}

	logrus.WithField("portal", a.BaseURL).Debug("portal login succeeded")
	return sess, nil
}
