package testutil

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/steinfletcher/apitest"
)

// BodyContains asserts the response body contains every fragment
func BodyContains(fragments ...string) apitest.Assert {
	return func(res *http.Response, _ *http.Request) error {
		buf, err := io.ReadAll(res.Body)
		if err != nil {
			return err
		}
		body := string(buf)
		for _, f := range fragments {
			if !strings.Contains(body, f) {
				return fmt.Errorf("body should contain %q, got:\n%v", f, body)
			}
		}
		return nil
	}
}

// BodyLacks asserts none of the fragments appear in the response body
func BodyLacks(fragments ...string) apitest.Assert {
	return func(res *http.Response, _ *http.Request) error {
		buf, err := io.ReadAll(res.Body)
		if err != nil {
			return err
		}
		for _, f := range fragments {
			if strings.Contains(string(buf), f) {
				return fmt.Errorf("body should not contain %q", f)
			}
		}
		return nil
	}
}

// SessionCookie returns the SESSION cookie set by res, if any
func SessionCookie(res *http.Response) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == "SESSION" {
			return c
		}
	}
	return nil
}
