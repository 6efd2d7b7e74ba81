// Package github talks to a GitHub-compatible API and turns the
// organization's open pull requests into domain records.
package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	api "github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// NewClient builds a go-github client pointed at the enterprise API root
// of the given hostname (https://{hostname}/api/v3). The token is sent as
// a Bearer authorization on every request; every request is bounded by
// the given timeout.
func NewClient(hostname, token string, timeout time.Duration) (*api.Client, error) {
	hc := &http.Client{Timeout: timeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), ts)
		hc.Timeout = timeout
	}
	base := fmt.Sprintf("https://%s/api/v3", hostname)
	upload := fmt.Sprintf("https://%s/api/uploads", hostname)
	return api.NewClient(hc).WithEnterpriseURLs(base, upload)
}
