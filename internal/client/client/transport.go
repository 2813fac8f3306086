package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/google/uuid"
)

var errTokenSource = errors.New("read credential token")

// authTransport stamps every request with a request id and, when tokens is
// set, with the bearer credential token.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	orig := req
	req = req.Clone(req.Context())

	if req.Header.Get(common.RequestIDHeaderName) == "" {
		req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}

	if t.tokens != nil && req.Header.Get(common.AuthorizationHeaderName) == "" {
		token, err := t.tokens.Token(req.Context())
		if err != nil {
			if orig.Body != nil {
				_ = orig.Body.Close()
			}
			return nil, fmt.Errorf("%w: %w", errTokenSource, err)
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
		}
	}

	return t.base.RoundTrip(req)
}
