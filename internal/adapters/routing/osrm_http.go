package routing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// ProtocolError marks a response the server delivered but the engine
// cannot use: a non-Ok status literal or malformed/missing geometry.
// The engine handles it like a transport failure (straight-line
// fallback); the distinct type exists for logs and tests.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return "osrm: " + e.Reason
}

func (p *OSRMRouteProvider) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	return req, nil
}

// do performs the request without retrying. A failed segment fetch is
// never retried automatically; the next redraw is the only retry path.
func (p *OSRMRouteProvider) do(req *http.Request) (*http.Response, error) {
	resp, err := p.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}
