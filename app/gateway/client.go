// Package gateway is the thin validating proxy in front of the server
// component: it checks request shapes and forwards everything else as-is.
package gateway

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ilya-noize/RentHub-sub001/app/echoServer"
	"github.com/ilya-noize/RentHub-sub001/util/httpx"
)

type Client struct {
	base string
	hc   *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{base: strings.TrimRight(baseURL, "/"), hc: httpx.Client()}
}

// Forward replays the inbound request against the server and relays the
// response verbatim: same status, same body. A non-nil body overrides
// the (already consumed) request body.
func (cl *Client) Forward(c echo.Context, body []byte) error {
	req := c.Request()

	url := cl.base + req.URL.Path
	if q := req.URL.RawQuery; q != "" {
		url += "?" + q
	}

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	} else if req.Body != nil {
		rd = req.Body
	}

	out, err := http.NewRequestWithContext(req.Context(), req.Method, url, rd)
	if err != nil {
		return err
	}
	out.Header.Set("Content-Type", "application/json")
	if v := req.Header.Get(echoServer.HeaderUserID); v != "" {
		out.Header.Set(echoServer.HeaderUserID, v)
	}

	resp, err := cl.hc.Do(out)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.Stream(resp.StatusCode, resp.Header.Get("Content-Type"), resp.Body)
}
