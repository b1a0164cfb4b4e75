// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

// Package fortios is a client of the FortiOS REST API (/api/v2).
package fortios

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fgfleet/fgfleet/constants"
	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/types"
)

const (
	apiPrefix      = "/api/v2/"
	loginPath      = "/logincheck"
	logoutPath     = "/logout"
	csrfCookieName = "ccsrftoken"
	csrfHeader     = "X-CSRFTOKEN"
)

// Client is a stateful REST session to a single device.
// It authenticates either with an API token or with login/password.
type Client struct {
	host     string
	port     int
	scheme   string
	login    string
	password string
	token    string

	httpClient *http.Client
	insecure   bool
	timeout    time.Duration
	debug      bool

	csrfToken string
	loggedIn  bool
}

// ClientOption is a functional option of the Client.
type ClientOption func(c *Client)

// WithToken makes the client authenticate with the API token.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithPassword makes the client authenticate with login and password.
// It is ignored if a token is set as well.
func WithPassword(login, password string) ClientOption {
	return func(c *Client) {
		c.login = login
		c.password = password
	}
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithPort(p int) ClientOption {
	return func(c *Client) {
		c.port = p
	}
}

// WithInsecure disables the verification of the device certificate.
func WithInsecure(b bool) ClientOption {
	return func(c *Client) {
		c.insecure = b
	}
}

// WithHTTPClient sets the http client used for requests. The client's cookie jar
// is replaced if it has none.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithDebug enables logging of every request and response status.
func WithDebug(b bool) ClientOption {
	return func(c *Client) {
		c.debug = b
	}
}

// NewClient returns a Client for the device at host.
func NewClient(host string, opts ...ClientOption) *Client {
	c := &Client{
		host:    host,
		port:    constants.DefaultHTTPSPort,
		scheme:  "https",
		timeout: constants.DefaultAPITimeout,
	}

	for _, o := range opts {
		o(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: c.insecure, //nolint:gosec // appliances ship self-signed certs
				},
			},
		}
	}

	if c.httpClient.Jar == nil {
		jar, _ := cookiejar.New(nil)
		c.httpClient.Jar = jar
	}

	return c
}

// AuthMode returns the authentication mode the client uses.
func (c *Client) AuthMode() types.AuthMode {
	if c.token != "" {
		return types.AuthToken
	}
	return types.AuthPassword
}

// HTTPClient returns the underlying http client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Timeout returns the per-call timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// SetTimeout sets the per-call timeout for subsequent calls.
func (c *Client) SetTimeout(d time.Duration) {
	c.timeout = d
}

// LoggedIn reports whether Login succeeded and Logout was not called since.
func (c *Client) LoggedIn() bool {
	return c.loggedIn
}

func (c *Client) baseURL() string {
	h := c.host
	if c.port != 0 && c.port != constants.DefaultHTTPSPort {
		h = net.JoinHostPort(c.host, strconv.Itoa(c.port))
	}
	return fmt.Sprintf("%s://%s", c.scheme, h)
}

// Login opens the REST session.
// With a token no request is made: the token is attached to every request and
// its validity is only known after the first authenticated call.
// With a password the login form is posted and the CSRF token of the session recorded.
func (c *Client) Login(ctx context.Context) error {
	if c.token != "" {
		c.loggedIn = true
		return nil
	}

	if c.login == "" || c.password == "" {
		return fmt.Errorf("%w: %s: neither token nor login/password set", fgerrors.ErrConfiguration, c.host)
	}

	form := url.Values{}
	form.Set("username", c.login)
	form.Set("secretkey", c.password)
	form.Set("ajax", "1")

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+loginPath,
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", fgerrors.ErrConnection, c.host, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	// the login form answers 200 with "1" on success, "0" on bad credentials,
	// "2" on lockout and "3" when a second factor is required.
	if resp.StatusCode != http.StatusOK || !bytes.HasPrefix(bytes.TrimSpace(body), []byte("1")) {
		return fmt.Errorf("%w: %s: login rejected for user %q", fgerrors.ErrAuthentication, c.host, c.login)
	}

	for _, ck := range resp.Cookies() {
		if strings.HasPrefix(ck.Name, csrfCookieName) {
			c.csrfToken = strings.Trim(ck.Value, `"`)
		}
	}

	c.loggedIn = true
	log.Debugf("%s: REST session opened for user %q", c.host, c.login)

	return nil
}

// Logout closes the REST session. Token sessions are stateless on the device
// and only reset locally.
func (c *Client) Logout(ctx context.Context) error {
	if !c.loggedIn {
		return nil
	}
	c.loggedIn = false

	if c.token != "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+logoutPath, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", fgerrors.ErrConnection, c.host, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	c.csrfToken = ""

	return nil
}

// Get issues a GET to the API path and decodes the response envelope.
// If target is not nil, the results are decoded into it on success.
func (c *Client) Get(ctx context.Context, path string, params url.Values, target any) (*Response, error) {
	return c.Request(ctx, http.MethodGet, path, params, nil, target)
}

// Post issues a POST of data as JSON to the API path and decodes the response envelope.
func (c *Client) Post(ctx context.Context, path string, params url.Values, data, target any) (*Response, error) {
	return c.Request(ctx, http.MethodPost, path, params, data, target)
}

// PostRaw issues a POST and returns the raw response body. It is used for
// endpoints that answer with a file instead of the JSON envelope.
func (c *Client) PostRaw(ctx context.Context, path string, params url.Values, data any) ([]byte, *Response, error) {
	b, resp, err := c.do(ctx, http.MethodPost, path, params, data)
	if err != nil {
		return nil, resp, err
	}
	if !resp.successStatus() {
		_ = json.Unmarshal(b, resp)
		return nil, resp, nil
	}

	return b, resp, nil
}

// Request is the helper that handles the http requests, as well as the marshalling
// of request data and unmarshalling of the response envelope.
// A non-success status is reported in the returned Response, not as an error.
func (c *Client) Request(ctx context.Context, method, path string, params url.Values,
	data, target any,
) (*Response, error) {
	b, resp, err := c.do(ctx, method, path, params, data)
	if err != nil {
		return resp, err
	}

	if len(bytes.TrimSpace(b)) == 0 {
		return resp, nil
	}

	if err := json.Unmarshal(b, resp); err != nil {
		if !resp.successStatus() {
			// error pages are not always JSON
			return resp, nil
		}
		return resp, fmt.Errorf("%w: %s: error decoding body: %v", fgerrors.ErrValidation, c.host, err)
	}

	if target != nil && resp.OK() && len(resp.Results) > 0 {
		if err := json.Unmarshal(resp.Results, target); err != nil {
			return resp, fmt.Errorf("%w: %s: error decoding results: %v", fgerrors.ErrValidation, c.host, err)
		}
	}

	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, data any) ([]byte, *Response, error) {
	var body io.Reader
	if data != nil {
		jv, err := json.Marshal(data)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewBuffer(jv)
	}

	u := c.baseURL() + apiPrefix + strings.TrimPrefix(path, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, nil, err
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else if c.csrfToken != "" {
		req.Header.Set(csrfHeader, c.csrfToken)
	}
	req.Header.Set("Accept", "application/json")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.debug {
		log.Debugf("%s: REST request %s %s", c.host, method, path)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", fgerrors.ErrConnection, c.host, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: reading response: %v", fgerrors.ErrConnection, c.host, err)
	}

	if c.debug {
		log.Debugf("%s: REST response %s %s: %d (%d bytes)", c.host, method, path, resp.StatusCode, len(b))
	}

	r := &Response{StatusCode: resp.StatusCode}

	if resp.StatusCode == http.StatusUnauthorized {
		return b, r, fmt.Errorf("%w: %s: 401 Unauthorized", fgerrors.ErrAuthentication, c.host)
	}

	return b, r, nil
}
