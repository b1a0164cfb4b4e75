// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package fortios

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const statusSuccess = "success"

// Response is the envelope of every JSON answer of the API.
type Response struct {
	HTTPMethod string          `json:"http_method,omitempty"`
	Status     string          `json:"status,omitempty"`
	HTTPStatus int             `json:"http_status,omitempty"`
	Path       string          `json:"path,omitempty"`
	Name       string          `json:"name,omitempty"`
	VDOM       string          `json:"vdom,omitempty"`
	Serial     string          `json:"serial,omitempty"`
	Version    string          `json:"version,omitempty"`
	Build      int             `json:"build,omitempty"`
	Error      int             `json:"error,omitempty"`
	Results    json.RawMessage `json:"results,omitempty"`

	// StatusCode is the HTTP status code of the answer.
	StatusCode int `json:"-"`
}

func (r *Response) successStatus() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// OK reports whether the request succeeded. Some endpoints omit the status attribute,
// in which case the HTTP status code decides.
func (r *Response) OK() bool {
	if r == nil || !r.successStatus() {
		return false
	}
	return r.Status == "" || r.Status == statusSuccess
}

// NotFound reports whether the requested object does not exist.
func (r *Response) NotFound() bool {
	return r != nil && (r.StatusCode == http.StatusNotFound || r.HTTPStatus == http.StatusNotFound)
}

// Reason returns a short human readable description of a failed response.
func (r *Response) Reason() string {
	if r == nil {
		return "no response"
	}
	if r.Status != "" {
		return fmt.Sprintf("status %q (http %d, error %d)", r.Status, r.StatusCode, r.Error)
	}
	return fmt.Sprintf("http %d %s", r.StatusCode, http.StatusText(r.StatusCode))
}
