package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/httpx"
	"github.com/ltplabs/ecatalog/pkg/slogx"
)

// Outward error kinds. Downstream codes never reach the caller; only these
// do, with the downstream description as diagnostic.
const (
	KindUnauthorized       = "unauthorized"
	KindNotFound           = "not_found"
	KindBadRequest         = "bad_request"
	KindServiceUnavailable = "service_unavailable"
	KindInternal           = "internal"
)

// outward maps a downstream status to the gateway's status and error kind.
func outward(status int) (int, string) {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return http.StatusUnauthorized, KindUnauthorized
	case http.StatusNotFound:
		return http.StatusNotFound, KindNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return http.StatusBadRequest, KindBadRequest
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return http.StatusServiceUnavailable, KindServiceUnavailable
	default:
		return http.StatusInternalServerError, KindInternal
	}
}

// writeUpstreamError relays err from a dbsdk call. Anything that is not a
// *dbsdk.Error is internal.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	var e *dbsdk.Error
	if !errors.As(err, &e) {
		slogx.FromContext(r.Context()).Error("gateway call failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, KindInternal, "internal error")
		return
	}

	status, kind := outward(e.StatusCode)
	if status >= 500 {
		slogx.FromContext(r.Context()).Warn("upstream failure",
			"upstream_status", e.StatusCode,
			"upstream_code", e.Code,
			"error", e.Description,
		)
	}
	httpx.WriteError(w, status, kind, e.Description)
}

// relay writes a forwarded response: 2xx verbatim, everything else mapped.
func relay(w http.ResponseWriter, r *http.Request, resp *dbsdk.Response) {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		if ct := resp.Header.Get("Content-Type"); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		httpx.NoCache(w)
		w.WriteHeader(resp.StatusCode)
		_, _ = w.Write(resp.Body)
		return
	}

	writeUpstreamError(w, r, dbsdk.ParseError(resp.StatusCode, resp.Body))
}

// Proxy forwards requests to one downstream service.
type Proxy struct {
	Client *dbsdk.Client

	// Rewrite maps the inbound path to the downstream path. Nil keeps it.
	Rewrite func(path string) string
}

// ServeHTTP forwards method, body and query verbatim.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, httpx.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.WriteError(w, http.StatusRequestEntityTooLarge, KindBadRequest, "request body too large")
			return
		}
		slogx.FromContext(r.Context()).Warn("reading request body failed", "error", err)
		httpx.WriteError(w, http.StatusBadRequest, KindBadRequest, "could not read request body")
		return
	}
	p.forward(w, r, body)
}

func (p *Proxy) forward(w http.ResponseWriter, r *http.Request, body []byte) {
	path := r.URL.EscapedPath()
	if p.Rewrite != nil {
		path = p.Rewrite(path)
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	resp, err := p.Client.Forward(r.Context(), r.Method, path, r.URL.RawQuery, reader, r.Header)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	relay(w, r, resp)
}

// apiToDB maps /api/<resource>/... onto the database service's /db/<resource>/...
func apiToDB(path string) string {
	return "/db" + strings.TrimPrefix(path, "/api")
}
