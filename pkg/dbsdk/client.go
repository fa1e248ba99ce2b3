package dbsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ltplabs/ecatalog/pkg/metricsx"
	"github.com/ltplabs/ecatalog/pkg/slogx"
)

// DefaultTimeout bounds every call when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Client talks to one downstream catalog service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Service labels upstream metrics, e.g. "database".
	Service string

	// ForwardAuthorization copies the caller's Authorization header on
	// Forward. Only the authentication service reads bearer tokens.
	ForwardAuthorization bool
}

// New returns a client for baseURL. A non-positive timeout uses
// DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Service:    "database",
	}
}

// Response is a relayed downstream answer.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// forwardedHeaders are copied from the inbound request by Forward.
var forwardedHeaders = []string{"Content-Type", slogx.HeaderRequestID, "Accept"}

// Forward sends method/path/query with body to the service and returns the
// answer whatever its status. Only transport failures return an error,
// always an *Error with StatusCode 503.
func (c *Client) Forward(
	ctx context.Context,
	method, path, rawQuery string,
	body io.Reader,
	header http.Header,
) (*Response, error) {
	target := c.BaseURL + path
	if rawQuery != "" {
		target += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("dbsdk: build request: %w", err)
	}
	for _, h := range forwardedHeaders {
		if v := header.Get(h); v != "" {
			req.Header.Set(h, v)
		}
	}
	if v := header.Get("Authorization"); c.ForwardAuthorization && v != "" {
		req.Header.Set("Authorization", v)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		metricsx.RecordUpstream(c.Service, 0, time.Since(start))
		return nil, unavailable(err)
	}
	defer resp.Body.Close()
	metricsx.RecordUpstream(c.Service, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unavailable(err)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// do sends in as JSON (when non-nil) and decodes a 2xx answer into out
// (when non-nil). Non-2xx answers become *Error.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	header := http.Header{}
	if id := slogx.RequestIDFromContext(ctx); id != "" {
		header.Set(slogx.HeaderRequestID, id)
	}
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("dbsdk: encode request: %w", err)
		}
		body = bytes.NewReader(buf)
		header.Set("Content-Type", "application/json")
	}

	resp, err := c.Forward(ctx, method, path, "", body, header)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ParseError(resp.StatusCode, resp.Body)
	}
	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("dbsdk: decode response: %w", err)
	}
	return nil
}

func seg(s string) string { return url.PathEscape(s) }

// Livez checks the service is alive.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var h HealthResponse
	return &h, c.do(ctx, http.MethodGet, "/livez", nil, &h)
}

// Readyz checks the service is ready to serve.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	var h HealthResponse
	return &h, c.do(ctx, http.MethodGet, "/readyz", nil, &h)
}

func (c *Client) GetPedido(ctx context.Context, id string) (*Pedido, error) {
	var p Pedido
	return &p, c.do(ctx, http.MethodGet, "/db/pedidos/"+seg(id), nil, &p)
}

func (c *Client) CreatePedido(ctx context.Context, in CreatePedidoRequest) (*Pedido, error) {
	var p Pedido
	return &p, c.do(ctx, http.MethodPost, "/db/pedidos/", in, &p)
}

func (c *Client) ApprovePedido(ctx context.Context, id string, in ResolvePedidoRequest) (*Pedido, error) {
	var p Pedido
	return &p, c.do(ctx, http.MethodPost, "/db/pedidos/"+seg(id)+"/approve", in, &p)
}

func (c *Client) RejectPedido(ctx context.Context, id string, in ResolvePedidoRequest) (*Pedido, error) {
	var p Pedido
	return &p, c.do(ctx, http.MethodPost, "/db/pedidos/"+seg(id)+"/reject", in, &p)
}

func (c *Client) GetCliente(ctx context.Context, id string) (*Cliente, error) {
	var cl Cliente
	return &cl, c.do(ctx, http.MethodGet, "/db/clientes/"+seg(id), nil, &cl)
}

func (c *Client) CreateCliente(ctx context.Context, in CreateClienteRequest) (*Cliente, error) {
	var cl Cliente
	return &cl, c.do(ctx, http.MethodPost, "/db/clientes/", in, &cl)
}

// GetClienteWithPassword returns the client and its password hash.
func (c *Client) GetClienteWithPassword(ctx context.Context, email string) (*ClienteWithPassword, error) {
	var cl ClienteWithPassword
	return &cl, c.do(ctx, http.MethodGet, "/db/clientes/by-email-with-password/"+seg(email), nil, &cl)
}

// GetAdminWithPassword returns the admin and its password hash.
func (c *Client) GetAdminWithPassword(ctx context.Context, email string) (*AdminWithPassword, error) {
	var a AdminWithPassword
	return &a, c.do(ctx, http.MethodGet, "/db/admin/by-email-with-password/"+seg(email), nil, &a)
}

func (c *Client) CreateAdmin(ctx context.Context, in CreateAdminRequest) (*Admin, error) {
	var a Admin
	return &a, c.do(ctx, http.MethodPost, "/db/admin/", in, &a)
}

func (c *Client) CreateLog(ctx context.Context, in CreateLogRequest) (*Log, error) {
	var l Log
	return &l, c.do(ctx, http.MethodPost, "/db/logs/", in, &l)
}

func (c *Client) ListLogsByCliente(ctx context.Context, clienteID string) ([]Log, error) {
	var out []Log
	if err := c.do(ctx, http.MethodGet, "/db/logs/by-cliente/"+seg(clienteID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
