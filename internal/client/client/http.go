package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gamezone/internal/common"
	"github.com/dmitrijs2005/gamezone/internal/logging"
	"github.com/dmitrijs2005/gamezone/internal/netx"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const maxErrorBody = 4 << 10

// HTTPClient talks to the GameZone REST API. It implements UsersAPI and
// ProductsAPI. It never retries; the request bound is hc.Timeout.
type HTTPClient struct {
	base *url.URL
	hc   *http.Client
	log  logging.Logger
}

var (
	_ UsersAPI    = (*HTTPClient)(nil)
	_ ProductsAPI = (*HTTPClient)(nil)
)

// NewHTTPClient validates baseURL (scheme and host are required) and returns
// a client using hc, or http.DefaultClient when hc is nil.
func NewHTTPClient(baseURL string, hc *http.Client, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q: scheme and host are required", baseURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	if hc == nil {
		hc = http.DefaultClient
	}
	if log == nil {
		log = logging.Nop()
	}
	return &HTTPClient{base: u, hc: hc, log: log.With("component", "api")}, nil
}

func (c *HTTPClient) endpoint(query url.Values, segments ...string) string {
	u := *c.base
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u.Path = c.base.Path + "/" + strings.Join(segments, "/")
	u.RawPath = c.base.EscapedPath() + "/" + strings.Join(escaped, "/")
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *HTTPClient) do(ctx context.Context, method string, query url.Values, in, out any, segments ...string) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(query, segments...), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	path := "/" + strings.Join(segments, "/")
	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
			return ctxErr
		}
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", reqID, "err", err)
		if netx.IsUnavailable(err) {
			return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done", "method", method, "path", path, "request_id", reqID,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if netx.IsUnavailable(err) {
			return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
		}
		return fmt.Errorf("%w: %s %s: %v", ErrBadResponse, method, path, err)
	}
	return nil
}

// readMessage extracts a human readable reason from an error body: the
// "message" or "error" field of a JSON object, or the trimmed text.
func readMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var obj struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		if obj.Message != "" {
			return obj.Message
		}
		if obj.Error != "" {
			return obj.Error
		}
	}
	return strings.TrimSpace(string(raw))
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]UserDTO, error) {
	var out []UserDTO
	if err := c.do(ctx, http.MethodGet, nil, nil, &out, "usuarios"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, userID int64) (UserDTO, error) {
	var out UserDTO
	err := c.do(ctx, http.MethodGet, nil, nil, &out, "usuarios", id(userID))
	return out, err
}

func (c *HTTPClient) GetUserByEmail(ctx context.Context, email string) (UserDTO, error) {
	var out UserDTO
	err := c.do(ctx, http.MethodGet, nil, nil, &out, "usuarios", "correo", email)
	return out, err
}

func (c *HTTPClient) CreateUser(ctx context.Context, u UserDTO) (UserDTO, error) {
	var out UserDTO
	err := c.do(ctx, http.MethodPost, nil, u, &out, "usuarios")
	return out, err
}

// Login treats an unknown email (404) like a wrong password.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (UserDTO, error) {
	var out UserDTO
	q := url.Values{"correo": {email}, "clave": {password}}
	err := c.do(ctx, http.MethodGet, q, nil, &out, "usuarios", "auth", "login")
	if errors.Is(err, ErrNotFound) {
		return out, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return out, err
}

func (c *HTTPClient) UpdateUser(ctx context.Context, userID int64, u UserDTO) (UserDTO, error) {
	var out UserDTO
	err := c.do(ctx, http.MethodPut, nil, u, &out, "usuarios", id(userID))
	return out, err
}

func (c *HTTPClient) DeleteUser(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodDelete, nil, nil, nil, "usuarios", id(userID))
}

func (c *HTTPClient) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	var out []ProductDTO
	if err := c.do(ctx, http.MethodGet, nil, nil, &out, "productos"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, productID int64) (ProductDTO, error) {
	var out ProductDTO
	err := c.do(ctx, http.MethodGet, nil, nil, &out, "productos", id(productID))
	return out, err
}

func (c *HTTPClient) ProductsByCategory(ctx context.Context, category string) ([]ProductDTO, error) {
	var out []ProductDTO
	if err := c.do(ctx, http.MethodGet, nil, nil, &out, "productos", "categoria", category); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SearchProducts(ctx context.Context, name string) ([]ProductDTO, error) {
	var out []ProductDTO
	if err := c.do(ctx, http.MethodGet, nil, nil, &out, "productos", "buscar", name); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, p ProductDTO) (ProductDTO, error) {
	var out ProductDTO
	err := c.do(ctx, http.MethodPost, nil, p, &out, "productos")
	return out, err
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, productID int64, p ProductDTO) (ProductDTO, error) {
	var out ProductDTO
	err := c.do(ctx, http.MethodPut, nil, p, &out, "productos", id(productID))
	return out, err
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, productID int64) error {
	return c.do(ctx, http.MethodDelete, nil, nil, nil, "productos", id(productID))
}
