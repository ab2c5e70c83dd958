package httpx

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/labstack/echo/v4"
)

// CacheMaxAge is how long clients and shared caches may reuse a response.
const CacheMaxAge = 300 * time.Second

// DefaultContentType is used when a response does not name one.
const DefaultContentType = "text/plain"

var cacheControl = "public, max-age=" + strconv.Itoa(int(CacheMaxAge.Seconds()))

// now is swapped in tests to pin the Expires header.
var now = time.Now

// Response describes a complete HTTP response before it is written.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

type responseConfig struct {
	contentType string
	body        *string
}

// ResponseOption customises NewResponse.
type ResponseOption func(*responseConfig)

// WithContentType overrides the text/plain default.
func WithContentType(ct string) ResponseOption {
	return func(c *responseConfig) {
		if ct != "" {
			c.contentType = ct
		}
	}
}

// WithBody sets the response body. An explicitly empty body is kept as is.
func WithBody(body string) ResponseOption {
	return func(c *responseConfig) {
		c.body = &body
	}
}

// NewResponse builds a response carrying the standard CORS and caching headers.
// Without WithBody the body is the status reason phrase. A 204 never carries a
// body, a content type or an entity tag.
//
// NewResponse panics if status is not a valid HTTP status code.
func NewResponse(status int, opts ...ResponseOption) Response {
	if status < 100 || status > 599 {
		panic(fmt.Sprintf("httpx: invalid status code %d", status))
	}

	cfg := responseConfig{contentType: DefaultContentType}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	h := make(http.Header, 8)
	h.Set(echo.HeaderAccessControlAllowOrigin, "*")
	h.Set(echo.HeaderAccessControlMaxAge, strconv.Itoa(int(CacheMaxAge.Seconds())))
	h.Set(echo.HeaderCacheControl, cacheControl)
	h.Set(echo.HeaderVary, echo.HeaderOrigin)
	h.Set("Expires", now().Add(CacheMaxAge).UTC().Format(http.TimeFormat))

	if status == http.StatusNoContent {
		return Response{Status: status, Header: h}
	}

	body := reasonPhrase(status)
	if cfg.body != nil {
		body = *cfg.body
	}
	b := []byte(body)
	h.Set(echo.HeaderContentType, cfg.contentType)
	h.Set("ETag", EntityTag(b))

	return Response{Status: status, Header: h, Body: b}
}

// EntityTag returns a strong validator derived only from the given bytes.
func EntityTag(body []byte) string {
	return `"` + strconv.FormatInt(int64(len(body)), 16) + "-" + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
}

// WriteResponse sends r through the echo context.
func WriteResponse(c Context, r Response) error {
	dst := c.Response().Header()
	for k, vs := range r.Header {
		dst[k] = append([]string(nil), vs...)
	}
	if r.Status == http.StatusNoContent {
		return c.NoContent(r.Status)
	}
	return c.Blob(r.Status, r.Header.Get(echo.HeaderContentType), r.Body)
}

func reasonPhrase(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return strconv.Itoa(status)
}
