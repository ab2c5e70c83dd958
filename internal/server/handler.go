package server

import (
	"net/http"
	"strings"

	"github.com/adeilh/docserve/httpx"
	"github.com/adeilh/docserve/internal/document"
)

// Handler serves documents by path.
type Handler struct {
	docs document.Gateway
}

func NewHandler(docs document.Gateway) *Handler {
	return &Handler{docs: docs}
}

// Serve maps a request onto a lookup. Failed lookups are returned as errors so
// the boundary can log and report them.
func (h *Handler) Serve(c httpx.Context) error {
	req := c.Request()

	switch req.Method {
	case http.MethodGet:
	case http.MethodHead:
		return httpx.WriteResponse(c, httpx.NewResponse(httpx.StatusNoContent))
	default:
		return httpx.WriteResponse(c, httpx.NewResponse(httpx.StatusMethodNotAllowed))
	}

	id, ok := identifier(req)
	if !ok {
		return httpx.WriteResponse(c, httpx.NewResponse(httpx.StatusNotFound))
	}

	out := h.docs.Lookup(req.Context(), id)
	switch out.Kind {
	case document.KindFound:
		return httpx.WriteResponse(c, httpx.NewResponse(httpx.StatusOK, httpx.WithBody(out.Content)))
	case document.KindNotFound:
		return httpx.WriteResponse(c, httpx.NewResponse(httpx.StatusNotFound))
	default:
		return &LookupError{ID: id, Err: out.Err}
	}
}

// identifier is the escaped path minus its leading slash, taken verbatim.
func identifier(req *http.Request) (string, bool) {
	p := req.URL.EscapedPath()
	if p == "" || p == "/" {
		return "", false
	}
	return strings.TrimPrefix(p, "/"), true
}

// LookupError wraps a failed document lookup.
type LookupError struct {
	ID  string
	Err error
}

func (e *LookupError) Error() string {
	if e.Err == nil {
		return "document lookup failed"
	}
	return "document lookup failed: " + e.Err.Error()
}

func (e *LookupError) Unwrap() error { return e.Err }
