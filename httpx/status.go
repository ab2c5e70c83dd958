package httpx

import "net/http"

const (
	StatusOK               = http.StatusOK                  // Document found
	StatusNoContent        = http.StatusNoContent           // HEAD probes
	StatusNotFound         = http.StatusNotFound            // No document, or no identifier
	StatusMethodNotAllowed = http.StatusMethodNotAllowed    // Anything but GET and HEAD
	StatusInternalError    = http.StatusInternalServerError // Data layer failure
)
