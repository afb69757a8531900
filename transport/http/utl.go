package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"syscall"

	"github.com/nicolasparada/go-errs"
	"github.com/nicolasparada/go-errs/httperrs"
)

var errBadRequest = errors.New("bad request")

type errRespBody struct {
	Error string `json:"error"`
}

func (h *handler) respond(w http.ResponseWriter, v any, statusCode int) {
	b, err := json.Marshal(v)
	if err != nil {
		h.respondErr(w, fmt.Errorf("json marshal http response body: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err = w.Write(b)
	if err != nil && !errors.Is(err, syscall.EPIPE) && !errors.Is(err, context.Canceled) {
		h.logger.Error("write http response", "error", err)
	}
}

// respondErr is the single classification step between the service's error
// taxonomy and transport status codes. Internal failures are logged with
// the underlying message and surface as an opaque 500; nothing below the
// boundary leaks to the client.
func (h *handler) respondErr(w http.ResponseWriter, err error) {
	statusCode := err2code(err)
	if statusCode == http.StatusInternalServerError {
		if !errors.Is(err, context.Canceled) {
			h.logger.Error("internal error", "error", err)
		}
		h.respond(w, errRespBody{Error: "internal server error"}, statusCode)
		return
	}

	h.respond(w, errRespBody{Error: err.Error()}, statusCode)
}

func err2code(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, errBadRequest) || errors.Is(err, errs.InvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, errs.NotFound):
		return http.StatusNotFound
	}

	return httperrs.Code(err)
}
