package http

import (
	"net/http"

	"github.com/matryer/way"
)

func (h *handler) user(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out, err := h.svc.User(ctx, way.Param(ctx, "user_id"))
	if err != nil {
		h.respondErr(w, err)
		return
	}

	h.respond(w, out, http.StatusOK)
}
