package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matryer/way"

	"github.com/dapamarket/dapa/types"
)

func (h *handler) products(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var in types.ListProducts

	if q.Has("first") {
		first, err := strconv.ParseUint(q.Get("first"), 10, 64)
		if err != nil {
			h.respondErr(w, errBadRequest)
			return
		}

		in.PageArgs.First = new(uint(first))
	}

	if q.Has("after") {
		in.PageArgs.After = new(q.Get("after"))
	}

	out, err := h.svc.Products(ctx, in)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	if out.Items == nil {
		out.Items = []types.Product{} // non null array
	}

	h.respond(w, out, http.StatusOK)
}

func (h *handler) createProduct(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var in types.CreateProduct
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondErr(w, errBadRequest)
		return
	}

	ctx := r.Context()
	out, err := h.svc.CreateProduct(ctx, in)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	h.respond(w, out, http.StatusCreated)
}

func (h *handler) product(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out, err := h.svc.Product(ctx, way.Param(ctx, "product_id"))
	if err != nil {
		h.respondErr(w, err)
		return
	}

	h.respond(w, out, http.StatusOK)
}

func (h *handler) nearbyProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out, err := h.svc.NearbyProducts(ctx)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	h.respond(w, out, http.StatusOK)
}
