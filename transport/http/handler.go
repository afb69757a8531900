package http

import (
	"log/slog"
	"net/http"

	"github.com/matryer/way"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dapamarket/dapa/service"
)

type handler struct {
	svc    *service.Service
	logger *slog.Logger
}

// New wires the JSON API. Routes are matched in registration order, so
// the static /api/products/nearby path sits above the :product_id param.
func New(svc *service.Service, logger *slog.Logger) http.Handler {
	h := &handler{svc: svc, logger: logger}

	router := way.NewRouter()

	router.HandleFunc("GET", "/api/products", h.products)
	router.HandleFunc("POST", "/api/products", h.createProduct)
	router.HandleFunc("GET", "/api/products/nearby", h.nearbyProducts)
	router.HandleFunc("GET", "/api/products/:product_id", h.product)

	router.HandleFunc("GET", "/api/users/:user_id", h.user)

	router.HandleFunc("GET", "/api/chats", h.chats)
	router.HandleFunc("GET", "/api/chats/:chat_id/messages", h.messages)
	router.HandleFunc("POST", "/api/chats/:chat_id/read", h.markChatRead)
	router.HandleFunc("POST", "/api/messages", h.createMessage)

	router.Handle("GET", "/metrics", promhttp.Handler())

	return withMetrics(router)
}
