package httppresentation

import (
	"net/http"

	appcart "cartpay/internal/application/cart"
	domcart "cartpay/internal/domain/cart"
	"cartpay/internal/observability"
)

const componentHTTPServer = "http_server"

// CartHandler is the transport edge of the cart service: decode, delegate,
// map taxonomy to status. No cart logic lives here.
type CartHandler struct {
	svc *appcart.Service
	log observability.Logger
	tel observability.Observability
}

func NewCartHandler(svc *appcart.Service, logger observability.Logger, tel observability.Observability) *CartHandler {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &CartHandler{
		svc: svc,
		log: logger.With(observability.F("component", componentHTTPServer)),
		tel: tel,
	}
}

func (h *CartHandler) Router() http.Handler {
	mux := http.NewServeMux()

	handle(mux, http.MethodPost, "/cart/items", h.log, h.tel, h.handleAddItem)
	handle(mux, http.MethodGet, "/cart", h.log, h.tel, h.handleGetCart)
	handle(mux, http.MethodPost, "/cart/empty", h.log, h.tel, h.handleEmptyCart)
	handle(mux, http.MethodGet, "/health", h.log, h.tel, h.handleHealth)

	return mux
}

type addItemRequest struct {
	UserID string       `json:"user_id"`
	Item   domcart.Item `json:"item"`
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.svc.AddItem(r.Context(), req.UserID, req.Item); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *CartHandler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	cart, err := h.svc.GetCart(r.Context(), userID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

type emptyCartRequest struct {
	UserID string `json:"user_id"`
}

func (h *CartHandler) handleEmptyCart(w http.ResponseWriter, r *http.Request) {
	var req emptyCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.svc.EmptyCart(r.Context(), req.UserID); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *CartHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
