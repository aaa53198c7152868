package httppresentation

import (
	"net/http"

	apppayment "cartpay/internal/application/payment"
	dompayment "cartpay/internal/domain/payment"
	"cartpay/internal/observability"
)

// PaymentHandler is the transport edge of the payment service.
type PaymentHandler struct {
	svc *apppayment.Service
	log observability.Logger
	tel observability.Observability
}

func NewPaymentHandler(svc *apppayment.Service, logger observability.Logger, tel observability.Observability) *PaymentHandler {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &PaymentHandler{
		svc: svc,
		log: logger.With(observability.F("component", componentHTTPServer)),
		tel: tel,
	}
}

func (h *PaymentHandler) Router() http.Handler {
	mux := http.NewServeMux()

	handle(mux, http.MethodPost, "/payment/charge", h.log, h.tel, h.handleCharge)
	handle(mux, http.MethodGet, "/health", h.log, h.tel, h.handleHealth)

	return mux
}

type chargeRequest struct {
	Amount     dompayment.Money    `json:"amount"`
	CreditCard dompayment.CardInfo `json:"credit_card"`
}

type chargeResponse struct {
	TransactionID string `json:"transaction_id"`
}

func (h *PaymentHandler) handleCharge(w http.ResponseWriter, r *http.Request) {
	var req chargeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.svc.Charge(r.Context(), dompayment.ChargeRequest{
		Amount:     req.Amount,
		CreditCard: req.CreditCard,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chargeResponse{TransactionID: result.TransactionID})
}

func (h *PaymentHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
