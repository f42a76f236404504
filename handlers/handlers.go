package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"homeBakery/entities"
	"homeBakery/models"
	"homeBakery/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const cartCookie = "cartSessionId"

type Handler struct {
	cs     services.CartService
	ors    services.OrderService
	cas    services.CatalogService
	logger *zap.Logger
	ttl    time.Duration
}

type HandlerParams struct {
	CrtService services.CartService
	OrdService services.OrderService
	CatService services.CatalogService
	Logger     *zap.Logger
	SessionTTL time.Duration
}

func NewHandler(params HandlerParams) *Handler {
	ttl := params.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Handler{
		cs:     params.CrtService,
		ors:    params.OrdService,
		cas:    params.CatService,
		logger: params.Logger,
		ttl:    ttl,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		h.logger.Error("marshal response", zap.Error(err))
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonData)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.logger.Debug("decode request body", zap.String("path", r.URL.Path), zap.Error(err))
		WriteErrorResponse(w, models.ErrBadRequest)
		return false
	}
	return true
}

// cartSession returns the session id from the cookie, or "" when the
// shopper has none yet.
func (h *Handler) cartSession(r *http.Request) string {
	c, err := r.Cookie(cartCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// ensureCartSession resumes the shopper's session, or mints one when the
// cookie is missing or unknown, and re-issues the cookie with a fresh expiry.
func (h *Handler) ensureCartSession(w http.ResponseWriter, r *http.Request) (cartSessionId string, ok bool) {
	cartSessionId, err := h.cs.ResumeCartSession(r.Context(), h.cartSession(r))
	if err != nil {
		WriteErrorResponse(w, err)
		return "", false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookie,
		Value:    cartSessionId,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(h.ttl),
	})
	return cartSessionId, true
}

// readCartSession is ensureCartSession for reads: visitors without a cookie
// get no session.
func (h *Handler) readCartSession(w http.ResponseWriter, r *http.Request) (cartSessionId string, ok bool) {
	if h.cartSession(r) == "" {
		return "", true
	}
	return h.ensureCartSession(w, r)
}

// catalog

func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.cas.GetItems())
}

func (h *Handler) GetDeliveryOptions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.cas.GetDeliveryOptions())
}

func (h *Handler) GetReviews(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.cas.GetReviews())
}

// cart

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cartSessionId, ok := h.readCartSession(w, r)
	if !ok {
		return
	}
	cart, err := h.cs.GetCartItems(r.Context(), cartSessionId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeJSON(w, cart)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	req := entities.CartRequest{}
	if !h.decode(w, r, &req) {
		return
	}
	cartSessionId, ok := h.ensureCartSession(w, r)
	if !ok {
		return
	}
	cart, err := h.cs.AddCartItem(r.Context(), cartSessionId, req.ItemId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeJSON(w, cart)
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	req := entities.CartRequest{}
	if !h.decode(w, r, &req) {
		return
	}
	cartSessionId, ok := h.ensureCartSession(w, r)
	if !ok {
		return
	}
	cart, err := h.cs.SetCartItemQuantity(r.Context(), cartSessionId, req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeJSON(w, cart)
}

func (h *Handler) DeleteFromCart(w http.ResponseWriter, r *http.Request) {
	req := entities.CartRequest{}
	if !h.decode(w, r, &req) {
		return
	}
	cartSessionId, ok := h.ensureCartSession(w, r)
	if !ok {
		return
	}
	cart, err := h.cs.RemoveCartItem(r.Context(), cartSessionId, req.ItemId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeJSON(w, cart)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cartSessionId, ok := h.ensureCartSession(w, r)
	if !ok {
		return
	}
	cart, err := h.cs.ClearCart(r.Context(), cartSessionId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeJSON(w, cart)
}

func (h *Handler) OpenCart(w http.ResponseWriter, r *http.Request) {
	h.setCartOpen(w, r, true)
}

func (h *Handler) CloseCart(w http.ResponseWriter, r *http.Request) {
	h.setCartOpen(w, r, false)
}

func (h *Handler) setCartOpen(w http.ResponseWriter, r *http.Request, open bool) {
	cartSessionId, ok := h.ensureCartSession(w, r)
	if !ok {
		return
	}
	cart, err := h.cs.SetCartOpen(r.Context(), cartSessionId, open)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeJSON(w, cart)
}

// order form

func (h *Handler) GetOrderForm(w http.ResponseWriter, r *http.Request) {
	cartSessionId, ok := h.readCartSession(w, r)
	if !ok {
		return
	}
	form, err := h.cs.GetOrderForm(r.Context(), cartSessionId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeJSON(w, form)
}

func (h *Handler) UpdateOrderForm(w http.ResponseWriter, r *http.Request) {
	req := entities.OrderFormRequest{}
	if !h.decode(w, r, &req) {
		return
	}
	cartSessionId, ok := h.ensureCartSession(w, r)
	if !ok {
		return
	}
	form, err := h.cs.UpdateOrderForm(r.Context(), cartSessionId, req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeJSON(w, form)
}

// orders

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	cartSessionId, ok := h.readCartSession(w, r)
	if !ok {
		return
	}
	resp, err := h.ors.CreateOrder(r.Context(), cartSessionId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.logger.Info("order submitted", zap.Int("order_id", resp.OrderId))
	h.writeJSON(w, resp)
}

func (h *Handler) GetOrderById(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		WriteErrorResponse(w, models.ErrBadRequest)
		return
	}
	order, err := h.ors.GetOrderById(r.Context(), id)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeJSON(w, order)
}

// middleware

func (h *Handler) ErrorHandleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Error("panic occurred", zap.Any("panic", rec), zap.String("stacktrace", string(debug.Stack())))
				http.Error(w, "something went wrong, contact with service administration", http.StatusBadGateway)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Duration("took", time.Since(start)))
	})
}

func WriteErrorResponse(w http.ResponseWriter, err error) {
	resp := entities.ErrorResponse{Error: err.Error()}
	var missing *models.MissingRequiredFieldError
	if errors.As(err, &missing) {
		resp.Field = missing.Field
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotFoundError):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrNotAllowed):
		status = http.StatusNotAcceptable
	default:
		resp.Error = models.ErrServerError.Error()
	}

	jsonData, _ := json.Marshal(resp)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(jsonData)
}
