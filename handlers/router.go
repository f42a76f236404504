package handlers

import "github.com/gorilla/mux"

func NewRouter(ha *Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(ha.ErrorHandleMiddleware)
	router.Use(ha.LoggingMiddleware)

	router.HandleFunc("/health", ha.Health).Methods("GET")

	router.HandleFunc("/catalog", ha.GetCatalog).Methods("GET")
	router.HandleFunc("/delivery-options", ha.GetDeliveryOptions).Methods("GET")
	router.HandleFunc("/reviews", ha.GetReviews).Methods("GET")

	router.HandleFunc("/cart", ha.GetCart).Methods("GET")
	router.HandleFunc("/cart", ha.AddToCart).Methods("POST")
	router.HandleFunc("/cart", ha.UpdateCartItem).Methods("PUT")
	router.HandleFunc("/cart", ha.DeleteFromCart).Methods("DELETE")
	router.HandleFunc("/cart/clear", ha.ClearCart).Methods("POST")
	router.HandleFunc("/cart/open", ha.OpenCart).Methods("POST")
	router.HandleFunc("/cart/close", ha.CloseCart).Methods("POST")

	router.HandleFunc("/order/form", ha.GetOrderForm).Methods("GET")
	router.HandleFunc("/order/form", ha.UpdateOrderForm).Methods("PUT")
	router.HandleFunc("/order", ha.CreateOrder).Methods("POST")
	router.HandleFunc("/orders/{id:[0-9]+}", ha.GetOrderById).Methods("GET")

	return router
}
