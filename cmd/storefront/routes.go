package main

import (
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type routeHandlers struct {
	user     *handlers.UserHandler
	product  *handlers.ProductHandler
	cart     *handlers.CartHandler
	address  *handlers.AddressHandler
	checkout *handlers.CheckoutHandler
	order    *handlers.OrderHandler
	admin    *handlers.AdminHandler
	health   http.Handler
}

func newRouter(h routeHandlers, auth *middleware.AuthMiddleware, serviceName string) http.Handler {

	routerMux := http.NewServeMux()

	routerMux.HandleFunc("POST /api/v1/users/register", h.user.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", h.user.Login())
	routerMux.HandleFunc("GET /api/v1/users/profile", auth.Authenticate(h.user.Profile()))

	routerMux.HandleFunc("GET /api/v1/products", h.product.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", h.product.GetProduct())

	routerMux.HandleFunc("GET /api/v1/cart", auth.Authenticate(h.cart.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", auth.Authenticate(h.cart.AddItem()))
	routerMux.HandleFunc("PATCH /api/v1/cart/items/{productId}", auth.Authenticate(h.cart.UpdateItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{productId}", auth.Authenticate(h.cart.RemoveItem()))

	routerMux.HandleFunc("GET /api/v1/addresses", auth.Authenticate(h.address.ListAddresses()))
	routerMux.HandleFunc("POST /api/v1/addresses", auth.Authenticate(h.address.CreateAddress()))
	routerMux.HandleFunc("GET /api/v1/addresses/{id}", auth.Authenticate(h.address.GetAddress()))
	routerMux.HandleFunc("PATCH /api/v1/addresses/{id}", auth.Authenticate(h.address.UpdateAddress()))
	routerMux.HandleFunc("DELETE /api/v1/addresses/{id}", auth.Authenticate(h.address.DeleteAddress()))
	routerMux.HandleFunc("POST /api/v1/addresses/{id}/default", auth.Authenticate(h.address.SetDefault()))

	routerMux.HandleFunc("POST /api/v1/checkout", auth.Authenticate(h.checkout.PlaceOrder()))
	routerMux.HandleFunc("GET /api/v1/checkout/summary", auth.Authenticate(h.checkout.GetSummary()))
	routerMux.HandleFunc("GET /api/v1/checkout/payment-methods", auth.Authenticate(h.checkout.PaymentMethods()))
	routerMux.HandleFunc("GET /api/v1/checkout/orders/{id}", auth.Authenticate(h.checkout.GetOrderDetails()))

	routerMux.HandleFunc("GET /api/v1/orders", auth.Authenticate(h.order.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", auth.Authenticate(h.order.GetOrder()))

	routerMux.HandleFunc("GET /api/v1/admin/orders", auth.RequireAdmin(h.admin.SearchOrders()))
	routerMux.HandleFunc("GET /api/v1/admin/orders/{id}", auth.RequireAdmin(h.admin.GetOrder()))
	routerMux.HandleFunc("PATCH /api/v1/admin/orders/{id}/status", auth.RequireAdmin(h.admin.UpdateOrderStatus()))
	routerMux.HandleFunc("PATCH /api/v1/admin/orders/{id}/tracking", auth.RequireAdmin(h.admin.UpdateTracking()))
	routerMux.HandleFunc("GET /api/v1/admin/orders/{id}/notifications", auth.RequireAdmin(h.admin.ListNotifications()))
	routerMux.HandleFunc("POST /api/v1/admin/products", auth.RequireAdmin(h.admin.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/admin/products/{id}", auth.RequireAdmin(h.admin.UpdateProduct()))

	if h.health != nil {
		routerMux.Handle("GET /healthz", h.health)
	}
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining, outermost first: recoverer, logging, tracing, metrics.
	// metrics sits directly on the mux so it can read the matched pattern.
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, serviceName)
	handler = middleware.Logging(handler)
	handler = chiMiddleware.Recoverer(handler)

	return handler
}
