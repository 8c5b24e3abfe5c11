package routes

import (
	"net/http"

	"mcsons/auth"
	"mcsons/cart"
	"mcsons/contact"
	"mcsons/middleware"
	"mcsons/orders"
	"mcsons/products"
	"mcsons/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router, _ *ratelim.RateLimiter) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rateLimiter.Limit(auth.Register))
	router.POST("/api/auth/login", rateLimiter.Limit(auth.Login))
	router.POST("/api/auth/admin/login", rateLimiter.Limit(auth.AdminLogin))
	router.POST("/api/auth/request-otp", rateLimiter.Limit(auth.RequestOTPHandler))
	router.POST("/api/auth/verify-otp", rateLimiter.Limit(auth.VerifyOTPHandler))

	router.GET("/api/auth/profile", middleware.Authenticate(auth.GetProfile))
	router.PUT("/api/auth/profile", middleware.Authenticate(auth.UpdateProfile))
	router.DELETE("/api/auth/account", middleware.Authenticate(auth.DeleteAccount))
}

func AddProductRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/products", rateLimiter.Limit(products.GetProducts))
	router.GET("/api/products/featured", rateLimiter.Limit(products.GetFeaturedProducts))
	router.GET("/api/products/categories", products.GetCategories)
	router.GET("/api/products/product/:id", products.GetProduct)
	router.POST("/api/products/product/:id/reviews", middleware.Authenticate(products.AddReview))

	router.POST("/api/products", middleware.RequireAdmin(products.CreateProduct))
	router.PUT("/api/products/product/:id", middleware.RequireAdmin(products.UpdateProduct))
	router.DELETE("/api/products/product/:id", middleware.RequireAdmin(products.DeleteProduct))
}

func AddCartRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.POST("/api/cart/add", rateLimiter.Limit(middleware.Authenticate(cart.AddToCart)))
	router.PUT("/api/cart/update", middleware.Authenticate(cart.UpdateCartItem))
	router.POST("/api/cart/remove", middleware.Authenticate(cart.RemoveFromCart))
	router.DELETE("/api/cart/clear", middleware.Authenticate(cart.ClearCart))
}

func AddOrderRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	// Order ids nest under /order/ because httprouter cannot mix a :id
	// segment with the static siblings (my-orders, returns, ...).
	router.POST("/api/orders", rateLimiter.Limit(middleware.Authenticate(orders.CreateOrder)))
	router.GET("/api/orders/my-orders", middleware.Authenticate(orders.GetMyOrders))
	router.GET("/api/orders/user/:userId", middleware.Authenticate(orders.GetOrdersByUser))
	router.GET("/api/orders/order/:id", middleware.Authenticate(orders.GetOrder))
	router.PUT("/api/orders/order/:id/cancel", middleware.Authenticate(orders.CancelOrder))
	router.GET("/api/orders/order/:id/receipt", middleware.Authenticate(orders.DownloadReceipt))
	router.POST("/api/orders/order/:id/return-exchange", rateLimiter.Limit(middleware.Authenticate(orders.RequestReturnExchange)))

	router.GET("/api/orders", middleware.RequireAdmin(orders.GetOrdersForAdmin))
	router.GET("/api/orders/all", middleware.RequireAdmin(orders.GetAllOrders))
	router.GET("/api/orders/analytics", middleware.RequireAdmin(orders.GetOrderAnalytics))
	router.PUT("/api/orders/order/:id/accept", middleware.RequireAdmin(orders.AcceptOrder))
	router.PUT("/api/orders/order/:id/tracking", middleware.RequireAdmin(orders.UpdateTracking))
	router.PUT("/api/orders/order/:id/status", middleware.RequireAdmin(orders.UpdateOrderStatus))
	router.DELETE("/api/orders/order/:id", middleware.RequireAdmin(orders.DeleteOrder))

	router.GET("/api/orders/returns", middleware.RequireAdmin(orders.GetReturnRequests))
	router.PUT("/api/orders/returns/:requestId/status", middleware.RequireAdmin(orders.UpdateReturnStatus))
}

func AddContactRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/contact", rateLimiter.Limit(contact.SubmitMessage))
	router.GET("/api/admin/contact", middleware.RequireAdmin(contact.GetMessages))
}

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	AddAuthRoutes(router, rateLimiter)
	AddProductRoutes(router, rateLimiter)
	AddCartRoutes(router, rateLimiter)
	AddOrderRoutes(router, rateLimiter)
	AddContactRoutes(router, rateLimiter)
	AddStaticRoutes(router, rateLimiter)
}
