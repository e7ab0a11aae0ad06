package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"teebay-service/internal/service"
	"teebay-service/internal/store"
	"teebay-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	products     *service.ProductService
	transactions *service.TransactionService
}

// NewHandler creates a new HTTP handler
func NewHandler(products *service.ProductService, transactions *service.TransactionService) *Handler {
	return &Handler{
		products:     products,
		transactions: transactions,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.POST("/products", h.createProduct)
		v1.GET("/products/:id", h.getProduct)
		v1.PATCH("/products/:id", h.updateProduct)
		v1.GET("/products/:id/booked-dates", h.bookedDates)

		v1.GET("/purchases", h.listPurchases)
		v1.POST("/purchases", h.createPurchase)
		v1.GET("/rentals", h.listRentals)
		v1.POST("/rentals", h.createRental)

		v1.GET("/users/:id/transactions", h.userTransactions)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// listProducts handles listing all products, optionally filtered by seller
func (h *Handler) listProducts(c *gin.Context) {
	if sellerStr := c.Query("seller_id"); sellerStr != "" {
		sellerID, err := strconv.ParseInt(sellerStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid seller ID"})
			return
		}
		products, err := h.products.ListProductsBySeller(c.Request.Context(), sellerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
		return
	}

	products, err := h.products.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// createProduct handles listing a new product
func (h *Handler) createProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	product, err := h.products.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create product", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// getProduct handles get product by ID
func (h *Handler) getProduct(c *gin.Context) {
	productID, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.products.GetProduct(c.Request.Context(), productID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Failed to get product", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, product)
}

// updateProduct handles partial product updates
func (h *Handler) updateProduct(c *gin.Context) {
	productID, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	product, err := h.products.UpdateProduct(c.Request.Context(), productID, &req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, store.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Failed to update product", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, product)
}

// bookedDates handles listing reserved periods for a product
func (h *Handler) bookedDates(c *gin.Context) {
	productID, ok := pathID(c)
	if !ok {
		return
	}

	ranges, err := h.transactions.BookedDates(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list booked dates", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booked_dates": ranges})
}

// listPurchases handles listing all purchase records
func (h *Handler) listPurchases(c *gin.Context) {
	purchases, err := h.transactions.ListPurchases(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list purchases", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchases": purchases})
}

// createPurchase handles buying a product
func (h *Handler) createPurchase(c *gin.Context) {
	var req service.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	purchase, err := h.transactions.CreatePurchase(c.Request.Context(), &req)
	if err != nil {
		c.JSON(transactionStatus(err), gin.H{"error": "Failed to create purchase", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, purchase)
}

// listRentals handles listing all rental records
func (h *Handler) listRentals(c *gin.Context) {
	rentals, err := h.transactions.ListRentals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rentals", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rentals": rentals})
}

// createRental handles booking a rental period
func (h *Handler) createRental(c *gin.Context) {
	var req service.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	rental, err := h.transactions.CreateRental(c.Request.Context(), &req)
	if err != nil {
		c.JSON(transactionStatus(err), gin.H{"error": "Failed to create rental", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, rental)
}

// userTransactions handles the aggregated bought/sold/borrowed/lent view
func (h *Handler) userTransactions(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	history, err := h.transactions.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate transactions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, history)
}

// transactionStatus maps transaction rejections to HTTP statuses
func transactionStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDateConflict), errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, service.ErrNotForSale),
		errors.Is(err, service.ErrNotForRent),
		errors.Is(err, service.ErrOwnProduct):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// pathID parses the numeric :id path parameter, writing the error response
// itself on failure
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return id, true
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
