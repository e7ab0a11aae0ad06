package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PurchasesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "purchases_created_total",
		Help: "Total number of completed purchases",
	})

	PurchasesFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "purchases_failed_total",
		Help: "Total number of rejected purchases",
	}, []string{"reason"})

	RentalsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentals_created_total",
		Help: "Total number of confirmed rentals",
	})

	RentalsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentals_failed_total",
		Help: "Total number of rejected rentals",
	}, []string{"reason"})

	RentalConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rental_conflicts_total",
		Help: "Total number of rentals rejected due to date conflicts",
	})

	AggregationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transaction_aggregations_total",
		Help: "Total number of transaction history aggregations",
	})

	AggregationsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transaction_aggregations_failed_total",
		Help: "Total number of failed transaction history aggregations",
	}, []string{"reason"})

	AggregationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "transaction_aggregation_latency_seconds",
		Help:    "Latency of transaction history aggregation",
		Buckets: prometheus.DefBuckets,
	})

	ProductCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "product_cache_hits_total",
		Help: "Total number of product lookups served from Redis",
	})

	ProductCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "product_cache_misses_total",
		Help: "Total number of product lookups that fell through to the database",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
