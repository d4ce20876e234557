// Package metrics exposes prometheus instruments for the fulfillment core.
// Collectors register on the default registry; the HTTP adapter serves them
// on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersCanceledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_orders_canceled_total",
		Help: "Total number of orders canceled",
	})

	PlansComputedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_plans_computed_total",
		Help: "Total number of fulfillment plans computed, by strategy",
	}, []string{"strategy"})

	ReservationConflictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_reservation_conflicts_total",
		Help: "Total number of stock reservations rejected by the ledger",
	}, []string{"reason"})

	ShipmentsShippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_shipments_shipped_total",
		Help: "Total number of shipments shipped",
	})

	BackorderUnitsAllocatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_backorder_units_allocated_total",
		Help: "Total number of backordered inventory units flipped to on hand",
	})
)
