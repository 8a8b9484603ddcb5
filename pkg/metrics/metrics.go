// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filmorate_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	// Association Metrics
	AssociationChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_association_changes_total",
			Help: "Rows inserted, updated or deleted while reconciling associations",
		},
		[]string{"association", "op"},
	)
)

// Association labels.
const (
	AssociationGenre      = "film_genre"
	AssociationLike       = "like"
	AssociationFriendship = "friendship"
)

// RecordAssociationChanges adds the size of one applied delta.
func RecordAssociationChanges(association string, added, updated, removed int) {
	if added > 0 {
		AssociationChanges.WithLabelValues(association, "add").Add(float64(added))
	}
	if updated > 0 {
		AssociationChanges.WithLabelValues(association, "update").Add(float64(updated))
	}
	if removed > 0 {
		AssociationChanges.WithLabelValues(association, "remove").Add(float64(removed))
	}
}
