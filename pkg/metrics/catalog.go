package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics records counters for the video write path.
type CatalogMetrics struct {
	opDuration    *prometheus.HistogramVec
	mediaStored   *prometheus.CounterVec
	mediaDeleted  *prometheus.CounterVec
	rollbacks     *prometheus.CounterVec
	eventsEmitted *prometheus.CounterVec
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	opDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_operation_duration_seconds",
		Help:    "Duration of catalog write operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	mediaStored := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_video_media_stored_total",
		Help: "Media objects stored per slot.",
	}, []string{"slot"})
	mediaDeleted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_video_media_deleted_total",
		Help: "Media objects deleted per slot.",
	}, []string{"slot"})
	rollbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_video_rollbacks_total",
		Help: "Video write transactions rolled back.",
	}, []string{"operation"})
	eventsEmitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_media_events_emitted_total",
		Help: "Stored-media events dispatched to the notifier.",
	}, []string{"slot"})
	reg.MustRegister(opDuration, mediaStored, mediaDeleted, rollbacks, eventsEmitted)
	return &CatalogMetrics{
		opDuration:    opDuration,
		mediaStored:   mediaStored,
		mediaDeleted:  mediaDeleted,
		rollbacks:     rollbacks,
		eventsEmitted: eventsEmitted,
	}
}

// ObserveOperation records the duration for the named write operation.
func (c *CatalogMetrics) ObserveOperation(operation string, duration time.Duration) {
	if c == nil || c.opDuration == nil {
		return
	}
	c.opDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// IncMediaStored increments the stored counter for the slot.
func (c *CatalogMetrics) IncMediaStored(slot string) {
	if c == nil || c.mediaStored == nil {
		return
	}
	c.mediaStored.WithLabelValues(slot).Inc()
}

// IncMediaDeleted increments the deleted counter for the slot.
func (c *CatalogMetrics) IncMediaDeleted(slot string) {
	if c == nil || c.mediaDeleted == nil {
		return
	}
	c.mediaDeleted.WithLabelValues(slot).Inc()
}

// IncRollback increments the rollback counter for the operation.
func (c *CatalogMetrics) IncRollback(operation string) {
	if c == nil || c.rollbacks == nil {
		return
	}
	c.rollbacks.WithLabelValues(operation).Inc()
}

// IncEventEmitted increments the dispatched-event counter for the slot.
func (c *CatalogMetrics) IncEventEmitted(slot string) {
	if c == nil || c.eventsEmitted == nil {
		return
	}
	c.eventsEmitted.WithLabelValues(slot).Inc()
}
