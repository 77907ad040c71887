// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "videoplayer"

var (
	// UploadsTotal tracks upload attempts.
	// Labels:
	//   - result: accepted, rejected
	//   - reason: ok, oversize, unsupported_type, missing_file, backend_error
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Total number of upload attempts",
		},
		[]string{"result", "reason"},
	)

	// StorageOperationsTotal tracks object-storage calls.
	// Labels:
	//   - operation: put, delete
	//   - status: success, error
	StorageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_operations_total",
			Help:      "Total number of object storage operations",
		},
		[]string{"operation", "status"},
	)

	// OrphanedObjectsTotal counts objects left behind in storage after a
	// failed backend delete. The record is removed regardless, so these
	// objects have no recoverable reference.
	OrphanedObjectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orphaned_objects_total",
			Help:      "Objects orphaned in storage by failed backend deletes",
		},
	)

	// SingleflightRequestsTotal tracks read coalescing in the cached
	// service.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)

	// CacheOperationsTotal tracks record cache operations.
	// Labels:
	//   - operation: get, set, delete
	//   - status: hit, miss, success, error
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		},
		[]string{"operation", "status"},
	)
)

// Upload result constants.
const (
	UploadAccepted = "accepted"
	UploadRejected = "rejected"
)

// Upload reason constants.
const (
	ReasonOK              = "ok"
	ReasonOversize        = "oversize"
	ReasonUnsupportedType = "unsupported_type"
	ReasonMissingFile     = "missing_file"
	ReasonBackendError    = "backend_error"
)

// Storage operation constants.
const (
	StorageOpPut    = "put"
	StorageOpDelete = "delete"
)

// Storage status constants.
const (
	StorageStatusSuccess = "success"
	StorageStatusError   = "error"
)

// Cache operation constants.
const (
	CacheOpGet    = "get"
	CacheOpSet    = "set"
	CacheOpDelete = "delete"
)

// Cache status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)
