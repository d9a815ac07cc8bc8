package middleware

import (
	"github.com/gin-gonic/gin"

	"cvsec-backend/internal/admission"
	"cvsec-backend/internal/shared/metrics"
	"cvsec-backend/internal/shared/server/respond"
	"cvsec-backend/internal/shared/telemetry"
)

// admissionRetryAfterSeconds is the hint returned with an admission
// rejection. Rejection is instantaneous, so a short retry is reasonable.
const admissionRetryAfterSeconds = 1

// Admission gates the request on the concurrency limit. The ticket is
// released by defer when the rest of the chain unwinds, on every exit path
// including panics.
func Admission(gate *admission.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticket, ok := gate.TryAcquire()
		if !ok {
			telemetry.Warn("admission.rejected", map[string]any{
				"request_id": RequestIDFromContext(c),
				"limit":      gate.Limit(),
			})
			metrics.IncAdmissionRejected()
			respond.Unavailable(c, "ADMISSION_REJECTED", "Server is at capacity, retry shortly", admissionRetryAfterSeconds)
			return
		}
		defer ticket.Release()
		c.Next()
	}
}
