package analyses

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cvsec-backend/internal/shared/metrics"
	"cvsec-backend/internal/shared/server/respond"
)

// writeFailure maps a terminal failure to the wire envelope. Retryable kinds
// carry a Retry-After hint; everything unclassified collapses to a generic 500.
func writeFailure(c *gin.Context, f *Failure) {
	c.Set("analysisOutcome", f.Kind)

	switch f.Kind {
	case KindInvalidRequest, KindUnreadableDocument, KindUpstreamRejected:
		metrics.IncAnalysisFailed()
		respond.Error(c, http.StatusBadRequest, f.Kind, f.Message, f.Details)
	case KindExhaustedRetries:
		metrics.IncAnalysisFailed()
		respond.Unavailable(c, f.Kind, f.Message, RetryAfterExhausted)
	case KindTimedOut:
		metrics.IncAnalysisTimedOut()
		respond.Unavailable(c, f.Kind, f.Message, RetryAfterTimedOut)
	default:
		metrics.IncAnalysisFailed()
		respond.Error(c, http.StatusInternalServerError, KindInternalFault, "Internal server error", nil)
	}
}

func writeReport(c *gin.Context, report *Report) {
	c.Set("analysisOutcome", "SUCCEEDED")
	metrics.IncAnalysisCompleted()
	respond.OK(c, report)
}
