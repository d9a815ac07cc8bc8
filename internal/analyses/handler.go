package analyses

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"cvsec-backend/internal/extract"
	"cvsec-backend/internal/llm"
	"cvsec-backend/internal/shared/metrics"
	"cvsec-backend/internal/shared/server/middleware"
	"cvsec-backend/internal/shared/server/respond"
	"cvsec-backend/internal/shared/telemetry"
	"cvsec-backend/internal/shared/util"
	"cvsec-backend/internal/staging"
)

// multipartOverheadBytes is slack allowed on top of the file limit for
// multipart boundaries and the small form fields.
const multipartOverheadBytes = 64 << 10

var pdfMagic = []byte("%PDF-")

var roleTargetPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9 \-]*$`)

// Handler serves POST /analyze-cv.
type Handler struct {
	store    staging.Store
	orch     *Orchestrator
	maxBytes int64
	version  string

	now       func() time.Time
	extractFn func(ctx context.Context, handle *staging.Handle) (extract.Result, error)
}

func NewHandler(store staging.Store, orch *Orchestrator, maxBytes int64, version string) *Handler {
	return &Handler{
		store:     store,
		orch:      orch,
		maxBytes:  maxBytes,
		version:   version,
		now:       time.Now,
		extractFn: extract.FromStaged,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze-cv", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	started := h.now()
	requestID := middleware.RequestIDFromContext(c)
	metrics.IncAnalysisStarted()

	// Cheap size rejection off the declared length, before the multipart
	// body is parsed or anything is staged.
	if c.Request.ContentLength > h.maxBytes+multipartOverheadBytes {
		h.tooLarge(c, c.Request.ContentLength)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		writeFailure(c, newFailure(KindInvalidRequest, "file field is required and must be a multipart upload"))
		return
	}
	if ct := fileHeader.Header.Get("Content-Type"); ct != "application/pdf" {
		writeFailure(c, newFailure(KindInvalidRequest, "File must be a PDF (received content type: "+ct+")"))
		return
	}
	if fileHeader.Size > h.maxBytes {
		h.tooLarge(c, fileHeader.Size)
		return
	}

	roleTarget, ok := validRoleTarget(c.PostForm("role_target"))
	if !ok {
		writeFailure(c, newFailure(KindInvalidRequest, "role_target must be 3-100 characters of letters, digits, spaces or hyphens"))
		return
	}
	language, ok := validLanguage(c.PostForm("language"))
	if !ok {
		writeFailure(c, newFailure(KindInvalidRequest, "language must be one of: es, en"))
		return
	}

	data, err := readUpload(fileHeader, h.maxBytes)
	if err != nil {
		if errors.Is(err, errTooLarge) {
			h.tooLarge(c, fileHeader.Size)
			return
		}
		writeFailure(c, newFailure(KindInvalidRequest, "could not read uploaded file"))
		return
	}
	if len(data) == 0 {
		writeFailure(c, newFailure(KindInvalidRequest, "File is empty"))
		return
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		writeFailure(c, newFailure(KindInvalidRequest, "File must be a PDF"))
		return
	}

	handle, err := h.store.Stage(c.Request.Context(), data)
	if err != nil {
		telemetry.Error("staging.failed", map[string]any{
			"request_id": requestID,
			"error":      err.Error(),
		})
		writeFailure(c, newFailure(KindInternalFault, "Internal server error"))
		return
	}
	// Cleanup must still run when the request context is already canceled.
	defer handle.Discard(context.WithoutCancel(c.Request.Context()))

	extracted, err := h.extractFn(c.Request.Context(), handle)
	if err != nil {
		if errors.Is(err, extract.ErrUnreadable) {
			writeFailure(c, newFailure(KindUnreadableDocument, "Could not extract readable text from the document"))
			return
		}
		telemetry.Error("extract.failed", map[string]any{
			"request_id": requestID,
			"error":      err.Error(),
		})
		writeFailure(c, newFailure(KindInternalFault, "Internal server error"))
		return
	}

	fileName, nameErr := util.SanitizeFileName(fileHeader.Filename)
	if nameErr != nil {
		fileName = "upload.pdf"
	}
	telemetry.Info("analysis.accepted", map[string]any{
		"request_id":  requestID,
		"file_name":   fileName,
		"fingerprint": util.DocumentFingerprint(data),
		"file_bytes":  len(data),
		"pages":       extracted.PageCount,
		"chars":       extracted.CharCount,
		"confidence":  extracted.Confidence,
		"cv_language": extracted.Language,
		"language":    language,
	})

	report, failure := h.orch.Run(c.Request.Context(), requestID, llm.AnalyzeInput{
		CVText:           extracted.Text,
		TargetRole:       roleTarget,
		Language:         language,
		DetectedLanguage: extracted.Language,
		PageCount:        extracted.PageCount,
		Confidence:       extracted.Confidence,
	})
	if failure != nil {
		writeFailure(c, failure)
		return
	}

	finished := h.now()
	report.AnalysisMetadata = AnalysisMetadata{
		Timestamp:            finished.UTC(),
		ParsingConfidence:    extracted.Confidence,
		CVLanguage:           extracted.Language,
		AnalysisVersion:      h.version,
		ProcessingDurationMS: finished.Sub(started).Milliseconds(),
	}
	metrics.ObserveAnalysisDurationMs(float64(finished.Sub(started).Milliseconds()))
	writeReport(c, report)
}

func (h *Handler) tooLarge(c *gin.Context, sizeBytes int64) {
	c.Set("analysisOutcome", KindInvalidRequest)
	metrics.IncAnalysisFailed()
	respond.Error(c, http.StatusRequestEntityTooLarge, KindInvalidRequest,
		"File size exceeds the upload limit", gin.H{
			"max_bytes":      h.maxBytes,
			"received_bytes": sizeBytes,
		})
}

var errTooLarge = errors.New("upload too large")

func readUpload(fileHeader *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, errTooLarge
	}
	return data, nil
}

func validRoleTarget(raw string) (string, bool) {
	if raw == "" {
		return "", true
	}
	if len(raw) < 3 || len(raw) > 100 {
		return "", false
	}
	if !roleTargetPattern.MatchString(raw) {
		return "", false
	}
	return raw, true
}

func validLanguage(raw string) (string, bool) {
	switch raw {
	case "":
		return "es", true
	case "es", "en":
		return raw, true
	default:
		return "", false
	}
}
