// Package extract turns a staged PDF into text plus quality signals. It
// wraps github.com/ledongthuc/pdf and normalizes every failure into
// ErrUnreadable; judging whether low-confidence text is usable is left to
// the analysis layer.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"cvsec-backend/internal/staging"
)

// ErrUnreadable marks a document the extractor could not get usable text
// from (corrupt file, image-only scan, empty output).
var ErrUnreadable = errors.New("document unreadable")

// Result is the outcome of one extraction. Read-only after creation.
type Result struct {
	Text       string
	Confidence float64
	PageCount  int
	CharCount  int
	Language   string
}

// FromStaged reads the staged document and extracts its text.
func FromStaged(ctx context.Context, handle *staging.Handle) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	body, err := handle.Open(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("open staged document: %w", err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return Result{}, fmt.Errorf("read staged document: %w", err)
	}

	return FromBytes(raw)
}

// FromBytes extracts text from an in-memory PDF payload. The pdf library
// panics on some malformed inputs, so those are recovered into ErrUnreadable.
func FromBytes(data []byte) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{}
			err = fmt.Errorf("%w: %v", ErrUnreadable, r)
		}
	}()

	if len(data) == 0 {
		return Result{}, fmt.Errorf("%w: empty document", ErrUnreadable)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	pageCount := reader.NumPage()
	plain, err := reader.GetPlainText()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	text := buf.String()
	if len(bytes.TrimSpace([]byte(text))) == 0 {
		return Result{}, fmt.Errorf("%w: no extractable text", ErrUnreadable)
	}

	return Result{
		Text:       text,
		Confidence: Confidence(text, pageCount),
		PageCount:  pageCount,
		CharCount:  len(text),
		Language:   DetectLanguage(text),
	}, nil
}
