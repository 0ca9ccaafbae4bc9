package service

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"

	"telemetry_monitor/internal/models"
	"telemetry_monitor/internal/repository"

	"github.com/google/uuid"
)

// RejectionError is returned for a payload that failed validation and was
// recorded in the error buffer under EntryID.
type RejectionError struct {
	EntryID string
	Reason  error
}

func (e *RejectionError) Error() string { return e.Reason.Error() }
func (e *RejectionError) Unwrap() error { return e.Reason }

type TelemetryService struct {
	buffer repository.ErrorBuffer
	opts   TelemetryOptions
	now    func() time.Time
}

func NewTelemetryService(buffer repository.ErrorBuffer, opts TelemetryOptions) *TelemetryService {
	return &TelemetryService{buffer: buffer, opts: opts, now: time.Now}
}

// Ingest classifies in.Body. Rejected bodies are appended to the error buffer
// before returning; if that append fails the storage error is returned instead.
func (s *TelemetryService) Ingest(ctx context.Context, in IngestRequest) (models.Classification, error) {
	if s.opts.RequireContentType && !isJSONContentType(in.ContentType) {
		return models.Classification{}, s.reject(ctx, in.Body, badRequest("content type %q is not json", in.ContentType))
	}

	res, err := Classify(in.Body)
	if err != nil {
		return models.Classification{}, s.reject(ctx, in.Body, err)
	}
	return res, nil
}

func (s *TelemetryService) reject(ctx context.Context, body []byte, reason error) error {
	entry := models.ErrorEntry{
		EntryID:    uuid.NewString(),
		ReceivedAt: s.now().UTC(),
		Raw:        string(body),
	}
	if err := s.buffer.Append(ctx, entry); err != nil {
		return fmt.Errorf("record rejected payload: %w", err)
	}
	return &RejectionError{EntryID: entry.EntryID, Reason: reason}
}

// isJSONContentType accepts application/json and any +json media type.
func isJSONContentType(header string) bool {
	if header == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// IsBadRequest reports whether err is a client validation failure.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}
