package service

import (
	"context"
	"fmt"

	"telemetry_monitor/internal/repository"
)

type ErrorLogService struct {
	buffer repository.ErrorBuffer
}

func NewErrorLogService(buffer repository.ErrorBuffer) *ErrorLogService {
	return &ErrorLogService{buffer: buffer}
}

// List returns rejected payloads oldest first, never nil.
func (s *ErrorLogService) List(ctx context.Context) ([]string, error) {
	entries, err := s.buffer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list error buffer: %w", err)
	}
	if entries == nil {
		entries = []string{}
	}
	return entries, nil
}

func (s *ErrorLogService) Count(ctx context.Context) (int, error) {
	n, err := s.buffer.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count error buffer: %w", err)
	}
	return n, nil
}

// Clear empties the buffer and returns how many entries were removed.
func (s *ErrorLogService) Clear(ctx context.Context) (int, error) {
	n, err := s.buffer.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear error buffer: %w", err)
	}
	return n, nil
}
