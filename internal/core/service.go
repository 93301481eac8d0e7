package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/adtran-import/internal/config"
	"github.com/JonMunkholm/adtran-import/internal/logging"
	"github.com/google/uuid"
)

// Service runs conversions for every frontend (web, CLI, terminal form).
type Service struct {
	limiter     *ConversionLimiter
	maxFileSize int64
	timeout     time.Duration
	now         func() time.Time
}

// NewService creates a Service using the upload settings from cfg.
func NewService(cfg config.UploadConfig) *Service {
	return &Service{
		limiter:     NewConversionLimiter(cfg.MaxConcurrent, cfg.MaxWaitTime),
		maxFileSize: cfg.MaxFileSize,
		timeout:     cfg.Timeout,
		now:         time.Now,
	}
}

// ListDevices returns the device catalog in display order.
func (s *Service) ListDevices() []DeviceDefinition {
	return Devices()
}

// MaxFileSize returns the upload size limit in bytes.
func (s *Service) MaxFileSize() int64 {
	if s.maxFileSize <= 0 {
		return DefaultMaxFileSize
	}
	return s.maxFileSize
}

// ConvertFile reads an inventory file and converts it for the requested
// device, location and company. The selections are validated before the
// file is read.
func (s *Service) ConvertFile(ctx context.Context, fileName string, r io.Reader, req ConversionRequest) (*ConversionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	id := uuid.New().String()
	logger := logging.WithFields(ctx,
		"conversion_id", id,
		"file", fileName,
		"device", req.DeviceID,
		"location", req.Location,
	)
	if args := RequesterFrom(ctx).logArgs(); len(args) > 0 {
		logger = logger.With(args...)
	}

	start := time.Now()
	logger.Info("conversion started")

	table, err := ReadTable(fileName, r, s.MaxFileSize())
	if err != nil {
		logger.Warn("conversion failed", "stage", "read", "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("conversion aborted: %w", err)
	}

	result, err := Convert(table, req, s.now())
	if err != nil {
		logger.Warn("conversion failed", "stage", "convert", "error", err)
		return nil, err
	}

	result.ID = id
	result.Duration = time.Since(start)

	for _, w := range result.Warnings {
		logger.Warn("row skipped", "line", w.Line, "reason", w.Reason)
	}
	logger.Info("conversion completed",
		"output", result.FileName,
		"rows", result.TotalRows,
		"records", len(result.Records),
		"skipped", result.Skipped(),
		"serial_column", result.Columns.Serial,
		"mac_column", result.Columns.MAC,
		"fsan_column", result.Columns.FSAN,
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

// ConvertPath is ConvertFile for a file on disk. Selections are still
// checked before the file is opened.
func (s *Service) ConvertPath(ctx context.Context, path string, req ConversionRequest) (*ConversionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	f, err := os.Open(path)
	if err != nil {
		return nil, &UnreadableFileError{FileName: name, Err: err}
	}
	defer f.Close()

	return s.ConvertFile(ctx, name, f, req)
}

// LimiterStatus returns the conversion limiter state.
func (s *Service) LimiterStatus() LimiterStatus {
	return s.limiter.Status()
}

// WaitForConversions blocks until in-flight conversions finish or ctx ends.
func (s *Service) WaitForConversions(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
