// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package upload stores images posted by the admin under the public uploads
// directory and returns the URL they are served from.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/apperr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/constants"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/ctxutil"
	"github.com/dwikiramdani/kiramdashboard/pkg/uuid"
)

// URLPrefix is the public path uploaded files are served under.
const URLPrefix = constants.UploadURLPrefix

// FieldFile is the multipart field carrying the upload.
const FieldFile = "file"

// allowedTypes maps accepted image types to the extension they are stored with.
// SVG is left out because it can carry script.
var allowedTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/avif": ".avif",
}

// Upload is the result of a stored file.
type Upload struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type Service struct {
	dir      string
	maxBytes int64
}

// NewService stores files in dir, rejecting anything above maxBytes.
func NewService(dir string, maxBytes int64) *Service {
	return &Service{dir: dir, maxBytes: maxBytes}
}

// MaxBytes returns the per-file size limit.
func (service *Service) MaxBytes() int64 {
	return service.maxBytes
}

// Store sniffs the content of src and writes it under a fresh random name.
// The client's filename and declared content type are ignored.
func (service *Service) Store(context context.Context, src io.ReadSeeker) (*Upload, error) {
	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("upload: sniff: %w", err))
	}

	contentType := detected.String()
	for parent := detected; parent != nil; parent = parent.Parent() {
		if _, ok := allowedTypes[parent.String()]; ok {
			contentType = parent.String()
			break
		}
	}

	extension, ok := allowedTypes[contentType]
	if !ok {
		return nil, apperr.UnsupportedMediaType("Only image files are allowed")
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, apperr.Internal(fmt.Errorf("upload: rewind: %w", err))
	}

	if err := os.MkdirAll(service.dir, 0o750); err != nil {
		return nil, apperr.Internal(fmt.Errorf("upload: create dir: %w", err))
	}

	name := uuid.New() + extension
	path := filepath.Join(service.dir, name)

	size, err := writeFile(path, io.LimitReader(src, service.maxBytes+1))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if size > service.maxBytes {
		_ = os.Remove(path)
		return nil, tooLarge(service.maxBytes)
	}

	ctxutil.GetLogger(context).InfoContext(context, "file_uploaded",
		slog.String("name", name),
		slog.String("content_type", contentType),
		slog.Int64("size", size),
	)

	return &Upload{URL: URLPrefix + name, ContentType: contentType, Size: size}, nil
}

func writeFile(path string, src io.Reader) (int64, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("upload: create: %w", err)
	}

	size, copyErr := io.Copy(file, src)
	closeErr := file.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("upload: write: %w", err)
	}
	return size, nil
}

func tooLarge(maxBytes int64) *apperr.AppError {
	return apperr.PayloadTooLarge(fmt.Sprintf("File exceeds the %d byte limit", maxBytes))
}
