package services

import (
	"context"
	"path/filepath"
	"strings"

	"procurehub/internal/core/domain"
)

// MaxUploadSize is the largest accepted plan file
const MaxUploadSize = 10 * 1024 * 1024

var allowedMimeTypes = map[string]bool{
	"application/pdf":   true,
	"image/vnd.dwg":     true,
	"application/acad":  true,
	"application/dwg":   true,
	"application/x-dwg": true,
	"image/vnd.dxf":     true,
	"application/dxf":   true,
	"image/x-dxf":       true,
}

var allowedExtensions = map[string]string{
	".pdf": "application/pdf",
	".dwg": "image/vnd.dwg",
	".dxf": "image/vnd.dxf",
}

var genericMimeTypes = map[string]bool{
	"":                         true,
	"application/octet-stream": true,
	"binary/octet-stream":      true,
}

// UploadService validates plan files. No bytes are stored.
type UploadService struct {
	env Env
}

// NewUploadService creates a new upload service
func NewUploadService(env Env) *UploadService {
	return &UploadService{env: env}
}

// FileUpload describes an uploaded file
type FileUpload struct {
	Name     string
	MimeType string
	Size     int64
	Category string
}

// UploadFile validates the file and returns its fabricated metadata
func (s *UploadService) UploadFile(ctx context.Context, f FileUpload) (*domain.PlanFile, error) {
	if err := s.env.begin(ctx, "UploadFile"); err != nil {
		return nil, err
	}

	name := filepath.Base(strings.TrimSpace(f.Name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, domain.Validationf("file name is required")
	}

	mimeType, err := resolveMimeType(name, f.MimeType)
	if err != nil {
		return nil, err
	}

	switch {
	case f.Size <= 0:
		return nil, domain.ErrEmptyFile
	case f.Size > MaxUploadSize:
		return nil, domain.ErrFileTooLarge
	}

	id := s.env.newID()
	return &domain.PlanFile{
		ID:         id,
		Name:       name,
		Type:       mimeType,
		Size:       f.Size,
		URL:        "/uploads/" + id + "/" + name,
		Category:   f.Category,
		UploadedAt: s.env.now(),
	}, nil
}

func resolveMimeType(name, declared string) (string, error) {
	mimeType := strings.ToLower(strings.TrimSpace(declared))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if allowedMimeTypes[mimeType] {
		return mimeType, nil
	}
	// browsers often send an empty or generic type for CAD files
	if genericMimeTypes[mimeType] {
		if byExt, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]; ok {
			return byExt, nil
		}
	}
	return "", domain.ErrUnsupportedFileType
}
