package services

import (
	"testing"

	"procurehub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadService_UploadFile(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name     string
		upload   FileUpload
		wantType string
		wantName string
		wantErr  error
	}{
		{name: "pdf", upload: FileUpload{Name: "plans.pdf", MimeType: "application/pdf", Size: 1024}, wantType: "application/pdf", wantName: "plans.pdf"},
		{name: "mime with params", upload: FileUpload{Name: "plans.pdf", MimeType: "Application/PDF; charset=binary", Size: 1024}, wantType: "application/pdf", wantName: "plans.pdf"},
		{name: "dwg by extension", upload: FileUpload{Name: "floor.DWG", MimeType: "application/octet-stream", Size: 1024}, wantType: "image/vnd.dwg", wantName: "floor.DWG"},
		{name: "dxf without mime", upload: FileUpload{Name: "site.dxf", Size: 1024}, wantType: "image/vnd.dxf", wantName: "site.dxf"},
		{name: "path stripped", upload: FileUpload{Name: "../../etc/plan.pdf", MimeType: "application/pdf", Size: 1}, wantType: "application/pdf", wantName: "plan.pdf"},
		{name: "exactly max", upload: FileUpload{Name: "big.pdf", MimeType: "application/pdf", Size: MaxUploadSize}, wantType: "application/pdf", wantName: "big.pdf"},
		{name: "unsupported", upload: FileUpload{Name: "setup.exe", MimeType: "application/x-msdownload", Size: 10}, wantErr: domain.ErrUnsupportedFileType},
		{name: "text disguised as pdf", upload: FileUpload{Name: "notes.pdf", MimeType: "text/plain", Size: 10}, wantErr: domain.ErrUnsupportedFileType},
		{name: "image", upload: FileUpload{Name: "photo.png", MimeType: "image/png", Size: 10}, wantErr: domain.ErrUnsupportedFileType},
		{name: "empty", upload: FileUpload{Name: "plans.pdf", MimeType: "application/pdf"}, wantErr: domain.ErrEmptyFile},
		{name: "too large", upload: FileUpload{Name: "plans.pdf", MimeType: "application/pdf", Size: MaxUploadSize + 1}, wantErr: domain.ErrFileTooLarge},
		{name: "no name", upload: FileUpload{MimeType: "application/pdf", Size: 1}, wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := f.svc.Uploads.UploadFile(f.ctx, tt.upload)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, file.Type)
			assert.Equal(t, tt.wantName, file.Name)
			assert.Equal(t, "/uploads/"+file.ID+"/"+tt.wantName, file.URL)
			assert.Equal(t, f.clock.Now(), file.UploadedAt)
		})
	}
}
