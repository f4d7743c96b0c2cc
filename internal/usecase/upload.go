package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"hairconnect/internal/domain/service"
	"hairconnect/pkg/errors"
	"hairconnect/pkg/logger"
)

const (
	MaxImageSize     = 5 << 20
	MaxServiceImages = 10

	FolderProfile      = "hairdresser-connect/profile"
	FolderServices     = "hairdresser-connect/services"
	FolderVerification = "hairdresser-connect/verification"
)

// Upload is one multipart file. Size is the declared size in bytes.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

func validateImage(field string, u *Upload) error {
	if !strings.HasPrefix(u.ContentType, "image/") {
		return errors.BadRequest(fmt.Sprintf("%s must be an image", field), nil)
	}
	if u.Size > MaxImageSize {
		return errors.BadRequest(fmt.Sprintf("%s exceeds the 5MB limit", field), nil)
	}
	return nil
}

func uploadImage(ctx context.Context, uploader service.FileUploadService, folder string, u *Upload) (string, error) {
	if uploader == nil {
		return "", errors.Internal("File storage is not configured", nil)
	}

	url, err := uploader.UploadFile(ctx, u.Reader, u.ContentType, folder)
	if err != nil {
		logger.Error("Failed to upload %s to %s: %v", u.Filename, folder, err)
		return "", errors.BadGateway("UPLOAD_FAILED", "Failed to upload file", err)
	}
	return url, nil
}
