package service

import (
	"context"
	"io"
)

// FileUploadService stores bytes and hands back a public URL.
type FileUploadService interface {
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
	Close() error
}
