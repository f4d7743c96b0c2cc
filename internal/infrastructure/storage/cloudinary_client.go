package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryClient struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryClient(cloudName, apiKey, apiSecret string) (*CloudinaryClient, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	return &CloudinaryClient{cld: cld}, nil
}

// UploadFile streams file into folder and returns its HTTPS delivery URL.
func (c *CloudinaryClient) UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error) {
	result, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("failed to upload file: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("no secure URL returned")
	}
	return result.SecureURL, nil
}

func (c *CloudinaryClient) DeleteFile(ctx context.Context, fileURL string) error {
	publicID, err := publicIDFromURL(fileURL)
	if err != nil {
		return err
	}
	if _, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (c *CloudinaryClient) Close() error {
	return nil
}

// publicIDFromURL turns .../image/upload/v123/folder/name.jpg into folder/name.
func publicIDFromURL(fileURL string) (string, error) {
	const marker = "/upload/"
	idx := strings.Index(fileURL, marker)
	if idx < 0 {
		return "", fmt.Errorf("invalid cloudinary URL format")
	}

	rest := fileURL[idx+len(marker):]
	if slash := strings.Index(rest, "/"); slash > 0 && rest[0] == 'v' && isDigits(rest[1:slash]) {
		rest = rest[slash+1:]
	}
	rest = strings.TrimSuffix(rest, path.Ext(rest))
	if rest == "" {
		return "", fmt.Errorf("invalid cloudinary URL format")
	}
	return rest, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
