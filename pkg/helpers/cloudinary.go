package helpers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryUploader stores diary images on Cloudinary. Entry image URLs
// are validated against the Cloudinary origin, so this is the only write
// path for them.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	Folder string
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryUploader{cld: cld, Folder: folder}, nil
}

// UploadImage uploads the file and returns its secure URL.
func (u *CloudinaryUploader) UploadImage(ctx context.Context, file multipart.File) (string, error) {
	b, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	res, err := u.cld.Upload.Upload(ctx, bytes.NewReader(b), uploader.UploadParams{
		Folder:       u.Folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return res.SecureURL, nil
}

// UploadImageFromHeader opens the multipart header and uploads it.
func (u *CloudinaryUploader) UploadImageFromHeader(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer func() { _ = f.Close() }()
	return u.UploadImage(ctx, f)
}
