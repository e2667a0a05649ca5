package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var ErrInvalidImage = errors.New("invalid base64 image")

// S3Uploader stores profile pictures and returns their public URL.
type S3Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
	now     func() time.Time
}

func NewS3Uploader(cfg aws.Config, bucket, baseURL string) *S3Uploader {
	return &S3Uploader{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// DecodeDataURL splits a "data:<mime>;base64,<data>" string into its
// content type, file extension and bytes.
func DecodeDataURL(dataURL string) (contentType, ext string, data []byte, err error) {
	meta, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(meta, "data:") || !strings.HasSuffix(meta, ";base64") {
		return "", "", nil, ErrInvalidImage
	}
	contentType = strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64")
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", nil, ErrInvalidImage
	}

	switch contentType {
	case "image/jpeg", "image/jpg":
		ext = ".jpg"
	default:
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		} else {
			ext = "." + strings.TrimPrefix(contentType, "image/")
		}
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return contentType, ext, data, nil
}

func (u *S3Uploader) UploadBase64Image(ctx context.Context, dataURL, prefix string) (string, error) {
	contentType, ext, data, err := DecodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("profile-pictures/%s-%d%s", prefix, u.now().UnixNano(), ext)

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", u.baseURL, key), nil
}
