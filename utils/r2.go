package utils

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Roster exports can be mirrored to a Cloudflare R2 bucket. The client is
// built lazily from the R2_* environment variables; when they are absent
// every call errors and the export stays local only.

var (
	r2Client     *s3.Client
	r2Bucket     string
	r2PublicBase string
	r2InitOnce   sync.Once
)

// Objects live under a fixed prefix so the bucket can hold other content.
const exportPrefix = "exports/"

func initR2() error {
	var initErr error
	r2InitOnce.Do(func() {
		r2Bucket = os.Getenv("R2_BUCKET")
		accountID := os.Getenv("R2_ACCOUNT_ID")
		r2PublicBase = os.Getenv("R2_PUBLIC_URL")

		if r2Bucket == "" || accountID == "" || r2PublicBase == "" {
			initErr = fmt.Errorf("missing required R2 environment variables")
			return
		}

		endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)

		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:           endpoint,
				SigningRegion: "auto",
			}, nil
		})

		cfg, err := config.LoadDefaultConfig(context.Background(),
			config.WithRegion("auto"), // R2 only accepts "auto"
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				os.Getenv("R2_ACCESS_KEY_ID"),
				os.Getenv("R2_SECRET_ACCESS_KEY"),
				"",
			)),
			config.WithEndpointResolverWithOptions(resolver),
		)
		if err != nil {
			initErr = fmt.Errorf("failed to load R2 config: %v", err)
			return
		}

		r2Client = s3.NewFromConfig(cfg)
	})
	return initErr
}

func exportKey(filename string) string {
	return exportPrefix + filepath.Base(filename)
}

// UploadExport stores a generated roster PDF in the bucket and returns its
// public URL.
func UploadExport(pdfBytes []byte, filename string) (string, error) {
	if err := initR2(); err != nil {
		return "", err
	}

	key := exportKey(filename)
	_, err := r2Client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(r2Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdfBytes),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload export: %v", err)
	}

	fileURL := fmt.Sprintf("%s/%s%s", strings.TrimRight(r2PublicBase, "/"), exportPrefix, url.PathEscape(filepath.Base(filename)))
	return fileURL, nil
}

// DeleteExport removes a previously uploaded roster PDF from the bucket.
func DeleteExport(filename string) error {
	if err := initR2(); err != nil {
		return err
	}

	_, err := r2Client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(r2Bucket),
		Key:    aws.String(exportKey(filename)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete export: %v", err)
	}
	return nil
}
