package blobstore

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3FileStore struct {
	bucket    string
	urlPrefix string
	uploader  *s3manager.Uploader
}

// NewS3FileStore connects to S3. urlPrefix is the public base (bucket
// endpoint or CDN) the returned URLs are built from.
func NewS3FileStore(region, bucket, urlPrefix string) (*S3FileStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}

	return &S3FileStore{
		bucket:    bucket,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		uploader:  s3manager.NewUploader(sess),
	}, nil
}

func (s *S3FileStore) Store(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		ACL:         aws.String("public-read"),
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        body,
	})
	if err != nil {
		return "", err
	}
	return s.urlPrefix + "/" + key, nil
}
