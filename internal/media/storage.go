// Package media is the blob store: binary uploads under caller-chosen keys,
// returning publicly resolvable URLs.
package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/configs"
)

type Storage struct {
	cfg    *configs.Config
	client *minio.Client
}

func New(cfg *configs.Config) (*Storage, error) {
	cl, err := minio.New(strings.TrimPrefix(cfg.S3Endpoint, "http://"), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &Storage{cfg: cfg, client: cl}, nil
}

func (s *Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.S3Bucket)
	if err != nil {
		return err
	}
	if !exists {
		return s.client.MakeBucket(ctx, s.cfg.S3Bucket, minio.MakeBucketOptions{})
	}
	return nil
}

// Upload stores data under key and returns the public URL.
func (s *Storage) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, s.cfg.S3Bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.cfg.S3Bucket, key, minio.RemoveObjectOptions{})
}

// PublicURL assumes a public-read bucket, fronted by S3_PUBLIC_URL when a
// CDN or reverse proxy sits in between.
func (s *Storage) PublicURL(key string) string {
	if s.cfg.S3PublicURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.cfg.S3PublicURL, "/"), s.cfg.S3Bucket, key)
	}
	scheme := "http"
	if s.cfg.S3UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.S3Endpoint, s.cfg.S3Bucket, key)
}
