// Package s3store provides the AWS S3 implementation of storage.ObjectStore.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/betterway/betterway/internal/storage"
)

// API is the subset of the S3 client the store depends on.
type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// ClientConfig holds configuration for the S3 object store.
type ClientConfig struct {
	// Bucket is the S3 bucket holding all pipeline objects (required).
	Bucket string

	// API is the S3 client to use (optional; tests inject a fake).
	API API

	// Logger for store operations.
	Logger zerolog.Logger
}

// Client is an S3-backed ObjectStore.
type Client struct {
	api    API
	bucket string
	logger zerolog.Logger
}

// New creates an S3 object store from the given configuration.
func New(cfg ClientConfig) *Client {
	return &Client{
		api:    cfg.API,
		bucket: cfg.Bucket,
		logger: cfg.Logger,
	}
}

// NewFromDefaults creates an S3 object store using the default AWS credential
// chain (environment, shared config, instance role).
func NewFromDefaults(ctx context.Context, bucket string, logger zerolog.Logger) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return New(ClientConfig{
		Bucket: bucket,
		API:    s3.NewFromConfig(awsCfg),
		Logger: logger,
	}), nil
}

// Get returns the full contents of the object at key.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("get %q: %w", key, storage.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading object %q: %w", key, err)
	}
	return body, nil
}

// Put writes body to key.
func (c *Client) Put(ctx context.Context, key string, body []byte) error {
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}

	c.logger.Debug().
		Str("bucket", c.bucket).
		Str("key", key).
		Int("bytes", len(body)).
		Msg("stored object")
	return nil
}

// Copy duplicates the object at srcKey to dstKey within the bucket.
func (c *Client) Copy(ctx context.Context, srcKey, dstKey string) error {
	_, err := c.api.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(c.bucket),
		CopySource: aws.String(url.PathEscape(c.bucket + "/" + srcKey)),
		Key:        aws.String(dstKey),
	})
	if err != nil {
		return fmt.Errorf("copy %q to %q: %w", srcKey, dstKey, err)
	}
	return nil
}

// Delete removes the object at key. S3 treats deleting an absent key as a
// success, matching the ObjectStore contract.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
