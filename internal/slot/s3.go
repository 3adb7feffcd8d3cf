// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package slot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/tfctl/tokctl/internal/log"
)

// S3API is the subset of the S3 client the slot needs.
type S3API interface {
	GetObject(context.Context, *s3v2.GetObjectInput, ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
	PutObject(context.Context, *s3v2.PutObjectInput, ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
	DeleteObject(context.Context, *s3v2.DeleteObjectInput, ...func(*s3v2.Options)) (*s3v2.DeleteObjectOutput, error)
}

// S3 is a slot stored as a single object, which lets a team share one history.
type S3 struct {
	Ctx    context.Context
	Client S3API
	Bucket string
	Key    string
}

// s3Options holds optional overrides for AWS config loading.
type s3Options struct {
	profile string
	region  string
	client  S3API
}

// S3Option customizes NewS3. With no options the shell's AWS setup
// (AWS_PROFILE, shared config, env, IMDS) is inherited.
type S3Option func(*s3Options)

// WithProfile sets the shared config profile.
func WithProfile(profile string) S3Option {
	return func(o *s3Options) { o.profile = profile }
}

// WithRegion sets the region override.
func WithRegion(region string) S3Option {
	return func(o *s3Options) { o.region = region }
}

// WithClient injects a ready-made client and skips AWS config loading.
func WithClient(c S3API) S3Option {
	return func(o *s3Options) { o.client = c }
}

// NewS3 returns an S3 slot for s3://bucket/key.
func NewS3(ctx context.Context, bucket string, key string, opts ...S3Option) (*S3, error) {
	if bucket == "" || key == "" {
		return nil, errors.New("s3 slot needs both a bucket and a key")
	}

	var o s3Options
	for _, opt := range opts {
		opt(&o)
	}

	client := o.client
	if client == nil {
		var loadOpts []func(*config.LoadOptions) error
		if o.profile != "" {
			loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
		}
		if o.region != "" {
			loadOpts = append(loadOpts, config.WithRegion(o.region))
		}
		log.Debugf("aws config: profile=%s region=%s", o.profile, o.region)

		cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		client = s3v2.NewFromConfig(cfg)
	}

	return &S3{Ctx: ctx, Client: client, Bucket: bucket, Key: key}, nil
}

func (s *S3) Read() ([]byte, error) {
	out, err := s.Client.GetObject(s.Ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(s.Bucket),
		Key:    awsv2.String(s.Key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("failed to get S3 object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmpty
	}
	return data, nil
}

func (s *S3) Write(data []byte) error {
	_, err := s.Client.PutObject(s.Ctx, &s3v2.PutObjectInput{
		Bucket:      awsv2.String(s.Bucket),
		Key:         awsv2.String(s.Key),
		Body:        bytes.NewReader(data),
		ContentType: awsv2.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put S3 object: %w", err)
	}
	log.Debugf("s3 write: bucket=%s key=%s bytes=%d", s.Bucket, s.Key, len(data))
	return nil
}

func (s *S3) Remove() error {
	_, err := s.Client.DeleteObject(s.Ctx, &s3v2.DeleteObjectInput{
		Bucket: awsv2.String(s.Bucket),
		Key:    awsv2.String(s.Key),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete S3 object: %w", err)
	}
	return nil
}

func (s *S3) String() string {
	return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Key)
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
