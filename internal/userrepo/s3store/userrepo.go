package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/haguru/sakura/internal/interfaces"
	"github.com/haguru/sakura/internal/models"
	"github.com/haguru/sakura/internal/userrepo"
	"github.com/haguru/sakura/pkg/helper"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const contentTypeJSON = "application/json"

// ObjectAPI is the part of *s3.Client the store uses.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3UserRepository keeps the collection as one JSON object. A PutObject
// replaces the object whole.
type S3UserRepository struct {
	client ObjectAPI
	bucket string
	key    string
	logger interfaces.Logger
}

func NewS3UserRepository(client ObjectAPI, bucket, key string, logger interfaces.Logger) (interfaces.UserRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("s3 client cannot be nil")
	}
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("bucket and key are required")
	}
	return &S3UserRepository{client: client, bucket: bucket, key: key, logger: logger}, nil
}

func (r *S3UserRepository) Init(ctx context.Context) error {
	if _, err := r.Load(ctx); err != nil {
		return fmt.Errorf("%s: %w", userrepo.ErrInitStore, err)
	}
	return nil
}

func (r *S3UserRepository) Load(ctx context.Context) ([]models.User, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		r.logger.Info("users object not found, creating empty collection", "func", helper.GetFuncName(), "bucket", r.bucket, "key", r.key)
		if err := r.Save(ctx, []models.User{}); err != nil {
			return nil, err
		}
		return []models.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", userrepo.ErrLoadUsers, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", userrepo.ErrLoadUsers, err)
	}
	return userrepo.DecodeUsers(data)
}

func (r *S3UserRepository) Save(ctx context.Context, users []models.User) error {
	data, err := userrepo.EncodeUsers(users)
	if err != nil {
		return err
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentTypeJSON),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", userrepo.ErrSaveUsers, err)
	}
	return nil
}

func (r *S3UserRepository) Close(ctx context.Context) error {
	return nil
}
