package s3

import (
	"context"
	"fmt"
	"io"
	"proctor/config"
	"proctor/infras/otel"
	"proctor/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrBucket = "bucket"
	otelAttrKey    = "key"
)

// S3 fetches seed objects (the user roster CSV) from object storage.
type S3 interface {
	FetchObject(ctx context.Context, bucket, key string) ([]byte, error)
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

func (svc *s3Impl) FetchObject(ctx context.Context, bucket, key string) (data []byte, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".FetchObject")
	defer scope.End()
	defer scope.TraceIfError(err)

	if bucket == "" {
		bucket = svc.Config.Seed.S3.Bucket
	}

	scope.SetAttributes(map[string]any{
		otelAttrBucket: bucket,
		otelAttrKey:    key,
	})

	out, err := svc.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error().Err(err).Str("bucket", bucket).Str("key", key).Msg("failed to fetch object from S3")

		return nil, fmt.Errorf("failed to fetch object from S3: %w", err)
	}
	defer out.Body.Close()

	data, err = io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}

	return data, nil
}

func New(cfg *config.Config, otl otel.Otel) S3 {
	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(cfg.Seed.S3.Region),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load AWS configuration")
	}

	return &s3Impl{
		Client: s3.NewFromConfig(awsCfg),
		Config: cfg,
		otel:   otl,
	}
}
