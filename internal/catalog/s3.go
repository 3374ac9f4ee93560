package catalog

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pageza/macromatch/config"
)

// LoadS3 fetches the catalog CSV from the configured S3 bucket. Like
// LoadFile it degrades to an empty catalog when the object cannot be
// fetched or parsed.
func LoadS3(ctx context.Context, s3cfg *config.S3Config, key string) *Catalog {
	out, err := s3cfg.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s3cfg.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Printf("Food catalog s3://%s/%s not available, matching disabled: %v", s3cfg.BucketName, key, err)
		return Empty()
	}
	defer out.Body.Close()

	cat, err := Load(out.Body)
	if err != nil {
		log.Printf("Failed to parse food catalog s3://%s/%s: %v", s3cfg.BucketName, key, err)
		return Empty()
	}

	log.Printf("Loaded %d food records from s3://%s/%s", cat.Len(), s3cfg.BucketName, key)
	return cat
}
