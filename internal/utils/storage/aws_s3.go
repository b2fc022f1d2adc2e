package storage

import (
	"Foodgram-Backend/internal/utils"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var AllowImage = []string{"png", "jpg", "jpeg", "webp"}

var (
	ErrInvalidBase64Payload = errors.New("invalid base64 image payload")
	ErrFileTypeNotAllowed   = errors.New("file type not allowed")
)

type (
	AwsS3 interface {
		// UploadBase64 decodes an inline `data:image/<ext>;base64,...`
		// payload and stores it under dir with the inferred extension.
		// Returns the object key.
		UploadBase64(fileName string, payload string, dir string, allowedExt ...string) (string, error)
		DeleteFile(objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func NewAwsS3() AwsS3 {
	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(utils.GetConfig("AWS_S3_REGION")),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		log.Fatalf("error loading AWS config: %v", err)
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: utils.GetConfig("AWS_S3_BUCKET"),
		region: utils.GetConfig("AWS_S3_REGION"),
	}
}

// DecodeBase64Image splits a data-URI payload into raw bytes and the file
// extension taken from the media type.
func DecodeBase64Image(payload string) ([]byte, string, error) {
	if !strings.HasPrefix(payload, "data:image/") {
		return nil, "", ErrInvalidBase64Payload
	}

	parts := strings.SplitN(payload, ";base64,", 2)
	if len(parts) != 2 {
		return nil, "", ErrInvalidBase64Payload
	}

	ext := strings.TrimPrefix(parts[0], "data:image/")
	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, "", ErrInvalidBase64Payload
	}
	return data, ext, nil
}

func (s *awsS3) UploadBase64(fileName string, payload string, dir string, allowedExt ...string) (string, error) {
	data, ext, err := DecodeBase64Image(payload)
	if err != nil {
		return "", err
	}

	allowed := false
	for _, e := range allowedExt {
		if strings.EqualFold(e, ext) {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", ErrFileTypeNotAllowed
	}

	objectKey := fmt.Sprintf("%s/%s.%s", dir, fileName, ext)
	_, err = s.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &objectKey,
		Body:        bytes.NewReader(data),
		ContentType: stringPtr("image/" + ext),
	})
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func (s *awsS3) DeleteFile(objectKey string) error {
	_, err := s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &objectKey,
	})
	return err
}

func (s *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, objectKey)
}

func (s *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	return strings.TrimPrefix(link, prefix)
}

func stringPtr(s string) *string {
	return &s
}
