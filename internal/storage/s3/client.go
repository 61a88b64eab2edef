package s3

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"weshow/internal/config"
	apperrors "weshow/pkg/errors"
	"weshow/pkg/validator"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

const (
	emptyAWSSessionToken = ""
	keyRandomBytes       = 6

	// Uploaded media is immutable: a new upload always gets a new key.
	objectCacheControl = "public, max-age=31536000"

	errFailedCreateAWSSessionFmt = "failed to create AWS session: %w"
	errFailedUploadObjectMsg     = "failed to upload object to storage"
)

// UploadResult is what callers hand back to the dashboard after a successful
// upload: the storage key and the publicly resolvable URL.
type UploadResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type Uploader struct {
	svc           *s3.S3
	bucket        string
	publicBaseURL string
	maxImageSize  int64
}

func NewUploader(cfg *config.AWSConfig, maxImageSize int64) (*Uploader, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			emptyAWSSessionToken,
		),
	})

	if err != nil {
		return nil, fmt.Errorf(errFailedCreateAWSSessionFmt, err)
	}

	publicBaseURL := cfg.PublicBaseURL
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &Uploader{
		svc:           s3.New(sess),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		maxImageSize:  maxImageSize,
	}, nil
}

// UploadImage validates, keys and stores one image. Validation failures come
// back as BadRequest; storage failures as InternalServer with the backend
// message attached for diagnostics.
func (u *Uploader) UploadImage(ctx context.Context, prefix, filename, contentType string, size int64, body io.ReadSeeker) (*UploadResult, error) {
	if err := validator.Image(contentType, size); err != nil {
		return nil, apperrors.BadRequest(err.Error())
	}
	if size > u.maxImageSize {
		return nil, apperrors.BadRequest(fmt.Sprintf("image must not exceed %d bytes", u.maxImageSize))
	}

	key := BuildObjectKey(prefix, filename)

	_, err := u.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		CacheControl:  aws.String(objectCacheControl),
	})

	if err != nil {
		return nil, apperrors.InternalServer(errFailedUploadObjectMsg, err)
	}

	return &UploadResult{
		Key: key,
		URL: u.publicBaseURL + "/" + key,
	}, nil
}

// BuildObjectKey scopes a collision-resistant key under the owning prefix:
// "{prefix}/{timestamp}-{random}{ext}".
func BuildObjectKey(prefix, filename string) string {
	random := make([]byte, keyRandomBytes)
	if _, err := rand.Read(random); err != nil {
		// crypto/rand only fails when the platform entropy source is broken;
		// the timestamp still keeps keys unique enough to proceed.
		copy(random, []byte{0, 0, 0, 0, 0, 0})
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(random), path.Ext(filename))
	if prefix == "" {
		return name
	}

	return strings.TrimSuffix(prefix, "/") + "/" + name
}
