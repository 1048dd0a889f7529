package helper

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// Backend alternativo: bucket S3-like (Alibaba OSS). Selecionado via
// STORAGE_BACKEND=oss; o default é o Supabase Storage.

var (
	ossOnce   sync.Once
	ossBucket *oss.Bucket
	ossErr    error
)

func getOSSBucket() (*oss.Bucket, error) {
	ossOnce.Do(func() {
		endpoint := os.Getenv("OSS_ENDPOINT")
		keyID := os.Getenv("OSS_ACCESS_KEY_ID")
		keySecret := os.Getenv("OSS_ACCESS_KEY_SECRET")
		bucketName := os.Getenv("OSS_BUCKET")

		if endpoint == "" || keyID == "" || keySecret == "" || bucketName == "" {
			ossErr = fmt.Errorf("variáveis OSS_* incompletas")
			return
		}

		client, err := oss.New(endpoint, keyID, keySecret)
		if err != nil {
			ossErr = fmt.Errorf("falha ao criar cliente OSS: %w", err)
			return
		}
		ossBucket, ossErr = client.Bucket(bucketName)
	})
	return ossBucket, ossErr
}

func uploadToOSS(filename, contentType string, data []byte) (string, error) {
	bucket, err := getOSSBucket()
	if err != nil {
		return "", err
	}

	if err := bucket.PutObject(filename, bytes.NewReader(data),
		oss.ContentType(contentType)); err != nil {
		return "", fmt.Errorf("upload OSS falhou: %w", err)
	}

	publicBase := os.Getenv("OSS_PUBLIC_BASE_URL")
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.%s", os.Getenv("OSS_BUCKET"), os.Getenv("OSS_ENDPOINT"))
	}
	return fmt.Sprintf("%s/%s", publicBase, filename), nil
}
