package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioClient wraps the MinIO connection and its bucket. Attempt audio clips
// land under sessions/<session_id>/, finalized report files under reports/.
type MinioClient struct {
	Client     *minio.Client
	BucketName string
}

var globalMinioClient *MinioClient

// InitMinioClient initializes the global MinIO client from environment
// variables and creates the bucket when missing. Called once at startup.
func InitMinioClient() error {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKeyID := os.Getenv("MINIO_ACCESS_KEY_ID")
	secretAccessKey := os.Getenv("MINIO_SECRET_ACCESS_KEY")
	bucketName := os.Getenv("MINIO_BUCKET_NAME")
	useSSLStr := os.Getenv("MINIO_USE_SSL")

	if endpoint == "" || accessKeyID == "" || secretAccessKey == "" || bucketName == "" {
		return fmt.Errorf("MINIO_ENDPOINT, MINIO_ACCESS_KEY_ID, MINIO_SECRET_ACCESS_KEY, and MINIO_BUCKET_NAME must be set")
	}

	useSSL, err := strconv.ParseBool(useSSLStr)
	if err != nil {
		log.Printf("Warning: MINIO_USE_SSL is not a valid boolean (%q). Defaulting to false.", useSSLStr)
		useSSL = false
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("failed to check if MinIO bucket %q exists: %w", bucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create MinIO bucket %q: %w", bucketName, err)
		}
		log.Printf("MinIO bucket %q created.", bucketName)
	}

	globalMinioClient = &MinioClient{Client: client, BucketName: bucketName}
	log.Println("MinIO client initialized.")
	return nil
}

// GetGlobalMinioClient returns the initialized global MinIO client.
func GetGlobalMinioClient() (*MinioClient, error) {
	if globalMinioClient == nil {
		return nil, fmt.Errorf("MinIO client not initialized, call InitMinioClient first")
	}
	return globalMinioClient, nil
}

// UploadAudioClip stores one attempt's audio under the session's prefix and
// returns the object key. The original filename only contributes its
// extension; the key itself is unique.
func (mc *MinioClient) UploadAudioClip(ctx context.Context, sessionID string, attemptNumber int, originalFilename string, audio []byte, contentType string) (string, error) {
	if mc.Client == nil {
		return "", fmt.Errorf("MinIO client not initialized")
	}

	ext := filepath.Ext(originalFilename)
	if ext == "" {
		ext = ".wav"
	}
	objectName := path.Join("sessions", sessionID, fmt.Sprintf("attempt-%d-%s%s", attemptNumber, uuid.New().String(), ext))

	_, err := mc.Client.PutObject(ctx, mc.BucketName, objectName, bytes.NewReader(audio), int64(len(audio)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload audio clip to MinIO (bucket: %s, object: %s): %w", mc.BucketName, objectName, err)
	}
	return objectName, nil
}

// UploadReport stores a finalized report file under reports/ and returns the
// object key.
func (mc *MinioClient) UploadReport(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	if mc.Client == nil {
		return "", fmt.Errorf("MinIO client not initialized")
	}

	objectName := path.Join("reports", filename)
	_, err := mc.Client.PutObject(ctx, mc.BucketName, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report to MinIO (bucket: %s, object: %s): %w", mc.BucketName, objectName, err)
	}
	log.Printf("Uploaded report %q (%d bytes).", objectName, len(data))
	return objectName, nil
}

// GetFileBytes retrieves an object as a byte slice.
func (mc *MinioClient) GetFileBytes(ctx context.Context, objectName string) ([]byte, error) {
	if mc.Client == nil {
		return nil, fmt.Errorf("MinIO client not initialized")
	}

	object, err := mc.Client.GetObject(ctx, mc.BucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %q from bucket %q: %w", objectName, mc.BucketName, err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %q data: %w", objectName, err)
	}
	return data, nil
}

// DeleteFile removes an object from the bucket.
func (mc *MinioClient) DeleteFile(ctx context.Context, objectName string) error {
	if mc.Client == nil {
		return fmt.Errorf("MinIO client not initialized")
	}
	if err := mc.Client.RemoveObject(ctx, mc.BucketName, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %q from MinIO bucket %q: %w", objectName, mc.BucketName, err)
	}
	return nil
}
