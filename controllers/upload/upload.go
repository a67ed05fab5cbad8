package uploadControllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 5 << 20 // 5 MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func newS3Client() (*s3.S3, string, error) {
	bucket := os.Getenv("AWS_S3_BUCKET")
	if bucket == "" {
		return nil, "", fmt.Errorf("AWS_S3_BUCKET is not configured")
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
	})
	if err != nil {
		return nil, "", err
	}
	return s3.New(sess), bucket, nil
}

// POST /api/upload
// Pass-through of a product image to S3; returns the public URL.
func UploadImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
			return
		}
		if fileHeader.Size > maxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image must be 5MB or smaller"})
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		if !allowedImageTypes[contentType] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only JPEG, PNG, GIF and WebP images are allowed"})
			return
		}

		src, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
			return
		}
		defer src.Close()

		client, bucket, err := newS3Client()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Object storage is not available"})
			return
		}

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		key := "products/" + uuid.NewString() + ext

		if _, err := client.PutObject(&s3.PutObjectInput{
			Bucket:        aws.String(bucket),
			Key:           aws.String(key),
			Body:          aws.ReadSeekCloser(src),
			ContentType:   aws.String(contentType),
			ContentLength: aws.Int64(fileHeader.Size),
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}

		url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, os.Getenv("AWS_REGION"), key)
		c.JSON(http.StatusCreated, gin.H{"image_url": url, "key": key})
	}
}
