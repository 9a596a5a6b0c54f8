package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSnapshotUploaderRequiresBucket(t *testing.T) {
	u, err := NewSnapshotUploader(context.Background(), "us-east-1", "")
	assert.EqualError(t, err, "AWS_BUCKET_NAME is not set")
	assert.Nil(t, u)
}
