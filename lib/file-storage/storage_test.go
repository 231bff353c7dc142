package filestorage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	require.Equal(t, "s1/cv.pdf", ObjectName("s1", "cv.pdf"))
	require.Equal(t, "s1/passwd", ObjectName("s1", "../../etc/passwd"))
}

func TestDisabledStorage(t *testing.T) {
	NewInstance(nil, "resumes")
	require.False(t, Instance.Enabled())
	_, err := Instance.UploadResume(context.TODO(), "s1", "cv.pdf", []byte("x"))
	require.ErrorIs(t, err, ErrDisabled)
}
