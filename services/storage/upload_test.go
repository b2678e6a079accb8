package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"servicehub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImage(t *testing.T) {
	assert.NoError(t, ValidateImage(Upload{Filename: "a.png", ContentType: "image/png", Size: 10}))
	assert.NoError(t, ValidateImage(Upload{Filename: "a.jpg", ContentType: "application/octet-stream", Size: 10}))
	assert.ErrorIs(t, ValidateImage(Upload{Filename: "a.txt", ContentType: "text/plain"}), utils.ErrBadRequest)
	assert.ErrorIs(t, ValidateImage(Upload{Filename: "a.png", ContentType: "image/png", Size: MaxImageSize + 1}), utils.ErrBadRequest)
}

func TestStoreAndDelete(t *testing.T) {
	s := NewMemoryStorage()
	u := Upload{
		Filename: "logo.png",
		Open:     func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("png")), nil },
	}

	img, err := Store(context.Background(), s, u, "servicehub/providers")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(img.PublicID, "servicehub/providers/"))
	assert.True(t, strings.HasSuffix(img.PublicID, ".png"))
	assert.True(t, s.Has(img.PublicID))

	require.NoError(t, s.DeleteImage(context.Background(), img.PublicID))
	assert.False(t, s.Has(img.PublicID))
	assert.Equal(t, []string{img.PublicID}, s.Deleted())
}
