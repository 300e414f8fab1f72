package storage

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	aws2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallGIF is a valid 2x1 GIF.
var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func TestPrepareImage(t *testing.T) {
	img, err := PrepareImage(bytes.NewReader(smallGIF), "Small.GIF")
	require.NoError(t, err)
	assert.Equal(t, "image/gif", img.ContentType)
	assert.True(t, strings.HasPrefix(img.Key, "posts/"))
	assert.True(t, strings.HasSuffix(img.Key, ".gif"))
	assert.Equal(t, smallGIF, img.Data)
}

func TestPrepareImageRejects(t *testing.T) {
	_, err := PrepareImage(strings.NewReader("just some text"), "notes.txt")
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = PrepareImage(bytes.NewReader(nil), "empty.png")
	assert.ErrorIs(t, err, ErrNotImage)

	truncated := append([]byte{}, smallGIF[:20]...)
	_, err = PrepareImage(bytes.NewReader(truncated), "broken.gif")
	assert.ErrorIs(t, err, ErrNotImage)

	huge := bytes.Repeat([]byte{0}, MaxImageSize+1)
	_, err = PrepareImage(bytes.NewReader(huge), "huge.png")
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestLocalStore(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewLocalStoreFs(fs, "/media")
	ctx := context.Background()

	img := &Image{Key: "posts/a.gif", ContentType: "image/gif", Data: smallGIF}
	require.NoError(t, store.Save(ctx, img))

	data, err := afero.ReadFile(fs, "posts/a.gif")
	require.NoError(t, err)
	assert.Equal(t, smallGIF, data)
	assert.Equal(t, "/media/posts/a.gif", store.URL("posts/a.gif"))
	assert.Empty(t, store.URL(""))

	require.NoError(t, store.Delete(ctx, "posts/a.gif"))
	exists, err := afero.Exists(fs, "posts/a.gif")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, store.Delete(ctx, "posts/missing.gif"))
}

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	deletes []*s3.DeleteObjectInput
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store(t *testing.T) {
	client := &fakeS3{}
	store := &S3Store{client: client, bucket: "media", region: "us-east-2"}
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Image{Key: "posts/a.gif", ContentType: "image/gif", Data: smallGIF}))
	require.Len(t, client.puts, 1)
	assert.Equal(t, "media", aws2.ToString(client.puts[0].Bucket))
	assert.Equal(t, "posts/a.gif", aws2.ToString(client.puts[0].Key))
	assert.EqualValues(t, len(smallGIF), aws2.ToInt64(client.puts[0].ContentLength))

	require.NoError(t, store.Delete(ctx, "posts/a.gif"))
	require.Len(t, client.deletes, 1)

	assert.Equal(t, "https://media.s3.us-east-2.amazonaws.com/posts/a.gif", store.URL("posts/a.gif"))

	client.err = errors.New("denied")
	assert.Error(t, store.Save(ctx, &Image{Key: "posts/b.gif"}))
}
