package avatars

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	Err error

	LastBucket      string
	LastKey         string
	LastContentType string
	LastBody        []byte
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.LastBucket = aws.ToString(in.Bucket)
	f.LastKey = aws.ToString(in.Key)
	f.LastContentType = aws.ToString(in.ContentType)
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.LastBody = b
	return &s3.PutObjectOutput{}, nil
}

func writeImage(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("\x89PNG fake"), 0o600))
	return p
}

func TestUpload_PutsObjectAndReturnsPublicURL(t *testing.T) {
	fp := &fakePutter{}
	u := newUploader(fp, Options{Bucket: "gamezone-avatars", PublicURL: "https://cdn.gamezone.cl/"})
	u.now = func() time.Time { return time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC) }

	url, err := u.Upload(context.Background(), writeImage(t, "Ana.PNG"))
	require.NoError(t, err)

	assert.Equal(t, "gamezone-avatars", fp.LastBucket)
	assert.Regexp(t, regexp.MustCompile(`^avatars/2025/03/[0-9a-f-]{36}\.png$`), fp.LastKey)
	assert.Equal(t, "image/png", fp.LastContentType)
	assert.Equal(t, []byte("\x89PNG fake"), fp.LastBody)
	assert.Equal(t, "https://cdn.gamezone.cl/"+fp.LastKey, url)
}

func TestUpload_RemoteRefIsKept(t *testing.T) {
	fp := &fakePutter{}
	u := newUploader(fp, Options{Bucket: "b"})

	url, err := u.Upload(context.Background(), "https://cdn.gamezone.cl/a.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.gamezone.cl/a.png", url)
	assert.Empty(t, fp.LastKey)
}

func TestUpload_Errors(t *testing.T) {
	u := newUploader(&fakePutter{}, Options{Bucket: "b"})
	_, err := u.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.jpg"))
	require.Error(t, err)

	u = newUploader(&fakePutter{Err: errors.New("AccessDenied")}, Options{Bucket: "b"})
	_, err = u.Upload(context.Background(), writeImage(t, "a.jpg"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload avatar")
}

func TestPublicURLDefaults(t *testing.T) {
	assert.Equal(t, "http://minio:9000/b", newUploader(nil, Options{Bucket: "b", Endpoint: "http://minio:9000/"}).publicURL)
	assert.Equal(t, "https://b.s3.amazonaws.com", newUploader(nil, Options{Bucket: "b"}).publicURL)
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNew_WithStaticCredentials(t *testing.T) {
	u, err := New(context.Background(), Options{
		Bucket: "b", Region: "us-east-1", Endpoint: "http://localhost:9000",
		AccessKey: "minio", SecretKey: "minio123",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/b", u.publicURL)
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("http://x/y.png"))
	assert.True(t, IsRemote("https://x/y.png"))
	assert.False(t, IsRemote("/sdcard/DCIM/a.png"))
	assert.False(t, IsRemote("content://media/external/images/1"))
}
