package s3store_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betterway/betterway/internal/storage"
	"github.com/betterway/betterway/internal/storage/s3store"
)

// fakeS3 records calls and serves objects from a map.
type fakeS3 struct {
	objects    map[string][]byte
	lastCopy   *s3.CopyObjectInput
	lastDelete *s3.DeleteObjectInput
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[*params.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*params.Key] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
	f.lastCopy = params
	return &s3.CopyObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.lastDelete = params
	delete(f.objects, *params.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func newTestClient(api s3store.API) *s3store.Client {
	return s3store.New(s3store.ClientConfig{
		Bucket: "tmbinfo",
		API:    api,
		Logger: zerolog.Nop(),
	})
}

func TestClient_PutAndGet(t *testing.T) {
	fake := newFakeS3()
	client := newTestClient(fake)
	ctx := context.Background()

	require.NoError(t, client.Put(ctx, "routes_from_api/plan.json", []byte(`{"plan":{}}`)))

	body, err := client.Get(ctx, "routes_from_api/plan.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"plan":{}}`), body)
}

func TestClient_GetMissing(t *testing.T) {
	client := newTestClient(newFakeS3())

	_, err := client.Get(context.Background(), "routes_from_api/missing.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrObjectNotFound))
}

func TestClient_CopyEscapesSource(t *testing.T) {
	fake := newFakeS3()
	client := newTestClient(fake)

	require.NoError(t, client.Copy(context.Background(), "logs/logs_temp.txt", "logs/logs.txt"))

	require.NotNil(t, fake.lastCopy)
	assert.Equal(t, "tmbinfo%2Flogs%2Flogs_temp.txt", *fake.lastCopy.CopySource)
	assert.Equal(t, "logs/logs.txt", *fake.lastCopy.Key)
}

func TestClient_Delete(t *testing.T) {
	fake := newFakeS3()
	client := newTestClient(fake)
	ctx := context.Background()

	require.NoError(t, client.Put(ctx, "logs/logs_temp.txt", []byte("entry")))
	require.NoError(t, client.Delete(ctx, "logs/logs_temp.txt"))

	require.NotNil(t, fake.lastDelete)
	assert.Equal(t, "logs/logs_temp.txt", *fake.lastDelete.Key)

	_, err := client.Get(ctx, "logs/logs_temp.txt")
	assert.True(t, errors.Is(err, storage.ErrObjectNotFound))
}
