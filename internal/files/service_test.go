package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filedrop/service/internal/storage"
)

type putCall struct {
	key         string
	size        int64
	contentType string
	metadata    map[string]string
	makePublic  bool
	body        string
}

// fakeStore is an in-memory storage.Store for tests.
type fakeStore struct {
	infos   []storage.ObjectInfo
	listErr error
	signErr error
	putErr  error
	puts    []putCall
}

func (f *fakeStore) Put(_ context.Context, key string, r io.Reader, size int64, contentType string, metadata map[string]string, makePublic bool) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	body, _ := io.ReadAll(r)
	f.puts = append(f.puts, putCall{key: key, size: size, contentType: contentType, metadata: metadata, makePublic: makePublic, body: string(body)})
	if makePublic {
		return f.PublicURL(key), nil
	}
	return f.SignedURL(context.Background(), key, storage.SignedURLTTL)
}

func (f *fakeStore) List(context.Context, string) ([]storage.ObjectInfo, error) {
	return f.infos, f.listErr
}

func (f *fakeStore) SignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	return "https://signed.example/" + key, nil
}

func (f *fakeStore) PublicURL(key string) string {
	return "https://public.example/" + key
}

func fixedNowService(store storage.Store, millis int64) *Service {
	svc := NewService(store)
	svc.now = func() time.Time { return time.UnixMilli(millis) }
	return svc
}

func info(key string, createdMillis int64) storage.ObjectInfo {
	var created time.Time
	if createdMillis != 0 {
		created = time.UnixMilli(createdMillis)
	}
	return storage.ObjectInfo{
		Key:         key,
		Size:        42,
		ContentType: "application/pdf",
		CreatedAt:   created,
	}
}

func TestListAllSortsNewestFirst(t *testing.T) {
	store := &fakeStore{infos: []storage.ObjectInfo{
		info("uploads/100_a.pdf", 100),
		info("uploads/200_b.pdf", 200),
		info("uploads/150_c.pdf", 150),
	}}

	records, err := NewService(store).ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "200_b.pdf", records[0].Name)
	assert.Equal(t, "150_c.pdf", records[1].Name)
	assert.Equal(t, "100_a.pdf", records[2].Name)
}

func TestListAllUnknownCreationTimeSortsLast(t *testing.T) {
	store := &fakeStore{infos: []storage.ObjectInfo{
		info("uploads/unknown1.pdf", 0),
		info("uploads/100_a.pdf", 100),
		info("uploads/unknown2.pdf", 0),
		info("uploads/200_b.pdf", 200),
	}}

	records, err := NewService(store).ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "200_b.pdf", records[0].Name)
	assert.Equal(t, "100_a.pdf", records[1].Name)
	assert.True(t, records[2].TimeCreated.IsZero())
	assert.True(t, records[3].TimeCreated.IsZero())
}

func TestListAllEmptyBucket(t *testing.T) {
	records, err := NewService(&fakeStore{}).ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestListAllStripsNamespacePrefix(t *testing.T) {
	store := &fakeStore{infos: []storage.ObjectInfo{info("uploads/1700_S42_report.pdf", 1700)}}

	records, err := NewService(store).ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1700_S42_report.pdf", records[0].Name)
	assert.Equal(t, int64(42), records[0].Size)
	assert.Equal(t, "application/pdf", records[0].ContentType)
}

func TestListAllSignsPrivateEntries(t *testing.T) {
	store := &fakeStore{infos: []storage.ObjectInfo{info("uploads/1_a.pdf", 1)}}

	records, err := NewService(store).ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/uploads/1_a.pdf", records[0].URL)
}

func TestListAllReconstructsPublicURLs(t *testing.T) {
	pub := info("uploads/1_a.pdf", 1)
	pub.UserMetadata = map[string]string{storage.MetaVisibility: storage.VisibilityPublic}
	store := &fakeStore{infos: []storage.ObjectInfo{pub}, signErr: errors.New("must not presign public entries")}

	records, err := NewService(store).ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://public.example/uploads/1_a.pdf", records[0].URL)
}

func TestListAllIsAllOrNothing(t *testing.T) {
	store := &fakeStore{
		infos:   []storage.ObjectInfo{info("uploads/1_a.pdf", 1), info("uploads/2_b.pdf", 2)},
		signErr: errors.New("presign exploded"),
	}

	_, err := NewService(store).ListAll(context.Background())
	assert.ErrorContains(t, err, "presign exploded")

	store = &fakeStore{listErr: errors.New("backend unreachable")}
	_, err = NewService(store).ListAll(context.Background())
	assert.ErrorContains(t, err, "backend unreachable")
}

func TestUploadEncodesKeyAndMetadata(t *testing.T) {
	store := &fakeStore{}
	svc := fixedNowService(store, 1700000000000)

	res, err := svc.Upload(context.Background(), "my file!.pdf", strings.NewReader("hello"), 5, "application/pdf", "S42", false)
	require.NoError(t, err)
	assert.Equal(t, "uploads/1700000000000_S42_my_file_.pdf", res.Key)
	assert.Equal(t, "https://signed.example/uploads/1700000000000_S42_my_file_.pdf", res.URL)

	require.Len(t, store.puts, 1)
	put := store.puts[0]
	assert.Equal(t, "hello", put.body)
	assert.Equal(t, int64(5), put.size)
	assert.Equal(t, "application/pdf", put.contentType)
	assert.False(t, put.makePublic)
	assert.Equal(t, "my file!.pdf", put.metadata[storage.MetaOriginalName])
	assert.Equal(t, "S42", put.metadata[storage.MetaStudentID])
	assert.Equal(t, storage.VisibilitySigned, put.metadata[storage.MetaVisibility])
}

func TestUploadPublicVisibility(t *testing.T) {
	store := &fakeStore{}
	svc := fixedNowService(store, 5)

	res, err := svc.Upload(context.Background(), "a.png", strings.NewReader("x"), 1, "image/png", "", true)
	require.NoError(t, err)
	assert.Equal(t, "uploads/5_a.png", res.Key)
	assert.Equal(t, "https://public.example/uploads/5_a.png", res.URL)

	require.Len(t, store.puts, 1)
	assert.True(t, store.puts[0].makePublic)
	assert.Equal(t, storage.VisibilityPublic, store.puts[0].metadata[storage.MetaVisibility])
	assert.NotContains(t, store.puts[0].metadata, storage.MetaStudentID)
}

func TestUploadBackendFailure(t *testing.T) {
	store := &fakeStore{putErr: fmt.Errorf("quota exceeded")}
	_, err := NewService(store).Upload(context.Background(), "a.png", strings.NewReader("x"), 1, "image/png", "", false)
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestNilStoreIsNotConfigured(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.ListAll(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = svc.Upload(context.Background(), "a.png", strings.NewReader("x"), 1, "image/png", "", false)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
