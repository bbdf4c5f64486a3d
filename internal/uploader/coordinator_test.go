// internal/uploader/coordinator_test.go
package uploader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forma3d/catalog-backend/internal/media"
)

// fakeStore is an in-memory media.Store. Files whose name matches
// failOn fail to upload; fileIDs listed in failDelete fail to delete.
type fakeStore struct {
	mu         sync.Mutex
	failOn     map[string]bool
	failDelete map[string]bool
	uploads    int
	deletes    map[string]int
	assets     map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		failOn:     make(map[string]bool),
		failDelete: make(map[string]bool),
		deletes:    make(map[string]int),
		assets:     make(map[string]bool),
	}
}

func (s *fakeStore) Upload(_ context.Context, in media.UploadInput) (*media.UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.uploads++
	if s.failOn[in.FileName] {
		return nil, errors.New("upstream rejected file")
	}
	fileID := fmt.Sprintf("fid-%s", in.FileName)
	s.assets[fileID] = true
	return &media.UploadResult{
		URL:      fmt.Sprintf("https://cdn.example.com/%s", in.FileName),
		FileID:   fileID,
		Name:     in.FileName,
		FilePath: "/catalog/" + in.FileName,
	}, nil
}

func (s *fakeStore) Delete(_ context.Context, fileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deletes[fileID]++
	if s.failDelete[fileID] {
		return errors.New("upstream delete failed")
	}
	delete(s.assets, fileID)
	return nil
}

func (s *fakeStore) Provider() string { return "fake" }

func (s *fakeStore) deleteCount(fileID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletes[fileID]
}

func batch(names ...string) []File {
	files := make([]File, 0, len(names))
	for _, n := range names {
		files = append(files, File{Name: n, ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}})
	}
	return files
}

func TestAddCreatesOneDescriptorPerFile(t *testing.T) {
	store := newFakeStore()
	c := New(store)

	tokens := c.Add(context.Background(), batch("a.png", "b.png", "c.png"))
	c.Wait()

	require.Len(t, tokens, 3)
	snap := c.Snapshot()
	require.Len(t, snap, 3)

	// Placeholder metadata defaults: alt text from file name,
	// order continuing from the current count.
	assert.Equal(t, "a.png", snap[0].AltText)
	assert.Equal(t, 1, snap[0].Order)
	assert.Equal(t, 2, snap[1].Order)
	assert.Equal(t, 3, snap[2].Order)

	for _, d := range snap {
		assert.Equal(t, StatusUploaded, d.Status)
		assert.NotEmpty(t, d.URL)
		assert.NotEmpty(t, d.RemoteID)
	}
}

func TestFailureDoesNotAffectSiblings(t *testing.T) {
	store := newFakeStore()
	store.failOn["bad.png"] = true
	c := New(store)

	c.Add(context.Background(), batch("ok1.png", "bad.png", "ok2.png"))
	c.Wait()

	snap := c.Snapshot()
	require.Len(t, snap, 3)

	assert.Equal(t, StatusUploaded, snap[0].Status)
	assert.Equal(t, StatusFailed, snap[1].Status)
	assert.NotEmpty(t, snap[1].Error)
	assert.Empty(t, snap[1].URL)
	assert.Equal(t, StatusUploaded, snap[2].Status)

	// The failed entry stays visible until the caller removes it.
	sub := c.Submittable()
	require.Len(t, sub, 2)
	assert.Equal(t, "ok1.png", sub[0].AltText)
	assert.Equal(t, "ok2.png", sub[1].AltText)
}

func TestRemoveAttemptsExactlyOneDelete(t *testing.T) {
	store := newFakeStore()
	c := New(store)

	tokens := c.Add(context.Background(), batch("a.png"))
	c.Wait()

	ok := c.Remove(context.Background(), tokens[0])
	assert.True(t, ok)
	assert.Equal(t, 1, store.deleteCount("fid-a.png"))
	assert.Empty(t, c.Snapshot())

	// Removing again is a no-op with no second delete.
	ok = c.Remove(context.Background(), tokens[0])
	assert.False(t, ok)
	assert.Equal(t, 1, store.deleteCount("fid-a.png"))
}

func TestRemoveDropsEntryEvenWhenDeleteFails(t *testing.T) {
	store := newFakeStore()
	store.failDelete["fid-a.png"] = true
	c := New(store)

	tokens := c.Add(context.Background(), batch("a.png"))
	c.Wait()

	ok := c.Remove(context.Background(), tokens[0])
	assert.True(t, ok)
	assert.Equal(t, 1, store.deleteCount("fid-a.png"))
	assert.Empty(t, c.Snapshot())
}

func TestRemoveFailedEntrySkipsDelete(t *testing.T) {
	store := newFakeStore()
	store.failOn["bad.png"] = true
	c := New(store)

	tokens := c.Add(context.Background(), batch("bad.png"))
	c.Wait()

	ok := c.Remove(context.Background(), tokens[0])
	assert.True(t, ok)
	// Nothing was ever stored remotely, so nothing to delete.
	assert.Equal(t, 0, store.deleteCount("fid-bad.png"))
}

func TestSetOrderUnparseableUnsets(t *testing.T) {
	store := newFakeStore()
	c := New(store)

	tokens := c.Add(context.Background(), batch("a.png"))
	c.Wait()

	require.True(t, c.SetOrder(tokens[0], "7"))
	assert.Equal(t, 7, c.Snapshot()[0].Order)

	require.True(t, c.SetOrder(tokens[0], "not-a-number"))
	assert.Equal(t, 0, c.Snapshot()[0].Order)

	require.True(t, c.SetOrder(tokens[0], "-3"))
	assert.Equal(t, 0, c.Snapshot()[0].Order)

	assert.False(t, c.SetOrder("missing-token", "1"))
}

func TestSetAltText(t *testing.T) {
	store := newFakeStore()
	c := New(store)

	tokens := c.Add(context.Background(), batch("a.png"))
	c.Wait()

	require.True(t, c.SetAltText(tokens[0], "Front view"))
	assert.Equal(t, "Front view", c.Snapshot()[0].AltText)
	assert.False(t, c.SetAltText("missing-token", "x"))
}

func TestSeedEntersAsUploaded(t *testing.T) {
	store := newFakeStore()
	c := New(store)

	c.Seed([]Descriptor{
		{URL: "https://cdn.example.com/old.png", RemoteID: "fid-old", AltText: "Old", Order: 1},
	})

	snap := c.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, StatusUploaded, snap[0].Status)
	assert.NotEmpty(t, snap[0].Token)

	sub := c.Submittable()
	require.Len(t, sub, 1)

	// Seeded entries participate in removal semantics too.
	require.True(t, c.Remove(context.Background(), snap[0].Token))
	assert.Equal(t, 1, store.deleteCount("fid-old"))
}
