// internal/uploader/coordinator.go
package uploader

import (
	"context"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/forma3d/catalog-backend/internal/media"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusUploading Status = "uploading"
	StatusUploaded  Status = "uploaded"
	StatusFailed    Status = "failed"
)

// Descriptor describes one product image held in form state: remote
// storage pointers plus display metadata. Token is a stable identity
// assigned at creation, so concurrent completions can never clobber a
// sibling after insertions or removals.
type Descriptor struct {
	Token    string `json:"token"`
	URL      string `json:"url,omitempty"`
	RemoteID string `json:"remoteId,omitempty"`
	AltText  string `json:"altText,omitempty"`
	Order    int    `json:"order,omitempty"`
	Status   Status `json:"status"`
	Error    string `json:"error,omitempty"`
}

// Uploadable reports whether the descriptor may be serialized into a
// product payload: uploaded, with a confirmed URL and no error.
func (d Descriptor) Uploadable() bool {
	return d.Status == StatusUploaded && d.URL != "" && d.Error == ""
}

// File is one locally selected file awaiting upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Coordinator orchestrates a batch of image uploads against a media
// store. Each file uploads independently; one failure never aborts or
// rolls back its siblings, and completion order is never assumed.
type Coordinator struct {
	store media.Store

	mu     sync.Mutex
	wg     sync.WaitGroup
	tokens []string
	items  map[string]*Descriptor
}

func New(store media.Store) *Coordinator {
	return &Coordinator{
		store: store,
		items: make(map[string]*Descriptor),
	}
}

// Seed loads descriptors sourced from already-persisted product images,
// for the edit flow. They enter as uploaded.
func (c *Coordinator) Seed(descs []Descriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, d := range descs {
		if d.Token == "" {
			d.Token = uuid.NewString()
		}
		d.Status = StatusUploaded
		d.Error = ""
		entry := d
		c.tokens = append(c.tokens, entry.Token)
		c.items[entry.Token] = &entry
	}
}

// Add inserts one placeholder per file and dispatches the uploads,
// returning the placeholder tokens in insertion order. Alt text
// defaults to the file name; order continues after the current count.
func (c *Coordinator) Add(ctx context.Context, files []File) []string {
	c.mu.Lock()
	tokens := make([]string, 0, len(files))
	base := len(c.tokens)
	for i, f := range files {
		token := uuid.NewString()
		d := &Descriptor{
			Token:   token,
			AltText: f.Name,
			Order:   base + i + 1,
			Status:  StatusPending,
		}
		c.tokens = append(c.tokens, token)
		c.items[token] = d
		tokens = append(tokens, token)
	}
	c.mu.Unlock()

	for i, f := range files {
		c.wg.Add(1)
		go c.uploadOne(ctx, tokens[i], f)
	}

	return tokens
}

func (c *Coordinator) uploadOne(ctx context.Context, token string, f File) {
	defer c.wg.Done()

	c.mu.Lock()
	if d, ok := c.items[token]; ok {
		d.Status = StatusUploading
	}
	c.mu.Unlock()

	result, err := c.store.Upload(ctx, media.UploadInput{
		FileName:    f.Name,
		ContentType: f.ContentType,
		Body:        f.Data,
	})

	c.mu.Lock()
	d, ok := c.items[token]
	if !ok {
		c.mu.Unlock()
		// The descriptor was removed while the upload was in flight.
		// The fresh asset has no local reference, so compensate.
		if err == nil && result.FileID != "" {
			if delErr := c.store.Delete(ctx, result.FileID); delErr != nil {
				logrus.WithError(delErr).WithField("file_id", result.FileID).
					Warn("Failed to delete asset uploaded after removal")
			}
		}
		return
	}

	if err != nil {
		d.Status = StatusFailed
		d.Error = err.Error()
		c.mu.Unlock()
		logrus.WithError(err).WithField("file", f.Name).Warn("Image upload failed")
		return
	}

	d.URL = result.URL
	d.RemoteID = result.FileID
	d.Status = StatusUploaded
	d.Error = ""
	c.mu.Unlock()
}

// SetAltText edits the alt text of one descriptor in place.
func (c *Coordinator) SetAltText(token, altText string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, ok := c.items[token]
	if !ok {
		return false
	}
	d.AltText = altText
	return true
}

// SetOrder parses and applies a display order. Unparseable or
// non-positive input unsets the order instead of failing.
func (c *Coordinator) SetOrder(token, raw string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, ok := c.items[token]
	if !ok {
		return false
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		d.Order = 0
		return true
	}
	d.Order = n
	return true
}

// Remove drops a descriptor from the batch. If the asset was already
// uploaded, exactly one delete is attempted against the media store
// first; the descriptor disappears locally whether or not that delete
// succeeds. A failed delete is logged, never surfaced.
func (c *Coordinator) Remove(ctx context.Context, token string) bool {
	c.mu.Lock()
	d, ok := c.items[token]
	if !ok {
		c.mu.Unlock()
		return false
	}
	remoteID := d.RemoteID
	delete(c.items, token)
	for i, t := range c.tokens {
		if t == token {
			c.tokens = append(c.tokens[:i], c.tokens[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	if remoteID != "" {
		if err := c.store.Delete(ctx, remoteID); err != nil {
			logrus.WithError(err).WithField("file_id", remoteID).
				Warn("Failed to delete remote image, removing local entry anyway")
		}
	}

	return true
}

// Wait blocks until every dispatched upload has resolved.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Snapshot returns all descriptors in insertion order.
func (c *Coordinator) Snapshot() []Descriptor {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Descriptor, 0, len(c.tokens))
	for _, token := range c.tokens {
		if d, ok := c.items[token]; ok {
			out = append(out, *d)
		}
	}
	return out
}

// Submittable returns only the descriptors eligible for persistence.
// Entries still uploading or failed are excluded even if the caller
// never removed them.
func (c *Coordinator) Submittable() []Descriptor {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Descriptor, 0, len(c.tokens))
	for _, token := range c.tokens {
		if d, ok := c.items[token]; ok && d.Uploadable() {
			out = append(out, *d)
		}
	}
	return out
}
