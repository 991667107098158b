// Package artifacts manages the rendered PDF documents and their
// side-channel metadata in the object store.
package artifacts

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/smallbiznis/notaventa/internal/blobstore"
	"github.com/smallbiznis/notaventa/internal/config"
	"go.uber.org/fx"
)

const (
	metaLastSendTime = "last-send-time"
	metaDownloaded   = "downloaded"
	metaSendCount    = "send-count"
)

// Manager stores one PDF per note under a deterministic key and keeps its
// send/download metadata. Metadata mutations are read-modify-write with no
// concurrent-writer protection; the last writer wins.
type Manager struct {
	store  blobstore.ObjectStore
	prefix string
	now    func() time.Time
}

type Params struct {
	fx.In

	Store blobstore.ObjectStore
	Cfg   config.Config
}

func New(p Params) *Manager {
	return NewManager(p.Store, p.Cfg.ArtifactPrefix)
}

func NewManager(store blobstore.ObjectStore, prefix string) *Manager {
	return &Manager{store: store, prefix: prefix, now: time.Now}
}

// Key derives the object key for a note document: {tax_id}/{folio}.pdf,
// under the configured prefix when one is set.
func (m *Manager) Key(taxID, folio string) string {
	key := fmt.Sprintf("%s/%s.pdf", taxID, folio)
	if m.prefix != "" {
		key = m.prefix + "/" + key
	}
	return key
}

// Store writes the document and initializes its metadata: sent once, not yet
// downloaded.
func (m *Manager) Store(ctx context.Context, pdf []byte, taxID, folio string) (string, error) {
	key := m.Key(taxID, folio)
	meta := blobstore.Metadata{
		metaLastSendTime: m.now().UTC().Format(time.RFC3339),
		metaDownloaded:   "false",
		metaSendCount:    "1",
	}
	if err := m.store.Put(ctx, key, pdf, "application/pdf", meta); err != nil {
		return "", err
	}
	return key, nil
}

// Fetch returns the stored document bytes.
func (m *Manager) Fetch(ctx context.Context, taxID, folio string) ([]byte, error) {
	return m.store.Get(ctx, m.Key(taxID, folio))
}

// MarkDownloaded flips the downloaded flag. Send count and send time are
// untouched, so the call is idempotent.
func (m *Manager) MarkDownloaded(ctx context.Context, taxID, folio string) error {
	key := m.Key(taxID, folio)
	meta, err := m.store.Head(ctx, key)
	if err != nil {
		return err
	}

	meta[metaDownloaded] = "true"
	return m.store.CopyWithMetadata(ctx, key, meta)
}

// MarkResent increments the send count and refreshes the send time. The
// downloaded flag is untouched.
func (m *Manager) MarkResent(ctx context.Context, taxID, folio string) error {
	key := m.Key(taxID, folio)
	meta, err := m.store.Head(ctx, key)
	if err != nil {
		return err
	}

	sendCount, err := strconv.Atoi(meta[metaSendCount])
	if err != nil {
		sendCount = 1
	}
	meta[metaSendCount] = strconv.Itoa(sendCount + 1)
	meta[metaLastSendTime] = m.now().UTC().Format(time.RFC3339)
	return m.store.CopyWithMetadata(ctx, key, meta)
}

// Metadata returns the artifact's current metadata.
func (m *Manager) Metadata(ctx context.Context, taxID, folio string) (blobstore.Metadata, error) {
	return m.store.Head(ctx, m.Key(taxID, folio))
}
