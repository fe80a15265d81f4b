// Package archive stores image bytes in the model's feature bag, keyed by
// the SHA-1 of their content.
package archive

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"archibridge/application/ports"
	"archibridge/domain/config"
	"archibridge/domain/core/aggregates"
	"archibridge/domain/core/entities"
	"archibridge/domain/core/valueobjects"
	"archibridge/domain/events"
	apperrors "archibridge/pkg/errors"
)

// Manager is the image store of one model. It is not safe for concurrent use.
type Manager struct {
	model     *aggregates.Model
	persister ports.ModelPersister
	prefix    string
	maxBytes  int64
	logger    *zap.Logger
}

// NewManager binds a Manager to model. persister may be nil when the model is never saved.
func NewManager(model *aggregates.Model, persister ports.ModelPersister, cfg *config.DomainConfig, logger *zap.Logger) *Manager {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		model:     model,
		persister: persister,
		prefix:    cfg.ImageFeaturePrefix,
		maxBytes:  cfg.MaxImageBytes,
		logger:    logger,
	}
}

// Model returns the bound model
func (m *Manager) Model() *aggregates.Model {
	return m.model
}

// ImageKey derives the storage key for data
func (m *Manager) ImageKey(data []byte, ext string) string {
	return valueobjects.ImageKey(m.prefix, data, ext)
}

// IsImageKey reports whether key lies under the image prefix
func (m *Manager) IsImageKey(key string) bool {
	return valueobjects.IsImageKey(m.prefix, key)
}

// IsContentKey reports whether key is derived from the image bytes, so its
// content never changes
func (m *Manager) IsContentKey(key string) bool {
	return valueobjects.IsContentKey(m.prefix, key)
}

// AddImageFromFile stores the file at path and returns its key
func (m *Manager) AddImageFromFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", apperrors.NewFileNotFoundError(path, err)
	}
	if m.maxBytes > 0 && info.Size() > m.maxBytes {
		return "", apperrors.NewDomainError(apperrors.DomainValidationError, "IMAGE_TOO_LARGE",
			fmt.Sprintf("image exceeds %d bytes", m.maxBytes)).
			WithDetail("path", path).
			WithDetail("size", info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", apperrors.NewFileNotFoundError(path, err)
	}

	key := m.ImageKey(data, filepath.Ext(path))
	if err := m.AddByteContentEntry(key, data); err != nil {
		return "", err
	}
	return key, nil
}

// AddByteContentEntry stores data under key unless the key is already present.
// New data must decode as a supported image.
func (m *Manager) AddByteContentEntry(key string, data []byte) error {
	if m.HasImageEntry(key) {
		return nil
	}
	if err := ValidateImage(data); err != nil {
		return apperrors.NewUnsupportedImageError(key).WithCause(err)
	}

	m.model.Features().Put(key, base64.StdEncoding.EncodeToString(data))
	m.model.RecordEvent(events.NewImageAdded(m.model.ID(), key, len(data), time.Now()))
	m.logger.Debug("Image stored", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

// HasImageEntry reports whether key is stored
func (m *Manager) HasImageEntry(key string) bool {
	return key != "" && m.model.Features().Has(key)
}

// BytesFromEntry returns the stored bytes, or nil when key is absent or its
// value does not decode
func (m *Manager) BytesFromEntry(key string) []byte {
	value, ok := m.model.Features().Get(key)
	if !ok {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		m.logger.Warn("Stored image is not valid base64", zap.String("key", key), zap.Error(err))
		return nil
	}
	return data
}

// CreateImage decodes the stored image. Unknown keys return nil, nil.
func (m *Manager) CreateImage(key string) (image.Image, error) {
	data := m.BytesFromEntry(key)
	if data == nil {
		return nil, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewUnsupportedImageError(key).WithCause(err)
	}
	return img, nil
}

// CopyImageBytes copies the entry for key from src when this model lacks it
func (m *Manager) CopyImageBytes(src *aggregates.Model, key string) {
	if src == nil || m.HasImageEntry(key) {
		return
	}
	if value, ok := src.Features().Get(key); ok {
		m.model.Features().Put(key, value)
	}
}

// ImagePaths returns the sorted image keys referenced by view figures
func (m *Manager) ImagePaths() []string {
	var out []string
	for _, p := range m.model.ReferencedImagePaths() {
		if valueobjects.IsImageKey(m.prefix, p) {
			out = append(out, p)
		}
	}
	return out
}

// HasImages reports whether any view figure shows a stored image
func (m *Manager) HasImages() bool {
	return len(m.ImagePaths()) > 0
}

// LoadedImagePaths returns the keys of every stored image
func (m *Manager) LoadedImagePaths() []string {
	stored := m.model.Features().WithPrefix(m.prefix)
	out := make([]string, 0, len(stored))
	for _, f := range stored {
		out = append(out, f.Name)
	}
	return out
}

// SaveModel writes the model to its file. Images no view references are left
// out of the file but stay in memory so an undo can show them again.
func (m *Manager) SaveModel(ctx context.Context) error {
	path := m.model.File()
	if path == "" {
		return nil
	}
	if m.persister == nil {
		return apperrors.NewArchiveError("ARCHIVE_SAVE_FAILED", "no persister configured", nil)
	}

	features := m.model.Features()
	pruned := m.unreferenced()
	features.RemoveAll(pruned)
	defer features.AddAll(pruned)

	if err := m.persister.Save(ctx, m.model, path); err != nil {
		return apperrors.NewArchiveError("ARCHIVE_SAVE_FAILED", "cannot save model to "+path, err).
			WithDetail("path", path)
	}

	m.model.RecordEvent(events.NewModelSaved(m.model.ID(), path, len(pruned), time.Now()))
	m.logger.Info("Model saved",
		zap.String("model_id", m.model.ID()),
		zap.String("path", path),
		zap.Int("pruned_images", len(pruned)),
	)
	return nil
}

func (m *Manager) unreferenced() []*entities.Feature {
	referenced := make(map[string]struct{})
	for _, p := range m.ImagePaths() {
		referenced[p] = struct{}{}
	}

	var out []*entities.Feature
	for _, f := range m.model.Features().WithPrefix(m.prefix) {
		if _, ok := referenced[f.Name]; !ok {
			out = append(out, f)
		}
	}
	return out
}
