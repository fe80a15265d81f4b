package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	apperrors "archibridge/pkg/errors"
)

var zipSignature = []byte("PK\x03\x04")

// IsZipFile reports whether the file at path starts with a zip local header
func IsZipFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, len(zipSignature))
	if _, err := io.ReadFull(f, head); err != nil {
		return false
	}
	return bytes.Equal(head, zipSignature)
}

// ConvertImagesFromLegacyArchive copies the images of a zip archive into the
// feature bag under their entry names. Other files are ignored.
func (m *Manager) ConvertImagesFromLegacyArchive(path string) error {
	if !IsZipFile(path) {
		return nil
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return nil
		}
		return apperrors.NewArchiveError("ARCHIVE_READ_FAILED", "cannot open archive "+path, err)
	}
	defer zr.Close()

	converted := 0
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() || !strings.HasPrefix(entry.Name, m.prefix) {
			continue
		}

		data, err := m.readEntry(entry)
		if err != nil {
			return apperrors.NewArchiveError("ARCHIVE_READ_FAILED",
				fmt.Sprintf("cannot read %s from %s", entry.Name, path), err)
		}
		if err := m.AddByteContentEntry(entry.Name, data); err != nil {
			if apperrors.IsValidation(err) {
				m.logger.Warn("Skipping unsupported image in archive",
					zap.String("archive", path),
					zap.String("entry", entry.Name),
				)
				continue
			}
			return err
		}
		converted++
	}

	m.logger.Info("Converted legacy archive images",
		zap.String("archive", path),
		zap.Int("images", converted),
	)
	return nil
}

func (m *Manager) readEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r := io.Reader(rc)
	if m.maxBytes > 0 {
		r = io.LimitReader(rc, m.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if m.maxBytes > 0 && int64(len(data)) > m.maxBytes {
		return nil, fmt.Errorf("entry exceeds %d bytes", m.maxBytes)
	}
	return data, nil
}
