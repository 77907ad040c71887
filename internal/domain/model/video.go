package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// VideoRecord represents one registered video. The binary lives in the
// object-storage backend under StorageKey; the record only carries
// metadata. Duration, Resolution and Format are best-effort: no media
// inspection is performed, so they stay empty unless known.
type VideoRecord struct {
	ID           uuid.UUID
	StorageKey   string
	OriginalName string
	Title        string
	Size         int64
	ContentType  string
	URL          string
	Duration     string
	Resolution   string
	Format       string
	Protected    bool
	CreatedAt    time.Time
}

// NewVideoRecord builds a record for a freshly uploaded file. When
// title is empty it defaults to the original name with its extension
// stripped.
func NewVideoRecord(storageKey, originalName, title, contentType, url string, size int64) *VideoRecord {
	if title == "" {
		title = TitleFromFileName(originalName)
	}
	return &VideoRecord{
		ID:           uuid.New(),
		StorageKey:   storageKey,
		OriginalName: originalName,
		Title:        title,
		Size:         size,
		ContentType:  contentType,
		URL:          url,
		Format:       strings.TrimPrefix(strings.ToLower(filepath.Ext(originalName)), "."),
		CreatedAt:    time.Now(),
	}
}

// TitleFromFileName strips the extension from a client-supplied name.
func TitleFromFileName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// SizeHuman renders the record size for display.
func (v *VideoRecord) SizeHuman() string {
	return FormatSize(v.Size)
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatSize renders a byte count using base-1024 units with at most
// two decimal places. Zero renders as "0 Bytes".
func FormatSize(size int64) string {
	if size <= 0 {
		return "0 Bytes"
	}
	value := float64(size)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	s := fmt.Sprintf("%.2f", value)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s + " " + sizeUnits[unit]
}
