package usecase

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/otto-sketch/video-player-1/internal/config"
)

var (
	// ErrMissingFile is returned when the request carries no file part.
	ErrMissingFile = errors.New("no video file provided")

	// ErrFileTooLarge is returned when the file exceeds the size limit.
	ErrFileTooLarge = errors.New("file exceeds the maximum allowed size")

	// ErrUnsupportedType is returned when the declared content type is
	// not acceptable under the configured policy.
	ErrUnsupportedType = errors.New("unsupported content type")

	// ErrExtensionMismatch is returned when the policy pins a file
	// extension and the uploaded filename does not carry it.
	ErrExtensionMismatch = errors.New("file extension not allowed")
)

// UploadPolicy is the declarative rule set an inbound file must satisfy
// before any network call is made. Validate is a pure predicate over
// its inputs; it performs no I/O.
type UploadPolicy struct {
	// MaxBytes is the maximum accepted file size.
	MaxBytes int64

	// AllowedTypes is the explicit content-type allow-list (lower case).
	AllowedTypes []string

	// AcceptVideoPrimary additionally accepts any type whose primary
	// type is "video".
	AcceptVideoPrimary bool

	// RequiredExtension, when non-empty, must match the filename's
	// extension in addition to the content-type check. Both conditions
	// are required; a mismatched pair is rejected even if either alone
	// would pass.
	RequiredExtension string

	// ForcedExtension, when non-empty, overrides the client-supplied
	// extension during storage-key derivation.
	ForcedExtension string
}

// PolicyFromConfig builds an UploadPolicy from the configuration.
func PolicyFromConfig(cfg config.UploadConfig) UploadPolicy {
	return UploadPolicy{
		MaxBytes:           cfg.MaxBytes,
		AllowedTypes:       cfg.AllowedTypes,
		AcceptVideoPrimary: cfg.AcceptVideoPrimary,
		RequiredExtension:  cfg.RequiredExtension,
		ForcedExtension:    cfg.ForcedExtension,
	}
}

// Validate decides whether an inbound file is acceptable. It reports
// the specific violated constraint so callers can self-correct.
func (p UploadPolicy) Validate(contentType, fileName string, size int64) error {
	if size <= 0 {
		return ErrMissingFile
	}
	if p.MaxBytes > 0 && size > p.MaxBytes {
		return ErrFileTooLarge
	}

	if !p.typeAllowed(contentType) {
		return ErrUnsupportedType
	}

	if p.RequiredExtension != "" {
		ext := strings.ToLower(filepath.Ext(fileName))
		if ext != p.RequiredExtension {
			return ErrExtensionMismatch
		}
	}

	return nil
}

func (p UploadPolicy) typeAllowed(contentType string) bool {
	// Strip any media-type parameters (e.g. "; codecs=...").
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}

	if p.AcceptVideoPrimary && strings.HasPrefix(ct, "video/") {
		return true
	}
	for _, allowed := range p.AllowedTypes {
		if ct == allowed {
			return true
		}
	}
	return false
}
