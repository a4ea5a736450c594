package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dontverifyme/internal/common"
)

const MaxIconSizeBytes = 512 * 1024

var (
	ErrorIconTooLarge        = errors.New("icon_too_large")
	ErrorIconTypeNotAllowed  = errors.New("icon_type_not_allowed")
	ErrorIconNotFound        = errors.New("icon_not_found")
	ErrorIconStoreUnwritable = errors.New("icon_store_unwritable")
)

// iconExtensions maps the accepted mime types to the extension the
// stored file gets
var iconExtensions = map[string]string{
	"image/svg+xml": "svg",
	"image/png":     "png",
	"image/jpeg":    "jpeg",
	"image/jpg":     "jpg",
	"image/webp":    "webp",
}

type IconStoreOpts struct {
	// BasePath is the directory all icons are written under, it is
	// created on initialisation if it does not exist
	BasePath string

	ServiceLogs chan<- common.ServiceLog
}

func NewIconStore(opts IconStoreOpts) (*IconStore, error) {
	serviceLogs := opts.ServiceLogs
	if serviceLogs == nil {
		serviceLogs = common.GetNoopServiceLog()
	}
	if err := os.MkdirAll(opts.BasePath, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrorIconStoreUnwritable, err)
	}
	return &IconStore{
		basePath:    opts.BasePath,
		serviceLogs: serviceLogs,
	}, nil
}

type IconStore struct {
	basePath    string
	serviceLogs chan<- common.ServiceLog
}

type SaveIconOpts struct {
	Slug        string
	ContentType string
	Data        []byte

	// PreviousFilename when set is removed after the new icon lands,
	// failures to remove it are logged and swallowed
	PreviousFilename string
}

// SaveIcon persists an uploaded icon and returns the filename it was
// stored under, in the form <slug>-<unix millis>.<ext>
func (s *IconStore) SaveIcon(opts SaveIconOpts) (string, error) {
	extension, ok := iconExtensions[strings.ToLower(opts.ContentType)]
	if !ok {
		return "", fmt.Errorf("%w: type[%s]", ErrorIconTypeNotAllowed, opts.ContentType)
	}
	if len(opts.Data) > MaxIconSizeBytes {
		return "", fmt.Errorf("%w: size[%v bytes]", ErrorIconTooLarge, len(opts.Data))
	}

	filename := fmt.Sprintf("%s-%v.%s", opts.Slug, time.Now().UnixMilli(), extension)
	if err := os.WriteFile(filepath.Join(s.basePath, filename), opts.Data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %s", ErrorIconStoreUnwritable, err)
	}

	if opts.PreviousFilename != "" {
		if err := s.DeleteIcon(opts.PreviousFilename); err != nil {
			s.serviceLogs <- common.ServiceLogf(common.LogLevelWarn, "failed to remove previous icon[%s]: %s", opts.PreviousFilename, err)
		}
	}

	return filename, nil
}

// GetIcon returns the icon's contents and its mime type
func (s *IconStore) GetIcon(filename string) ([]byte, string, error) {
	cleaned := filepath.Base(filename)
	data, err := os.ReadFile(filepath.Join(s.basePath, cleaned))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrorIconNotFound
		}
		return nil, "", fmt.Errorf("failed to read icon[%s]: %w", cleaned, err)
	}
	contentType := "application/octet-stream"
	extension := strings.TrimPrefix(filepath.Ext(cleaned), ".")
	for mimeType, ext := range iconExtensions {
		if ext == extension {
			contentType = mimeType
			break
		}
	}
	return data, contentType, nil
}

func (s *IconStore) DeleteIcon(filename string) error {
	cleaned := filepath.Base(filename)
	if err := os.Remove(filepath.Join(s.basePath, cleaned)); err != nil {
		if os.IsNotExist(err) {
			return ErrorIconNotFound
		}
		return fmt.Errorf("failed to remove icon[%s]: %w", cleaned, err)
	}
	return nil
}
