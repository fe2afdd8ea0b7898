package generation

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
)

// Image is a single generated image extracted from an upstream archive.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExtractImage returns the first file in a generation archive.
// Returns ErrEmptyArchive when the archive holds no files and ErrArchiveTooLarge
// when the decompressed entry exceeds limit bytes.
func ExtractImage(archive []byte, limit int64) (*Image, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %v", ErrInvalidArchive, f.Name, err)
		}
		data, err := io.ReadAll(io.LimitReader(rc, limit+1))
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidArchive, f.Name, err)
		}
		if int64(len(data)) > limit {
			return nil, ErrArchiveTooLarge
		}

		return &Image{
			Name:        f.Name,
			ContentType: contentType(f.Name, data),
			Data:        data,
		}, nil
	}

	return nil, ErrEmptyArchive
}

func contentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
