package blob

import (
	"fmt"
	"strconv"

	domblob "github.com/kailas-cloud/biosearch/internal/domain/blob"
)

const (
	fieldContentType = "content_type"
	fieldData        = "data"
	fieldLength      = "length"
)

func blobToHash(b domblob.Blob) map[string]string {
	return map[string]string{
		fieldContentType: b.ContentType,
		fieldData:        string(b.Data),
		fieldLength:      strconv.FormatInt(int64(len(b.Data)), 10),
	}
}

func blobFromHash(m map[string]string) (domblob.Blob, error) {
	data := []byte(m[fieldData])
	length := int64(len(data))
	if s := m[fieldLength]; s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return domblob.Blob{}, fmt.Errorf("invalid length: %w", err)
		}
		if n != length {
			return domblob.Blob{}, fmt.Errorf("length mismatch: stored %d, data %d", n, length)
		}
	}
	b := domblob.New(data, m[fieldContentType])
	return b, nil
}
