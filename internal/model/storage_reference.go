package model

import (
	"fmt"
	"net/url"
	"strings"
)

// PublicObjectMarker : сегмент, отделяющий базовый адрес от {bucket}/{key}
const PublicObjectMarker = "/public/"

// StorageReference : публичная ссылка, разобранная на бакет и путь объекта
type StorageReference struct {
	Bucket string
	Path   string
}

// ParseStorageReference : разбирает ссылку вида {base}/public/{bucket}/{key}
func ParseStorageReference(raw string) (StorageReference, error) {
	idx := strings.Index(raw, PublicObjectMarker)
	if idx < 0 {
		return StorageReference{}, fmt.Errorf("%w: нет сегмента %q в %q", ErrMalformedReference, PublicObjectMarker, raw)
	}

	rest := raw[idx+len(PublicObjectMarker):]
	if cut := strings.IndexAny(rest, "?#"); cut >= 0 {
		rest = rest[:cut]
	}

	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || strings.Trim(key, "/") == "" {
		return StorageReference{}, fmt.Errorf("%w: нет бакета или пути в %q", ErrMalformedReference, raw)
	}

	key, err := url.PathUnescape(key)
	if err != nil {
		return StorageReference{}, fmt.Errorf("%w: %v", ErrMalformedReference, err)
	}

	return StorageReference{Bucket: bucket, Path: key}, nil
}

// BuildPublicURL : обратная к ParseStorageReference операция
func BuildPublicURL(baseURL, bucket, key string) string {
	segments := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.TrimRight(baseURL, "/") + PublicObjectMarker + bucket + "/" + strings.Join(segments, "/")
}

func (r StorageReference) String() string {
	return r.Bucket + "/" + r.Path
}
