// Package gcs uploads avatar images to a Cloud Storage bucket.
package gcs

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/go-session-profile/pkg/helpers"
)

var ErrBadDataURI = errors.New("malformed data uri")

var extByType = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
	"image/bmp":     ".bmp",
}

type AvatarStore struct {
	Client *storage.Client
	Bucket string
}

func NewAvatarStore(client *storage.Client, bucket string) *AvatarStore {
	return &AvatarStore{Client: client, Bucket: bucket}
}

// Store uploads the decoded image to avatars/<username>/<uuid><ext> and
// returns its public URL.
func (s *AvatarStore) Store(ctx context.Context, username, dataURI string) (string, error) {
	contentType, data, err := DecodeDataURI(dataURI)
	if err != nil {
		return "", err
	}
	objectPath := path.Join("avatars", url.PathEscape(username), uuid.NewString()+extByType[contentType])
	return helpers.UploadObject(ctx, s.Client, s.Bucket, objectPath, contentType, bytes.NewReader(data))
}

// DecodeDataURI splits "data:<type>[;base64],<payload>" into its media type
// and raw bytes.
func DecodeDataURI(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrBadDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrBadDataURI
	}
	params := strings.Split(meta, ";")
	contentType := strings.ToLower(params[0])
	isBase64 := false
	for _, p := range params[1:] {
		if p == "base64" {
			isBase64 = true
		}
	}
	if !isBase64 {
		raw, err := url.PathUnescape(payload)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrBadDataURI, err)
		}
		return contentType, []byte(raw), nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBadDataURI, err)
	}
	return contentType, data, nil
}
