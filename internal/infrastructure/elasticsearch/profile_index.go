// Package elasticsearch indexes public profile fields for search.
package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-session-profile/internal/application"
)

const requestTimeout = 3 * time.Second

// ProfilesMapping is the index mapping used when the index is first created.
const ProfilesMapping = `{
  "mappings": {
    "properties": {
      "username":   {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "status":     {"type": "text"},
      "avatar_url": {"type": "keyword", "index": false}
    }
  }
}`

type ProfileIndex struct {
	ES        *elasticsearch.Client
	IndexName string
}

func NewProfileIndex(es *elasticsearch.Client, index string) *ProfileIndex {
	return &ProfileIndex{ES: es, IndexName: index}
}

type profileDoc struct {
	Username  string `json:"username"`
	Status    string `json:"status"`
	AvatarURL string `json:"avatar_url"`
}

// Index upserts the profile keyed by username. Inline data-URI avatars are
// not copied into the index.
func (x *ProfileIndex) Index(ctx context.Context, p application.Profile) error {
	doc := profileDoc{Username: p.Username, Status: p.Status, AvatarURL: p.AvatarURL}
	if len(doc.AvatarURL) > 5 && doc.AvatarURL[:5] == "data:" {
		doc.AvatarURL = ""
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.IndexName, DocumentID: p.Username, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return fmt.Errorf("es index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match over username and status.
func (x *ProfileIndex) Search(ctx context.Context, q string, size int) ([]application.Profile, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"username^2", "status"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.IndexName),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source profileDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]application.Profile, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, application.Profile{
			Username:  h.Source.Username,
			Status:    h.Source.Status,
			AvatarURL: h.Source.AvatarURL,
		})
	}
	return out, nil
}

var _ application.ProfileIndex = (*ProfileIndex)(nil)
