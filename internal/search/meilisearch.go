// Package search mirrors the catalog into Meilisearch for free-text queries.
// The catalog store stays authoritative; the index may lag behind it.
package search

import (
	"errors"

	"github.com/meilisearch/meilisearch-go"

	"property-storefront/internal/catalog"
	"property-storefront/internal/models"
)

// DefaultIndex is the Meilisearch index listings are mirrored into.
const DefaultIndex = "properties"

type SearchClient struct {
	client *meilisearch.Client
	index  string
}

func NewSearchClient(host, apiKey string) *SearchClient {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	return &SearchClient{
		client: client,
		index:  DefaultIndex,
	}
}

// InitIndex initializes the Meilisearch index
func (s *SearchClient) InitIndex() error {
	// Create index if it doesn't exist
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        s.index,
		PrimaryKey: "id",
	})
	if err != nil && !isIndexExists(err) {
		return err
	}

	index := s.client.Index(s.index)

	_, err = index.UpdateSearchableAttributes(&[]string{
		"title",
		"location.city",
		"location.state",
		"description",
	})
	if err != nil {
		return err
	}

	_, err = index.UpdateFilterableAttributes(&[]string{
		"type",
		"category",
		"price",
		"status",
		"details.bedrooms",
		"details.area",
		"location.state",
		"location.city",
	})
	if err != nil {
		return err
	}

	_, err = index.UpdateSortableAttributes(&[]string{
		"price",
		"createdAt",
	})
	return err
}

func isIndexExists(err error) bool {
	var apiErr *meilisearch.Error
	if errors.As(err, &apiErr) {
		return apiErr.MeilisearchApiError.Code == "index_already_exists"
	}
	return false
}

// IndexProperty indexes a single property
func (s *SearchClient) IndexProperty(property *models.Property) error {
	_, err := s.client.Index(s.index).AddDocuments([]models.Property{*property})
	return err
}

// IndexProperties indexes multiple properties
func (s *SearchClient) IndexProperties(properties []models.Property) error {
	if len(properties) == 0 {
		return nil
	}
	_, err := s.client.Index(s.index).AddDocuments(properties)
	return err
}

// DeleteProperty removes a property from the index
func (s *SearchClient) DeleteProperty(id string) error {
	_, err := s.client.Index(s.index).DeleteDocument(id)
	return err
}

// Search returns the ids of matching properties in relevance order.
func (s *SearchClient) Search(query string, filters catalog.Filters, limit int64) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}

	req := &meilisearch.SearchRequest{
		Limit:                limit,
		AttributesToRetrieve: []string{"id"},
	}
	if expr := BuildFilter(filters); expr != "" {
		req.Filter = expr
	}
	if filters.Sort == catalog.SortRecent {
		req.Sort = []string{"createdAt:desc"}
	}

	res, err := s.client.Index(s.index).Search(query, req)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if id := getString(hit, "id"); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// getString safely extracts a string from a search hit
func getString(hit interface{}, key string) string {
	m, ok := hit.(map[string]interface{})
	if !ok {
		return ""
	}
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}
