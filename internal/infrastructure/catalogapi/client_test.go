// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package catalogapi

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cartograph-io/cartograph-go/internal/domain/model"
	"github.com/cartograph-io/cartograph-go/pkg/constants"
	"github.com/cartograph-io/cartograph-go/pkg/errors"
	"github.com/cartograph-io/cartograph-go/pkg/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		Timeout:    5 * time.Second,
		MaxRetries: 0,
		RetryDelay: time.Millisecond,
	})
	require.NoError(t, err)
	return client
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Config{APIKey: "k"})
	require.Error(t, err)
	assert.IsType(t, errors.InvalidRequest{}, err)

	_, err = NewClient(Config{BaseURL: "https://tenant.cartograph.io"})
	require.Error(t, err)
	assert.IsType(t, errors.InvalidRequest{}, err)
}

func TestFetchAll(t *testing.T) {
	ctx := context.Background()

	t.Run("maps tag definitions", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, constants.TypedefsPath, r.URL.Path)
			assert.Equal(t, "CLASSIFICATION", r.URL.Query().Get("type"))
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			_ = json.NewEncoder(w).Encode(typedefsResponse{
				TagDefs: []wireTypeDef{
					{Name: "hash-1", DisplayName: "PII", Description: "personal data"},
				},
			})
		})

		defs, err := client.FetchAll(ctx, model.KindTag)
		require.NoError(t, err)
		require.Len(t, defs, 1)
		assert.Equal(t, "hash-1", defs[0].ID)
		assert.Equal(t, "PII", defs[0].Name)
		assert.Equal(t, model.KindTag, defs[0].Kind)
		assert.Equal(t, "personal data", defs[0].Description)
	})

	t.Run("maps custom metadata with attributes", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "BUSINESS_METADATA", r.URL.Query().Get("type"))
			_ = json.NewEncoder(w).Encode(typedefsResponse{
				CustomMetadataDefs: []wireTypeDef{
					{
						Name:        "hash-cm",
						DisplayName: "Governance",
						AttributeDefs: []wireAttrDef{
							{Name: "attr-hash", DisplayName: "owner", TypeName: "string"},
						},
					},
				},
			})
		})

		defs, err := client.FetchAll(ctx, model.KindCustomMetadata)
		require.NoError(t, err)
		require.Len(t, defs, 1)
		require.Len(t, defs[0].Attributes, 1)
		assert.Equal(t, "attr-hash", defs[0].Attributes[0].ID)
		assert.Equal(t, "owner", defs[0].Attributes[0].Name)
	})

	t.Run("maps enum elements", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "ENUM", r.URL.Query().Get("type"))
			_ = json.NewEncoder(w).Encode(typedefsResponse{
				EnumDefs: []wireEnumDef{
					{
						Name:        "hash-enum",
						DisplayName: "DataQuality",
						ElementDefs: []wireEnumElement{{Value: "GOLD"}, {Value: "BRONZE"}},
					},
				},
			})
		})

		defs, err := client.FetchAll(ctx, model.KindEnum)
		require.NoError(t, err)
		require.Len(t, defs, 1)
		assert.Equal(t, []string{"GOLD", "BRONZE"}, defs[0].Elements)
	})

	t.Run("unknown kind", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		_, err := client.FetchAll(ctx, model.Kind("bogus"))
		require.Error(t, err)
		assert.IsType(t, errors.Unexpected{}, err)
	})
}

func TestExecutePage(t *testing.T) {
	ctx := context.Background()
	typeName := "table"
	name := "orders"

	t.Run("renders a valid query and maps the response", func(t *testing.T) {
		var body map[string]any
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, constants.IndexSearchPath, r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			raw, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(raw, &body), "rendered query must be valid JSON")

			_ = json.NewEncoder(w).Encode(searchResponse{
				ApproximateCount: 42,
				HasMore:          true,
				Entities: []model.Asset{
					{Guid: "g1", Name: "orders", CreateTime: 100},
				},
			})
		})

		page, err := client.ExecutePage(ctx, model.PageRequest{
			Criteria: model.SearchCriteria{
				TypeName: &typeName,
				Name:     &name,
				Tags:     []string{"tag-id-1", "tag-id-2"},
			},
			Sort: []model.SortClause{
				{Field: constants.SortCreateTime, Ascending: true},
				{Field: constants.SortGuid, Ascending: true},
			},
			From: 10,
			Size: 5,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(42), page.TotalEstimate)
		assert.True(t, page.HasMore)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "g1", page.Items[0].Guid)

		assert.Equal(t, float64(10), body["from"])
		assert.Equal(t, float64(5), body["size"])
		sorts, ok := body["sort"].([]any)
		require.True(t, ok)
		assert.Len(t, sorts, 2)
	})

	t.Run("bulk constraint appears in the query", func(t *testing.T) {
		var raw []byte
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			raw, _ = io.ReadAll(r.Body)
			_ = json.NewEncoder(w).Encode(searchResponse{})
		})

		_, err := client.ExecutePage(ctx, model.PageRequest{
			Sort:  []model.SortClause{{Field: constants.SortCreateTime, Ascending: true}},
			Size:  5,
			After: &model.SortKey{Timestamp: 1700000000, Guid: "g-last"},
		})
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Contains(t, string(raw), `"gt":1700000000`)
		assert.Contains(t, string(raw), `"g-last"`)
	})

	t.Run("audit domain uses the audit endpoint", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, constants.AuditSearchPath, r.URL.Path)
			_ = json.NewEncoder(w).Encode(searchResponse{})
		})

		_, err := client.ExecutePage(ctx, model.PageRequest{
			Criteria: model.SearchCriteria{Domain: model.DomainAudit},
			Sort:     []model.SortClause{{Field: constants.SortCreateTime, Ascending: true}},
			Size:     5,
		})
		require.NoError(t, err)
	})

	t.Run("raw query clause is embedded verbatim", func(t *testing.T) {
		var raw []byte
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			raw, _ = io.ReadAll(r.Body)
			_ = json.NewEncoder(w).Encode(searchResponse{})
		})

		_, err := client.ExecutePage(ctx, model.PageRequest{
			Criteria: model.SearchCriteria{
				Query: map[string]any{"term": map[string]any{"owner": "data-team"}},
			},
			Sort: []model.SortClause{{Field: constants.SortCreateTime, Ascending: true}},
			Size: 5,
		})
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Contains(t, string(raw), `"owner":"data-team"`)
	})
}

func TestMapTransportError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected any
	}{
		{
			name:     "404 maps to NotFound",
			err:      &httpclient.RetryableError{StatusCode: http.StatusNotFound},
			expected: errors.NotFound{},
		},
		{
			name:     "400 maps to InvalidRequest",
			err:      &httpclient.RetryableError{StatusCode: http.StatusBadRequest},
			expected: errors.InvalidRequest{},
		},
		{
			name:     "422 maps to InvalidRequest",
			err:      &httpclient.RetryableError{StatusCode: http.StatusUnprocessableEntity},
			expected: errors.InvalidRequest{},
		},
		{
			name:     "409 maps to Conflict",
			err:      &httpclient.RetryableError{StatusCode: http.StatusConflict},
			expected: errors.Conflict{},
		},
		{
			name:     "429 maps to RateLimit",
			err:      &httpclient.RetryableError{StatusCode: http.StatusTooManyRequests},
			expected: errors.RateLimit{},
		},
		{
			name:     "500 maps to ApiConnection",
			err:      &httpclient.RetryableError{StatusCode: http.StatusInternalServerError},
			expected: errors.ApiConnection{},
		},
		{
			name:     "network error maps to ApiConnection",
			err:      stderrors.New("connection refused"),
			expected: errors.ApiConnection{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.IsType(t, tc.expected, mapTransportError(tc.err))
		})
	}
}

func TestIsReady(t *testing.T) {
	ctx := context.Background()

	t.Run("healthy", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/health", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		})
		assert.NoError(t, client.IsReady(ctx))
	})

	t.Run("unreachable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		err := client.IsReady(ctx)
		require.Error(t, err)
		assert.IsType(t, errors.ApiConnection{}, err)
	})
}

func TestCreateTypeDef(t *testing.T) {
	ctx := context.Background()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, constants.TypedefsPath, r.URL.Path)
		assert.Equal(t, "CLASSIFICATION", r.URL.Query().Get("type"))

		var payload typedefsResponse
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload.TagDefs, 1)
		assert.Equal(t, "PII", payload.TagDefs[0].DisplayName)

		// The server assigns the opaque ID on creation.
		_ = json.NewEncoder(w).Encode(typedefsResponse{
			TagDefs: []wireTypeDef{{Name: "assigned-hash", DisplayName: "PII"}},
		})
	})

	def, err := client.CreateTypeDef(ctx, model.TypeDef{Kind: model.KindTag, Name: "PII"})
	require.NoError(t, err)
	assert.Equal(t, "assigned-hash", def.ID)
	assert.Equal(t, "PII", def.Name)
	assert.Equal(t, model.KindTag, def.Kind)
}

func TestDeleteTypeDef(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes by opaque ID", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, constants.TypedefsPath+"/name/hash-1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})
		assert.NoError(t, client.DeleteTypeDef(ctx, model.KindTag, "hash-1"))
	})

	t.Run("missing definition surfaces NotFound", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		err := client.DeleteTypeDef(ctx, model.KindTag, "gone")
		require.Error(t, err)

		var notFound errors.NotFound
		assert.True(t, stderrors.As(err, &notFound))
	})
}
