package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/deikotec/socialflow/internal/domain/docstore"
)

func TestMemoryStoreSetAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "companies", "missing")
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, store.Set(ctx, "companies", "c1", map[string]any{
		"name":     "Acme",
		"settings": map[string]any{"website": "https://acme.test", "weeklyPostCount": 3},
	}, false))

	doc, err := store.Get(ctx, "companies", "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", doc.ID)
	assert.Equal(t, "Acme", doc.Data["name"])
	assert.Equal(t, float64(3), doc.Data["settings"].(map[string]any)["weeklyPostCount"])

	// Returned documents are copies.
	doc.Data["settings"].(map[string]any)["website"] = "mutated"
	again, err := store.Get(ctx, "companies", "c1")
	require.NoError(t, err)
	assert.Equal(t, "https://acme.test", again.Data["settings"].(map[string]any)["website"])
}

func TestMemoryStoreMergeKeepsNestedFields(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "companies", "c1", map[string]any{
		"name":     "Acme",
		"settings": map[string]any{"website": "https://acme.test"},
	}, false))
	require.NoError(t, store.Set(ctx, "companies", "c1", map[string]any{
		"settings": map[string]any{"brandColor": "#fff"},
	}, true))

	doc, err := store.Get(ctx, "companies", "c1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", doc.Data["name"])
	assert.Equal(t, map[string]any{"website": "https://acme.test", "brandColor": "#fff"}, doc.Data["settings"])

	require.NoError(t, store.Set(ctx, "companies", "c1", map[string]any{"name": "Replaced"}, false))
	doc, err = store.Get(ctx, "companies", "c1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Replaced"}, doc.Data)
}

func TestMemoryStoreUpdateDotPaths(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	err := store.Update(ctx, "companies", "c1", map[string]any{"name": "x"})
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, store.Set(ctx, "companies", "c1", map[string]any{"name": "Acme"}, false))
	require.NoError(t, store.Update(ctx, "companies", "c1", map[string]any{
		"socialConnections.tiktok.accessToken": "tok",
		"socialConnections.tiktok.openId":      "open",
	}))

	doc, err := store.Get(ctx, "companies", "c1")
	require.NoError(t, err)
	value, ok := domain.Lookup(doc.Data, "socialConnections.tiktok.accessToken")
	require.True(t, ok)
	assert.Equal(t, "tok", value)
	value, ok = domain.Lookup(doc.Data, "socialConnections.tiktok.openId")
	require.True(t, ok)
	assert.Equal(t, "open", value)
}

func TestMemoryStoreQuery(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	docs := map[string]map[string]any{
		"a": {"status": "idea", "createdAt": "2026-01-01T00:00:00Z"},
		"b": {"status": "review", "createdAt": "2026-01-03T00:00:00Z"},
		"c": {"status": "approved", "createdAt": "2026-01-02T00:00:00Z"},
		"d": {"createdAt": "2026-01-04T00:00:00Z"},
	}
	for id, data := range docs {
		require.NoError(t, store.Set(ctx, "companies/x/content", id, data, false))
	}

	tests := []struct {
		name  string
		query domain.Query
		want  []string
	}{
		{
			name:  "ordered descending",
			query: domain.Query{OrderBy: "createdAt", Desc: true},
			want:  []string{"d", "b", "c", "a"},
		},
		{
			name: "in filter",
			query: domain.Query{
				Filters: []domain.Filter{{Field: "status", Op: domain.OpIn, Value: []string{"review", "approved"}}},
				OrderBy: "createdAt",
			},
			want: []string{"c", "b"},
		},
		{
			name: "not equal skips missing fields",
			query: domain.Query{
				Filters: []domain.Filter{{Field: "status", Op: domain.OpNotEqual, Value: "idea"}},
				OrderBy: "createdAt",
			},
			want: []string{"c", "b"},
		},
		{
			name:  "limit",
			query: domain.Query{OrderBy: "createdAt", Limit: 2},
			want:  []string{"a", "c"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Query(ctx, "companies/x/content", tt.query)
			require.NoError(t, err)
			ids := make([]string, 0, len(got))
			for _, doc := range got {
				ids = append(ids, doc.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	_, err := store.Query(ctx, "companies/x/content", domain.Query{
		Filters: []domain.Filter{{Field: "status", Op: "like", Value: "x"}},
	})
	assert.Error(t, err)
}

func TestMemoryStoreNewID(t *testing.T) {
	store := NewMemoryStore()
	assert.NotEqual(t, store.NewID("companies"), store.NewID("companies"))
}
