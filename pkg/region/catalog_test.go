package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog_PreservesOrder(t *testing.T) {
	data := []byte(`{"東京都千代田区":"131016","大阪府大阪市":"271004","府中市A":"132063","府中市B":"342076"}`)

	entries, err := parseCatalog(data)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, "東京都千代田区", entries[0].Name)
	assert.Equal(t, Code("131016"), entries[0].Code)
	assert.Equal(t, "府中市A", entries[2].Name)
	assert.Equal(t, "府中市B", entries[3].Name)
}

func TestParseCatalog_Invalid(t *testing.T) {
	_, err := parseCatalog([]byte(`["not","an","object"]`))
	assert.Error(t, err)

	_, err = parseCatalog([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestMatchCatalog(t *testing.T) {
	entries := []CatalogEntry{
		{Name: "東京都千代田区", Code: "131016"},
		{Name: "東京都府中市", Code: "132063"},
		{Name: "広島県府中市", Code: "342076"},
		{Name: "大阪府大阪市", Code: "271004"},
	}

	tests := []struct {
		name  string
		place placeName
		want  Code
	}{
		{
			name:  "Exact concatenation",
			place: placeName{City: "千代田区", Prefecture: "東京都"},
			want:  "131016",
		},
		{
			name: "Both substrings",
			// No exact key "大阪府大阪市北区"; both names appear in the entry
			place: placeName{City: "大阪市", Prefecture: "大阪府"},
			want:  "271004",
		},
		{
			name: "City only, first catalog entry wins",
			// Prefecture from the geocoder doesn't appear in any entry;
			// both 府中市 entries match the city, the earlier one is taken
			place: placeName{City: "府中市", Prefecture: "Unknown-ken"},
			want:  "132063",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := matchCatalog(entries, tt.place)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchCatalog_NoMatch(t *testing.T) {
	entries := []CatalogEntry{{Name: "東京都千代田区", Code: "131016"}}

	_, err := matchCatalog(entries, placeName{City: "松山市", Prefecture: "愛媛県"})
	assert.ErrorIs(t, err, ErrNoMatch)
}
