package httpx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID int64 `json:"id"`
}

// The four services wrap lists differently; all shapes must decode to the
// same sequence.
func TestDecodeListEnvelopeShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bare array", `[{"id":1},{"id":2},{"id":3}]`},
		{"data array", `{"success":true,"data":[{"id":1},{"id":2},{"id":3}]}`},
		{"paginated data.data", `{"success":true,"data":{"current_page":1,"data":[{"id":1},{"id":2},{"id":3}],"total":3}}`},
		{"named collection", `{"chambres":[{"id":1},{"id":2},{"id":3}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := DecodeList[item](json.RawMessage(tc.body), "chambres")
			require.NoError(t, err)
			require.Len(t, items, 3)
			assert.Equal(t, int64(1), items[0].ID)
			assert.Equal(t, int64(3), items[2].ID)
		})
	}
}

func TestDecodeListUnknownShapeIsEmpty(t *testing.T) {
	for _, body := range []string{`{}`, `{"message":"ok"}`, `null`, `""`} {
		items, err := DecodeList[item](json.RawMessage(body), "chambres")
		require.NoError(t, err, "body %s", body)
		assert.Empty(t, items)
	}
}

func TestObjectUnwrapsDataEnvelope(t *testing.T) {
	wrapped := json.RawMessage(`{"success":true,"data":{"id":7}}`)
	var got item
	require.NoError(t, json.Unmarshal(Object(wrapped), &got))
	assert.Equal(t, int64(7), got.ID)

	// A bare object passes through untouched.
	bare := json.RawMessage(`{"id":9}`)
	require.NoError(t, json.Unmarshal(Object(bare), &got))
	assert.Equal(t, int64(9), got.ID)
}
