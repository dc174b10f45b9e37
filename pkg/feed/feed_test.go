package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFrame(t *testing.T) {
	data := []byte(`{"kind": "nodes", "rows": [{"id": 1, "action": "update", "text": "Anna"}]}`)
	f, err := DecodeFrame(data)
	require.NoError(t, err)
	assert.Equal(t, "nodes", f.Kind)
	require.Len(t, f.Rows, 1)

	table := f.Table()
	require.Equal(t, 1, table.Len())
	id, ok := table.Row(0).Str("id")
	require.True(t, ok)
	assert.Equal(t, "1", id)
	assert.True(t, table.Has("action"))
}

func TestDecodeFrameUnknownKind(t *testing.T) {
	_, err := DecodeFrame([]byte(`{"kind": "edges", "rows": []}`))
	assert.ErrorContains(t, err, "unknown feed frame kind")
}

func TestDecodeFrameMalformed(t *testing.T) {
	_, err := DecodeFrame([]byte(`{`))
	assert.Error(t, err)
}
