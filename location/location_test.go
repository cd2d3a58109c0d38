package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Resolve(t *testing.T) {
	t.Parallel()

	table, err := NewTable(map[Stack]string{
		InsightAPI: "https://api.example.com/",
		GlobalAPI:  "https://global.example.com",
	})
	require.NoError(t, err)

	baseURL, err := table.Resolve(InsightAPI)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", baseURL)

	_, err = table.Resolve(IntegrationAPI)
	require.ErrorIs(t, err, ErrUnknownStack)

	assert.Equal(t, []Stack{GlobalAPI, InsightAPI}, table.Stacks())
}

func TestTable_Set(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		stack   Stack
		baseURL string
		wantErr bool
	}{
		{name: "absolute url", stack: InsightAPI, baseURL: "http://localhost:8080"},
		{name: "url with path", stack: InsightAPI, baseURL: "https://example.com/api/"},
		{name: "relative url", stack: InsightAPI, baseURL: "/api", wantErr: true},
		{name: "missing host", stack: InsightAPI, baseURL: "http://", wantErr: true},
		{name: "empty stack", stack: "", baseURL: "http://localhost", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			table := MustNewTable(nil)
			err := table.Set(tt.stack, tt.baseURL)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestMustNewTable_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustNewTable(map[Stack]string{InsightAPI: "not a url"})
	})
}
