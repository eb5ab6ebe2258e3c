package correlation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMethodZeroValueIsSpearman(t *testing.T) {
	var m Method
	assert.Equal(t, Spearman, m)
}

func TestParseMethod(t *testing.T) {
	testCases := []struct {
		in   string
		want Method
	}{
		{"spearman", Spearman},
		{"Pearson", Pearson},
		{"  KENDALL ", Kendall},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			m, err := ParseMethod(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, m)
		})
	}

	_, err := ParseMethod("cosine")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestMethodString(t *testing.T) {
	assert.Equal(t, "spearman", Spearman.String())
	assert.Equal(t, "pearson", Pearson.String())
	assert.Equal(t, "kendall", Kendall.String())
	assert.Equal(t, "Method(9)", Method(9).String())
	assert.False(t, Method(9).Valid())
}

func TestMethodYAML(t *testing.T) {
	var doc struct {
		Method Method `yaml:"method"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("method: kendall\n"), &doc))
	assert.Equal(t, Kendall, doc.Method)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "method: kendall\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("method: cosine\n"), &doc))
}

func TestMethodFlagValue(t *testing.T) {
	m := Pearson
	require.NoError(t, m.Set("kendall"))
	assert.Equal(t, Kendall, m)
	assert.Equal(t, "method", m.Type())
	assert.Error(t, m.Set("bogus"))
	assert.Equal(t, Kendall, m)
}
