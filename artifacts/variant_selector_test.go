package artifacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateVariants() []ResolvedVariant {
	return []ResolvedVariant{
		NewVariant("apiElements", map[string]string{"usage": "java-api", "category": "library"}, nil),
		NewVariant("runtimeElements", map[string]string{"usage": "java-runtime", "category": "library"}, nil),
		NewVariant("sourcesElements", map[string]string{"category": "documentation"}, nil),
	}
}

func TestFirstVariant(t *testing.T) {
	chosen, err := FirstVariant(candidateVariants())
	require.NoError(t, err)
	assert.Equal(t, "apiElements", chosen.Name())

	chosen, err = FirstVariant(nil)
	require.NoError(t, err)
	assert.Nil(t, chosen)
}

func TestNoVariant(t *testing.T) {
	chosen, err := NoVariant(candidateVariants())
	require.NoError(t, err)
	assert.Nil(t, chosen)
}

func TestNamedVariant(t *testing.T) {
	chosen, err := NamedVariant("runtimeElements")(candidateVariants())
	require.NoError(t, err)
	assert.Equal(t, "runtimeElements", chosen.Name())

	chosen, err = NamedVariant("missing")(candidateVariants())
	require.NoError(t, err)
	assert.Nil(t, chosen)
}

func TestMatchAttributes(t *testing.T) {
	tests := []struct {
		name      string
		requested map[string]string
		want      string
	}{
		{
			name:      "exact match",
			requested: map[string]string{"usage": "java-runtime"},
			want:      "runtimeElements",
		},
		{
			name:      "most matching attributes win",
			requested: map[string]string{"usage": "java-api", "category": "library"},
			want:      "apiElements",
		},
		{
			name:      "missing attributes are compatible",
			requested: map[string]string{"category": "documentation"},
			want:      "sourcesElements",
		},
		{
			name:      "no compatible variant",
			requested: map[string]string{"usage": "native-link", "category": "library"},
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chosen, err := MatchAttributes(tt.requested)(candidateVariants())
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, chosen)
				return
			}
			require.NotNil(t, chosen)
			assert.Equal(t, tt.want, chosen.Name())
		})
	}
}

func TestMatchAttributes_Ambiguous(t *testing.T) {
	_, err := MatchAttributes(map[string]string{"category": "library"})(candidateVariants())

	var ambiguous *AmbiguousVariantError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []string{"apiElements", "runtimeElements"}, ambiguous.Candidates)
	assert.Equal(t,
		"cannot choose between variants apiElements, runtimeElements matching {category=library}",
		err.Error())
}

func TestVariant_AttributesAreCopied(t *testing.T) {
	attributes := map[string]string{"usage": "java-api"}
	v := NewVariant("apiElements", attributes, nil)
	attributes["usage"] = "changed"

	assert.Equal(t, "java-api", v.Attributes()["usage"])
	assert.Equal(t, Empty, v.Artifacts())
}
