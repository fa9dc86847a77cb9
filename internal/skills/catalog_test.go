package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_AliasesCollapseToCanonical(t *testing.T) {
	normalized, invalid := Normalize("Python, py, Docker")

	assert.Equal(t, []string{"Docker", "Python"}, normalized)
	assert.Empty(t, invalid)
}

func TestNormalize_UnknownTokensReported(t *testing.T) {
	normalized, invalid := Normalize("foobar")

	assert.Empty(t, normalized)
	assert.Equal(t, []string{"foobar"}, invalid)
}

func TestNormalize_MixedInput(t *testing.T) {
	normalized, invalid := Normalize(" js ,GOLANG, что-то странное ,k8s")

	assert.Equal(t, []string{"Go", "JavaScript", "Kubernetes"}, normalized)
	assert.Equal(t, []string{"что-то странное"}, invalid)
}

func TestNormalize_EmptyAndWhitespace(t *testing.T) {
	normalized, invalid := Normalize(" , ,, ")

	assert.Empty(t, normalized)
	assert.Empty(t, invalid)
}

func TestNormalize_CaseInsensitive(t *testing.T) {
	normalized, invalid := Normalize("PYTHON, PoStGrEs")

	assert.Equal(t, []string{"PostgreSQL", "Python"}, normalized)
	assert.Empty(t, invalid)
}

func TestLookup(t *testing.T) {
	name, ok := Lookup("  TS ")
	assert.True(t, ok)
	assert.Equal(t, "TypeScript", name)

	_, ok = Lookup("cobol")
	assert.False(t, ok)
}

func TestCanonical_ContainsKnownSkills(t *testing.T) {
	names := Canonical()
	assert.Contains(t, names, "Python")
	assert.Contains(t, names, "Go")
	assert.Contains(t, names, "Kubernetes")
}
