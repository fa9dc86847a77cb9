package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateHandle(t *testing.T) {
	assert.NoError(t, ValidateHandle("ivan_dev42"))
	assert.Error(t, ValidateHandle("ив"))
	assert.Error(t, ValidateHandle("with space"))
	assert.Error(t, ValidateHandle("dash-name"))
	assert.Error(t, ValidateHandle(strings.Repeat("a", MaxHandleLength+1)))
}

func TestValidateFullName(t *testing.T) {
	assert.NoError(t, ValidateFullName("Иван Петров"))
	assert.Error(t, ValidateFullName(""))
	assert.Error(t, ValidateFullName("и"))
	assert.Error(t, ValidateFullName(strings.Repeat("а", MaxFullNameLength+1)))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("ivan@example.com"))
	assert.Error(t, ValidateEmail("plainstring"))
	assert.Error(t, ValidateEmail("a@b"))
	assert.Error(t, ValidateEmail("@example.com"))
}

func TestValidatePortfolioURL(t *testing.T) {
	assert.NoError(t, ValidatePortfolioURL("https://github.com/ivan"))
	assert.NoError(t, ValidatePortfolioURL("http://example.com"))
	assert.Error(t, ValidatePortfolioURL("ftp://example.com"))
	assert.Error(t, ValidatePortfolioURL("javascript:alert(1)"))
	assert.Error(t, ValidatePortfolioURL("https://"))
	assert.Error(t, ValidatePortfolioURL(""))
}

func TestValidateScore(t *testing.T) {
	for score := MinScore; score <= MaxScore; score++ {
		assert.NoError(t, ValidateScore(score))
	}
	assert.Error(t, ValidateScore(0))
	assert.Error(t, ValidateScore(6))
}

func TestValidateLength_CountsRunes(t *testing.T) {
	// Кириллица не должна считаться по байтам.
	assert.NoError(t, ValidateLength("имя", "Ян", 2, 10))
	assert.Error(t, ValidateLength("имя", "Я", 2, 10))
}
