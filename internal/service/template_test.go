package service

import (
	"testing"

	"lokalhunt/internal/domain"
	"lokalhunt/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSubstitutesVariables(t *testing.T) {
	db := newTestDB(t)
	renderer := NewTemplateRenderer(repository.NewTemplateRepository(db))

	msg, err := renderer.Render(domain.NotifJobAlert, map[string]interface{}{
		"jobTitle":    "Delivery Rider",
		"companyName": "QuickKart",
		"location":    "Pune",
		"salary":      "₹18,000/month",
	})
	require.NoError(t, err)
	assert.Equal(t, "New job alert: Delivery Rider", msg.Title)
	assert.Equal(t, "New Delivery Rider position at QuickKart in Pune. Salary: ₹18,000/month. Apply now!", msg.Body)
}

func TestRenderMissingVariableBecomesEmpty(t *testing.T) {
	db := newTestDB(t)
	renderer := NewTemplateRenderer(repository.NewTemplateRepository(db))

	msg, err := renderer.Render(domain.NotifJobAlert, map[string]interface{}{
		"jobTitle": "Cook",
	})
	require.NoError(t, err)
	assert.Equal(t, "New job alert: Cook", msg.Title)
	assert.Equal(t, "New Cook position at  in . Salary: . Apply now!", msg.Body)
}

func TestRenderUnknownTemplate(t *testing.T) {
	db := newTestDB(t)
	renderer := NewTemplateRenderer(repository.NewTemplateRepository(db))

	_, err := renderer.Render(domain.NotificationType("NO_SUCH_TYPE"), nil)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestSubstituteLeavesNonPlaceholderBracesAlone(t *testing.T) {
	got := substitute("literal {not a key} and {key}", map[string]interface{}{"key": "v"})
	assert.Equal(t, "literal {not a key} and v", got)
}

func TestSubstituteRepeatedPlaceholder(t *testing.T) {
	got := substitute("{name} and {name}", map[string]interface{}{"name": "Ravi"})
	assert.Equal(t, "Ravi and Ravi", got)
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", stringify(nil))
	assert.Equal(t, "plain", stringify("plain"))
	assert.Equal(t, "true", stringify(true))
	assert.Equal(t, "42", stringify(42))
	assert.Equal(t, "42", stringify(int64(42)))
	assert.Equal(t, "42", stringify(uint(42)))
	assert.Equal(t, "3.5", stringify(3.5))
	assert.Equal(t, `["a","b"]`, stringify([]string{"a", "b"}))
}

func TestStringifyAll(t *testing.T) {
	got := stringifyAll(map[string]interface{}{"count": 3, "city": "Pune"})
	assert.Equal(t, map[string]string{"count": "3", "city": "Pune"}, got)
}
