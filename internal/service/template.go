package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"lokalhunt/internal/domain"
	"lokalhunt/internal/repository"
)

// ErrTemplateNotFound is fatal to a dispatch: nothing is persisted or sent.
var ErrTemplateNotFound = errors.New("notification template not found or inactive")

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// RenderedMessage is the outcome of template resolution.
type RenderedMessage struct {
	Title string
	Body  string
}

// TemplateRenderer resolves a notification type to its active template and
// substitutes {key} placeholders with stringified variable values.
type TemplateRenderer struct {
	templates *repository.TemplateRepository
}

func NewTemplateRenderer(templates *repository.TemplateRepository) *TemplateRenderer {
	return &TemplateRenderer{templates: templates}
}

func (r *TemplateRenderer) Render(notifType domain.NotificationType, vars map[string]interface{}) (*RenderedMessage, error) {
	t, err := r.templates.GetActiveByType(string(notifType))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, notifType)
		}
		return nil, err
	}
	return &RenderedMessage{
		Title: substitute(t.Title, vars),
		Body:  substitute(t.Body, vars),
	}, nil
}

// substitute replaces every {key} occurrence with the stringified variable
// value. Missing keys substitute to the empty string.
func substitute(s string, vars map[string]interface{}) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		key := m[1 : len(m)-1]
		v, ok := vars[key]
		if !ok {
			return ""
		}
		return stringify(v)
	})
}

// stringify converts a variable value to its display string. FCM also
// requires string-only data payload values, so the same coercion is used for
// the push data map.
func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}

// stringifyAll coerces a variable map into the string-only form the push
// channel requires.
func stringifyAll(vars map[string]interface{}) map[string]string {
	out := make(map[string]string, len(vars))
	for k, v := range vars {
		out[k] = stringify(v)
	}
	return out
}
