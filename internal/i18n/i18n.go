// Package i18n provides UI message translation backed by embedded JSON
// catalogs. The server runs in one language chosen at startup; the
// localizer travels in the request context.
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

type ctxKey struct{}

var bundle *i18n.Bundle

// Init builds the translation bundle with the given language as the
// default. All embedded catalogs are loaded regardless of the choice so a
// missing message can still fall back across languages.
func Init(lang string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("parse language %q: %w", lang, err)
	}

	b := i18n.NewBundle(tag)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	files, err := fs.Glob(localeFS, "locales/*.json")
	if err != nil {
		return fmt.Errorf("glob locales: %w", err)
	}
	for _, file := range files {
		data, err := localeFS.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read locale %s: %w", file, err)
		}
		if _, err := b.ParseMessageFileBytes(data, file); err != nil {
			return fmt.Errorf("parse locale %s: %w", file, err)
		}
	}
	slog.Info("loaded locale catalogs", "count", len(files), "default", lang)

	bundle = b
	return nil
}

// NewLocalizer creates a localizer for the given language.
func NewLocalizer(lang string) *i18n.Localizer {
	return i18n.NewLocalizer(bundle, lang)
}

// WithLocalizer stores a localizer in the context.
func WithLocalizer(ctx context.Context, loc *i18n.Localizer) context.Context {
	return context.WithValue(ctx, ctxKey{}, loc)
}

func localizerFromCtx(ctx context.Context) *i18n.Localizer {
	if loc, ok := ctx.Value(ctxKey{}).(*i18n.Localizer); ok {
		return loc
	}
	return i18n.NewLocalizer(bundle, "en")
}

// T translates a message by ID. Unknown IDs come back verbatim so a missing
// catalog entry degrades to a visible key, not an empty page element.
func T(ctx context.Context, msgID string) string {
	return Td(ctx, msgID, nil)
}

// Td translates a message by ID with template data.
func Td(ctx context.Context, msgID string, data map[string]any) string {
	s, err := localizerFromCtx(ctx).Localize(&i18n.LocalizeConfig{
		MessageID:    msgID,
		TemplateData: data,
	})
	if err != nil {
		slog.Warn("missing translation", "id", msgID, "error", err)
		return msgID
	}
	return s
}
