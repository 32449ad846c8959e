// Package content resolves user-facing strings from the embedded
// en/ar dictionaries.
package content

import (
	"context"
	"embed"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type Locale string

const (
	English Locale = "en"
	Arabic  Locale = "ar"

	DefaultLocale = English

	// LocaleCookie is the cookie the web frontend stores the chosen locale in.
	LocaleCookie = "NEXT_LOCALE"
)

var supported = []language.Tag{language.English, language.Arabic}

var matcher = language.NewMatcher(supported)

// ParseLocale returns the locale for a tag like "ar-AE", falling back to English.
func ParseLocale(s string) Locale {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return DefaultLocale
	}
	base, _ := tag.Base()
	switch base.String() {
	case "ar":
		return Arabic
	case "en":
		return English
	}
	return DefaultLocale
}

// Negotiate picks a locale from the cookie value first, then the
// Accept-Language header.
func Negotiate(cookie, acceptLanguage string) Locale {
	if cookie != "" {
		if l := Locale(cookie); l == English || l == Arabic {
			return l
		}
	}
	if acceptLanguage == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLocale
	}
	return Locale(supported[idx].String())
}

// RTL reports whether the locale is written right to left.
func (l Locale) RTL() bool { return l == Arabic }

type localeKey struct{}

// WithLocale stores the request locale on ctx.
func WithLocale(ctx context.Context, l Locale) context.Context {
	return context.WithValue(ctx, localeKey{}, l)
}

// LocaleFrom returns the locale stored on ctx, or the default.
func LocaleFrom(ctx context.Context) Locale {
	if l, ok := ctx.Value(localeKey{}).(Locale); ok && l != "" {
		return l
	}
	return DefaultLocale
}

// Resolver turns a key into display text for one locale.
type Resolver interface {
	Resolve(key Key, params map[string]string) string
}

//go:embed locales/*.yaml
var localeFS embed.FS

// Dictionary holds flattened dotted-key maps per locale.
type Dictionary struct {
	entries map[Locale]map[string]string
}

var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// Load parses the embedded dictionaries.
func Load() (*Dictionary, error) {
	d := &Dictionary{entries: make(map[Locale]map[string]string)}
	for _, l := range []Locale{English, Arabic} {
		raw, err := localeFS.ReadFile("locales/" + string(l) + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("read %s dictionary: %w", l, err)
		}
		var tree map[string]interface{}
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("parse %s dictionary: %w", l, err)
		}
		flat := make(map[string]string)
		flatten("", tree, flat)
		d.entries[l] = flat
	}
	return d, nil
}

// MustLoad is Load for package init and tests.
func MustLoad() *Dictionary {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}

func flatten(prefix string, node map[string]interface{}, out map[string]string) {
	for k, v := range node {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]interface{}:
			flatten(path, val, out)
		case string:
			out[path] = val
		default:
			out[path] = fmt.Sprint(val)
		}
	}
}

// Get resolves key for locale. Missing keys fall back to English and then
// to the key itself. Placeholders without a value are left as is.
func (d *Dictionary) Get(l Locale, key Key, params map[string]string) string {
	value, ok := d.entries[l][string(key)]
	if !ok {
		value, ok = d.entries[English][string(key)]
	}
	if !ok {
		return string(key)
	}
	if len(params) == 0 {
		return value
	}
	return placeholder.ReplaceAllStringFunc(value, func(m string) string {
		if v, ok := params[m[1:len(m)-1]]; ok && v != "" {
			return v
		}
		return m
	})
}

// For binds the dictionary to one locale.
func (d *Dictionary) For(l Locale) Resolver {
	return boundResolver{dict: d, locale: l}
}

// FromContext binds the dictionary to the locale carried by ctx.
func (d *Dictionary) FromContext(ctx context.Context) Resolver {
	return d.For(LocaleFrom(ctx))
}

type boundResolver struct {
	dict   *Dictionary
	locale Locale
}

func (b boundResolver) Resolve(key Key, params map[string]string) string {
	return b.dict.Get(b.locale, key, params)
}

// Fallback returns the key itself; used when no dictionary is wired.
type Fallback struct{}

func (Fallback) Resolve(key Key, _ map[string]string) string { return string(key) }
