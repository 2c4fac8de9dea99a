// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package i18n serves the front end's translation bundles and
// supported-language metadata, and negotiates a best-match language from
// Accept-Language headers.
package i18n

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"golang.org/x/text/language"
)

// Sentinel errors the HTTP layer maps onto status codes.
var (
	ErrUnsupported = errors.New("unsupported language code")
	ErrNotFound    = errors.New("translation bundle not found")
)

// Language describes one supported front-end language.
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
	RTL        bool   `json:"rtl"`
}

// supportedLanguages is the fixed language set shipped with the front
// end, in display order.
var supportedLanguages = []Language{
	{Code: "en", Name: "English", NativeName: "English"},
	{Code: "es", Name: "Spanish", NativeName: "Español"},
	{Code: "fr", Name: "French", NativeName: "Français"},
	{Code: "de", Name: "German", NativeName: "Deutsch"},
	{Code: "ar", Name: "Arabic", NativeName: "العربية", RTL: true},
	{Code: "hi", Name: "Hindi", NativeName: "हिन्दी"},
	{Code: "zh", Name: "Chinese", NativeName: "中文"},
	{Code: "ja", Name: "Japanese", NativeName: "日本語"},
	{Code: "pt", Name: "Portuguese", NativeName: "Português"},
}

// Service loads translation bundles from a locales directory.
type Service struct {
	localesDir string
	matcher    language.Matcher
	byCode     map[string]Language
}

// NewService creates a service over the given locales directory. Bundles
// are read per request; the directory contents are fixed at deploy time.
func NewService(localesDir string) *Service {
	tags := make([]language.Tag, 0, len(supportedLanguages))
	byCode := make(map[string]Language, len(supportedLanguages))
	for _, l := range supportedLanguages {
		tags = append(tags, language.Make(l.Code))
		byCode[l.Code] = l
	}
	return &Service{
		localesDir: localesDir,
		matcher:    language.NewMatcher(tags),
		byCode:     byCode,
	}
}

// Languages returns the supported-language metadata in display order.
func (s *Service) Languages() []Language {
	out := make([]Language, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// IsSupported reports whether code is a supported language code.
func (s *Service) IsSupported(code string) bool {
	_, ok := s.byCode[code]
	return ok
}

// Bundle returns the parsed translation bundle for a supported language.
// Unsupported codes return ErrUnsupported, a missing bundle file returns
// ErrNotFound, and an unreadable or malformed bundle returns a wrapped
// error.
func (s *Service) Bundle(code string) (map[string]json.RawMessage, error) {
	if !s.IsSupported(code) {
		return nil, ErrUnsupported
	}

	path := filepath.Join(s.localesDir, code+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read bundle %s: %w", path, err)
	}

	var bundle map[string]json.RawMessage
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, fmt.Errorf("parse bundle %s: %w", path, err)
	}
	return bundle, nil
}

// Match negotiates the best supported language for an Accept-Language
// header value. It falls back to English when the header is empty or
// matches nothing.
func (s *Service) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return "en"
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return "en"
	}
	_, idx, _ := s.matcher.Match(desired...)
	if idx < 0 || idx >= len(supportedLanguages) {
		return "en"
	}
	return supportedLanguages[idx].Code
}
