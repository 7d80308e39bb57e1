// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package registry

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

// LocaleBundlePrefix prefixes the name of every locale string bundle. The
// bundle of the default language is named exactly LocaleBundlePrefix.
const LocaleBundlePrefix = "strings"

var (
	localePlaceholder = regexp.MustCompile(`\{\{\s*([^{}\s]+)\s*\}\}`)
	paramPlaceholder  = regexp.MustCompile(`@\{([^{}\s]+)\}`)
)

// IsLocaleBundle reports whether a manifest identifier or asset name denotes
// a locale string bundle rather than a configuration document.
func IsLocaleBundle(name string) bool {
	return strings.HasPrefix(name, LocaleBundlePrefix)
}

// bundleName returns "strings_<locale>" with the locale normalized to
// underscore form ("fr-CA" becomes "strings_fr_CA").
func bundleName(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return LocaleBundlePrefix
	}
	if tag, err := language.Parse(locale); err == nil {
		locale = tag.String()
	}
	return LocaleBundlePrefix + "_" + strings.ReplaceAll(locale, "-", "_")
}

// resolveBundle finds the most specific bundle for locale, dropping trailing
// "_xx" parts until a bundle matches. Callers must hold r.mu.
func (r *ConfigRegistry) resolveBundle(locale string) map[string]string {
	name := bundleName(locale)
	for {
		if bundle, ok := r.localeBundles[name]; ok {
			return bundle
		}
		idx := strings.LastIndex(name, "_")
		if idx < 0 {
			return nil
		}
		name = name[:idx]
	}
}

// interpolateLocale replaces {{ key }} tokens with the bundle value. Tokens
// without a translation are left untouched.
func interpolateLocale(template string, bundle map[string]string) string {
	if len(bundle) == 0 {
		return template
	}
	return localePlaceholder.ReplaceAllStringFunc(template, func(token string) string {
		key := localePlaceholder.FindStringSubmatch(token)[1]
		if v, ok := bundle[key]; ok {
			return v
		}
		return token
	})
}

// interpolateParams replaces @{name} tokens with params[name]. Unknown
// parameters are left untouched.
func interpolateParams(template string, params map[string]string) string {
	if len(params) == 0 {
		return template
	}
	return paramPlaceholder.ReplaceAllStringFunc(template, func(token string) string {
		name := paramPlaceholder.FindStringSubmatch(token)[1]
		if v, ok := params[name]; ok {
			return v
		}
		return token
	})
}
