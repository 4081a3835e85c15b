// Package naming holds the naming conventions the generator relies on:
// accessor names, default role names, collection types and type-keyed
// default values.
package naming

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"modelgen/internal/model"
)

// Casers are stateful, so each call builds its own.

// Capitalize upper-cases the first rune and keeps the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Title(language.Und, cases.NoLower).String(s[:size]) + s[size:]
}

// RoleName is the default association end name for a class.
func RoleName(className string) string {
	return cases.Lower(language.Und).String(className)
}

// Getter returns get<Attr>.
func Getter(attr string) string { return "get" + Capitalize(attr) }

// Setter returns set<Attr>.
func Setter(attr string) string { return "set" + Capitalize(attr) }

// Accessor classifies a method against the get/set convention.
type Accessor uint8

const (
	AccessorNone Accessor = iota
	AccessorGet
	AccessorSet
)

// MatchAccessor finds the attribute a method name reads or writes. Boolean
// is-accessors are not recognised.
func MatchAccessor(method string, attrs []*model.Attribute) (Accessor, *model.Attribute) {
	if len(method) <= 3 {
		return AccessorNone, nil
	}
	for _, a := range attrs {
		switch method {
		case Getter(a.Name):
			return AccessorGet, a
		case Setter(a.Name):
			return AccessorSet, a
		}
	}
	return AccessorNone, nil
}

// CollectionImport is the import that brings CollectionType into scope.
const CollectionImport = "java.util.*"

// CollectionType is the "many" form of an element type.
func CollectionType(elem string) string {
	return "List<" + elem + ">"
}

// IsCollectionType reports whether typ is a CollectionType.
func IsCollectionType(typ string) bool {
	return strings.HasPrefix(typ, "List<") && strings.HasSuffix(typ, ">")
}

var defaultValues = map[string]string{
	"boolean":   "false",
	"Boolean":   "false",
	"byte":      "0",
	"short":     "0",
	"int":       "0",
	"long":      "0",
	"Byte":      "0",
	"Short":     "0",
	"Integer":   "0",
	"Long":      "0",
	"float":     "0.0",
	"double":    "0.0",
	"Float":     "0.0",
	"Double":    "0.0",
	"char":      "' '",
	"Character": "' '",
	"String":    `""`,
}

// DefaultValue returns the literal a synthesized body returns for typ.
// It reports false for void.
func DefaultValue(typ string) (string, bool) {
	typ = strings.TrimSpace(typ)
	if typ == "" || typ == "void" {
		return "", false
	}
	if v, ok := defaultValues[typ]; ok {
		return v, true
	}
	return "null", true
}
