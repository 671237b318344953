// ABOUTME: Two-stage type mapping from DSL type tokens to canonical semantic types.
// ABOUTME: Stage 1 is an explicit token table; stage 2 refines generic results with attribute-name heuristics.
package erd

import (
	"regexp"
	"strings"
)

var (
	choiceTokenRe = regexp.MustCompile(`(?i)^choice\((.*)\)$`)
	lookupTokenRe = regexp.MustCompile(`(?i)^lookup\((.*)\)$`)
)

// scalarTypes maps known scalar token spellings (compared case-insensitively)
// to canonical semantic types. Unknown tokens default to String.
var scalarTypes = map[string]SemanticType{
	"string":           TypeString,
	"int":              TypeInteger,
	"integer":          TypeInteger,
	"decimal":          TypeDecimal,
	"money":            TypeMoney,
	"currency":         TypeMoney,
	"bool":             TypeBoolean,
	"boolean":          TypeBoolean,
	"date":             TypeDateTime,
	"datetime":         TypeDateTime,
	"timestamp":        TypeDateTime,
	"text":             TypeMemo,
	"memo":             TypeMemo,
	"longtext":         TypeMemo,
	"guid":             TypeUniqueidentifier,
	"uuid":             TypeUniqueidentifier,
	"uniqueidentifier": TypeUniqueidentifier,
	"email":            TypeEmail,
	"phone":            TypePhone,
	"url":              TypeUrl,
	"duration":         TypeDuration,
	"file":             TypeFile,
	"image":            TypeImage,
	"ticker":           TypeTicker,
	"timezone":         TypeTimeZone,
	"language":         TypeLanguage,
	"float":            TypeFloat,
	"double":           TypeFloat,
}

// dateOnlyNameHints are attribute-name substrings that mark a DateTime column
// as carrying a date with no meaningful time component.
var dateOnlyNameHints = []string{
	"birthdate",
	"dateofbirth",
	"startdate",
	"enddate",
	"duedate",
	"orderdate",
	"deliverydate",
	"createddate",
	"modifieddate",
}

// mapTypeToken resolves a verbatim DSL type token into a canonical semantic
// type. Parameterized choice(...)/lookup(...) forms win unconditionally and
// carry their payload (option list, target entity). Scalars go through the
// token table; anything unrecognized is a String.
func mapTypeToken(token string) (typ SemanticType, choiceOptions []string, targetEntity string) {
	if m := choiceTokenRe.FindStringSubmatch(token); m != nil {
		for _, part := range strings.Split(m[1], ",") {
			if opt := strings.TrimSpace(part); opt != "" {
				choiceOptions = append(choiceOptions, opt)
			}
		}
		return TypeChoice, choiceOptions, ""
	}
	if m := lookupTokenRe.FindStringSubmatch(token); m != nil {
		return TypeLookup, nil, strings.TrimSpace(m[1])
	}
	if t, ok := scalarTypes[strings.ToLower(token)]; ok {
		return t, nil, ""
	}
	return TypeString, nil, ""
}

// inferSemanticType refines the generic stage-1 results (String, DateTime)
// using attribute-name heuristics. Types already resolved to anything else are
// never overridden.
func inferSemanticType(name string, typ SemanticType) SemanticType {
	lower := strings.ToLower(name)
	switch typ {
	case TypeString:
		switch {
		case strings.Contains(lower, "email"):
			return TypeEmail
		case strings.Contains(lower, "phone"), strings.Contains(lower, "mobile"), strings.Contains(lower, "tel"):
			return TypePhone
		case strings.Contains(lower, "url"), strings.Contains(lower, "website"), strings.Contains(lower, "link"):
			return TypeUrl
		}
	case TypeDateTime:
		for _, hint := range dateOnlyNameHints {
			if strings.Contains(lower, hint) {
				return TypeDateOnly
			}
		}
	}
	return typ
}
