package compiler

import (
	"strings"
	"unicode"
)

// nativeTags maps declarative element tags to the native widget prototypes
// they construct. Tags absent from the table pass through verbatim.
var nativeTags = map[string]string{
	"div":                "widget",
	"w":                  "widget",
	"text":               "text",
	"input":              "textinput",
	"button":             "button",
	"a":                  "link",
	"router-link":        "router_link",
	"router-view":        "router_view",
	"scrollbar":          "scrollbar",
	"scrollarea":         "scrollarea",
	"scrollarea-content": "scrollarea_content",
}

// attrRename maps declarative prop names to their native attribute names.
var attrRename = map[string]string{
	"className": "class",
}

// resolveTag maps a string element tag to its native prototype, consulting
// the project's extra tag table first.
func resolveTag(tag string, opts Options) string {
	if proto, ok := opts.Tags[tag]; ok {
		return proto
	}
	if proto, ok := nativeTags[tag]; ok {
		return proto
	}
	return tag
}

// identSafe lowers a display name to a C identifier: lowercased, with every
// non-identifier rune replaced by an underscore.
func identSafe(name string) string {
	var b strings.Builder
	for i, r := range strings.ToLower(name) {
		switch {
		case r == '_' || unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsDigit(r) && i > 0:
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// isEventProp reports whether a prop key follows the onXxx event convention.
func isEventProp(key string) bool {
	return len(key) > 2 && strings.HasPrefix(key, "on") && unicode.IsUpper(rune(key[2]))
}

// eventName extracts the native event name from an onXxx prop key.
func eventName(key string) string {
	return strings.ToLower(key[2:])
}

// styleKey converts a camelCase style property to the toolkit's dashed
// naming (backgroundColor -> background-color). Already-dashed keys pass
// through unchanged.
func styleKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
