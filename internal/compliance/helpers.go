package compliance

import "strings"

// tagTrue reports whether ctx.Node.Tags[key] holds a truthy string value.
func tagTrue(ctx Context, key string) bool {
	v, ok := ctx.Node.Tags[key]
	if !ok {
		return false
	}
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "yes" || v == "1"
}

func tagEquals(ctx Context, key, value string) bool {
	v, ok := ctx.Node.Tags[key]
	return ok && strings.EqualFold(v, value)
}

func metadataBool(ctx Context, key string) (bool, bool) {
	v, ok := ctx.Node.Metadata[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}
