package remediate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cloudgraph/ikg/pkg/model"
)

// renderPulumi emits a TypeScript resource instantiation with
// camelCase property names.
func renderPulumi(node model.Node, fields []DriftedField) (string, bool) {
	cls, ok := pulumiResourceType(node.ResourceType)
	if !ok {
		return "", false
	}
	varName := sanitizeIdentifier(node.Name, node.NativeID)

	var props []string
	var tagLines []string
	for _, fld := range fields {
		if strings.HasPrefix(fld.Field, "tags.") {
			key := strings.TrimPrefix(fld.Field, "tags.")
			tagLines = append(tagLines, fmt.Sprintf("    %s: %s,", jsPropertyKey(key), tsLiteral(fld.NewValue)))
			continue
		}
		props = append(props, fmt.Sprintf("  %s: %s,", toCamelCase(fieldToAttribute(fld.Field)), tsLiteral(fld.NewValue)))
	}
	if len(tagLines) > 0 {
		props = append(props, "  tags: {")
		props = append(props, tagLines...)
		props = append(props, "  },")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "const %s = new %s(\"%s\", {\n", varName, cls, varName)
	for _, p := range props {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	b.WriteString("});\n")
	return b.String(), true
}

func tsLiteral(value string) string {
	if b, err := strconv.ParseBool(value); err == nil {
		if b {
			return "true"
		}
		return "false"
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprintf("\"%s\"", escapeTSString(value))
}

func jsPropertyKey(key string) string {
	if key == "" {
		return `""`
	}
	for _, r := range key {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '$') {
			return fmt.Sprintf("\"%s\"", escapeTSString(key))
		}
	}
	return key
}

func toCamelCase(snake string) string {
	parts := strings.Split(snake, "_")
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
