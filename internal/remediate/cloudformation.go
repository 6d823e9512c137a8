package remediate

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cloudgraph/ikg/pkg/model"
)

// cfnProperty holds a single property's raw scalar.
type cfnProperty struct {
	key   string
	value string
}

// renderCloudFormation emits a YAML block for a single resource,
// Properties built from the drifted fields.
func renderCloudFormation(node model.Node, fields []DriftedField) (string, bool) {
	cfnType, ok := cloudFormationResourceType(node.ResourceType)
	if !ok {
		return "", false
	}
	logicalID := sanitizeIdentifier(node.Name, node.NativeID)

	props := map[string]interface{}{}
	tags := map[string]interface{}{}
	for _, fld := range fields {
		if strings.HasPrefix(fld.Field, "tags.") {
			tags[strings.TrimPrefix(fld.Field, "tags.")] = cfnScalar(fld.NewValue)
			continue
		}
		props[cfnPropertyName(fld.Field)] = cfnScalar(fld.NewValue)
	}
	if len(tags) > 0 {
		var tagList []map[string]interface{}
		for k, v := range tags {
			tagList = append(tagList, map[string]interface{}{"Key": k, "Value": v})
		}
		props["Tags"] = tagList
	}

	doc := map[string]interface{}{
		"Resources": map[string]interface{}{
			logicalID: map[string]interface{}{
				"Type":       cfnType,
				"Properties": props,
			},
		},
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", false
	}
	return string(out), true
}

func cfnPropertyName(field string) string {
	switch field {
	case "name":
		return "Name"
	case "status":
		return "State"
	case "region":
		return "AvailabilityZone"
	case "costMonthly":
		return "CostMonthly"
	default:
		var b strings.Builder
		upperNext := true
		for _, r := range field {
			if upperNext && r >= 'a' && r <= 'z' {
				b.WriteRune(r - 'a' + 'A')
				upperNext = false
				continue
			}
			b.WriteRune(r)
			upperNext = false
		}
		return b.String()
	}
}

// cfnScalar returns a typed value from a stringified field so yaml.v3
// emits unquoted numbers/booleans and a string otherwise; yaml.v3
// handles its own quoting/escaping on Marshal, so values routed through
// the structured map need no manual escaping.
func cfnScalar(value string) interface{} {
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}
