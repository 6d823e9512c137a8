package remediate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/cloudgraph/ikg/pkg/model"
)

// hclTraversal builds a root.attr traversal for referencing a block
// output, e.g. module.<name>.
func hclTraversal(root, attr string) hcl.Traversal {
	return hcl.Traversal{
		hcl.TraverseRoot{Name: root},
		hcl.TraverseAttr{Name: attr},
	}
}

// fieldToAttribute maps a drifted field name to its Terraform
// attribute name. Tag-like fields (anything starting "tags.") are
// collected separately into a tags block by the caller.
func fieldToAttribute(field string) string {
	switch field {
	case "name":
		return "name"
	case "status":
		return "instance_state"
	case "region":
		return "availability_zone"
	case "owner":
		return "owner"
	case "costMonthly":
		return "cost_monthly"
	default:
		return toSnakeCase(field)
	}
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ctyValueForField converts a drifted field's stringified new value
// into the appropriate cty.Value so hclwrite renders it unquoted when
// numeric/boolean and quoted-and-escaped when a string.
func ctyValueForField(value string) cty.Value {
	if b, err := strconv.ParseBool(value); err == nil {
		return cty.BoolVal(b)
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return cty.NumberFloatVal(f)
	}
	return cty.StringVal(value)
}

// renderTerraform emits a `resource "<type>" "<name>"` block (or a
// module-wrapped variant) with one attribute per drifted field, using
// hclwrite/cty so string values are escaped by construction rather
// than hand-built string concatenation.
func renderTerraform(node model.Node, fields []DriftedField, opts Options) (string, bool) {
	tfType, ok := terraformResourceType(node.Provider, node.ResourceType)
	if !ok {
		return "", false
	}
	resourceName := sanitizeIdentifier(node.Name, node.NativeID)

	f := hclwrite.NewEmptyFile()
	root := f.Body()

	var resourceBody *hclwrite.Body
	if opts.ModuleAware {
		moduleName := opts.ModuleName
		if moduleName == "" {
			moduleName = resourceName
		}
		moduleBlock := root.AppendNewBlock("module", []string{moduleName})
		mb := moduleBlock.Body()
		mb.SetAttributeValue("source", cty.StringVal("./modules/"+tfType))
		var tagFields []DriftedField
		for _, fld := range fields {
			if strings.HasPrefix(fld.Field, "tags.") {
				tagFields = append(tagFields, fld)
				continue
			}
			mb.SetAttributeValue(fieldToAttribute(fld.Field), ctyValueForField(fld.NewValue))
		}
		if len(tagFields) > 0 {
			tagsVal := map[string]cty.Value{}
			for _, tf := range tagFields {
				tagsVal[strings.TrimPrefix(tf.Field, "tags.")] = ctyValueForField(tf.NewValue)
			}
			mb.SetAttributeValue("tags", cty.ObjectVal(tagsVal))
		}
		root.AppendNewline()
		resourceBlock := root.AppendNewBlock("resource", []string{tfType, resourceName})
		resourceBody = resourceBlock.Body()
		resourceBody.SetAttributeTraversal("for_each", hclTraversal("module", moduleName))
		return "# module-aware patch: values are exposed as module variables\n" +
			string(f.Bytes()), true
	}

	resourceBlock := root.AppendNewBlock("resource", []string{tfType, resourceName})
	resourceBody = resourceBlock.Body()

	tagsVal := map[string]cty.Value{}
	for _, fld := range fields {
		if strings.HasPrefix(fld.Field, "tags.") {
			tagsVal[strings.TrimPrefix(fld.Field, "tags.")] = ctyValueForField(fld.NewValue)
			continue
		}
		resourceBody.SetAttributeValue(fieldToAttribute(fld.Field), ctyValueForField(fld.NewValue))
	}
	if len(tagsVal) > 0 {
		resourceBody.SetAttributeValue("tags", cty.ObjectVal(tagsVal))
	}

	return string(f.Bytes()), true
}

func sanitizeIdentifier(name, fallback string) string {
	s := name
	if s == "" {
		s = fallback
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if out == "" {
		out = "resource"
	}
	return out
}

func terraformImportBlock(node model.Node) (string, bool) {
	tfType, ok := terraformResourceType(node.Provider, node.ResourceType)
	if !ok {
		return "", false
	}
	name := sanitizeIdentifier(node.Name, node.NativeID)
	return fmt.Sprintf("import {\n  to = %s.%s\n  id = %q\n}\n", tfType, name, node.ID), true
}
