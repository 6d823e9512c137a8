// Package remediate turns drift results into per-dialect infrastructure
// as code patches, grounded on the teacher's remediation/planner.go and
// remediation/engine.go orchestration plus its per-dialect renderers
// such as terraform_remediation.go.
package remediate

import (
	"strings"

	"github.com/cloudgraph/ikg/pkg/model"
)

// Dialect is a target infrastructure-as-code language for a patch.
type Dialect string

const (
	DialectTerraform      Dialect = "terraform"
	DialectOpenTofu       Dialect = "opentofu"
	DialectCloudFormation Dialect = "cloudformation"
	DialectPulumi         Dialect = "pulumi"
)

// Risk is the assessed blast risk of applying a patch unattended.
type Risk string

const (
	RiskHigh   Risk = "high"
	RiskMedium Risk = "medium"
	RiskLow    Risk = "low"
)

// DriftedField is one field-level difference to render into a patch.
type DriftedField struct {
	Field         string
	PreviousValue string
	NewValue      string
}

// Options configures patch generation.
type Options struct {
	Edges           []model.Edge
	GenerateImports bool
	ModuleAware     bool
	ModuleName      string
}

// Patch is one node's rendered remediation.
type Patch struct {
	NodeID      string
	Dialect     Dialect
	Risk        Risk
	PatchText   string
	ImportBlock string
	Reason      string
}

// DependencyWarning flags that remediating one node may affect another
// connected node through a sensitive field.
type DependencyWarning struct {
	SourceNodeID     string
	TargetNodeID     string
	RelationshipType model.RelationshipType
	Fields           []string
}

// Plan is the full output of a remediation generation run.
type Plan struct {
	AutoRemediable     []Patch
	ManualReview       []Patch
	Unremediable       []Patch
	DependencyWarnings []DependencyWarning
}

var sensitiveFieldSubstrings = []string{"security", "publiclyaccessible", "encrypted"}

// isSecurityRelated matches spec's `*security*`, `publiclyAccessible`,
// `*encrypted*` wildcard fields, case-insensitively.
func isSecurityRelated(field string) bool {
	lower := strings.ToLower(field)
	for _, s := range sensitiveFieldSubstrings {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

var sensitiveDependencyFields = map[string]bool{
	"status": true, "region": true, "name": true,
	"publiclyaccessible": true, "encrypted": true,
	"vpcid": true, "subnetid": true, "securitygroupid": true,
}

func normalizeFieldKey(field string) string {
	return strings.ToLower(strings.ReplaceAll(field, "_", ""))
}

func isSensitiveDependencyField(field string) bool {
	return sensitiveDependencyFields[normalizeFieldKey(field)]
}
