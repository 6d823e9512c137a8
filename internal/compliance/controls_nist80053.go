package compliance

import "github.com/cloudgraph/ikg/pkg/model"

func nist80053Controls() []Control {
	return []Control{
		{
			ID: "nist-sc-28-protection-at-rest", Framework: "NIST800-53", Section: "SC-28",
			Title: "Data at rest is encrypted", Severity: SeverityHigh,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceStorage, model.ResourceDatabase, model.ResourceVolume},
			Evaluate: func(ctx Context) Status {
				if v, ok := metadataBool(ctx, "encrypted"); ok {
					if v {
						return StatusPass
					}
					return StatusFail
				}
				return StatusWarning
			},
			Reason: reasonEncryption,
		},
		{
			ID: "nist-sc-8-transmission-confidentiality", Framework: "NIST800-53", Section: "SC-8",
			Title: "Network-facing resources are protected in transit", Severity: SeverityHigh,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceLoadBalancer, model.ResourceAPIGateway, model.ResourceCDN},
			Evaluate: func(ctx Context) Status {
				if ctx.HasEdge(model.RelIssuedFor) || ctx.HasEdge(model.RelProtectedBy) {
					return StatusPass
				}
				return StatusFail
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusFail {
					return "resource has no certificate or protected-by relationship"
				}
				return "transmission confidentiality checked"
			},
		},
		{
			ID: "nist-ac-3-access-enforcement", Framework: "NIST800-53", Section: "AC-3",
			Title: "Compute and database resources enforce access via a role or security group", Severity: SeverityHigh,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceCompute, model.ResourceDatabase},
			Evaluate: func(ctx Context) Status {
				if ctx.HasEdge(model.RelSecuredBy) || ctx.HasEdge(model.RelAssumesRole) {
					return StatusPass
				}
				return StatusFail
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusFail {
					return "resource has no secured-by or assumes-role relationship"
				}
				return "access enforcement checked"
			},
		},
		{
			ID: "nist-au-2-audit-events", Framework: "NIST800-53", Section: "AU-2",
			Title: "Resources generate audit events via a log sink", Severity: SeverityMedium,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceCompute, model.ResourceDatabase, model.ResourceFunction, model.ResourceCluster},
			Evaluate: func(ctx Context) Status {
				if ctx.HasEdge(model.RelLogsTo) {
					return StatusPass
				}
				return StatusFail
			},
			Reason: reasonLogging,
		},
		{
			ID: "nist-cp-9-backup", Framework: "NIST800-53", Section: "CP-9",
			Title: "Production databases and storage are backed up", Severity: SeverityHigh,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceDatabase, model.ResourceStorage, model.ResourceVolume},
			Evaluate: func(ctx Context) Status {
				if !tagEquals(ctx, "environment", "production") {
					return StatusNotApplicable
				}
				if ctx.HasEdge(model.RelBacksUp) {
					return StatusPass
				}
				return StatusFail
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusFail {
					return "production resource has no backs-up relationship"
				}
				return "backup checked"
			},
		},
		{
			ID: "nist-sc-7-boundary-protection", Framework: "NIST800-53", Section: "SC-7",
			Title: "Compute resources run inside a bounded network", Severity: SeverityHigh,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceCompute, model.ResourceCluster},
			Evaluate: func(ctx Context) Status {
				if ctx.HasEdge(model.RelRunsIn) {
					return StatusPass
				}
				return StatusFail
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusFail {
					return "resource has no runs-in relationship to a network boundary"
				}
				return "boundary protection checked"
			},
		},
		{
			ID: "nist-ia-2-identification-authentication", Framework: "NIST800-53", Section: "IA-2",
			Title: "Resources authenticate callers rather than accepting anonymous access", Severity: SeverityHigh,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceAPIGateway, model.ResourceDatabase, model.ResourceCompute},
			Evaluate: func(ctx Context) Status {
				if ctx.HasEdge(model.RelAuthenticatedBy) {
					return StatusPass
				}
				return StatusFail
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusFail {
					return "resource has no authenticated-by relationship"
				}
				return "authentication checked"
			},
		},
		{
			ID: "nist-cm-8-component-inventory", Framework: "NIST800-53", Section: "CM-8",
			Title: "Resources carry an owner tag for inventory accountability", Severity: SeverityLow,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceCompute, model.ResourceDatabase, model.ResourceStorage, model.ResourceFunction},
			Evaluate: func(ctx Context) Status {
				if ctx.Node.Owner != nil && *ctx.Node.Owner != "" {
					return StatusPass
				}
				return StatusWarning
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusWarning {
					return "resource has no owner recorded"
				}
				return "component inventory checked"
			},
		},
		{
			ID: "nist-sc-12-key-management", Framework: "NIST800-53", Section: "SC-12",
			Title: "Encrypted resources reference a key-management relationship", Severity: SeverityMedium,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceStorage, model.ResourceDatabase, model.ResourceSecret},
			Evaluate: func(ctx Context) Status {
				if v, ok := metadataBool(ctx, "encrypted"); !ok || !v {
					return StatusNotApplicable
				}
				if ctx.HasEdge(model.RelEncryptsWith) {
					return StatusPass
				}
				return StatusWarning
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusWarning {
					return "encrypted resource has no encrypts-with key relationship"
				}
				return "key management checked"
			},
		},
		{
			ID: "nist-si-4-system-monitoring", Framework: "NIST800-53", Section: "SI-4",
			Title: "Production resources are monitored", Severity: SeverityMedium,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceCompute, model.ResourceDatabase, model.ResourceCluster, model.ResourceLoadBalancer},
			Evaluate: func(ctx Context) Status {
				if !tagEquals(ctx, "environment", "production") {
					return StatusNotApplicable
				}
				if ctx.HasEdge(model.RelMonitors) {
					return StatusPass
				}
				return StatusFail
			},
			Reason: reasonMonitoring,
		},
	}
}
