package compliance

import "github.com/cloudgraph/ikg/pkg/model"

func hipaaControls() []Control {
	return []Control{
		{
			ID: "hipaa-164.312.a.2.iv-encryption", Framework: "HIPAA", Section: "164.312(a)(2)(iv)",
			Title: "ePHI-bearing storage is encrypted", Severity: SeverityCritical,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceStorage, model.ResourceDatabase, model.ResourceVolume},
			Evaluate: func(ctx Context) Status {
				if !tagTrue(ctx, "phi") {
					return StatusNotApplicable
				}
				if v, ok := metadataBool(ctx, "encrypted"); ok && v {
					return StatusPass
				}
				return StatusFail
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusFail {
					return "resource tagged phi=true is not encrypted"
				}
				return "ePHI encryption checked"
			},
		},
		{
			ID: "hipaa-164.312.b-audit-logging", Framework: "HIPAA", Section: "164.312(b)",
			Title: "ePHI-bearing resources log to an audit sink", Severity: SeverityHigh,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceDatabase, model.ResourceCompute, model.ResourceStorage},
			Evaluate: func(ctx Context) Status {
				if !tagTrue(ctx, "phi") {
					return StatusNotApplicable
				}
				if ctx.HasEdge(model.RelLogsTo) {
					return StatusPass
				}
				return StatusFail
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusFail {
					return "ePHI resource has no logs-to relationship"
				}
				return "audit logging checked"
			},
		},
		{
			ID: "hipaa-164.312.e.1-transmission-security", Framework: "HIPAA", Section: "164.312(e)(1)",
			Title: "ePHI resources are fronted by a protective layer", Severity: SeverityHigh,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceDatabase, model.ResourceCompute, model.ResourceAPIGateway},
			Evaluate: func(ctx Context) Status {
				if !tagTrue(ctx, "phi") {
					return StatusNotApplicable
				}
				if ctx.HasEdge(model.RelProtectedBy) || ctx.HasEdge(model.RelFrontedBy) {
					return StatusPass
				}
				return StatusFail
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusFail {
					return "ePHI resource has no protected-by or fronted-by relationship"
				}
				return "transmission security checked"
			},
		},
		{
			ID: "hipaa-164.308.a.1.ii.d-access-review", Framework: "HIPAA", Section: "164.308(a)(1)(ii)(D)",
			Title: "ePHI resources restrict access via a role or IAM relationship", Severity: SeverityHigh,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceDatabase, model.ResourceStorage, model.ResourceCompute},
			Evaluate: func(ctx Context) Status {
				if !tagTrue(ctx, "phi") {
					return StatusNotApplicable
				}
				if ctx.HasEdge(model.RelGrantsAccessTo) || ctx.HasEdge(model.RelAssumesRole) || ctx.HasEdge(model.RelSecuredBy) {
					return StatusPass
				}
				return StatusFail
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusFail {
					return "ePHI resource has no access-control relationship"
				}
				return "access review checked"
			},
		},
	}
}
