package compliance

import "github.com/cloudgraph/ikg/pkg/model"

func soc2Controls() []Control {
	return []Control{
		{
			ID: "soc2-cc6.1-encryption-at-rest", Framework: "SOC2", Section: "CC6.1",
			Title: "Storage resources encrypt data at rest", Severity: SeverityHigh,
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
			ID: "soc2-cc6.6-public-access", Framework: "SOC2", Section: "CC6.6",
			Title: "Resources are not publicly accessible unless tagged public", Severity: SeverityCritical,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceStorage, model.ResourceDatabase, model.ResourceCompute},
			Evaluate: func(ctx Context) Status {
				public, ok := metadataBool(ctx, "publiclyAccessible")
				if !ok {
					return StatusWarning
				}
				if public && !tagTrue(ctx, "public") {
					return StatusFail
				}
				return StatusPass
			},
			Reason: reasonPublicAccess,
		},
		{
			ID: "soc2-cc7.2-monitoring", Framework: "SOC2", Section: "CC7.2",
			Title: "Production resources are monitored", Severity: SeverityMedium,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceCompute, model.ResourceDatabase, model.ResourceCluster},
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
		{
			ID: "soc2-cc6.3-access-control", Framework: "SOC2", Section: "CC6.3",
			Title: "Resources are secured by an access-control mechanism", Severity: SeverityHigh,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceCompute, model.ResourceDatabase, model.ResourceFunction},
			Evaluate: func(ctx Context) Status {
				if ctx.HasEdge(model.RelSecuredBy) || ctx.HasEdge(model.RelAuthenticatedBy) {
					return StatusPass
				}
				return StatusFail
			},
			Reason: reasonAccessControl,
		},
		{
			ID: "soc2-a1.2-backup", Framework: "SOC2", Section: "A1.2",
			Title: "Production databases have a backup relationship", Severity: SeverityHigh,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceDatabase},
			Evaluate: func(ctx Context) Status {
				if !tagEquals(ctx, "environment", "production") {
					return StatusNotApplicable
				}
				if ctx.HasEdge(model.RelBacksUp) {
					return StatusPass
				}
				return StatusFail
			},
			Reason: reasonBackup,
		},
	}
}

func reasonEncryption(ctx Context, status Status) string {
	switch status {
	case StatusFail:
		return "resource metadata indicates encryption is disabled"
	case StatusWarning:
		return "encryption status unknown: no 'encrypted' metadata field"
	default:
		return "resource is encrypted at rest"
	}
}

func reasonPublicAccess(ctx Context, status Status) string {
	if status == StatusFail {
		return "resource is publicly accessible and not tagged public"
	}
	return "public access checked"
}

func reasonPublicAccessUntagged(ctx Context, status Status) string {
	if status == StatusFail {
		return "resource is publicly accessible"
	}
	return "public access checked"
}

func reasonLogging(ctx Context, status Status) string {
	if status == StatusFail {
		return "resource has no logs-to relationship"
	}
	return "logging checked"
}

func reasonMonitoring(ctx Context, status Status) string {
	if status == StatusFail {
		return "production resource has no monitors relationship"
	}
	return "monitoring checked"
}

func reasonAccessControl(ctx Context, status Status) string {
	if status == StatusFail {
		return "resource has no secured-by or authenticated-by relationship"
	}
	return "access control checked"
}

func reasonBackup(ctx Context, status Status) string {
	if status == StatusFail {
		return "production database has no backs-up relationship"
	}
	return "backup checked"
}
