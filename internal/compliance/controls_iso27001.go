package compliance

import "github.com/cloudgraph/ikg/pkg/model"

func iso27001Controls() []Control {
	return []Control{
		{
			ID: "iso27001-a.8.24-cryptography", Framework: "ISO27001", Section: "A.8.24",
			Title: "Storage resources use cryptographic controls", Severity: SeverityHigh,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceStorage, model.ResourceDatabase, model.ResourceVolume, model.ResourceSecret},
			Evaluate: func(ctx Context) Status {
				if ctx.HasEdge(model.RelEncryptsWith) {
					return StatusPass
				}
				if v, ok := metadataBool(ctx, "encrypted"); ok {
					if v {
						return StatusPass
					}
					return StatusFail
				}
				return StatusWarning
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusFail {
					return "resource has no encrypts-with relationship and encrypted=false"
				}
				return "cryptographic controls checked"
			},
		},
		{
			ID: "iso27001-a.5.15-access-control", Framework: "ISO27001", Section: "A.5.15",
			Title: "Compute resources assume a scoped role rather than static credentials", Severity: SeverityMedium,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceCompute, model.ResourceFunction, model.ResourceCluster},
			Evaluate: func(ctx Context) Status {
				if ctx.HasEdge(model.RelAssumesRole) {
					return StatusPass
				}
				return StatusFail
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusFail {
					return "resource has no assumes-role relationship"
				}
				return "access control checked"
			},
		},
		{
			ID: "iso27001-a.8.16-monitoring", Framework: "ISO27001", Section: "A.8.16",
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
			Reason: func(ctx Context, s Status) string {
				if s == StatusFail {
					return "production resource has no monitors relationship"
				}
				return "monitoring checked"
			},
		},
		{
			ID: "iso27001-a.8.13-backup", Framework: "ISO27001", Section: "A.8.13",
			Title: "Production databases and storage have a backup relationship", Severity: SeverityHigh,
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
	}
}
