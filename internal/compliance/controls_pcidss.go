package compliance

import "github.com/cloudgraph/ikg/pkg/model"

func pciDSSControls() []Control {
	return []Control{
		{
			ID: "pci-3.4-cardholder-data-encryption", Framework: "PCI-DSS", Section: "3.4",
			Title: "Cardholder-data storage is encrypted", Severity: SeverityCritical,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceDatabase, model.ResourceStorage, model.ResourceVolume},
			Evaluate: func(ctx Context) Status {
				if !tagTrue(ctx, "cardholder-data") {
					return StatusNotApplicable
				}
				if v, ok := metadataBool(ctx, "encrypted"); ok && v {
					return StatusPass
				}
				return StatusFail
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusFail {
					return "cardholder-data resource is not encrypted"
				}
				return "cardholder data encryption checked"
			},
		},
		{
			ID: "pci-1.3-network-segmentation", Framework: "PCI-DSS", Section: "1.3",
			Title: "Cardholder-data resources sit behind a security group", Severity: SeverityHigh,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceDatabase, model.ResourceCompute},
			Evaluate: func(ctx Context) Status {
				if !tagTrue(ctx, "cardholder-data") {
					return StatusNotApplicable
				}
				if ctx.HasEdge(model.RelSecuredBy) {
					return StatusPass
				}
				return StatusFail
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusFail {
					return "cardholder-data resource has no secured-by relationship"
				}
				return "network segmentation checked"
			},
		},
		{
			ID: "pci-10.1-audit-trails", Framework: "PCI-DSS", Section: "10.1",
			Title: "Cardholder-data resources log to an audit sink", Severity: SeverityHigh,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceDatabase, model.ResourceCompute, model.ResourceStorage},
			Evaluate: func(ctx Context) Status {
				if !tagTrue(ctx, "cardholder-data") {
					return StatusNotApplicable
				}
				if ctx.HasEdge(model.RelLogsTo) {
					return StatusPass
				}
				return StatusFail
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusFail {
					return "cardholder-data resource has no logs-to relationship"
				}
				return "audit trail checked"
			},
		},
		{
			ID: "pci-2.2-no-public-exposure", Framework: "PCI-DSS", Section: "2.2",
			Title: "Cardholder-data resources are not publicly accessible", Severity: SeverityCritical,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceDatabase, model.ResourceStorage},
			Evaluate: func(ctx Context) Status {
				if !tagTrue(ctx, "cardholder-data") {
					return StatusNotApplicable
				}
				public, ok := metadataBool(ctx, "publiclyAccessible")
				if ok && public {
					return StatusFail
				}
				return StatusPass
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusFail {
					return "cardholder-data resource is publicly accessible"
				}
				return "public exposure checked"
			},
		},
	}
}
