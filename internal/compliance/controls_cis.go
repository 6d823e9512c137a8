package compliance

import "github.com/cloudgraph/ikg/pkg/model"

func cisControls() []Control {
	return []Control{
		{
			ID: "cis-2.1-ensure-storage-encrypted", Framework: "CIS", Section: "2.1",
			Title: "Storage buckets/volumes are encrypted", Severity: SeverityHigh,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceStorage, model.ResourceVolume},
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
			ID: "cis-2.2-ensure-storage-not-public", Framework: "CIS", Section: "2.2",
			Title: "Storage is not publicly readable", Severity: SeverityCritical,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceStorage},
			Evaluate: func(ctx Context) Status {
				public, ok := metadataBool(ctx, "publiclyAccessible")
				if !ok {
					return StatusWarning
				}
				if public {
					return StatusFail
				}
				return StatusPass
			},
			Reason: reasonPublicAccessUntagged,
		},
		{
			ID: "cis-4.1-ensure-security-group-restricted-ssh", Framework: "CIS", Section: "4.1",
			Title: "Compute instances are secured by a security group", Severity: SeverityHigh,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceCompute},
			Evaluate: func(ctx Context) Status {
				if ctx.HasEdge(model.RelSecuredBy) {
					return StatusPass
				}
				return StatusFail
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusFail {
					return "resource has no secured-by relationship"
				}
				return "access control checked"
			},
		},
		{
			ID: "cis-4.3-ensure-no-default-vpc", Framework: "CIS", Section: "4.3",
			Title: "Compute resources run inside a named VPC, not the default network", Severity: SeverityMedium,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceCompute, model.ResourceCluster},
			Evaluate: func(ctx Context) Status {
				if ctx.HasEdge(model.RelRunsIn) {
					return StatusPass
				}
				return StatusFail
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusFail {
					return "resource has no runs-in relationship to a VPC"
				}
				return "VPC placement checked"
			},
		},
		{
			ID: "cis-1.4-ensure-iam-role-not-overprivileged", Framework: "CIS", Section: "1.4",
			Title: "IAM roles are scoped to specific resources rather than unused", Severity: SeverityMedium,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceIAMRole},
			Evaluate: func(ctx Context) Status {
				if ctx.HasEdge(model.RelGrantsAccessTo) {
					return StatusPass
				}
				return StatusWarning
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusWarning {
					return "role grants access to no observed resource"
				}
				return "role scope checked"
			},
		},
		{
			ID: "cis-3.1-ensure-logging-enabled", Framework: "CIS", Section: "3.1",
			Title: "Resources emit logs to a log sink", Severity: SeverityMedium,
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
			ID: "cis-5.1-ensure-database-not-public", Framework: "CIS", Section: "5.1",
			Title: "Databases are not publicly accessible", Severity: SeverityCritical,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceDatabase},
			Evaluate: func(ctx Context) Status {
				public, ok := metadataBool(ctx, "publiclyAccessible")
				if !ok {
					return StatusWarning
				}
				if public {
					return StatusFail
				}
				return StatusPass
			},
			Reason: reasonPublicAccessUntagged,
		},
		{
			ID: "cis-5.2-ensure-database-encrypted", Framework: "CIS", Section: "5.2",
			Title: "Databases are encrypted at rest", Severity: SeverityHigh,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceDatabase},
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
			ID: "cis-6.1-ensure-load-balancer-tls", Framework: "CIS", Section: "6.1",
			Title: "Load balancers are issued a certificate", Severity: SeverityHigh,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceLoadBalancer},
			Evaluate: func(ctx Context) Status {
				if ctx.HasEdge(model.RelIssuedFor) {
					return StatusPass
				}
				return StatusFail
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusFail {
					return "load balancer has no issued-for certificate relationship"
				}
				return "TLS termination checked"
			},
		},
		{
			ID: "cis-7.1-ensure-function-not-internet-triggered-unchecked", Framework: "CIS", Section: "7.1",
			Title: "Functions invoked externally are fronted by an API gateway", Severity: SeverityMedium,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceFunction},
			Evaluate: func(ctx Context) Status {
				if !ctx.HasEdge(model.RelInvokedBy) && !ctx.HasEdge(model.RelTriggers) {
					return StatusNotApplicable
				}
				if ctx.HasEdge(model.RelFrontedBy) {
					return StatusPass
				}
				return StatusWarning
			},
			Reason: func(ctx Context, s Status) string {
				if s == StatusWarning {
					return "externally-invoked function has no fronted-by relationship"
				}
				return "function exposure checked"
			},
		},
		{
			ID: "cis-8.1-ensure-autoscaling-has-health-check", Framework: "CIS", Section: "8.1",
			Title: "Autoscaling groups are monitored", Severity: SeverityLow,
			ApplicableResourceTypes: []model.ResourceType{model.ResourceAutoscaleGroup},
			Evaluate: func(ctx Context) Status {
				if ctx.HasEdge(model.RelMonitors) {
					return StatusPass
				}
				return StatusWarning
			},
			Reason: reasonMonitoring,
		},
	}
}
