package remediate

import "github.com/cloudgraph/ikg/pkg/model"

// dialectSupport declares which (dialect, provider) pairs can render a
// resource at all; CloudFormation only ever speaks AWS.
func dialectSupportsProvider(d Dialect, p model.Provider) bool {
	switch d {
	case DialectCloudFormation:
		return p == model.ProviderAWS
	case DialectTerraform, DialectOpenTofu, DialectPulumi:
		return p == model.ProviderAWS || p == model.ProviderAzure || p == model.ProviderGCP || p == model.ProviderHybrid
	default:
		return false
	}
}

// terraformResourceType maps a ResourceType to the Terraform resource
// type string for the given provider. Unmapped pairs are unsupported.
func terraformResourceType(p model.Provider, rt model.ResourceType) (string, bool) {
	if p != model.ProviderAWS {
		return "", false
	}
	m := map[model.ResourceType]string{
		model.ResourceCompute:       "aws_instance",
		model.ResourceDatabase:      "aws_db_instance",
		model.ResourceStorage:       "aws_s3_bucket",
		model.ResourceVPC:           "aws_vpc",
		model.ResourceSubnet:        "aws_subnet",
		model.ResourceLoadBalancer:  "aws_lb",
		model.ResourceSecurityGroup: "aws_security_group",
		model.ResourceIAMRole:       "aws_iam_role",
		model.ResourceFunction:      "aws_lambda_function",
		model.ResourceCache:         "aws_elasticache_cluster",
		model.ResourceQueue:         "aws_sqs_queue",
		model.ResourceTopic:         "aws_sns_topic",
	}
	t, ok := m[rt]
	return t, ok
}

// cloudFormationResourceType maps a ResourceType to its AWS::... type.
func cloudFormationResourceType(rt model.ResourceType) (string, bool) {
	m := map[model.ResourceType]string{
		model.ResourceCompute:       "AWS::EC2::Instance",
		model.ResourceDatabase:      "AWS::RDS::DBInstance",
		model.ResourceStorage:       "AWS::S3::Bucket",
		model.ResourceVPC:           "AWS::EC2::VPC",
		model.ResourceSubnet:        "AWS::EC2::Subnet",
		model.ResourceLoadBalancer:  "AWS::ElasticLoadBalancingV2::LoadBalancer",
		model.ResourceSecurityGroup: "AWS::EC2::SecurityGroup",
		model.ResourceIAMRole:       "AWS::IAM::Role",
		model.ResourceFunction:      "AWS::Lambda::Function",
	}
	t, ok := m[rt]
	return t, ok
}

// pulumiResourceType maps a ResourceType to an `@pulumi/aws` class name.
func pulumiResourceType(rt model.ResourceType) (string, bool) {
	m := map[model.ResourceType]string{
		model.ResourceCompute:       "aws.ec2.Instance",
		model.ResourceDatabase:      "aws.rds.Instance",
		model.ResourceStorage:       "aws.s3.Bucket",
		model.ResourceVPC:           "aws.ec2.Vpc",
		model.ResourceSubnet:        "aws.ec2.Subnet",
		model.ResourceLoadBalancer:  "aws.lb.LoadBalancer",
		model.ResourceSecurityGroup: "aws.ec2.SecurityGroup",
		model.ResourceIAMRole:       "aws.iam.Role",
		model.ResourceFunction:      "aws.lambda.Function",
	}
	t, ok := m[rt]
	return t, ok
}

func classifyRisk(node model.Node, fields []DriftedField) Risk {
	isProduction := node.Tags["environment"] == "production"
	touchesStatus := false
	touchesSecurity := false
	for _, f := range fields {
		if f.Field == "status" {
			touchesStatus = true
		}
		if isSecurityRelated(f.Field) {
			touchesSecurity = true
		}
	}
	if touchesStatus || (isProduction && touchesSecurity) {
		return RiskHigh
	}
	if isProduction || touchesSecurity {
		return RiskMedium
	}
	return RiskLow
}
