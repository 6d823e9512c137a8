package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNode_CloneIsDeep(t *testing.T) {
	original := Node{
		ID:       "n1",
		Tags:     map[string]string{"env": "prod"},
		Metadata: map[string]interface{}{"k": "v"},
	}

	clone := original.Clone()
	clone.Tags["env"] = "staging"
	clone.Metadata["k"] = "changed"

	assert.Equal(t, "prod", original.Tags["env"])
	assert.Equal(t, "v", original.Metadata["k"])
}

func TestNode_CloneHandlesNilMaps(t *testing.T) {
	original := Node{ID: "n1"}
	clone := original.Clone()
	assert.Nil(t, clone.Tags)
	assert.Nil(t, clone.Metadata)
}

func TestNodeFilter_Matches(t *testing.T) {
	aws := ProviderAWS
	azure := ProviderAzure
	compute := ResourceCompute

	n := Node{
		ID: "n1", Provider: ProviderAWS, Account: "acct1", Region: "us-east-1",
		ResourceType: ResourceCompute, Status: StatusRunning, Name: "web-server-1",
		Tags: map[string]string{"team": "platform"},
	}

	cases := []struct {
		name   string
		filter NodeFilter
		want   bool
	}{
		{"empty filter matches all", NodeFilter{}, true},
		{"matching provider", NodeFilter{Provider: &aws}, true},
		{"mismatched provider", NodeFilter{Provider: &azure}, false},
		{"matching account", NodeFilter{Account: "acct1"}, true},
		{"mismatched account", NodeFilter{Account: "other"}, false},
		{"matching region", NodeFilter{Region: "us-east-1"}, true},
		{"matching resource type", NodeFilter{ResourceType: &compute}, true},
		{"matching status list", NodeFilter{Status: []Status{StatusStopped, StatusRunning}}, true},
		{"mismatched status list", NodeFilter{Status: []Status{StatusStopped}}, false},
		{"matching tag", NodeFilter{Tags: map[string]string{"team": "platform"}}, true},
		{"mismatched tag", NodeFilter{Tags: map[string]string{"team": "security"}}, false},
		{"name contains case-insensitive", NodeFilter{NameContains: "WEB"}, true},
		{"name contains miss", NodeFilter{NameContains: "database"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.Matches(n))
		})
	}
}
