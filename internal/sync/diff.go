package sync

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/cloudgraph/ikg/pkg/model"
)

// fieldDiff is one differing mutable attribute between a persisted node
// and a freshly discovered one.
type fieldDiff struct {
	Field    string
	Previous string
	New      string
}

// mutableFieldDiffs compares the mutable field set {name, status,
// region, owner, costMonthly} plus deep-structural tags/metadata
// equality, per spec.md §4.2 step 3. Grounded on the teacher's
// ResourceComparator recursive-diff approach, narrowed to this spec's
// exact field list.
func mutableFieldDiffs(existing model.Node, incoming model.NodeInput) []fieldDiff {
	var diffs []fieldDiff

	if existing.Name != incoming.Name {
		diffs = append(diffs, fieldDiff{"name", existing.Name, incoming.Name})
	}
	if existing.Status != incoming.Status {
		diffs = append(diffs, fieldDiff{"status", string(existing.Status), string(incoming.Status)})
	}
	if existing.Region != incoming.Region {
		diffs = append(diffs, fieldDiff{"region", existing.Region, incoming.Region})
	}
	if ownerString(existing.Owner) != ownerString(incoming.Owner) {
		diffs = append(diffs, fieldDiff{"owner", ownerString(existing.Owner), ownerString(incoming.Owner)})
	}
	if costString(existing.CostMonthly) != costString(incoming.CostMonthly) {
		diffs = append(diffs, fieldDiff{"costMonthly", costString(existing.CostMonthly), costString(incoming.CostMonthly)})
	}
	if !reflect.DeepEqual(existing.Tags, incoming.Tags) {
		diffs = append(diffs, fieldDiff{"tags", jsonString(existing.Tags), jsonString(incoming.Tags)})
	}
	if !reflect.DeepEqual(existing.Metadata, incoming.Metadata) {
		diffs = append(diffs, fieldDiff{"metadata", jsonString(existing.Metadata), jsonString(incoming.Metadata)})
	}
	return diffs
}

func ownerString(o *string) string {
	if o == nil {
		return ""
	}
	return *o
}

func costString(c *float64) string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("%g", *c)
}

func jsonString(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
