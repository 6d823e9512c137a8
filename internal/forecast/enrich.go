package forecast

import (
	"github.com/cloudgraph/ikg/internal/cost"
)

// EnrichWithGraph populates a Result's Summary with per-provider and
// per-resource-type cost breakdowns and the top cost-driving nodes,
// sourced from the current graph's cost attribution. This is a
// separate step from Forecast because it requires reading live graph
// state rather than just the historical snapshot series.
func EnrichWithGraph(result Result, attribution cost.Attribution) Result {
	result.Summary.ByProvider = attribution.ByProvider
	result.Summary.ByResourceType = attribution.ByType
	drivers := make([]TopCostDriver, 0, len(attribution.TopNodes))
	for _, nc := range attribution.TopNodes {
		drivers = append(drivers, TopCostDriver{NodeID: nc.NodeID, Name: nc.Name, CostMonthly: nc.CostMonthly})
	}
	result.Summary.TopCostDrivers = drivers
	return result
}
