package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const hookMetricPrefix = "categoryassign_"

// renderHookMetrics tabulates the hook counters gathered during this run.
func renderHookMetrics(g prometheus.Gatherer) (string, error) {
	families, err := g.Gather()
	if err != nil {
		return "", fmt.Errorf("gather hook metrics: %w", err)
	}
	var rows [][]string
	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), hookMetricPrefix) {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, pair := range metric.GetLabel() {
				labels = append(labels, pair.GetName()+"="+pair.GetValue())
			}
			rows = append(rows, []string{
				family.GetName(),
				strings.Join(labels, ","),
				strconv.FormatFloat(metric.GetCounter().GetValue(), 'f', -1, 64),
			})
		}
	}
	if len(rows) == 0 {
		return "No hook calls recorded\n", nil
	}
	return renderTable([]column{textColumn("Metric"), textColumn("Labels"), idColumn("Count")}, rows) + "\n", nil
}
