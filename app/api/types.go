package api

import (
	"github.com/devradar/devradar/app/aggregator"
	"github.com/devradar/devradar/app/database"
	"github.com/devradar/devradar/app/tasks"
)

// StatsProvider exposes the last aggregation run's statistics.
type StatsProvider interface {
	LastStats() *aggregator.RunStats
}

var _ StatsProvider = (*aggregator.Aggregator)(nil)

type Handler struct {
	contentRepo database.ContentRepository
	aggregator  *aggregator.Aggregator
	scheduler   tasks.TaskSchedulerInterface
	version     string
}
