package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/devradar/devradar/app/aggregator"
)

type AggregateTask struct {
	Task
	aggregator *aggregator.Aggregator
}

func NewAggregateTask(agg *aggregator.Aggregator) *AggregateTask {
	return &AggregateTask{
		Task:       NewTask(TaskTypeAggregate),
		aggregator: agg,
	}
}

func (t *AggregateTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	stats, err := t.aggregator.Run(ctx)
	if errors.Is(err, aggregator.ErrRunInProgress) {
		slog.Info("Aggregation run already in progress, skipping", "id", t.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("aggregation run failed: %w", err)
	}

	slog.Info("Task completed",
		"type", "Aggregate",
		"id", t.ID,
		"duration", t.GetDuration(),
		"batch", stats.BatchName,
		"fetched", stats.Fetched,
		"saved", stats.Saved)

	return nil
}
