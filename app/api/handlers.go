package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devradar/devradar/app/aggregator"
	"github.com/devradar/devradar/app/database"
	"github.com/devradar/devradar/app/tasks"
)

const (
	defaultItemsLimit = 50
	maxItemsLimit     = 200
)

func NewHandler(contentRepo database.ContentRepository, agg *aggregator.Aggregator,
	scheduler tasks.TaskSchedulerInterface, version string) *Handler {
	return &Handler{
		contentRepo: contentRepo,
		aggregator:  agg,
		scheduler:   scheduler,
		version:     version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
	}

	if count, err := h.contentRepo.GetItemCount(); err == nil {
		health["items"] = count
	}

	if stats := h.aggregator.LastStats(); stats != nil {
		health["last_run_at"] = stats.FinishedAt.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := h.aggregator.LastStats()
	if stats == nil {
		c.JSON(http.StatusOK, gin.H{"message": "no completed runs yet"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// APITriggerRun enqueues an aggregation run. The run itself executes in the
// background; overlapping requests are absorbed by the aggregator's
// single-flight guard.
func (h *Handler) APITriggerRun(c *gin.Context) {
	task := tasks.NewAggregateTask(h.aggregator)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Failed to enqueue aggregation run", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not enqueue run"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"task_id": task.GetID()})
}

func (h *Handler) APIListItems(c *gin.Context) {
	limit := defaultItemsLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = min(parsed, maxItemsLimit)
	}

	items, err := h.contentRepo.GetRecentWithCategory(limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_recent_items", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	results := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		results = append(results, map[string]interface{}{
			"id":            item.ID,
			"title":         item.Title,
			"link":          item.Link,
			"source_kind":   item.SourceKind,
			"source_name":   item.SourceName,
			"category":      item.CategorySlug,
			"published_at":  item.PublishedAt,
			"engagement":    item.Engagement,
			"quality_score": item.QualityScore,
			"status":        item.Status,
			"created_at":    item.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": results, "count": len(results)})
}
