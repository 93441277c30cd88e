package tasks

import (
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	task := NewTask(TaskTypeAggregate)

	if task.ID == "" {
		t.Error("Expected task to get an ID")
	}
	if task.Type != TaskTypeAggregate {
		t.Errorf("Expected aggregate task type, got %q", task.Type)
	}
	if task.MaxRetries != DefaultMaxRetries {
		t.Errorf("Expected default max retries, got %d", task.MaxRetries)
	}
}

func TestTask_RetryBookkeeping(t *testing.T) {
	task := NewTask(TaskTypeAggregate)

	for i := 0; i < DefaultMaxRetries; i++ {
		if !task.CanRetry() {
			t.Fatalf("Expected retry %d to be allowed", i+1)
		}
		task.IncrementRetryCount()
	}

	if task.CanRetry() {
		t.Error("Expected retries exhausted after maximum attempts")
	}
	if task.GetRetryCount() != DefaultMaxRetries {
		t.Errorf("Expected retry count %d, got %d", DefaultMaxRetries, task.GetRetryCount())
	}
}

func TestTask_Duration(t *testing.T) {
	task := NewTask(TaskTypeAggregate)

	if task.GetDuration() != 0 {
		t.Error("Expected zero duration before start")
	}

	task.Start()
	time.Sleep(10 * time.Millisecond)

	if task.GetDuration() <= 0 {
		t.Error("Expected positive duration after start")
	}
}
