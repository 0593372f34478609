package core

import (
	"context"
	"sort"
	"time"
)

// observeOperation records one counter/histogram pair for a cloud operation
// and writes a structured log line. Operation names are fixed literals at the
// call sites.
func (c *Cloud) observeOperation(ctx context.Context, startedAt time.Time, operation string, err error, fields map[string]any) {
	if c == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	elapsed := time.Since(startedAt).Milliseconds()

	if c.metricsRecorder != nil {
		tags := map[string]string{"operation": operation, "status": status}
		c.metricsRecorder.IncCounter(ctx, "cloudbind."+operation+".total", 1, tags)
		c.metricsRecorder.ObserveHistogram(ctx, "cloudbind."+operation+".duration_ms", float64(elapsed), tags)
	}

	if c.logger == nil {
		return
	}
	entry := make(map[string]any, len(fields)+4)
	for key, value := range fields {
		entry[key] = value
	}
	entry["event_type"] = operation
	entry["status"] = status
	entry["duration_ms"] = elapsed
	if err != nil {
		entry["error"] = err.Error()
	}

	logger := c.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		logger = fieldsLogger.WithFields(entry)
	}
	if err != nil {
		logger.Error(operation+" failed", sortedArgs(entry)...)
		return
	}
	logger.Info(operation+" succeeded", sortedArgs(entry)...)
}

// sortedArgs keeps key/value log args deterministic.
func sortedArgs(fields map[string]any) []any {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}
