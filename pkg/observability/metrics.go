package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"archibridge/domain/events"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Bus metrics
	Commands        *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	Queries         *prometheus.CounterVec

	// Model metrics
	ConceptsCreated   prometheus.Counter
	ConceptsUpdated   prometheus.Counter
	PropertiesCreated prometheus.Counter
	Imports           prometheus.Counter
	ImagesStored      prometheus.Counter
	ImagesPruned      prometheus.Counter
	ModelsSaved       prometheus.Counter
}

// NewCollector creates a collector with its own registry under namespace
func NewCollector(namespace string) *Collector {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Total number of commands by outcome",
			},
			[]string{"command", "status"},
		),
		CommandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "command_duration_seconds",
				Help:      "Command duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"command"},
		),
		Queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "queries_total",
				Help:      "Total number of queries by outcome",
			},
			[]string{"query", "status"},
		),

		ConceptsCreated:   counter("concepts_created_total", "Concepts created by CSV imports"),
		ConceptsUpdated:   counter("concepts_updated_total", "Concepts changed by CSV imports"),
		PropertiesCreated: counter("properties_created_total", "Properties created by CSV imports"),
		Imports:           counter("csv_imports_total", "CSV imports that changed a model"),
		ImagesStored:      counter("images_stored_total", "Images added to models"),
		ImagesPruned:      counter("images_pruned_total", "Unreferenced images left out of saved archives"),
		ModelsSaved:       counter("models_saved_total", "Archive files written"),
	}

	c.registry.MustRegister(
		c.HTTPRequests, c.HTTPDuration,
		c.Commands, c.CommandDuration, c.Queries,
		c.ConceptsCreated, c.ConceptsUpdated, c.PropertiesCreated, c.Imports,
		c.ImagesStored, c.ImagesPruned, c.ModelsSaved,
	)
	return c
}

// Registry returns the registry holding the collector's metrics
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records one served request
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordCommand records a command outcome
func (c *Collector) RecordCommand(name string, duration time.Duration, err error) {
	c.Commands.WithLabelValues(name, outcome(err)).Inc()
	c.CommandDuration.WithLabelValues(name).Observe(duration.Seconds())
}

// RecordQuery records a query outcome
func (c *Collector) RecordQuery(name string, err error) {
	c.Queries.WithLabelValues(name, outcome(err)).Inc()
}

// Observe updates the model counters from a published domain event
func (c *Collector) Observe(_ context.Context, event events.DomainEvent) error {
	switch e := event.(type) {
	case events.ModelImported:
		c.Imports.Inc()
		c.ConceptsCreated.Add(float64(e.NewConcepts))
		c.ConceptsUpdated.Add(float64(e.UpdatedConcepts))
		c.PropertiesCreated.Add(float64(e.NewProperties))
	case events.ImageAdded:
		c.ImagesStored.Inc()
	case events.ModelSaved:
		c.ModelsSaved.Inc()
		c.ImagesPruned.Add(float64(e.PrunedImages))
	}
	return nil
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
