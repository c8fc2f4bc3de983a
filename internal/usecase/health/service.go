package health

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogqa/internal/logger"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the optional cache is failing; queries still work.
	Degraded Status = "degraded"
	// Unhealthy indicates a provider queries depend on is failing.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names used as check keys.
const (
	ComponentCache      = "cache"
	ComponentEmbedding  = "embedding"
	ComponentClassifier = "classifier"
)

// DefaultCheckTimeout bounds a single component check.
const DefaultCheckTimeout = 5 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Deps lists the checked components. Nil components are skipped.
type Deps struct {
	Cache      CachePinger
	Embedding  ProviderChecker
	Classifier ProviderChecker
	Timeout    time.Duration
}

// Service coordinates health checks.
type Service struct {
	deps Deps
}

// New creates a Service.
func New(d Deps) *Service {
	if d.Timeout <= 0 {
		d.Timeout = DefaultCheckTimeout
	}
	return &Service{deps: d}
}

// Check runs health checks against all configured components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if s.deps.Cache != nil {
		checks[ComponentCache] = s.run(ctx, ComponentCache, s.deps.Cache.Ping)
		if checks[ComponentCache] == CheckError {
			status = Degraded
		}
	}

	required := []struct {
		name    string
		checker ProviderChecker
	}{
		{ComponentEmbedding, s.deps.Embedding},
		{ComponentClassifier, s.deps.Classifier},
	}
	for _, r := range required {
		if r.checker == nil {
			continue
		}
		checks[r.name] = s.run(ctx, r.name, r.checker.HealthCheck)
		if checks[r.name] == CheckError {
			status = Unhealthy
		}
	}

	return Report{Status: status, Checks: checks}
}

func (s *Service) run(ctx context.Context, name string, check func(context.Context) error) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, s.deps.Timeout)
	defer cancel()

	if err := check(ctx); err != nil {
		logger.FromContext(ctx).Warn("Health check failed",
			zap.String("component", name),
			zap.Error(err),
		)
		return CheckError
	}
	return CheckOK
}
