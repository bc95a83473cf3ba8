package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AuthMetrics counts the authentication flow: login attempts and failures,
// throttle denials, and token verification failures.
type AuthMetrics struct {
	loginAttempts   metric.Int64Counter
	loginFailures   metric.Int64Counter
	throttleDenials metric.Int64Counter
	tokenFailures   metric.Int64Counter
	registrations   metric.Int64Counter
}

// NewAuthMetrics creates the auth instruments on the global meter.
func NewAuthMetrics() (*AuthMetrics, error) {
	meter := otel.Meter(tracerName)

	loginAttempts, err := meter.Int64Counter("auth.login.attempts",
		metric.WithDescription("Login attempts, successful or not"))
	if err != nil {
		return nil, fmt.Errorf("observability: auth.login.attempts: %w", err)
	}
	loginFailures, err := meter.Int64Counter("auth.login.failures",
		metric.WithDescription("Login attempts rejected for bad credentials"))
	if err != nil {
		return nil, fmt.Errorf("observability: auth.login.failures: %w", err)
	}
	throttleDenials, err := meter.Int64Counter("auth.throttle.denials",
		metric.WithDescription("Login attempts denied by the throttle"))
	if err != nil {
		return nil, fmt.Errorf("observability: auth.throttle.denials: %w", err)
	}
	tokenFailures, err := meter.Int64Counter("auth.token.failures",
		metric.WithDescription("Bearer tokens that failed verification"))
	if err != nil {
		return nil, fmt.Errorf("observability: auth.token.failures: %w", err)
	}
	registrations, err := meter.Int64Counter("auth.registrations",
		metric.WithDescription("Accounts registered"))
	if err != nil {
		return nil, fmt.Errorf("observability: auth.registrations: %w", err)
	}

	return &AuthMetrics{
		loginAttempts:   loginAttempts,
		loginFailures:   loginFailures,
		throttleDenials: throttleDenials,
		tokenFailures:   tokenFailures,
		registrations:   registrations,
	}, nil
}

// RecordLoginAttempt counts a login attempt and, when failed is set, a
// credential failure.
func (m *AuthMetrics) RecordLoginAttempt(ctx context.Context, failed bool) {
	if m == nil {
		return
	}
	m.loginAttempts.Add(ctx, 1)
	if failed {
		m.loginFailures.Add(ctx, 1)
	}
}

// RecordThrottleDenial counts a throttled login attempt.
func (m *AuthMetrics) RecordThrottleDenial(ctx context.Context) {
	if m == nil {
		return
	}
	m.throttleDenials.Add(ctx, 1)
}

// RecordTokenFailure counts a failed bearer-token verification by kind.
func (m *AuthMetrics) RecordTokenFailure(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.tokenFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordRegistration counts a successful registration.
func (m *AuthMetrics) RecordRegistration(ctx context.Context) {
	if m == nil {
		return
	}
	m.registrations.Add(ctx, 1)
}
