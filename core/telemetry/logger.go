// Package telemetry records contract-run observability events.
// A sink is a side-effecting collaborator, never part of decision logic:
// failures here must not affect a run's return value or control flow.
package telemetry

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"energy-quote/core/types"
	"energy-quote/internal/logging"
)

// SuccessMetrics summarizes a completed contract run
type SuccessMetrics struct {
	BaseLoadKW      float64
	PeakLoadKW      float64
	EnergyKWhPerDay float64
	WarningCount    int
	AssumptionCount int

	// MissingInputs lists inputs the calculator flagged as absent
	MissingInputs []string
}

// Logger records the lifecycle events of one contract run
type Logger interface {
	// LogStart records the run beginning and its template/calculator pairing
	LogStart(questionCount int)

	// LogSuccess records a completed run
	LogSuccess(metrics SuccessMetrics)

	// LogFailure records a fatal run error
	LogFailure(code, message string)

	// LogWarnings records non-fatal sanity-check warnings
	LogWarnings(warnings []string)

	// LogValidationFailed records template/calculator validation issues
	LogValidationFailed(issues []string)

	// SessionID returns the stable id for this run's session
	SessionID() string
}

// zapLogger is the default sink, writing structured events via zap
type zapLogger struct {
	log       *zap.Logger
	sessionID string
}

// New creates a zap-backed run logger for the given pairing
func New(industry types.IndustrySlug, templateVersion, calculatorID string) Logger {
	return &zapLogger{
		log: logging.With(
			zap.String("industry", industry.String()),
			zap.String("template_version", templateVersion),
			zap.String("calculator_id", calculatorID),
		),
		sessionID: uuid.NewString(),
	}
}

func (l *zapLogger) LogStart(questionCount int) {
	l.log.Info("contract run started",
		zap.String("session_id", l.sessionID),
		zap.Int("question_count", questionCount),
	)
}

func (l *zapLogger) LogSuccess(m SuccessMetrics) {
	l.log.Info("contract run succeeded",
		zap.String("session_id", l.sessionID),
		zap.Float64("base_load_kw", m.BaseLoadKW),
		zap.Float64("peak_load_kw", m.PeakLoadKW),
		zap.Float64("energy_kwh_per_day", m.EnergyKWhPerDay),
		zap.Int("warning_count", m.WarningCount),
		zap.Int("assumption_count", m.AssumptionCount),
		zap.Strings("missing_inputs", m.MissingInputs),
	)
}

func (l *zapLogger) LogFailure(code, message string) {
	l.log.Error("contract run failed",
		zap.String("session_id", l.sessionID),
		zap.String("code", code),
		zap.String("message", message),
	)
}

func (l *zapLogger) LogWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	l.log.Warn("contract run warnings",
		zap.String("session_id", l.sessionID),
		zap.Strings("warnings", warnings),
	)
}

func (l *zapLogger) LogValidationFailed(issues []string) {
	l.log.Error("template/calculator validation failed",
		zap.String("session_id", l.sessionID),
		zap.Strings("issues", issues),
	)
}

func (l *zapLogger) SessionID() string {
	return l.sessionID
}

// Nop is a sink that records nothing; useful in tests
type Nop struct {
	ID string
}

func (n Nop) LogStart(int)                  {}
func (n Nop) LogSuccess(SuccessMetrics)     {}
func (n Nop) LogFailure(string, string)     {}
func (n Nop) LogWarnings([]string)          {}
func (n Nop) LogValidationFailed([]string)  {}
func (n Nop) SessionID() string {
	if n.ID != "" {
		return n.ID
	}
	return "nop-session"
}
