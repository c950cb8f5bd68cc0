package game

import (
	"go.uber.org/zap"

	"github.com/park285/voicechess/internal/msgcat"
)

// DiagnosticKind names a non-fatal reducer condition.
type DiagnosticKind string

const (
	InvalidSquare      DiagnosticKind = "invalid_square"
	PieceNotFound      DiagnosticKind = "piece_not_found"
	UnknownPiece       DiagnosticKind = "unknown_piece"
	UnrecognizedIntent DiagnosticKind = "unrecognized_intent"
)

// Diagnostic describes a command that was ignored.
type Diagnostic struct {
	Kind      DiagnosticKind
	ContextID string
	Intent    string
	Piece     string
	Square    string
	Err       error
}

// DiagnosticSink receives diagnostics. Report must not block for long;
// it runs inside Reduce.
type DiagnosticSink interface {
	Report(d Diagnostic)
}

// NopSink drops everything.
type NopSink struct{}

func (NopSink) Report(Diagnostic) {}

// SinkFunc adapts a function to DiagnosticSink.
type SinkFunc func(Diagnostic)

func (f SinkFunc) Report(d Diagnostic) { f(d) }

// LogSink writes diagnostics to zap, with a human message from the catalog.
type LogSink struct {
	logger  *zap.Logger
	catalog *msgcat.Catalog
}

func NewLogSink(logger *zap.Logger, catalog *msgcat.Catalog) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger, catalog: catalog}
}

var diagnosticEvents = map[DiagnosticKind]string{
	InvalidSquare:      "square_invalid",
	PieceNotFound:      "move_unresolved",
	UnknownPiece:       "piece_unknown",
	UnrecognizedIntent: "intent_unrecognized",
}

func (s *LogSink) Report(d Diagnostic) {
	fields := []zap.Field{
		zap.String("kind", string(d.Kind)),
		zap.String("context_id", d.ContextID),
		zap.String("intent", d.Intent),
	}
	if d.Piece != "" {
		fields = append(fields, zap.String("piece", d.Piece))
	}
	if d.Square != "" {
		fields = append(fields, zap.String("square", d.Square))
	}
	if d.Err != nil {
		fields = append(fields, zap.Error(d.Err))
	}
	fields = append(fields, zap.String("message", s.Message(d)))

	event, ok := diagnosticEvents[d.Kind]
	if !ok {
		event = "reducer_diagnostic"
	}
	if d.Kind == UnrecognizedIntent {
		s.logger.Debug(event, fields...)
		return
	}
	s.logger.Warn(event, fields...)
}

// Message renders the user-facing text for d.
func (s *LogSink) Message(d Diagnostic) string {
	data := map[string]string{
		"Piece":  d.Piece,
		"Square": d.Square,
		"Intent": d.Intent,
	}
	return s.catalog.RenderOr("diagnostic."+string(d.Kind), data, string(d.Kind))
}
