package engine

import (
	"log/slog"

	"deltaml/delta/pkg/routing"
)

// Registry maps routing targets to engines and owns the fallback protocol.
// The engine set is fixed at construction; there is no dynamic plugin
// loading.
type Registry struct {
	tabular Engine
	text    Engine
	logger  *slog.Logger
}

// NewRegistry returns a registry serving the production engine pair.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		tabular: Tabular{},
		text:    Text{},
		logger:  logger.With("component", "engine.registry"),
	}
}

// Result is a dispatch outcome: the engine response plus the target that
// actually produced it, which differs from the requested target after a
// fallback.
type Result struct {
	Response Response
	Target   routing.Target

	// FellBack is true when the text engine failed and the tabular engine
	// served the request instead.
	FellBack bool
}

// Dispatch runs the engine for the requested target. A text-engine failure
// triggers one retry against the tabular engine; tabular failures
// propagate unmodified whether tabular ran as primary or as fallback.
func (r *Registry) Dispatch(target routing.Target, req Request) (Result, error) {
	if target == routing.TargetText {
		resp, err := r.text.Infer(req)
		if err == nil {
			return Result{Response: resp, Target: routing.TargetText}, nil
		}
		r.logger.Warn("text engine failed, retrying on tabular",
			"model_id", req.Model.ID.String(),
			"error", err,
		)
		resp, err = r.tabular.Infer(req)
		if err != nil {
			return Result{}, err
		}
		return Result{Response: resp, Target: routing.TargetTabular, FellBack: true}, nil
	}

	resp, err := r.tabular.Infer(req)
	if err != nil {
		return Result{}, err
	}
	return Result{Response: resp, Target: routing.TargetTabular}, nil
}
