// Package model defines the value objects shared by training, routing and
// inference: dataset and model identifiers, version labels, the closed set
// of model kinds, governance metadata (differential privacy and fairness),
// and the parsed training specification.
//
// Everything here is an immutable value. Identifiers are derived
// deterministically: the same (dataset, config, kind) triple always yields
// the same ModelID, so retraining an identical configuration lands on the
// same model family rather than forking a new one.
package model
