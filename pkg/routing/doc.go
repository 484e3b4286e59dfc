// Package routing implements the deterministic per-request router that
// selects a model family, and the reconciliation step that aligns the
// decision with the active model.
//
// The router is a stateless ordered decision procedure with three terminal
// outcomes, evaluated strictly in order:
//
//  1. features_only set (by the caller, an in-band payload flag, or a
//     nested context flag) → tabular, reason feature_override
//  2. text longer than 256 characters → text, reason long_text
//  3. otherwise → tabular, reason default_tabular
//
// The ordering is load-bearing: a features_only request routes tabular no
// matter how long its text is.
//
// Reconciliation then compares the decision with the active model's
// family. On disagreement the target is forced to tabular, but the router's
// original reason is kept in the decision record. That pairing can read as
// inconsistent in the audit trail (a tabular target with reason long_text);
// it is preserved deliberately because audit output is an observable
// contract.
package routing
