package infra

import (
	"errors"
	"log/slog"

	"storefront-cart/internal/pkg/errs"
)

type InfraErrorKind string

type InfraError struct {
	Kind InfraErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e InfraError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e InfraError) Unwrap() error {
	return e.err
}

func WrapInfraErr(slogger *slog.Logger, kind InfraErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}

	slogger.Error("Infra error: "+msg, logArgs...)

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return InfraError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind InfraErrorKind) bool {
	var e InfraError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindNotFound            InfraErrorKind = "NOT_FOUND"
	KindStorageFailure      InfraErrorKind = "STORAGE_FAILURE"
	KindCollaboratorFailure InfraErrorKind = "COLLABORATOR_FAILURE"
	KindBadResponse         InfraErrorKind = "BAD_RESPONSE"
)
