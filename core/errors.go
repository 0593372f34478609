package core

import (
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	CloudErrorBadInput          = "CLOUD_BAD_INPUT"
	CloudErrorNotFound          = "CLOUD_SERVICE_NOT_FOUND"
	CloudErrorNotUnique         = "CLOUD_SERVICE_NOT_UNIQUE"
	CloudErrorNoSuitableCreator = "CLOUD_NO_SUITABLE_CREATOR"
	CloudErrorNoSuitableDriver  = "CLOUD_NO_SUITABLE_DRIVER"
	CloudErrorCreationFailed    = "CLOUD_CONNECTOR_CREATION_FAILED"
	CloudErrorCompositeCycle    = "CLOUD_COMPOSITE_CYCLE"
	CloudErrorInternal          = "CLOUD_INTERNAL_ERROR"
)

// NotFoundError indicates no descriptor matched the requested id or type.
func NotFoundError(what string) error {
	return newCloudError(
		fmt.Sprintf("core: no service %s found", what),
		goerrors.CategoryNotFound,
		CloudErrorNotFound,
	)
}

// NotUniqueError indicates a singleton-expecting query matched zero or more
// than one candidate. The message carries the expected type and actual count.
func NotUniqueError(expected TypeRef, count int) error {
	return newCloudError(
		fmt.Sprintf("core: no unique service matching %s found, expected 1 found %d", expected, count),
		goerrors.CategoryConflict,
		CloudErrorNotUnique,
	)
}

// NoSuitableCreatorError names both sides of the failed match.
func NoSuitableCreatorError(connectorType TypeRef, descriptor Descriptor) error {
	id, kind := "<nil>", "<nil>"
	if descriptor != nil {
		id = descriptor.ID()
		kind = descriptor.Kind().String()
	}
	return newCloudError(
		fmt.Sprintf(
			"core: no suitable connector creator found: service id=%s, descriptor kind=%s, connector type=%s",
			id, kind, connectorType,
		),
		goerrors.CategoryOperation,
		CloudErrorNoSuitableCreator,
	)
}

// NoSuitableDriverError indicates a missing runtime dependency. Fatal, never
// retried.
func NoSuitableDriverError(serviceID string) error {
	return newCloudError(
		fmt.Sprintf("core: no suitable database driver found for %s service", serviceID),
		goerrors.CategoryOperation,
		CloudErrorNoSuitableDriver,
	)
}

// CreationFailedError wraps a creator failure, preserving the original cause.
func CreationFailedError(serviceID string, cause error) error {
	return ensureCloudErrorEnvelope(
		goerrors.Wrap(cause, goerrors.CategoryOperation,
			fmt.Sprintf("core: failed to create connector for %s service", serviceID)).
			WithTextCode(CloudErrorCreationFailed),
	)
}

func compositeCycleError(id string) error {
	return newCloudError(
		fmt.Sprintf("core: composite descriptor cycle detected at %q", id),
		goerrors.CategoryValidation,
		CloudErrorCompositeCycle,
	)
}

func IsNotFound(err error) bool {
	return hasTextCode(err, CloudErrorNotFound)
}

func IsNotUnique(err error) bool {
	return hasTextCode(err, CloudErrorNotUnique)
}

func hasTextCode(err error, textCode string) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == textCode
}

func cloudErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureCloudErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "no service") && strings.Contains(msg, "found"):
		return newCloudError(err.Error(), goerrors.CategoryNotFound, CloudErrorNotFound)
	case strings.Contains(msg, "no unique service"):
		return newCloudError(err.Error(), goerrors.CategoryConflict, CloudErrorNotUnique)
	case strings.Contains(msg, "no suitable connector creator"):
		return newCloudError(err.Error(), goerrors.CategoryOperation, CloudErrorNoSuitableCreator)
	case strings.Contains(msg, "no suitable database driver"):
		return newCloudError(err.Error(), goerrors.CategoryOperation, CloudErrorNoSuitableDriver)
	case strings.Contains(msg, "cycle"):
		return newCloudError(err.Error(), goerrors.CategoryValidation, CloudErrorCompositeCycle)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return newCloudError(err.Error(), goerrors.CategoryBadInput, CloudErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureCloudErrorEnvelope(mapped)
}

func newCloudError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureCloudErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureCloudErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = cloudHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultCloudTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultCloudTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return CloudErrorBadInput
	case goerrors.CategoryNotFound:
		return CloudErrorNotFound
	case goerrors.CategoryConflict:
		return CloudErrorNotUnique
	case goerrors.CategoryOperation:
		return CloudErrorCreationFailed
	default:
		return CloudErrorInternal
	}
}

func cloudHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
