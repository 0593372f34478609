package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestCloudErrorMapper_PassesThroughRichErrors(t *testing.T) {
	source := goerrors.New("boom", goerrors.CategoryOperation).WithTextCode(CloudErrorCreationFailed)
	mapped := cloudErrorMapper(source)
	if mapped.TextCode != CloudErrorCreationFailed {
		t.Fatalf("expected text code preserved, got %q", mapped.TextCode)
	}
	if mapped.Code == 0 {
		t.Fatalf("expected envelope to fill status code")
	}
}

func TestCloudErrorMapper_ClassifiesPlainErrors(t *testing.T) {
	cases := []struct {
		message  string
		textCode string
	}{
		{"core: no service with id \"x\" found", CloudErrorNotFound},
		{"core: no unique service matching mysql found, expected 1 found 2", CloudErrorNotUnique},
		{"core: no suitable connector creator found: service id=db", CloudErrorNoSuitableCreator},
		{"core: no suitable database driver found for db service", CloudErrorNoSuitableDriver},
		{"core: composite descriptor cycle detected at \"a\"", CloudErrorCompositeCycle},
		{"core: service id is required", CloudErrorBadInput},
	}
	for _, tc := range cases {
		mapped := cloudErrorMapper(errors.New(tc.message))
		if mapped.TextCode != tc.textCode {
			t.Fatalf("message %q: expected %s, got %s", tc.message, tc.textCode, mapped.TextCode)
		}
	}
}

func TestNotUniqueError_CarriesExpectedTypeAndCount(t *testing.T) {
	err := NotUniqueError(NewTypeRef("datasource"), 3)
	if !IsNotUnique(err) {
		t.Fatalf("expected not-unique classification")
	}
	for _, fragment := range []string{"datasource", "expected 1 found 3"} {
		if !containsFragment(err.Error(), fragment) {
			t.Fatalf("expected %q in message, got %q", fragment, err.Error())
		}
	}
}

func TestCreationFailedError_PreservesCause(t *testing.T) {
	cause := fmt.Errorf("driver exploded")
	err := CreationFailedError("customerDb", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected original cause to be preserved")
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		t.Fatalf("expected rich envelope, got %T", err)
	}
	if richErr.TextCode != CloudErrorCreationFailed {
		t.Fatalf("expected creation-failed text code, got %q", richErr.TextCode)
	}
}

func TestNotFoundError_StatusCode(t *testing.T) {
	var richErr *goerrors.Error
	if !goerrors.As(NotFoundError("with id \"db\""), &richErr) {
		t.Fatalf("expected rich envelope")
	}
	if richErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", richErr.Code)
	}
}
