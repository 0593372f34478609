package query

import (
	"context"
	"net/http"
	"testing"

	"github.com/goliatone/go-cloudbind/core"
	goerrors "github.com/goliatone/go-errors"
)

func TestGetServiceDescriptorMessage_ValidateReturnsRichError(t *testing.T) {
	err := (GetServiceDescriptorMessage{}).Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryValidation {
		t.Fatalf("expected validation category, got %q", rich.Category)
	}
	if rich.TextCode != core.CloudErrorBadInput {
		t.Fatalf("expected %q text code, got %q", core.CloudErrorBadInput, rich.TextCode)
	}
	if rich.Code != http.StatusBadRequest {
		t.Fatalf("expected %d code, got %d", http.StatusBadRequest, rich.Code)
	}
	validation := rich.AllValidationErrors()
	if len(validation) == 0 {
		t.Fatalf("expected validation errors in envelope")
	}
	if validation[0].Field != "service_id" {
		t.Fatalf("expected service_id validation field, got %q", validation[0].Field)
	}
}

func TestCreateConnectorMessage_ValidateRequiresConnectorType(t *testing.T) {
	err := (CreateConnectorMessage{ServiceID: "customerDb"}).Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if validation := rich.AllValidationErrors(); len(validation) == 0 || validation[0].Field != "connector_type" {
		t.Fatalf("expected connector_type validation field, got %+v", validation)
	}
}

func TestListServiceDescriptorsMessage_ValidateRejectsBothFilters(t *testing.T) {
	msg := ListServiceDescriptorsMessage{ConnectorType: typeDatabase, Kind: kindSQL}
	if err := msg.Validate(); err == nil {
		t.Fatalf("expected mutually exclusive filters to fail validation")
	}
}

func TestGetCloudPropertiesQuery_NilReaderReturnsRichError(t *testing.T) {
	_, err := NewGetCloudPropertiesQuery(nil).Query(context.Background(), GetCloudPropertiesMessage{})
	if err == nil {
		t.Fatalf("expected dependency error")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.TextCode != core.CloudErrorInternal {
		t.Fatalf("expected %q text code, got %q", core.CloudErrorInternal, rich.TextCode)
	}
	if rich.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d code, got %d", http.StatusInternalServerError, rich.Code)
	}
}
