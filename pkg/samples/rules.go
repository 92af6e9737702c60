package samples

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// DefaultRules returns the built-in classification ladder:
// authentication failures, then service status codes, then malformed
// endpoints. Order matters; callers composing their own ladder must
// preserve it to keep authentication failures from being misread as
// plain 401 responses.
func DefaultRules() []Rule {
	return []Rule{
		AuthenticationRule(),
		ServiceStatusRule(),
		EndpointRule(),
	}
}

// AuthenticationRule matches credential acquisition/validation failures:
// the identity SDK's AuthenticationFailedError and anything the samples
// flagged with CategoryAuth.
func AuthenticationRule() Rule {
	return Rule{
		Name: "authentication",
		Match: func(err error) (Failure, bool) {
			var authErr *azidentity.AuthenticationFailedError
			if errors.As(err, &authErr) {
				return Failure{
					Outcome: OutcomeAuthenticationFailed,
					Message: fmt.Sprintf("authentication failed: %v", authErr),
				}, true
			}
			if IsCategory(err, CategoryAuth) {
				return Failure{
					Outcome: OutcomeAuthenticationFailed,
					Message: fmt.Sprintf("authentication failed: %v", err),
				}, true
			}
			return Failure{}, false
		},
	}
}

// statusCoder is implemented by transport errors that carry an HTTP
// status code, such as the AWS SDK's response errors.
type statusCoder interface {
	HTTPStatusCode() int
}

// ServiceStatusRule matches failures carrying a numeric service status
// code and selects a message by code.
func ServiceStatusRule() Rule {
	return Rule{
		Name: "service_status",
		Match: func(err error) (Failure, bool) {
			var respErr *azcore.ResponseError
			if errors.As(err, &respErr) {
				return statusFailure(respErr.StatusCode, err), true
			}
			var sc statusCoder
			if errors.As(err, &sc) {
				return statusFailure(sc.HTTPStatusCode(), err), true
			}
			return Failure{}, false
		},
	}
}

func statusFailure(status int, err error) Failure {
	f := Failure{Outcome: OutcomeServiceRequestFailed}
	switch status {
	case http.StatusUnauthorized:
		f.Message = "the service rejected the request (401): verify the credential is valid and the identity has permission to perform the operation"
	case http.StatusForbidden:
		f.Message = "access denied by the service (403): the signed-in identity lacks a role assignment covering this resource"
	case http.StatusNotFound:
		f.Message = "resource not found (404): check the resource name and endpoint"
	default:
		f.Message = fmt.Sprintf("service request failed with status %d: %v", status, err)
	}
	return f
}

// EndpointRule matches failures whose only distinguishing trait is a
// malformed endpoint address: URL parse errors, configuration errors
// raised by the samples, or messages mentioning an invalid URL.
func EndpointRule() Rule {
	return Rule{
		Name: "endpoint",
		Match: func(err error) (Failure, bool) {
			var urlErr *url.Error
			if errors.As(err, &urlErr) || IsCategory(err, CategoryConfig) ||
				strings.Contains(strings.ToLower(err.Error()), "invalid url") {
				return Failure{
					Outcome: OutcomeInvalidConfiguration,
					Message: fmt.Sprintf("invalid configuration: %v", err),
				}, true
			}
			return Failure{}, false
		},
	}
}
