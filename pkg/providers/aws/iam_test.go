package aws

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anirudhbiyani/cloud-samples/pkg/samples"
)

func TestFormatRoles(t *testing.T) {
	out := FormatRoles([]RoleInfo{
		{Name: "deploy", ARN: "arn:aws:iam::123456789012:role/deploy"},
		{Name: "readonly", ARN: "arn:aws:iam::123456789012:role/readonly"},
	})
	assert.Contains(t, out, "deploy")
	assert.Contains(t, out, "arn:aws:iam::123456789012:role/readonly")
}

func TestFormatRolesEmpty(t *testing.T) {
	assert.Equal(t, "No IAM roles found.\n", FormatRoles(nil))
}

// awsStatusError mimics the shape of the AWS transport's response error.
type awsStatusError struct{}

func (awsStatusError) Error() string       { return "operation error IAM: ListRoles, 403" }
func (awsStatusError) HTTPStatusCode() int { return http.StatusForbidden }

func TestAWSTransportErrorClassifiesAsServiceFailure(t *testing.T) {
	f := samples.Classify(awsStatusError{})
	assert.Equal(t, samples.OutcomeServiceRequestFailed, f.Outcome)
	assert.Contains(t, f.Message, "access denied")
}
