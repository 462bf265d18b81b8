package azerr

// Failure is the structured error payload crossing the core boundary.
// No raw fault ever leaves a public operation without being wrapped in one.
type Failure struct {
	Kind        Kind     `json:"error_kind"`
	Message     string   `json:"message"`
	Details     string   `json:"details"`
	Remediation []string `json:"remediation"`
}

var remediations = map[Kind][]string{
	KindAuthenticationExpired: {
		"Verify AZURE_TENANT_ID and AZURE_CLIENT_ID are correct",
		"Ensure the credential is valid and not expired",
		"Check the service principal has the required RBAC roles: Cost Management Reader, Reader, Advisor Reader",
	},
	KindRateLimitExceeded: {
		"Reduce the number of concurrent requests",
		"Implement caching for frequently accessed data",
		"Consider batching requests",
		"Wait before retrying (recommended: 60 seconds)",
	},
	KindTransient: {
		"Check Azure service health status",
		"Verify network connectivity to Azure",
		"Retry the operation after a short delay",
	},
	KindNotFound: {
		"Verify the subscription ID is correct",
		"Check resource group and resource names",
		"Ensure the service principal has access to the subscription",
	},
	KindClient: {
		"Check API permissions and RBAC roles",
		"Review the request parameters for invalid values",
	},
	KindUnknown: {
		"Check application logs for details",
		"Verify network connectivity to Azure",
		"Contact support if the issue persists",
	},
}

var messages = map[Kind]string{
	KindAuthenticationExpired: "Azure authentication failed. Please check your credentials and RBAC permissions.",
	KindRateLimitExceeded:     "Azure API rate limit exceeded. Please reduce request frequency.",
	KindTransient:             "Azure reported a transient service error.",
	KindNotFound:              "The requested Azure resource was not found.",
	KindClient:                "The request was rejected by the Azure API.",
	KindUnknown:               "An unexpected error occurred.",
}

// ToFailure converts any error into the boundary failure shape, attaching
// the fixed remediation hints for its kind.
func ToFailure(err error) Failure {
	kind := KindOf(err)
	return Failure{
		Kind:        kind,
		Message:     messages[kind],
		Details:     err.Error(),
		Remediation: remediations[kind],
	}
}
