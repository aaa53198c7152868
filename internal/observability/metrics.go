package observability

const (
	MUsecaseRequests         MetricKey = "usecase_requests_total"
	MUsecaseDuration         MetricKey = "usecase_duration_seconds"
	MHTTPRequests            MetricKey = "http_requests_total"
	MHTTPRequestDuration     MetricKey = "http_request_duration_seconds"
	MExternalRequests        MetricKey = "external_requests_total"
	MExternalRequestDuration MetricKey = "external_request_duration_seconds"

	// MChargeUnrecorded counts successful charges whose ledger record failed
	// to commit. Any non-zero value requires manual reconciliation.
	MChargeUnrecorded MetricKey = "charge_unrecorded_total"
)
