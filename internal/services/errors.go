package services

// ValidationError means the caller sent something unusable.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// EmptyResponseError means the provider answered without any text.
type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string { return "The model did not generate any text" }

// ProviderError wraps a failed provider call.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string { return e.Err.Error() }

func (e *ProviderError) Unwrap() error { return e.Err }
