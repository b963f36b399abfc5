package godiopts

// Validator checks a fully configured options instance. Name scoping is the
// validator's own concern; return a skip result for names it does not cover.
type Validator[T any] interface {
	Validate(name string, value T) ValidateResult
}

// ValidateResult is the outcome of one validator run: success, skip, or an
// ordered list of failure messages.
type ValidateResult struct {
	skipped  bool
	failures []string
}

// ValidateOK reports a passing validation.
func ValidateOK() ValidateResult { return ValidateResult{} }

// ValidateSkip reports that the validator does not cover the requested name.
func ValidateSkip() ValidateResult { return ValidateResult{skipped: true} }

// ValidateFail reports failure with one or more messages.
func ValidateFail(messages ...string) ValidateResult {
	return ValidateResult{failures: messages}
}

// Failed reports whether the result carries failure messages.
func (r ValidateResult) Failed() bool { return len(r.failures) > 0 }

// Skipped reports whether the validator declined to check the instance.
func (r ValidateResult) Skipped() bool { return r.skipped }

// Failures returns the failure messages in the order they were reported.
func (r ValidateResult) Failures() []string {
	return append([]string(nil), r.failures...)
}

// ValidateStage is a name-scoped validator descriptor: nil name validates
// every instance, a set name only its exact match (skip otherwise).
type ValidateStage[T any] struct {
	name *string
	fn   func(value T) []string
}

// NewValidateStage scopes fn to one exact name. fn returns failure
// messages, or nothing when the instance is valid.
func NewValidateStage[T any](name string, fn func(value T) []string) ValidateStage[T] {
	return ValidateStage[T]{name: &name, fn: fn}
}

// NewValidateStageForAll validates every requested name.
func NewValidateStageForAll[T any](fn func(value T) []string) ValidateStage[T] {
	return ValidateStage[T]{fn: fn}
}

func (s ValidateStage[T]) Validate(name string, value T) ValidateResult {
	if s.name != nil && *s.name != name {
		return ValidateSkip()
	}
	if failures := s.fn(value); len(failures) > 0 {
		return ValidateFail(failures...)
	}
	return ValidateOK()
}
