package port

// Validator checks a request schema and returns the first failing rule as a
// *domain.ValidationError, or nil.
type Validator interface {
	ValidateStruct(s any) error
}
