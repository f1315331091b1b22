package validator

// Validator is any type that can validate itself after parsing.
type Validator interface {
	Validate() error
}

// Validate runs v's own validation. Exists so that handlers validate
// requests through one seam that tests can assert against.
func Validate(v Validator) error {
	return v.Validate()
}
