package samples

// Outcome is the closed set of result classifications for a sample run.
// Its integer value doubles as the process exit status.
type Outcome int

const (
	// OutcomeSuccess indicates the sample completed without error.
	OutcomeSuccess Outcome = iota
	// OutcomeUnexpectedError indicates an unclassified failure.
	OutcomeUnexpectedError
	// OutcomeAuthenticationFailed indicates credential acquisition or
	// validation failed.
	OutcomeAuthenticationFailed
	// OutcomeServiceRequestFailed indicates a remote service returned a
	// non-success status code.
	OutcomeServiceRequestFailed
	// OutcomeInvalidConfiguration indicates an unset, placeholder, or
	// malformed configuration value.
	OutcomeInvalidConfiguration
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeUnexpectedError:
		return "unexpected_error"
	case OutcomeAuthenticationFailed:
		return "authentication_failed"
	case OutcomeServiceRequestFailed:
		return "service_request_failed"
	case OutcomeInvalidConfiguration:
		return "invalid_configuration"
	default:
		return "unknown"
	}
}

// ExitStatus returns the process exit code for this outcome.
func (o Outcome) ExitStatus() int {
	return int(o)
}

// Failure is an error reduced to an outcome plus display text.
type Failure struct {
	Outcome Outcome
	Message string
}

// Rule is one predicate/handler pair in the classification ladder.
// Match returns the classified failure and true when the rule applies.
type Rule struct {
	// Name identifies the rule in diagnostics.
	Name string

	// Match inspects err and produces a Failure when it applies.
	Match func(err error) (Failure, bool)
}

// Classifier maps a raw failure to a Failure by evaluating an ordered
// sequence of rules. The first matching rule wins; precedence is the
// slice order, so an authentication failure that also carries a 401
// response still classifies as an authentication failure when the
// authentication rule precedes the status rule.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier with the given rules, evaluated
// in order.
func NewClassifier(rules ...Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify maps err to a Failure. A nil error is success. An error no
// rule matches is an unexpected error carrying the error's own text.
func (c *Classifier) Classify(err error) Failure {
	if err == nil {
		return Failure{Outcome: OutcomeSuccess}
	}
	for _, rule := range c.rules {
		if f, ok := rule.Match(err); ok {
			return f
		}
	}
	return Failure{Outcome: OutcomeUnexpectedError, Message: err.Error()}
}

// DefaultClassifier evaluates the built-in rules in priority order.
var DefaultClassifier = NewClassifier(DefaultRules()...)

// Classify maps err to a Failure using the default classifier.
func Classify(err error) Failure {
	return DefaultClassifier.Classify(err)
}
