package diag

import (
	"fmt"

	"github.com/silica-lang/silica/internal/ast"
	"gopkg.in/yaml.v3"
)

// Severity classifies a diagnostic record.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

func (s Severity) MarshalYAML() (interface{}, error) { return s.String(), nil }

// Code identifies the diagnostic condition. The set is closed: checking
// either recovers with one of these, or aborts with a Panic.
type Code string

const (
	KindMismatch       Code = "kind-mismatch"
	TooFewParams       Code = "too-few-type-params"
	TooManyParams      Code = "too-many-type-params"
	RepeatedParam      Code = "repeated-type-param"
	RepeatedField      Code = "repeated-field"
	UndefinedSynonym   Code = "undefined-type-synonym"
	UnexpectedWildcard Code = "unexpected-wildcard"
	DefaultedKind      Code = "defaulted-kind"
	DefaultedWildcard  Code = "defaulted-wildcard-kind"
)

// Record is one structured diagnostic. Records are accumulated, never
// thrown: checking is resumable after every recoverable condition.
type Record struct {
	Severity Severity  `yaml:"severity"`
	Code     Code      `yaml:"code"`
	Range    ast.Range `yaml:"range,omitempty"`
	Message  string    `yaml:"message"`
	Names    []string  `yaml:"names,omitempty"`
}

func (r Record) String() string {
	return fmt.Sprintf("%s: %s[%s]: %s", r.Range, r.Severity, r.Code, r.Message)
}

// Diagnostics accumulates records on behalf of the host.
type Diagnostics struct {
	records []Record
}

func New() *Diagnostics { return &Diagnostics{} }

func (d *Diagnostics) Error(code Code, rng ast.Range, names []string, format string, args ...interface{}) {
	d.records = append(d.records, Record{
		Severity: Error,
		Code:     code,
		Range:    rng,
		Message:  fmt.Sprintf(format, args...),
		Names:    names,
	})
}

func (d *Diagnostics) Warn(code Code, rng ast.Range, names []string, format string, args ...interface{}) {
	d.records = append(d.records, Record{
		Severity: Warning,
		Code:     code,
		Range:    rng,
		Message:  fmt.Sprintf(format, args...),
		Names:    names,
	})
}

func (d *Diagnostics) Records() []Record { return d.records }

func (d *Diagnostics) HasErrors() bool {
	for _, r := range d.records {
		if r.Severity == Error {
			return true
		}
	}
	return false
}

func (d *Diagnostics) Len() int { return len(d.records) }

// ToYAML serializes the accumulated records for host tooling.
func (d *Diagnostics) ToYAML() ([]byte, error) {
	return yaml.Marshal(d.records)
}

// Panic marks an internal-consistency failure: an earlier pass failed to
// guarantee an invariant this core relies on. It is not recoverable and
// propagates synchronously to the host, distinct from user diagnostics.
type Panic struct {
	Message string
	Values  []string
}

func (p *Panic) Error() string {
	if len(p.Values) == 0 {
		return "internal error: " + p.Message
	}
	return fmt.Sprintf("internal error: %s: %v", p.Message, p.Values)
}

// Panicf aborts with an internal-consistency failure.
func Panicf(format string, args ...interface{}) {
	panic(&Panic{Message: fmt.Sprintf(format, args...)})
}
