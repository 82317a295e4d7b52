package scene

import "fmt"

// ValidationSeverity indicates whether a finding blocks rendering or is
// merely advisory.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks rendering
	SeverityWarning                           // advisory
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Item     int    // index of the offending item, -1 for scene-level
	Name     string // item name if known
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.Item < 0 {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	if e.Name != "" {
		return fmt.Sprintf("[%s] item %q: %s", e.Severity, e.Name, e.Message)
	}
	return fmt.Sprintf("[%s] item %d: %s", e.Severity, e.Item, e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	Item    int
	Name    string
	Message string
}

// ValidationResult bundles blocking errors and advisory warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// Validate runs the blocking structural checks on every item. An empty
// result slice means the scene can be rendered. Read-only.
func Validate(s *Scene) []ValidationError {
	var errs []ValidationError
	for i, item := range s.Items {
		errs = append(errs, validateItem(i, item)...)
	}
	return errs
}

// ValidateAll runs the blocking checks plus the advisory geometry checks.
func ValidateAll(s *Scene) ValidationResult {
	var result ValidationResult
	result.Errors = Validate(s)
	for i, item := range s.Items {
		result.Warnings = append(result.Warnings, adviseItem(i, item)...)
	}
	return result
}

// validateItem runs the blocking checks for one item. Profile closure is
// enforced by geom.NewProfile; here we catch zero profiles from direct
// struct construction plus axis, angle, and style problems.
func validateItem(i int, item Item) []ValidationError {
	var errs []ValidationError
	fail := func(format string, args ...interface{}) {
		errs = append(errs, ValidationError{
			Item:     i,
			Name:     item.Name,
			Message:  fmt.Sprintf(format, args...),
			Severity: SeverityError,
		})
	}

	if item.Profile.IsZero() {
		fail("profile is empty")
	}
	if item.Axis.IsZero() {
		fail("revolution axis is the zero vector")
	}
	if item.AngleDeg < 0 || item.AngleDeg > 360 {
		fail("revolution angle %g outside [0, 360]", item.AngleDeg)
	}
	if err := item.ProfileStyle.Validate(); err != nil {
		fail("profile style: %v", err)
	}
	if err := item.AxisStyle.Validate(); err != nil {
		fail("axis style: %v", err)
	}
	if err := item.SolidStyle.Validate(); err != nil {
		fail("solid style: %v", err)
	}
	return errs
}

// adviseItem produces the non-blocking geometry warnings for one item.
func adviseItem(i int, item Item) []ValidationWarning {
	var warns []ValidationWarning
	warn := func(format string, args ...interface{}) {
		warns = append(warns, ValidationWarning{
			Item:    i,
			Name:    item.Name,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if item.AngleDeg == 0 {
		warn("revolution angle is 0, result is degenerate")
	}
	if !item.Profile.IsZero() && !item.Profile.IsPlanar() {
		warn("profile is not planar, face construction will fail")
	}
	if !item.Profile.IsZero() && !item.Axis.IsZero() {
		if d, err := item.Profile.MinDistanceToAxis(item.Axis); err == nil && d < 1e-9 {
			warn("profile touches the revolution axis")
		}
	}
	return warns
}
