package scene

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// Severity indicates whether a finding blocks a build or is advisory.
type Severity int

const (
	SeverityError   Severity = iota // blocks the build
	SeverityWarning                 // informational
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Issue is a single validation finding about the spec at Index.
type Issue struct {
	Index    int
	Message  string
	Severity Severity
}

func (e Issue) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] shape %d: %s", e.Severity, e.Index, e.Message)
}

// Validate checks specs before a build. Unknown kinds are errors; extents
// that will be clamped and repeated names are warnings.
func Validate(specs []Spec) []Issue {
	var issues []Issue
	issues = append(issues, validateKinds(specs)...)
	issues = append(issues, validateExtents(specs)...)
	issues = append(issues, validateNames(specs)...)
	return issues
}

func validateKinds(specs []Spec) []Issue {
	var issues []Issue
	for i, sp := range specs {
		if !sp.Kind.Valid() {
			issues = append(issues, Issue{
				Index:    i,
				Message:  fmt.Sprintf("unknown kind %d", int(sp.Kind)),
				Severity: SeverityError,
			})
		}
	}
	return issues
}

// validateExtents reports every axis that is not positive.
func validateExtents(specs []Spec) []Issue {
	var issues []Issue
	for i, sp := range specs {
		for axis, v := range [3]float32{sp.Extents.X, sp.Extents.Y, sp.Extents.Z} {
			if v <= 0 {
				issues = append(issues, Issue{
					Index:    i,
					Message:  fmt.Sprintf("%s extent %c is %.4g, using 1", sp.Kind, "xyz"[axis], v),
					Severity: SeverityWarning,
				})
			}
		}
	}
	return issues
}

func validateNames(specs []Spec) []Issue {
	var issues []Issue
	seen := make(map[string]int)
	for i, sp := range specs {
		if sp.Name == "" {
			continue
		}
		if first, ok := seen[sp.Name]; ok {
			issues = append(issues, Issue{
				Index:    i,
				Message:  fmt.Sprintf("name %q already used by shape %d", sp.Name, first),
				Severity: SeverityWarning,
			})
			continue
		}
		seen[sp.Name] = i
	}
	return issues
}

// Overlaps returns the index pairs of shapes whose world bounding boxes
// intersect under the current model matrices. Touching boxes do not count.
func (sc *Scene) Overlaps() [][2]int {
	boxes := make([]math32.Box3, len(sc.shapes))
	for i, s := range sc.shapes {
		boxes[i] = s.BBox()
	}
	var pairs [][2]int
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			if boxesOverlap(boxes[i], boxes[j]) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

func boxesOverlap(a, b math32.Box3) bool {
	return a.Min.X < b.Max.X && b.Min.X < a.Max.X &&
		a.Min.Y < b.Max.Y && b.Min.Y < a.Max.Y &&
		a.Min.Z < b.Max.Z && b.Min.Z < a.Max.Z
}
