package geom

import (
	"fmt"
	"strings"
)

// Kind names one of the closed set of primitive shapes.
type Kind int

const (
	KindBox Kind = iota
	KindPyramid
	KindCylinder
	KindCone
	KindSphere
)

// Kinds lists every primitive kind in declaration order.
var Kinds = []Kind{KindBox, KindPyramid, KindCylinder, KindCone, KindSphere}

var kindNames = map[Kind]string{
	KindBox:      "box",
	KindPyramid:  "pyramid",
	KindCylinder: "cylinder",
	KindCone:     "cone",
	KindSphere:   "sphere",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Revolved reports whether the kind is tessellated on a circle grid and so
// takes a resolution.
func (k Kind) Revolved() bool {
	return k == KindCylinder || k == KindCone || k == KindSphere
}

// ParseKind converts a name such as "cylinder" to its Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("geom: unknown kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("geom: invalid kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
