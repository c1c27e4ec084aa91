package connections

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/x3ships/pkg/scene"
)

// ErrUnknownParent is returned when a connection names a parent that is not
// part of the export.
var ErrUnknownParent = errors.New("unknown parent")

// ValidateParents checks that every parent referenced by objs is itself one
// of objs.
func ValidateParents(objs []*scene.Object) error {
	names := make(map[string]bool, len(objs))
	for _, obj := range objs {
		names[obj.Name] = true
	}

	var missing []string
	for _, obj := range objs {
		if obj.Parent != "" && !names[obj.Parent] {
			missing = append(missing, fmt.Sprintf("%s -> %s", obj.Name, obj.Parent))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownParent, strings.Join(missing, ", "))
	}
	return nil
}
