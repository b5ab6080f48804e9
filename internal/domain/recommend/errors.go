package recommend

import "errors"

// ErrNoPriorityLines is returned when a narrative response contains no
// priority-tagged recommendation lines.
var ErrNoPriorityLines = errors.New("narrative response contains no priority-tagged lines")
