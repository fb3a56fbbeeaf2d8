package inventory

import "errors"

var ErrStaffNotFound = errors.New("Staff member not found")
