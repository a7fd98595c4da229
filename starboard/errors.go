package starboard

import "errors"

// ErrSurfaceGone marks an external call whose target no longer exists
// (unknown message, channel or thread). The desired end state is already
// reached, so callers treat it as success.
var ErrSurfaceGone = errors.New("target no longer exists on the chat surface")
