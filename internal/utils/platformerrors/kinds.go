package platformerrors

import "errors"

// Failure kinds raised by remote collaborators and the publishing core.
// PlatformError.Err wraps one of these so callers can branch with errors.Is.
var (
	ErrRemoteAuth             = errors.New("remote credential rejected")
	ErrRemoteAPI              = errors.New("remote api request failed")
	ErrStaleReference         = errors.New("remote object not found")
	ErrUpload                 = errors.New("upload failed")
	ErrMediaProcessing        = errors.New("media processing failed")
	ErrMediaProcessingTimeout = errors.New("media processing timed out")
	ErrPlatformAPI            = errors.New("platform api request failed")
	ErrNoMedia                = errors.New("no media file linked to this content")
	ErrNotFound               = errors.New("not found")
	ErrAIResponseParse        = errors.New("ai response was not valid json")
)

// IsStaleReference reports whether err signals a missing remote object.
func IsStaleReference(err error) bool {
	return errors.Is(err, ErrStaleReference)
}
