package strategy

import (
	"errors"
	"fmt"

	"reputation-scryper/internal/entity"
)

var (
	// ErrAcquisitionFailure marks a channel that could not be reached or refused the call.
	ErrAcquisitionFailure = errors.New("acquisition failure")
	// ErrMalformedUpstreamResponse marks a reachable channel that returned unusable content.
	ErrMalformedUpstreamResponse = errors.New("malformed upstream response")
)

// AcquisitionError wraps a transport or auth failure of a channel.
// It matches ErrAcquisitionFailure with errors.Is.
type AcquisitionError struct {
	Channel entity.ChannelType
	Cause   error
}

func (e *AcquisitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("acquisition failure on %s: %v", e.Channel, e.Cause)
	}
	return fmt.Sprintf("acquisition failure on %s", e.Channel)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Cause
}

func (e *AcquisitionError) Is(target error) bool {
	return target == ErrAcquisitionFailure
}

func newAcquisitionError(channel entity.ChannelType, cause error) error {
	return &AcquisitionError{Channel: channel, Cause: cause}
}
