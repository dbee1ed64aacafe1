package smtp

// AuthError reports that the transport rejected the sender credentials, or
// that no credentials were supplied.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return "smtp authentication failed: " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// DeliveryError wraps a failed send attempt. Recipient is empty for batch
// sends, where the failure belongs to the whole batch.
type DeliveryError struct {
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	if e.Recipient != "" {
		return "failed to send to " + e.Recipient + ": " + e.Err.Error()
	}
	return "failed to send batch email: " + e.Err.Error()
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
