package handlers

// Common error message constants shared across handlers
const (
	ErrMsgInvalidRequestBody   = "Invalid request body"
	ErrMsgInvalidApplicationID = "Invalid application ID"
	ErrMsgInvalidParameterID   = "Invalid parameter ID"
	ErrMsgUnauthorized         = "Unauthorized"
	ErrMsgUserIDNotFound       = "User ID not found"
)
