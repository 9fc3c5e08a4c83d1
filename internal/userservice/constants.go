package userservice

const (
	// Client-facing messages.
	MsgAllFieldsRequired        = "All fields are required"
	MsgInvalidEmail             = "Invalid email format"
	MsgPasswordTooShort         = "Password must be at least 8 characters"
	MsgPasswordTooLong          = "Password must be at most 72 bytes" // #nosec G101
	MsgInvalidUsername          = "Username cannot be empty or contain special characters"
	MsgEmailTaken               = "User with this email already exists"
	MsgFailedToSaveUser         = "Failed to save user data"
	MsgCredentialsRequired      = "Email and password are required"
	MsgInvalidCredentials       = "Invalid credentials"
	MsgFailedToRetrieveProfiles = "Server error retrieving profile data"
	MsgUserIDRequired           = "User ID is required"
	MsgUserNotFound             = "User not found"
	MsgFailedToUpdateUser       = "Failed to update user data"
	MsgRegistrationError        = "Server error during registration"
	MsgLoginError               = "Server error during login"
	MsgUpdateError              = "Server error updating username"

	// Log messages.
	ErrFailedToHashPassword = "failed to hash password" // #nosec G101
	ErrFailedToLoadUsers    = "failed to load users"
	ErrFailedToSaveUsers    = "failed to save users"
)
