package userrepo

const (
	// UsersCollection names the table, collection or object holding the users.
	UsersCollection = "users"

	ErrLoadUsers   = "failed to load users"
	ErrSaveUsers   = "failed to save users"
	ErrDecodeUsers = "failed to decode users"
	ErrEncodeUsers = "failed to encode users"
	ErrInitStore   = "failed to initialize user store"
	ErrCloseStore  = "failed to close user store"

	OperationLoad  = "load"
	OperationSave  = "save"
	OperationInit  = "init"
	OperationClose = "close"
)
