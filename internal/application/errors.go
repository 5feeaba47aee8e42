package application

import "errors"

var (
	ErrDocumentNotFound   = errors.New("document not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrDuplicateReference = errors.New("reference number already exists")
	ErrForbidden          = errors.New("not authorized to modify this comment")
	ErrIndexOutOfRange    = errors.New("attachment index out of range")
	ErrUploadFailed       = errors.New("failed to upload file")
	ErrInvalidStatus      = errors.New("invalid document status")
	ErrValidation         = errors.New("invalid input")

	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrIncorrectPassword   = errors.New("old password is incorrect")
	ErrMissingOldPassword  = errors.New("old password is required to change password")
	ErrPasswordHashFailure = errors.New("failed to hash new password")
	ErrProjectNotFound     = errors.New("project not found")
)
