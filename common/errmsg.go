package common

// Fixed catalog of client-facing error messages. Handlers must not send
// anything outside this list; store and mail failures are logged server-side
// and surface as ErrDatabase or a generic 500.
const (
	ErrDatabase    = "Database access error"
	ErrIDInvalid   = "Invalid database document ID"
	ErrBodyInvalid = "Invalid request body"
	ErrTitleLength = "Title length is not valid"
	ErrDescLength  = "Description length is not valid"

	ErrAccTknExpired  = "Access token has expired"
	ErrAccTknInvalid  = "Invalid access token"
	ErrConfTknInvalid = "Confirmation token is invalid"
	ErrRfrTknInvalid  = "Invalid refresh token"
	ErrTknMismatch    = "Token mismatch"

	ErrNameLength    = "Name length is not valid"
	ErrEmailExist    = "User with this email already exists"
	ErrEmailNotFound = "User with this email not found"
	ErrEmailInvalid  = "Invalid email"
	ErrPwdIncorrect  = "Password is not correct"
	ErrPwdLength     = "Password length is not valid"
	ErrNotConfirmed  = "User has not confirmed the email"
	ErrUserNotFound  = "User not found"
	ErrAccessDenied  = "Access to change other users is denied"
	ErrUserOwns      = "User owns projects and cannot be deleted"

	ErrProjectTitleExist         = "Project with this title already exists"
	ErrProjectNotFound           = "Project not found"
	ErrProjectNoAccess           = "Access to the project is denied"
	ErrProjectNotFoundOrNoAccess = "Project not found or no access"
	ErrInvTknInvalid             = "Invitation token is invalid"
	ErrInvIncorrect              = "Incorrect invitation token"
	ErrMemberNotFound            = "Member not found"

	ErrColumnNotFound       = "Column not found"
	ErrColumnExist          = "Column with this title or order already exists"
	ErrColumnNumberExceeded = "Column number per project exceeded"
	ErrColumnUpdateRepeated = "Column set contains a repeated id or order"
	ErrColumnSameProject    = "Columns in the set must belong to one project"

	ErrTaskNotFound       = "Task not found"
	ErrTaskExist          = "Task with this title or order already exists"
	ErrTaskNumberExceeded = "Task number per project exceeded"
	ErrAssigneeNoAccess   = "Assignee has no access to the project"
	ErrTaskUpdateRepeated = "Task set contains a repeated id or position"
	ErrTaskSameProject    = "Tasks in the set must belong to one project"
	ErrPriorityValue      = "Priority must be a non-negative integer"
)
