package errcode

var (
	GetCommentsFailed    = NewError(40001, "Get Comments Failed")
	CreateCommentFailed  = NewError(40002, "Create Comment Failed")
	GetCommentFailed     = NewError(40003, "Get Comment Failed")
	DeleteCommentFailed  = NewError(40004, "Delete Comment Failed")
	UpdateCommentFailed  = NewError(40005, "Update Comment Failed")
	NoCommentsFound      = NewError(40006, "No Comments Found")
	NoExistComment       = NewError(40007, "Comment Not Found")
	NoExistParentComment = NewError(40008, "Parent Comment Not Found")
	InvalidAction        = NewError(40009, "Invalid Action")
	ModelNotConfigured   = NewError(40010, "Comment Model Not Configured")
)
