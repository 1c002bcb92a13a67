package errcode

var (
	Success          = NewError(0, "Success")
	Created          = NewError(1, "Created")
	ServerError      = NewError(10000, "Server Error")
	InvalidParams    = NewError(10001, "Invalid Params")
	NotFound         = NewError(10002, "Not Found")
	MethodNotAllowed = NewError(10003, "Method Not Allowed")
)
