package status

const (
	OK                    string = "OK"
	CREATED               string = "CREATED"
	BAD_REQUEST           string = "BAD_REQUEST"
	UNAUTHORIZED          string = "UNAUTHORIZED"
	FORBIDDEN             string = "FORBIDDEN"
	NOT_FOUND             string = "NOT_FOUND"
	CONFLICT              string = "CONFLICT"
	UNPROCESSABLE_ENTITY  string = "UNPROCESSABLE_ENTITY"
	INTERNAL_SERVER_ERROR string = "INTERNAL_SERVER_ERROR"
	SERVICE_UNAVAILABLE   string = "SERVICE_UNAVAILABLE"
)
