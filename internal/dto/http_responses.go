package dto

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/JulianB-Git/nicolash-frontend/internal/apiclient"
)

const (
	FieldBadFormat     = "FIELD_BADFORMAT"
	FieldIncorrect     = "FIELD_INCORRECT"
	ServiceUnavailable = "SERVICE_UNAVAILABLE"
	InternalError      = "Service is currently unavailable. Please try again later."

	AuthRequired      = "AUTH_REQUIRED"
	AccessDenied      = "ACCESS_DENIED"
	MemberInGroup     = "MEMBER_IN_OTHER_GROUP"
	UpstreamError     = "UPSTREAM_ERROR"
	AuthRequiredDesc  = "Authentication required. Please sign in to continue."
	AccessDeniedDesc  = "Access denied. Please contact the administrator to be added to the allowlist."
	UploadFileMissing = "Please select a file"
)

type Response struct {
	Status string `json:"status"`
	Error  *Error `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Error struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

func BadResponseError(c *ginext.Context, code, desc string) {
	c.JSON(400, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func InternalServerError(c *ginext.Context) {
	c.JSON(500, Response{
		Status: "error",
		Error: &Error{
			Code: ServiceUnavailable,
			Desc: InternalError,
		},
	})
}

func FieldIncorrectError(c *ginext.Context, fieldName string) {
	BadResponseError(c, FieldIncorrect, "Field '"+fieldName+"' is incorrect")
}

// UpstreamErrorResponse maps a failed backend call onto the envelope: 401
// prompts a fresh sign-in, 403 points at the allowlist, a membership
// conflict gets its own code so the admin UI can explain it, everything
// else carries the backend's message through.
func UpstreamErrorResponse(c *ginext.Context, err error) {
	switch {
	case apiclient.IsAuthentication(err):
		c.JSON(401, Response{
			Status: "error",
			Error:  &Error{Code: AuthRequired, Desc: AuthRequiredDesc},
		})
	case apiclient.IsAuthorization(err):
		c.JSON(403, Response{
			Status: "error",
			Error:  &Error{Code: AccessDenied, Desc: AccessDeniedDesc},
		})
	case apiclient.IsMemberConflict(err):
		apiErr, _ := apiclient.AsAPIError(err)
		c.JSON(409, Response{
			Status: "error",
			Error:  &Error{Code: MemberInGroup, Desc: apiErr.Message},
		})
	default:
		apiErr, ok := apiclient.AsAPIError(err)
		if !ok {
			InternalServerError(c)
			return
		}
		status := apiErr.Status
		if status < 400 {
			status = 502
		}
		c.JSON(status, Response{
			Status: "error",
			Error:  &Error{Code: UpstreamError, Desc: apiErr.Message},
		})
	}
}

func SuccessResponse(c *ginext.Context, data any) {
	c.JSON(200, Response{
		Status: "ok",
		Data:   data,
	})
}

func SuccessCreatedResponse(c *ginext.Context, data any) {
	c.JSON(201, Response{
		Status: "ok",
		Data:   data,
	})
}
