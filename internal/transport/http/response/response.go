// Package response is the uniform {code,msg,data} envelope every endpoint
// answers with; HTTP status stays 200 and the code carries the outcome.
package response

const (
	CodeOK           = 0
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeValidation   = 422
	CodeServerError  = 500
)

var codeMsg = map[int]string{
	CodeOK:           "OK",
	CodeBadRequest:   "Bad Request",
	CodeUnauthorized: "Unauthorized",
	CodeForbidden:    "Forbidden",
	CodeNotFound:     "Not Found",
	CodeConflict:     "Conflict",
	CodeValidation:   "Validation Failed",
	CodeServerError:  "Internal Server Error",
}

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New keeps data non-null so clients never branch on null.
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data interface{}) Resp {
	return New(CodeOK, codeMsg[CodeOK], data)
}

func Error(code int, customMsg string) Resp {
	msg := codeMsg[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}
