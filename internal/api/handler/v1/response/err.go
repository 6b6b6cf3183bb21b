package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int `json:"-"`

	ErrCode int               `json:"err_code"`
	ErrMsg  string            `json:"err_msg"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func NewErr(statusCode, errCode int, err error) *Err {
	e := &Err{
		StatusCode: statusCode,
		ErrCode:    errCode,
		ErrMsg:     err.Error(),
	}

	// ozzo validation errors carry the per-field breakdown the form needs.
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		e.ErrMsg = "validation failed"
		e.Fields = make(map[string]string, len(fieldErrs))
		for field, fieldErr := range fieldErrs {
			e.Fields[field] = fieldErr.Error()
		}
	}

	return e
}

func ErrBadRequest(err error) *Err {
	return NewErr(http.StatusBadRequest, 40001, err)
}

func ErrWrongCredentials(err error) *Err {
	return NewErr(http.StatusUnauthorized, 40101, err)
}

// ErrCardDeclined hides the provider detail behind a generic billing
// message; the underlying error only goes to the logs.
func ErrCardDeclined() *Err {
	return &Err{
		StatusCode: http.StatusPaymentRequired,
		ErrCode:    40201,
		ErrMsg:     "credit card charging failed",
	}
}

func ErrNotFound(err error) *Err {
	return NewErr(http.StatusNotFound, 40401, err)
}

func ErrAlreadyCharged(err error) *Err {
	return NewErr(http.StatusConflict, 40901, err)
}

func ErrInternalServerError(err error) *Err {
	return NewErr(http.StatusInternalServerError, 50001, err)
}

func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Int("status", err.StatusCode), zap.String("error", err.ErrMsg))

		// Don't leak internals to the client.
		err.ErrMsg = "internal server error"
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}
