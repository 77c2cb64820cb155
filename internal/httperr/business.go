package httperr

import (
	"errors"
	"maps"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// BusinessError is a rule violation the client can act on. Status defaults to
// 400 when zero.
type BusinessError struct {
	Code    string
	Message string
	Status  int
	Fields  map[string]any
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func (e BusinessError) HTTPStatus() int {
	if e.Status == 0 {
		return http.StatusBadRequest
	}
	return e.Status
}

// With returns a copy of e carrying an extra response field.
func (e BusinessError) With(key string, value any) BusinessError {
	fields := make(map[string]any, len(e.Fields)+1)
	maps.Copy(fields, e.Fields)
	fields[key] = value
	e.Fields = fields
	return e
}

func Conflict(code, message string) BusinessError {
	return BusinessError{Code: code, Message: message, Status: http.StatusBadRequest}
}

func Missing(code, message string) BusinessError {
	return BusinessError{Code: code, Message: message, Status: http.StatusNotFound}
}

func Denied(code, message string) BusinessError {
	return BusinessError{Code: code, Message: message, Status: http.StatusForbidden}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

// IsUniqueViolation reports a unique index conflict from postgres (23505) or
// from gorm's translated error.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
