package errors

import "net/http"

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Rejections detected before any external mutation. User-facing messages
// are intentionally in Japanese, matching the booking site.
var (
	ErrInvalidStay  = NewHTTPError(http.StatusBadRequest, "宿泊日数が不正です")
	ErrStayTooLong  = NewHTTPError(http.StatusBadRequest, "5泊以上の長期滞在は割引がありますので、お問い合わせフォームからご連絡ください。")
	ErrDateConflict = NewHTTPError(http.StatusConflict, "申し訳ありません。選択された日程は既に埋まっています。")
)

// NewValidationError flags missing or malformed caller input.
func NewValidationError(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

// NewSystemFailure wraps an upstream gateway/network/auth failure.
// Not user-fixable; surfaces with the upstream detail.
func NewSystemFailure(err error) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, "システムエラーが発生しました。"+err.Error())
}
