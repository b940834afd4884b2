package genai

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMissingKey is returned when a provider is used without an API key.
var ErrMissingKey = errors.New("API_KEY is not set")

// StatusError is an upstream failure carrying the backend's status code.
type StatusError struct {
	Provider string
	Code     int
	Message  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error (%d): %s", e.Provider, e.Code, e.Message)
}

// StatusCode returns the upstream status of err, or 0 if it carries none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}

	return 0
}

// Class is a user-facing failure category.
type Class string

const (
	ClassOverloaded Class = "overloaded"
	ClassAuth       Class = "auth"
	ClassQuota      Class = "quota"
	ClassMissingKey Class = "missing_key"
	ClassUnknown    Class = "unknown"
)

// Classify buckets err for display.
func Classify(err error) Class {
	switch StatusCode(err) {
	case http.StatusServiceUnavailable:
		return ClassOverloaded
	case http.StatusUnauthorized, http.StatusForbidden:
		return ClassAuth
	case http.StatusTooManyRequests:
		return ClassQuota
	}

	if errors.Is(err, ErrMissingKey) || (err != nil && strings.Contains(err.Error(), "API_KEY")) {
		return ClassMissingKey
	}

	return ClassUnknown
}

// UserMessage renders err as one Korean sentence for the end user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	switch Classify(err) {
	case ClassOverloaded:
		return "서버가 일시적으로 과부하 상태입니다. 다른 모델로 자동 전환을 시도했지만 실패했습니다. 잠시 후 다시 시도해주세요."
	case ClassAuth:
		return "API 키가 유효하지 않거나 권한이 없습니다. .env 파일의 API 키 설정을 확인해주세요."
	case ClassQuota:
		return "요청 한도를 초과했습니다. 잠시 후 다시 시도해주세요."
	case ClassMissingKey:
		return "API 키가 설정되지 않았습니다. .env 파일 또는 키체인에 API 키를 설정해주세요."
	default:
		msg := err.Error()
		if msg == "" {
			msg = "알 수 없는 오류"
		}

		return fmt.Sprintf("콘텐츠 생성 중 오류가 발생했습니다: %s. 잠시 후 다시 시도해주세요.", msg)
	}
}
