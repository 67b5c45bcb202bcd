package domain

import (
	"errors"
	"net/http"

	authdomain "qisqa-backend/internal/auth/domain"
)

// ErrorKind classifies a terminal pipeline failure.
type ErrorKind string

const (
	KindUnauthenticated  ErrorKind = "unauthenticated"
	KindInvalidInput     ErrorKind = "invalid_input"
	KindFetchFailed      ErrorKind = "fetch_failed"
	KindInsufficientData ErrorKind = "insufficient_data"
	KindGenerationFailed ErrorKind = "generation_failed"
)

// User-facing messages. They never carry provider or transport detail.
const (
	MsgMissingURL       = "Iltimos, Google Sheet havolasini kiriting."
	MsgInvalidURL       = "Iltimos, to'g'ri Google Sheet havolasini kiriting."
	MsgFetchFailed      = "Jadvalni o'qishda xatolik yuz berdi. Jadval ommaviy bo'lishi va 'Havolaga ega har kim ko'rishi mumkin' sozlamasi yoqilgan bo'lishi kerak."
	MsgInsufficientData = "Jadvalda tahlil qilish uchun yetarli ma'lumot yo'q. Kamida sarlavha va bir qator ma'lumot bo'lishi kerak."
	MsgGenerationFailed = "Hisobot yaratishda muammo yuz berdi. Iltimos, qaytadan urinib ko'ring."
	MsgReportCreated    = "Hisobot muvaffaqiyatli yaratildi va ma'lumotlar bazasiga saqlandi"
	MsgListFailed       = "Hisobotlarni yuklashda xatolik yuz berdi."
	MsgUnauthenticated  = authdomain.UnauthenticatedMessage
)

// HeaderPreviewLimit caps the header names echoed back in a report response.
const HeaderPreviewLimit = 5

// ReportError is returned by the report pipeline for every terminal failure.
// Err keeps the underlying cause for server-side logs only.
type ReportError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ReportError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

// Status maps the error kind to its HTTP status.
func (e *ReportError) Status() int {
	switch e.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindInvalidInput, KindFetchFailed, KindInsufficientData:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func NewError(kind ErrorKind, message string, err error) *ReportError {
	return &ReportError{Kind: kind, Message: message, Err: err}
}

// AsReportError extracts a ReportError from err. Anything else is reported
// as a generation failure so no internal detail leaks to the caller.
func AsReportError(err error) *ReportError {
	var reportErr *ReportError
	if errors.As(err, &reportErr) {
		return reportErr
	}
	return NewError(KindGenerationFailed, MsgGenerationFailed, err)
}
