package usecase

import (
	"errors"
	"regexp"
	"strings"

	reportdomain "qisqa-backend/internal/report/domain"
)

var (
	ErrEmptySheetURL   = errors.New("sheet url is empty")
	ErrInvalidSheetURL = errors.New("sheet url has no spreadsheet id")
)

var sheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// ExtractSheetID returns the spreadsheet identifier from a sheet URL,
// e.g. "1AbC_23" from "https://docs.google.com/spreadsheets/d/1AbC_23/edit".
func ExtractSheetID(sheetURL string) (string, error) {
	if strings.TrimSpace(sheetURL) == "" {
		return "", reportdomain.NewError(reportdomain.KindInvalidInput, reportdomain.MsgMissingURL, ErrEmptySheetURL)
	}

	match := sheetIDPattern.FindStringSubmatch(sheetURL)
	if match == nil {
		return "", reportdomain.NewError(reportdomain.KindInvalidInput, reportdomain.MsgInvalidURL, ErrInvalidSheetURL)
	}
	return match[1], nil
}
