package core

// error_messages.go maps technical errors to messages a catalog user can
// act on. Each message carries a code for support reference:
//
//	FILE001 - Catalog file could not be opened
//	FILE002 - Catalog file has no course rows
//	CSV001  - A row has the wrong number of cells
//	CSV002  - A row or column position does not exist
//	CSV003  - A named column does not exist
//	CAT001  - No course with that id
//	CAT002  - Nothing loaded yet
//	CAT003  - Unknown sort algorithm
//	CAT004  - Value would break the row when saved
//	CAT005  - No stored snapshot with that load id
//	DB004   - Snapshot database unreachable
//	ERR000  - Anything else
//
// Typed errors are matched with errors.Is first. Remaining errors fall back
// to case-insensitive substring patterns; the first match wins.

import (
	"errors"
	"strings"

	"github.com/JonMunkholm/coursecatalog/internal/csv"
)

// Catalog state errors.
var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrNotLoaded        = errors.New("catalog not loaded")
	ErrUnknownAlgorithm = errors.New("unknown sort algorithm")
	ErrInvalidValue     = errors.New("value cannot be stored in a cell")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorKind pairs a sentinel error with its user message.
type errorKind struct {
	target error
	msg    UserMessage
}

var errorKinds = []errorKind{
	{csv.ErrFileOpen, UserMessage{
		Message: "The catalog file could not be opened",
		Action:  "Check the path and file permissions",
		Code:    "FILE001",
	}},
	{csv.ErrEmptyInput, UserMessage{
		Message: "The catalog file has no course rows",
		Action:  "Add a header line followed by one line per course",
		Code:    "FILE002",
	}},
	{csv.ErrRowShape, UserMessage{
		Message: "A course row has the wrong number of fields",
		Action:  "Make every row have as many fields as the header",
		Code:    "CSV001",
	}},
	{csv.ErrIndexOutOfRange, UserMessage{
		Message: "A row or column position does not exist",
		Action:  "Check the column mapping against the file header",
		Code:    "CSV002",
	}},
	{csv.ErrColumnNotFound, UserMessage{
		Message: "A named column is missing from the catalog",
		Action:  "Check the column names against the file header",
		Code:    "CSV003",
	}},
	{ErrCourseNotFound, UserMessage{
		Message: "No course has that id",
		Action:  "Check the course id; ids are case-sensitive",
		Code:    "CAT001",
	}},
	{ErrNotLoaded, UserMessage{
		Message: "No catalog is loaded",
		Action:  "Load the courses first",
		Code:    "CAT002",
	}},
	{ErrUnknownAlgorithm, UserMessage{
		Message: "Unknown sort algorithm",
		Action:  "Use selection or quick",
		Code:    "CAT003",
	}},
	{ErrInvalidValue, UserMessage{
		Message: "That value cannot be stored in the catalog file",
		Action:  "Remove line breaks, unbalanced quotes and unquoted separators",
		Code:    "CAT004",
	}},
	{ErrSnapshotNotFound, UserMessage{
		Message: "No saved snapshot matches that load",
		Action:  "Load the catalog with the database enabled first",
		Code:    "CAT005",
	}},
}

// errorPattern maps a substring of an untyped error to a user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{"connection refused", UserMessage{
		Message: "Unable to connect to the snapshot database",
		Action:  "Check DATABASE_URL or try again in a few moments",
		Code:    "DB004",
	}},
	{"permission denied", UserMessage{
		Message: "The catalog file could not be opened",
		Action:  "Check the path and file permissions",
		Code:    "FILE001",
	}},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again; check the log file for details",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns a zero UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.msg
		}
	}

	lower := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders a UserMessage on one line.
func FormatUserError(msg UserMessage) string {
	if msg.Code == "" {
		return ""
	}
	if msg.Action == "" {
		return msg.Message + " (" + msg.Code + ")"
	}
	return msg.Message + ". " + msg.Action + " (" + msg.Code + ")"
}
