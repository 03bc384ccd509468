package domain

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// AssembleRequest asks for parts 0..TotalParts-1 to become one object.
type AssembleRequest struct {
	UploadID    string `json:"uploadId"`
	TotalParts  int    `json:"totalParts"`
	GroupID     string `json:"groupId"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	FileSize    int64  `json:"fileSize"`
	SortOrder   int    `json:"sortOrder"`
}

func (r AssembleRequest) Validate() error {
	if err := ValidateUploadID(r.UploadID); err != nil {
		return err
	}
	switch {
	case r.TotalParts <= 0:
		return fmt.Errorf("%w: totalParts must be positive", ErrInvalidRequest)
	case r.FileSize <= 0:
		return fmt.Errorf("%w: fileSize must be positive", ErrInvalidRequest)
	case r.SortOrder < 0:
		return fmt.Errorf("%w: sortOrder must be >= 0", ErrInvalidRequest)
	case sanitizeSegment(r.GroupID) == "":
		return fmt.Errorf("%w: groupId is required", ErrInvalidRequest)
	case sanitizeSegment(r.FileName) == "":
		return fmt.Errorf("%w: fileName is required", ErrInvalidRequest)
	}
	return nil
}

// ObjectMeta travels with an assembled object.
type ObjectMeta struct {
	GroupID     string `json:"groupId"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SortOrder   int    `json:"sortOrder"`
}

// ObjectKey builds "groups/<groupId>/<id>-<fileName>".
func ObjectKey(groupID, id, fileName string) string {
	return path.Join("groups", sanitizeSegment(groupID), id+"-"+sanitizeSegment(fileName))
}

// sanitizeSegment reduces s to a single safe path element.
func sanitizeSegment(s string) string {
	s = path.Base(strings.ReplaceAll(strings.TrimSpace(s), "\\", "/"))
	if s == "." || s == ".." || s == "/" {
		return ""
	}
	return s
}

// MissingPartsError lists the part numbers absent at assemble time.
type MissingPartsError struct {
	UploadID string
	Missing  []int
}

func (e *MissingPartsError) Error() string {
	const shown = 10
	missing := e.Missing
	suffix := ""
	if len(missing) > shown {
		missing = missing[:shown]
		suffix = fmt.Sprintf(" and %d more", len(e.Missing)-shown)
	}
	return fmt.Sprintf("%v: upload %s lacks parts %v%s", ErrMissingParts, e.UploadID, missing, suffix)
}

func (e *MissingPartsError) Is(target error) bool { return target == ErrMissingParts }

// IsClientError reports errors caused by the request rather than the server.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidChecksum) ||
		errors.Is(err, ErrPartTooLarge) ||
		errors.Is(err, ErrMissingParts) ||
		errors.Is(err, ErrSizeMismatch)
}
