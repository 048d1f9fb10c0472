package budgetimport

import (
	"errors"
	"fmt"

	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/parser"
)

// ErrNoProject indicates no project identifier was supplied.
var ErrNoProject = errors.New("no project identifier supplied")

// ErrProjectNotFound indicates the project identifier does not resolve.
var ErrProjectNotFound = errors.New("project not found")

// ErrMissingSheet indicates the summary sheet is absent from the workbook.
var ErrMissingSheet = parser.ErrMissingSheet

// ErrInvalidFormat indicates the payload is not a readable workbook.
var ErrInvalidFormat = parser.ErrInvalidFormat

// ImportError represents a fatal error that stopped an import before any
// rows were persisted.
type ImportError struct {
	ProjectID string
	Stage     string // "project", "workbook", "summary"
	Err       error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import for project %q failed at %s: %v", e.ProjectID, e.Stage, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError.
func NewImportError(projectID, stage string, err error) *ImportError {
	return &ImportError{
		ProjectID: projectID,
		Stage:     stage,
		Err:       err,
	}
}
