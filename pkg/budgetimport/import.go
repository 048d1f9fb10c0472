package budgetimport

import (
	"context"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/parser"
)

// Request is one workbook import.
type Request struct {
	ProjectID string
	FileName  string
	Data      []byte
}

// Importer runs budget imports against its collaborators. An Importer holds
// no per-run state and may serve concurrent imports.
type Importer struct {
	opts     Options
	projects ProjectLookup
	store    BudgetStore
	audit    AuditLog
	logger   *slog.Logger
}

// NewImporter creates an Importer. Fields left unset in opts take their
// defaults; opts itself is not modified.
func NewImporter(projects ProjectLookup, store BudgetStore, opts Options) *Importer {
	opts.Validation.Bands = maps.Clone(opts.Validation.Bands)
	opts.applyDefaults()
	return &Importer{
		opts:     opts,
		projects: projects,
		store:    store,
		logger:   slog.Default(),
	}
}

// WithAuditLog adds audit logging of completed imports.
func (im *Importer) WithAuditLog(audit AuditLog) *Importer {
	im.audit = audit
	return im
}

// WithLogger sets the logger.
func (im *Importer) WithLogger(logger *slog.Logger) *Importer {
	if logger != nil {
		im.logger = logger
	}
	return im
}

// Run imports one workbook. It returns an error, and no result, when the
// project is missing or unknown or the summary sheet cannot be read; nothing
// is persisted in that case. Otherwise it returns a complete result, with
// Success false when no rows were found or the store rejected them.
func (im *Importer) Run(ctx context.Context, req Request) (*models.ImportResult, error) {
	projectID := strings.TrimSpace(req.ProjectID)
	if projectID == "" {
		return nil, ErrNoProject
	}

	project, err := im.projects.LookupProject(ctx, projectID)
	if err != nil {
		return nil, NewImportError(projectID, "project", err)
	}
	if project == nil {
		return nil, NewImportError(projectID, "project", ErrProjectNotFound)
	}

	wb, err := parser.OpenWorkbook(req.Data)
	if err != nil {
		return nil, NewImportError(projectID, "workbook", err)
	}
	defer wb.Close()

	runID := uuid.NewString()
	logger := im.logger.With("run_id", runID, "project", project.ID, "file", req.FileName)

	analysis, err := Process(wb, im.opts, logger)
	if err != nil {
		return nil, NewImportError(projectID, "summary", err)
	}

	res := Assemble(project.ID, analysis)
	res.RunID = runID
	res.FileName = req.FileName

	if !res.Success {
		logger.Warn("no budget rows found, nothing saved", "errors", len(res.Errors))
		return res, nil
	}

	created, err := im.store.ReplaceBreakdown(ctx, project.ID, res.Breakdown, res.Totals)
	if err != nil {
		logger.Error("saving budget failed", "error", err)
		persistenceFailed(res, err)
		return res, nil
	}
	res.BudgetCreated = created
	res.BudgetUpdated = !created

	if im.audit != nil {
		entry := models.AuditEntry{
			ID:          uuid.NewString(),
			RunID:       runID,
			ProjectID:   project.ID,
			FileName:    req.FileName,
			TotalBudget: res.TotalBudget,
			RowCount:    res.BreakdownRowsCreated,
			Totals:      res.Totals,
			CreatedAt:   time.Now().UTC(),
		}
		if err := im.audit.AppendImport(ctx, entry); err != nil {
			logger.Warn("audit log append failed", "error", err)
		}
	}

	logger.Info("budget imported",
		"total_budget", res.TotalBudget,
		"rows", res.BreakdownRowsCreated,
		"created", res.BudgetCreated,
		"row_errors", len(res.Errors),
		"findings", len(res.Findings))
	return res, nil
}
