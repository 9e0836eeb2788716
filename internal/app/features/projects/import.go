// internal/app/features/projects/import.go
package projects

import (
	"context"
	"net/http"

	projectstore "github.com/dalemusser/flattrack/internal/app/store/projects"
	"github.com/dalemusser/flattrack/internal/app/system/csvutil"
	"github.com/dalemusser/flattrack/internal/app/system/httpjson"
	"github.com/dalemusser/flattrack/internal/app/system/timeouts"
	"github.com/dalemusser/flattrack/internal/domain/models"
	"go.uber.org/zap"
)

// HandleImport processes POST /api/projects/import: a multipart form
// with a "file" field holding the legacy spreadsheet export.
//
// The file is pre-scanned before anything is written. A file with row
// errors imports nothing and answers 422 with the per-line messages, so
// a migration is always all-or-nothing.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, csvutil.MaxUploadSize)
	if err := r.ParseMultipartForm(csvutil.MaxUploadSize); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "upload too large or malformed")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, `missing "file" form field`)
		return
	}
	defer file.Close()

	result, err := csvutil.ParseProjectCSV(file, csvutil.DefaultParseOptions())
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "could not read CSV file")
		return
	}
	if result.HasErrors() {
		msgs := make([]string, len(result.Errors))
		for i, re := range result.Errors {
			msgs[i] = re.Error()
		}
		httpjson.Write(w, http.StatusUnprocessableEntity, map[string]any{
			"imported": 0,
			"errors":   msgs,
		})
		return
	}
	if len(result.Rows) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "file contains no project rows")
		return
	}

	toInsert := make([]models.Project, len(result.Rows))
	for i, row := range result.Rows {
		toInsert[i] = models.Project{
			Name:       row.Name,
			ClientName: row.ClientName,
			Street:     row.Street,
			Suburb:     row.Suburb,
			CostCents:  row.CostCents,
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	n, err := projectstore.New(h.DB).CreateMany(ctx, toInsert)
	if err != nil {
		httpjson.ServerError(h.Log, w, "projects: import insert", err)
		return
	}

	h.Log.Info("projects imported", zap.Int("count", n))
	httpjson.Write(w, http.StatusOK, map[string]any{"imported": n})
}
