package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/placement-cell/placement_service/internal/apperr"
	"github.com/placement-cell/placement_service/internal/metrics"
)

// importErrorMessage keeps internal details out of the per-row report.
func importErrorMessage(err error) string {
	if apperr.KindOf(err) == apperr.KindInternal {
		return "internal error"
	}
	return apperr.MessageOf(err)
}

// importRequest carries the normalized rows produced by the spreadsheet
// parsing collaborator. Schema validation is deferred to the per-row loop
// so one bad row does not abort the rest.
type importRequest struct {
	Students []studentCreateRequest `json:"students" binding:"required,min=1"`
}

type importRowError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type importResult struct {
	Imported int              `json:"imported"`
	Failed   int              `json:"failed"`
	Errors   []importRowError `json:"errors"`
}

// importStudents bulk-creates students. Every row is re-validated with the
// same rules as single-record creation; failures are reported per row.
func (api *API) importStudents(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		respondBindError(c, err)
		return
	}

	result := importResult{Errors: []importRowError{}}
	for i, row := range req.Students {
		if err := binding.Validator.ValidateStruct(row); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, importRowError{Index: i, Error: bindErrorMessage(err)})
			metrics.RecordImportRow(false)
			continue
		}

		if _, err := api.store.CreateStudent(c.Request.Context(), row.model()); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, importRowError{Index: i, Error: importErrorMessage(err)})
			metrics.RecordImportRow(false)
			continue
		}
		result.Imported++
		metrics.RecordImportRow(true)
	}

	respond(c, http.StatusOK, result, "import processed")
}
