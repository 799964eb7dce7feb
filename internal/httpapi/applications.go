package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placement-cell/placement_service/internal/domain/application"
	"github.com/placement-cell/placement_service/internal/metrics"
	"github.com/placement-cell/placement_service/internal/storage"
)

type applicationCreateRequest struct {
	StudentID         int64  `json:"student_id" binding:"required,gt=0"`
	JobID             int64  `json:"job_id" binding:"required,gt=0"`
	EligibilityStatus string `json:"eligibility_status" binding:"omitempty,oneof=pending eligible not_eligible conditionally_eligible"`
	Remarks           string `json:"remarks"`
}

type applicationStatusRequest struct {
	EligibilityStatus string `json:"eligibility_status" binding:"required,oneof=pending eligible not_eligible conditionally_eligible"`
	Remarks           string `json:"remarks"`
}

// createApplication runs the eligibility workflow. The answer is 201 only
// when the resulting status is eligible; every other outcome is a 202.
func (api *API) createApplication(c *gin.Context) {
	var req applicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := api.store.CreateApplication(c.Request.Context(), application.Application{
		StudentID:         req.StudentID,
		JobID:             req.JobID,
		EligibilityStatus: req.EligibilityStatus,
		Remarks:           req.Remarks,
	})
	if err != nil {
		api.respondError(c, err)
		return
	}

	metrics.RecordApplicationCreated(created.EligibilityStatus)

	status := http.StatusAccepted
	message := "application recorded as " + created.EligibilityStatus
	if created.EligibilityStatus == application.StatusEligible {
		status = http.StatusCreated
		message = "application created"
	}
	respond(c, status, created, message)
}

func (api *API) getApplication(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	app, err := api.store.GetApplication(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, app, "")
}

func (api *API) listApplications(c *gin.Context) {
	filter := storage.ApplicationFilter{
		StudentID:         queryInt64(c, "student_id"),
		JobID:             queryInt64(c, "job_id"),
		EligibilityStatus: c.Query("eligibility_status"),
	}
	page, err := api.store.ListApplications(c.Request.Context(), filter, listParams(c))
	if err != nil {
		api.respondError(c, err)
		return
	}
	respondPage(c, page)
}

func (api *API) listStudentApplications(c *gin.Context) {
	studentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	// Answer 404 rather than an empty page for an unknown student.
	if _, err := api.store.GetStudent(c.Request.Context(), studentID); err != nil {
		api.respondError(c, err)
		return
	}
	page, err := api.store.ListApplications(c.Request.Context(),
		storage.ApplicationFilter{StudentID: studentID}, listParams(c))
	if err != nil {
		api.respondError(c, err)
		return
	}
	respondPage(c, page)
}

func (api *API) listJobApplications(c *gin.Context) {
	jobID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := api.store.GetJob(c.Request.Context(), jobID); err != nil {
		api.respondError(c, err)
		return
	}
	page, err := api.store.ListApplications(c.Request.Context(),
		storage.ApplicationFilter{JobID: jobID}, listParams(c))
	if err != nil {
		api.respondError(c, err)
		return
	}
	respondPage(c, page)
}

func (api *API) updateApplicationStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req applicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := api.store.UpdateApplicationStatus(c.Request.Context(), id, req.EligibilityStatus, req.Remarks)
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, updated, "application status updated")
}

func (api *API) deleteApplication(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := api.store.DeleteApplication(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, deleted, "application withdrawn")
}
