package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/placement-cell/placement_service/internal/domain/job"
	"github.com/placement-cell/placement_service/internal/storage"
)

type jobCreateRequest struct {
	CompanyID           int64     `json:"company_id" binding:"required,gt=0"`
	Title               string    `json:"title" binding:"required,max=200"`
	Description         string    `json:"description"`
	Location            string    `json:"location" binding:"omitempty,max=200"`
	JobType             string    `json:"job_type" binding:"required,oneof=full_time internship contract"`
	SalaryMin           float64   `json:"salary_min" binding:"gte=0"`
	SalaryMax           float64   `json:"salary_max" binding:"gte=0"`
	ApplicationDeadline time.Time `json:"application_deadline" binding:"required"`
	Openings            int       `json:"openings" binding:"omitempty,gte=1"`
	Status              string    `json:"status" binding:"omitempty,oneof=open closed"`
}

func (r jobCreateRequest) model() job.Job {
	status := r.Status
	if status == "" {
		status = job.StatusOpen
	}
	return job.Job{
		CompanyID:           r.CompanyID,
		Title:               r.Title,
		Description:         r.Description,
		Location:            r.Location,
		JobType:             r.JobType,
		SalaryMin:           r.SalaryMin,
		SalaryMax:           r.SalaryMax,
		ApplicationDeadline: r.ApplicationDeadline,
		Openings:            r.Openings,
		Status:              status,
	}
}

type jobUpdateRequest struct {
	Title               *string    `json:"title" binding:"omitempty,max=200"`
	Description         *string    `json:"description"`
	Location            *string    `json:"location" binding:"omitempty,max=200"`
	JobType             *string    `json:"job_type" binding:"omitempty,oneof=full_time internship contract"`
	SalaryMin           *float64   `json:"salary_min" binding:"omitempty,gte=0"`
	SalaryMax           *float64   `json:"salary_max" binding:"omitempty,gte=0"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	Openings            *int       `json:"openings" binding:"omitempty,gte=1"`
	Status              *string    `json:"status" binding:"omitempty,oneof=open closed"`
}

func (r jobUpdateRequest) patch() job.Update {
	return job.Update{
		Title:               r.Title,
		Description:         r.Description,
		Location:            r.Location,
		JobType:             r.JobType,
		SalaryMin:           r.SalaryMin,
		SalaryMax:           r.SalaryMax,
		ApplicationDeadline: r.ApplicationDeadline,
		Openings:            r.Openings,
		Status:              r.Status,
	}
}

type requirementCreateRequest struct {
	RequirementType string   `json:"requirement_type" binding:"required,oneof=skill education experience"`
	Description     string   `json:"description"`
	MinCGPA         *float64 `json:"min_cgpa" binding:"omitempty,gte=0,lte=10"`
	Mandatory       bool     `json:"mandatory"`
}

type requirementUpdateRequest struct {
	RequirementType *string  `json:"requirement_type" binding:"omitempty,oneof=skill education experience"`
	Description     *string  `json:"description"`
	MinCGPA         *float64 `json:"min_cgpa" binding:"omitempty,gte=0,lte=10"`
	Mandatory       *bool    `json:"mandatory"`
}

func (api *API) createJob(c *gin.Context) {
	var req jobCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := api.store.CreateJob(c.Request.Context(), req.model())
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, created, "job created")
}

func (api *API) getJob(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	j, err := api.store.GetJob(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, j, "")
}

func (api *API) listJobs(c *gin.Context) {
	filter := storage.JobFilter{
		CompanyID: queryInt64(c, "company_id"),
		Status:    c.Query("status"),
		JobType:   c.Query("job_type"),
		Search:    c.Query("search"),
	}
	page, err := api.store.ListJobs(c.Request.Context(), filter, listParams(c))
	if err != nil {
		api.respondError(c, err)
		return
	}
	respondPage(c, page)
}

func (api *API) updateJob(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req jobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := api.store.UpdateJob(c.Request.Context(), id, req.patch())
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, updated, "job updated")
}

func (api *API) deleteJob(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := api.store.DeleteJob(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, deleted, "job deleted")
}

func (api *API) addRequirement(c *gin.Context) {
	jobID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req requirementCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := api.store.AddRequirement(c.Request.Context(), job.Requirement{
		JobID:           jobID,
		RequirementType: req.RequirementType,
		Description:     req.Description,
		MinCGPA:         req.MinCGPA,
		Mandatory:       req.Mandatory,
	})
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, created, "requirement added")
}

func (api *API) listRequirements(c *gin.Context) {
	jobID, ok := pathID(c, "id")
	if !ok {
		return
	}
	// Answer 404 rather than an empty list for an unknown job.
	if _, err := api.store.GetJob(c.Request.Context(), jobID); err != nil {
		api.respondError(c, err)
		return
	}
	reqs, err := api.store.ListRequirements(c.Request.Context(), jobID)
	if err != nil {
		api.respondError(c, err)
		return
	}
	if reqs == nil {
		reqs = []job.Requirement{}
	}
	respond(c, http.StatusOK, reqs, "")
}

func (api *API) updateRequirement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req requirementUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := api.store.UpdateRequirement(c.Request.Context(), id, job.RequirementUpdate{
		RequirementType: req.RequirementType,
		Description:     req.Description,
		MinCGPA:         req.MinCGPA,
		Mandatory:       req.Mandatory,
	})
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, updated, "requirement updated")
}

func (api *API) deleteRequirement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := api.store.DeleteRequirement(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, deleted, "requirement deleted")
}
