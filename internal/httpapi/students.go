package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placement-cell/placement_service/internal/domain/student"
	"github.com/placement-cell/placement_service/internal/storage"
)

type studentCreateRequest struct {
	FirstName      string  `json:"first_name" binding:"required,max=100"`
	LastName       string  `json:"last_name" binding:"max=100"`
	Email          string  `json:"email" binding:"required,email"`
	RollNumber     string  `json:"roll_number" binding:"required,max=50"`
	Branch         string  `json:"branch" binding:"required,max=100"`
	CGPA           float64 `json:"cgpa" binding:"gte=0,lte=10"`
	GraduationYear int     `json:"graduation_year" binding:"omitempty,gte=1990,lte=2100"`
	Phone          string  `json:"phone" binding:"omitempty,max=20"`
	ResumeURL      string  `json:"resume_url" binding:"omitempty,url"`
}

func (r studentCreateRequest) model() student.Student {
	return student.Student{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		RollNumber:     r.RollNumber,
		Branch:         r.Branch,
		CGPA:           r.CGPA,
		GraduationYear: r.GraduationYear,
		Phone:          r.Phone,
		ResumeURL:      r.ResumeURL,
	}
}

type studentUpdateRequest struct {
	FirstName      *string  `json:"first_name" binding:"omitempty,max=100"`
	LastName       *string  `json:"last_name" binding:"omitempty,max=100"`
	Email          *string  `json:"email" binding:"omitempty,email"`
	Branch         *string  `json:"branch" binding:"omitempty,max=100"`
	CGPA           *float64 `json:"cgpa" binding:"omitempty,gte=0,lte=10"`
	GraduationYear *int     `json:"graduation_year" binding:"omitempty,gte=1990,lte=2100"`
	Phone          *string  `json:"phone" binding:"omitempty,max=20"`
	ResumeURL      *string  `json:"resume_url" binding:"omitempty,url"`
}

func (r studentUpdateRequest) patch() student.Update {
	return student.Update{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		Branch:         r.Branch,
		CGPA:           r.CGPA,
		GraduationYear: r.GraduationYear,
		Phone:          r.Phone,
		ResumeURL:      r.ResumeURL,
	}
}

func (api *API) createStudent(c *gin.Context) {
	var req studentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := api.store.CreateStudent(c.Request.Context(), req.model())
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, created, "student created")
}

func (api *API) getStudent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	st, err := api.store.GetStudent(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, st, "")
}

func (api *API) listStudents(c *gin.Context) {
	filter := storage.StudentFilter{
		Branch:         c.Query("branch"),
		GraduationYear: queryInt(c, "graduation_year"),
		Search:         c.Query("search"),
	}
	page, err := api.store.ListStudents(c.Request.Context(), filter, listParams(c))
	if err != nil {
		api.respondError(c, err)
		return
	}
	respondPage(c, page)
}

func (api *API) updateStudent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req studentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := api.store.UpdateStudent(c.Request.Context(), id, req.patch())
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, updated, "student updated")
}

func (api *API) deleteStudent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := api.store.DeleteStudent(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, deleted, "student deleted")
}
