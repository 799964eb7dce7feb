package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placement-cell/placement_service/internal/domain/company"
	"github.com/placement-cell/placement_service/internal/storage"
)

type companyCreateRequest struct {
	CompanyName  string `json:"company_name" binding:"required,max=200"`
	Industry     string `json:"industry" binding:"omitempty,max=100"`
	Website      string `json:"website" binding:"omitempty,url"`
	LogoURL      string `json:"logo_url" binding:"omitempty,url"`
	Description  string `json:"description"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
}

func (r companyCreateRequest) model() company.Company {
	return company.Company{
		CompanyName:  r.CompanyName,
		Industry:     r.Industry,
		Website:      r.Website,
		LogoURL:      r.LogoURL,
		Description:  r.Description,
		ContactEmail: r.ContactEmail,
	}
}

type companyUpdateRequest struct {
	CompanyName  *string `json:"company_name" binding:"omitempty,max=200"`
	Industry     *string `json:"industry" binding:"omitempty,max=100"`
	Website      *string `json:"website" binding:"omitempty,url"`
	LogoURL      *string `json:"logo_url" binding:"omitempty,url"`
	Description  *string `json:"description"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
}

func (r companyUpdateRequest) patch() company.Update {
	return company.Update{
		CompanyName:  r.CompanyName,
		Industry:     r.Industry,
		Website:      r.Website,
		LogoURL:      r.LogoURL,
		Description:  r.Description,
		ContactEmail: r.ContactEmail,
	}
}

func (api *API) createCompany(c *gin.Context) {
	var req companyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := api.store.CreateCompany(c.Request.Context(), req.model())
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, created, "company created")
}

func (api *API) getCompany(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	co, err := api.store.GetCompany(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, co, "")
}

func (api *API) listCompanies(c *gin.Context) {
	filter := storage.CompanyFilter{
		Industry: c.Query("industry"),
		Search:   c.Query("search"),
	}
	page, err := api.store.ListCompanies(c.Request.Context(), filter, listParams(c))
	if err != nil {
		api.respondError(c, err)
		return
	}
	respondPage(c, page)
}

func (api *API) updateCompany(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req companyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := api.store.UpdateCompany(c.Request.Context(), id, req.patch())
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, updated, "company updated")
}

func (api *API) deleteCompany(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := api.store.DeleteCompany(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, deleted, "company deleted")
}
