package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placement-cell/placement_service/internal/domain/student"
)

type languageRequest struct {
	Language    string `json:"language" binding:"required,max=50"`
	Proficiency string `json:"proficiency" binding:"required,oneof=basic intermediate fluent native"`
}

type languageUpdateRequest struct {
	Language    *string `json:"language" binding:"omitempty,max=50"`
	Proficiency *string `json:"proficiency" binding:"omitempty,oneof=basic intermediate fluent native"`
}

type familyMemberRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	Relation   string `json:"relation" binding:"required,max=50"`
	Occupation string `json:"occupation" binding:"omitempty,max=100"`
	Phone      string `json:"phone" binding:"omitempty,max=20"`
}

type familyMemberUpdateRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=100"`
	Relation   *string `json:"relation" binding:"omitempty,max=50"`
	Occupation *string `json:"occupation" binding:"omitempty,max=100"`
	Phone      *string `json:"phone" binding:"omitempty,max=20"`
}

type addressRequest struct {
	AddressType string `json:"address_type" binding:"required,oneof=permanent current"`
	Line1       string `json:"line1" binding:"required,max=200"`
	Line2       string `json:"line2" binding:"omitempty,max=200"`
	City        string `json:"city" binding:"required,max=100"`
	State       string `json:"state" binding:"omitempty,max=100"`
	PostalCode  string `json:"postal_code" binding:"omitempty,max=20"`
	Country     string `json:"country" binding:"omitempty,max=100"`
}

type addressUpdateRequest struct {
	AddressType *string `json:"address_type" binding:"omitempty,oneof=permanent current"`
	Line1       *string `json:"line1" binding:"omitempty,max=200"`
	Line2       *string `json:"line2" binding:"omitempty,max=200"`
	City        *string `json:"city" binding:"omitempty,max=100"`
	State       *string `json:"state" binding:"omitempty,max=100"`
	PostalCode  *string `json:"postal_code" binding:"omitempty,max=20"`
	Country     *string `json:"country" binding:"omitempty,max=100"`
}

func (api *API) addLanguage(c *gin.Context) {
	studentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := api.store.AddLanguage(c.Request.Context(), student.Language{
		StudentID:   studentID,
		Language:    req.Language,
		Proficiency: req.Proficiency,
	})
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, created, "language added")
}

func (api *API) listLanguages(c *gin.Context) {
	studentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := api.store.GetStudent(c.Request.Context(), studentID); err != nil {
		api.respondError(c, err)
		return
	}
	langs, err := api.store.ListLanguages(c.Request.Context(), studentID)
	if err != nil {
		api.respondError(c, err)
		return
	}
	if langs == nil {
		langs = []student.Language{}
	}
	respond(c, http.StatusOK, langs, "")
}

func (api *API) updateLanguage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req languageUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := api.store.UpdateLanguage(c.Request.Context(), id, student.LanguageUpdate{
		Language:    req.Language,
		Proficiency: req.Proficiency,
	})
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, updated, "language updated")
}

func (api *API) deleteLanguage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := api.store.DeleteLanguage(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, deleted, "language removed")
}

func (api *API) addFamilyMember(c *gin.Context) {
	studentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req familyMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := api.store.AddFamilyMember(c.Request.Context(), student.FamilyMember{
		StudentID:  studentID,
		Name:       req.Name,
		Relation:   req.Relation,
		Occupation: req.Occupation,
		Phone:      req.Phone,
	})
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, created, "family member added")
}

func (api *API) listFamilyMembers(c *gin.Context) {
	studentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := api.store.GetStudent(c.Request.Context(), studentID); err != nil {
		api.respondError(c, err)
		return
	}
	members, err := api.store.ListFamilyMembers(c.Request.Context(), studentID)
	if err != nil {
		api.respondError(c, err)
		return
	}
	if members == nil {
		members = []student.FamilyMember{}
	}
	respond(c, http.StatusOK, members, "")
}

func (api *API) updateFamilyMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req familyMemberUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := api.store.UpdateFamilyMember(c.Request.Context(), id, student.FamilyMemberUpdate{
		Name:       req.Name,
		Relation:   req.Relation,
		Occupation: req.Occupation,
		Phone:      req.Phone,
	})
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, updated, "family member updated")
}

func (api *API) deleteFamilyMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := api.store.DeleteFamilyMember(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, deleted, "family member removed")
}

func (api *API) addAddress(c *gin.Context) {
	studentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := api.store.AddAddress(c.Request.Context(), student.Address{
		StudentID:   studentID,
		AddressType: req.AddressType,
		Line1:       req.Line1,
		Line2:       req.Line2,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		Country:     req.Country,
	})
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, created, "address added")
}

func (api *API) listAddresses(c *gin.Context) {
	studentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := api.store.GetStudent(c.Request.Context(), studentID); err != nil {
		api.respondError(c, err)
		return
	}
	addrs, err := api.store.ListAddresses(c.Request.Context(), studentID)
	if err != nil {
		api.respondError(c, err)
		return
	}
	if addrs == nil {
		addrs = []student.Address{}
	}
	respond(c, http.StatusOK, addrs, "")
}

func (api *API) updateAddress(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req addressUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := api.store.UpdateAddress(c.Request.Context(), id, student.AddressUpdate{
		AddressType: req.AddressType,
		Line1:       req.Line1,
		Line2:       req.Line2,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		Country:     req.Country,
	})
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, updated, "address updated")
}

func (api *API) deleteAddress(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := api.store.DeleteAddress(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, deleted, "address removed")
}
