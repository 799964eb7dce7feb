package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placement-cell/placement_service/internal/domain/rbac"
	"github.com/placement-cell/placement_service/internal/storage"
)

type roleRequest struct {
	RoleName    string `json:"role_name" binding:"required,max=50"`
	Description string `json:"description"`
}

type roleUpdateRequest struct {
	RoleName    *string `json:"role_name" binding:"omitempty,max=50"`
	Description *string `json:"description"`
}

type permissionRequest struct {
	PermissionName string `json:"permission_name" binding:"required,max=100"`
	Description    string `json:"description"`
}

type permissionUpdateRequest struct {
	PermissionName *string `json:"permission_name" binding:"omitempty,max=100"`
	Description    *string `json:"description"`
}

func (api *API) createRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	created, err := api.store.CreateRole(c.Request.Context(), rbac.Role{
		RoleName:    req.RoleName,
		Description: req.Description,
	})
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, created, "role created")
}

func (api *API) getRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	role, err := api.store.GetRole(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, role, "")
}

func (api *API) listRoles(c *gin.Context) {
	page, err := api.store.ListRoles(c.Request.Context(),
		storage.RoleFilter{Search: c.Query("search")}, listParams(c))
	if err != nil {
		api.respondError(c, err)
		return
	}
	respondPage(c, page)
}

func (api *API) updateRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req roleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	updated, err := api.store.UpdateRole(c.Request.Context(), id, rbac.RoleUpdate{
		RoleName:    req.RoleName,
		Description: req.Description,
	})
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, updated, "role updated")
}

// deleteRole removes the role and its permission grants outright.
func (api *API) deleteRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := api.store.DeleteRole(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, deleted, "role deleted")
}

func (api *API) createPermission(c *gin.Context) {
	var req permissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	created, err := api.store.CreatePermission(c.Request.Context(), rbac.Permission{
		PermissionName: req.PermissionName,
		Description:    req.Description,
	})
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, created, "permission created")
}

func (api *API) getPermission(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	perm, err := api.store.GetPermission(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, perm, "")
}

func (api *API) listPermissions(c *gin.Context) {
	page, err := api.store.ListPermissions(c.Request.Context(),
		storage.PermissionFilter{Search: c.Query("search")}, listParams(c))
	if err != nil {
		api.respondError(c, err)
		return
	}
	respondPage(c, page)
}

func (api *API) updatePermission(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req permissionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	updated, err := api.store.UpdatePermission(c.Request.Context(), id, rbac.PermissionUpdate{
		PermissionName: req.PermissionName,
		Description:    req.Description,
	})
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, updated, "permission updated")
}

func (api *API) deletePermission(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := api.store.DeletePermission(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, deleted, "permission deleted")
}

func (api *API) grantPermission(c *gin.Context) {
	roleID, ok := pathID(c, "id")
	if !ok {
		return
	}
	permID, ok := pathID(c, "permID")
	if !ok {
		return
	}
	if err := api.store.GrantPermission(c.Request.Context(), roleID, permID); err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, nil, "permission granted")
}

func (api *API) revokePermission(c *gin.Context) {
	roleID, ok := pathID(c, "id")
	if !ok {
		return
	}
	permID, ok := pathID(c, "permID")
	if !ok {
		return
	}
	if err := api.store.RevokePermission(c.Request.Context(), roleID, permID); err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "permission revoked")
}

func (api *API) listRolePermissions(c *gin.Context) {
	roleID, ok := pathID(c, "id")
	if !ok {
		return
	}
	perms, err := api.store.ListRolePermissions(c.Request.Context(), roleID)
	if err != nil {
		api.respondError(c, err)
		return
	}
	if perms == nil {
		perms = []rbac.Permission{}
	}
	respond(c, http.StatusOK, perms, "")
}
