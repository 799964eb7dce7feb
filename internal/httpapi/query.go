package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/placement-cell/placement_service/internal/storage"
)

// pathID parses the named path parameter as a positive integer ID. On
// failure it writes the 400 response and returns false.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, response{Success: false, Error: "invalid " + name + " parameter"})
		return 0, false
	}
	return id, true
}

// listParams reads pagination and sorting from the query string. Missing
// or unparseable values fall back to the defaults; the store clamps the
// rest.
func listParams(c *gin.Context) storage.ListParams {
	p := storage.ListParams{
		SortBy:    c.Query("sort_by"),
		SortOrder: strings.ToUpper(c.Query("sort_order")),
	}
	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		p.Limit = v
	}
	return p
}

func queryInt64(c *gin.Context, name string) int64 {
	v, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
