package handler

import (
	"github.com/claimdesk/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// dtoListRequest binds pagination query parameters, falling back to defaults
// for anything missing or malformed
func dtoListRequest(c *gin.Context) dto.ListRequest {
	req := dto.DefaultListRequest()
	var bound dto.ListRequest
	if err := c.ShouldBindQuery(&bound); err != nil {
		return req
	}
	if bound.Page > 0 {
		req.Page = bound.Page
	}
	if bound.PageSize > 0 {
		req.PageSize = bound.PageSize
	}
	if bound.OrderBy != "" {
		req.OrderBy = bound.OrderBy
	}
	if bound.OrderDir != "" {
		req.OrderDir = bound.OrderDir
	}
	req.Search = bound.Search
	return req
}
