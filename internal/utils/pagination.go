// internal/utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PaginationParams struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Sort  string
	Order string
}

func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	return PaginationParams{
		Page:  page,
		Limit: limit,
		Sort:  c.DefaultQuery("sort", "created_at"),
		Order: c.DefaultQuery("order", "desc"),
	}
}

func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ApplySort whitelists the sortable columns so a query parameter can
// never inject arbitrary SQL into the ORDER BY clause. The map goes from
// request sort key to the (possibly qualified) column expression.
func ApplySort(query *gorm.DB, params PaginationParams, allowed map[string]string) *gorm.DB {
	column, ok := allowed[params.Sort]
	if !ok {
		column = allowed["created_at"]
	}
	order := "DESC"
	if params.Order == "asc" {
		order = "ASC"
	}
	return query.Order(column + " " + order)
}

func ApplyPagination(query *gorm.DB, params PaginationParams) *gorm.DB {
	return query.Offset(params.Offset()).Limit(params.Limit)
}

func BuildMeta(params PaginationParams, total int64) *Meta {
	totalPages := int(total) / params.Limit
	if int(total)%params.Limit > 0 {
		totalPages++
	}
	return &Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
