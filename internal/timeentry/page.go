package timeentry

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/frahmantamala/ponto-eletronico/internal"
)

const (
	DirectionAsc  = "ASC"
	DirectionDesc = "DESC"
)

// sortColumns maps the accepted ord values to table columns.
var sortColumns = map[string]string{
	"id":          "id",
	"data":        "data",
	"tipo":        "tipo",
	"descricao":   "descricao",
	"localizacao": "localizacao",
}

type PageRequest struct {
	Page      int
	Size      int
	Sort      string
	Direction string
}

// OrderClause returns a safe ORDER BY expression with id as tie breaker.
func (p PageRequest) OrderClause() string {
	column, ok := sortColumns[p.Sort]
	if !ok {
		column = "id"
	}
	dir := DirectionDesc
	if p.Direction == DirectionAsc {
		dir = DirectionAsc
	}
	if column == "id" {
		return "id " + dir
	}
	return column + " " + dir + ", id " + dir
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// ParsePageRequest reads pag, ord, dir and tam from the query string. Missing
// values fall back to page 0, id, DESC and defaultSize.
func ParsePageRequest(q url.Values, defaultSize, maxSize int) (PageRequest, error) {
	if defaultSize < 1 {
		defaultSize = 1
	}
	req := PageRequest{
		Page:      0,
		Size:      defaultSize,
		Sort:      "id",
		Direction: DirectionDesc,
	}

	var errs []internal.ValidationError

	if raw := q.Get("ord"); raw != "" {
		if _, ok := sortColumns[raw]; !ok {
			errs = append(errs, internal.ValidationError{Field: "ord", Message: "Campo de ordenação inválido: " + raw, Code: string(internal.ErrCodeInvalidSort)})
		} else {
			req.Sort = raw
		}
	}

	if raw := q.Get("dir"); raw != "" {
		dir := strings.ToUpper(raw)
		if dir != DirectionAsc && dir != DirectionDesc {
			errs = append(errs, internal.ValidationError{Field: "dir", Message: "Direção de ordenação inválida: " + raw, Code: string(internal.ErrCodeInvalidSort)})
		} else {
			req.Direction = dir
		}
	}

	if raw := q.Get("tam"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > maxSize {
			errs = append(errs, internal.ValidationError{Field: "tam", Message: "Tamanho de página inválido", Code: string(internal.ErrCodeInvalidSort)})
		} else {
			req.Size = size
		}
	}

	// pag is checked last so the offset bound uses the final page size.
	if raw := q.Get("pag"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 || page > math.MaxInt/req.Size {
			errs = append(errs, internal.ValidationError{Field: "pag", Message: "Página inválida", Code: string(internal.ErrCodeInvalidSort)})
		} else {
			req.Page = page
		}
	}

	if len(errs) > 0 {
		return req, internal.NewValidationError("Validation failed", internal.ErrCodeInvalidSort).
			WithDetails(internal.ValidationErrors{Errors: errs})
	}
	return req, nil
}
