package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/cheeseshop/pkg/errhttp"
	cheesedomain "github.com/ghuser/cheeseshop/services/cheese/domain"
)

// ErrorResponse is returned on all error responses except field validation.
type ErrorResponse struct {
	Error string `json:"error" example:"cheese listing not found"`
} // @name ErrorResponse

// ValidationErrorResponse is returned with 422 when fields fail validation.
type ValidationErrorResponse struct {
	Error  string            `json:"error" example:"Validation failed"`
	Fields map[string]string `json:"fields"`
} // @name ValidationErrorResponse

// CheeseListingRead documents the read representation. Item responses carry
// description; collection items carry shortDescription instead. The
// properties[] query parameter narrows the set of keys.
type CheeseListingRead struct {
	ID               int64  `json:"id" example:"1"`
	Title            string `json:"title" example:"Brie de Meaux"`
	Description      string `json:"description,omitempty" example:"Soft and creamy.<br />\nBest at room temperature."`
	ShortDescription string `json:"shortDescription,omitempty" example:"Soft and creamy.<br />\nBest at room temp..."`
	Price            int64  `json:"price" example:"1250"`
	CreatedAtAgo     string `json:"createdAtAgo" example:"3 minutes ago"`
	Owner            int64  `json:"owner" example:"1"`
} // @name CheeseListingRead

// CheeseListingCollection is one page of listings.
type CheeseListingCollection struct {
	Items      []map[string]any `json:"items"`
	Page       int              `json:"page" example:"1"`
	PageSize   int              `json:"pageSize" example:"10"`
	Total      int              `json:"total" example:"42"`
	TotalPages int              `json:"totalPages" example:"5"`
} // @name CheeseListingCollection

// now is the clock used for derived fields.
func now() time.Time {
	return time.Now().UTC()
}

// pathID parses the {id} URL parameter. Anything but a positive integer is
// answered with notFound, since no resource can live at that path.
func pathID(w http.ResponseWriter, r *http.Request, notFound error) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		errhttp.WriteError(w, notFound)
		return 0, false
	}
	return id, true
}

func listingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	return pathID(w, r, cheesedomain.ErrCheeseListingNotFound)
}
