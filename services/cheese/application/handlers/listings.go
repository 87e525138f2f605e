package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ghuser/cheeseshop/pkg/errhttp"
	"github.com/ghuser/cheeseshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/cheeseshop/pkg/validator"
	appsvcs "github.com/ghuser/cheeseshop/services/cheese/application/services"
	"github.com/ghuser/cheeseshop/services/cheese/domain/views"
)

// ListCheeseListingsHandler handles GET /cheeses.
type ListCheeseListingsHandler struct {
	svc *appsvcs.Services
}

// NewListCheeseListingsHandler returns a ListCheeseListingsHandler backed by the given services.
func NewListCheeseListingsHandler(svc *appsvcs.Services) *ListCheeseListingsHandler {
	return &ListCheeseListingsHandler{svc: svc}
}

// Execute returns one page of listings in the collection representation.
//
//	@Summary		List cheese listings
//	@Description	Returns a page of listings. Collection items carry shortDescription instead of description.
//	@Tags			cheeses
//	@Produce		json
//	@Param			page			query		int		false	"1-based page number"
//	@Param			isPublished		query		bool	false	"Publication state"
//	@Param			title			query		string	false	"Partial, case-insensitive title match"
//	@Param			description		query		string	false	"Partial, case-insensitive description match"
//	@Param			price[gt]		query		int		false	"Price strictly above, in cents"
//	@Param			price[gte]		query		int		false	"Price at or above, in cents"
//	@Param			price[lt]		query		int		false	"Price strictly below, in cents"
//	@Param			price[lte]		query		int		false	"Price at or below, in cents"
//	@Param			properties[]	query		[]string	false	"Restrict the returned fields"	collectionFormat(multi)
//	@Success		200				{object}	CheeseListingCollection
//	@Failure		400				{object}	ErrorResponse
//	@Router			/cheeses [get]
func (h *ListCheeseListingsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q, err := parseListingQuery(r.URL.Query())
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.svc.Listings.List(r.Context(), q.Filter, q.Page)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	items := make([]map[string]any, 0, len(page.Listings))
	for _, rep := range views.ProjectCollection(page.Listings, now(), q.Properties) {
		items = append(items, rep)
	}
	httpx.JSON(w, http.StatusOK, CheeseListingCollection{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

// GetCheeseListingHandler handles GET /cheeses/{id}.
type GetCheeseListingHandler struct {
	svc *appsvcs.Services
}

// NewGetCheeseListingHandler returns a GetCheeseListingHandler backed by the given services.
func NewGetCheeseListingHandler(svc *appsvcs.Services) *GetCheeseListingHandler {
	return &GetCheeseListingHandler{svc: svc}
}

// Execute returns a single listing in the item representation.
//
//	@Summary		Get cheese listing
//	@Tags			cheeses
//	@Produce		json
//	@Param			id				path		int			true	"Listing ID"
//	@Param			properties[]	query		[]string	false	"Restrict the returned fields"	collectionFormat(multi)
//	@Success		200				{object}	CheeseListingRead
//	@Failure		404				{object}	ErrorResponse
//	@Router			/cheeses/{id} [get]
func (h *GetCheeseListingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := listingID(w, r)
	if !ok {
		return
	}

	listing, err := h.svc.Listings.Get(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, views.ProjectRead(listing, views.ContextItem, now(), properties(r.URL.Query())))
}

// PostCheeseListingHandler handles POST /cheeses.
type PostCheeseListingHandler struct {
	svc *appsvcs.Services
}

// NewPostCheeseListingHandler returns a PostCheeseListingHandler backed by the given services.
func NewPostCheeseListingHandler(svc *appsvcs.Services) *PostCheeseListingHandler {
	return &PostCheeseListingHandler{svc: svc}
}

// Execute creates a listing from the write representation.
//
//	@Summary		Create cheese listing
//	@Description	Creates an unpublished listing. Keys outside the write representation are ignored.
//	@Tags			cheeses
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CheeseListingWrite	true	"Listing to create"
//	@Success		201		{object}	CheeseListingRead
//	@Failure		400		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		422		{object}	ValidationErrorResponse
//	@Router			/cheeses [post]
func (h *PostCheeseListingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var v views.WriteView
	if !pkgvalidator.Decode(w, r, &v) {
		return
	}

	listing, err := h.svc.Listings.Create(r.Context(), &v)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/cheeses/%d", listing.ID()))
	httpx.JSON(w, http.StatusCreated, views.ProjectRead(listing, views.ContextItem, now(), nil))
}

// UpdateCheeseListingHandler handles PUT and PATCH /cheeses/{id}.
type UpdateCheeseListingHandler struct {
	svc *appsvcs.Services
}

// NewUpdateCheeseListingHandler returns an UpdateCheeseListingHandler backed by the given services.
func NewUpdateCheeseListingHandler(svc *appsvcs.Services) *UpdateCheeseListingHandler {
	return &UpdateCheeseListingHandler{svc: svc}
}

// Execute merges the supplied write fields onto the stored listing. Omitted
// keys keep their current value.
//
//	@Summary		Update cheese listing
//	@Tags			cheeses
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Listing ID"
//	@Param			request	body		CheeseListingWrite	true	"Fields to change"
//	@Success		200		{object}	CheeseListingRead
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		422		{object}	ValidationErrorResponse
//	@Router			/cheeses/{id} [put]
//	@Router			/cheeses/{id} [patch]
func (h *UpdateCheeseListingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := listingID(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.JSONError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !json.Valid(body) {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	listing, err := h.svc.Listings.Update(r.Context(), id, func(v *views.WriteView) error {
		return json.Unmarshal(body, v)
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, views.ProjectRead(listing, views.ContextItem, now(), nil))
}

// DeleteCheeseListingHandler handles DELETE /cheeses/{id}.
type DeleteCheeseListingHandler struct {
	svc *appsvcs.Services
}

// NewDeleteCheeseListingHandler returns a DeleteCheeseListingHandler backed by the given services.
func NewDeleteCheeseListingHandler(svc *appsvcs.Services) *DeleteCheeseListingHandler {
	return &DeleteCheeseListingHandler{svc: svc}
}

// Execute removes a listing.
//
//	@Summary	Delete cheese listing
//	@Tags		cheeses
//	@Param		id	path	int	true	"Listing ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/cheeses/{id} [delete]
func (h *DeleteCheeseListingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := listingID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Listings.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PublishCheeseListingHandler handles POST /cheeses/{id}/publish and
// POST /cheeses/{id}/unpublish.
type PublishCheeseListingHandler struct {
	svc       *appsvcs.Services
	published bool
}

// NewPublishCheeseListingHandler returns a handler that sets the listing's
// publication state to published.
func NewPublishCheeseListingHandler(svc *appsvcs.Services, published bool) *PublishCheeseListingHandler {
	return &PublishCheeseListingHandler{svc: svc, published: published}
}

// Execute changes whether the listing is published. Requires a session.
//
//	@Summary	Publish or unpublish cheese listing
//	@Tags		cheeses
//	@Produce	json
//	@Param		id	path		int	true	"Listing ID"
//	@Success	200	{object}	CheeseListingRead
//	@Failure	401	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/cheeses/{id}/publish [post]
//	@Router		/cheeses/{id}/unpublish [post]
func (h *PublishCheeseListingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := listingID(w, r)
	if !ok {
		return
	}

	listing, err := h.svc.Listings.SetPublished(r.Context(), id, h.published)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, views.ProjectRead(listing, views.ContextItem, now(), nil))
}
