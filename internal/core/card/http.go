// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package card

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/manabase/internal/core/filter"
	"github.com/taibuivan/manabase/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/manabase/internal/platform/request"
	"github.com/taibuivan/manabase/internal/platform/respond"
	"github.com/taibuivan/manabase/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the card catalog.
type Handler struct {
	service *Service
}

// NewHandler constructs a new card [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with card endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.searchCards)
	router.Post("/", handler.createCard)
	router.Get("/autocomplete", handler.autocomplete)

	router.Post("/fetch", handler.fetchByName)
	router.Post("/fetch/{set}/{number}", handler.fetchByPrinting)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getCard)
		subRouter.Put("/", handler.updateCard)
		subRouter.Delete("/", handler.deleteCard)
	})

	return router
}

/*
GET /api/v1/cards.

Description: Searches the catalog. Simple parameters and the advanced
filter group are combined with AND. A malformed filter_json is ignored.

Request:
  - name, colors, type_line, rarity, set_code: string
  - cmc: int
  - filter_json: string (JSON filter group)
  - page, limit: int

Response:
  - 200: []Card: Paginated list, total mirrored in X-Total-Count
*/
func (handler *Handler) searchCards(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	params := SearchParams{
		Name:     requestutil.Query(request, "name"),
		Colors:   requestutil.Query(request, "colors"),
		TypeLine: requestutil.Query(request, "type_line"),
		CMC:      requestutil.QueryInt(request, "cmc"),
		Rarity:   requestutil.Query(request, "rarity"),
		SetCode:  requestutil.Query(request, "set_code"),
		Advanced: decodeAdvanced(request),
	}

	cards, total, err := handler.service.Search(request.Context(), params, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, cards, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// decodeAdvanced reads filter_json, logging anything it had to drop.
func decodeAdvanced(request *http.Request) filter.Node {
	raw := requestutil.Query(request, "filter_json")
	if raw == "" {
		return nil
	}

	logger := ctxutil.GetLogger(request.Context())

	node, diagnostics, err := filter.Decode([]byte(raw))
	if err != nil {
		logger.WarnContext(request.Context(), "filter_ignored", slog.Any("error", err))
		return nil
	}

	for _, diagnostic := range diagnostics {
		logger.WarnContext(request.Context(), "filter_leaf_dropped",
			slog.String("path", diagnostic.Path),
			slog.String("reason", diagnostic.Reason),
		)
	}
	return node
}

/*
GET /api/v1/cards/autocomplete.

Request:
  - name_prefix: string (required)
  - limit: int (default 10, max 50)

Response:
  - 200: []string: Matching names
  - 400: Validation: Missing prefix
*/
func (handler *Handler) autocomplete(writer http.ResponseWriter, request *http.Request) {
	limit := DefaultAutocompleteLimit
	if value := requestutil.QueryInt(request, "limit"); value != nil {
		limit = *value
	}

	names, err := handler.service.Autocomplete(request.Context(), requestutil.Query(request, "name_prefix"), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, names)
}

/*
GET /api/v1/cards/{id}.

Response:
  - 200: Card
  - 400: ErrInvalidID
  - 404: ErrNotFound
*/
func (handler *Handler) getCard(writer http.ResponseWriter, request *http.Request) {
	card, err := handler.service.GetCard(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, card)
}

/*
POST /api/v1/cards.

Request (Body):
  - Card JSON object (name required)

Response:
  - 201: Card: Created object
  - 400: ErrInvalidJSON/Validation
  - 409: Conflict: Scryfall ID already stored
*/
func (handler *Handler) createCard(writer http.ResponseWriter, request *http.Request) {
	var input Card
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCard(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, input)
}

/*
PUT /api/v1/cards/{id}.

Description: Replaces every mutable field of the card.

Response:
  - 200: Card: Updated entity
  - 400: ErrInvalidJSON/Validation
  - 404: ErrNotFound
*/
func (handler *Handler) updateCard(writer http.ResponseWriter, request *http.Request) {
	var input Card
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ID = requestutil.ID(request, "id")

	if err := handler.service.UpdateCard(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, input)
}

/*
DELETE /api/v1/cards/{id}.

Response:
  - 204: No Content
  - 404: ErrNotFound
  - 409: Conflict: The card is still part of a deck
*/
func (handler *Handler) deleteCard(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteCard(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/cards/fetch?name=.

Description: Returns the stored card with this exact name, importing it from
Scryfall first when necessary.

Response:
  - 200: Card
  - 400: Validation: Missing name
  - 404: ErrNotFound: Unknown to Scryfall
  - 502: Upstream: Scryfall failed
*/
func (handler *Handler) fetchByName(writer http.ResponseWriter, request *http.Request) {
	card, err := handler.service.FetchByName(request.Context(), requestutil.Query(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, card)
}

// POST /api/v1/cards/fetch/{set}/{number}.
func (handler *Handler) fetchByPrinting(writer http.ResponseWriter, request *http.Request) {
	card, err := handler.service.FetchByPrinting(request.Context(),
		requestutil.Param(request, "set"),
		requestutil.Param(request, "number"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, card)
}
