// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/manabase/internal/platform/request"
	"github.com/taibuivan/manabase/internal/platform/respond"
	"github.com/taibuivan/manabase/internal/platform/validate"
	"github.com/taibuivan/manabase/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for decks.
type Handler struct {
	service *Service
}

// NewHandler constructs a new deck [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with deck endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listDecks)
	router.Post("/", handler.createDeck)
	router.Post("/import", handler.importDeck)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getDeck)
		subRouter.Patch("/", handler.updateDeck)
		subRouter.Delete("/", handler.deleteDeck)

		subRouter.Get("/stats", handler.stats)
		subRouter.Get("/import-receipt", handler.importReceipt)

		subRouter.Post("/cards", handler.addCard)
		subRouter.Put("/cards/{cardID}", handler.moveCard)
		subRouter.Delete("/cards/{cardID}", handler.removeCard)
	})

	return router
}

/*
GET /api/v1/decks.

Request:
  - page, limit: int

Response:
  - 200: []Deck: Paginated list, newest first, without cards
*/
func (handler *Handler) listDecks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	decks, total, err := handler.service.ListDecks(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, decks, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/v1/decks.

Request (Body):
  - name: string (required)
  - description, format: string
  - tags: []string or comma-joined string

Response:
  - 201: Deck: Created object
  - 400: ErrInvalidJSON/Validation
*/
func (handler *Handler) createDeck(writer http.ResponseWriter, request *http.Request) {
	var input Deck
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateDeck(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, input)
}

/*
POST /api/v1/decks/import.

Description: Creates a deck from an Arena style deck list. Cards that cannot
be resolved are skipped and listed in the response.

Request (Body):
  - deck_text: string (required)
  - name: string (required)
  - description, format: string
  - tags: []string or comma-joined string

Response:
  - 201: ImportResult
  - 400: ErrInvalidJSON/Validation
  - 422: Unprocessable: No card lines in deck_text
*/
func (handler *Handler) importDeck(writer http.ResponseWriter, request *http.Request) {
	var input ImportRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Import(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

/*
GET /api/v1/decks/{id}.

Response:
  - 200: Deck: With cards, main deck first
  - 400: ErrInvalidID
  - 404: ErrNotFound
*/
func (handler *Handler) getDeck(writer http.ResponseWriter, request *http.Request) {
	deck, err := handler.service.GetDeck(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, deck)
}

/*
PATCH /api/v1/decks/{id}.

Description: Updates only the fields present in the body.

Response:
  - 200: Deck: Updated entity
  - 400: ErrInvalidJSON/Validation
  - 404: ErrNotFound
*/
func (handler *Handler) updateDeck(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	deck, err := handler.service.UpdateDeck(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, deck)
}

// DELETE /api/v1/decks/{id}.
func (handler *Handler) deleteDeck(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteDeck(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/v1/decks/{id}/stats.

Response:
  - 200: Stats
  - 404: ErrNotFound
*/
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.Stats(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

/*
GET /api/v1/decks/{id}/import-receipt.

Response:
  - 200: ImportResult
  - 404: ErrNotFound: Never imported, expired, or receipts disabled
*/
func (handler *Handler) importReceipt(writer http.ResponseWriter, request *http.Request) {
	receipt, err := handler.service.ImportReceipt(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, receipt)
}

/*
POST /api/v1/decks/{id}/cards.

Request (Body):
  - card_id: string (required)
  - quantity: int (default 1)
  - is_sideboard: bool

Response:
  - 201: Entry: The entry after merging with existing copies
  - 404: ErrNotFound: Unknown deck or card
*/
func (handler *Handler) addCard(writer http.ResponseWriter, request *http.Request) {
	var input CardInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.AddCard(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

/*
PUT /api/v1/decks/{id}/cards/{cardID}?sideboard=.

Description: The sideboard query selects the zone the card is in now
(default main deck). The body sets its new quantity and zone.

Response:
  - 200: Entry
  - 404: ErrNotFound: The zone does not hold the card
*/
func (handler *Handler) moveCard(writer http.ResponseWriter, request *http.Request) {
	var input MoveInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.MoveCard(request.Context(),
		requestutil.ID(request, "id"),
		requestutil.ID(request, "cardID"),
		requestutil.QueryBool(request, "sideboard", false),
		input,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

/*
DELETE /api/v1/decks/{id}/cards/{cardID}?sideboard=.

Description: Without the sideboard query the card is removed from both zones.

Response:
  - 204: No Content
  - 404: ErrNotFound
*/
func (handler *Handler) removeCard(writer http.ResponseWriter, request *http.Request) {
	var sideboard *bool
	if raw := requestutil.Query(request, "sideboard"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			respond.Error(writer, request, validate.InvalidBool("sideboard"))
			return
		}
		sideboard = &value
	}

	err := handler.service.RemoveCard(request.Context(),
		requestutil.ID(request, "id"),
		requestutil.ID(request, "cardID"),
		sideboard,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
