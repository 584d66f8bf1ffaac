package stubserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prohmpiriya/event-management/internal/domain"
	"github.com/prohmpiriya/event-management/pkg/envelope"
	"github.com/prohmpiriya/event-management/pkg/logger"
)

// EventHandler serves the single api.php endpoint
type EventHandler struct {
	store *MemoryEventStore
	log   *logger.Logger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(store *MemoryEventStore, log *logger.Logger) *EventHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &EventHandler{store: store, log: log}
}

// Handle dispatches on HTTP method and query parameters
func (h *EventHandler) Handle(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet:
		h.get(c)
	case http.MethodPost:
		h.create(c)
	case http.MethodPut:
		h.update(c)
	case http.MethodDelete:
		h.delete(c)
	default:
		c.JSON(http.StatusMethodNotAllowed, envelope.MethodNotAllowed(""))
	}
}

// get handles GET with id, stats, date, date_from/date_to, status or nothing
func (h *EventHandler) get(c *gin.Context) {
	ctx := c.Request.Context()

	if id, ok := c.GetQuery("id"); ok {
		event, err := h.store.Get(ctx, id)
		if err != nil {
			h.storeError(c, err)
			return
		}
		c.JSON(http.StatusOK, envelope.OK("Event retrieved successfully", event))
		return
	}

	if _, ok := c.GetQuery("stats"); ok {
		stats, err := h.store.Statistics(ctx)
		if err != nil {
			h.storeError(c, err)
			return
		}
		c.JSON(http.StatusOK, envelope.OK("Statistics retrieved successfully", stats))
		return
	}

	var filter EventFilter
	switch {
	case c.Query("date") != "":
		filter.Date = c.Query("date")
	case c.Query("date_from") != "" || c.Query("date_to") != "":
		filter.DateFrom = c.Query("date_from")
		filter.DateTo = c.Query("date_to")
		if filter.DateFrom == "" || filter.DateTo == "" {
			c.JSON(http.StatusBadRequest, envelope.BadRequest("Both date_from and date_to are required"))
			return
		}
	case c.Query("status") != "":
		status := domain.EventStatus(strings.ToLower(c.Query("status")))
		if !status.Known() {
			c.JSON(http.StatusBadRequest, envelope.BadRequest("Invalid status"))
			return
		}
		filter.Status = status
	}

	events, err := h.store.List(ctx, filter)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, envelope.OK("Events retrieved successfully", events))
}

// create handles POST with an Event body
func (h *EventHandler) create(c *gin.Context) {
	event, ok := h.bindEvent(c)
	if !ok {
		return
	}

	created, err := h.store.Create(c.Request.Context(), event)
	if err != nil {
		h.storeError(c, err)
		return
	}

	h.log.InfoContext(c.Request.Context(), "event created", zap.String("id", created.IDValue()))
	c.JSON(http.StatusCreated, envelope.Created("Event created successfully", created))
}

// update handles PUT ?id= with an Event body
func (h *EventHandler) update(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, envelope.BadRequest("Event ID is required"))
		return
	}

	if _, err := h.store.Get(c.Request.Context(), id); err != nil {
		h.storeError(c, err)
		return
	}

	event, ok := h.bindEvent(c)
	if !ok {
		return
	}

	updated, err := h.store.Update(c.Request.Context(), id, event)
	if err != nil {
		h.storeError(c, err)
		return
	}

	h.log.InfoContext(c.Request.Context(), "event updated", zap.String("id", id))
	c.JSON(http.StatusOK, envelope.OK("Event updated successfully", updated))
}

// delete handles DELETE ?id=
func (h *EventHandler) delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, envelope.BadRequest("Event ID is required"))
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		h.storeError(c, err)
		return
	}

	h.log.InfoContext(c.Request.Context(), "event deleted", zap.String("id", id))
	c.JSON(http.StatusOK, envelope.OK("Event deleted successfully", nil))
}

func (h *EventHandler) bindEvent(c *gin.Context) (domain.Event, bool) {
	var event domain.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, envelope.BadRequest("Invalid request body"))
		return event, false
	}
	if event.Status == "" {
		event.Status = domain.StatusUpcoming
	}

	if err := event.Validate(); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) && len(verr.Fields) > 0 {
			f := verr.Fields[0]
			c.JSON(http.StatusBadRequest, envelope.BadRequest(strings.ToUpper(f.Field[:1])+f.Field[1:]+" "+f.Message))
			return event, false
		}
		c.JSON(http.StatusBadRequest, envelope.BadRequest("Validation failed"))
		return event, false
	}
	return event, true
}

func (h *EventHandler) storeError(c *gin.Context, err error) {
	if errors.Is(err, ErrEventNotFound) {
		c.JSON(http.StatusNotFound, envelope.NotFound("Event not found"))
		return
	}
	h.log.ErrorContext(c.Request.Context(), "store failure", zap.Error(err))
	c.JSON(http.StatusInternalServerError, envelope.InternalError(""))
}
