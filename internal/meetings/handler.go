package meetings

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/boardflow/backend/internal/middleware"
	"github.com/boardflow/backend/pkg/response"
)

// Acquire returns the caller's dashboard locked for exclusive use; release unlocks it.
type Acquire func(userID string) (d *Dashboard, release func(), err error)

// OccurrencesResponse lists upcoming starts of one meeting.
type OccurrencesResponse struct {
	MeetingID string      `json:"meeting_id"`
	Starts    []time.Time `json:"starts"`
}

// Handler handles meeting and calendar HTTP endpoints.
type Handler struct {
	acquire Acquire
	now     func() time.Time
}

// NewHandler creates a meetings handler.
func NewHandler(acquire Acquire) *Handler {
	return &Handler{acquire: acquire, now: time.Now}
}

func (h *Handler) dashboard(c *gin.Context) (*Dashboard, func(), bool) {
	d, release, err := h.acquire(middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return nil, nil, false
	}
	return d, release, true
}

// List handles GET /meetings.
func (h *Handler) List(c *gin.Context) {
	d, release, ok := h.dashboard(c)
	if !ok {
		return
	}
	defer release()
	response.OK(c, d.List())
}

// Board handles GET /meetings/board.
func (h *Handler) Board(c *gin.Context) {
	d, release, ok := h.dashboard(c)
	if !ok {
		return
	}
	defer release()
	response.OK(c, d.Board())
}

// Get handles GET /meetings/:id.
func (h *Handler) Get(c *gin.Context) {
	d, release, ok := h.dashboard(c)
	if !ok {
		return
	}
	defer release()
	m, err := d.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, m)
}

// Create handles POST /meetings.
func (h *Handler) Create(c *gin.Context) {
	h.save(c, "")
}

// Update handles PUT /meetings/:id.
func (h *Handler) Update(c *gin.Context) {
	h.save(c, c.Param("id"))
}

func (h *Handler) save(c *gin.Context, id string) {
	var req Input
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	d, release, ok := h.dashboard(c)
	if !ok {
		return
	}
	defer release()
	m, err := d.Save(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if id == "" {
		response.Created(c, m)
		return
	}
	response.OK(c, m)
}

// Occurrences handles GET /meetings/:id/occurrences?limit=N.
func (h *Handler) Occurrences(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultOccurrences)))
	if err != nil {
		response.BadRequest(c, "invalid limit")
		return
	}
	d, release, ok := h.dashboard(c)
	if !ok {
		return
	}
	defer release()
	m, err := d.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	starts, err := Occurrences(m, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, OccurrencesResponse{MeetingID: m.ID, Starts: starts})
}

// Month handles GET /calendar/month?year=YYYY&month=M. Both default to the current month.
func (h *Handler) Month(c *gin.Context) {
	now := h.now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		response.BadRequest(c, "invalid year")
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(c, "invalid month")
		return
	}
	d, release, ok := h.dashboard(c)
	if !ok {
		return
	}
	defer release()
	response.OK(c, d.Month(year, time.Month(month)))
}

// Week handles GET /calendar/week?date=YYYY-MM-DD.
func (h *Handler) Week(c *gin.Context) {
	date, ok := h.date(c)
	if !ok {
		return
	}
	d, release, ok := h.dashboard(c)
	if !ok {
		return
	}
	defer release()
	response.OK(c, d.Week(date))
}

// Day handles GET /calendar/day?date=YYYY-MM-DD.
func (h *Handler) Day(c *gin.Context) {
	date, ok := h.date(c)
	if !ok {
		return
	}
	d, release, ok := h.dashboard(c)
	if !ok {
		return
	}
	defer release()
	response.OK(c, d.Day(date))
}

func (h *Handler) date(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return h.now(), true
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		response.BadRequest(c, "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return t, true
}
