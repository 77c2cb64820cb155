package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/eventgenie/internal/domain/booking"
	"github.com/BruksfildServices01/eventgenie/internal/httperr"
	"github.com/BruksfildServices01/eventgenie/internal/httpresp"
	"github.com/BruksfildServices01/eventgenie/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// AuditLogQuery narrows the admin audit trail. From and To are inclusive
// calendar dates.
type AuditLogQuery struct {
	Action    string `form:"action"`
	Entity    string `form:"entity"`
	EntityID  string `form:"entityId"`
	ActorID   string `form:"actorId"`
	ActorRole string `form:"actorRole"`
	From      string `form:"from"`
	To        string `form:"to"`
}

func (q AuditLogQuery) apply(db *gorm.DB) *gorm.DB {
	for column, value := range map[string]string{
		"action":     q.Action,
		"entity":     q.Entity,
		"entity_id":  q.EntityID,
		"actor_id":   q.ActorID,
		"actor_role": q.ActorRole,
	} {
		if value != "" {
			db = db.Where(column+" = ?", value)
		}
	}
	if q.From != "" {
		db = db.Where("created_at >= ?", dayStart(q.From))
	}
	if q.To != "" {
		db = db.Where("created_at < ?", dayStart(q.To).Add(24*time.Hour))
	}
	return db
}

// dayStart expects a date already checked with domain.ValidDate.
func dayStart(date string) time.Time {
	t, _ := time.Parse(domain.DateLayout, date)
	return t
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	var query AuditLogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	for _, d := range []string{query.From, query.To} {
		if d != "" && !domain.ValidDate(d) {
			httperr.Respond(c, domain.InvalidDate(d))
			return
		}
	}

	paging := httpresp.PagingFrom(c)
	q := query.apply(h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{}))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(paging.Limit).
		Offset(paging.Offset()).
		Find(&logs).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, paging, total, logs)
}
