package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/souramoo/calorie-counter-vibe/services"
	"github.com/souramoo/calorie-counter-vibe/stats"
	"github.com/souramoo/calorie-counter-vibe/utils"

	"github.com/gin-gonic/gin"
)

// MaxSeriesDays caps the number of points a series request may produce.
const MaxSeriesDays = 366

type EntryController struct {
	Entries *services.EntryService
	Stats   *services.StatsService
}

func NewEntryController(entries *services.EntryService, st *services.StatsService) *EntryController {
	return &EntryController{Entries: entries, Stats: st}
}

type CreateEntryInput struct {
	Date     string `json:"date" binding:"required"`
	Calories *int   `json:"calories" binding:"required,min=0"`
	Notes    string `json:"notes" binding:"max=500"`
}

type UpdateEntryInput struct {
	Date     *string `json:"date"`
	Calories *int    `json:"calories" binding:"omitempty,min=0"`
	Notes    *string `json:"notes" binding:"omitempty,max=500"`
}

type ListEntriesQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Limit     int    `form:"limit,default=30" binding:"min=1,max=100"`
	Page      int    `form:"page,default=1" binding:"min=1"`
}

type StatsQuery struct {
	Period string `form:"period" binding:"omitempty,oneof=day week month year"`
}

type SeriesQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Range     string `form:"range" binding:"omitempty,oneof=week month lastMonth"`
}

func fieldInvalid(c *gin.Context, field, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Validation Error",
		"details": []fieldError{{Field: field, Message: message}},
	})
}

func invalidDate(c *gin.Context, field string) {
	fieldInvalid(c, field, utils.ErrInvalidDate.Error())
}

func (h *EntryController) Create(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}

	var input CreateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidation(c, err)
		return
	}
	date, err := utils.ParseEntryDate(input.Date)
	if err != nil {
		invalidDate(c, "date")
		return
	}

	entry, err := h.Entries.Create(c.Request.Context(), uid, services.EntryInput{
		Date:     date,
		Calories: *input.Calories,
		Notes:    input.Notes,
	})
	if err != nil {
		respondError(c, err, "Error creating calorie entry")
		return
	}
	view := services.NewEntryView(entry)
	c.JSON(http.StatusCreated, gin.H{
		"id":        view.ID,
		"date":      view.Date,
		"calories":  view.Calories,
		"notes":     view.Notes,
		"createdAt": view.CreatedAt,
	})
}

func (h *EntryController) List(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}

	var q ListEntriesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondValidation(c, err)
		return
	}

	query := services.ListQuery{Page: q.Page, Limit: q.Limit}
	if q.StartDate != "" {
		from, err := utils.ParseISODate(q.StartDate)
		if err != nil {
			invalidDate(c, "startDate")
			return
		}
		query.From = &from
	}
	if q.EndDate != "" {
		to, err := utils.ParseISODate(q.EndDate)
		if err != nil {
			invalidDate(c, "endDate")
			return
		}
		// endDate covers the whole day
		to = stats.DayEnd(to)
		query.To = &to
	}

	page, err := h.Entries.List(c.Request.Context(), uid, query)
	if err != nil {
		respondError(c, err, "Error retrieving calorie entries")
		return
	}

	views := make([]services.EntryView, 0, len(page.Entries))
	for i := range page.Entries {
		views = append(views, services.NewEntryView(&page.Entries[i]))
	}
	c.JSON(http.StatusOK, gin.H{"entries": views, "pagination": page.Pagination})
}

func (h *EntryController) Get(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	entry, err := h.Entries.Get(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, err, "Error retrieving calorie entry")
		return
	}
	c.JSON(http.StatusOK, services.NewEntryView(entry))
}

func (h *EntryController) Update(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input UpdateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidation(c, err)
		return
	}

	patch := services.EntryPatch{Calories: input.Calories, Notes: input.Notes}
	if input.Date != nil {
		date, err := utils.ParseEntryDate(*input.Date)
		if err != nil {
			invalidDate(c, "date")
			return
		}
		patch.Date = &date
	}

	entry, err := h.Entries.Update(c.Request.Context(), uid, id, patch)
	if err != nil {
		respondError(c, err, "Error updating calorie entry")
		return
	}
	view := services.NewEntryView(entry)
	c.JSON(http.StatusOK, gin.H{
		"id":        view.ID,
		"date":      view.Date,
		"calories":  view.Calories,
		"notes":     view.Notes,
		"updatedAt": view.UpdatedAt,
	})
}

func (h *EntryController) Delete(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.Entries.Delete(c.Request.Context(), uid, id); err != nil {
		respondError(c, err, "Error deleting calorie entry")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EntryController) PeriodStats(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}

	var q StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondValidation(c, err)
		return
	}
	period, _ := stats.ParsePeriod(q.Period)

	result, err := h.Stats.PeriodStats(c.Request.Context(), uid, period)
	if err != nil {
		respondError(c, err, "Error calculating statistics")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *EntryController) Series(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}

	var q SeriesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondValidation(c, err)
		return
	}

	var start, end time.Time
	if q.StartDate != "" || q.EndDate != "" {
		var err error
		if start, err = utils.ParseEntryDate(q.StartDate); err != nil {
			invalidDate(c, "startDate")
			return
		}
		if end, err = utils.ParseEntryDate(q.EndDate); err != nil {
			invalidDate(c, "endDate")
			return
		}
	} else {
		start, end = stats.PresetRange(q.Range, h.Stats.Now())
	}
	if !start.After(end) && end.Sub(start) >= MaxSeriesDays*24*time.Hour {
		fieldInvalid(c, "endDate", fmt.Sprintf("date range must not exceed %d days", MaxSeriesDays))
		return
	}

	points, err := h.Stats.Series(c.Request.Context(), uid, start, end)
	if err != nil {
		respondError(c, err, "Error building calorie series")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"startDate": start.Format(stats.DateLayout),
		"endDate":   end.Format(stats.DateLayout),
		"points":    points,
	})
}
