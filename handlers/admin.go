package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	catalogRepo "slotify/database/repository/catalog"
	scheduleRepo "slotify/database/repository/schedule"
	"slotify/models"
	"slotify/utils"
)

// AdminHandler manages the catalog and schedule data the availability engine
// reads: services, agents, weekly rules, overrides and holidays.
type AdminHandler struct {
	Catalog  catalogRepo.CatalogRepository
	Schedule scheduleRepo.ScheduleRepository
	Logger   *zap.Logger
}

func NewAdminHandler(catalog catalogRepo.CatalogRepository, schedule scheduleRepo.ScheduleRepository, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Catalog: catalog, Schedule: schedule, Logger: logger}
}

// --- Services ---

func (h *AdminHandler) CreateService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if svc.Name == "" || svc.DurationMin <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "name and a positive durationMin are required")
		return
	}
	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	svc.CreatedAt = time.Now()
	if err := h.Catalog.CreateService(c.Request.Context(), &svc); err != nil {
		h.Logger.Error("service creation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create service", "")
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *AdminHandler) ListServices(c *gin.Context) {
	services, err := h.Catalog.ListServices(c.Request.Context())
	if err != nil {
		h.Logger.Error("service listing failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list services", "")
		return
	}
	if services == nil {
		services = []models.Service{}
	}
	c.JSON(http.StatusOK, services)
}

func (h *AdminHandler) UpdateService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	svc.ID = c.Param("id")
	if err := h.Catalog.UpdateService(c.Request.Context(), &svc); err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "service not found", "")
			return
		}
		h.Logger.Error("service update failed", zap.String("id", svc.ID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to update service", "")
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *AdminHandler) DeleteService(c *gin.Context) {
	h.deleteByID(c, h.Catalog.DeleteService, "service")
}

// --- Agents ---

func (h *AdminHandler) CreateAgent(c *gin.Context) {
	var agent models.Agent
	if err := c.ShouldBindJSON(&agent); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if agent.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "name is required")
		return
	}
	if agent.ID == "" {
		agent.ID = uuid.New().String()
	}
	agent.CreatedAt = time.Now()
	if err := h.Catalog.CreateAgent(c.Request.Context(), &agent); err != nil {
		h.Logger.Error("agent creation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create agent", "")
		return
	}
	c.JSON(http.StatusCreated, agent)
}

func (h *AdminHandler) ListAgents(c *gin.Context) {
	agents, err := h.Catalog.ListAgents(c.Request.Context())
	if err != nil {
		h.Logger.Error("agent listing failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list agents", "")
		return
	}
	if agents == nil {
		agents = []models.Agent{}
	}
	c.JSON(http.StatusOK, agents)
}

func (h *AdminHandler) UpdateAgent(c *gin.Context) {
	var agent models.Agent
	if err := c.ShouldBindJSON(&agent); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	agent.ID = c.Param("id")
	if err := h.Catalog.UpdateAgent(c.Request.Context(), &agent); err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "agent not found", "")
			return
		}
		h.Logger.Error("agent update failed", zap.String("id", agent.ID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to update agent", "")
		return
	}
	c.JSON(http.StatusOK, agent)
}

func (h *AdminHandler) DeleteAgent(c *gin.Context) {
	h.deleteByID(c, h.Catalog.DeleteAgent, "agent")
}

// LinkAgentService handles POST /api/admin/agents/:id/services/:serviceId,
// marking the agent as qualified for the service.
func (h *AdminHandler) LinkAgentService(c *gin.Context) {
	agentID, serviceID := c.Param("id"), c.Param("serviceId")
	if err := h.Catalog.LinkAgentService(c.Request.Context(), agentID, serviceID); err != nil {
		h.Logger.Error("agent-service link failed",
			zap.String("agentID", agentID), zap.String("serviceID", serviceID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to link agent and service", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"agentId": agentID, "serviceId": serviceID})
}

func (h *AdminHandler) UnlinkAgentService(c *gin.Context) {
	agentID, serviceID := c.Param("id"), c.Param("serviceId")
	if err := h.Catalog.UnlinkAgentService(c.Request.Context(), agentID, serviceID); err != nil {
		h.Logger.Error("agent-service unlink failed",
			zap.String("agentID", agentID), zap.String("serviceID", serviceID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to unlink agent and service", "")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Weekly schedule rules ---

func (h *AdminHandler) CreateRule(c *gin.Context) {
	var rule models.ScheduleRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if rule.AgentID == "" || rule.Weekday < 0 || rule.Weekday > 6 || rule.Start >= rule.End {
		utils.JSONError(c, http.StatusBadRequest, "invalid input",
			"agentId, weekday in [0,6] and start < end are required")
		return
	}
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	if err := h.Schedule.CreateRule(c.Request.Context(), &rule); err != nil {
		h.Logger.Error("rule creation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create schedule rule", "")
		return
	}
	c.JSON(http.StatusCreated, rule)
}

func (h *AdminHandler) DeleteRule(c *gin.Context) {
	h.deleteByID(c, h.Schedule.DeleteRule, "schedule rule")
}

func (h *AdminHandler) ListAgentRules(c *gin.Context) {
	agentID := c.Param("id")
	rules, err := h.Schedule.RulesForAgent(c.Request.Context(), agentID)
	if err != nil {
		h.Logger.Error("rule listing failed", zap.String("agentID", agentID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list schedule rules", "")
		return
	}
	if rules == nil {
		rules = []models.ScheduleRule{}
	}
	c.JSON(http.StatusOK, rules)
}

// --- Date overrides ---

func (h *AdminHandler) UpsertOverride(c *gin.Context) {
	var ov models.ScheduleOverride
	if err := c.ShouldBindJSON(&ov); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if ov.AgentID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "agentId is required")
		return
	}
	if _, err := time.Parse("2006-01-02", ov.Date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date must be YYYY-MM-DD")
		return
	}
	if ov.ID == "" {
		ov.ID = uuid.New().String()
	}
	if err := h.Schedule.UpsertOverride(c.Request.Context(), &ov); err != nil {
		h.Logger.Error("override upsert failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to save override", "")
		return
	}
	c.JSON(http.StatusOK, ov)
}

func (h *AdminHandler) DeleteOverride(c *gin.Context) {
	h.deleteByID(c, h.Schedule.DeleteOverride, "override")
}

// --- Holidays ---

func (h *AdminHandler) CreateHoliday(c *gin.Context) {
	var holiday models.Holiday
	if err := c.ShouldBindJSON(&holiday); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if _, err := time.Parse("2006-01-02", holiday.Date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date must be YYYY-MM-DD")
		return
	}
	if holiday.ID == "" {
		holiday.ID = uuid.New().String()
	}
	if err := h.Schedule.CreateHoliday(c.Request.Context(), &holiday); err != nil {
		h.Logger.Error("holiday creation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create holiday", "")
		return
	}
	c.JSON(http.StatusCreated, holiday)
}

func (h *AdminHandler) ListHolidays(c *gin.Context) {
	holidays, err := h.Schedule.ListHolidays(c.Request.Context())
	if err != nil {
		h.Logger.Error("holiday listing failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list holidays", "")
		return
	}
	if holidays == nil {
		holidays = []models.Holiday{}
	}
	c.JSON(http.StatusOK, holidays)
}

func (h *AdminHandler) DeleteHoliday(c *gin.Context) {
	h.deleteByID(c, h.Schedule.DeleteHoliday, "holiday")
}

func (h *AdminHandler) deleteByID(c *gin.Context, fn func(ctx context.Context, id string) error, kind string) {
	id := c.Param("id")
	if err := fn(c.Request.Context(), id); err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) || errors.Is(err, scheduleRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, kind+" not found", "")
			return
		}
		h.Logger.Error("delete failed", zap.String("kind", kind), zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete "+kind, "")
		return
	}
	c.Status(http.StatusNoContent)
}
