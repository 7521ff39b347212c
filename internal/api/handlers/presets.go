package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"consumption-solver/internal/api/models"
	"consumption-solver/internal/preset"
)

// PresetsHandler serves the preset parameterizations
type PresetsHandler struct {
	presets *preset.PresetList
}

// NewPresetsHandler creates a new presets handler
func NewPresetsHandler(presets *preset.PresetList) *PresetsHandler {
	if presets == nil {
		presets = preset.Available("")
	}
	return &PresetsHandler{presets: presets}
}

// ListPresets handles GET /api/v1/presets
func (h *PresetsHandler) ListPresets(c *gin.Context) {
	out := make([]models.PresetInfo, len(h.presets.Presets))
	for i, p := range h.presets.Presets {
		out[i] = models.PresetInfo{
			Name:        p.Name,
			Description: p.Description,
			CRRA:        p.CRRA,
			DiscFac:     p.DiscFac,
			LivPrb:      p.LivPrb,
			Rfree:       p.Rfree,
			PermGroFac:  p.PermGroFac,
			BoroCnstArt: p.BoroCnstArt,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"presets":    out,
		"updated_at": h.presets.UpdatedAt,
		"count":      len(out),
	})
}
