package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/akinalp/quill/models"
	"github.com/akinalp/quill/pkg"
	"github.com/akinalp/quill/services"
)

// ScriptHandler, template'e script enjeksiyonu endpoint'i.
type ScriptHandler struct {
	scriptService services.ScriptService
}

// NewScriptHandler, constructor.
func NewScriptHandler(scriptService services.ScriptService) *ScriptHandler {
	return &ScriptHandler{scriptService: scriptService}
}

type statusMessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// AddScript godoc
// POST /api/add-script
// Body: { "script": "...", "pin": "...", "position": "head" | "body" }
//
// 4xx hatalar { "error": ... }, dosya hataları { "status": "error", "message": ... } döner.
func (h *ScriptHandler) AddScript(w http.ResponseWriter, r *http.Request) {
	var req models.AddScriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.scriptService.AddScript(r.Context(), &req); err != nil {
		if status := pkg.StatusFor(err); status < http.StatusInternalServerError {
			pkg.ErrorWithMessage(w, status, pkg.PublicMessage(err))
			return
		}
		log.Printf("[script] add-script failed: %v", err)
		pkg.JSON(w, http.StatusInternalServerError, statusMessageResponse{
			Status:  "error",
			Message: "Failed to update index.html",
		})
		return
	}

	pkg.JSON(w, http.StatusOK, statusMessageResponse{
		Status:  "success",
		Message: "Script added successfully.",
	})
}
