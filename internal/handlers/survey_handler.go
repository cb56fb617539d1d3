package handlers

import (
	"errors"
	"net/http"

	"github.com/SAP-F-2025/survey-service/internal/services"
	"github.com/SAP-F-2025/survey-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	msgSubmitted        = "Survey submitted successfully!"
	msgDeclined         = "Thank you for letting us know."
	msgSubmitFailed     = "Failed to submit survey. Please try again."
	msgSubmitInvalid    = "Please answer all required questions."
	msgSubmitDuplicated = "This survey has already been submitted."
)

type SurveyHandler struct {
	BaseHandler
	service services.SurveyService
}

func NewSurveyHandler(service services.SurveyService, logger utils.Logger) *SurveyHandler {
	return &SurveyHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// SubmissionResponse is what the survey form receives after posting
type SubmissionResponse struct {
	Success bool                      `json:"success"`
	Message string                    `json:"message"`
	Errors  services.ValidationErrors `json:"errors,omitempty"`
}

// SubmitResponse handles POST /survey/responses
// @Summary Submit a survey response
// @Description Stores one anonymous session's answers. Declining consent only requires a reason.
// @Tags survey
// @Accept json
// @Produce json
// @Param request body services.SubmitResponseRequest true "Survey answers"
// @Success 201 {object} SubmissionResponse
// @Failure 400 {object} SubmissionResponse
// @Failure 409 {object} SubmissionResponse
// @Failure 503 {object} SubmissionResponse
// @Router /survey/responses [post]
func (h *SurveyHandler) SubmitResponse(c *gin.Context) {
	var req services.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.LogWarn(c, "Invalid survey payload", "error", err)
		c.JSON(http.StatusBadRequest, SubmissionResponse{Success: false, Message: msgSubmitInvalid})
		return
	}

	result, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		status, _ := statusForError(err)
		resp := SubmissionResponse{Success: false, Message: msgSubmitFailed}

		switch status {
		case http.StatusBadRequest:
			resp.Message = msgSubmitInvalid
			var errs services.ValidationErrors
			if errors.As(err, &errs) {
				resp.Errors = errs
			}
		case http.StatusConflict:
			resp.Message = msgSubmitDuplicated
		default:
			h.LogError(c, err, "Survey submission failed", "status_code", status)
		}

		c.JSON(status, resp)
		return
	}

	message := msgSubmitted
	if !result.Consented {
		message = msgDeclined
	}
	c.JSON(http.StatusCreated, SubmissionResponse{Success: true, Message: message})
}

// GetSurvey handles GET /survey
// @Summary Get the survey definition
// @Tags survey
// @Produce json
// @Success 200 {object} services.SurveyDefinition
// @Router /survey [get]
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.GetDefinition(c.Request.Context()))
}
