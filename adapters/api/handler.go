package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"trialsize/domain/core"
	"trialsize/domain/samplesize"
	"trialsize/internal"
	"trialsize/internal/errors"
	"trialsize/models"
	"trialsize/ports"
)

// maxScenarios bounds one batch request
const maxScenarios = 500

// CalculationHandler handles calculator requests
type CalculationHandler struct {
	calculator   ports.CalculatorPort
	scenarios    ports.ScenarioReaderPort // optional
	scenarioName string
	logger       *internal.Logger
}

// NewCalculationHandler creates a new calculation handler
func NewCalculationHandler(calculator ports.CalculatorPort, logger *internal.Logger) *CalculationHandler {
	return &CalculationHandler{
		calculator: calculator,
		logger:     logger,
	}
}

// GetFields returns the input metadata in form order
func (h *CalculationHandler) GetFields(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"fields":              h.calculator.Fields(),
		"criticalValueSource": h.calculator.CriticalValueSource(),
	})
}

// GetDefaults returns the default inputs as text
func (h *CalculationHandler) GetDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, h.calculator.Defaults())
}

// GetReferences returns the caveats and bibliography
func (h *CalculationHandler) GetReferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.calculator.References())
}

// CreateCalculation runs one calculation. Omitted fields take defaults.
func (h *CalculationHandler) CreateCalculation(c *gin.Context) {
	var req models.CalculationRequest
	if err := decodeBody(c.Request.Body, &req); err != nil {
		h.writeError(c, errors.InvalidInput(err.Error()))
		return
	}
	if unknown := req.Unknown(); len(unknown) > 0 {
		h.writeError(c, errors.InvalidInput("unknown fields: "+strings.Join(unknown, ", ")))
		return
	}

	calc, err := h.calculator.Calculate(c.Request.Context(), req.Raw())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewCalculationResponse(calc))
}

// CreateScenarios runs a batch of what-if rows; per-row failures are reported
// in the outcomes and do not fail the request
func (h *CalculationHandler) CreateScenarios(c *gin.Context) {
	var reqs []models.ScenarioRequest
	if err := decodeBody(c.Request.Body, &reqs); err != nil {
		h.writeError(c, errors.InvalidInput(err.Error()))
		return
	}
	if len(reqs) == 0 {
		h.writeError(c, errors.InvalidInput("at least one scenario is required"))
		return
	}
	if len(reqs) > maxScenarios {
		h.writeError(c, errors.InvalidInput(fmt.Sprintf("at most %d scenarios per request", maxScenarios)))
		return
	}

	scenarios := make([]models.Scenario, 0, len(reqs))
	for i, r := range reqs {
		if unknown := r.Parameters.Unknown(); len(unknown) > 0 {
			h.writeError(c, errors.InvalidInput(fmt.Sprintf("scenario %d: unknown fields: %s", i+1, strings.Join(unknown, ", "))))
			return
		}
		id, err := core.ParseScenarioID(r.ID)
		if err != nil {
			id = core.ScenarioID(fmt.Sprintf("scenario-%d", i+1))
		}
		scenarios = append(scenarios, models.Scenario{ID: id, Row: i + 1, Raw: r.Parameters.Raw()})
	}

	h.respondSweep(c, "request", scenarios)
}

// ListWorkbookScenarios evaluates the configured scenario workbook. The file is
// read on every request so edits show up without a restart.
func (h *CalculationHandler) ListWorkbookScenarios(c *gin.Context) {
	if h.scenarios == nil {
		h.writeError(c, errors.NotFound("scenario workbook"))
		return
	}

	scenarios, err := h.scenarios.ReadScenarios(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.respondSweep(c, h.scenarioName, scenarios)
}

func (h *CalculationHandler) respondSweep(c *gin.Context, source string, scenarios []models.Scenario) {
	report, err := h.calculator.Sweep(c.Request.Context(), source, scenarios)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewSweepResponse(report))
}

// decodeBody reads a JSON body; an empty body leaves v untouched
func decodeBody(body io.Reader, v interface{}) error {
	if body == nil {
		return nil
	}
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// writeError maps an application error onto a status and the JSON envelope
func (h *CalculationHandler) writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)

	resp := models.ErrorResponse{Error: err.Error(), Code: code}
	if verr, ok := samplesize.AsValidationError(err); ok {
		resp.Fields = verr.Fields
		resp.Error = "invalid parameters"
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("[API] %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	if code == errors.CodeInternalError || code == "UNKNOWN" {
		resp.Error = "internal error"
		resp.Code = errors.CodeInternalError
	}

	c.AbortWithStatusJSON(status, resp)
}

func statusFor(code string) int {
	switch code {
	case errors.CodeValidationError, errors.CodeNonFiniteResult:
		return http.StatusUnprocessableEntity
	case errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
