package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nzbill/backend/internal/httputil"
	"github.com/nzbill/backend/internal/models"
	"github.com/nzbill/backend/internal/orchestrator"
)

func RegisterGenerationRoutes(r *gin.RouterGroup, runner *orchestrator.Runner) {
	r.OPTIONS("", OptionsGeneration)
	r.GET("", GetGeneration(runner))
	r.POST("", TriggerGeneration(runner))
}

type GenerationState struct {
	State string `json:"state" enums:"idle,waiting,generating,done" example:"done"` // State of the generation runner for this session
}

type GenerationStateResponse struct {
	Data GenerationState `json:"data"` // The generation state
}

type GenerationRun struct {
	RunID string `json:"runId" example:"run_1735689600000_k3j9ts28b"`               // Identifier of the run, empty if nothing ran
	State string `json:"state" enums:"idle,waiting,generating,done" example:"done"` // State of the runner after the trigger
	Bills []Bill `json:"bills"`                                                     // Bills persisted by this run
}

type GenerationRunResponse struct {
	Error *string        `json:"error" example:"a generation run is already in progress"` // The error, if any occurred
	Data  *GenerationRun `json:"data"`                                                    // The run result
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Generation
// @Success		204
// @Router			/v1/generation [options]
func OptionsGeneration(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Generation state
// @Description	Returns the state of the recurring bill generation for this session
// @Tags			Generation
// @Produce		json
// @Success		200	{object}	GenerationStateResponse
// @Router			/v1/generation [get]
func GetGeneration(runner *orchestrator.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, GenerationStateResponse{
			Data: GenerationState{State: string(runner.State())},
		})
	}
}

// @Summary		Trigger generation
// @Description	Materializes the bills for the current month from the active recurring expense templates. Runs at most once per session, repeated calls are no-ops. Concurrent calls are rejected.
// @Tags			Generation
// @Produce		json
// @Success		201	{object}	GenerationRunResponse
// @Failure		409	{object}	GenerationRunResponse
// @Failure		500	{object}	GenerationRunResponse
// @Router			/v1/generation [post]
func TriggerGeneration(runner *orchestrator.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := runner.Run(models.DB, time.Now())
		if err != nil {
			e := err.Error()

			if errors.Is(err, orchestrator.ErrGenerationInProgress) {
				c.JSON(http.StatusConflict, GenerationRunResponse{Error: &e})
				return
			}

			c.JSON(status(err), GenerationRunResponse{Error: &e})
			return
		}

		bills := make([]Bill, 0, len(result.Created))
		for _, bill := range result.Created {
			bills = append(bills, newBill(c, bill))
		}

		run := GenerationRun{
			RunID: result.RunID,
			State: string(result.State),
			Bills: bills,
		}

		response := GenerationRunResponse{Data: &run}

		// A failed create does not abort the run, report it alongside
		// the bills that were persisted
		httpStatus := http.StatusCreated
		if result.Err != nil {
			e := result.Err.Error()
			response.Error = &e
			httpStatus = status(result.Err)
		}

		c.JSON(httpStatus, response)
	}
}
