package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nzbill/backend/internal/httputil"
	"github.com/nzbill/backend/internal/models"
	"github.com/shopspring/decimal"
)

func RegisterProfileRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsProfile)
	r.GET("", GetProfile)
	r.PATCH("", UpdateProfile)
}

type ProfileEditable struct {
	Name    string          `json:"name" example:"มะลิ" default:""`     // Display name
	Balance decimal.Decimal `json:"balance" example:"5000" default:"0"` // Cash on hand
}

// model returns the database resource for the API representation of the editable fields
func (editable ProfileEditable) model() models.Profile {
	return models.Profile{
		Name:    editable.Name,
		Balance: editable.Balance,
	}
}

type Profile struct {
	models.DefaultModel
	ProfileEditable
}

func newProfile(model models.Profile) Profile {
	return Profile{
		DefaultModel: model.DefaultModel,
		ProfileEditable: ProfileEditable{
			Name:    model.Name,
			Balance: model.Balance,
		},
	}
}

type ProfileResponse struct {
	Error *string  `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
	Data  *Profile `json:"data"`                                                                // The resource
}

// currentProfile returns the profile for this instance, creating it on
// first access.
func currentProfile() (models.Profile, error) {
	var profile models.Profile
	err := models.DB.First(&profile).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		profile = models.Profile{Name: "", Balance: decimal.Zero}
		err = models.DB.Create(&profile).Error
	}

	return profile, err
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Profile
// @Success		204
// @Router			/v1/profile [options]
func OptionsProfile(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Get profile
// @Description	Returns the profile with the cash balance. The profile is created on first access.
// @Tags			Profile
// @Produce		json
// @Success		200	{object}	ProfileResponse
// @Failure		500	{object}	ProfileResponse
// @Router			/v1/profile [get]
func GetProfile(c *gin.Context) {
	profile, err := currentProfile()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	apiResource := newProfile(profile)
	c.JSON(http.StatusOK, ProfileResponse{Data: &apiResource})
}

// @Summary		Update profile
// @Description	Updates the profile, e.g. the cash balance. Only values to be updated need to be specified.
// @Tags			Profile
// @Accept			json
// @Produce		json
// @Success		200		{object}	ProfileResponse
// @Failure		400		{object}	ProfileResponse
// @Failure		500		{object}	ProfileResponse
// @Param			profile	body		ProfileEditable	true	"Profile"
// @Router			/v1/profile [patch]
func UpdateProfile(c *gin.Context) {
	profile, err := currentProfile()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, ProfileEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	// Bind the data for the patch
	var data ProfileEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&profile).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	apiResource := newProfile(profile)
	c.JSON(http.StatusOK, ProfileResponse{Data: &apiResource})
}
