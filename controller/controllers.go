package controller

import (
	"net/http"

	"github.com/Zyron-Tech/church-pal/log"
	"github.com/Zyron-Tech/church-pal/service"
	"github.com/Zyron-Tech/church-pal/service/dto"
	"github.com/labstack/echo/v4"
)

// SendCampaign godoc
// @Summary Send campaign
// @Description Sends sms message to specified phones
// @Accept json
// @Produce json
// @Param campaign body dto.Campaign true "Campaign"
// @Success 200 {object} dto.Ref
// @Failure 400 "error description"
// @Router /campaigns [post]
func GetSendCampaignFunc(srv service.Service) echo.HandlerFunc {

	return func(c echo.Context) error {
		campaign := new(dto.Campaign)
		if err := c.Bind(campaign); err != nil {
			return err
		}

		ref, err := srv.SendCampaign(*campaign)
		if err != nil {
			switch err.(type) {
			case *service.InvalidPayloadErr:
				return c.String(http.StatusBadRequest, err.Error())
			default:
				log.Error.Println(err)
				return c.String(http.StatusInternalServerError, "System malfunction. Please, try later")
			}
		}

		return c.JSON(http.StatusOK, ref)
	}
}

// CheckCampaign godoc
// @Summary Check campaign
// @Description Checks campaign delivery report
// @Produce json
// @Param ref path string true "Campaign ref"
// @Success 200 {object} dto.CampaignStatus
// @Failure 404 "error description"
// @Router /campaigns/{ref} [get]
func GetCheckCampaignFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		ref := c.Param("ref")

		status, err := srv.CheckCampaign(ref)
		if err != nil {
			if err.Error() == "not found" {
				return c.String(http.StatusNotFound, "Campaign not found "+ref)
			}
			log.Error.Println(err)
			return c.String(http.StatusInternalServerError, "System malfunction. Please, try later")
		}

		return c.JSON(http.StatusOK, status)
	}
}

// RetryCampaign godoc
// @Summary Retry failed deliveries
// @Description Resends the campaign message to recipients whose delivery failed
// @Produce json
// @Param ref path string true "Campaign ref"
// @Success 200 {object} dto.Ref
// @Failure 400 "error description"
// @Failure 404 "error description"
// @Router /campaigns/{ref}/retry [post]
func GetRetryCampaignFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		ref := c.Param("ref")

		newRef, err := srv.RetryFailed(ref)
		if err != nil {
			switch err.(type) {
			case *service.InvalidPayloadErr:
				return c.String(http.StatusBadRequest, err.Error())
			default:
				if err.Error() == "not found" {
					return c.String(http.StatusNotFound, "Campaign not found "+ref)
				}
				log.Error.Println(err)
				return c.String(http.StatusInternalServerError, "System malfunction. Please, try later")
			}
		}

		return c.JSON(http.StatusOK, newRef)
	}
}
