package main

import (
	"time"

	"github.com/Zyron-Tech/church-pal/controller"
	"github.com/Zyron-Tech/church-pal/dao"
	_ "github.com/Zyron-Tech/church-pal/docs"
	"github.com/Zyron-Tech/church-pal/log"
	"github.com/Zyron-Tech/church-pal/service"
	"github.com/Zyron-Tech/church-pal/sms"
	"github.com/Zyron-Tech/church-pal/util"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// @title Campaign service HTTP API
// @description Bulk sms campaign service

// @contact.name Zyron Tech

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Error.Println(err)
	}
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	zap.ReplaceGlobals(logger)

	username := util.GetEnv("KUDI_USERNAME", "")
	apiKey := util.GetEnv("KUDI_API_KEY", "")
	if util.IsBlank(username) || util.IsBlank(apiKey) {
		log.Fatal("Missing KUDI_USERNAME or KUDI_API_KEY")
	}

	//create db client
	dbClient, err := dao.GetClient(util.GetEnv("DB_PATH", "campaigns.db"))
	if err != nil {
		log.Fatal(err)
	}

	//create gateway client
	gateway := sms.NewClient(sms.ClientConfig{
		ApiUrl:   util.GetEnv("KUDI_API_URL", "https://account.kudisms.net/api/?action=send-sms"),
		Username: username,
		ApiKey:   apiKey,
		Tps:      util.GetEnvAsInt("TRX_PER_SEC", 1),
	})

	resolver := sms.NewResolver(sms.ResolverConfig{Codes: sms.DefaultCodes()})

	throttle := time.Duration(util.GetEnvAsInt("THROTTLE_MS", 600)) * time.Millisecond
	runner := sms.NewRunner(resolver, throttle)

	campaignService := service.NewService(
		gateway,
		runner,
		dao.NewCampaignDao(dbClient),
		dao.NewDeliveryDao(dbClient),
		util.GetEnvAsInt("STATUS_STORE_DAYS", 7),
		util.GetEnvAsInt("SMS_MAX_LEN", 300),
		util.GetEnv("WEB_HOOK", ""),
		util.GetEnv("PHONE_MASK", "^234\\d{10}$"),
		util.GetEnv("COUNTRY_CODE", "234"),
	)

	//attach http handlers
	e := echo.New()
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.HideBanner = true
	e.Use(middleware.BodyLimit("16K"))

	bindRoutes(e, campaignService)

	//start http server
	log.Fatal(e.Start(":" + util.GetEnv("HTTP_PORT", "8080")))
}

func bindRoutes(e *echo.Echo, service service.Service) {

	e.POST("/campaigns", controller.GetSendCampaignFunc(service))

	e.GET("/campaigns/:ref", controller.GetCheckCampaignFunc(service))

	e.POST("/campaigns/:ref/retry", controller.GetRetryCampaignFunc(service))
}
