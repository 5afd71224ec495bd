package service

import (
	"bytes"
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Zyron-Tech/church-pal/dao"
	"github.com/Zyron-Tech/church-pal/model"
	"github.com/Zyron-Tech/church-pal/service/dto"
	"github.com/Zyron-Tech/church-pal/sms"
	"github.com/Zyron-Tech/church-pal/util"
	"github.com/dchest/uniuri"
	"go.uber.org/zap"
)

type InvalidPayloadErr struct {
	message string
}

func (e *InvalidPayloadErr) Error() string {
	return e.message
}

func NewInvalidPayloadError(msg string) *InvalidPayloadErr {
	return &InvalidPayloadErr{message: msg}
}

type Service interface {
	SendCampaign(campaign dto.Campaign) (dto.Ref, error)
	CheckCampaign(ref string) (dto.CampaignStatus, error)
	RetryFailed(ref string) (dto.Ref, error)
}

type service struct {
	gateway         sms.Client
	runner          sms.Runner
	campaignDao     dao.CampaignDao
	deliveryDao     dao.DeliveryDao
	httpClient      *http.Client
	statusStoreDays int
	messageMaxLen   int
	webhook         string
	phoneRx         *regexp.Regexp
	countryCode     string
}

func NewService(gateway sms.Client, runner sms.Runner, campaignDao dao.CampaignDao, deliveryDao dao.DeliveryDao, statusStoreDays, messageMaxLen int, webhook, phoneMask, countryCode string) Service {
	service := &service{
		gateway:         gateway,
		runner:          runner,
		campaignDao:     campaignDao,
		deliveryDao:     deliveryDao,
		statusStoreDays: statusStoreDays,
		messageMaxLen:   messageMaxLen,
		webhook:         webhook,
		phoneRx:         regexp.MustCompile(phoneMask),
		countryCode:     countryCode,
		httpClient:      &http.Client{Timeout: 10 * time.Second},
	}

	go service.WatchDeliveries()
	go service.CleanupDb()

	return service
}

func (s *service) CleanupDb() {
	for {
		err := s.campaignDao.RemoveOlderThanDays(s.statusStoreDays)
		if err != nil {
			zap.L().Warn("Error cleaning up campaigns", zap.Error(err))
		}
		err = s.deliveryDao.RemoveOlderThanDays(s.statusStoreDays)
		if err != nil {
			zap.L().Warn("Error cleaning up deliveries", zap.Error(err))
		}
		time.Sleep(time.Hour)
	}
}

//WatchDeliveries logs per-recipient progress as the runner resolves attempts
func (s *service) WatchDeliveries() {
	for msg := range s.runner.Subscribe() {
		delivery, ok := msg.(sms.Delivery)
		if !ok {
			continue
		}
		zap.L().Info("Delivery resolved",
			zap.String("phone", delivery.Recipient.Phone),
			zap.String("status", string(delivery.Outcome.Status)),
			zap.String("code", delivery.Outcome.Code))
	}
}

func (s *service) SendCampaign(campaign dto.Campaign) (dto.Ref, error) {

	//overall campaign validation
	if strings.TrimSpace(campaign.Text) == "" || strings.TrimSpace(campaign.Sender) == "" || len(campaign.Phones) == 0 {
		return dto.Ref{}, NewInvalidPayloadError("Invalid campaign ")
	}

	//check max length of sms
	if len([]rune(campaign.Text)) > s.messageMaxLen {
		return dto.Ref{}, NewInvalidPayloadError("Message too long. Must be <= " + strconv.Itoa(s.messageMaxLen) + " symbols in length")
	}

	//normalize phones, check format and remove duplicates keeping submit order
	seen := make(map[string]bool)
	recipients := []sms.Recipient{}
	for _, phone := range campaign.Phones {
		normalized := util.NormalizePhone(phone, s.countryCode)
		if !s.phoneRx.MatchString(normalized) {
			return dto.Ref{}, NewInvalidPayloadError("Invalid phone " + phone)
		}
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		recipients = append(recipients, sms.Recipient{Phone: normalized})
	}

	return s.startCampaign(campaign.Sender, campaign.Text, recipients)
}

func (s *service) startCampaign(sender, text string, recipients []sms.Recipient) (dto.Ref, error) {
	ref := uniuri.NewLen(10)

	campaignId, err := s.campaignDao.Create(ref, text, sender)
	if err != nil {
		return dto.Ref{}, err
	}

	for _, recipient := range recipients {
		_, err := s.deliveryDao.Create(campaignId, recipient.Phone, recipient.Name)
		if err != nil {
			return dto.Ref{}, err
		}
	}

	go s.runCampaign(model.Campaign{Id: campaignId, Ref: ref, Sender: sender, Text: text}, recipients)

	return dto.Ref{Ref: ref}, nil
}

func (s *service) runCampaign(campaign model.Campaign, recipients []sms.Recipient) {
	send := func(recipient sms.Recipient) (sms.RawResponse, error) {
		return s.gateway.SendMessage(campaign.Sender, recipient.Phone, campaign.Text)
	}

	report := s.runner.Run(recipients, send)

	for _, delivery := range report.Deliveries {
		err := s.deliveryDao.UpdateOutcome(campaign.Id, delivery.Recipient.Phone,
			deliveryStatus(delivery.Outcome), delivery.Outcome.Code, delivery.Outcome.Detail)
		if err != nil {
			zap.L().Error("Error updating delivery outcome", zap.Error(err))
		}
	}

	zap.L().Info("Campaign finished",
		zap.String("ref", campaign.Ref),
		zap.Int("success", report.SuccessCount),
		zap.Int("failed", report.FailureCount),
		zap.Int("total", report.Total))

	s.notifyWebhook(campaign.Ref)
}

func deliveryStatus(outcome sms.Outcome) string {
	switch outcome.Status {
	case sms.StatusSuccess:
		return model.SUCCESS
	case sms.StatusTransportError:
		return model.TRANSPORT_ERR
	default:
		return model.FAILED
	}
}

func (s *service) notifyWebhook(ref string) {
	if util.IsBlank(s.webhook) {
		return
	}

	status, err := s.CheckCampaign(ref)
	if err != nil {
		zap.L().Error("Error checking campaign status", zap.Error(err))
		return
	}

	statusBytes, err := json.Marshal(status)
	if err != nil {
		zap.L().Error("Error encoding campaign status", zap.Error(err))
		return
	}

	req, err := http.NewRequest("POST", s.webhook, bytes.NewBuffer(statusBytes))
	if err != nil {
		zap.L().Error("Error calling web hook", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		zap.L().Error("Error calling web hook", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if !(resp.StatusCode >= 200 && resp.StatusCode <= 202) {
		zap.L().Warn("Webhook returned unexpected status", zap.String("status", resp.Status))
	}
}

func (s *service) CheckCampaign(ref string) (dto.CampaignStatus, error) {
	campaign, err := s.campaignDao.GetOneByRef(ref)
	if err != nil {
		return dto.CampaignStatus{}, err
	}
	deliveries, err := s.deliveryDao.GetAllByCampaignId(campaign.Id)
	if err != nil {
		return dto.CampaignStatus{}, err
	}

	status := dto.CampaignStatus{
		Ref:    campaign.Ref,
		Sender: campaign.Sender,
		Text:   campaign.Text,
		Total:  len(deliveries),
	}
	deliveryStatuses := []dto.DeliveryStatus{}
	for _, delivery := range deliveries {
		deliveryStatuses = append(deliveryStatuses, dto.DeliveryStatus{
			Phone:  delivery.Phone,
			Status: delivery.Status,
			Code:   delivery.Code,
			Detail: delivery.Detail,
		})
		switch delivery.Status {
		case model.SUCCESS:
			status.SuccessCount++
		case model.FAILED, model.TRANSPORT_ERR:
			status.FailureCount++
		}
	}
	status.Deliveries = deliveryStatuses

	return status, nil
}

func (s *service) RetryFailed(ref string) (dto.Ref, error) {
	campaign, err := s.campaignDao.GetOneByRef(ref)
	if err != nil {
		return dto.Ref{}, err
	}

	failed, err := s.deliveryDao.GetAllByCampaignIdAndStatus(campaign.Id, model.FAILED, model.TRANSPORT_ERR)
	if err != nil {
		return dto.Ref{}, err
	}
	if len(failed) == 0 {
		return dto.Ref{}, NewInvalidPayloadError("No failed deliveries in campaign " + ref)
	}

	recipients := []sms.Recipient{}
	for _, delivery := range failed {
		recipients = append(recipients, sms.Recipient{Phone: delivery.Phone, Name: delivery.Name})
	}

	return s.startCampaign(campaign.Sender, campaign.Text, recipients)
}
