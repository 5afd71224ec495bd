package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"testing"
	"time"

	"github.com/Zyron-Tech/church-pal/model"
	"github.com/Zyron-Tech/church-pal/service/dto"
	"github.com/Zyron-Tech/church-pal/sms"
	"github.com/stretchr/testify/require"
)

const (
	STATUS_STORE_DAYS int    = 7
	MSG_MAX_LEN              = 300
	CAMPAIGN_ID       uint32 = 123
	REF                      = "a1b2c3d4e5"
	SENDER                   = "ChurchBot"
	TEXT                     = "Service starts at 9am"
	PHONE                    = "2348031112222"
	PHONE2                   = "2348033334444"
	PHONE_MASK               = "^234\\d{10}$"
	COUNTRY_CODE             = "234"
	JSON_CAMPAIGN            = `{"ref":"a1b2c3d4e5","sender":"ChurchBot","text":"Service starts at 9am","successCount":1,"failureCount":1,"total":2,"deliveries":[{"phone":"2348031112222","status":"SUCCESS","code":"000","detail":"OK=1234"},{"phone":"2348033334444","status":"FAILED","code":"107","detail":"Too many recipients"}]}`
)

var (
	createdDeliveries       []string
	updatedOutcomes         map[string]string
	cleanupCampaignsCalled  bool
	cleanupDeliveriesCalled bool
	failedDeliveries        []model.Delivery
)

type mockCampaignDao struct {
	notFound bool
}

func (m mockCampaignDao) Create(ref, text, sender string) (uint32, error) {
	return CAMPAIGN_ID, nil
}

func (m mockCampaignDao) GetOneById(id uint32) (model.Campaign, error) {
	return model.Campaign{Id: CAMPAIGN_ID, Ref: REF, Sender: SENDER, Text: TEXT}, nil
}

func (m mockCampaignDao) GetOneByRef(ref string) (model.Campaign, error) {
	if m.notFound {
		return model.Campaign{}, errors.New("not found")
	}
	return model.Campaign{Id: CAMPAIGN_ID, Ref: REF, Sender: SENDER, Text: TEXT}, nil
}

func (m mockCampaignDao) GetAll() ([]model.Campaign, error) {
	return nil, nil
}

func (m mockCampaignDao) RemoveOlderThanDays(days int) error {
	cleanupCampaignsCalled = true
	return nil
}

type mockDeliveryDao struct {
}

func (m mockDeliveryDao) Create(campaignId uint32, phone, name string) (uint32, error) {
	createdDeliveries = append(createdDeliveries, phone)
	return uint32(len(createdDeliveries)), nil
}

func (m mockDeliveryDao) UpdateOutcome(campaignId uint32, phone, status, code, detail string) error {
	updatedOutcomes[phone] = status
	return nil
}

func (m mockDeliveryDao) GetOneByCampaignIdAndPhone(campaignId uint32, phone string) (model.Delivery, error) {
	return model.Delivery{CampaignId: campaignId, Phone: phone}, nil
}

func (m mockDeliveryDao) GetAllByCampaignId(campaignId uint32) ([]model.Delivery, error) {
	return []model.Delivery{
		{Id: 1, CampaignId: campaignId, Phone: PHONE, Status: model.SUCCESS, Code: "000", Detail: "OK=1234", CreatedAt: time.Now()},
		{Id: 2, CampaignId: campaignId, Phone: PHONE2, Status: model.FAILED, Code: "107", Detail: "Too many recipients", CreatedAt: time.Now()},
	}, nil
}

func (m mockDeliveryDao) GetAllByCampaignIdAndStatus(campaignId uint32, statuses ...string) ([]model.Delivery, error) {
	return failedDeliveries, nil
}

func (m mockDeliveryDao) GetAll() ([]model.Delivery, error) {
	return nil, nil
}

func (m mockDeliveryDao) RemoveOlderThanDays(days int) error {
	cleanupDeliveriesCalled = true
	return nil
}

type mockGateway struct {
	body string
}

func (m mockGateway) SendMessage(sender, phone, text string) (sms.RawResponse, error) {
	return sms.RawResponse{StatusCode: 200, Body: m.body}, nil
}

//mockRunner resolves synchronously and without throttling
type mockRunner struct {
	resolver sms.Resolver
}

func (m mockRunner) Run(recipients []sms.Recipient, send sms.SendFunc) sms.DeliveryReport {
	report := sms.DeliveryReport{Total: len(recipients)}
	for _, recipient := range recipients {
		raw, err := send(recipient)
		outcome := sms.Outcome{Status: sms.StatusTransportError}
		if err == nil {
			outcome = m.resolver.Resolve(raw)
		}
		report.Deliveries = append(report.Deliveries, sms.Delivery{Recipient: recipient, Outcome: outcome})
		if outcome.Succeeded() {
			report.SuccessCount++
		}
	}
	report.FailureCount = report.Total - report.SuccessCount
	return report
}

func (m mockRunner) Subscribe() chan interface{} {
	return make(chan interface{})
}

func (m mockRunner) Close() {
}

func newTestService(gateway sms.Client) Service {
	createdDeliveries = nil
	updatedOutcomes = make(map[string]string)
	runner := mockRunner{resolver: sms.NewResolver(sms.ResolverConfig{})}
	return NewService(gateway, runner, mockCampaignDao{}, mockDeliveryDao{}, STATUS_STORE_DAYS, MSG_MAX_LEN, "", PHONE_MASK, COUNTRY_CODE)
}

func TestService_SendCampaign(t *testing.T) {
	service := newTestService(mockGateway{body: "OK"})

	ref, err := service.SendCampaign(dto.Campaign{
		Sender: SENDER,
		Text:   TEXT,
		Phones: []string{PHONE, PHONE2},
	})

	require.NoError(t, err)
	require.NotEmpty(t, ref.Ref)
	require.Equal(t, []string{PHONE, PHONE2}, createdDeliveries)

	time.Sleep(time.Millisecond * 100)

	require.Equal(t, model.SUCCESS, updatedOutcomes[PHONE])
	require.Equal(t, model.SUCCESS, updatedOutcomes[PHONE2])
	require.True(t, cleanupCampaignsCalled)
	require.True(t, cleanupDeliveriesCalled)
}

func TestService_SendCampaignRecordsFailures(t *testing.T) {
	service := newTestService(mockGateway{body: "107"})

	_, err := service.SendCampaign(dto.Campaign{
		Sender: SENDER,
		Text:   TEXT,
		Phones: []string{PHONE},
	})

	require.NoError(t, err)

	time.Sleep(time.Millisecond * 100)

	require.Equal(t, model.FAILED, updatedOutcomes[PHONE])
}

func TestService_SendCampaignNormalizesAndDedups(t *testing.T) {
	service := newTestService(mockGateway{body: "OK"})

	_, err := service.SendCampaign(dto.Campaign{
		Sender: SENDER,
		Text:   TEXT,
		Phones: []string{"0803 111 2222", PHONE, "+234-803-111-2222"},
	})

	require.NoError(t, err)
	require.Equal(t, []string{PHONE}, createdDeliveries)
}

func TestService_SendCampaignValidation(t *testing.T) {
	service := newTestService(mockGateway{body: "OK"})

	_, err := service.SendCampaign(dto.Campaign{Sender: SENDER, Text: " ", Phones: []string{PHONE}})
	require.IsType(t, &InvalidPayloadErr{}, err)

	_, err = service.SendCampaign(dto.Campaign{Sender: " ", Text: TEXT, Phones: []string{PHONE}})
	require.IsType(t, &InvalidPayloadErr{}, err)

	_, err = service.SendCampaign(dto.Campaign{Sender: SENDER, Text: TEXT})
	require.IsType(t, &InvalidPayloadErr{}, err)

	_, err = service.SendCampaign(dto.Campaign{Sender: SENDER, Text: TEXT, Phones: []string{"12345"}})
	require.IsType(t, &InvalidPayloadErr{}, err)

	long := make([]rune, MSG_MAX_LEN+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = service.SendCampaign(dto.Campaign{Sender: SENDER, Text: string(long), Phones: []string{PHONE}})
	require.IsType(t, &InvalidPayloadErr{}, err)
}

func TestService_CheckCampaign(t *testing.T) {
	service := newTestService(mockGateway{body: "OK"})

	status, err := service.CheckCampaign(REF)

	require.NoError(t, err)
	require.NotEmpty(t, status)

	b, err := json.Marshal(status)
	if err != nil {
		t.Error(err)
	}

	require.JSONEq(t, JSON_CAMPAIGN, string(b))
}

func TestService_RetryFailed(t *testing.T) {
	failedDeliveries = []model.Delivery{
		{Id: 2, CampaignId: CAMPAIGN_ID, Phone: PHONE2, Status: model.FAILED, Code: "107"},
	}
	service := newTestService(mockGateway{body: "OK"})

	ref, err := service.RetryFailed(REF)

	require.NoError(t, err)
	require.NotEmpty(t, ref.Ref)
	require.Equal(t, []string{PHONE2}, createdDeliveries)
}

func TestService_RetryFailedNothingToRetry(t *testing.T) {
	failedDeliveries = nil
	service := newTestService(mockGateway{body: "OK"})

	_, err := service.RetryFailed(REF)

	require.IsType(t, &InvalidPayloadErr{}, err)
}

//RoundTripFunc .
type RoundTripFunc func(req *http.Request) *http.Response

//RoundTrip .
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

//NewTestClient returns *http.Client with Transport replaced to avoid making real calls
func NewTestClient(fn RoundTripFunc) *http.Client {
	return &http.Client{
		Transport: RoundTripFunc(fn),
	}
}

func TestService_NotifyWebhook(t *testing.T) {
	webhookCalled := false
	client := NewTestClient(func(req *http.Request) *http.Response {
		webhookCalled = true
		return &http.Response{
			StatusCode: 200,
			Body:       ioutil.NopCloser(bytes.NewBufferString("")),
			Header:     make(http.Header),
		}
	})

	impl := &service{
		gateway:     mockGateway{body: "OK"},
		runner:      mockRunner{resolver: sms.NewResolver(sms.ResolverConfig{})},
		campaignDao: mockCampaignDao{},
		deliveryDao: mockDeliveryDao{},
		httpClient:  client,
		webhook:     "http://www.ng",
	}

	impl.notifyWebhook(REF)

	require.True(t, webhookCalled)
}
