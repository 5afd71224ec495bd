package sms

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

type RateLimiter interface {
	// Wait blocks until the limiter permits an event to happen.
	Wait(ctx context.Context) error
}

//Client submits messages to the gateway HTTP API
type Client interface {
	SendMessage(sender, phone, text string) (RawResponse, error)
}

type ClientConfig struct {
	ApiUrl   string
	Username string
	ApiKey   string
	//Tps caps outgoing requests per second
	Tps     int
	Timeout time.Duration
}

type httpGatewayClient struct {
	apiUrl      string
	username    string
	apiKey      string
	rateLimiter RateLimiter
	client      *http.Client
}

func NewClient(cfg ClientConfig) Client {
	if cfg.Tps <= 0 {
		cfg.Tps = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &httpGatewayClient{
		apiUrl:      cfg.ApiUrl,
		username:    cfg.Username,
		apiKey:      cfg.ApiKey,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.Tps), 1),
		client:      &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *httpGatewayClient) SendMessage(sender, phone, text string) (RawResponse, error) {
	err := c.rateLimiter.Wait(context.Background())
	if err != nil {
		return RawResponse{}, err
	}

	form := url.Values{}
	form.Set("username", c.username)
	form.Set("password", c.apiKey)
	form.Set("sender", sender)
	form.Set("recipient", phone)
	form.Set("message", text)

	resp, err := c.client.PostForm(c.apiUrl, form)
	if err != nil {
		return RawResponse{}, err
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return RawResponse{}, err
	}

	return RawResponse{StatusCode: resp.StatusCode, Body: string(body)}, nil
}
