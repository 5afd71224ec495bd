package dto

type Ref struct {
	Ref string `json:"ref"`
}

type Campaign struct {
	Sender string   `json:"sender"`
	Text   string   `json:"text"`
	Phones []string `json:"phones"`
}

type CampaignStatus struct {
	Ref          string           `json:"ref"`
	Sender       string           `json:"sender"`
	Text         string           `json:"text"`
	SuccessCount int              `json:"successCount"`
	FailureCount int              `json:"failureCount"`
	Total        int              `json:"total"`
	Deliveries   []DeliveryStatus `json:"deliveries"`
}

type DeliveryStatus struct {
	Phone  string `json:"phone"`
	Status string `json:"status"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
}
