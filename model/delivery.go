package model

import "time"

const (
	//delivery statuses
	PENDING       string = "PENDING"
	SUCCESS              = "SUCCESS"
	FAILED               = "FAILED"
	TRANSPORT_ERR        = "TRANSPORT_ERR"
)

type Delivery struct {
	Id         uint32 `storm:"id,increment"`
	CampaignId uint32 `storm:"index"`
	Phone      string `storm:"index"`
	Name       string
	Status     string
	Code       string
	Detail     string
	CreatedAt  time.Time `storm:"index"`
}
