package dao

import (
	"time"

	"github.com/Zyron-Tech/church-pal/model"
	"github.com/asdine/storm/v3/q"
)

type DeliveryDao interface {
	//Create creates a pending delivery record and returns its id
	Create(campaignId uint32, phone, name string) (uint32, error)
	//UpdateOutcome stores the resolved outcome of a delivery
	UpdateOutcome(campaignId uint32, phone, status, code, detail string) error
	//GetOneByCampaignIdAndPhone returns a delivery with the given campaign id and phone
	GetOneByCampaignIdAndPhone(campaignId uint32, phone string) (model.Delivery, error)
	//GetAllByCampaignId returns all deliveries with the given campaign id
	GetAllByCampaignId(campaignId uint32) ([]model.Delivery, error)
	//GetAllByCampaignIdAndStatus returns campaign deliveries with any of the given statuses
	GetAllByCampaignIdAndStatus(campaignId uint32, statuses ...string) ([]model.Delivery, error)
	//GetAll returns all deliveries
	GetAll() ([]model.Delivery, error)
	//RemoveOlderThanDays removes all deliveries older than {days}
	RemoveOlderThanDays(days int) error
}

func NewDeliveryDao(db Db) DeliveryDao {
	return &deliveryDao{db: db}
}

type deliveryDao struct {
	db Db
}

func (d deliveryDao) RemoveOlderThanDays(days int) error {
	err := d.db.Select(q.Lt("CreatedAt", time.Now().Add(-24*time.Duration(days)*time.Hour))).Delete(&model.Delivery{})
	if err != nil && err.Error() != "not found" {
		return err
	}
	return nil
}

func (d deliveryDao) Create(campaignId uint32, phone, name string) (uint32, error) {
	delivery := &model.Delivery{CampaignId: campaignId, Phone: phone, Name: name, Status: model.PENDING, CreatedAt: time.Now()}
	err := d.db.Save(delivery)
	return delivery.Id, err
}

func (d deliveryDao) UpdateOutcome(campaignId uint32, phone, status, code, detail string) error {
	delivery, err := d.GetOneByCampaignIdAndPhone(campaignId, phone)
	if err != nil {
		return err
	}
	delivery.Status = status
	delivery.Code = code
	delivery.Detail = detail
	return d.db.Update(&delivery)
}

func (d deliveryDao) GetOneByCampaignIdAndPhone(campaignId uint32, phone string) (model.Delivery, error) {
	var matchers []q.Matcher
	matchers = append(matchers, q.Eq("CampaignId", campaignId))
	matchers = append(matchers, q.Eq("Phone", phone))
	var deliveries []model.Delivery
	err := d.db.Select(matchers...).Limit(1).Find(&deliveries)
	var delivery model.Delivery
	if err != nil {
		return delivery, err
	}
	if len(deliveries) > 0 {
		delivery = deliveries[0]
	}

	return delivery, err
}

func (d deliveryDao) GetAllByCampaignId(campaignId uint32) (deliveries []model.Delivery, err error) {
	err = d.db.Find("CampaignId", campaignId, &deliveries)
	return
}

func (d deliveryDao) GetAllByCampaignIdAndStatus(campaignId uint32, statuses ...string) ([]model.Delivery, error) {
	var statusMatchers []q.Matcher
	for _, status := range statuses {
		statusMatchers = append(statusMatchers, q.Eq("Status", status))
	}
	matchers := []q.Matcher{q.Eq("CampaignId", campaignId), q.Or(statusMatchers...)}
	var deliveries []model.Delivery
	err := d.db.Select(matchers...).Find(&deliveries)
	if err != nil && err.Error() == "not found" {
		return nil, nil
	}
	return deliveries, err
}

func (d deliveryDao) GetAll() (deliveries []model.Delivery, err error) {
	err = d.db.All(&deliveries)
	return
}
