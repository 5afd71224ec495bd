package dao

import (
	"time"

	"github.com/Zyron-Tech/church-pal/model"
	"github.com/asdine/storm/v3/q"
)

type CampaignDao interface {
	//Create creates campaign record and returns its id
	Create(ref, text, sender string) (uint32, error)
	//GetOneById returns campaign by id
	GetOneById(id uint32) (model.Campaign, error)
	//GetOneByRef returns campaign by its public reference
	GetOneByRef(ref string) (model.Campaign, error)
	//GetAll returns all campaigns
	GetAll() ([]model.Campaign, error)
	//RemoveOlderThanDays removes all campaigns older than {days}
	RemoveOlderThanDays(days int) error
}

func NewCampaignDao(db Db) CampaignDao {
	return &campaignDao{db: db}
}

type campaignDao struct {
	db Db
}

func (d campaignDao) RemoveOlderThanDays(days int) error {
	err := d.db.Select(q.Lt("CreatedAt", time.Now().Add(-24*time.Duration(days)*time.Hour))).Delete(&model.Campaign{})
	if err != nil && err.Error() != "not found" {
		return err
	}
	return nil
}

func (d campaignDao) GetOneById(id uint32) (campaign model.Campaign, err error) {
	err = d.db.One("Id", id, &campaign)
	return
}

func (d campaignDao) GetOneByRef(ref string) (campaign model.Campaign, err error) {
	err = d.db.One("Ref", ref, &campaign)
	return
}

func (d campaignDao) GetAll() (campaigns []model.Campaign, err error) {
	err = d.db.All(&campaigns)
	return
}

func (d campaignDao) Create(ref, text, sender string) (uint32, error) {
	campaign := &model.Campaign{Ref: ref, Sender: sender, Text: text, CreatedAt: time.Now()}
	err := d.db.Save(campaign)
	return campaign.Id, err
}
